package main

import (
	"fmt"
	"log"

	"golang.org/x/crypto/bcrypt"

	"github.com/fahmidhamim/echobrief/internal/domain/entities"
	"github.com/fahmidhamim/echobrief/internal/infrastructure/database"
	"github.com/fahmidhamim/echobrief/pkg/config"
)

const testPassword = "password123"

func main() {
	log.Println("🚀 Starting test users creation...")

	// Load configuration from .env
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize database
	log.Println("📦 Connecting to database...")
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.CloseDB(db)

	// Define test users
	testUsers := []struct {
		Email   string
		Name    string
		IsAdmin bool
	}{
		{Email: "alice@test.local", Name: "Alice", IsAdmin: true},
		{Email: "bob@test.local", Name: "Bob"},
		{Email: "charlie@test.local", Name: "Charlie"},
		{Email: "diana@test.local", Name: "Diana"},
		{Email: "eve@test.local", Name: "Eve"},
	}

	log.Println("🗑️  Cleaning up existing test users...")
	db.Unscoped().Where("email LIKE ?", "%@test.local").Delete(&entities.User{})

	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	log.Println("🔑 Creating test users...")
	for _, tu := range testUsers {
		user := entities.NewUser(tu.Name, tu.Email, string(hash))
		user.IsAdmin = tu.IsAdmin
		if err := db.Create(user).Error; err != nil {
			log.Fatalf("Failed to create user %s: %v", tu.Email, err)
		}
		fmt.Printf("  %s <%s> admin=%v\n", tu.Name, tu.Email, tu.IsAdmin)
	}

	log.Printf("✅ Created %d test users (password: %s)\n", len(testUsers), testPassword)
}
