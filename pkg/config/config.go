package config

import (
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds application configuration
type Config struct {
	Server      ServerConfig
	Database    DatabaseConfig
	Redis       RedisConfig
	JWT         JWTConfig
	Storage     StorageConfig
	AI          AIConfig
	Transcriber TranscriberConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port            string   `envconfig:"PORT" default:"8080"`
	Host            string   `envconfig:"HOST" default:"0.0.0.0"`
	Environment     string   `envconfig:"ENVIRONMENT" default:"development"`
	AllowedOrigins  []string `envconfig:"ALLOWED_ORIGINS" default:"http://localhost:3000"`
	ShutdownTimeout int      `envconfig:"SHUTDOWN_TIMEOUT" default:"10"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host        string `envconfig:"DB_HOST" default:"localhost"`
	Port        string `envconfig:"DB_PORT" default:"5432"`
	User        string `envconfig:"DB_USER" default:"postgres"`
	Password    string `envconfig:"DB_PASSWORD" default:"postgres"`
	Name        string `envconfig:"DB_NAME" default:"echobriefdb"`
	SSLMode     string `envconfig:"DB_SSLMODE" default:"disable"`
	MaxConns    int    `envconfig:"DB_MAX_CONNS" default:"25"`
	MinConns    int    `envconfig:"DB_MIN_CONNS" default:"5"`
	AutoMigrate bool   `envconfig:"DB_AUTO_MIGRATE" default:"true"`
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Enabled  bool   `envconfig:"REDIS_ENABLED" default:"false"`
	Host     string `envconfig:"REDIS_HOST" default:"localhost"`
	Port     string `envconfig:"REDIS_PORT" default:"6379"`
	Password string `envconfig:"REDIS_PASSWORD" default:""`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	AccessSecret  string        `envconfig:"JWT_ACCESS_SECRET" default:"your-access-secret-change-in-production"`
	RefreshSecret string        `envconfig:"JWT_REFRESH_SECRET" default:"your-refresh-secret-change-in-production"`
	AccessExpiry  time.Duration `envconfig:"JWT_ACCESS_EXPIRY" default:"15m"`
	RefreshExpiry time.Duration `envconfig:"JWT_REFRESH_EXPIRY" default:"168h"`
}

// StorageConfig holds storage configuration
type StorageConfig struct {
	Type            string `envconfig:"STORAGE_TYPE" default:"local"` // "minio" or "local"
	Endpoint        string `envconfig:"STORAGE_ENDPOINT" default:"localhost:9000"`
	AccessKeyID     string `envconfig:"STORAGE_ACCESS_KEY" default:"minioadmin"`
	SecretAccessKey string `envconfig:"STORAGE_SECRET_KEY" default:"minioadmin"`
	BucketName      string `envconfig:"STORAGE_BUCKET" default:"echobrief-audio"`
	UseSSL          bool   `envconfig:"STORAGE_USE_SSL" default:"false"`
	LocalDir        string `envconfig:"STORAGE_LOCAL_DIR" default:"uploads/audio"`
	MaxFileSize     int64  `envconfig:"STORAGE_MAX_FILE_SIZE" default:"104857600"`
}

// AIConfig holds summarization provider configuration
type AIConfig struct {
	OpenAIKey         string        `envconfig:"OPENAI_API_KEY" default:""`
	OpenAIBaseURL     string        `envconfig:"OPENAI_BASE_URL" default:"https://api.openai.com/v1"`
	OpenAIModel       string        `envconfig:"OPENAI_MODEL" default:"gpt-3.5-turbo"`
	GroqKey           string        `envconfig:"GROQ_API_KEY" default:""`
	GroqBaseURL       string        `envconfig:"GROQ_BASE_URL" default:"https://api.groq.com/openai/v1"`
	GroqModel         string        `envconfig:"GROQ_MODEL" default:"llama-3.1-8b-instant"`
	GroqCompatVersion string        `envconfig:"AI_GROQ_COMPAT_VERSION" default:"0.27.0"`
	RequestTimeout    time.Duration `envconfig:"AI_REQUEST_TIMEOUT" default:"60s"`
	MaxSummaryLength  int           `envconfig:"AI_MAX_SUMMARY_LENGTH" default:"500"`
}

// TranscriberConfig holds transcription backend configuration
type TranscriberConfig struct {
	Backend        string        `envconfig:"TRANSCRIBER_BACKEND" default:"whisper"` // "whisper" or "assemblyai"
	WhisperURL     string        `envconfig:"WHISPER_SERVER_URL" default:"http://localhost:9009"`
	WhisperModel   string        `envconfig:"WHISPER_MODEL" default:"base"`
	AssemblyAIKey  string        `envconfig:"ASSEMBLYAI_API_KEY" default:""`
	RequestTimeout time.Duration `envconfig:"TRANSCRIBE_TIMEOUT" default:"5m"`
	MaxRetries     int           `envconfig:"TRANSCRIBE_MAX_RETRIES" default:"3"`
}

// Load loads configuration from the environment, reading .env first when present
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables or defaults")
	}

	var config Config
	if err := envconfig.Process("", &config); err != nil {
		return nil, fmt.Errorf("failed to process environment: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Storage.Type != "minio" && c.Storage.Type != "local" {
		return fmt.Errorf("STORAGE_TYPE must be \"minio\" or \"local\", got %q", c.Storage.Type)
	}
	if c.Transcriber.Backend != "whisper" && c.Transcriber.Backend != "assemblyai" {
		return fmt.Errorf("TRANSCRIBER_BACKEND must be \"whisper\" or \"assemblyai\", got %q", c.Transcriber.Backend)
	}
	if c.Transcriber.Backend == "assemblyai" && c.Transcriber.AssemblyAIKey == "" {
		return fmt.Errorf("ASSEMBLYAI_API_KEY is required when TRANSCRIBER_BACKEND=assemblyai")
	}
	return nil
}

// IsProduction reports whether the server runs in production mode
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

// GetDatabaseDSN returns the database connection string
func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// GetRedisAddr returns the Redis address
func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", c.Redis.Host, c.Redis.Port)
}
