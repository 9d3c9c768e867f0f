package entities

import (
	"time"

	"github.com/google/uuid"
)

// AudioFile is an uploaded recording attached to a meeting
type AudioFile struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	MeetingID       uuid.UUID `gorm:"type:uuid;not null;index" json:"meeting_id"`
	Meeting         *Meeting  `gorm:"foreignKey:MeetingID" json:"meeting,omitempty"`
	FilePath        string    `gorm:"type:varchar(500);not null" json:"file_path"`
	FileSize        int64     `json:"file_size"`
	DurationSeconds *int      `json:"duration_seconds,omitempty"`
	Format          string    `gorm:"type:varchar(50)" json:"format"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// TableName specifies the table name for AudioFile
func (AudioFile) TableName() string {
	return "audio_files"
}
