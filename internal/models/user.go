package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is a registered account. Height is stored in centimeters and is the
// value used to fix the BMI of each health log at append time; changing it
// later never rewrites existing logs.
type User struct {
	ID           uuid.UUID `gorm:"type:varchar(36);primary_key" json:"id"`
	Name         string    `gorm:"not null" json:"name"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	Age          int       `gorm:"not null" json:"age"`
	HeightCm     float64   `gorm:"not null" json:"height"`
	Gender       string    `gorm:"not null" json:"gender"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// BeforeCreate assigns the UUID primary key
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
