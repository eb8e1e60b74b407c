package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID             string    `json:"id" gorm:"primaryKey;size:36"`
	Name           string    `json:"name" gorm:"size:50"`
	Email          string    `json:"email" gorm:"uniqueIndex;size:191;not null"`
	UserName       string    `json:"userName" gorm:"uniqueIndex;size:191;not null"`
	PasswordHash   string    `json:"-" gorm:"not null"`
	IsAdmin        bool      `json:"isAdmin" gorm:"not null;default:false"`
	EmailConfirmed bool      `json:"emailConfirmed" gorm:"not null;default:false"`
	CreatedDate    time.Time `json:"createdDate"`
	ModifiedDate   time.Time `json:"modifiedDate"`
	LastLogin      time.Time `json:"lastLogin"`
}

// NormalizeEmail is the form emails are stored and looked up in
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// BeforeCreate assigns an id, normalizes the email and stamps the creation times
func (u *User) BeforeCreate(tx *gorm.DB) error {
	u.Email = NormalizeEmail(u.Email)
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if u.CreatedDate.IsZero() {
		u.CreatedDate = now
	}
	if u.ModifiedDate.IsZero() {
		u.ModifiedDate = now
	}
	if u.LastLogin.IsZero() {
		u.LastLogin = now
	}
	return nil
}
