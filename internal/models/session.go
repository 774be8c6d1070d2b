package models

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrSessionInvalid = errors.New("the session token is invalid or has expired")

// Session maps a bearer token to its user.
//
// Sessions are issued by the identity provider. The backend only resolves
// them, it never creates or refreshes them.
type Session struct {
	DefaultModel
	Token  string    `gorm:"uniqueIndex"`
	UserID uuid.UUID `gorm:"index"`
	User   User
}

// SessionUser resolves a bearer token to the user it belongs to.
func SessionUser(db *gorm.DB, token string) (User, error) {
	var session Session
	err := db.Joins("User").Where(&Session{Token: token}).First(&session).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return User{}, ErrSessionInvalid
	}
	if err != nil {
		return User{}, err
	}

	return session.User, nil
}
