package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/maccam68/caredesk/internal/models"
	"github.com/maccam68/caredesk/internal/types"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// ErrInvalidCredentials is returned on any login failure. Unknown username and
// wrong PIN are deliberately indistinguishable to the caller.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Login validates the credentials against the stored user list and issues a
// session token. The username match is case-insensitive; the PIN is compared
// against its bcrypt hash. On success the user's lastLogin is stamped.
func Login(db *gorm.DB, username, pin string) (*models.User, *models.Session, error) {
	var user models.User
	err := db.Where("LOWER(username) = LOWER(?)", username).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Pin), []byte(pin)) != nil {
		return nil, nil, ErrInvalidCredentials
	}

	now := time.Now().UTC()
	if err := db.Model(&user).Update("last_login", now).Error; err != nil {
		return nil, nil, err
	}
	user.LastLogin = &now

	settings, err := GetSettings(db)
	if err != nil {
		return nil, nil, err
	}
	timeout := settings.Security.SessionTimeout
	if timeout <= 0 {
		timeout = 30
	}

	session := models.Session{
		Token:     uuid.NewString(),
		UserID:    user.ID,
		ExpiresAt: now.Add(time.Duration(timeout) * time.Minute),
	}
	if err := db.Create(&session).Error; err != nil {
		return nil, nil, err
	}

	return &user, &session, nil
}

// Logout revokes the session token. Revoking an unknown token is not an error.
func Logout(db *gorm.DB, token string) error {
	return db.Delete(&models.Session{}, "token = ?", token).Error
}

// ValidateSession resolves a session token to its user. Expired sessions are
// deleted on sight.
func ValidateSession(db *gorm.DB, token string) (*models.User, error) {
	var session models.Session
	if err := db.First(&session, "token = ?", token).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("session is not valid")
		}
		return nil, err
	}

	if time.Now().UTC().After(session.ExpiresAt) {
		_ = db.Delete(&session).Error
		return nil, fmt.Errorf("session expired")
	}

	var user models.User
	if err := db.First(&user, session.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("session user no longer exists")
		}
		return nil, err
	}

	return &user, nil
}

// UserInput carries the writable fields of a user account.
type UserInput struct {
	Username string      `json:"username"`
	Pin      string      `json:"pin"`
	Role     models.Role `json:"role"`
	Name     string      `json:"name"`
	Email    string      `json:"email"`
}

// ListUsers returns all user accounts.
func ListUsers(db *gorm.DB) ([]models.User, error) {
	var users []models.User
	if err := db.Order("id").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// CreateUser adds a user account with a hashed PIN.
func CreateUser(db *gorm.DB, input UserInput) (*models.User, error) {
	if input.Username == "" || input.Pin == "" {
		return nil, &types.RequestError{Code: 400, Message: "username and pin are required", Type: "auth.validation.input"}
	}
	if !input.Role.Valid() {
		return nil, &types.RequestError{Code: 400, Message: "unknown role", Type: "auth.validation.role"}
	}

	var count int64
	if err := db.Model(&models.User{}).
		Where("LOWER(username) = LOWER(?)", input.Username).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, &types.RequestError{Code: 409, Message: "username already exists", Type: "auth.validation.username"}
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Pin), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Username: input.Username,
		Pin:      string(hashed),
		Role:     input.Role,
		Name:     input.Name,
		Email:    input.Email,
	}
	if err := db.Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateUser applies the non-empty fields of input to an existing account.
// The PIN is re-hashed when a new one is supplied.
func UpdateUser(db *gorm.DB, id uint, input UserInput) (*models.User, error) {
	var user models.User
	if err := db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.ErrNotFound
		}
		return nil, err
	}

	if input.Username != "" {
		user.Username = input.Username
	}
	if input.Name != "" {
		user.Name = input.Name
	}
	if input.Email != "" {
		user.Email = input.Email
	}
	if input.Role != "" {
		if !input.Role.Valid() {
			return nil, &types.RequestError{Code: 400, Message: "unknown role", Type: "auth.validation.role"}
		}
		user.Role = input.Role
	}
	if input.Pin != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(input.Pin), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.Pin = string(hashed)
	}

	if err := db.Save(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// DeleteUser removes an account and revokes its sessions.
func DeleteUser(db *gorm.DB, id uint) error {
	result := db.Delete(&models.User{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return types.ErrNotFound
	}
	return db.Delete(&models.Session{}, "user_id = ?", id).Error
}
