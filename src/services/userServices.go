package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jsench/Project-Wheatley/src/middleware"
	"github.com/jsench/Project-Wheatley/src/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var ErrUserExists = errors.New("username already taken")

type UserService struct {
	db  *gorm.DB
	ttl time.Duration
}

// NewUserService creates a new instance of UserService. Tokens and their
// sessions live for ttl.
func NewUserService(db *gorm.DB, ttl time.Duration) *UserService {
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	return &UserService{db: db, ttl: ttl}
}

// GetAllUsers retrieves all User records from the database
func (s *UserService) GetAllUsers(ctx context.Context) ([]models.UserModel, error) {
	var users []models.UserModel
	result := s.db.WithContext(ctx).Order("username").Find(&users)
	if result.Error != nil {
		return nil, result.Error
	}
	return users, nil
}

// CreateUser stores a new user with a bcrypt hash of password.
func (s *UserService) CreateUser(ctx context.Context, username, password string) (*models.UserModel, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, errors.New("username and password are required")
	}

	var count int64
	if err := s.db.WithContext(ctx).Model(&models.UserModel{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, fmt.Errorf("%q: %w", username, ErrUserExists)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := &models.UserModel{Username: username, Password: string(hashedPassword)}
	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// EnsureUser creates the user unless the username already exists.
func (s *UserService) EnsureUser(ctx context.Context, username, password string) (bool, error) {
	_, err := s.CreateUser(ctx, username, password)
	if errors.Is(err, ErrUserExists) {
		return false, nil
	}
	return err == nil, err
}

// DeleteUser deletes a User record by ID together with its sessions.
func (s *UserService) DeleteUser(ctx context.Context, id int) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", id).Delete(&models.SessionModel{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.UserModel{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("user %w", ErrNotFound)
		}
		return nil
	})
}

// AuthenticateUser checks user credentials, opens a session and returns a
// signed token bound to it.
func (s *UserService) AuthenticateUser(ctx context.Context, username, password string) (string, error) {
	db := s.db.WithContext(ctx)

	var user models.UserModel
	result := db.Where("username = ?", username).First(&user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", result.Error
	}

	// Compare the provided password with the hashed password in the database
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	now := time.Now()
	if err := db.Where("user_id = ? AND expires_at <= ?", user.Id, now).Delete(&models.SessionModel{}).Error; err != nil {
		return "", err
	}
	session := models.SessionModel{
		ID:        uuid.NewString(),
		UserID:    user.Id,
		ExpiresAt: now.Add(s.ttl),
	}
	if err := db.Create(&session).Error; err != nil {
		return "", err
	}

	claims := jwt.MapClaims{
		"id":  user.Id,
		"sid": session.ID,
		"exp": session.ExpiresAt.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(middleware.GetSecretKey()))
	if err != nil {
		return "", err
	}
	return tokenString, nil
}

// ValidateSession reports ErrSessionExpired unless sessionID names a live
// session.
func (s *UserService) ValidateSession(ctx context.Context, sessionID string) error {
	var session models.SessionModel
	err := s.db.WithContext(ctx).
		Where("id = ? AND expires_at > ?", sessionID, time.Now()).
		First(&session).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrSessionExpired
	}
	return err
}

// Logout revokes a session. Revoking an unknown session is not an error.
func (s *UserService) Logout(ctx context.Context, sessionID string) error {
	return s.db.WithContext(ctx).Where("id = ?", sessionID).Delete(&models.SessionModel{}).Error
}
