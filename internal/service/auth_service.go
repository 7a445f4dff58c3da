package service

import (
	"log"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"personalsite/internal/db"
	"personalsite/internal/entities"
	apperrors "personalsite/internal/errors"
	"personalsite/internal/repository"
)

type AuthService interface {
	Register(name, email, phone, password string) (*entities.UserResponse, error)
	Login(email, password string) (*entities.LoginResponse, error)
	GetProfile(userID string) (*entities.UserResponse, error)
}

type authService struct {
	repo      repository.UserRepository
	sender    *SenderService
	jwtSecret string
}

func NewAuthService(repo repository.UserRepository, sender *SenderService, jwtSecret string) AuthService {
	return &authService{repo: repo, sender: sender, jwtSecret: jwtSecret}
}

func (s *authService) Register(name, email, phone, password string) (*entities.UserResponse, error) {
	if name == "" || email == "" {
		return nil, apperrors.ErrInvalidInput("name and email are required")
	}
	if len(password) < 6 {
		return nil, apperrors.ErrInvalidInput("password must be at least 6 characters")
	}

	existing, err := s.repo.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.ErrInvalidInput("Email already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &db.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		Phone:        phone,
		PasswordHash: string(hash),
		Role:         db.RoleUser,
	}
	if err := s.repo.Create(user); err != nil {
		return nil, err
	}

	// Registration must not block on email delivery.
	s.sender.SendWelcomeEmail(user.Email, user.Name)

	return userResponse(user), nil
}

func (s *authService) Login(email, password string) (*entities.LoginResponse, error) {
	user, err := s.repo.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperrors.ErrUnauthorized("Invalid email or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, apperrors.ErrUnauthorized("Invalid email or password")
	}

	claims := jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"role":    user.Role,
		"exp":     time.Now().Add(24 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		log.Printf("Error signing token for %s: %v", user.Email, err)
		return nil, err
	}

	return &entities.LoginResponse{User: *userResponse(user), Token: signed}, nil
}

func (s *authService) GetProfile(userID string) (*entities.UserResponse, error) {
	user, err := s.repo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperrors.ErrNotFound("User not found")
	}
	return userResponse(user), nil
}

func userResponse(user *db.User) *entities.UserResponse {
	return &entities.UserResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}
