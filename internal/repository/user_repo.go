package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"personalsite/internal/db"
)

type UserRepository interface {
	GetByEmail(email string) (*db.User, error)
	GetByID(id string) (*db.User, error)
	Create(user *db.User) error
}

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(database *sql.DB) UserRepository {
	return &userRepository{db: database}
}

func (r *userRepository) GetByEmail(email string) (*db.User, error) {
	var user db.User
	err := r.db.QueryRow(`
		SELECT id, name, email, phone, password_hash, role, created_at, updated_at
		FROM users WHERE email = $1`, email).
		Scan(&user.ID, &user.Name, &user.Email, &user.Phone, &user.PasswordHash, &user.Role, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByID(id string) (*db.User, error) {
	var user db.User
	err := r.db.QueryRow(`
		SELECT id, name, email, phone, password_hash, role, created_at, updated_at
		FROM users WHERE id = $1`, id).
		Scan(&user.ID, &user.Name, &user.Email, &user.Phone, &user.PasswordHash, &user.Role, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) Create(user *db.User) error {
	query := `
		INSERT INTO users (id, name, email, phone, password_hash, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING created_at, updated_at`
	err := r.db.QueryRow(query,
		user.ID, user.Name, user.Email, user.Phone, user.PasswordHash, user.Role,
	).Scan(&user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error creating user: %w", err)
	}
	return nil
}
