package repositories

import (
	"context"
	"database/sql"
	"errors"

	"mariageBack/internal/models"
)

type UserRepository struct {
	DB *sql.DB
}

func (r *UserRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	query := `
INSERT INTO users (name, surname, phone, email, password, role, city, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
RETURNING id, created_at
	`
	err := r.DB.QueryRowContext(ctx, query,
		user.Name, user.Surname, user.Phone, user.Email, user.Password, user.Role, user.City,
	).Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return models.User{}, models.ErrDuplicateEmail
		}
		return models.User{}, err
	}
	user.Password = ""
	return user, nil
}

func (r *UserRepository) GetUserByID(ctx context.Context, id int) (models.User, error) {
	var user models.User
	query := `
		SELECT id, name, surname, phone, email, role, city, created_at, updated_at
		FROM users WHERE id = $1
	`
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&user.ID, &user.Name, &user.Surname, &user.Phone, &user.Email,
		&user.Role, &user.City, &user.CreatedAt, &user.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, models.ErrUserNotFound
	}
	return user, err
}

// GetUserByLogin resolves a sign-in identifier (email first, phone second)
// and returns the stored password hash.
func (r *UserRepository) GetUserByLogin(ctx context.Context, email, phone string) (models.User, error) {
	var user models.User
	query := `
		SELECT id, name, surname, phone, email, password, role, city, created_at, updated_at
		FROM users WHERE ($1 <> '' AND email = $1) OR ($2 <> '' AND phone = $2)
	`
	err := r.DB.QueryRowContext(ctx, query, email, phone).Scan(
		&user.ID, &user.Name, &user.Surname, &user.Phone, &user.Email, &user.Password,
		&user.Role, &user.City, &user.CreatedAt, &user.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, models.ErrUserNotFound
	}
	return user, err
}

func (r *UserRepository) GetPasswordHash(ctx context.Context, userID int) (string, error) {
	var hash string
	err := r.DB.QueryRowContext(ctx, `SELECT password FROM users WHERE id = $1`, userID).Scan(&hash)
	if errors.Is(err, sql.ErrNoRows) {
		return "", models.ErrUserNotFound
	}
	return hash, err
}

func (r *UserRepository) UpdatePassword(ctx context.Context, userID int, hash string) error {
	query := `UPDATE users SET password = $1, updated_at = NOW() WHERE id = $2`
	_, err := r.DB.ExecContext(ctx, query, hash, userID)
	return err
}

func (r *UserRepository) CreateSession(ctx context.Context, session models.Session) error {
	query := `
INSERT INTO sessions (user_id, role, refresh_token, expires_at)
VALUES ($1, $2, $3, $4)
ON CONFLICT (user_id) DO UPDATE SET refresh_token = $3, expires_at = $4
	`
	_, err := r.DB.ExecContext(ctx, query, session.UserID, session.Role, session.RefreshToken, session.ExpiresAt)
	return err
}

func (r *UserRepository) GetSessionByToken(ctx context.Context, refreshToken string) (models.Session, error) {
	var session models.Session
	query := `SELECT user_id, role, refresh_token, expires_at FROM sessions WHERE refresh_token = $1`
	err := r.DB.QueryRowContext(ctx, query, refreshToken).Scan(
		&session.UserID, &session.Role, &session.RefreshToken, &session.ExpiresAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Session{}, nil
	}
	return session, err
}

func (r *UserRepository) DeleteSession(ctx context.Context, userID int) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM sessions WHERE user_id = $1`, userID)
	return err
}

func (r *UserRepository) SaveDeviceToken(ctx context.Context, userID int, token string) error {
	query := `
INSERT INTO device_tokens (user_id, token, created_at)
VALUES ($1, $2, NOW())
ON CONFLICT (token) DO UPDATE SET user_id = $1
	`
	_, err := r.DB.ExecContext(ctx, query, userID, token)
	return err
}

func (r *UserRepository) GetDeviceTokens(ctx context.Context, userID int) ([]string, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT token FROM device_tokens WHERE user_id = $1`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tokens []string
	for rows.Next() {
		var token string
		if err := rows.Scan(&token); err != nil {
			return nil, err
		}
		tokens = append(tokens, token)
	}
	return tokens, rows.Err()
}
