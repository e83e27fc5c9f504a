package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"aquascout-backend/internal/domain"
	"aquascout-backend/internal/repository"
)

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) repository.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	u := &domain.User{}
	var createdOn time.Time
	query := `SELECT id, name, email, COALESCE(phone, ''), role, created_on FROM users WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&u.ID, &u.Name, &u.Email, &u.Phone, &u.Role, &createdOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	u.CreatedOn = createdOn.Format("2006-01-02")
	return u, nil
}
