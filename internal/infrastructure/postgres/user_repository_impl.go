package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/samersoltani/dewini-server/internal/domain/entity"
	"github.com/samersoltani/dewini-server/internal/domain/repository"
)

var errNotFound = errors.New("not found")

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO users (nom, prenom, email, telephone, date_naissance, grp_sang, password_hash, role)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`, u.Nom, u.Prenom, u.Email, u.Telephone, u.DateNaissance, u.GrpSang, u.Password, u.Role)

	return row.Scan(&u.ID)
}

// GetByID returns (nil, nil) when no user has the given id.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	u, err := r.getOne(ctx, `
		SELECT id, nom, prenom, email, telephone, date_naissance, grp_sang, password_hash, role
		FROM users
		WHERE id = $1
	`, id)
	if errors.Is(err, errNotFound) {
		return nil, nil
	}
	return u, err
}

// GetByEmail returns (nil, nil) when no user has the given email.
// The match is case-sensitive, as stored.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	u, err := r.getOne(ctx, `
		SELECT id, nom, prenom, email, telephone, date_naissance, grp_sang, password_hash, role
		FROM users
		WHERE email = $1
	`, email)
	if errors.Is(err, errNotFound) {
		return nil, nil
	}
	return u, err
}

func (r *UserRepository) getOne(ctx context.Context, query string, arg any) (*entity.User, error) {
	u := &entity.User{}
	row := r.pool.QueryRow(ctx, query, arg)
	if err := row.Scan(&u.ID, &u.Nom, &u.Prenom, &u.Email, &u.Telephone,
		&u.DateNaissance, &u.GrpSang, &u.Password, &u.Role); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errNotFound
		}
		return nil, err
	}
	return u, nil
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id, hash string) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE users SET password_hash = $1 WHERE id = $2
	`, hash, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return errNotFound
	}
	return nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
