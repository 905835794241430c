package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/error7buddy/KiLagbe.Com/internal/users/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const userColumns = `id::text, firebase_uid, email, total_ads_posted, created_at`

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	if err := row.Scan(&u.ID, &u.FirebaseUID, &u.Email, &u.TotalAdsPosted, &u.CreatedAt); err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *PostgresRepository) FindOrCreate(ctx context.Context, firebaseUID, email string) (*domain.User, bool, error) {
	const insert = `
insert into users (id, firebase_uid, email)
values ($1::uuid, $2, $3)
on conflict (firebase_uid) do nothing
returning ` + userColumns + `;
`
	u, err := scanUser(r.db.QueryRow(ctx, insert, uuid.NewString(), firebaseUID, email))
	if err == nil {
		return u, true, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, false, fmt.Errorf("insert user: %w", err)
	}

	u, err = scanUser(r.db.QueryRow(ctx, `select `+userColumns+` from users where firebase_uid = $1`, firebaseUID))
	if err != nil {
		return nil, false, fmt.Errorf("get user: %w", err)
	}
	return u, false, nil
}
