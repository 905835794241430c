package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/error7buddy/KiLagbe.Com/internal/ads/domain"
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

const adColumns = `id::text, user_id, title, description, bhk, house_no, area, district, phone, images, is_paid, created_at, updated_at`

func scanAd(row pgx.Row) (*domain.Ad, error) {
	var ad domain.Ad
	err := row.Scan(
		&ad.ID,
		&ad.UserID,
		&ad.Title,
		&ad.Description,
		&ad.BHK,
		&ad.Address.HouseNo,
		&ad.Address.Area,
		&ad.Address.District,
		&ad.Address.Phone,
		&ad.Images,
		&ad.IsPaid,
		&ad.CreatedAt,
		&ad.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if ad.Images == nil {
		ad.Images = []string{}
	}
	return &ad, nil
}

func (r *PostgresRepository) List(ctx context.Context, ownerID string) ([]domain.Ad, error) {
	q := `select ` + adColumns + ` from ads`
	args := []any{}
	if ownerID != "" {
		q += ` where user_id = $1`
		args = append(args, ownerID)
	}
	q += ` order by created_at desc`

	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query ads: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Ad, 0, 16)
	for rows.Next() {
		ad, err := scanAd(rows)
		if err != nil {
			return nil, fmt.Errorf("scan ad: %w", err)
		}
		out = append(out, *ad)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*domain.Ad, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrAdNotFound
	}

	ad, err := scanAd(r.db.QueryRow(ctx, `select `+adColumns+` from ads where id = $1::uuid`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrAdNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get ad: %w", err)
	}
	return ad, nil
}

// CreateWithinLimit counts and inserts inside one transaction that holds a
// per-owner advisory lock, so concurrent creates for an owner serialize.
func (r *PostgresRepository) CreateWithinLimit(ctx context.Context, ad *domain.Ad, limit int) error {
	images := ad.Images
	if images == nil {
		images = []string{}
	}

	return pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `select pg_advisory_xact_lock(hashtext($1))`, ad.UserID); err != nil {
			return fmt.Errorf("lock owner: %w", err)
		}

		var n int64
		if err := tx.QueryRow(ctx, `select count(*) from ads where user_id = $1`, ad.UserID).Scan(&n); err != nil {
			return fmt.Errorf("count ads: %w", err)
		}
		if n >= int64(limit) {
			return domain.ErrQuotaReached
		}

		const q = `
insert into ads (id, user_id, title, description, bhk, house_no, area, district, phone, images, is_paid)
values ($1::uuid, $2, $3, $4, $5, $6, $7, $8, $9, $10, false)
returning ` + adColumns + `;
`
		created, err := scanAd(tx.QueryRow(ctx, q,
			uuid.NewString(),
			ad.UserID,
			ad.Title,
			ad.Description,
			ad.BHK,
			ad.Address.HouseNo,
			ad.Address.Area,
			ad.Address.District,
			ad.Address.Phone,
			images,
		))
		if err != nil {
			return fmt.Errorf("insert ad: %w", err)
		}

		*ad = *created
		return nil
	})
}

func (r *PostgresRepository) Update(ctx context.Context, id string, req domain.UpdateAdRequest) (*domain.Ad, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrAdNotFound
	}

	var images []string
	if len(req.Images) > 0 {
		images = req.Images
	}

	const q = `
update ads
set title       = coalesce($2, title),
    description = coalesce($3, description),
    bhk         = coalesce($4, bhk),
    house_no    = coalesce($5, house_no),
    area        = coalesce($6, area),
    district    = coalesce($7, district),
    phone       = coalesce($8, phone),
    images      = coalesce($9, images),
    updated_at  = now()
where id = $1::uuid
returning ` + adColumns + `;
`
	ad, err := scanAd(r.db.QueryRow(ctx, q,
		id,
		req.Title,
		req.Description,
		req.BHK,
		req.HouseNo,
		req.Area,
		req.District,
		req.Phone,
		images,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrAdNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update ad: %w", err)
	}
	return ad, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return domain.ErrAdNotFound
	}

	ct, err := r.db.Exec(ctx, `delete from ads where id = $1::uuid`, id)
	if err != nil {
		return fmt.Errorf("delete ad: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return domain.ErrAdNotFound
	}
	return nil
}

func (r *PostgresRepository) CountByOwner(ctx context.Context, ownerID string) (int64, error) {
	var n int64
	if err := r.db.QueryRow(ctx, `select count(*) from ads where user_id = $1`, ownerID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count ads: %w", err)
	}
	return n, nil
}
