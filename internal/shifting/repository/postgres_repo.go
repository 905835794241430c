package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/error7buddy/KiLagbe.Com/internal/shifting/domain"
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

const orderColumns = `id::text, name, phone, from_location, from_floor, to_location, to_floor, shift_type, date, message, status, created_at, updated_at`

func scanOrder(row pgx.Row) (*domain.Order, error) {
	var (
		o      domain.Order
		status string
	)
	err := row.Scan(
		&o.ID,
		&o.Name,
		&o.Phone,
		&o.FromLocation,
		&o.FromFloor,
		&o.ToLocation,
		&o.ToFloor,
		&o.ShiftType,
		&o.Date,
		&o.Message,
		&status,
		&o.CreatedAt,
		&o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	o.Status = domain.Status(status)
	return &o, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]domain.Order, error) {
	rows, err := r.db.Query(ctx, `select `+orderColumns+` from shifting_orders order by created_at desc`)
	if err != nil {
		return nil, fmt.Errorf("query orders: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Order, 0, 16)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		out = append(out, *o)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) Create(ctx context.Context, order *domain.Order) error {
	const q = `
insert into shifting_orders (id, name, phone, from_location, from_floor, to_location, to_floor, shift_type, date, message, status)
values ($1::uuid, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
returning ` + orderColumns + `;
`
	created, err := scanOrder(r.db.QueryRow(ctx, q,
		uuid.NewString(),
		order.Name,
		order.Phone,
		order.FromLocation,
		order.FromFloor,
		order.ToLocation,
		order.ToFloor,
		order.ShiftType,
		order.Date,
		order.Message,
		string(order.Status),
	))
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	*order = *created
	return nil
}

func (r *PostgresRepository) SetStatus(ctx context.Context, id string, status domain.Status) (*domain.Order, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrOrderNotFound
	}

	o, err := scanOrder(r.db.QueryRow(ctx,
		`update shifting_orders set status = $2, updated_at = now() where id = $1::uuid returning `+orderColumns,
		id, string(status),
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update order: %w", err)
	}
	return o, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return domain.ErrOrderNotFound
	}

	ct, err := r.db.Exec(ctx, `delete from shifting_orders where id = $1::uuid`, id)
	if err != nil {
		return fmt.Errorf("delete order: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return domain.ErrOrderNotFound
	}
	return nil
}
