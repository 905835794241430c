package repository

import (
	"context"

	"github.com/error7buddy/KiLagbe.Com/internal/users/domain"
)

type Repository interface {
	// FindOrCreate returns the user for firebaseUID, inserting it with email when
	// absent. created reports whether this call inserted the record.
	FindOrCreate(ctx context.Context, firebaseUID, email string) (user *domain.User, created bool, err error)
}
