package domain

import (
	"errors"

	"github.com/error7buddy/KiLagbe.Com/internal/common"
)

var (
	ErrAdNotFound error = &common.NotFoundError{Message: "Ad not found"}

	// ErrQuotaReached is returned by repositories when the owner has no free slot left.
	ErrQuotaReached = errors.New("owner ad quota reached")
)

const FreeAdLimitMessage = "Free ad limit reached"

func NewQuotaError(limit int) error {
	return &common.QuotaError{Limit: limit, Message: FreeAdLimitMessage}
}
