package domain

import (
	"strings"
	"time"
)

type Status string

const (
	StatusPending   Status = "Pending"
	StatusCompleted Status = "Completed"
)

// Order is a booking for a moving service.
type Order struct {
	ID           string    `json:"_id"`
	Name         string    `json:"name"`
	Phone        string    `json:"phone"`
	FromLocation string    `json:"from_location"`
	FromFloor    string    `json:"from_floor"`
	ToLocation   string    `json:"to_location"`
	ToFloor      string    `json:"to_floor"`
	ShiftType    string    `json:"shift_type"`
	Date         string    `json:"date"`
	Message      string    `json:"message"`
	Status       Status    `json:"status"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type CreateOrderRequest struct {
	Name         string `json:"name" validate:"required"`
	Phone        string `json:"phone" validate:"required"`
	FromLocation string `json:"from_location" validate:"required"`
	FromFloor    string `json:"from_floor"`
	ToLocation   string `json:"to_location" validate:"required"`
	ToFloor      string `json:"to_floor"`
	ShiftType    string `json:"shift_type" validate:"required"`
	Date         string `json:"date" validate:"required"`
	Message      string `json:"message"`
}

// Trimmed returns a copy of r with surrounding whitespace removed from every field.
func (r CreateOrderRequest) Trimmed() CreateOrderRequest {
	for _, f := range []*string{
		&r.Name, &r.Phone, &r.FromLocation, &r.FromFloor, &r.ToLocation,
		&r.ToFloor, &r.ShiftType, &r.Date, &r.Message,
	} {
		*f = strings.TrimSpace(*f)
	}
	return r
}
