package domain

import "github.com/error7buddy/KiLagbe.Com/internal/common"

var ErrOrderNotFound error = &common.NotFoundError{Message: "Order not found"}

const (
	MessageOrderBooked     = "Shifting order booked"
	MessageOrderIDRequired = "Order ID required"
	MessageInvalidAction   = "Invalid action"

	ActionComplete = "complete"
)
