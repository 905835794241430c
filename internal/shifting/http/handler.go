package http

import "github.com/error7buddy/KiLagbe.Com/internal/shifting/service"

type Handler struct {
	orderService *service.OrderService
}

func New(orderService *service.OrderService) *Handler {
	return &Handler{
		orderService: orderService,
	}
}
