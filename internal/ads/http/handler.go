package http

import "github.com/error7buddy/KiLagbe.Com/internal/ads/service"

type Handler struct {
	adService *service.AdService
}

func New(adService *service.AdService) *Handler {
	return &Handler{
		adService: adService,
	}
}
