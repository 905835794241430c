package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/error7buddy/KiLagbe.Com/internal/httpx"
	"github.com/error7buddy/KiLagbe.Com/internal/shifting/domain"
)

func (h *Handler) List(c *gin.Context) {
	orders, err := h.orderService.List(c.Request.Context())
	if err != nil {
		httpx.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (h *Handler) Create(c *gin.Context) {
	var req domain.CreateOrderRequest
	if !httpx.BindOptionalJSON(c, &req) {
		return
	}

	order, err := h.orderService.Create(c.Request.Context(), req)
	if err != nil {
		httpx.Error(c, err)
		return
	}

	httpx.OK(c, http.StatusCreated, gin.H{
		"message": domain.MessageOrderBooked,
		"order":   order,
	})
}

// Update handles PUT ?id=&action=. The only supported action is "complete".
func (h *Handler) Update(c *gin.Context) {
	id := strings.TrimSpace(c.Query("id"))
	if id == "" {
		httpx.Fail(c, http.StatusBadRequest, domain.MessageOrderIDRequired)
		return
	}
	if c.Query("action") != domain.ActionComplete {
		httpx.Fail(c, http.StatusBadRequest, domain.MessageInvalidAction)
		return
	}

	h.complete(c, id)
}

// Complete is the path-style form of PUT ?id=&action=complete.
func (h *Handler) Complete(c *gin.Context) {
	h.complete(c, c.Param("id"))
}

func (h *Handler) complete(c *gin.Context, id string) {
	order, err := h.orderService.Complete(c.Request.Context(), id)
	if err != nil {
		httpx.Error(c, err)
		return
	}
	httpx.OK(c, http.StatusOK, gin.H{"order": order})
}

func (h *Handler) Delete(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		id = strings.TrimSpace(c.Query("id"))
	}
	if id == "" {
		httpx.Fail(c, http.StatusBadRequest, domain.MessageOrderIDRequired)
		return
	}

	if err := h.orderService.Delete(c.Request.Context(), id); err != nil {
		httpx.Error(c, err)
		return
	}
	httpx.OK(c, http.StatusOK, nil)
}
