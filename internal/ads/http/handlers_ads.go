package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/error7buddy/KiLagbe.Com/internal/httpx"
)

const msgAdIDRequired = "Ad ID required"

// Get returns one ad (?id=), an owner's ads (?userId=) or every ad, newest first.
func (h *Handler) Get(c *gin.Context) {
	if id := strings.TrimSpace(c.Query("id")); id != "" {
		ad, err := h.adService.Get(c.Request.Context(), id)
		if err != nil {
			httpx.Error(c, err)
			return
		}
		httpx.OK(c, http.StatusOK, gin.H{"ad": ad})
		return
	}

	h.list(c, c.Query("userId"))
}

// ListByUser is the path-style form of GET /ads?userId=.
func (h *Handler) ListByUser(c *gin.Context) {
	h.list(c, c.Param("userId"))
}

func (h *Handler) list(c *gin.Context, ownerID string) {
	ads, err := h.adService.List(c.Request.Context(), ownerID)
	if err != nil {
		httpx.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, ads)
}

// Create stores a new ad, subject to the owner's free ad limit.
func (h *Handler) Create(c *gin.Context) {
	var body createAdBody
	if !httpx.BindOptionalJSON(c, &body) {
		return
	}

	ad, err := h.adService.Create(c.Request.Context(), body.toRequest())
	if err != nil {
		httpx.Error(c, err)
		return
	}

	httpx.OK(c, http.StatusCreated, gin.H{"ad": ad})
}

// Update applies a partial update to the ad named by ?id=.
func (h *Handler) Update(c *gin.Context) {
	id := strings.TrimSpace(c.Query("id"))
	if id == "" {
		httpx.Fail(c, http.StatusBadRequest, msgAdIDRequired)
		return
	}

	var body updateAdBody
	if !httpx.BindOptionalJSON(c, &body) {
		return
	}

	ad, err := h.adService.Update(c.Request.Context(), id, body.toRequest())
	if err != nil {
		httpx.Error(c, err)
		return
	}

	httpx.OK(c, http.StatusOK, gin.H{"ad": ad})
}

// Delete removes the ad named by ?id= or the :id path segment.
func (h *Handler) Delete(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		id = strings.TrimSpace(c.Query("id"))
	}
	if id == "" {
		httpx.Fail(c, http.StatusBadRequest, msgAdIDRequired)
		return
	}

	if err := h.adService.Delete(c.Request.Context(), id); err != nil {
		httpx.Error(c, err)
		return
	}

	httpx.OK(c, http.StatusOK, nil)
}

// ReconcileQuotas resets per-owner ad counters to the number of ads each owner holds.
func (h *Handler) ReconcileQuotas(c *gin.Context) {
	fixed, err := h.adService.ReconcileQuotas(c.Request.Context())
	if err != nil {
		httpx.Error(c, err)
		return
	}
	httpx.OK(c, http.StatusOK, gin.H{"fixed": fixed})
}
