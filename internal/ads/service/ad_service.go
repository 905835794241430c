package service

import (
	"context"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/error7buddy/KiLagbe.Com/internal/ads/domain"
	"github.com/error7buddy/KiLagbe.Com/internal/ads/repository"
	"github.com/error7buddy/KiLagbe.Com/internal/common"
	"github.com/error7buddy/KiLagbe.Com/internal/logger"
	"github.com/error7buddy/KiLagbe.Com/internal/metrics"
)

const createRequiredMessage = "User ID, title and description are required"

// AdService handles business logic for advertisements
type AdService struct {
	repo        repository.Repository
	freeAdLimit int
	log         logrus.FieldLogger
}

// NewAdService creates a new AdService
func NewAdService(repo repository.Repository, freeAdLimit int, log logrus.FieldLogger) *AdService {
	return &AdService{
		repo:        repo,
		freeAdLimit: freeAdLimit,
		log:         log.WithField("component", "ads"),
	}
}

// List returns every ad, or one owner's ads when ownerID is set, newest first.
func (s *AdService) List(ctx context.Context, ownerID string) ([]domain.Ad, error) {
	return s.repo.List(ctx, strings.TrimSpace(ownerID))
}

func (s *AdService) Get(ctx context.Context, id string) (*domain.Ad, error) {
	return s.repo.GetByID(ctx, strings.TrimSpace(id))
}

// Create validates req and stores a new unpaid ad if the owner still has a free slot.
func (s *AdService) Create(ctx context.Context, req domain.CreateAdRequest) (*domain.Ad, error) {
	req.UserID = strings.TrimSpace(req.UserID)
	req.Title = strings.TrimSpace(req.Title)
	req.Description = strings.TrimSpace(req.Description)

	if err := common.Validate(req, createRequiredMessage); err != nil {
		return nil, err
	}

	ad := &domain.Ad{
		UserID:      req.UserID,
		Title:       req.Title,
		Description: req.Description,
		BHK:         req.BHK,
		Address:     req.Address,
		Images:      nonNilImages(req.Images),
		IsPaid:      false,
	}

	if err := s.repo.CreateWithinLimit(ctx, ad, s.freeAdLimit); err != nil {
		if errors.Is(err, domain.ErrQuotaReached) {
			metrics.RecordQuotaRejected()
			logger.FromContext(ctx, s.log).WithField("user_id", req.UserID).Warn("free ad limit reached")
			return nil, domain.NewQuotaError(s.freeAdLimit)
		}
		return nil, err
	}

	metrics.RecordAdCreated()
	logger.FromContext(ctx, s.log).WithFields(logrus.Fields{"ad_id": ad.ID, "user_id": ad.UserID}).Info("ad created")
	return ad, nil
}

// Update applies a partial update. Title and description may be changed but not blanked.
func (s *AdService) Update(ctx context.Context, id string, req domain.UpdateAdRequest) (*domain.Ad, error) {
	var blank []string
	req.Title, blank = trimRequired(req.Title, "title", blank)
	req.Description, blank = trimRequired(req.Description, "description", blank)
	if len(blank) > 0 {
		return nil, common.NewValidationError("", blank...)
	}
	req.Images = nonNilImages(req.Images)

	ad, err := s.repo.Update(ctx, strings.TrimSpace(id), req)
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx, s.log).WithField("ad_id", ad.ID).Info("ad updated")
	return ad, nil
}

func (s *AdService) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	logger.FromContext(ctx, s.log).WithField("ad_id", id).Info("ad deleted")
	return nil
}

// ReconcileQuotas corrects drifted per-owner counters when the backend keeps them
// and returns how many were changed.
func (s *AdService) ReconcileQuotas(ctx context.Context) (int, error) {
	rec, ok := s.repo.(repository.QuotaReconciler)
	if !ok {
		return 0, nil
	}

	fixed, err := rec.ReconcileQuotas(ctx)
	if err != nil {
		return fixed, err
	}
	if fixed > 0 {
		logger.FromContext(ctx, s.log).WithField("fixed", fixed).Warn("ad quota counters corrected")
	}
	return fixed, nil
}

func trimRequired(v *string, field string, blank []string) (*string, []string) {
	if v == nil {
		return nil, blank
	}
	t := strings.TrimSpace(*v)
	if t == "" {
		blank = append(blank, field)
	}
	return &t, blank
}

func nonNilImages(in []string) []string {
	out := make([]string, 0, len(in))
	for _, u := range in {
		if u = strings.TrimSpace(u); u != "" {
			out = append(out, u)
		}
	}
	return out
}
