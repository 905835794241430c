package service

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/error7buddy/KiLagbe.Com/internal/common"
	"github.com/error7buddy/KiLagbe.Com/internal/logger"
	"github.com/error7buddy/KiLagbe.Com/internal/metrics"
	"github.com/error7buddy/KiLagbe.Com/internal/shifting/domain"
	"github.com/error7buddy/KiLagbe.Com/internal/shifting/repository"
)

// OrderService handles shifting order bookings
type OrderService struct {
	repo repository.Repository
	log  logrus.FieldLogger
}

func NewOrderService(repo repository.Repository, log logrus.FieldLogger) *OrderService {
	return &OrderService{
		repo: repo,
		log:  log.WithField("component", "shifting"),
	}
}

func (s *OrderService) List(ctx context.Context) ([]domain.Order, error) {
	return s.repo.List(ctx)
}

// Create books a new order in the Pending state.
func (s *OrderService) Create(ctx context.Context, req domain.CreateOrderRequest) (*domain.Order, error) {
	req = req.Trimmed()
	if err := common.Validate(req, ""); err != nil {
		return nil, err
	}

	order := &domain.Order{
		Name:         req.Name,
		Phone:        req.Phone,
		FromLocation: req.FromLocation,
		FromFloor:    req.FromFloor,
		ToLocation:   req.ToLocation,
		ToFloor:      req.ToFloor,
		ShiftType:    req.ShiftType,
		Date:         req.Date,
		Message:      req.Message,
		Status:       domain.StatusPending,
	}
	if err := s.repo.Create(ctx, order); err != nil {
		return nil, err
	}

	metrics.RecordOrderBooked()
	logger.FromContext(ctx, s.log).WithFields(logrus.Fields{"order_id": order.ID, "shift_type": order.ShiftType}).Info("shifting order booked")
	return order, nil
}

// Complete marks the order Completed. Completing an already completed order
// succeeds and leaves it unchanged.
func (s *OrderService) Complete(ctx context.Context, id string) (*domain.Order, error) {
	order, err := s.repo.SetStatus(ctx, strings.TrimSpace(id), domain.StatusCompleted)
	if err != nil {
		return nil, err
	}

	metrics.RecordOrderCompleted()
	logger.FromContext(ctx, s.log).WithField("order_id", order.ID).Info("shifting order completed")
	return order, nil
}

func (s *OrderService) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	logger.FromContext(ctx, s.log).WithField("order_id", id).Info("shifting order deleted")
	return nil
}
