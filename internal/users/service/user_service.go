package service

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/error7buddy/KiLagbe.Com/internal/common"
	"github.com/error7buddy/KiLagbe.Com/internal/logger"
	"github.com/error7buddy/KiLagbe.Com/internal/metrics"
	"github.com/error7buddy/KiLagbe.Com/internal/users/domain"
	"github.com/error7buddy/KiLagbe.Com/internal/users/repository"
)

type UserService struct {
	repo repository.Repository
	log  logrus.FieldLogger
}

func NewUserService(repo repository.Repository, log logrus.FieldLogger) *UserService {
	return &UserService{
		repo: repo,
		log:  log.WithField("component", "users"),
	}
}

// FindOrCreate returns the user for req.UserID, creating it on first sight.
// The email of an existing user is never changed.
func (s *UserService) FindOrCreate(ctx context.Context, req domain.FindOrCreateRequest) (*domain.User, bool, error) {
	req.UserID = strings.TrimSpace(req.UserID)
	req.Email = strings.TrimSpace(req.Email)
	if err := common.Validate(req, domain.MessageUserIDRequired); err != nil {
		return nil, false, err
	}

	user, created, err := s.repo.FindOrCreate(ctx, req.UserID, req.Email)
	if err != nil {
		return nil, false, err
	}

	if created {
		metrics.RecordUserCreated()
		logger.FromContext(ctx, s.log).WithField("firebase_uid", user.FirebaseUID).Info("user created")
	}
	return user, created, nil
}
