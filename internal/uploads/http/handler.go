package http

import (
	"github.com/sirupsen/logrus"

	"github.com/error7buddy/KiLagbe.Com/internal/uploads"
)

type Handler struct {
	storage     uploads.Storage
	maxFiles    int
	maxFileSize int64
	log         logrus.FieldLogger
}

func New(storage uploads.Storage, maxFiles int, maxFileSize int64, log logrus.FieldLogger) *Handler {
	return &Handler{
		storage:     storage,
		maxFiles:    maxFiles,
		maxFileSize: maxFileSize,
		log:         log.WithField("component", "uploads"),
	}
}
