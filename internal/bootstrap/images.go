package bootstrap

import (
	"context"
	"fmt"

	"github.com/error7buddy/KiLagbe.Com/config"
	"github.com/error7buddy/KiLagbe.Com/internal/uploads"
)

// OpenImageStorage returns the configured image store. localDir is set only
// for local storage, where the router must serve the files itself.
func OpenImageStorage(ctx context.Context, cfg *config.Config) (storage uploads.Storage, localDir string, err error) {
	switch cfg.Images.Storage {
	case config.ImageStorageLocal:
		s, err := uploads.NewLocalStorage(cfg.Images.UploadDir, cfg.Server.PublicBaseURL)
		if err != nil {
			return nil, "", err
		}
		return s, s.Dir(), nil
	case config.ImageStorageS3:
		s, err := uploads.NewS3Storage(ctx, cfg.Images)
		if err != nil {
			return nil, "", err
		}
		return s, "", nil
	default:
		return nil, "", fmt.Errorf("unknown IMAGE_STORAGE %q", cfg.Images.Storage)
	}
}
