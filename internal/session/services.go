package session

import (
	"context"

	"github.com/miltrack/miltrack/internal/auth"
	"github.com/miltrack/miltrack/internal/blobstore"
	"github.com/miltrack/miltrack/internal/config"
	"github.com/miltrack/miltrack/internal/docstore"
	"github.com/miltrack/miltrack/internal/logging"
)

// Services bundles the three resolved capability handles.
type Services struct {
	Auth  auth.Service
	Docs  docstore.Store
	Blobs blobstore.Store
}

// ResolveServices picks mock or real implementations per capability. The
// choice is a pure function of the feature-flag snapshot, made exactly once;
// nothing re-evaluates it at runtime.
func ResolveServices(ctx context.Context, cfg *config.Config, flags config.FeatureFlags, logger logging.Logger) (Services, error) {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	if flags.MockMode() {
		logger.Info(ctx, "using mock services")
		return Services{
			Auth:  auth.NewMockService(cfg.MockLatency, logger),
			Docs:  docstore.NewMockStore(cfg.MockLatency, logger),
			Blobs: blobstore.NewMockStore(cfg.MockLatency, logger),
		}, nil
	}

	logger.Info(ctx, "using real backend services")

	authSvc, err := auth.NewPostgresService(cfg.DatabaseDSN, cfg.JWTSecret, cfg.AccessTokenValidityDuration, logger)
	if err != nil {
		return Services{}, err
	}

	docs, err := docstore.NewMongoStore(ctx, cfg.MongoURI, cfg.MongoDatabase, logger)
	if err != nil {
		return Services{}, err
	}

	blobs, err := blobstore.NewS3Store(ctx, blobstore.S3Config{
		Bucket:       cfg.S3Bucket,
		Region:       cfg.S3Region,
		BaseEndpoint: cfg.S3BaseEndpoint,
		AccessKey:    cfg.S3AccessKey,
		SecretKey:    cfg.S3SecretKey,
	}, logger)
	if err != nil {
		return Services{}, err
	}

	return Services{Auth: authSvc, Docs: docs, Blobs: blobs}, nil
}
