package catalog

import (
	"context"
	"time"

	"github.com/Xenpaii/b-store/internal/logger"

	"go.uber.org/zap"
)

// Service serves the full catalog. Category filtering and in-stock-first
// sorting are the client's job, not the server's.
type Service interface {
	ListProducts(ctx context.Context) ([]Product, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) ListProducts(ctx context.Context) ([]Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "ListProducts"),
	)

	start := time.Now()

	products, err := s.repo.ListProducts(ctx)
	if err != nil {
		log.Error("failed to fetch catalog",
			zap.Error(err),
			zap.Duration("duration", time.Since(start)),
		)
		return nil, err
	}

	log.Info("catalog fetched",
		zap.Int("count", len(products)),
		zap.Duration("duration", time.Since(start)),
	)

	return products, nil
}
