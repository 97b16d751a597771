package order

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Xenpaii/b-store/internal/logger"

	"go.uber.org/zap"
)

type Service interface {
	PlaceOrder(ctx context.Context, items []string, total float64) (*Order, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// PlaceOrder decodes each submitted line, re-resolves the Color selection to
// its display label, and persists the whole order as a single row. A
// malformed line aborts the submission before anything is written.
func (s *service) PlaceOrder(ctx context.Context, items []string, total float64) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "PlaceOrder"),
	)

	start := time.Now()

	if len(items) == 0 {
		return nil, ErrEmptyOrder
	}

	resolved := make([]string, 0, len(items))
	for i, raw := range items {
		item, err := DecodeItem(raw)
		if err != nil {
			log.Warn("rejecting order with malformed item",
				zap.Int("index", i),
				zap.Error(err),
			)
			return nil, fmt.Errorf("item %d: %w", i, err)
		}

		line, err := encodeItem(resolveItem(item))
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		resolved = append(resolved, line)
	}

	itemsJSON, err := json.Marshal(resolved)
	if err != nil {
		return nil, fmt.Errorf("encode order items: %w", err)
	}

	id, createdAt, err := s.repo.Insert(ctx, string(itemsJSON), total)
	if err != nil {
		log.Error("failed to persist order",
			zap.Error(err),
			zap.Duration("duration", time.Since(start)),
		)
		return nil, err
	}

	log.Info("order placed",
		zap.Int64("order_id", id),
		zap.Int("items", len(resolved)),
		zap.Float64("total", total),
		zap.Duration("duration", time.Since(start)),
	)

	return &Order{
		ID:        fmt.Sprint(id),
		Items:     resolved,
		Total:     total,
		CreatedAt: createdAt,
	}, nil
}
