package storefront

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/Xenpaii/b-store/internal/cart"
	"github.com/Xenpaii/b-store/internal/catalog"
	"github.com/Xenpaii/b-store/internal/logger"
	"github.com/Xenpaii/b-store/internal/order"

	"go.uber.org/zap"
)

// SubmitState is the explicit request state gating the submit action.
type SubmitState int

const (
	StateIdle SubmitState = iota
	StateInFlight
	StateSucceeded
	StateFailed
)

func (s SubmitState) String() string {
	switch s {
	case StateInFlight:
		return "in-flight"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	default:
		return "idle"
	}
}

var (
	ErrEmptyCart = errors.New("cart is empty")
	ErrInFlight  = errors.New("order submission already in flight")
)

const placeOrderMutation = `
	mutation PlaceOrder($items: [String!]!, $total: Float!) {
		placeOrder(items: $items, total: $total) {
			id
			items
			total
			createdAt
		}
	}
`

// Submitter converts the current cart into a persisted order in a single
// network round-trip. A second Submit while one is outstanding is rejected,
// not queued; this guard is client-side only, the server does not deduplicate.
type Submitter struct {
	store      *cart.Store
	baseURL    string
	httpClient *http.Client

	mu    sync.Mutex
	state SubmitState
}

func NewSubmitter(cfg Config, store *cart.Store) *Submitter {
	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	return &Submitter{store: store, baseURL: cfg.APIBaseURL, httpClient: client}
}

func (s *Submitter) State() SubmitState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Submit serializes the cart, sends the placeOrder mutation, and reconciles
// the cart with the outcome: any failure leaves it untouched, success clears
// it and returns the persisted order.
func (s *Submitter) Submit(ctx context.Context) (*order.Order, error) {
	s.mu.Lock()
	if s.state == StateInFlight {
		s.mu.Unlock()
		return nil, ErrInFlight
	}

	lines := s.store.Lines()
	if len(lines) == 0 {
		s.mu.Unlock()
		return nil, ErrEmptyCart
	}
	s.state = StateInFlight
	s.mu.Unlock()

	placed, err := s.send(ctx, lines)

	s.mu.Lock()
	if err != nil {
		s.state = StateFailed
	} else {
		s.state = StateSucceeded
	}
	s.mu.Unlock()

	if err != nil {
		return nil, err
	}

	s.store.Clear()
	return placed, nil
}

func (s *Submitter) send(ctx context.Context, lines []*cart.Line) (*order.Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "submitter"),
		zap.String("method", "Submit"),
	)

	items := make([]string, 0, len(lines))
	for _, line := range lines {
		encoded, err := encodeLine(line)
		if err != nil {
			return nil, err
		}
		items = append(items, encoded)
	}

	total, _ := s.store.Total().Float64()

	body, err := json.Marshal(map[string]interface{}{
		"query": placeOrderMutation,
		"variables": map[string]interface{}{
			"items": items,
			"total": total,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("encode order payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("submit order: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("submit order: unexpected status %s", resp.Status)
	}

	var decoded struct {
		Data struct {
			PlaceOrder struct {
				ID        string   `json:"id"`
				Items     []string `json:"items"`
				Total     float64  `json:"total"`
				CreatedAt string   `json:"createdAt"`
			} `json:"placeOrder"`
		} `json:"data"`
		Errors []wireError `json:"errors"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode order response: %w", err)
	}

	if len(decoded.Errors) > 0 {
		return nil, fmt.Errorf("submit order: %s", decoded.Errors[0].Message)
	}

	createdAt, err := time.Parse(time.RFC3339, decoded.Data.PlaceOrder.CreatedAt)
	if err != nil {
		createdAt = time.Time{}
	}

	log.Info("order placed",
		zap.String("order_id", decoded.Data.PlaceOrder.ID),
		zap.Int("items", len(items)),
		zap.Float64("total", total),
	)

	return &order.Order{
		ID:        decoded.Data.PlaceOrder.ID,
		Items:     decoded.Data.PlaceOrder.Items,
		Total:     decoded.Data.PlaceOrder.Total,
		CreatedAt: createdAt,
	}, nil
}

// encodeLine builds the independently JSON-encoded wire string for one cart
// line. Attribute keys are translated from set ids to set names and the
// product's attribute definitions ride along so the server can resolve the
// Color selection without a catalog lookup. The client sends raw values; the
// server-side resolution is authoritative.
func encodeLine(line *cart.Line) (string, error) {
	attrs := make(map[string]string, len(line.Selected))
	for setID, raw := range line.Selected {
		attrs[catalog.AttributeName(line.Product.Attributes, setID)] = raw
	}

	b, err := json.Marshal(order.SubmittedItem{
		Name:          line.Product.Name,
		Quantity:      line.Quantity,
		Attributes:    attrs,
		AttributeSets: line.Product.Attributes,
	})
	if err != nil {
		return "", fmt.Errorf("encode cart line %s: %w", line.Identity(), err)
	}
	return string(b), nil
}
