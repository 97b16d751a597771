package order

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- Mocks ---

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Insert(ctx context.Context, itemsJSON string, total float64) (int64, time.Time, error) {
	args := m.Called(ctx, itemsJSON, total)
	return args.Get(0).(int64), args.Get(1).(time.Time), args.Error(2)
}

func TestService_PlaceOrder(t *testing.T) {
	ctx := context.Background()

	greenItem := `{"name":"Shoes","quantity":1,"attributes":{"Color":"#00FF00"},"attributeSets":[{"id":"a1","name":"Color","items":[{"id":"i1","displayValue":"Green","value":"#00FF00"}]}]}`

	t.Run("Success resolves Color and persists one row", func(t *testing.T) {
		repo := new(MockRepository)
		now := time.Now()
		repo.On("Insert", ctx, mock.AnythingOfType("string"), 120.00).
			Return(int64(42), now, nil)

		svc := NewService(repo)
		got, err := svc.PlaceOrder(ctx, []string{greenItem}, 120.00)

		require.NoError(t, err)
		assert.Equal(t, "42", got.ID)
		assert.Equal(t, 120.00, got.Total)
		assert.Equal(t, now, got.CreatedAt)
		require.Len(t, got.Items, 1)

		var persisted struct {
			Name       string            `json:"name"`
			Attributes map[string]string `json:"attributes"`
		}
		require.NoError(t, json.Unmarshal([]byte(got.Items[0]), &persisted))
		assert.Equal(t, "Green", persisted.Attributes["Color"])

		// The row holds the resolved item strings, not the raw submission.
		itemsJSON := repo.Calls[0].Arguments.String(1)
		assert.Contains(t, itemsJSON, "Green")
		assert.NotContains(t, itemsJSON, "#00FF00")
		repo.AssertExpectations(t)
	})

	t.Run("ItemCountPreserved", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("Insert", ctx, mock.AnythingOfType("string"), 45.50).
			Return(int64(1), time.Now(), nil)

		svc := NewService(repo)
		items := []string{
			`{"name":"A","quantity":1,"attributes":{}}`,
			`{"name":"B","quantity":2,"attributes":{"Size":"M"}}`,
		}
		got, err := svc.PlaceOrder(ctx, items, 45.50)

		require.NoError(t, err)
		assert.NotEmpty(t, got.ID)
		assert.Len(t, got.Items, len(items))
		assert.Equal(t, 45.50, got.Total)
	})

	t.Run("EmptyOrderRejected", func(t *testing.T) {
		svc := NewService(new(MockRepository))
		_, err := svc.PlaceOrder(ctx, nil, 0)
		assert.ErrorIs(t, err, ErrEmptyOrder)
	})

	t.Run("MalformedItemAbortsBeforeInsert", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		_, err := svc.PlaceOrder(ctx, []string{`{broken`}, 10.00)

		assert.ErrorIs(t, err, ErrMalformedItem)
		repo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("InsertFailureSurfaces", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("Insert", ctx, mock.AnythingOfType("string"), 10.00).
			Return(int64(0), time.Time{}, errors.New("insert order: disk full"))

		svc := NewService(repo)
		_, err := svc.PlaceOrder(ctx, []string{`{"name":"A","quantity":1,"attributes":{}}`}, 10.00)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "disk full")
	})
}
