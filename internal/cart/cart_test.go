package cart

import (
	"testing"

	"github.com/Xenpaii/b-store/internal/catalog"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func shoes() catalog.Product {
	return catalog.Product{
		ID:    "p1",
		Name:  "Running Shoes",
		Price: "$120.00",
		Attributes: []catalog.AttributeSet{
			{
				ID:   "a1",
				Name: "Color",
				Items: []catalog.AttributeItem{
					{ID: "i1", Value: "#00FF00", DisplayValue: "Green"},
					{ID: "i2", Value: "#000000", DisplayValue: "Black"},
				},
			},
			{
				ID:   "a2",
				Name: "Size",
				Items: []catalog.AttributeItem{
					{ID: "s1", Value: "40", DisplayValue: "40"},
					{ID: "s2", Value: "41", DisplayValue: "41"},
				},
			},
		},
	}
}

// expectedTotal recomputes the invariant total from the store's lines.
func expectedTotal(s *Store) decimal.Decimal {
	sum := decimal.Zero
	for _, l := range s.Lines() {
		sum = sum.Add(l.UnitPrice().Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	return sum
}

func TestStore_AddMergesIdenticalSelections(t *testing.T) {
	s := NewStore()
	p := shoes()

	s.Add(p, catalog.SelectedVariants{"a1": "#00FF00", "a2": "40"})
	s.Add(p, catalog.SelectedVariants{"a2": "40", "a1": "#00FF00"}) // same selection, different key order

	lines := s.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 2, lines[0].Quantity)
	assert.True(t, s.Total().Equal(decimal.RequireFromString("240.00")))
}

func TestStore_AddDistinctSelectionsStayDistinct(t *testing.T) {
	s := NewStore()
	p := shoes()

	s.Add(p, catalog.SelectedVariants{"a1": "#00FF00", "a2": "40"})
	s.Add(p, catalog.SelectedVariants{"a1": "#000000", "a2": "40"})

	assert.Len(t, s.Lines(), 2)
	assert.Equal(t, 2, s.Count())
}

func TestStore_AddDefaultsToFirstItems(t *testing.T) {
	s := NewStore()
	line := s.Add(shoes(), nil)

	assert.Equal(t, catalog.SelectedVariants{"a1": "#00FF00", "a2": "40"}, line.Selected)
}

func TestStore_OnNewLineFiresOnlyForNewLines(t *testing.T) {
	s := NewStore()
	fired := 0
	s.OnNewLine(func(*Line) { fired++ })

	p := shoes()
	sel := catalog.SelectedVariants{"a1": "#00FF00", "a2": "40"}
	s.Add(p, sel)
	s.Add(p, sel) // increment, must not fire
	s.Add(p, catalog.SelectedVariants{"a1": "#000000", "a2": "40"})

	assert.Equal(t, 2, fired)
}

func TestStore_UpdateQuantity(t *testing.T) {
	s := NewStore()
	line := s.Add(shoes(), nil)

	s.UpdateQuantity(line, 5)
	assert.Equal(t, 5, s.Lines()[0].Quantity)
	assert.True(t, s.Total().Equal(decimal.RequireFromString("600.00")))

	t.Run("Zero removes the line", func(t *testing.T) {
		s.UpdateQuantity(line, 0)
		assert.Empty(t, s.Lines())
		assert.True(t, s.Total().IsZero())
	})
}

func TestStore_Remove(t *testing.T) {
	s := NewStore()
	p := shoes()
	line := s.Add(p, nil)
	s.Add(p, nil)
	other := s.Add(p, catalog.SelectedVariants{"a1": "#000000", "a2": "41"})

	s.Remove(line)

	lines := s.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, other.Identity(), lines[0].Identity())
	assert.True(t, s.Total().Equal(decimal.RequireFromString("120.00")))
}

func TestStore_TotalNeverNegative(t *testing.T) {
	s := NewStore()
	line := s.Add(shoes(), nil)
	s.Remove(line)
	s.Remove(line) // removing again must not drive the total below zero

	assert.False(t, s.Total().IsNegative())
	assert.True(t, s.Total().IsZero())
}

func TestStore_Clear(t *testing.T) {
	s := NewStore()
	s.Add(shoes(), nil)
	s.Add(shoes(), catalog.SelectedVariants{"a1": "#000000", "a2": "41"})

	s.Clear()

	assert.Empty(t, s.Lines())
	assert.True(t, s.Total().IsZero())
	assert.Equal(t, 0, s.Count())
}

// The reported total must always equal the sum over lines of
// quantity x parsed unit price, for any mutation sequence.
func TestStore_TotalInvariant(t *testing.T) {
	s := NewStore()
	p := shoes()
	cheap := catalog.Product{ID: "p2", Name: "Socks", Price: "$9.99"}

	l1 := s.Add(p, nil)
	s.Add(p, nil)
	l2 := s.Add(cheap, nil)
	assert.True(t, s.Total().Equal(expectedTotal(s)))

	s.UpdateQuantity(l2, 7)
	assert.True(t, s.Total().Equal(expectedTotal(s)))

	s.UpdateQuantity(l1, 1)
	assert.True(t, s.Total().Equal(expectedTotal(s)))

	s.Remove(l1)
	assert.True(t, s.Total().Equal(expectedTotal(s)))

	s.UpdateQuantity(l2, 0)
	assert.True(t, s.Total().Equal(expectedTotal(s)))
	assert.True(t, s.Total().IsZero())
}

func TestParsePrice(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"$120.00", "120.00"},
		{"€45.50", "45.50"},
		{"9.99", "9.99"},
		{"USD 1,299.95", "1299.95"},
		{"-$3.50", "-3.50"},
		{"", "0"},
		{"N/A", "0"},
	}

	for _, tc := range cases {
		got := ParsePrice(tc.in)
		assert.True(t, got.Equal(decimal.RequireFromString(tc.want)), "ParsePrice(%q) = %s", tc.in, got)
	}
}

func TestLineIdentity(t *testing.T) {
	t.Run("Key order does not matter", func(t *testing.T) {
		a := LineIdentity("p1", catalog.SelectedVariants{"a1": "x", "a2": "y"})
		b := LineIdentity("p1", catalog.SelectedVariants{"a2": "y", "a1": "x"})
		assert.Equal(t, a, b)
	})

	t.Run("Different values differ", func(t *testing.T) {
		a := LineIdentity("p1", catalog.SelectedVariants{"a1": "x"})
		b := LineIdentity("p1", catalog.SelectedVariants{"a1": "z"})
		assert.NotEqual(t, a, b)
	})

	t.Run("Different products differ", func(t *testing.T) {
		sel := catalog.SelectedVariants{"a1": "x"}
		assert.NotEqual(t, LineIdentity("p1", sel), LineIdentity("p2", sel))
	})
}
