package cart

import (
	"sync"

	"github.com/Xenpaii/b-store/internal/catalog"

	"github.com/shopspring/decimal"
)

// Line is one cart entry, uniquely identified by product + selected variants.
type Line struct {
	Product  catalog.Product
	Selected catalog.SelectedVariants
	Quantity int

	identity string
}

// Identity returns the line's stable merge key.
func (l *Line) Identity() string {
	return l.identity
}

// UnitPrice is the parsed numeric price of one unit.
func (l *Line) UnitPrice() decimal.Decimal {
	return ParsePrice(l.Product.Price)
}

// Store is the client-side cart: a single owned mutable resource whose
// mutations are serialized by a mutex. Nothing here touches the network.
type Store struct {
	mu        sync.Mutex
	lines     []*Line
	total     decimal.Decimal
	onNewLine func(*Line)
}

func NewStore() *Store {
	return &Store{total: decimal.Zero}
}

// OnNewLine registers the hook fired when Add creates a genuinely new line.
// Quantity increments of an existing line do not fire it; the cart overlay
// only auto-opens for first insertions.
func (s *Store) OnNewLine(fn func(*Line)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onNewLine = fn
}

// Add puts one unit of the product with the given selection into the cart,
// merging into an existing line with the same identity. A nil selection
// defaults to the first item of every attribute set.
func (s *Store) Add(p catalog.Product, selected catalog.SelectedVariants) *Line {
	if selected == nil {
		selected = catalog.DefaultSelections(p)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := LineIdentity(p.ID, selected)
	price := ParsePrice(p.Price)

	for _, line := range s.lines {
		if line.identity == id {
			line.Quantity++
			s.total = s.total.Add(price)
			return line
		}
	}

	line := &Line{Product: p, Selected: selected, Quantity: 1, identity: id}
	s.lines = append(s.lines, line)
	s.total = s.total.Add(price)

	if s.onNewLine != nil {
		s.onNewLine(line)
	}
	return line
}

// UpdateQuantity replaces the line's quantity, removing it when the new
// quantity drops to zero or below. The total is recomputed from scratch over
// the remaining lines rather than adjusted incrementally.
func (s *Store) UpdateQuantity(line *Line, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.lines[:0]
	for _, l := range s.lines {
		if l.identity != line.identity {
			kept = append(kept, l)
			continue
		}
		if quantity <= 0 {
			continue
		}
		l.Quantity = quantity
		kept = append(kept, l)
	}
	s.lines = kept

	s.total = decimal.Zero
	for _, l := range s.lines {
		s.total = s.total.Add(l.UnitPrice().Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
}

// Remove deletes the line and subtracts its quantity times unit price from
// the total, floored at zero.
func (s *Store) Remove(line *Line) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.lines[:0]
	for _, l := range s.lines {
		if l.identity == line.identity {
			s.total = s.total.Sub(l.UnitPrice().Mul(decimal.NewFromInt(int64(l.Quantity))))
			continue
		}
		kept = append(kept, l)
	}
	s.lines = kept

	if s.total.IsNegative() {
		s.total = decimal.Zero
	}
}

// Clear empties the cart after a successful order.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = nil
	s.total = decimal.Zero
}

// Lines returns a snapshot of the current cart lines.
func (s *Store) Lines() []*Line {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*Line, len(s.lines))
	copy(out, s.lines)
	return out
}

// Total is the running cart total.
func (s *Store) Total() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.total
}

// Count is the header badge number: the sum of all line quantities,
// recomputed on every read.
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for _, l := range s.lines {
		count += l.Quantity
	}
	return count
}
