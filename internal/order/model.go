package order

import (
	"time"

	"github.com/Xenpaii/b-store/internal/catalog"
)

// Order is created exactly once per successful submission and never mutated.
// Items carry the resolved per-line JSON strings as persisted.
type Order struct {
	ID        string
	Items     []string
	Total     float64
	CreatedAt time.Time
}

// SubmittedItem is the wire shape of one order line. Attributes maps the
// attribute set name to the raw selected value; AttributeSets embeds the
// product's attribute definitions so resolution needs no catalog lookup.
type SubmittedItem struct {
	Name          string                 `json:"name"`
	Quantity      int                    `json:"quantity"`
	Attributes    map[string]string      `json:"attributes"`
	AttributeSets []catalog.AttributeSet `json:"attributeSets,omitempty"`
}

// persistedItem is what actually lands in the orders row: the definitions are
// stripped, the Color selection is replaced by its display label.
type persistedItem struct {
	Name       string            `json:"name"`
	Quantity   int               `json:"quantity"`
	Attributes map[string]string `json:"attributes"`
}
