package catalog

// AttributeItem is one selectable value of an attribute set. Value is the
// raw storable form (a hex code for colors), DisplayValue the human label.
type AttributeItem struct {
	ID           string `json:"id"`
	DisplayValue string `json:"displayValue"`
	Value        string `json:"value"`
}

// AttributeSet is a named axis of product configuration (Color, Size, ...).
type AttributeSet struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Items []AttributeItem `json:"items"`
}

// Product is read-only to the cart/order core once loaded from the catalog.
type Product struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Category    string         `json:"category"`
	Price       string         `json:"price"`
	Gallery     []string       `json:"gallery"`
	InStock     bool           `json:"in_stock"`
	Attributes  []AttributeSet `json:"attributes"`
}

// SelectedVariants maps an attribute set id to the chosen item's raw value.
type SelectedVariants map[string]string
