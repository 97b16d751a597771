package order

import (
	"encoding/json"
	"fmt"

	"github.com/Xenpaii/b-store/internal/catalog"
)

// DecodeItem parses one independently JSON-encoded order line off the wire.
func DecodeItem(raw string) (*SubmittedItem, error) {
	var item SubmittedItem
	if err := json.Unmarshal([]byte(raw), &item); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedItem, err)
	}
	return &item, nil
}

// resolveItem normalizes a submitted line for persistence. The Color
// selection is rewritten to its display label against the line's own embedded
// attribute definitions; every other attribute key copies through verbatim.
func resolveItem(item *SubmittedItem) persistedItem {
	attrs := make(map[string]string, len(item.Attributes))
	for name, raw := range item.Attributes {
		if name == catalog.ColorAttribute {
			attrs[name] = catalog.ResolveDisplay(item.AttributeSets, catalog.ColorAttribute, raw)
			continue
		}
		attrs[name] = raw
	}

	return persistedItem{
		Name:       item.Name,
		Quantity:   item.Quantity,
		Attributes: attrs,
	}
}

// encodeItem serializes a resolved line back into its per-line string form.
func encodeItem(item persistedItem) (string, error) {
	b, err := json.Marshal(item)
	if err != nil {
		return "", fmt.Errorf("encode order item: %w", err)
	}
	return string(b), nil
}
