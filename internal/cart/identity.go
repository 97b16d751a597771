package cart

import (
	"encoding/json"

	"github.com/Xenpaii/b-store/internal/catalog"
)

// LineIdentity derives the stable identity of a cart line from the product id
// and its selected variants. json.Marshal sorts map keys, so the same
// selection always serializes identically regardless of insertion order.
func LineIdentity(productID string, selected catalog.SelectedVariants) string {
	b, err := json.Marshal(selected)
	if err != nil {
		// A map[string]string never fails to marshal; keep the product
		// id alone as a degenerate identity rather than panic.
		return productID
	}
	return productID + "-" + string(b)
}
