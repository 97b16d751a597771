package catalog

// ColorAttribute is the only attribute whose raw value gets normalized to its
// display label at order time; every other attribute passes through raw.
const ColorAttribute = "Color"

// ResolveDisplay looks up the display value for rawValue inside the attribute
// set with the given name. The name match is exact and case-sensitive. A miss
// of any kind falls back to the raw value, never an error.
func ResolveDisplay(sets []AttributeSet, setName, rawValue string) string {
	for _, set := range sets {
		if set.Name != setName {
			continue
		}
		for _, item := range set.Items {
			if item.Value == rawValue {
				return item.DisplayValue
			}
		}
	}
	return rawValue
}

// DefaultSelections picks the first item of every attribute set the product
// declares, the selection a fresh cart line starts with.
func DefaultSelections(p Product) SelectedVariants {
	selected := make(SelectedVariants, len(p.Attributes))
	for _, set := range p.Attributes {
		if len(set.Items) == 0 {
			continue
		}
		selected[set.ID] = set.Items[0].Value
	}
	return selected
}

// AttributeName maps an attribute set id to its name, falling back to the id
// when the product does not declare the set.
func AttributeName(sets []AttributeSet, setID string) string {
	for _, set := range sets {
		if set.ID == setID {
			return set.Name
		}
	}
	return setID
}
