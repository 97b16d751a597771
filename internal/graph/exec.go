package graph

import (
	"context"
	"fmt"
	"time"

	"github.com/Xenpaii/b-store/internal/catalog"
	"github.com/Xenpaii/b-store/internal/order"

	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/validator"
)

// execute dispatches the validated operation's top-level fields. One
// operation per request; the first failing field aborts the whole response.
func (r *Resolver) execute(ctx context.Context, op *ast.OperationDefinition, variables map[string]interface{}) (map[string]interface{}, error) {
	vars, err := validator.VariableValues(Schema, op, variables)
	if err != nil {
		return nil, err
	}

	data := make(map[string]interface{})
	for _, field := range fields(op.SelectionSet) {
		switch field.Name {
		case "products":
			products, err := r.resolveProducts(ctx, field)
			if err != nil {
				return nil, err
			}
			data[field.Alias] = products
		case "placeOrder":
			placed, err := r.resolvePlaceOrder(ctx, field, vars)
			if err != nil {
				return nil, err
			}
			data[field.Alias] = placed
		default:
			return nil, fmt.Errorf("unsupported field %q", field.Name)
		}
	}

	return data, nil
}

func (r *Resolver) resolveProducts(ctx context.Context, field *ast.Field) (interface{}, error) {
	products, err := r.CatalogSvc.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	r.Metrics.CatalogQueries.Inc()

	out := make([]map[string]interface{}, 0, len(products))
	for _, p := range products {
		out = append(out, projectProduct(p, field.SelectionSet))
	}
	return out, nil
}

func (r *Resolver) resolvePlaceOrder(ctx context.Context, field *ast.Field, vars map[string]interface{}) (interface{}, error) {
	items, total, err := placeOrderArgs(field, vars)
	if err != nil {
		return nil, err
	}

	placed, err := r.OrderSvc.PlaceOrder(ctx, items, total)
	if err != nil {
		r.Metrics.OrdersFailed.Inc()
		return nil, err
	}
	r.Metrics.OrdersPlaced.Inc()

	return projectOrder(placed, field.SelectionSet), nil
}

func placeOrderArgs(field *ast.Field, vars map[string]interface{}) ([]string, float64, error) {
	var (
		items []string
		total float64
	)

	for _, arg := range field.Arguments {
		val, err := arg.Value.Value(vars)
		if err != nil {
			return nil, 0, fmt.Errorf("argument %s: %w", arg.Name, err)
		}

		switch arg.Name {
		case "items":
			raw, ok := val.([]interface{})
			if !ok {
				return nil, 0, fmt.Errorf("items must be a list of strings")
			}
			items = make([]string, 0, len(raw))
			for _, v := range raw {
				s, ok := v.(string)
				if !ok {
					return nil, 0, fmt.Errorf("items must be a list of strings")
				}
				items = append(items, s)
			}
		case "total":
			switch v := val.(type) {
			case float64:
				total = v
			case int64:
				total = float64(v)
			default:
				return nil, 0, fmt.Errorf("total must be a number")
			}
		}
	}

	return items, total, nil
}

// fields flattens a selection set to its plain fields. The storefront client
// never sends fragments; anything else is simply skipped.
func fields(set ast.SelectionSet) []*ast.Field {
	out := make([]*ast.Field, 0, len(set))
	for _, sel := range set {
		if f, ok := sel.(*ast.Field); ok {
			out = append(out, f)
		}
	}
	return out
}

func projectProduct(p catalog.Product, set ast.SelectionSet) map[string]interface{} {
	out := make(map[string]interface{})
	for _, f := range fields(set) {
		switch f.Name {
		case "id":
			out[f.Alias] = p.ID
		case "name":
			out[f.Alias] = p.Name
		case "description":
			out[f.Alias] = p.Description
		case "category":
			out[f.Alias] = p.Category
		case "price":
			out[f.Alias] = p.Price
		case "gallery":
			out[f.Alias] = p.Gallery
		case "in_stock":
			out[f.Alias] = p.InStock
		case "attributes":
			sets := make([]map[string]interface{}, 0, len(p.Attributes))
			for _, s := range p.Attributes {
				sets = append(sets, projectAttributeSet(s, f.SelectionSet))
			}
			out[f.Alias] = sets
		}
	}
	return out
}

func projectAttributeSet(s catalog.AttributeSet, set ast.SelectionSet) map[string]interface{} {
	out := make(map[string]interface{})
	for _, f := range fields(set) {
		switch f.Name {
		case "id":
			out[f.Alias] = s.ID
		case "name":
			out[f.Alias] = s.Name
		case "items":
			items := make([]map[string]interface{}, 0, len(s.Items))
			for _, item := range s.Items {
				items = append(items, projectAttributeItem(item, f.SelectionSet))
			}
			out[f.Alias] = items
		}
	}
	return out
}

func projectAttributeItem(item catalog.AttributeItem, set ast.SelectionSet) map[string]interface{} {
	out := make(map[string]interface{})
	for _, f := range fields(set) {
		switch f.Name {
		case "id":
			out[f.Alias] = item.ID
		case "displayValue":
			out[f.Alias] = item.DisplayValue
		case "value":
			out[f.Alias] = item.Value
		}
	}
	return out
}

func projectOrder(o *order.Order, set ast.SelectionSet) map[string]interface{} {
	out := make(map[string]interface{})
	for _, f := range fields(set) {
		switch f.Name {
		case "id":
			out[f.Alias] = o.ID
		case "items":
			out[f.Alias] = o.Items
		case "total":
			out[f.Alias] = o.Total
		case "createdAt":
			out[f.Alias] = o.CreatedAt.Format(time.RFC3339)
		}
	}
	return out
}
