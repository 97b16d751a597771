package graph

import (
	_ "embed"

	"github.com/Xenpaii/b-store/internal/catalog"
	"github.com/Xenpaii/b-store/internal/metrics"
	"github.com/Xenpaii/b-store/internal/order"

	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"
)

//go:embed schema.graphql
var schemaSDL string

// Schema is the storefront's query surface, loaded once at startup.
var Schema = gqlparser.MustLoadSchema(&ast.Source{
	Name:  "schema.graphql",
	Input: schemaSDL,
})

type Resolver struct {
	CatalogSvc catalog.Service
	OrderSvc   order.Service
	Metrics    *metrics.Registry
}
