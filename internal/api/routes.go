package api

import (
	"fmt"
	"net/http"

	"github.com/Vinayaksharma17/Blockchain-Supplychain-Management/internal/config"
	"github.com/Vinayaksharma17/Blockchain-Supplychain-Management/internal/products"
	"github.com/Vinayaksharma17/Blockchain-Supplychain-Management/pkg/openapi"
	"github.com/Vinayaksharma17/Blockchain-Supplychain-Management/pkg/routes"
)

func registerRoutes(
	mux *http.ServeMux,
	domain *Domain,
	cfg *config.Config,
) ([]string, error) {
	productsHandler := domain.Products.Handler(cfg.API.MaxBodySizeBytes())
	groups := []routes.Group{productsHandler.Routes()}

	if doc := &cfg.API.OpenAPI; !doc.Disabled {
		spec := openapi.NewSpec(doc.Title, cfg.Version)
		spec.SetDescription(doc.Description)
		spec.AddServer(cfg.API.BasePath)
		spec.Components.AddSchemas(products.Schemas())
		spec.AddPaths(productsHandler.Paths())

		specBytes, err := openapi.MarshalJSON(spec)
		if err != nil {
			return nil, fmt.Errorf("marshal openapi spec: %w", err)
		}
		groups = append(groups, routes.Group{
			Routes: []routes.Route{
				{Method: http.MethodGet, Pattern: doc.Path, Handler: openapi.ServeSpec(specBytes)},
			},
		})
	}

	return routes.Register(mux, groups...), nil
}
