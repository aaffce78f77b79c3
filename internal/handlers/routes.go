package handlers

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

// RegisterRoutes registers the link routes. The redirect endpoint is public;
// the /api routes sit behind the auth gate middleware.
func RegisterRoutes(api huma.API, h *LinkHandler, authGate func(ctx huma.Context, next func(huma.Context))) {
	huma.Register(api, huma.Operation{
		OperationID:   "create-link",
		Method:        http.MethodPost,
		Path:          "/api/urls",
		Summary:       "Create short link",
		Description:   "Creates a short link with a custom or generated identifier.",
		Tags:          []string{"Links"},
		DefaultStatus: http.StatusCreated,
		Middlewares:   huma.Middlewares{authGate},
	}, h.CreateLink)

	huma.Register(api, huma.Operation{
		OperationID: "list-links",
		Method:      http.MethodGet,
		Path:        "/api/urls",
		Summary:     "List links",
		Description: "Lists links, paginated. Scope with ref_id to page one owner's links in creation order.",
		Tags:        []string{"Links"},
		Middlewares: huma.Middlewares{authGate},
	}, h.ListLinks)

	huma.Register(api, huma.Operation{
		OperationID: "delete-link",
		Method:      http.MethodDelete,
		Path:        "/api/{id}",
		Summary:     "Delete link",
		Description: "Deletes a short link, verifying ownership when a ref_id claim is supplied.",
		Tags:        []string{"Links"},
		Middlewares: huma.Middlewares{authGate},
	}, h.DeleteLink)

	huma.Register(api, huma.Operation{
		OperationID: "redirect-link",
		Method:      http.MethodGet,
		Path:        "/{id}",
		Summary:     "Redirect to original URL",
		Description: "Resolves a short identifier and redirects to its original URL.",
		Tags:        []string{"Links"},
	}, h.Redirect)
}
