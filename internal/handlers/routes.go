package handlers

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

// RegisterRoutes registers the short link routes.
func RegisterRoutes(api huma.API, h *ShortLinkHandler) {
	// POST / - Create short link
	huma.Register(api, huma.Operation{
		OperationID: "create-short-link",
		Method:      http.MethodPost,
		Path:        "/",
		Summary:     "Create short link",
		Description: "Stores a short link for the URL, generating a slug when none is given.",
		Tags:        []string{"Links"},
		Errors:      []int{http.StatusBadRequest, http.StatusConflict, http.StatusInternalServerError},
	}, h.CreateShortLink)

	// GET /{slug} - Redirect to stored URL
	huma.Register(api, huma.Operation{
		OperationID:   "redirect-short-link",
		Method:        http.MethodGet,
		Path:          "/{slug}",
		Summary:       "Redirect to stored URL",
		Description:   "Redirects to the URL stored for the slug, or to the index page with an error.",
		Tags:          []string{"Links"},
		DefaultStatus: http.StatusFound,
	}, h.RedirectToURL)
}
