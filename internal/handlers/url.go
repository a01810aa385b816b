package handlers

import (
	"context"
	"net/http"
	"net/url"

	"github.com/pkg/errors"
	"github.com/serroba/shortlink/internal/shortener"
	"go.uber.org/zap"
)

// Message shown on the index page when the store cannot answer a lookup.
const lookupFailedMessage = "Link not found"

// ShortLinkHandler handles short link creation and redirects.
type ShortLinkHandler struct {
	links     *shortener.Service
	responder *ErrorResponder
	logger    *zap.Logger
}

// NewShortLinkHandler creates a new short link handler.
func NewShortLinkHandler(links *shortener.Service, responder *ErrorResponder, logger *zap.Logger) *ShortLinkHandler {
	return &ShortLinkHandler{
		links:     links,
		responder: responder,
		logger:    logger,
	}
}

func (h *ShortLinkHandler) CreateShortLink(
	ctx context.Context, req *CreateShortLinkRequest,
) (*CreateShortLinkResponse, error) {
	in := shortener.CreateInput{
		Slug: req.Body.Slug,
		URL:  req.Body.URL,
	}
	if req.Body.Created != nil {
		in.Created = *req.Body.Created
	}

	link, err := h.links.Create(ctx, in)
	if err != nil {
		return nil, h.responder.Respond(err)
	}

	h.logger.Info("short link created",
		zap.String("slug", string(link.Slug)),
		zap.String("url", link.URL),
	)

	resp := &CreateShortLinkResponse{}
	resp.Body = ShortLinkBody{
		ID:      link.ID,
		Slug:    string(link.Slug),
		URL:     link.URL,
		Created: link.Created,
	}

	return resp, nil
}

// RedirectToURL redirects to the stored URL. Unknown slugs and store failures
// redirect to the index page with an error query parameter instead of failing.
func (h *ShortLinkHandler) RedirectToURL(ctx context.Context, req *RedirectRequest) (*RedirectResponse, error) {
	link, err := h.links.Resolve(ctx, req.Slug)
	if err != nil {
		if errors.Is(err, shortener.ErrNotFound) {
			return redirect(errorPage(req.Slug + " not found")), nil
		}

		h.logger.Error("failed to resolve short link",
			zap.String("slug", req.Slug),
			zap.Error(err),
		)

		return redirect(errorPage(lookupFailedMessage)), nil
	}

	return redirect(link.URL), nil
}

func redirect(location string) *RedirectResponse {
	return &RedirectResponse{
		Status:   http.StatusFound,
		Location: location,
	}
}

func errorPage(message string) string {
	return "/?" + url.Values{"error": {message}}.Encode()
}
