package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/serroba/linkshort/internal/analytics"
	"github.com/serroba/linkshort/internal/link"
	"github.com/serroba/linkshort/internal/messaging"
	"go.uber.org/zap"
)

const (
	defaultLimit = 10
	maxLimit     = 100
)

// LinkHandler translates create/list/delete/redirect intents into link store
// calls and maps store errors to the outward status vocabulary. It holds the
// configured base URL; nothing below this layer reads configuration.
type LinkHandler struct {
	store          *link.Store
	generate       link.Generator
	baseURL        string
	publishCreated messaging.Publish[analytics.LinkCreatedEvent]
	publishVisited messaging.Publish[analytics.LinkVisitedEvent]
	publishDeleted messaging.Publish[analytics.LinkDeletedEvent]
	logger         *zap.Logger
}

// NewLinkHandler creates the handler with its collaborators injected.
func NewLinkHandler(
	store *link.Store,
	generate link.Generator,
	baseURL string,
	publishCreated messaging.Publish[analytics.LinkCreatedEvent],
	publishVisited messaging.Publish[analytics.LinkVisitedEvent],
	publishDeleted messaging.Publish[analytics.LinkDeletedEvent],
	logger *zap.Logger,
) *LinkHandler {
	return &LinkHandler{
		store:          store,
		generate:       generate,
		baseURL:        baseURL,
		publishCreated: publishCreated,
		publishVisited: publishVisited,
		publishDeleted: publishDeleted,
		logger:         logger,
	}
}

// CreateLink creates a short link under a custom identifier or a generated
// one. Identifier collisions come back as 409 regardless of which path chose
// the identifier; there is no generate-and-retry loop.
func (h *LinkHandler) CreateLink(ctx context.Context, req *CreateLinkRequest) (*CreateLinkResponse, error) {
	id := req.Body.CustomID
	if id == "" {
		id = h.generate()
	}

	record, err := h.store.Create(ctx, link.CreateParams{
		ID:          id,
		OriginalURL: req.Body.URL,
		ShortURL:    h.baseURL + "/" + id,
		RefID:       req.Body.RefID,
	})
	if err != nil {
		if errors.Is(err, link.ErrConflict) {
			return nil, huma.Error409Conflict("identifier already taken, please choose another")
		}

		h.logger.Error("failed to create link", zap.String("id", id), zap.Error(err))

		return nil, huma.Error500InternalServerError("failed to create link")
	}

	meta := RequestMetaFromContext(ctx)
	event := &analytics.LinkCreatedEvent{
		ID:          record.ID,
		OriginalURL: record.OriginalURL,
		ShortURL:    record.ShortURL,
		RefID:       record.RefID,
		CreatedAt:   record.CreatedAt,
		ClientIP:    meta.ClientIP,
		UserAgent:   meta.UserAgent,
	}

	if err := h.publishCreated(event); err != nil {
		h.logger.Error("failed to publish link created event",
			zap.String("id", record.ID),
			zap.Error(err),
		)
	}

	resp := &CreateLinkResponse{}
	resp.Body.ID = record.ID
	resp.Body.ShortURL = record.ShortURL
	resp.Body.OriginalURL = record.OriginalURL
	resp.Body.CreatedAt = record.CreatedAt

	return resp, nil
}

// Redirect resolves a short link and issues a 307 to the original URL. A
// record that exists but no longer decodes is reported as 404 here; the
// distinction stays internal.
func (h *LinkHandler) Redirect(ctx context.Context, req *RedirectRequest) (*RedirectResponse, error) {
	record, err := h.store.GetByID(ctx, req.ID)
	if err != nil {
		switch {
		case errors.Is(err, link.ErrNotFound):
			return nil, huma.Error404NotFound("link not found")
		case errors.Is(err, link.ErrCorruptRecord):
			h.logger.Warn("serving not found for corrupt record", zap.String("id", req.ID))

			return nil, huma.Error404NotFound("link not found")
		default:
			h.logger.Error("failed to resolve link", zap.String("id", req.ID), zap.Error(err))

			return nil, huma.Error500InternalServerError("failed to resolve link")
		}
	}

	meta := RequestMetaFromContext(ctx)
	event := &analytics.LinkVisitedEvent{
		ID:        record.ID,
		VisitedAt: time.Now().UTC(),
		ClientIP:  meta.ClientIP,
		UserAgent: meta.UserAgent,
		Referrer:  meta.Referrer,
	}

	if err := h.publishVisited(event); err != nil {
		h.logger.Error("failed to publish link visited event",
			zap.String("id", record.ID),
			zap.Error(err),
		)
	}

	return &RedirectResponse{
		Status:   http.StatusTemporaryRedirect,
		Location: record.OriginalURL,
	}, nil
}

// ListLinks returns one page of links. Scoped by ref_id it pages the owner's
// records oldest first; unscoped it walks the whole primary table in
// identifier order.
func (h *LinkHandler) ListLinks(ctx context.Context, req *ListLinksRequest) (*ListLinksResponse, error) {
	page := req.Page
	if page < 1 {
		page = 1
	}

	limit := req.Limit
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	records, err := h.store.List(ctx, req.RefID, page, limit)
	if err != nil {
		h.logger.Error("failed to list links", zap.String("refId", req.RefID), zap.Error(err))

		return nil, huma.Error500InternalServerError("failed to list links")
	}

	resp := &ListLinksResponse{}
	resp.Body.Page = page
	resp.Body.Limit = limit
	resp.Body.TotalFetched = len(records)
	resp.Body.Data = records

	return resp, nil
}

// DeleteLink deletes a short link. A supplied ref_id must match the record's
// owner; without one the deletion is unconditional, even for owned records.
// That bypass is long-standing observable behavior and is kept deliberately.
func (h *LinkHandler) DeleteLink(ctx context.Context, req *DeleteLinkRequest) (*DeleteLinkResponse, error) {
	if err := h.store.Delete(ctx, req.ID, req.RefID); err != nil {
		switch {
		case errors.Is(err, link.ErrNotFound):
			return nil, huma.Error404NotFound("link not found")
		case errors.Is(err, link.ErrForbidden):
			return nil, huma.Error403Forbidden("you are not authorized to delete this link")
		default:
			h.logger.Error("failed to delete link", zap.String("id", req.ID), zap.Error(err))

			return nil, huma.Error500InternalServerError("failed to delete link")
		}
	}

	event := &analytics.LinkDeletedEvent{
		ID:        req.ID,
		RefID:     req.RefID,
		DeletedAt: time.Now().UTC(),
	}

	if err := h.publishDeleted(event); err != nil {
		h.logger.Error("failed to publish link deleted event",
			zap.String("id", req.ID),
			zap.Error(err),
		)
	}

	resp := &DeleteLinkResponse{}
	resp.Body.Message = "short link deleted successfully"
	resp.Body.DeletedID = req.ID

	return resp, nil
}
