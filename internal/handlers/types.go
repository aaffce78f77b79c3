package handlers

import (
	"time"

	"github.com/serroba/linkshort/internal/link"
)

// CreateLinkRequest is the request for creating a short link.
type CreateLinkRequest struct {
	Body struct {
		URL      string `doc:"The URL to shorten"                example:"https://example.com/very/long/path" json:"url"`
		RefID    string `doc:"Owner reference for the new link"  json:"ref_id,omitempty"    required:"false"`
		CustomID string `doc:"Custom identifier instead of a generated one" json:"custom_id,omitempty" required:"false"`
	}
}

// CreateLinkResponse is the response for a successfully created short link.
type CreateLinkResponse struct {
	Body struct {
		ID          string    `doc:"The short identifier" json:"id"`
		ShortURL    string    `doc:"The full short URL"   json:"short_url"`
		OriginalURL string    `doc:"The original URL"     json:"original_url"`
		CreatedAt   time.Time `doc:"Creation time"        json:"created_at"`
	}
}

// RedirectRequest is the request for resolving a short link.
type RedirectRequest struct {
	ID string `doc:"The short identifier" example:"abc123" path:"id"`
}

// RedirectResponse issues a temporary redirect to the original URL.
type RedirectResponse struct {
	Status   int
	Location string `header:"Location"`
}

// ListLinksRequest is the request for listing links.
type ListLinksRequest struct {
	RefID string `doc:"Owner reference to scope the listing; omit to walk every link" query:"ref_id" required:"false"`
	Page  int    `doc:"Page number, starting at 1"            query:"page"  required:"false"`
	Limit int    `doc:"Items per page, at most 100"           query:"limit" required:"false"`
}

// ListLinksResponse is one page of links. TotalFetched counts the records in
// this page, not across all pages.
type ListLinksResponse struct {
	Body struct {
		Page         int           `json:"page"`
		Limit        int           `json:"limit"`
		TotalFetched int           `json:"total_fetched"`
		Data         []link.Record `json:"data"`
	}
}

// DeleteLinkRequest is the request for deleting a short link.
type DeleteLinkRequest struct {
	ID    string `doc:"The short identifier to delete" path:"id"`
	RefID string `doc:"Ownership claim; omit to delete unconditionally" query:"ref_id" required:"false"`
}

// DeleteLinkResponse confirms a deletion.
type DeleteLinkResponse struct {
	Body struct {
		Message   string `json:"message"`
		DeletedID string `json:"deleted_id"`
	}
}
