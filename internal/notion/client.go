// Package notion wraps the Notion API for the capture pipeline: database
// lookup, schema validation, and page construction with tag reconciliation.
package notion

import (
	"context"
	"fmt"
	"strings"

	"github.com/jomei/notionapi"
)

// API is the slice of Notion used by the pipeline. One value is created per
// message from the user's stored integration token.
type API interface {
	// DatabaseByID returns the database shared with the integration whose id
	// matches id, comparing with hyphens stripped on both sides.
	DatabaseByID(ctx context.Context, id string) (*notionapi.Database, error)

	// CreatePage writes a new page into the database described by page.
	CreatePage(ctx context.Context, page *NewPage) (*notionapi.Page, error)
}

// Client implements API against the live Notion service.
type Client struct {
	api *notionapi.Client
}

// NewClient creates a client authenticated with the given integration token.
func NewClient(token string) *Client {
	return &Client{api: notionapi.NewClient(notionapi.Token(token))}
}

// DatabaseByID finds the target database via search rather than a direct GET:
// a direct GET against a database the integration was never connected to fails
// with an opaque error, while the search result set is exactly the databases
// the integration can write to.
func (c *Client) DatabaseByID(ctx context.Context, id string) (*notionapi.Database, error) {
	want := normalizeID(id)
	req := &notionapi.SearchRequest{
		Filter: notionapi.SearchFilter{Value: "database", Property: "object"},
	}

	for {
		resp, err := c.api.Search.Do(ctx, req)
		if err != nil {
			return nil, fmt.Errorf("search databases: %w", err)
		}
		for _, obj := range resp.Results {
			db, ok := obj.(*notionapi.Database)
			if !ok {
				continue
			}
			if normalizeID(db.ID.String()) == want {
				return db, nil
			}
		}
		if !resp.HasMore {
			break
		}
		req.StartCursor = notionapi.Cursor(resp.NextCursor)
	}

	return nil, fmt.Errorf("database %s not shared with the integration", id)
}

// CreatePage writes the page into Notion.
func (c *Client) CreatePage(ctx context.Context, page *NewPage) (*notionapi.Page, error) {
	created, err := c.api.Page.Create(ctx, page.CreateRequest())
	if err != nil {
		return nil, fmt.Errorf("create page: %w", err)
	}
	return created, nil
}

// PageURL renders the canonical link for a created page.
func PageURL(page *notionapi.Page) string {
	return "https://notion.so/" + normalizeID(page.ID.String())
}

func normalizeID(id string) string {
	return strings.ReplaceAll(id, "-", "")
}
