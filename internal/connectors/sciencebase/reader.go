package sciencebase

import (
	"context"
	"net/url"
	"strconv"

	"github.com/custodia-labs/crc-harvest/internal/core/ports/driven"
	"github.com/custodia-labs/crc-harvest/internal/retry"
)

// DefaultListPageSize is the number of items requested per listing page.
const DefaultListPageSize = 1000

// Ensure Reader implements the interface.
var _ driven.CatalogReader = (*Reader)(nil)

// Reader lists the items under a parent collection.
type Reader struct {
	client   *Client
	policy   retry.Policy
	pageSize int
}

// NewReader creates a reader requesting pageSize items per page.
func NewReader(client *Client, policy retry.Policy, pageSize int) *Reader {
	if pageSize < 1 {
		pageSize = DefaultListPageSize
	}
	return &Reader{client: client, policy: policy, pageSize: pageSize}
}

// ListItems returns one page of items. The continuation is the previous
// page's nextlink URL.
func (r *Reader) ListItems(ctx context.Context, parentID, continuation string) (*driven.ItemPage, error) {
	reqURL := continuation
	if reqURL == "" {
		reqURL = r.firstPageURL(parentID)
	}

	var page itemPage
	err := r.policy.Do(ctx, "sciencebase list "+parentID, func() error {
		page = itemPage{}
		if err := r.client.getJSON(ctx, reqURL, &page); err != nil {
			if !IsRetryable(err) {
				return retry.Permanent(err)
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	out := &driven.ItemPage{Items: make([]driven.CatalogItem, 0, len(page.Items))}
	for _, it := range page.Items {
		out.Items = append(out.Items, it.catalogItem())
	}
	if page.NextLink != nil && page.NextLink.URL != reqURL {
		out.Next = page.NextLink.URL
	}
	return out, nil
}

func (r *Reader) firstPageURL(parentID string) string {
	q := url.Values{}
	q.Set("parentId", parentID)
	q.Set("max", strconv.Itoa(r.pageSize))
	q.Set("fields", "identifiers")
	q.Set("format", "json")
	return r.client.BaseURL() + "/items?" + q.Encode()
}
