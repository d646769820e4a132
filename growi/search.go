package growi

import "context"

// SearchPages runs a full-text search, optionally restricted to a subtree.
func (c *Client) SearchPages(ctx context.Context, args SearchPagesArgs) (*SearchPagesResult, error) {
	if err := requireNonEmpty("query", args.Query); err != nil {
		return nil, err
	}
	limit, offset, err := normalizePagination(args.Limit, args.Offset)
	if err != nil {
		return nil, err
	}
	path := args.Path
	if path == "" {
		path = "/"
	}

	var resp struct {
		Meta struct {
			Total int `json:"total"`
		} `json:"meta"`
		Data []searchDoc `json:"data"`
	}
	if err := c.doJSON(ctx, c.api.searchPages(args.Query, path, limit, offset), &resp); err != nil {
		return nil, err
	}

	hits := make([]SearchHit, 0, len(resp.Data))
	for _, d := range resp.Data {
		hits = append(hits, SearchHit{
			Page:  d.page().summary(),
			Score: d.Score,
		})
	}

	total := resp.Meta.Total
	if total == 0 {
		total = offset + len(hits)
	}
	return &SearchPagesResult{
		Hits:      hits,
		TotalHits: total,
		HasMore:   offset+len(hits) < total,
	}, nil
}
