package growi

import "context"

// GetPageList lists the pages under a path (or sibling to an id) as an
// ordered window.
func (c *Client) GetPageList(ctx context.Context, args PageListArgs) (*PageListResult, error) {
	ref, err := ParsePageRef(args.PathOrID)
	if err != nil {
		return nil, err
	}
	limit, offset, err := normalizePagination(args.Limit, args.Offset)
	if err != nil {
		return nil, err
	}

	var resp struct {
		Pages      []pageData `json:"pages"`
		TotalCount int        `json:"totalCount"`
	}
	if err := c.doJSON(ctx, c.api.pageList(ref, limit, offset), &resp); err != nil {
		return nil, err
	}

	pages := make([]PageSummary, 0, len(resp.Pages))
	for _, p := range resp.Pages {
		pages = append(pages, p.summary())
	}

	total := resp.TotalCount
	if total == 0 {
		total = offset + len(pages)
	}
	return &PageListResult{
		Pages:      pages,
		TotalCount: total,
		Limit:      limit,
		Offset:     offset,
		HasMore:    offset+len(pages) < total,
	}, nil
}

// ReadPage fetches one page with its full markdown body.
func (c *Client) ReadPage(ctx context.Context, args ReadPageArgs) (*ReadPageResult, error) {
	ref, err := ParsePageRef(args.PathOrID)
	if err != nil {
		return nil, err
	}

	page, err := c.getPageData(ctx, ref)
	if err != nil {
		return nil, err
	}
	return &ReadPageResult{
		Page: page.summary(),
		Body: page.Revision.Body,
	}, nil
}

// CreatePage creates a page at a path that must not already exist. An
// empty body is allowed; GROWI creates the page with empty content.
func (c *Client) CreatePage(ctx context.Context, args CreatePageArgs) (*CreatePageResult, error) {
	if err := requirePagePath("path", args.Path); err != nil {
		return nil, err
	}

	var resp struct {
		Page pageData `json:"page"`
	}
	if err := c.doJSON(ctx, c.api.createPage(args.Path, args.Body), &resp); err != nil {
		return nil, err
	}
	return &CreatePageResult{Page: resp.Page.summary()}, nil
}

// UpdatePage replaces a page body. The current revision id is resolved
// with a read first, so a concurrent edit between the read and the write
// surfaces as a backend conflict rather than a silent overwrite.
func (c *Client) UpdatePage(ctx context.Context, args UpdatePageArgs) (*UpdatePageResult, error) {
	ref, err := ParsePageRef(args.PathOrID)
	if err != nil {
		return nil, err
	}
	if err := requireNonEmpty("body", args.Body); err != nil {
		return nil, err
	}

	pageID, revisionID, err := c.resolveRevision(ctx, ref)
	if err != nil {
		return nil, err
	}

	var resp struct {
		Page pageData `json:"page"`
	}
	if err := c.doJSON(ctx, c.api.updatePage(pageID, revisionID, args.Body), &resp); err != nil {
		return nil, err
	}
	return &UpdatePageResult{Page: resp.Page.summary()}, nil
}

// RenamePage moves a page (and its descendants) to a new path.
func (c *Client) RenamePage(ctx context.Context, args RenamePageArgs) (*RenamePageResult, error) {
	ref, err := ParsePageRef(args.PathOrID)
	if err != nil {
		return nil, err
	}
	if err := requirePagePath("new_path", args.NewPath); err != nil {
		return nil, err
	}
	// Fail before the resolution round trip when the dialect has no
	// rename endpoint.
	if _, err := c.api.renamePage("", "", ""); err != nil {
		return nil, err
	}

	pageID, revisionID, err := c.resolveRevision(ctx, ref)
	if err != nil {
		return nil, err
	}

	req, err := c.api.renamePage(pageID, revisionID, args.NewPath)
	if err != nil {
		return nil, err
	}
	var resp struct {
		Page pageData `json:"page"`
	}
	if err := c.doJSON(ctx, req, &resp); err != nil {
		return nil, err
	}

	page := resp.Page
	if page.Path == "" {
		page.Path = args.NewPath
	}
	return &RenamePageResult{Page: page.summary()}, nil
}

// RemovePage deletes a page. Without Recursively the backend refuses to
// delete a page that has children, which comes back as a conflict.
func (c *Client) RemovePage(ctx context.Context, args RemovePageArgs) (*RemovePageResult, error) {
	ref, err := ParsePageRef(args.PathOrID)
	if err != nil {
		return nil, err
	}

	page, err := c.getPageData(ctx, ref)
	if err != nil {
		return nil, err
	}

	if err := c.doJSON(ctx, c.api.removePage(page.ID, args.Recursively), nil); err != nil {
		return nil, err
	}
	return &RemovePageResult{Removed: true, Path: page.Path}, nil
}

// getPageData fetches the wire page for a ref. A success envelope with an
// empty page means the path does not exist.
func (c *Client) getPageData(ctx context.Context, ref PageRef) (pageData, error) {
	var resp struct {
		Page pageData `json:"page"`
	}
	if err := c.doJSON(ctx, c.api.getPage(ref), &resp); err != nil {
		return pageData{}, err
	}
	if resp.Page.ID == "" {
		return pageData{}, notFound("page %s not found", ref)
	}
	return resp.Page, nil
}

// resolvePageID maps a ref to the backend page id, reading the page when
// the ref is a path.
func (c *Client) resolvePageID(ctx context.Context, ref PageRef) (string, error) {
	if !ref.IsPath() {
		return ref.ID, nil
	}
	page, err := c.getPageData(ctx, ref)
	if err != nil {
		return "", err
	}
	return page.ID, nil
}

// resolveRevision reads the page to obtain the (id, revision id) pair the
// mutation endpoints require.
func (c *Client) resolveRevision(ctx context.Context, ref PageRef) (string, string, error) {
	page, err := c.getPageData(ctx, ref)
	if err != nil {
		return "", "", err
	}
	revisionID := page.revisionID()
	if revisionID == "" {
		return "", "", &Error{Kind: KindBackend, Message: "GROWI returned page " + page.ID + " without a revision id"}
	}
	return page.ID, revisionID, nil
}
