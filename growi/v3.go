package growi

import (
	"net/http"
	"net/url"
)

// apiV3 speaks the /_api/v3/* dialect: camelCase parameters (pageId),
// page-number pagination on list endpoints, and JSON bodies for the
// operations that take them. A few operations (page removal, search,
// attachment removal) never got a v3 endpoint and still go through the
// classic paths.
type apiV3 struct{}

func (apiV3) name() string { return "v3" }

func (apiV3) pageList(ref PageRef, limit, offset int) request {
	q := url.Values{}
	if ref.IsPath() {
		q.Set("path", ref.Path)
	} else {
		// Some servers accept pageId for the v3 list as a fallback.
		q.Set("pageId", ref.ID)
	}
	q.Set("limit", itoa(limit))
	q.Set("page", itoa(pageNumber(limit, offset)))
	return request{method: http.MethodGet, path: "/_api/v3/pages/list", query: q}
}

func (apiV3) getPage(ref PageRef) request {
	q := url.Values{}
	if ref.IsPath() {
		q.Set("path", ref.Path)
	} else {
		q.Set("pageId", ref.ID)
	}
	return request{method: http.MethodGet, path: "/_api/v3/page", query: q}
}

func (apiV3) createPage(path, body string) request {
	form := url.Values{}
	form.Set("path", path)
	form.Set("body", body)
	return request{method: http.MethodPost, path: "/_api/v3/page", form: form}
}

func (apiV3) updatePage(pageID, revisionID, body string) request {
	form := url.Values{}
	form.Set("pageId", pageID)
	form.Set("revisionId", revisionID)
	form.Set("body", body)
	return request{method: http.MethodPut, path: "/_api/v3/page", form: form}
}

func (apiV3) renamePage(pageID, revisionID, newPath string) (request, error) {
	return request{
		method: http.MethodPut,
		path:   "/_api/v3/pages/rename",
		json: map[string]any{
			"pageId":           pageID,
			"revisionId":       revisionID,
			"newPagePath":      newPath,
			"isRenameRedirect": false,
			"updateMetadata":   true,
			"isRecursively":    true,
		},
	}, nil
}

func (apiV3) removePage(pageID string, recursively bool) request {
	return apiV1{}.removePage(pageID, recursively)
}

func (apiV3) searchPages(query, path string, limit, offset int) request {
	return apiV1{}.searchPages(query, path, limit, offset)
}

func (apiV3) userNames(query string, limit, offset int) (request, error) {
	q := url.Values{}
	q.Set("q", query)
	q.Set("limit", itoa(limit))
	q.Set("offset", itoa(offset))
	return request{method: http.MethodGet, path: "/_api/v3/users/usernames", query: q}, nil
}

func (apiV3) registerUser(name, username, email, password string) request {
	return request{
		method: http.MethodPost,
		path:   "/_api/v3/register",
		form:   registerForm(name, username, email, password),
	}
}

func (apiV3) uploadAttachment(pageID string) request {
	form := url.Values{}
	form.Set("page_id", pageID)
	return request{method: http.MethodPost, path: "/_api/v3/attachment", form: form}
}

func (apiV3) attachmentList(pageID string, limit, offset int) request {
	q := url.Values{}
	q.Set("pageId", pageID)
	q.Set("limit", itoa(limit))
	q.Set("pageNumber", itoa(pageNumber(limit, offset)))
	return request{method: http.MethodGet, path: "/_api/v3/attachment/list", query: q}
}

func (apiV3) attachmentInfo(attachmentID string) (request, error) {
	return request{method: http.MethodGet, path: "/_api/v3/attachment/" + url.PathEscape(attachmentID)}, nil
}

func (apiV3) removeAttachment(attachmentID string) request {
	return apiV1{}.removeAttachment(attachmentID)
}
