package growi

import (
	"net/http"
	"net/url"
)

// apiV1 speaks the classic /_api/* dialect. It addresses pages with
// snake_case parameters (path / page_id) and wraps responses in an
// {"ok": bool} envelope.
type apiV1 struct{}

func (apiV1) name() string { return "v1" }

func (apiV1) pageList(ref PageRef, limit, offset int) request {
	q := url.Values{}
	if ref.IsPath() {
		q.Set("path", ref.Path)
	} else {
		q.Set("page_id", ref.ID)
	}
	q.Set("limit", itoa(limit))
	q.Set("offset", itoa(offset))
	q.Set("page", itoa(pageNumber(limit, offset)))
	return request{method: http.MethodGet, path: "/_api/pages.list", query: q}
}

func (apiV1) getPage(ref PageRef) request {
	q := url.Values{}
	if ref.IsPath() {
		q.Set("path", ref.Path)
	} else {
		q.Set("page_id", ref.ID)
	}
	return request{method: http.MethodGet, path: "/_api/pages.get", query: q}
}

func (apiV1) createPage(path, body string) request {
	form := url.Values{}
	form.Set("path", path)
	form.Set("body", body)
	return request{method: http.MethodPost, path: "/_api/pages.create", form: form}
}

func (apiV1) updatePage(pageID, revisionID, body string) request {
	form := url.Values{}
	form.Set("page_id", pageID)
	form.Set("revision_id", revisionID)
	form.Set("body", body)
	return request{method: http.MethodPost, path: "/_api/pages.update", form: form}
}

func (apiV1) renamePage(pageID, revisionID, newPath string) (request, error) {
	return request{}, errUnsupported("rename_page", APIVersionV1)
}

func (apiV1) removePage(pageID string, recursively bool) request {
	form := url.Values{}
	form.Set("page_id", pageID)
	if recursively {
		form.Set("recursively", "true")
	} else {
		form.Set("recursively", "false")
	}
	return request{method: http.MethodPost, path: "/_api/pages.remove", form: form}
}

func (apiV1) searchPages(query, path string, limit, offset int) request {
	q := url.Values{}
	q.Set("q", query)
	q.Set("path", path)
	q.Set("limit", itoa(limit))
	q.Set("offset", itoa(offset))
	return request{method: http.MethodGet, path: "/_api/search", query: q}
}

func (apiV1) userNames(query string, limit, offset int) (request, error) {
	return request{}, errUnsupported("get_user_names", APIVersionV1)
}

func (apiV1) registerUser(name, username, email, password string) request {
	return request{
		method: http.MethodPost,
		path:   "/_api/register",
		form:   registerForm(name, username, email, password),
	}
}

func (apiV1) uploadAttachment(pageID string) request {
	form := url.Values{}
	form.Set("page_id", pageID)
	return request{method: http.MethodPost, path: "/_api/attachments.add", form: form}
}

func (apiV1) attachmentList(pageID string, limit, offset int) request {
	q := url.Values{}
	q.Set("page_id", pageID)
	q.Set("limit", itoa(limit))
	q.Set("offset", itoa(offset))
	return request{method: http.MethodGet, path: "/_api/attachments.list", query: q}
}

func (apiV1) attachmentInfo(attachmentID string) (request, error) {
	return request{}, errUnsupported("get_attachment_info", APIVersionV1)
}

func (apiV1) removeAttachment(attachmentID string) request {
	form := url.Values{}
	form.Set("attachment_id", attachmentID)
	return request{method: http.MethodPost, path: "/_api/attachments.remove", form: form}
}
