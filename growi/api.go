package growi

import (
	"net/url"
	"strconv"
)

// request describes a single backend HTTP call: verb, path template, query
// parameters and body shape. Dialects produce these; the client executes
// them. Exactly one of form/json may be set.
type request struct {
	method string
	path   string
	query  url.Values
	form   url.Values // urlencoded body
	json   any        // JSON body, marshaled when non-nil
}

// dialect is the internal operation interface both API versions implement.
// Each logical operation maps to exactly one HTTP call; the dialect owns
// the path template, verb, parameter names and payload envelope for its
// wire format. Operations a dialect cannot express return an error from
// the builder, before any network traffic.
type dialect interface {
	name() string

	pageList(ref PageRef, limit, offset int) request
	getPage(ref PageRef) request
	createPage(path, body string) request
	updatePage(pageID, revisionID, body string) request
	renamePage(pageID, revisionID, newPath string) (request, error)
	removePage(pageID string, recursively bool) request
	searchPages(query, path string, limit, offset int) request
	userNames(query string, limit, offset int) (request, error)
	registerUser(name, username, email, password string) request
	uploadAttachment(pageID string) request
	attachmentList(pageID string, limit, offset int) request
	attachmentInfo(attachmentID string) (request, error)
	removeAttachment(attachmentID string) request
}

// dialectFor selects the dialect implementation for a validated config.
func dialectFor(v APIVersion) (dialect, error) {
	switch v {
	case APIVersionV1:
		return apiV1{}, nil
	case APIVersionV3:
		return apiV3{}, nil
	default:
		return nil, configErr("unsupported GROWI API version %q: must be \"1\" or \"3\"", v)
	}
}

// errUnsupported reports an operation the configured dialect cannot express.
func errUnsupported(op string, v APIVersion) error {
	return invalidArgument("%s requires GROWI API version 3; this server is configured for version %s", op, v)
}

// pageNumber converts a (limit, offset) window to the 1-based page number
// the v3 list endpoints paginate by.
func pageNumber(limit, offset int) int {
	return offset/limit + 1
}

// registerForm builds the registerForm[...] body shared by both dialects.
func registerForm(name, username, email, password string) url.Values {
	form := url.Values{}
	form.Set("registerForm[name]", name)
	form.Set("registerForm[username]", username)
	form.Set("registerForm[email]", email)
	form.Set("registerForm[password]", password)
	return form
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
