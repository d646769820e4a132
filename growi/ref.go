package growi

// PageRef designates a wiki page by exactly one of its two identities:
// the slash-delimited path (canonical identity in GROWI) or the opaque
// backend-assigned id. Which form was supplied decides which request
// parameter the dialect sends; no format guessing happens beyond the
// leading-slash check, since id formats are backend-internal.
type PageRef struct {
	Path string
	ID   string
}

// ParsePageRef classifies a caller-supplied page designation. A value
// starting with "/" is a path; anything else is treated as an id and the
// backend reports not-found if it isn't one.
func ParsePageRef(s string) (PageRef, error) {
	if s == "" {
		return PageRef{}, invalidArgument("page path or id is required")
	}
	if s[0] == '/' {
		return PageRef{Path: s}, nil
	}
	return PageRef{ID: s}, nil
}

// IsPath reports whether the reference carries a path.
func (r PageRef) IsPath() bool {
	return r.Path != ""
}

func (r PageRef) String() string {
	if r.IsPath() {
		return r.Path
	}
	return r.ID
}
