package growi

import "strings"

// normalizePagination applies the default/clamp rules shared by every
// windowed operation: zero means the default window, negatives are
// rejected, and oversized limits are clamped rather than refused.
func normalizePagination(limit, offset int) (int, int, error) {
	if limit < 0 {
		return 0, 0, invalidArgument("limit must not be negative, got %d", limit)
	}
	if offset < 0 {
		return 0, 0, invalidArgument("offset must not be negative, got %d", offset)
	}
	if limit == 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return limit, offset, nil
}

// requireNonEmpty rejects a missing or whitespace-only required argument.
func requireNonEmpty(name, value string) error {
	if strings.TrimSpace(value) == "" {
		return invalidArgument("%s is required", name)
	}
	return nil
}

// requirePagePath rejects anything that is not an absolute wiki path.
func requirePagePath(name, value string) error {
	if err := requireNonEmpty(name, value); err != nil {
		return err
	}
	if !strings.HasPrefix(value, "/") {
		return invalidArgument("%s must start with /, got %q", name, value)
	}
	return nil
}
