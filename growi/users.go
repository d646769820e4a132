package growi

import "context"

// GetUserNames looks up usernames matching a query. GROWI answers with
// usernames grouped by relation to the caller; the groups are flattened
// into one ordered list.
func (c *Client) GetUserNames(ctx context.Context, args UserNamesArgs) (*UserNamesResult, error) {
	if err := requireNonEmpty("query", args.Query); err != nil {
		return nil, err
	}
	limit, offset, err := normalizePagination(args.Limit, args.Offset)
	if err != nil {
		return nil, err
	}

	req, err := c.api.userNames(args.Query, limit, offset)
	if err != nil {
		return nil, err
	}

	var resp struct {
		ActiveUser struct {
			Users      []userData `json:"users"`
			TotalCount int        `json:"totalCount"`
		} `json:"activeUser"`
		InactiveUser struct {
			Users      []userData `json:"users"`
			TotalCount int        `json:"totalCount"`
		} `json:"inactiveUser"`
	}
	if err := c.doJSON(ctx, req, &resp); err != nil {
		return nil, err
	}

	names := make([]string, 0, len(resp.ActiveUser.Users)+len(resp.InactiveUser.Users))
	for _, u := range resp.ActiveUser.Users {
		names = append(names, u.Username)
	}
	for _, u := range resp.InactiveUser.Users {
		names = append(names, u.Username)
	}

	total := resp.ActiveUser.TotalCount + resp.InactiveUser.TotalCount
	if total == 0 {
		total = len(names)
	}
	return &UserNamesResult{Usernames: names, TotalCount: total}, nil
}

// RegisterUser creates a wiki user account.
func (c *Client) RegisterUser(ctx context.Context, args RegisterUserArgs) (*RegisterUserResult, error) {
	if err := requireNonEmpty("name", args.Name); err != nil {
		return nil, err
	}
	if err := requireNonEmpty("username", args.Username); err != nil {
		return nil, err
	}
	if err := requireNonEmpty("email", args.Email); err != nil {
		return nil, err
	}
	if err := requireNonEmpty("password", args.Password); err != nil {
		return nil, err
	}
	if len(args.Password) < 8 {
		return nil, invalidArgument("password must be at least 8 characters")
	}

	req := c.api.registerUser(args.Name, args.Username, args.Email, args.Password)
	if err := c.doJSON(ctx, req, nil); err != nil {
		return nil, err
	}
	return &RegisterUserResult{Registered: true, Username: args.Username}, nil
}

type userData struct {
	Username string `json:"username"`
	Name     string `json:"name"`
}
