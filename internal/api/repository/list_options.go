package repository

import "strings"

// ListOptions describes the filtering, sorting and paging shared by the user
// and book listing queries. SortBy must already be vetted against the
// entity's whitelist before it reaches a repository; the repositories only
// ever interpolate whitelisted column names into ORDER BY.
type ListOptions struct {
	NameFilter string
	SortBy     string
	Descending bool
	Page       int
	Limit      int
}

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// Normalize clamps paging values into range and fills defaults.
func (o *ListOptions) Normalize() {
	if o.Page < 1 {
		o.Page = DefaultPage
	}
	if o.Limit < 1 || o.Limit > MaxLimit {
		o.Limit = DefaultLimit
	}
}

func (o *ListOptions) offset() int {
	return (o.Page - 1) * o.Limit
}

func (o *ListOptions) order(defaultColumn string) string {
	column := o.SortBy
	if column == "" {
		column = defaultColumn
	}
	direction := "ASC"
	if o.Descending {
		direction = "DESC"
	}
	return column + " " + direction
}

func (o *ListOptions) likePattern() string {
	return "%" + strings.TrimSpace(o.NameFilter) + "%"
}
