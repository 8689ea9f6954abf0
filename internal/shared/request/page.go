package request

import "math"

const (
	DefaultPage  = 1
	DefaultLimit = 20
	MaxLimit     = 100
)

// PageQuery is embedded by every list query schema.
type PageQuery struct {
	Page  int `form:"page" binding:"min=1"`
	Limit int `form:"limit" binding:"min=1"`
}

func (q *PageQuery) SetDefaults() {
	if q.Page == 0 {
		q.Page = DefaultPage
	}
	if q.Limit == 0 {
		q.Limit = DefaultLimit
	}
}

// Normalize caps the limit instead of rejecting large values.
func (q *PageQuery) Normalize() {
	if q.Limit > MaxLimit {
		q.Limit = MaxLimit
	}
}

// Offset saturates at math.MaxInt so a page far past the end still selects no rows.
func (q PageQuery) Offset() int {
	if q.Page <= 1 || q.Limit <= 0 {
		return 0
	}
	if q.Page-1 > math.MaxInt/q.Limit {
		return math.MaxInt
	}
	return (q.Page - 1) * q.Limit
}
