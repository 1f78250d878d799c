package models

// TaskTag is a row in the task_tags join table. Two associations are
// equal when both ids match; the composite primary key enforces that.
type TaskTag struct {
	TaskID int64 `db:"task_id"`
	TagID  int64 `db:"tag_id"`
}

// TagFilter holds the optional predicates for listing tags.
// Nil fields impose no constraint.
type TagFilter struct {
	Name *string
}

// TaskFilter holds the optional predicates for listing tasks.
// Present fields are combined with AND; an empty filter is unrestricted.
type TaskFilter struct {
	UserID             *int64
	Title              *string
	Priority           *int
	SeverityTypeCode   *int
	TaskStatusTypeCode *int
}

// Pageable describes one page of a list query.
type Pageable struct {
	Page       int
	Size       int
	SortColumn string
	SortDesc   bool
}

func (p Pageable) Limit() int {
	return p.Size
}

func (p Pageable) Offset() int {
	return p.Page * p.Size
}
