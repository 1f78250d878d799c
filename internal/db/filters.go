package db

import (
	"fmt"
	"strings"

	"todolist/internal/db/models"
)

// condBuilder folds optional filter predicates into a single WHERE
// conjunction. Each expression contains a $%d verb that receives the
// next positional placeholder; absent filter fields are skipped, so an
// empty filter produces no WHERE clause at all.
type condBuilder struct {
	conds []string
	args  []any
}

func (b *condBuilder) add(expr string, arg any) {
	b.conds = append(b.conds, fmt.Sprintf(expr, len(b.args)+1))
	b.args = append(b.args, arg)
}

func (b *condBuilder) where() string {
	if len(b.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(b.conds, " AND ")
}

// page appends ORDER BY / LIMIT / OFFSET for the requested page. The
// sort column has been whitelisted by the caller; only the paging
// values travel as placeholders.
func (b *condBuilder) page(p models.Pageable) string {
	column := p.SortColumn
	if column == "" {
		column = "id"
	}
	direction := "ASC"
	if p.SortDesc {
		direction = "DESC"
	}

	clause := fmt.Sprintf(" ORDER BY %s %s", column, direction)
	clause += fmt.Sprintf(" LIMIT $%d", len(b.args)+1)
	b.args = append(b.args, p.Limit())
	clause += fmt.Sprintf(" OFFSET $%d", len(b.args)+1)
	b.args = append(b.args, p.Offset())
	return clause
}

func tagConds(filter models.TagFilter) *condBuilder {
	b := &condBuilder{}
	if filter.Name != nil {
		b.add("lower(name) LIKE $%d", "%"+strings.ToLower(*filter.Name)+"%")
	}
	return b
}

func taskConds(filter models.TaskFilter) *condBuilder {
	b := &condBuilder{}
	if filter.UserID != nil {
		b.add("t.user_id = $%d", *filter.UserID)
	}
	if filter.Title != nil {
		b.add("lower(t.title) LIKE $%d", "%"+strings.ToLower(*filter.Title)+"%")
	}
	if filter.Priority != nil {
		b.add("t.priority = $%d", *filter.Priority)
	}
	if filter.SeverityTypeCode != nil {
		b.add("t.severity_type = $%d", *filter.SeverityTypeCode)
	}
	if filter.TaskStatusTypeCode != nil {
		b.add("t.status_type = $%d", *filter.TaskStatusTypeCode)
	}
	return b
}
