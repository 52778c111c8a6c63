package storage

import (
	"strings"

	"billbook/internal/core"
)

// sortColumns maps sort fields to columns. Only these names ever reach the
// ORDER BY clause.
var sortColumns = map[core.SortField]string{
	core.SortByTime:   "time",
	core.SortByAmount: "amount_cents",
}

// whereClause renders q as a WHERE clause (including the keyword) and its
// arguments. An empty query renders an empty clause.
func whereClause(q core.BillQuery) (string, []any) {
	var conds []string
	var args []any

	if len(q.CategoryIDs) > 0 {
		marks := strings.TrimSuffix(strings.Repeat("?,", len(q.CategoryIDs)), ",")
		conds = append(conds, "category_id IN ("+marks+")")
		for _, id := range q.CategoryIDs {
			args = append(args, id)
		}
	}
	if q.Type != nil {
		conds = append(conds, "type = ?")
		args = append(args, string(*q.Type))
	}
	if q.Start != nil {
		conds = append(conds, "time >= ?")
		args = append(args, q.Start.UnixMilli())
	}
	if q.End != nil {
		conds = append(conds, "time <= ?")
		args = append(args, q.End.UnixMilli())
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// orderClause renders the sort terms in order, with rowid as the final
// tie-break so pages do not overlap.
func orderClause(terms []core.OrderTerm) string {
	parts := make([]string, 0, len(terms)+1)
	for _, t := range terms {
		col, ok := sortColumns[t.Field]
		if !ok {
			continue
		}
		dir := "ASC"
		if t.Direction == core.Desc {
			dir = "DESC"
		}
		parts = append(parts, col+" "+dir)
	}
	parts = append(parts, "rowid ASC")
	return " ORDER BY " + strings.Join(parts, ", ")
}
