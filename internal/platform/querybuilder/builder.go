package querybuilder

import (
	"fmt"
	"strconv"
	"strings"
)

// Condition renders one WHERE predicate, appending its bind args.
type Condition func(buf *strings.Builder, args *[]any, argIndex *int)

func Eq(column string, value any) Condition {
	return func(buf *strings.Builder, args *[]any, argIndex *int) {
		buf.WriteString(column)
		buf.WriteString(" = ")
		buf.WriteString(placeholder(*argIndex))
		*args = append(*args, value)
		*argIndex = *argIndex + 1
	}
}

func In(column string, values []any) Condition {
	return func(buf *strings.Builder, args *[]any, argIndex *int) {
		if len(values) == 0 {
			buf.WriteString("1=0")
			return
		}

		buf.WriteString(column)
		buf.WriteString(" IN (")
		for i, v := range values {
			if i > 0 {
				buf.WriteString(", ")
			}
			buf.WriteString(placeholder(*argIndex))
			*args = append(*args, v)
			*argIndex = *argIndex + 1
		}
		buf.WriteString(")")
	}
}

func IsNull(column string) Condition {
	return func(buf *strings.Builder, _ *[]any, _ *int) {
		buf.WriteString(column)
		buf.WriteString(" IS NULL")
	}
}

// Expr embeds a raw fragment, rewriting ? placeholders to positional
// binds.
func Expr(expr string, exprArgs ...any) Condition {
	return func(buf *strings.Builder, args *[]any, argIndex *int) {
		buf.WriteString(rewritePlaceholders(expr, exprArgs, args, argIndex))
	}
}

type SelectBuilder struct {
	columns []string
	table   string
	where   []Condition
	orderBy []string
	limit   int
}

func Select(columns ...string) *SelectBuilder {
	return &SelectBuilder{columns: append([]string(nil), columns...)}
}

func (b *SelectBuilder) From(table string) *SelectBuilder {
	b.table = table
	return b
}

func (b *SelectBuilder) Where(conditions ...Condition) *SelectBuilder {
	b.where = append(b.where, conditions...)
	return b
}

func (b *SelectBuilder) OrderBy(parts ...string) *SelectBuilder {
	b.orderBy = append(b.orderBy, parts...)
	return b
}

func (b *SelectBuilder) Limit(limit int) *SelectBuilder {
	b.limit = limit
	return b
}

func (b *SelectBuilder) ToSQL() (string, []any, error) {
	if len(b.columns) == 0 {
		return "", nil, fmt.Errorf("select columns are required")
	}
	if strings.TrimSpace(b.table) == "" {
		return "", nil, fmt.Errorf("select table is required")
	}

	var buf strings.Builder
	buf.WriteString("SELECT ")
	buf.WriteString(strings.Join(b.columns, ", "))
	buf.WriteString(" FROM ")
	buf.WriteString(b.table)

	args := make([]any, 0, len(b.where))
	argIndex := 1
	appendWhereClause(&buf, b.where, &args, &argIndex)
	if len(b.orderBy) > 0 {
		buf.WriteString(" ORDER BY ")
		buf.WriteString(strings.Join(b.orderBy, ", "))
	}
	if b.limit > 0 {
		buf.WriteString(" LIMIT ")
		buf.WriteString(strconv.Itoa(b.limit))
	}

	return buf.String(), args, nil
}

type InsertBuilder struct {
	table   string
	columns []string
	rows    [][]any
	suffix  string
}

func InsertInto(table string) *InsertBuilder {
	return &InsertBuilder{table: table}
}

func (b *InsertBuilder) Columns(columns ...string) *InsertBuilder {
	b.columns = append([]string(nil), columns...)
	return b
}

func (b *InsertBuilder) Values(values ...any) *InsertBuilder {
	b.rows = append(b.rows, append([]any(nil), values...))
	return b
}

// Suffix appends raw SQL after the VALUES list, e.g. ON CONFLICT.
func (b *InsertBuilder) Suffix(sql string) *InsertBuilder {
	b.suffix = strings.TrimSpace(sql)
	return b
}

func (b *InsertBuilder) ToSQL() (string, []any, error) {
	if strings.TrimSpace(b.table) == "" {
		return "", nil, fmt.Errorf("insert table is required")
	}
	if len(b.columns) == 0 {
		return "", nil, fmt.Errorf("insert columns are required")
	}
	if len(b.rows) == 0 {
		return "", nil, fmt.Errorf("insert values are required")
	}

	var buf strings.Builder
	buf.WriteString("INSERT INTO ")
	buf.WriteString(b.table)
	buf.WriteString(" (")
	buf.WriteString(strings.Join(b.columns, ", "))
	buf.WriteString(") VALUES ")

	args := make([]any, 0, len(b.rows)*len(b.columns))
	argIndex := 1
	for rowIdx, row := range b.rows {
		if len(row) != len(b.columns) {
			return "", nil, fmt.Errorf("insert row %d has %d values, expected %d", rowIdx, len(row), len(b.columns))
		}
		if rowIdx > 0 {
			buf.WriteString(", ")
		}
		buf.WriteString("(")
		for colIdx, value := range row {
			if colIdx > 0 {
				buf.WriteString(", ")
			}
			buf.WriteString(placeholder(argIndex))
			args = append(args, value)
			argIndex++
		}
		buf.WriteString(")")
	}

	if b.suffix != "" {
		buf.WriteString(" ")
		buf.WriteString(rewritePlaceholders(b.suffix, nil, &args, &argIndex))
	}

	return buf.String(), args, nil
}

type UpdateBuilder struct {
	table   string
	columns []string
	values  []any
	where   []Condition
}

func Update(table string) *UpdateBuilder {
	return &UpdateBuilder{table: table}
}

func (b *UpdateBuilder) Set(column string, value any) *UpdateBuilder {
	b.columns = append(b.columns, column)
	b.values = append(b.values, value)
	return b
}

func (b *UpdateBuilder) Where(conditions ...Condition) *UpdateBuilder {
	b.where = append(b.where, conditions...)
	return b
}

func (b *UpdateBuilder) ToSQL() (string, []any, error) {
	if strings.TrimSpace(b.table) == "" {
		return "", nil, fmt.Errorf("update table is required")
	}
	if len(b.columns) == 0 {
		return "", nil, fmt.Errorf("update sets are required")
	}

	var buf strings.Builder
	buf.WriteString("UPDATE ")
	buf.WriteString(b.table)
	buf.WriteString(" SET ")

	args := make([]any, 0, len(b.columns)+len(b.where))
	argIndex := 1
	for i, column := range b.columns {
		if i > 0 {
			buf.WriteString(", ")
		}
		buf.WriteString(column)
		buf.WriteString(" = ")
		buf.WriteString(placeholder(argIndex))
		args = append(args, b.values[i])
		argIndex++
	}

	appendWhereClause(&buf, b.where, &args, &argIndex)

	return buf.String(), args, nil
}

type DeleteBuilder struct {
	table string
	where []Condition
}

func DeleteFrom(table string) *DeleteBuilder {
	return &DeleteBuilder{table: table}
}

func (b *DeleteBuilder) Where(conditions ...Condition) *DeleteBuilder {
	b.where = append(b.where, conditions...)
	return b
}

func (b *DeleteBuilder) ToSQL() (string, []any, error) {
	if strings.TrimSpace(b.table) == "" {
		return "", nil, fmt.Errorf("delete table is required")
	}
	if len(b.where) == 0 {
		return "", nil, fmt.Errorf("delete requires a where clause")
	}

	var buf strings.Builder
	buf.WriteString("DELETE FROM ")
	buf.WriteString(b.table)

	args := make([]any, 0, len(b.where))
	argIndex := 1
	appendWhereClause(&buf, b.where, &args, &argIndex)

	return buf.String(), args, nil
}

func appendWhereClause(buf *strings.Builder, conditions []Condition, args *[]any, argIndex *int) {
	if len(conditions) == 0 {
		return
	}
	buf.WriteString(" WHERE ")
	for i, c := range conditions {
		if i > 0 {
			buf.WriteString(" AND ")
		}
		c(buf, args, argIndex)
	}
}

func placeholder(i int) string {
	return "$" + strconv.Itoa(i)
}

func rewritePlaceholders(expr string, exprArgs []any, args *[]any, argIndex *int) string {
	if len(exprArgs) == 0 {
		return expr
	}

	var out strings.Builder
	next := 0
	for i := 0; i < len(expr); i++ {
		if expr[i] == '?' && next < len(exprArgs) {
			out.WriteString(placeholder(*argIndex))
			*args = append(*args, exprArgs[next])
			*argIndex = *argIndex + 1
			next++
			continue
		}
		out.WriteByte(expr[i])
	}
	return out.String()
}
