// Package database builds parameterized SELECT statements for list and
// aggregate queries. Identifiers are quoted with pgx; values are always bound
// as parameters.
package database

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/jackc/pgx/v5"
)

type ConditionType string

const (
	Equal    ConditionType = "="
	NotEqual ConditionType = "!="
	In       ConditionType = "IN"
)

type Condition struct {
	Field string
	Type  ConditionType
	Value any
}

func WhereCond(field string, condType ConditionType, value any) Condition {
	return Condition{Field: field, Type: condType, Value: value}
}

// ListQueryOptions describes a single-table SELECT.
type ListQueryOptions struct {
	Table      string
	Columns    []string
	CountOnly  bool
	Conditions []Condition
	GroupBy    []string
	OrderBy    string
	OrderDir   string
}

type ListQueryOption func(*ListQueryOptions)

func NewListQueryOptions(table string, opts ...ListQueryOption) *ListQueryOptions {
	options := &ListQueryOptions{Table: table}
	for _, opt := range opts {
		opt(options)
	}
	return options
}

// WithColumns sets the columns to select. Entries of the form "expr AS alias"
// keep expr verbatim and quote the alias; plain entries are quoted identifiers.
func WithColumns(cols ...string) ListQueryOption {
	return func(o *ListQueryOptions) {
		o.Columns = cols
	}
}

// WithCondition adds a single condition.
func WithCondition(cond Condition) ListQueryOption {
	return func(o *ListQueryOptions) {
		o.Conditions = append(o.Conditions, cond)
	}
}

// WithOptionalEqual adds an equality condition when value is non-nil.
func WithOptionalEqual[T any](field string, value *T) ListQueryOption {
	return func(o *ListQueryOptions) {
		if value != nil {
			o.Conditions = append(o.Conditions, WhereCond(field, Equal, *value))
		}
	}
}

// WithGroupBy groups results by the given columns.
func WithGroupBy(cols ...string) ListQueryOption {
	return func(o *ListQueryOptions) {
		o.GroupBy = cols
	}
}

// WithOrderBy sets the ordering column and direction.
func WithOrderBy(column, direction string) ListQueryOption {
	return func(o *ListQueryOptions) {
		o.OrderBy = column
		o.OrderDir = direction
	}
}

// WithCountOnly sets the query to count only.
func WithCountOnly() ListQueryOption {
	return func(o *ListQueryOptions) {
		o.CountOnly = true
	}
}

func sanitizeIdentifier(ident string) string {
	return pgx.Identifier(strings.Split(ident, ".")).Sanitize()
}

func columnSpec(spec string) string {
	lower := strings.ToLower(spec)
	if i := strings.LastIndex(lower, " as "); i > 0 {
		expr := strings.TrimSpace(spec[:i])
		alias := strings.TrimSpace(spec[i+4:])
		return expr + " AS " + pgx.Identifier{alias}.Sanitize()
	}
	return sanitizeIdentifier(spec)
}

func buildSelectClause(options *ListQueryOptions) string {
	switch {
	case options.CountOnly:
		return "SELECT COUNT(*) "
	case len(options.Columns) == 0:
		return "SELECT * "
	}
	cols := make([]string, len(options.Columns))
	for i, c := range options.Columns {
		cols[i] = columnSpec(c)
	}
	return "SELECT " + strings.Join(cols, ", ") + " "
}

// BuildListQuery constructs a SQL query string and arguments from options.
// Conditions are AND-combined; a query without conditions matches every row.
//
//	query, args := BuildListQuery(NewListQueryOptions("tasks",
//		WithCondition(WhereCond("status", Equal, "done")),
//		WithOrderBy("created_at", "ASC"),
//	))
func BuildListQuery(options *ListQueryOptions) (string, []any) {
	if options == nil {
		return "", nil
	}

	var query strings.Builder
	query.WriteString(buildSelectClause(options))
	query.WriteString("FROM ")
	query.WriteString(sanitizeIdentifier(options.Table))

	whereClause, args := buildWhereClause(options.Conditions)
	if whereClause != "" {
		query.WriteString(" ")
		query.WriteString(whereClause)
	}

	if options.CountOnly {
		return query.String(), args
	}

	if len(options.GroupBy) > 0 {
		groups := make([]string, len(options.GroupBy))
		for i, g := range options.GroupBy {
			groups[i] = sanitizeIdentifier(g)
		}
		query.WriteString(" GROUP BY ")
		query.WriteString(strings.Join(groups, ", "))
	}

	if options.OrderBy != "" {
		query.WriteString(" ORDER BY ")
		query.WriteString(sanitizeIdentifier(options.OrderBy))
		if dir := strings.ToUpper(options.OrderDir); dir == "ASC" || dir == "DESC" {
			query.WriteString(" ")
			query.WriteString(dir)
		}
	}

	return query.String(), args
}

func buildWhereClause(conds []Condition) (string, []any) {
	parts := make([]string, 0, len(conds))
	args := []any{}

	for _, cond := range conds {
		if cond.Field == "" {
			continue
		}
		field := sanitizeIdentifier(cond.Field)
		switch cond.Type {
		case Equal, NotEqual:
			args = append(args, cond.Value)
			parts = append(parts, fmt.Sprintf("%s %s $%d", field, cond.Type, len(args)))
		case In:
			rv := reflect.ValueOf(cond.Value)
			if rv.Kind() != reflect.Slice || rv.Len() == 0 {
				continue
			}
			placeholders := make([]string, rv.Len())
			for i := range rv.Len() {
				args = append(args, rv.Index(i).Interface())
				placeholders[i] = fmt.Sprintf("$%d", len(args))
			}
			parts = append(parts, fmt.Sprintf("%s IN (%s)", field, strings.Join(placeholders, ", ")))
		}
	}

	if len(parts) == 0 {
		return "", args
	}
	return "WHERE " + strings.Join(parts, " AND "), args
}
