package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildListQuery_BasicSelect(t *testing.T) {
	query, args := BuildListQuery(NewListQueryOptions("users"))

	assert.Equal(t, `SELECT * FROM "users"`, query)
	assert.Empty(t, args)
}

func TestBuildListQuery_WithColumns(t *testing.T) {
	query, args := BuildListQuery(NewListQueryOptions("tasks",
		WithColumns("id", "tasks.title", "COUNT(*) AS count"),
	))

	assert.Equal(t, `SELECT "id", "tasks"."title", COUNT(*) AS "count" FROM "tasks"`, query)
	assert.Empty(t, args)
}

func TestBuildListQuery_CountOnly(t *testing.T) {
	query, args := BuildListQuery(NewListQueryOptions("tasks",
		WithCountOnly(),
		WithCondition(WhereCond("assignee_id", Equal, "u1")),
		WithOrderBy("created_at", "ASC"),
	))

	assert.Equal(t, `SELECT COUNT(*) FROM "tasks" WHERE "assignee_id" = $1`, query)
	assert.Equal(t, []any{"u1"}, args)
}

func TestBuildListQuery_OptionalFiltersAreANDed(t *testing.T) {
	assignee := "u1"
	status := "done"
	var priority *string

	query, args := BuildListQuery(NewListQueryOptions("tasks",
		WithOptionalEqual("assignee_id", &assignee),
		WithOptionalEqual("priority", priority),
		WithOptionalEqual("status", &status),
		WithOrderBy("created_at", "asc"),
	))

	assert.Equal(t,
		`SELECT * FROM "tasks" WHERE "assignee_id" = $1 AND "status" = $2 ORDER BY "created_at" ASC`,
		query)
	assert.Equal(t, []any{"u1", "done"}, args)
}

func TestBuildListQuery_NoFiltersMatchesAll(t *testing.T) {
	var assignee *string
	query, args := BuildListQuery(NewListQueryOptions("tasks", WithOptionalEqual("assignee_id", assignee)))

	assert.Equal(t, `SELECT * FROM "tasks"`, query)
	assert.Empty(t, args)
}

func TestBuildListQuery_InCondition(t *testing.T) {
	query, args := BuildListQuery(NewListQueryOptions("tasks",
		WithCondition(WhereCond("status", In, []string{"todo", "review"})),
		WithCondition(WhereCond("priority", NotEqual, "low")),
	))

	assert.Equal(t, `SELECT * FROM "tasks" WHERE "status" IN ($1, $2) AND "priority" != $3`, query)
	assert.Equal(t, []any{"todo", "review", "low"}, args)
}

func TestBuildListQuery_EmptyInIsSkipped(t *testing.T) {
	query, args := BuildListQuery(NewListQueryOptions("tasks",
		WithCondition(WhereCond("status", In, []string{})),
	))

	assert.Equal(t, `SELECT * FROM "tasks"`, query)
	assert.Empty(t, args)
}

func TestBuildListQuery_GroupBy(t *testing.T) {
	query, args := BuildListQuery(NewListQueryOptions("tasks",
		WithColumns("status", "COUNT(*) AS count"),
		WithCondition(WhereCond("assignee_id", Equal, "u1")),
		WithGroupBy("status"),
	))

	assert.Equal(t,
		`SELECT "status", COUNT(*) AS "count" FROM "tasks" WHERE "assignee_id" = $1 GROUP BY "status"`,
		query)
	assert.Equal(t, []any{"u1"}, args)
}

func TestBuildListQuery_SanitizesIdentifiers(t *testing.T) {
	query, _ := BuildListQuery(NewListQueryOptions(`tasks"; DROP TABLE users; --`,
		WithOrderBy("created_at", "sideways"),
	))

	assert.Equal(t, `SELECT * FROM "tasks""; DROP TABLE users; --" ORDER BY "created_at"`, query)
}

func TestBuildListQuery_Nil(t *testing.T) {
	query, args := BuildListQuery(nil)
	assert.Empty(t, query)
	assert.Nil(t, args)
}
