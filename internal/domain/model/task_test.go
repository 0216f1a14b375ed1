package model

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/target/recruit-board/internal/errors"
)

const validUUID = "3b241101-e2bb-4255-8caf-4136c566a962"

func TestParseTaskStatus(t *testing.T) {
	s, ok := ParseTaskStatus(" In_Progress ")
	assert.True(t, ok)
	assert.Equal(t, TaskStatusInProgress, s)

	_, ok = ParseTaskStatus("blocked")
	assert.False(t, ok)
}

func TestParseTaskPriority(t *testing.T) {
	p, ok := ParseTaskPriority("HIGH")
	assert.True(t, ok)
	assert.Equal(t, TaskPriorityHigh, p)

	_, ok = ParseTaskPriority("urgent")
	assert.False(t, ok)
}

func TestTaskInput_Validate_AppliesDefaults(t *testing.T) {
	in := TaskInput{Title: "  Phone screen ", AssigneeID: validUUID}

	require.NoError(t, in.Validate())
	assert.Equal(t, "Phone screen", in.Title)
	assert.Equal(t, TaskStatusTodo, in.Status)
	assert.Equal(t, TaskPriorityMedium, in.Priority)
}

func TestTaskInput_Validate_Errors(t *testing.T) {
	tests := []struct {
		name      string
		in        TaskInput
		wantField string
	}{
		{name: "missing title", in: TaskInput{AssigneeID: validUUID}, wantField: "title"},
		{name: "long title", in: TaskInput{Title: strings.Repeat("x", 256), AssigneeID: validUUID}, wantField: "title"},
		{name: "missing assignee", in: TaskInput{Title: "t"}, wantField: "assignee_id"},
		{name: "bad assignee", in: TaskInput{Title: "t", AssigneeID: "nope"}, wantField: "assignee_id"},
		{name: "bad status", in: TaskInput{Title: "t", AssigneeID: validUUID, Status: "blocked"}, wantField: "status"},
		{name: "bad priority", in: TaskInput{Title: "t", AssigneeID: validUUID, Priority: "urgent"}, wantField: "priority"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.in.Validate()
			require.Error(t, err)
			assert.True(t, apperrors.IsValidation(err))
			assert.Equal(t, tt.wantField, apperrors.GetField(err))
		})
	}
}

func TestPatchRequests_Validate(t *testing.T) {
	status := UpdateTaskStatusRequest{Status: "Done"}
	require.NoError(t, status.Validate())
	assert.Equal(t, TaskStatusDone, status.Status)

	assert.Error(t, (&UpdateTaskStatusRequest{}).Validate())
	assert.Error(t, (&UpdateTaskPriorityRequest{Priority: "urgent"}).Validate())
	assert.NoError(t, (&UpdateTaskPriorityRequest{Priority: "low"}).Validate())
	assert.Error(t, (&UpdateTaskAssigneeRequest{AssigneeID: "42"}).Validate())
	assert.NoError(t, (&UpdateTaskAssigneeRequest{AssigneeID: validUUID}).Validate())
}

func TestTaskFilter_Validate(t *testing.T) {
	bad := TaskStatus("blocked")
	assert.Error(t, TaskFilter{Status: &bad}.Validate())

	id := "not-a-uuid"
	assert.Error(t, TaskFilter{AssigneeID: &id}.Validate())

	assert.NoError(t, TaskFilter{}.Validate())
}

func TestZeroFillStatusCounts(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		got := ZeroFillStatusCounts(nil)
		assert.Equal(t, []StatusCount{
			{Status: TaskStatusTodo, Count: 0},
			{Status: TaskStatusInProgress, Count: 0},
			{Status: TaskStatusReview, Count: 0},
			{Status: TaskStatusDone, Count: 0},
		}, got)
	})

	t.Run("partial", func(t *testing.T) {
		got := ZeroFillStatusCounts(map[TaskStatus]int{TaskStatusDone: 3, TaskStatusTodo: 1})
		require.Len(t, got, 4)
		assert.Equal(t, StatusCount{Status: TaskStatusTodo, Count: 1}, got[0])
		assert.Equal(t, StatusCount{Status: TaskStatusReview, Count: 0}, got[2])
		assert.Equal(t, StatusCount{Status: TaskStatusDone, Count: 3}, got[3])
	})
}
