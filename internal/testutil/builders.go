package testutil

import (
	"fmt"
	"sync/atomic"

	"github.com/target/recruit-board/internal/domain/model"
)

//nolint:gochecknoglobals // monotonic suffix keeps generated emails unique within a test binary
var emailSeq atomic.Int64

// UserInputBuilder provides a fluent interface for building UserInput objects for testing.
type UserInputBuilder struct {
	in *model.UserInput
}

// NewUserInput creates a UserInputBuilder with a unique email and the backend role.
func NewUserInput() *UserInputBuilder {
	n := emailSeq.Add(1)
	return &UserInputBuilder{
		in: &model.UserInput{
			Name:  fmt.Sprintf("Candidate %d", n),
			Email: fmt.Sprintf("candidate%d@example.com", n),
			Role:  model.RoleBackend,
		},
	}
}

// WithName sets the name.
func (b *UserInputBuilder) WithName(name string) *UserInputBuilder {
	b.in.Name = name
	return b
}

// WithEmail sets the email.
func (b *UserInputBuilder) WithEmail(email string) *UserInputBuilder {
	b.in.Email = email
	return b
}

// WithRole sets the role.
func (b *UserInputBuilder) WithRole(role model.Role) *UserInputBuilder {
	b.in.Role = role
	return b
}

// WithNotes sets the notes.
func (b *UserInputBuilder) WithNotes(notes string) *UserInputBuilder {
	b.in.Notes = &notes
	return b
}

// WithResume attaches a resume id.
func (b *UserInputBuilder) WithResume(resumeID string) *UserInputBuilder {
	b.in.ResumeID = &resumeID
	return b
}

// Build returns the built input.
func (b *UserInputBuilder) Build() *model.UserInput {
	return b.in
}

// TaskInputBuilder provides a fluent interface for building TaskInput objects for testing.
type TaskInputBuilder struct {
	in *model.TaskInput
}

// NewTaskInput creates a TaskInputBuilder assigned to assigneeID with default status and priority.
func NewTaskInput(assigneeID string) *TaskInputBuilder {
	return &TaskInputBuilder{
		in: &model.TaskInput{
			Title:       "Review resume",
			Description: "First pass review",
			AssigneeID:  assigneeID,
			Status:      model.TaskStatusTodo,
			Priority:    model.TaskPriorityMedium,
		},
	}
}

// WithTitle sets the title.
func (b *TaskInputBuilder) WithTitle(title string) *TaskInputBuilder {
	b.in.Title = title
	return b
}

// WithStatus sets the status.
func (b *TaskInputBuilder) WithStatus(status model.TaskStatus) *TaskInputBuilder {
	b.in.Status = status
	return b
}

// WithPriority sets the priority.
func (b *TaskInputBuilder) WithPriority(priority model.TaskPriority) *TaskInputBuilder {
	b.in.Priority = priority
	return b
}

// WithAssignee sets the assignee.
func (b *TaskInputBuilder) WithAssignee(assigneeID string) *TaskInputBuilder {
	b.in.AssigneeID = assigneeID
	return b
}

// Build returns the built input.
func (b *TaskInputBuilder) Build() *model.TaskInput {
	return b.in
}

// MinimalPDF returns a small but well-formed PDF document.
func MinimalPDF() []byte {
	return []byte("%PDF-1.4\n" +
		"1 0 obj<</Type/Catalog/Pages 2 0 R>>endobj\n" +
		"2 0 obj<</Type/Pages/Kids[3 0 R]/Count 1>>endobj\n" +
		"3 0 obj<</Type/Page/Parent 2 0 R/MediaBox[0 0 612 792]>>endobj\n" +
		"trailer<</Root 1 0 R>>\n%%EOF\n")
}
