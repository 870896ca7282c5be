package task_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acadash/backend/domain"
	"github.com/acadash/backend/repository/memory"
	taskUC "github.com/acadash/backend/usecase/task"
)

func newUseCase() *taskUC.UseCase {
	return taskUC.New(memory.NewTaskRepository(), nil)
}

func strPtr(s string) *string { return &s }

func TestCreateTaskValidation(t *testing.T) {
	tests := []struct {
		name    string
		input   taskUC.CreateInput
		wantErr bool
	}{
		{
			name:    "empty title rejected",
			input:   taskUC.CreateInput{},
			wantErr: true,
		},
		{
			name:    "whitespace title rejected",
			input:   taskUC.CreateInput{Title: "   "},
			wantErr: true,
		},
		{
			name:    "invalid priority rejected",
			input:   taskUC.CreateInput{Title: "ok", Priority: "urgent"},
			wantErr: true,
		},
		{
			name:    "invalid status rejected",
			input:   taskUC.CreateInput{Title: "ok", Status: "paused"},
			wantErr: true,
		},
		{
			name:    "invalid source rejected",
			input:   taskUC.CreateInput{Title: "ok", Source: "email"},
			wantErr: true,
		},
		{
			name:  "valid full input",
			input: taskUC.CreateInput{Title: "ok", Priority: "high", Status: "progress", Source: "canvas"},
		},
		{
			name:  "minimal input",
			input: taskUC.CreateInput{Title: "ok"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := newUseCase()
			created, err := uc.CreateTask(context.Background(), tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, domain.IsDomainError(err, domain.ErrCodeInvalid))
				// Nothing may be persisted on a validation failure.
				tasks, listErr := uc.ListTasks(context.Background())
				require.NoError(t, listErr)
				assert.Empty(t, tasks)
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, created.ID)
		})
	}
}

func TestCreateTaskDefaults(t *testing.T) {
	uc := newUseCase()

	created, err := uc.CreateTask(context.Background(), taskUC.CreateInput{Title: "Read Ch.5"})
	require.NoError(t, err)

	assert.Equal(t, "Read Ch.5", created.Title)
	assert.Equal(t, "", created.Description)
	assert.Equal(t, domain.PriorityMedium, created.Priority)
	assert.Equal(t, domain.StatusTodo, created.Status)
	assert.Equal(t, domain.SourceManual, created.Source)
	assert.False(t, created.CreatedAt.IsZero())
}

func TestCreateThenGetRoundTrip(t *testing.T) {
	uc := newUseCase()
	ctx := context.Background()

	created, err := uc.CreateTask(ctx, taskUC.CreateInput{
		Title:    "Lab report",
		DueDate:  "2026-09-15",
		TimeSlot: "14:00",
		Priority: "high",
	})
	require.NoError(t, err)

	got, err := uc.GetTask(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)
}

func TestUpdateTaskMergesOnlyGivenFields(t *testing.T) {
	uc := newUseCase()
	ctx := context.Background()

	created, err := uc.CreateTask(ctx, taskUC.CreateInput{
		Title:       "Essay",
		Description: "1500 words",
		DueDate:     "2026-09-20",
		TimeSlot:    "09:00",
		Priority:    "high",
	})
	require.NoError(t, err)

	updated, err := uc.UpdateTask(ctx, created.ID, taskUC.UpdateInput{
		Status: strPtr("done"),
	})
	require.NoError(t, err)

	assert.Equal(t, domain.StatusDone, updated.Status)
	require.NotNil(t, updated.UpdatedAt)

	// Everything else is untouched.
	assert.Equal(t, created.Title, updated.Title)
	assert.Equal(t, created.Description, updated.Description)
	assert.Equal(t, created.DueDate, updated.DueDate)
	assert.Equal(t, created.TimeSlot, updated.TimeSlot)
	assert.Equal(t, created.Priority, updated.Priority)
	assert.Equal(t, created.Source, updated.Source)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
}

func TestUpdateTaskRejectsInvalidValues(t *testing.T) {
	uc := newUseCase()
	ctx := context.Background()

	created, err := uc.CreateTask(ctx, taskUC.CreateInput{Title: "Quiz prep"})
	require.NoError(t, err)

	_, err = uc.UpdateTask(ctx, created.ID, taskUC.UpdateInput{Status: strPtr("finished")})
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeInvalid))

	_, err = uc.UpdateTask(ctx, created.ID, taskUC.UpdateInput{Title: strPtr("")})
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeInvalid))

	// The failed updates must not have changed the record.
	got, err := uc.GetTask(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusTodo, got.Status)
	assert.Equal(t, "Quiz prep", got.Title)
}

func TestUpdateMissingTask(t *testing.T) {
	uc := newUseCase()

	_, err := uc.UpdateTask(context.Background(), "absent", taskUC.UpdateInput{Status: strPtr("done")})
	assert.ErrorIs(t, err, domain.ErrTaskNotFound)
}

func TestDeleteThenGetYieldsNotFound(t *testing.T) {
	uc := newUseCase()
	ctx := context.Background()

	created, err := uc.CreateTask(ctx, taskUC.CreateInput{Title: "dispose"})
	require.NoError(t, err)

	require.NoError(t, uc.DeleteTask(ctx, created.ID))

	_, err = uc.GetTask(ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrTaskNotFound)
}
