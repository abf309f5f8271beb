package taskmanager

import (
	"testing"

	"github.com/maxkimambo/vetflow/internal/dialog"
	wferrors "github.com/maxkimambo/vetflow/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkflowBuilder_Validation(t *testing.T) {
	var runs []string
	a := newStub("A", &runs)

	tests := []struct {
		name    string
		builder *WorkflowBuilder
		wantErr string
	}{
		{"empty name", NewWorkflowBuilder("").AddTask(a), "workflow name is empty"},
		{"nil task", NewWorkflowBuilder("visit").AddTasks(a, nil), "task 2 is nil"},
		{"duplicate", NewWorkflowBuilder("visit").AddTasks(a, newStub("B", &runs), a), "added twice (positions 1 and 3)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, err := tt.builder.Build()
			assert.Nil(t, w)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
			assert.True(t, wferrors.IsUserError(err))
		})
	}
}

func TestWorkflowBuilder_MustBuildPanics(t *testing.T) {
	assert.Panics(t, func() {
		NewWorkflowBuilder("visit").AddTask(nil).MustBuild()
	})
}

func TestWorkflowBuilder_Options(t *testing.T) {
	var runs []string
	errs := &dialog.ErrorCollector{}
	a, b := newStub("A", &runs), newStub("B", &runs)

	w, err := NewWorkflowBuilder("visit").
		AddTask(a).
		AddTasks(b).
		BreakOnSkip(true).
		Optional().
		Reporter(errs).
		Build()

	require.NoError(t, err)
	assert.Equal(t, "visit", w.Name())
	assert.Equal(t, []Task{a, b}, w.Tasks())
	assert.False(t, w.IsRequired())
	assert.True(t, w.breakOnSkip)
	assert.Same(t, errs, w.reporter)
	assert.Equal(t, StateIdle, w.State())
}

func TestNewTasks(t *testing.T) {
	var runs []string
	w := NewTasks("group", newStub("A", &runs), newStub("B", &runs))
	w.SetRequired(false)

	assert.Len(t, w.Tasks(), 2)
	assert.False(t, w.IsRequired())
	w.AddTask(newStub("C", &runs))

	_, err := run(w)
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B", "C"}, runs)
}
