package taskmanager

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/maxkimambo/vetflow/internal/dialog"
	"github.com/maxkimambo/vetflow/internal/domain"
	wferrors "github.com/maxkimambo/vetflow/internal/errors"
	"github.com/maxkimambo/vetflow/internal/practice"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkflow_RunsTasksInInsertionOrder(t *testing.T) {
	var runs []string
	w := NewWorkflowBuilder("chain").
		AddTasks(newStub("A", &runs), newStub("B", &runs), newStub("C", &runs)).
		MustBuild()

	log, err := run(w)

	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B", "C"}, runs)
	assert.Equal(t, []EventType{EventCompleted}, log.types())
	assert.Same(t, w, log.events[0].Task())
	assert.Equal(t, StateCompleted, w.State())
}

func TestWorkflow_EmptyCompletes(t *testing.T) {
	w := NewWorkflowBuilder("empty").MustBuild()

	log, err := run(w)

	require.NoError(t, err)
	assert.Equal(t, []EventType{EventCompleted}, log.types())
}

func TestWorkflow_RequiredSkipCancelsWithError(t *testing.T) {
	for position := 0; position < 3; position++ {
		t.Run(fmt.Sprintf("position %d", position), func(t *testing.T) {
			var runs []string
			errs := newCollector()
			b := NewWorkflowBuilder("visit").Reporter(errs)
			for i := 0; i < 3; i++ {
				task := newStub(fmt.Sprintf("T%d", i), &runs)
				if i == position {
					task.skips()
				}
				b.AddTask(task)
			}
			w := b.MustBuild()

			log, err := run(w)

			require.NoError(t, err)
			assert.Len(t, runs, position+1, "nothing after the skipped task runs")
			assert.Equal(t, []EventType{EventCancelled}, log.types())
			require.Len(t, errs.Errors, 1)
			assert.ErrorIs(t, errs.Errors[0], wferrors.ErrRequiredTaskSkipped)
		})
	}
}

func TestWorkflow_CancelledTaskHaltsSequence(t *testing.T) {
	var runs []string
	errs := newCollector()
	w := NewWorkflowBuilder("visit").
		Reporter(errs).
		AddTasks(newStub("A", &runs), newStub("B", &runs).cancels(), newStub("C", &runs)).
		MustBuild()

	log, err := run(w)

	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B"}, runs)
	assert.Equal(t, []EventType{EventCancelled}, log.types())
	assert.Empty(t, errs.Errors, "a plain cancellation is not an error")
	assert.Equal(t, StateCancelled, w.State())
}

func TestWorkflow_OptionalSkip(t *testing.T) {
	tests := []struct {
		name        string
		breakOnSkip bool
		wantRuns    []string
		wantEvent   EventType
	}{
		{"absorbed", false, []string{"A", "B", "C"}, EventCompleted},
		{"breaks", true, []string{"A", "B"}, EventSkipped},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var runs []string
			errs := newCollector()
			w := NewWorkflowBuilder("visit").
				Reporter(errs).
				BreakOnSkip(tt.breakOnSkip).
				AddTasks(newStub("A", &runs), newStub("B", &runs).skips().optional(), newStub("C", &runs)).
				MustBuild()

			log, err := run(w)

			require.NoError(t, err)
			assert.Equal(t, tt.wantRuns, runs)
			assert.Equal(t, []EventType{tt.wantEvent}, log.types())
			assert.Empty(t, errs.Errors)
		})
	}
}

func TestWorkflow_StartErrorReportedAndCancels(t *testing.T) {
	var runs []string
	errs := newCollector()
	cause := errors.New("database unavailable")
	w := NewWorkflowBuilder("visit").
		Reporter(errs).
		AddTasks(newStub("A", &runs).failsToStart(cause), newStub("B", &runs)).
		MustBuild()

	log, err := run(w)

	require.NoError(t, err, "the workflow itself started fine")
	assert.Equal(t, []string{"A"}, runs)
	assert.Equal(t, []EventType{EventCancelled}, log.types())
	require.Len(t, errs.Errors, 1)
	assert.ErrorIs(t, errs.Errors[0], cause)
	assert.True(t, wferrors.IsCategory(errs.Errors[0], wferrors.ErrorCategoryBusinessRule))
}

func TestWorkflow_PanicReportedAndCancels(t *testing.T) {
	var runs []string
	errs := newCollector()
	w := NewWorkflowBuilder("visit").
		Reporter(errs).
		AddTasks(newStub("A", &runs).panics("nil invoice"), newStub("B", &runs)).
		MustBuild()

	log, err := run(w)

	require.NoError(t, err)
	assert.Equal(t, []string{"A"}, runs)
	assert.Equal(t, []EventType{EventCancelled}, log.types())
	assert.Equal(t, StateCancelled, w.State())
	require.Len(t, errs.Errors, 1)
	assert.True(t, wferrors.IsCategory(errs.Errors[0], wferrors.ErrorCategoryBusinessRule))
	assert.Contains(t, errs.Errors[0].Error(), "nil invoice")
}

func TestWorkflow_FailIsReportedOnceWhenNested(t *testing.T) {
	var runs []string
	errs := newCollector()
	cause := errors.New("printer on fire")
	failing := NewSynchronousTask("fail", func(context.Context, TaskContext) error { return nil })
	failer := &failTask{BaseTask: NewBaseTask("failer"), err: cause}
	failer.Bind(failer)

	inner := NewWorkflowBuilder("inner").Reporter(errs).AddTasks(failer, failing).MustBuild()
	outer := NewWorkflowBuilder("outer").Reporter(errs).AddTasks(inner, newStub("after", &runs)).MustBuild()

	log, err := run(outer)

	require.NoError(t, err)
	assert.Empty(t, runs)
	assert.Equal(t, []EventType{EventCancelled}, log.types())
	require.Len(t, errs.Errors, 1)
	assert.Same(t, cause, errs.Errors[0])
}

type failTask struct {
	*BaseTask
	err error
}

func (t *failTask) Start(context.Context, TaskContext) error {
	t.Begin()
	t.Fail(t.err)
	return nil
}

func TestWorkflow_NestedOptionalGroupSkippedAsUnit(t *testing.T) {
	var runs []string
	group := NewWorkflowBuilder("extras").
		BreakOnSkip(true).
		Optional().
		AddTasks(newStub("reminder", &runs).skips().optional(), newStub("letter", &runs)).
		MustBuild()
	w := NewWorkflowBuilder("visit").AddTasks(newStub("A", &runs), group, newStub("C", &runs)).MustBuild()

	log, err := run(w)

	require.NoError(t, err)
	assert.Equal(t, []string{"A", "reminder", "C"}, runs)
	assert.Equal(t, []EventType{EventCompleted}, log.types())
	assert.Equal(t, StateSkipped, group.State())
}

func TestWorkflow_CancelIsHonouredAtNextAdvance(t *testing.T) {
	var runs []string
	dialogs := dialog.NewRecorder()
	w := NewWorkflowBuilder("visit").
		AddTasks(NewConfirmationTask("Continue?", "", dialogs, false), newStub("B", &runs)).
		MustBuild()

	log, err := run(w)
	require.NoError(t, err)
	assert.Equal(t, StateRunning, w.State())
	assert.Empty(t, log.events, "the workflow waits on the dialog")

	w.Cancel()
	require.NoError(t, dialogs.Close(dialog.Yes))

	assert.Empty(t, runs)
	assert.Equal(t, []EventType{EventCancelled}, log.types())
}

func TestWorkflow_CancelReachesNestedWorkflow(t *testing.T) {
	var runs []string
	dialogs := dialog.NewRecorder()
	inner := NewTasks("inner", NewConfirmationTask("Continue?", "", dialogs, false), newStub("inner B", &runs))
	outer := NewWorkflowBuilder("outer").AddTasks(inner, newStub("outer B", &runs)).MustBuild()

	log, err := run(outer)
	require.NoError(t, err)

	outer.Cancel()
	require.NoError(t, dialogs.Close(dialog.Yes))

	assert.Empty(t, runs)
	assert.Equal(t, StateCancelled, inner.State())
	assert.Equal(t, []EventType{EventCancelled}, log.types())
}

func TestWorkflow_ContextCancellation(t *testing.T) {
	var runs []string
	w := NewWorkflowBuilder("visit").AddTask(newStub("A", &runs)).MustBuild()
	log := &eventLog{}
	w.AddListener(log)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.NoError(t, w.Start(ctx, nil))

	assert.Empty(t, runs)
	assert.Equal(t, []EventType{EventCancelled}, log.types())
}

func TestWorkflow_ObserversSeeNestedEvents(t *testing.T) {
	var runs []string
	observed := &eventLog{}
	inner := NewTasks("inner", newStub("a", &runs), newStub("b", &runs))
	w := NewWorkflowBuilder("outer").
		Observer(observed).
		AddTasks(inner, newStub("c", &runs)).
		MustBuild()

	_, err := run(w)

	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "inner", "c"}, observed.names())
}

func TestWorkflow_DuplicateNotificationIgnored(t *testing.T) {
	var runs []string
	dup := &doubleNotifyTask{BaseTask: NewBaseTask("dup")}
	dup.Bind(dup)
	w := NewWorkflowBuilder("visit").AddTasks(dup, newStub("after", &runs)).MustBuild()

	log, err := run(w)

	require.NoError(t, err)
	assert.Equal(t, []string{"after"}, runs)
	assert.Equal(t, []EventType{EventCompleted}, log.types())
}

type doubleNotifyTask struct {
	*BaseTask
}

func (t *doubleNotifyTask) Start(context.Context, TaskContext) error {
	t.Begin()
	t.NotifyCompleted()
	t.NotifyCompleted()
	return nil
}

func TestWorkflow_Restart(t *testing.T) {
	var runs []string
	w := NewWorkflowBuilder("visit").AddTasks(newStub("A", &runs)).MustBuild()

	log, err := run(w)
	require.NoError(t, err)
	require.NoError(t, w.Start(context.Background(), nil))

	assert.Equal(t, []string{"A", "A"}, runs)
	assert.Equal(t, []EventType{EventCompleted, EventCompleted}, log.types())
}

func TestWorkflow_StartWhileRunning(t *testing.T) {
	dialogs := dialog.NewRecorder()
	w := NewTasks("visit", NewConfirmationTask("Continue?", "", dialogs, false))

	require.NoError(t, w.Start(context.Background(), nil))
	assert.Error(t, w.Start(context.Background(), nil))
}

func TestWorkflow_RootContextReadsThroughParent(t *testing.T) {
	global := practice.NewLocalContext(nil)
	customer := domain.New(domain.CustomerArchetype, "J Smith")
	global.SetCustomer(customer)
	patient := domain.New(domain.PatientArchetype, "Fido")

	var seen *domain.Object
	w := NewWorkflowBuilder("visit").
		Context(global).
		AddTask(NewSynchronousTask("select patient", func(_ context.Context, tc TaskContext) error {
			seen = tc.Customer()
			tc.SetPatient(patient)
			return nil
		})).
		MustBuild()

	_, err := run(w)

	require.NoError(t, err)
	assert.Same(t, customer, seen)
	assert.Same(t, patient, w.Context().Patient())
	assert.Nil(t, global.Patient(), "writes stay in the workflow's context")
}

func TestWorkflow_IsolatedContext(t *testing.T) {
	patient := domain.New(domain.PatientArchetype, "Fido")
	inner := NewWorkflowBuilder("inner").
		IsolateContext().
		AddTask(NewSynchronousTask("set", func(_ context.Context, tc TaskContext) error {
			tc.SetPatient(patient)
			tc.SetValue("note", "inner only")
			return nil
		})).
		MustBuild()
	outer := NewWorkflowBuilder("outer").AddTask(inner).MustBuild()
	outerCtx := NewTaskContext(nil)
	outerCtx.SetValue("visit", 7)

	require.NoError(t, outer.Start(context.Background(), outerCtx))

	assert.Nil(t, outerCtx.Patient())
	_, ok := outerCtx.Value("note")
	assert.False(t, ok)
	assert.Same(t, patient, inner.Context().Patient())
	v, ok := inner.Context().Value("visit")
	assert.True(t, ok)
	assert.Equal(t, 7, v)
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "IDLE", StateIdle.String())
	assert.Equal(t, "SKIPPED", StateSkipped.String())
	assert.Equal(t, "UNKNOWN", State(42).String())
	assert.Equal(t, "CANCELLED", EventCancelled.String())
	assert.Equal(t, "UNKNOWN", EventType(9).String())
}
