package taskmanager

import (
	"fmt"

	wferrors "github.com/maxkimambo/vetflow/internal/errors"
	"github.com/maxkimambo/vetflow/internal/practice"
)

// WorkflowBuilder is a builder for creating Workflow instances with validation
type WorkflowBuilder struct {
	name           string
	tasks          []Task
	breakOnSkip    bool
	isolateContext bool
	optional       bool
	reporter       ErrorReporter
	parentContext  practice.Context
	observers      []Listener
}

// NewWorkflowBuilder creates a new WorkflowBuilder with the given workflow name
func NewWorkflowBuilder(name string) *WorkflowBuilder {
	return &WorkflowBuilder{name: name}
}

// AddTask appends a task to the workflow being built
func (wb *WorkflowBuilder) AddTask(task Task) *WorkflowBuilder {
	wb.tasks = append(wb.tasks, task)
	return wb
}

// AddTasks appends several tasks in order
func (wb *WorkflowBuilder) AddTasks(tasks ...Task) *WorkflowBuilder {
	wb.tasks = append(wb.tasks, tasks...)
	return wb
}

// BreakOnSkip makes a skipped optional task skip the whole workflow
func (wb *WorkflowBuilder) BreakOnSkip(breakOnSkip bool) *WorkflowBuilder {
	wb.breakOnSkip = breakOnSkip
	return wb
}

// Optional marks the built workflow as not required
func (wb *WorkflowBuilder) Optional() *WorkflowBuilder {
	wb.optional = true
	return wb
}

// IsolateContext runs the workflow in a child of the context it is started with
func (wb *WorkflowBuilder) IsolateContext() *WorkflowBuilder {
	wb.isolateContext = true
	return wb
}

// Reporter sets where hard errors are surfaced
func (wb *WorkflowBuilder) Reporter(reporter ErrorReporter) *WorkflowBuilder {
	wb.reporter = reporter
	return wb
}

// Context sets the context a fresh root task context reads through to
func (wb *WorkflowBuilder) Context(parent practice.Context) *WorkflowBuilder {
	wb.parentContext = parent
	return wb
}

// Observer registers a listener for every task event of the workflow and
// the workflows nested in it
func (wb *WorkflowBuilder) Observer(observer Listener) *WorkflowBuilder {
	wb.observers = append(wb.observers, observer)
	return wb
}

// Build validates and constructs the final Workflow object
func (wb *WorkflowBuilder) Build() (*Workflow, error) {
	if err := wb.validate(); err != nil {
		return nil, err
	}

	w := NewWorkflow(wb.name)
	w.tasks = append([]Task(nil), wb.tasks...)
	w.breakOnSkip = wb.breakOnSkip
	w.isolateContext = wb.isolateContext
	w.parentContext = wb.parentContext
	w.observers = append([]Listener(nil), wb.observers...)
	if wb.reporter != nil {
		w.reporter = wb.reporter
	}
	w.SetRequired(!wb.optional)
	return w, nil
}

// MustBuild is like Build but panics on an invalid workflow
func (wb *WorkflowBuilder) MustBuild() *Workflow {
	w, err := wb.Build()
	if err != nil {
		panic(err)
	}
	return w
}

func (wb *WorkflowBuilder) validate() error {
	if wb.name == "" {
		return wferrors.NewInvalidWorkflowError(wb.name, "workflow name is empty")
	}
	seen := make(map[Task]int, len(wb.tasks))
	for i, task := range wb.tasks {
		if task == nil {
			return wferrors.NewInvalidWorkflowError(wb.name, fmt.Sprintf("task %d is nil", i+1))
		}
		if first, ok := seen[task]; ok {
			return wferrors.NewInvalidWorkflowError(wb.name,
				fmt.Sprintf("task '%s' added twice (positions %d and %d)", task.Name(), first+1, i+1))
		}
		seen[task] = i
	}
	return nil
}
