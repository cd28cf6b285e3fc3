package app

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"checkin-cli/internal/model"
	"checkin-cli/internal/timeline"
)

// Todos returns the selected day's tasks from the active store. Filtering is
// by exact date-key match.
func (a *App) Todos(ctx context.Context) ([]model.Todo, error) {
	if a.Authenticated() && a.Remote != nil {
		return a.Remote.ListTodos(ctx, a.session, a.selectedDate)
	}
	return a.todos.ListForDate(ctx, a.selectedDate)
}

// AddTodo appends a task to the selected day.
func (a *App) AddTodo(ctx context.Context, task string) (model.Todo, error) {
	task = strings.TrimSpace(task)
	if task == "" {
		return model.Todo{}, timeline.ValidationError{Field: "task", Msg: "task must not be empty"}
	}
	todo := model.Todo{Task: task, Date: a.selectedDate}

	if a.Authenticated() && a.Remote != nil {
		return a.Remote.InsertTodo(ctx, a.session, todo)
	}
	todo.ID = uuid.New().String()
	if err := a.todos.Add(ctx, todo); err != nil {
		return model.Todo{}, err
	}
	return todo, nil
}

// ToggleTodo flips a task's completed flag.
func (a *App) ToggleTodo(ctx context.Context, id string, currentlyDone bool) error {
	if a.Authenticated() && a.Remote != nil {
		return a.Remote.SetTodoDone(ctx, a.session, id, !currentlyDone)
	}
	_, _, err := a.todos.Toggle(ctx, id)
	return err
}

// RemoveTodo deletes a task.
func (a *App) RemoveTodo(ctx context.Context, id string) error {
	if a.Authenticated() && a.Remote != nil {
		return a.Remote.DeleteTodo(ctx, a.session, id)
	}
	return a.todos.Delete(ctx, id)
}
