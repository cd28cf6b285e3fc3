package store

import (
	"context"
	"encoding/json"
	"fmt"

	"checkin-cli/internal/model"
)

// LocalTodoRepository keeps todos in the cache's `todos` key as one JSON
// array covering all days; callers filter by exact date key.
type LocalTodoRepository struct {
	Cache Cache
}

func (r LocalTodoRepository) load(ctx context.Context) ([]model.Todo, error) {
	raw, ok, err := r.Cache.Get(ctx, KeyTodos)
	if err != nil {
		return nil, err
	}
	if !ok || raw == "" {
		return []model.Todo{}, nil
	}
	var todos []model.Todo
	if err := json.Unmarshal([]byte(raw), &todos); err != nil {
		return nil, fmt.Errorf("decode cached todos: %w", err)
	}
	return todos, nil
}

func (r LocalTodoRepository) save(ctx context.Context, todos []model.Todo) error {
	if todos == nil {
		todos = []model.Todo{}
	}
	raw, err := json.Marshal(todos)
	if err != nil {
		return err
	}
	return r.Cache.Set(ctx, KeyTodos, string(raw))
}

// ListForDate returns the todos whose date key matches exactly, in
// insertion order.
func (r LocalTodoRepository) ListForDate(ctx context.Context, date string) ([]model.Todo, error) {
	todos, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	out := []model.Todo{}
	for _, td := range todos {
		if td.Date == date {
			out = append(out, td)
		}
	}
	return out, nil
}

// Add appends a todo.
func (r LocalTodoRepository) Add(ctx context.Context, todo model.Todo) error {
	todos, err := r.load(ctx)
	if err != nil {
		return err
	}
	return r.save(ctx, append(todos, todo))
}

// Toggle flips the done flag and returns the updated todo.
func (r LocalTodoRepository) Toggle(ctx context.Context, id string) (model.Todo, bool, error) {
	todos, err := r.load(ctx)
	if err != nil {
		return model.Todo{}, false, err
	}
	for i := range todos {
		if todos[i].ID == id {
			todos[i].Done = !todos[i].Done
			if err := r.save(ctx, todos); err != nil {
				return model.Todo{}, false, err
			}
			return todos[i], true, nil
		}
	}
	return model.Todo{}, false, nil
}

// Delete removes a todo by id. Removing an unknown id is a no-op.
func (r LocalTodoRepository) Delete(ctx context.Context, id string) error {
	todos, err := r.load(ctx)
	if err != nil {
		return err
	}
	out := todos[:0]
	for _, td := range todos {
		if td.ID != id {
			out = append(out, td)
		}
	}
	return r.save(ctx, out)
}
