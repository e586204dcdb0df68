// Package task implements per-user task items on top of the document
// store. Every operation is scoped to the creating user, items from
// other users behave as if they did not exist.
package task

import (
	"context"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/raymondwu22/todo-api/store"
)

type (
	// Service owns the todo lifecycle rules, mainly the coupling
	// between Completed and CompletedAt.
	Service struct {
		store *store.Store
	}

	// Update carries the fields a PATCH is allowed to change. Nil
	// fields are left untouched.
	Update struct {
		Text      *string
		Completed *bool
	}

	payload struct {
		Text string `validate:"required,min=1"`
	}
)

var validate = validator.New()

func NewService(st *store.Store) *Service {
	return &Service{store: st}
}

// Create stores a new todo for the given creator. Text is trimmed and
// must not end up empty.
func (s *Service) Create(ctx context.Context, creatorID, text string) (*store.Todo, error) {
	text = strings.TrimSpace(text)
	if err := validate.Struct(payload{Text: text}); err != nil {
		return nil, ValidationError{Reason: err.Error()}
	}
	todo := &store.Todo{CreatorID: creatorID, Text: text}
	if err := s.store.InsertTodo(ctx, todo); err != nil {
		return nil, err
	}
	return todo, nil
}

// List returns every todo the creator owns, oldest first.
func (s *Service) List(ctx context.Context, creatorID string) ([]store.Todo, error) {
	return s.store.ListTodos(ctx, creatorID)
}

// Get loads a single todo owned by the creator.
func (s *Service) Get(ctx context.Context, creatorID, id string) (*store.Todo, error) {
	return s.store.FindTodo(ctx, creatorID, id)
}

// Apply patches a todo. Marking it completed stamps CompletedAt with
// the current wall clock, marking it not completed clears the stamp.
func (s *Service) Apply(ctx context.Context, creatorID, id string, upd Update) (*store.Todo, error) {
	todo, err := s.store.FindTodo(ctx, creatorID, id)
	if err != nil {
		return nil, err
	}
	if upd.Text != nil {
		text := strings.TrimSpace(*upd.Text)
		if err := validate.Struct(payload{Text: text}); err != nil {
			return nil, ValidationError{Reason: err.Error()}
		}
		todo.Text = text
	}
	if upd.Completed != nil {
		todo.Completed = *upd.Completed
		if todo.Completed {
			at := time.Now().UnixMilli()
			todo.CompletedAt = &at
		} else {
			todo.CompletedAt = nil
		}
	}
	if err := s.store.SaveTodo(ctx, todo); err != nil {
		return nil, err
	}
	return todo, nil
}

// Delete removes a todo owned by the creator and returns it.
func (s *Service) Delete(ctx context.Context, creatorID, id string) (*store.Todo, error) {
	return s.store.DeleteTodo(ctx, creatorID, id)
}
