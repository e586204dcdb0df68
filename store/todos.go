package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

type (
	// Todo is a single task item owned by the user that created it.
	// CompletedAt is nil until the item is marked completed.
	Todo struct {
		ID          string
		CreatorID   string
		Text        string
		Completed   bool
		CompletedAt *int64
	}
)

// InsertTodo persists a new todo document, assigning its id.
func (s *Store) InsertTodo(ctx context.Context, t *Todo) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	_, err := s.db.ExecContext(ctx, `insert into todos (todo_id, creator_id, text, completed, completed_at) values (?, ?, ?, ?, ?)`,
		t.ID, t.CreatorID, t.Text, t.Completed, completedAtArg(t))
	if err != nil {
		return fmt.Errorf("unable to store todo document, cause %w", err)
	}
	return nil
}

// SaveTodo writes back the mutable fields of an existing todo.
func (s *Store) SaveTodo(ctx context.Context, t *Todo) error {
	res, err := s.db.ExecContext(ctx, `update todos set text = ?, completed = ?, completed_at = ? where todo_id = ? and creator_id = ?`,
		t.Text, t.Completed, completedAtArg(t), t.ID, t.CreatorID)
	if err != nil {
		return fmt.Errorf("unable to save todo document, cause %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return NotFound{Kind: "todo", Ref: t.ID}
	}
	return nil
}

// FindTodo loads a todo by id, scoped to its creator. Items created
// by other users are indistinguishable from absent ones.
func (s *Store) FindTodo(ctx context.Context, creatorID, id string) (*Todo, error) {
	var t Todo
	var completedAt sql.NullInt64
	err := s.db.QueryRowContext(ctx, `select todo_id, creator_id, text, completed, completed_at from todos where todo_id = ? and creator_id = ?`,
		id, creatorID).Scan(&t.ID, &t.CreatorID, &t.Text, &t.Completed, &completedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, NotFound{Kind: "todo", Ref: id}
	} else if err != nil {
		return nil, fmt.Errorf("unable to load todo document, cause %w", err)
	}
	if completedAt.Valid {
		t.CompletedAt = &completedAt.Int64
	}
	return &t, nil
}

// ListTodos returns every todo created by the given user, oldest first.
func (s *Store) ListTodos(ctx context.Context, creatorID string) ([]Todo, error) {
	rows, err := s.db.QueryContext(ctx, `select todo_id, creator_id, text, completed, completed_at from todos where creator_id = ? order by rowid asc`, creatorID)
	if err != nil {
		return nil, fmt.Errorf("unable to list todos, cause %w", err)
	}
	defer rows.Close()
	var out []Todo
	for rows.Next() {
		var t Todo
		var completedAt sql.NullInt64
		err = rows.Scan(&t.ID, &t.CreatorID, &t.Text, &t.Completed, &completedAt)
		if err != nil {
			return nil, fmt.Errorf("unable to scan todo document, cause %v", err)
		}
		if completedAt.Valid {
			t.CompletedAt = &completedAt.Int64
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// DeleteTodo removes a todo by id, scoped to its creator, and returns
// the removed document.
func (s *Store) DeleteTodo(ctx context.Context, creatorID, id string) (*Todo, error) {
	t, err := s.FindTodo(ctx, creatorID, id)
	if err != nil {
		return nil, err
	}
	_, err = s.db.ExecContext(ctx, `delete from todos where todo_id = ? and creator_id = ?`, id, creatorID)
	if err != nil {
		return nil, fmt.Errorf("unable to delete todo document, cause %w", err)
	}
	return t, nil
}

func completedAtArg(t *Todo) interface{} {
	if t.CompletedAt == nil {
		return nil
	}
	return *t.CompletedAt
}
