package handlers

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"taskflow/internal/classifier"
	dom "taskflow/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// memTodoRepo keeps tasks in insertion order and scopes every call by owner.
type memTodoRepo struct {
	mu    sync.Mutex
	order []string
	tasks map[string]dom.Task
}

func newMemTodoRepo(tasks ...dom.Task) *memTodoRepo {
	r := &memTodoRepo{tasks: map[string]dom.Task{}}
	for _, t := range tasks {
		r.order = append(r.order, t.ID)
		r.tasks[t.ID] = t
	}
	return r
}

func (r *memTodoRepo) owned(ownerID int64, id string) (dom.Task, bool) {
	t, ok := r.tasks[id]
	if !ok || t.OwnerID != ownerID || t.DeletedAt != nil {
		return dom.Task{}, false
	}
	return t, true
}

func (r *memTodoRepo) Create(_ context.Context, t dom.Task) (dom.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.order = append(r.order, t.ID)
	r.tasks[t.ID] = t
	return t, nil
}

func (r *memTodoRepo) GetByID(_ context.Context, ownerID int64, id string) (dom.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.owned(ownerID, id)
	if !ok {
		return dom.Task{}, pgx.ErrNoRows
	}
	return t, nil
}

func (r *memTodoRepo) List(_ context.Context, ownerID int64) ([]dom.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	list := []dom.Task{}
	for _, id := range r.order {
		if t, ok := r.owned(ownerID, id); ok {
			list = append(list, t)
		}
	}
	return list, nil
}

func (r *memTodoRepo) Update(_ context.Context, ownerID int64, id string, t dom.Task) (dom.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.owned(ownerID, id); !ok {
		return dom.Task{}, pgx.ErrNoRows
	}
	r.tasks[id] = t
	return t, nil
}

func (r *memTodoRepo) SoftDelete(_ context.Context, ownerID int64, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.owned(ownerID, id)
	if !ok {
		return false, nil
	}
	now := time.Now()
	t.DeletedAt = &now
	r.tasks[id] = t
	return true, nil
}

func (r *memTodoRepo) MarkDone(_ context.Context, ownerID int64, id string, done bool, at time.Time) (dom.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.owned(ownerID, id)
	if !ok {
		return dom.Task{}, pgx.ErrNoRows
	}
	t.Completed, t.UpdatedAt = done, at
	r.tasks[id] = t
	return t, nil
}

func (r *memTodoRepo) Search(ctx context.Context, ownerID int64, q string) ([]dom.Task, error) {
	all, _ := r.List(ctx, ownerID)
	out := []dom.Task{}
	for _, t := range all {
		if strings.Contains(strings.ToLower(t.Title), strings.ToLower(q)) {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *memTodoRepo) Overdue(ctx context.Context, ownerID int64, now time.Time) ([]dom.Task, error) {
	all, _ := r.List(ctx, ownerID)
	out := []dom.Task{}
	for _, t := range all {
		if !t.Completed && t.DueDate != nil && t.DueDate.Before(now) {
			out = append(out, t)
		}
	}
	return out, nil
}

// memUserRepo rejects duplicate usernames the way the users table does.
type memUserRepo struct {
	mu    sync.Mutex
	users []dom.User
}

func (r *memUserRepo) GetByUsername(_ context.Context, username string) (dom.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == username {
			return u, nil
		}
	}
	return dom.User{}, pgx.ErrNoRows
}

func (r *memUserRepo) GetByID(_ context.Context, id int64) (dom.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return dom.User{}, pgx.ErrNoRows
}

func (r *memUserRepo) Create(_ context.Context, username, hash string) (dom.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == username {
			return dom.User{}, &pgconn.PgError{Code: "23505"}
		}
	}
	u := dom.User{ID: int64(len(r.users) + 1), Username: username, PasswordHash: hash, CreatedAt: time.Now()}
	r.users = append(r.users, u)
	return u, nil
}

// stubClassifier answers matrix requests by title and category requests uniformly.
type stubClassifier struct {
	answers  map[string]classifier.Suggestion
	category classifier.CategorySuggestion
	err      error
}

func (s *stubClassifier) Classify(_ context.Context, req classifier.Request) (classifier.Suggestion, error) {
	if s.err != nil {
		return classifier.Suggestion{}, s.err
	}
	if sug, ok := s.answers[req.Title]; ok {
		return sug, nil
	}
	return classifier.Suggestion{}, &classifier.Error{Op: "classify", Err: errors.New("no answer")}
}

func (s *stubClassifier) Categorize(context.Context, classifier.Request) (classifier.CategorySuggestion, error) {
	if s.err != nil {
		return classifier.CategorySuggestion{}, s.err
	}
	return s.category, nil
}
