package service

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"taskflow/internal/classifier"
	dom "taskflow/internal/domain"

	"github.com/jackc/pgx/v5"
)

var errStoreDown = errors.New("store down")

// memTodoRepo mirrors PGTodoRepo's ownership semantics in memory.
type memTodoRepo struct {
	mu        sync.Mutex
	tasks     map[string]dom.Task
	updates   []string
	failWrite map[string]error
	listErr   error
}

func newMemTodoRepo(tasks ...dom.Task) *memTodoRepo {
	r := &memTodoRepo{tasks: map[string]dom.Task{}, failWrite: map[string]error{}}
	for _, t := range tasks {
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

func (r *memTodoRepo) stored(id string) dom.Task {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.tasks[id]
}

func (r *memTodoRepo) Create(_ context.Context, t dom.Task) (dom.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.failWrite[t.ID]; err != nil {
		return dom.Task{}, err
	}
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
	if r.listErr != nil {
		return nil, r.listErr
	}
	list := []dom.Task{}
	for _, t := range r.tasks {
		if t.OwnerID == ownerID && t.DeletedAt == nil {
			list = append(list, t)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

func (r *memTodoRepo) Update(_ context.Context, ownerID int64, id string, t dom.Task) (dom.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.failWrite[id]; err != nil {
		return dom.Task{}, err
	}
	if _, ok := r.owned(ownerID, id); !ok {
		return dom.Task{}, pgx.ErrNoRows
	}
	t.ID, t.OwnerID = id, ownerID
	r.tasks[id] = t
	r.updates = append(r.updates, id)
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
	t.Completed = done
	t.UpdatedAt = at
	r.tasks[id] = t
	return t, nil
}

func (r *memTodoRepo) Search(ctx context.Context, ownerID int64, q string) ([]dom.Task, error) {
	all, _ := r.List(ctx, ownerID)
	out := []dom.Task{}
	q = strings.ToLower(q)
	for _, t := range all {
		if strings.Contains(strings.ToLower(t.Title+" "+t.Description), q) {
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

// scriptedClassifier answers per task title.
type scriptedClassifier struct {
	mu      sync.Mutex
	answers map[string]classifier.Suggestion
	fail    map[string]error
	calls   []string
}

func (c *scriptedClassifier) Classify(_ context.Context, req classifier.Request) (classifier.Suggestion, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls = append(c.calls, req.Title)
	if err := c.fail[req.Title]; err != nil {
		return classifier.Suggestion{}, err
	}
	if s, ok := c.answers[req.Title]; ok {
		return s, nil
	}
	return classifier.Suggestion{}, &classifier.Error{Op: "classify", Err: errors.New("no scripted answer")}
}

func intp(v int) *int { return &v }

func strp(v string) *string { return &v }
