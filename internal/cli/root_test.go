package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"taskflow/internal/classifier"
	dom "taskflow/internal/domain"
	"taskflow/internal/repo"
	"taskflow/internal/service"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestRootRejectsUnknownFormat(t *testing.T) {
	cmd := NewRootCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"--format", "yaml", "hash-password", "pw"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
}

func TestRootRegistersCommands(t *testing.T) {
	cmd := NewRootCommand()
	var names []string
	for _, c := range cmd.Commands() {
		names = append(names, c.Name())
	}
	assert.Subset(t, names, []string{"migrate", "categorize", "hash-password"})
}

func TestHashPasswordFromArg(t *testing.T) {
	buf := &bytes.Buffer{}
	cmd := NewHashPasswordCommand(&RootOptions{Format: "text"})
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--cost", "4", "s3cret"})

	require.NoError(t, cmd.Execute())
	hash := strings.TrimSpace(buf.String())
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("s3cret")))
}

func TestHashPasswordFromStdinJSON(t *testing.T) {
	buf := &bytes.Buffer{}
	cmd := NewHashPasswordCommand(&RootOptions{Format: "json"})
	cmd.SetOut(buf)
	cmd.SetIn(strings.NewReader("from-stdin\n"))
	cmd.SetArgs([]string{"--cost", "4"})

	require.NoError(t, cmd.Execute())
	var out map[string]string
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(out["hash"]), []byte("from-stdin")))
}

func TestHashPasswordRejectsEmpty(t *testing.T) {
	cmd := NewHashPasswordCommand(&RootOptions{Format: "text"})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetIn(strings.NewReader(""))
	cmd.SetArgs([]string{})

	assert.Error(t, cmd.Execute())
}

// listRepo serves the calls AutoCategorize makes; the other repo methods are unused.
type listRepo struct {
	repo.TodoRepo
	tasks []dom.Task
}

func (r *listRepo) List(context.Context, int64) ([]dom.Task, error) {
	return r.tasks, nil
}

func (r *listRepo) GetByID(_ context.Context, _ int64, id string) (dom.Task, error) {
	for _, t := range r.tasks {
		if t.ID == id {
			return t, nil
		}
	}
	return dom.Task{}, pgx.ErrNoRows
}

func (r *listRepo) Update(_ context.Context, _ int64, _ string, t dom.Task) (dom.Task, error) {
	return t, nil
}

func fakeFactory(tasks ...dom.Task) serviceFactory {
	cl := classifier.Func(func(_ context.Context, req classifier.Request) (classifier.Suggestion, error) {
		if req.Title == "broken" {
			return classifier.Suggestion{}, &classifier.Error{Op: "classify", Err: errors.New("upstream 500")}
		}
		return classifier.Suggestion{Category: "Work", Urgency: 1, Importance: 3, Quadrant: dom.QuadrantSchedule}, nil
	})
	return func(context.Context) (*service.TodoService, func(), error) {
		svc := service.NewTodoService(&listRepo{tasks: tasks}, nil, cl, nil,
			service.WithClock(func() time.Time { return time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC) }))
		return svc, func() {}, nil
	}
}

func TestCategorizeReportsCounts(t *testing.T) {
	open := fakeFactory(
		dom.Task{ID: "a", OwnerID: 3, Title: "draft plan", Priority: 1},
		dom.Task{ID: "b", OwnerID: 3, Title: "broken", Priority: 1},
	)

	buf := &bytes.Buffer{}
	cmd := NewCategorizeCommand(&RootOptions{Format: "json"}, open)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--owner", "3"})
	require.NoError(t, cmd.Execute())

	var out categorizeOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	assert.Equal(t, categorizeOutput{OwnerID: 3, UpdatedCount: 1, FailedCount: 1, Failed: []string{"b"}}, out)

	buf.Reset()
	cmd = NewCategorizeCommand(&RootOptions{Format: "text"}, open)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--owner", "3"})
	require.NoError(t, cmd.Execute())
	assert.Equal(t, "owner 3: 1 updated, 1 failed\n  failed: b\n", buf.String())
}

func TestCategorizeRequiresOwner(t *testing.T) {
	cmd := NewCategorizeCommand(&RootOptions{Format: "text"}, fakeFactory())
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--owner", "0"})
	assert.Error(t, cmd.Execute())
}
