package service

import (
	"context"
	"errors"
	"fmt"

	"taskflow/internal/classifier"
	dom "taskflow/internal/domain"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// BatchResult reports a best-effort categorization run.
type BatchResult struct {
	Updated []dom.Task
	Failed  []string
}

var errBatchAborted = errors.New("batch aborted before task was reached")

// AutoCategorize classifies every uncategorized task the owner has.
// Only loading the task list can fail the call; per-task failures end up in Failed.
func (s *TodoService) AutoCategorize(ctx context.Context, ownerID int64) (BatchResult, error) {
	tasks, err := s.repo.List(ctx, ownerID)
	if err != nil {
		return BatchResult{}, fmt.Errorf("list tasks: %w", err)
	}
	return s.CategorizeTasks(ctx, ownerID, tasks, s.classifier), nil
}

// CategorizeTasks runs classify for each task that lacks a quadrant or an
// axis score. Tasks are independent: a failed classification or write for
// one task is recorded in Failed and never affects another. Each success is
// reconciled against the task as currently stored and persisted right away;
// a task deleted meanwhile fails, one categorized meanwhile is left as is.
// Cancelling ctx only leaves the unreached tasks (reported as failed)
// uncategorized. Nothing is retried.
func (s *TodoService) CategorizeTasks(ctx context.Context, ownerID int64, tasks []dom.Task, classify classifier.Classifier) BatchResult {
	pending := make([]dom.Task, 0, len(tasks))
	for _, t := range tasks {
		if !t.Categorized() {
			pending = append(pending, t)
		}
	}
	if len(pending) == 0 {
		return BatchResult{Updated: []dom.Task{}, Failed: []string{}}
	}

	// Each goroutine writes only its own slot.
	results := make([]*dom.Task, len(pending))
	errs := make([]error, len(pending))

	var g errgroup.Group
	g.SetLimit(s.batchLimit)
	for idx := range pending {
		if ctx.Err() != nil {
			errs[idx] = errBatchAborted
			continue
		}
		g.Go(func() error {
			t, err := s.categorizeOne(ctx, ownerID, pending[idx], classify)
			if err != nil {
				errs[idx] = err
				return nil
			}
			results[idx] = &t
			return nil
		})
	}
	_ = g.Wait()

	res := BatchResult{Updated: []dom.Task{}, Failed: []string{}}
	for idx, t := range pending {
		if errs[idx] != nil {
			s.log.WithFields(logrus.Fields{
				"event":    "categorize_failed",
				"owner_id": ownerID,
				"task_id":  t.ID,
			}).WithError(errs[idx]).Warn("task left uncategorized")
			res.Failed = append(res.Failed, t.ID)
			continue
		}
		res.Updated = append(res.Updated, *results[idx])
	}
	if len(res.Updated) > 0 {
		s.invalidateCache(context.WithoutCancel(ctx), ownerID)
	}
	s.log.WithFields(logrus.Fields{
		"event":    "categorize_batch",
		"owner_id": ownerID,
		"updated":  len(res.Updated),
		"failed":   len(res.Failed),
	}).Info("auto-categorization finished")
	return res
}

func (s *TodoService) categorizeOne(ctx context.Context, ownerID int64, t dom.Task, classify classifier.Classifier) (dom.Task, error) {
	if err := ctx.Err(); err != nil {
		return dom.Task{}, errBatchAborted
	}
	sug, err := classify.Classify(ctx, classifier.RequestFor(t))
	if err != nil {
		return dom.Task{}, err
	}
	if err := classifier.ValidateSuggestion(sug); err != nil {
		return dom.Task{}, err
	}

	// The classifier call can take seconds; merge into the current row so
	// edits made meanwhile survive.
	fresh, err := s.repo.GetByID(ctx, ownerID, t.ID)
	if err != nil {
		return dom.Task{}, fmt.Errorf("reload task: %w", notFound(err))
	}
	if fresh.Categorized() {
		return fresh, nil
	}
	next, err := dom.Reconcile(fresh, suggestionPatch(sug), s.now())
	if err != nil {
		return dom.Task{}, err
	}
	updated, err := s.repo.Update(ctx, ownerID, t.ID, next)
	if err != nil {
		return dom.Task{}, fmt.Errorf("persist task: %w", notFound(err))
	}
	return updated, nil
}

func suggestionPatch(sug classifier.Suggestion) dom.TaskPatch {
	category := sug.Category
	p := dom.TaskPatch{
		Category:   dom.Set(&category),
		Urgency:    dom.Set(sug.Urgency),
		Importance: dom.Set(sug.Importance),
		Quadrant:   dom.Set(sug.Quadrant),
	}
	if sug.Priority != nil {
		p.Priority = dom.Set(*sug.Priority)
	}
	return p
}
