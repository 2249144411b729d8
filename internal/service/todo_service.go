package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"taskflow/internal/cache"
	"taskflow/internal/classifier"
	dom "taskflow/internal/domain"
	"taskflow/internal/repo"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
)

// ErrNotFound is returned for missing tasks and tasks owned by someone else.
var ErrNotFound = dom.ErrNotFound

type TodoService struct {
	repo       repo.TodoRepo
	cache      *cache.TodoCache
	classifier classifier.Classifier
	log        logrus.FieldLogger
	now        func() time.Time
	batchLimit int
	sf         singleflight.Group
}

// Option configures a TodoService.
type Option func(*TodoService)

// WithClock overrides the time source used for timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *TodoService) { s.now = now }
}

// WithBatchConcurrency sets how many classifications AutoCategorize runs at once.
func WithBatchConcurrency(n int) Option {
	return func(s *TodoService) {
		if n > 0 {
			s.batchLimit = n
		}
	}
}

// NewTodoService creates a TodoService. If c is nil, caching is disabled.
// If cl is nil, classification is disabled.
func NewTodoService(r repo.TodoRepo, c *cache.TodoCache, cl classifier.Classifier, log logrus.FieldLogger, opts ...Option) *TodoService {
	if cl == nil {
		cl = classifier.Disabled{}
	}
	if log == nil {
		l := logrus.New()
		l.SetOutput(discard{})
		log = l
	}
	s := &TodoService{
		repo:       r,
		cache:      c,
		classifier: cl,
		log:        log,
		now:        func() time.Time { return time.Now().UTC() },
		batchLimit: 1,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }

// CreateInput carries caller-supplied fields for a new task. Nil pointers
// mean "not supplied".
type CreateInput struct {
	Title       string
	Description string
	Priority    *int
	Category    *string
	Urgency     *int
	Importance  *int
	Quadrant    *dom.Quadrant
	DueDate     *time.Time
	// SkipAI opts out of classification.
	SkipAI bool
}

func (in CreateInput) patch() dom.TaskPatch {
	p := dom.TaskPatch{
		Title:       dom.Set(in.Title),
		Description: dom.Set(in.Description),
		DueDate:     dom.Set(in.DueDate),
		Priority:    dom.Set(dom.DefaultPriority),
	}
	if in.Priority != nil {
		p.Priority = dom.Set(*in.Priority)
	}
	if in.Category != nil {
		p.Category = dom.Set(in.Category)
	}
	if in.Urgency != nil {
		p.Urgency = dom.Set(*in.Urgency)
	}
	if in.Importance != nil {
		p.Importance = dom.Set(*in.Importance)
	}
	if in.Quadrant != nil {
		p.Quadrant = dom.Set(*in.Quadrant)
	}
	return p
}

func (in CreateInput) wantsClassification() bool {
	return !in.SkipAI && (in.Category == nil || in.Priority == nil)
}

// Create stores a new task for ownerID. Unless the caller supplied both
// category and priority or opted out, one classification is requested; a
// classifier failure falls back to classifier.DefaultSuggestion and never
// fails creation. The suggestion used, if any, is returned alongside.
func (s *TodoService) Create(ctx context.Context, ownerID int64, in CreateInput) (dom.Task, *classifier.Suggestion, error) {
	patch := in.patch()
	if err := patch.Validate(); err != nil {
		return dom.Task{}, nil, err
	}

	var suggestion *classifier.Suggestion
	if in.wantsClassification() {
		sug := s.suggest(ctx, ownerID, classifier.Request{
			Title:       strings.TrimSpace(in.Title),
			Description: strings.TrimSpace(in.Description),
			DueDate:     in.DueDate,
		})
		suggestion = &sug
		applySuggestion(&patch, in, sug)
	}

	now := s.now()
	base := dom.Task{ID: uuid.NewString(), OwnerID: ownerID, CreatedAt: now}
	t, err := dom.Reconcile(base, patch, now)
	if err != nil {
		return dom.Task{}, nil, err
	}

	created, err := s.repo.Create(ctx, t)
	if err != nil {
		return dom.Task{}, nil, fmt.Errorf("create task: %w", err)
	}
	s.invalidateCache(ctx, ownerID)
	return created, suggestion, nil
}

// suggest never fails: classifier errors become the default suggestion.
func (s *TodoService) suggest(ctx context.Context, ownerID int64, req classifier.Request) classifier.Suggestion {
	sug, err := s.classifier.Classify(ctx, req)
	if err == nil {
		err = classifier.ValidateSuggestion(sug)
	}
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"event":    "classify_fallback",
			"owner_id": ownerID,
		}).WithError(err).Warn("classification failed, using default suggestion")
		return classifier.DefaultSuggestion()
	}
	return sug
}

// applySuggestion fills only what the caller left out. Matrix fields are
// taken from the suggestion only when the caller supplied none of them.
func applySuggestion(p *dom.TaskPatch, in CreateInput, sug classifier.Suggestion) {
	if in.Priority == nil && sug.Priority != nil {
		p.Priority = dom.Set(*sug.Priority)
	}
	if in.Category == nil && sug.Category != "" {
		category := sug.Category
		p.Category = dom.Set(&category)
	}
	callerMatrix := in.Urgency != nil || in.Importance != nil || in.Quadrant != nil
	if !callerMatrix && sug.HasMatrix() {
		p.Urgency = dom.Set(sug.Urgency)
		p.Importance = dom.Set(sug.Importance)
	}
}

// List returns the owner's tasks in creation order, filtered by completion state.
func (s *TodoService) List(ctx context.Context, ownerID int64, filter dom.Filter) ([]dom.Task, error) {
	all, err := s.listAll(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if filter == "" || filter == dom.FilterAll {
		return all, nil
	}
	out := make([]dom.Task, 0, len(all))
	for _, t := range all {
		if filter.Match(t) {
			out = append(out, t)
		}
	}
	return out, nil
}

func (s *TodoService) listAll(ctx context.Context, ownerID int64) ([]dom.Task, error) {
	if s.cache != nil {
		key := "list:" + strconv.FormatInt(ownerID, 10)
		v, err, _ := s.sf.Do(key, func() (interface{}, error) {
			if list, err := s.cache.GetList(ctx, ownerID); err == nil && list != nil {
				return list, nil
			}
			list, err := s.repo.List(ctx, ownerID)
			if err != nil {
				return nil, err
			}
			_ = s.cache.SetList(ctx, ownerID, list)
			return list, nil
		})
		if err != nil {
			return nil, err
		}
		return v.([]dom.Task), nil
	}
	return s.repo.List(ctx, ownerID)
}

// Stats counts the owner's tasks per completion state and quadrant.
func (s *TodoService) Stats(ctx context.Context, ownerID int64) (dom.Stats, error) {
	all, err := s.listAll(ctx, ownerID)
	if err != nil {
		return dom.Stats{}, err
	}
	return dom.ComputeStats(all), nil
}

func (s *TodoService) GetByID(ctx context.Context, ownerID int64, id string) (dom.Task, error) {
	t, err := s.repo.GetByID(ctx, ownerID, id)
	if err != nil {
		return dom.Task{}, notFound(err)
	}
	return t, nil
}

// Update validates patch, reconciles it with the stored task and persists the result.
func (s *TodoService) Update(ctx context.Context, ownerID int64, id string, patch dom.TaskPatch) (dom.Task, error) {
	if err := patch.Validate(); err != nil {
		return dom.Task{}, err
	}
	existing, err := s.repo.GetByID(ctx, ownerID, id)
	if err != nil {
		return dom.Task{}, notFound(err)
	}
	next, err := dom.Reconcile(existing, patch, s.now())
	if err != nil {
		return dom.Task{}, err
	}
	t, err := s.repo.Update(ctx, ownerID, id, next)
	if err != nil {
		return dom.Task{}, notFound(err)
	}
	s.invalidateCache(ctx, ownerID)
	return t, nil
}

func (s *TodoService) Complete(ctx context.Context, ownerID int64, id string) (dom.Task, error) {
	t, err := s.repo.MarkDone(ctx, ownerID, id, true, s.now())
	if err != nil {
		return dom.Task{}, notFound(err)
	}
	s.invalidateCache(ctx, ownerID)
	return t, nil
}

// Delete removes the task. A task owned by someone else is reported as ErrNotFound.
func (s *TodoService) Delete(ctx context.Context, ownerID int64, id string) error {
	ok, err := s.repo.SoftDelete(ctx, ownerID, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	s.invalidateCache(ctx, ownerID)
	return nil
}

func (s *TodoService) Search(ctx context.Context, ownerID int64, q string) ([]dom.Task, error) {
	q = strings.TrimSpace(q)
	if s.cache != nil {
		key := "search:" + strconv.FormatInt(ownerID, 10) + ":" + cache.NormalizeQuery(q)
		v, err, _ := s.sf.Do(key, func() (interface{}, error) {
			if list, err := s.cache.GetSearch(ctx, ownerID, q); err == nil && list != nil {
				return list, nil
			}
			list, err := s.repo.Search(ctx, ownerID, q)
			if err != nil {
				return nil, err
			}
			_ = s.cache.SetSearch(ctx, ownerID, q, list)
			return list, nil
		})
		if err != nil {
			return nil, err
		}
		return v.([]dom.Task), nil
	}
	return s.repo.Search(ctx, ownerID, q)
}

func (s *TodoService) Overdue(ctx context.Context, ownerID int64) ([]dom.Task, error) {
	if s.cache != nil {
		key := "overdue:" + strconv.FormatInt(ownerID, 10)
		v, err, _ := s.sf.Do(key, func() (interface{}, error) {
			if list, err := s.cache.GetOverdue(ctx, ownerID); err == nil && list != nil {
				return list, nil
			}
			list, err := s.repo.Overdue(ctx, ownerID, s.now())
			if err != nil {
				return nil, err
			}
			_ = s.cache.SetOverdue(ctx, ownerID, list)
			return list, nil
		})
		if err != nil {
			return nil, err
		}
		return v.([]dom.Task), nil
	}
	return s.repo.Overdue(ctx, ownerID, s.now())
}

func (s *TodoService) invalidateCache(ctx context.Context, ownerID int64) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateAll(ctx, ownerID); err != nil {
		s.log.WithField("owner_id", ownerID).WithError(err).Warn("cache invalidation failed")
	}
}

func notFound(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	return err
}
