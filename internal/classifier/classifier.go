// Package classifier suggests category and matrix placement for a task by
// asking a hosted language model. Every failure surfaces as *Error so callers
// can fall back locally.
package classifier

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"taskflow/internal/domain"
)

var (
	// ErrDisabled is returned when no model is configured.
	ErrDisabled = errors.New("classifier disabled")
	// ErrInvalidResponse is returned when the model output fails schema validation.
	ErrInvalidResponse = errors.New("invalid classifier response")
)

// Error wraps any classification failure.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("classifier %s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// IsClassifierError reports whether err came from a classifier.
func IsClassifierError(err error) bool {
	var cerr *Error
	return errors.As(err, &cerr)
}

// Request is the task text sent to the model.
type Request struct {
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
}

// RequestFor builds a request from a stored task.
func RequestFor(t domain.Task) Request {
	return Request{Title: t.Title, Description: t.Description, DueDate: t.DueDate}
}

// Suggestion is a full matrix classification for one task.
type Suggestion struct {
	Category   string          `json:"category" validate:"required"`
	Urgency    int             `json:"urgency" validate:"required,min=1,max=3"`
	Importance int             `json:"importance" validate:"required,min=1,max=3"`
	Quadrant   domain.Quadrant `json:"quadrant" validate:"required,oneof=do_first schedule delegate do_later"`
	Priority   *int            `json:"priority,omitempty" validate:"omitempty,min=1,max=3"`
	Reasoning  string          `json:"reasoning"`
}

// HasMatrix reports whether the suggestion carries axis scores.
// The fallback suggestion does not.
func (s Suggestion) HasMatrix() bool {
	return domain.ValidScore(s.Urgency) && domain.ValidScore(s.Importance) && s.Quadrant.Valid()
}

// CategorySuggestion is the lighter category-and-priority classification.
type CategorySuggestion struct {
	Category  string `json:"category" validate:"required"`
	Priority  int    `json:"priority" validate:"required,min=1,max=3"`
	Reasoning string `json:"reasoning"`
}

// Fallback values used when the classifier is unavailable.
const (
	DefaultCategory  = "General"
	DefaultReasoning = "default, classifier unavailable"
)

// DefaultSuggestion is applied on task creation when classification fails.
func DefaultSuggestion() Suggestion {
	p := domain.DefaultPriority
	return Suggestion{Category: DefaultCategory, Priority: &p, Reasoning: DefaultReasoning}
}

// Classifier produces a matrix suggestion.
type Classifier interface {
	Classify(ctx context.Context, req Request) (Suggestion, error)
}

// Categorizer produces a category suggestion.
type Categorizer interface {
	Categorize(ctx context.Context, req Request) (CategorySuggestion, error)
}

// Service is implemented by every backend in this package.
type Service interface {
	Classifier
	Categorizer
}

// Func adapts a plain function to Classifier.
type Func func(ctx context.Context, req Request) (Suggestion, error)

func (f Func) Classify(ctx context.Context, req Request) (Suggestion, error) {
	return f(ctx, req)
}

var validate = validator.New()

// ValidateSuggestion rejects suggestions that do not match the response schema.
// A quadrant that disagrees with the axes is accepted; Reconcile re-derives it.
func ValidateSuggestion(s Suggestion) error {
	if err := validate.Struct(s); err != nil {
		return &Error{Op: "validate", Err: fmt.Errorf("%w: %v", ErrInvalidResponse, err)}
	}
	return nil
}

// ValidateCategorySuggestion is ValidateSuggestion for CategorySuggestion.
func ValidateCategorySuggestion(s CategorySuggestion) error {
	if err := validate.Struct(s); err != nil {
		return &Error{Op: "validate", Err: fmt.Errorf("%w: %v", ErrInvalidResponse, err)}
	}
	return nil
}

// Disabled fails every call with ErrDisabled.
type Disabled struct{}

func (Disabled) Classify(context.Context, Request) (Suggestion, error) {
	return Suggestion{}, &Error{Op: "classify", Err: ErrDisabled}
}

func (Disabled) Categorize(context.Context, Request) (CategorySuggestion, error) {
	return CategorySuggestion{}, &Error{Op: "categorize", Err: ErrDisabled}
}
