package domain

import (
	"strings"
	"time"
	"unicode/utf8"
)

// Field is one optional member of a TaskPatch. Set distinguishes "leave as is"
// from an explicit zero value.
type Field[T any] struct {
	Set   bool
	Value T
}

// Set returns a Field carrying v.
func Set[T any](v T) Field[T] {
	return Field[T]{Set: true, Value: v}
}

// TaskPatch is a partial update with a closed field set.
// Nil Category or DueDate values clear the field.
type TaskPatch struct {
	Title       Field[string]
	Description Field[string]
	Completed   Field[bool]
	Priority    Field[int]
	Category    Field[*string]
	Urgency     Field[int]
	Importance  Field[int]
	Quadrant    Field[Quadrant]
	DueDate     Field[*time.Time]
}

// MaxTitleLength bounds titles in runes.
const MaxTitleLength = 120

// Validate checks every set field. It runs before any field is merged.
func (p TaskPatch) Validate() error {
	if p.Title.Set {
		title := strings.TrimSpace(p.Title.Value)
		if title == "" {
			return &ValidationError{Field: "title", Reason: "must not be empty"}
		}
		if utf8.RuneCountInString(title) > MaxTitleLength {
			return &ValidationError{Field: "title", Reason: "too long"}
		}
	}
	if p.Priority.Set && !ValidScore(p.Priority.Value) {
		return &ValidationError{Field: "priority", Reason: "must be 1, 2 or 3"}
	}
	if p.Urgency.Set && !ValidScore(p.Urgency.Value) {
		return &ValidationError{Field: "urgency", Reason: "must be 1, 2 or 3"}
	}
	if p.Importance.Set && !ValidScore(p.Importance.Value) {
		return &ValidationError{Field: "importance", Reason: "must be 1, 2 or 3"}
	}
	if p.Quadrant.Set && !p.Quadrant.Value.Valid() {
		_, err := ParseQuadrant(string(p.Quadrant.Value))
		return err
	}
	return nil
}

// TouchesMatrix reports whether the patch sets urgency, importance or quadrant.
func (p TaskPatch) TouchesMatrix() bool {
	return p.Urgency.Set || p.Importance.Set || p.Quadrant.Set
}

// Empty reports whether the patch sets nothing.
func (p TaskPatch) Empty() bool {
	return !p.Title.Set && !p.Description.Set && !p.Completed.Set && !p.Priority.Set &&
		!p.Category.Set && !p.DueDate.Set && !p.TouchesMatrix()
}
