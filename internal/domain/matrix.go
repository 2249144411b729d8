package domain

import "fmt"

// Quadrant is one cell of the Eisenhower matrix.
type Quadrant string

const (
	QuadrantDoFirst  Quadrant = "do_first"
	QuadrantSchedule Quadrant = "schedule"
	QuadrantDelegate Quadrant = "delegate"
	QuadrantDoLater  Quadrant = "do_later"
)

// Quadrants lists every quadrant in display order.
var Quadrants = []Quadrant{QuadrantDoFirst, QuadrantSchedule, QuadrantDelegate, QuadrantDoLater}

// Axis scores are 1 (low), 2 (medium) or 3 (high).
const (
	MinScore = 1
	MaxScore = 3
)

// ValidScore reports whether v is an allowed urgency, importance or priority value.
func ValidScore(v int) bool {
	return v >= MinScore && v <= MaxScore
}

// Valid reports whether q is one of the four known literals.
func (q Quadrant) Valid() bool {
	switch q {
	case QuadrantDoFirst, QuadrantSchedule, QuadrantDelegate, QuadrantDoLater:
		return true
	}
	return false
}

// ParseQuadrant rejects anything but the four known literals.
func ParseQuadrant(s string) (Quadrant, error) {
	q := Quadrant(s)
	if !q.Valid() {
		return "", &ValidationError{Field: "quadrant", Reason: fmt.Sprintf("unknown quadrant %q", s)}
	}
	return q, nil
}

// QuadrantOf maps an (urgency, importance) pair to its quadrant.
// Only a score of 3 counts as high; 1 and 2 behave identically.
func QuadrantOf(urgency, importance int) Quadrant {
	urgent := urgency >= MaxScore
	important := importance >= MaxScore
	switch {
	case urgent && important:
		return QuadrantDoFirst
	case important:
		return QuadrantSchedule
	case urgent:
		return QuadrantDelegate
	default:
		return QuadrantDoLater
	}
}

// ScoresOf returns the canonical axis scores for q. Assigning a quadrant
// directly snaps both axes to these extremes and drops finer scores.
func ScoresOf(q Quadrant) (urgency, importance int, ok bool) {
	switch q {
	case QuadrantDoFirst:
		return MaxScore, MaxScore, true
	case QuadrantSchedule:
		return MinScore, MaxScore, true
	case QuadrantDelegate:
		return MaxScore, MinScore, true
	case QuadrantDoLater:
		return MinScore, MinScore, true
	}
	return 0, 0, false
}
