package domain

import "time"

// Task is the domain entity for a single todo item.
// It does not depend on Gin, Postgres or Redis.
type Task struct {
	ID          string
	OwnerID     int64
	Title       string
	Description string
	Completed   bool
	Priority    int
	Category    *string

	// Matrix fields. Either all absent (uncategorized) or, when both axes
	// are present, Quadrant == QuadrantOf(*Urgency, *Importance).
	Urgency    *int
	Importance *int
	Quadrant   *Quadrant

	DueDate *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}

// DefaultPriority is used when neither the caller nor the classifier supplies one.
const DefaultPriority = 1

// Categorized reports whether the task carries a complete matrix placement.
func (t Task) Categorized() bool {
	return t.Quadrant != nil && t.Urgency != nil && t.Importance != nil
}

// Consistent reports whether the quadrant agrees with both axes.
// Tasks missing either axis are consistent by definition.
func (t Task) Consistent() bool {
	if t.Urgency == nil || t.Importance == nil {
		return true
	}
	return t.Quadrant != nil && *t.Quadrant == QuadrantOf(*t.Urgency, *t.Importance)
}

// Filter selects tasks by completion state.
type Filter string

const (
	FilterAll       Filter = "all"
	FilterActive    Filter = "active"
	FilterCompleted Filter = "completed"
)

// ParseFilter maps an empty string to FilterAll.
func ParseFilter(s string) (Filter, error) {
	switch f := Filter(s); f {
	case "":
		return FilterAll, nil
	case FilterAll, FilterActive, FilterCompleted:
		return f, nil
	}
	return "", &ValidationError{Field: "filter", Reason: "must be all, active or completed"}
}

// Match reports whether t passes the filter.
func (f Filter) Match(t Task) bool {
	switch f {
	case FilterActive:
		return !t.Completed
	case FilterCompleted:
		return t.Completed
	}
	return true
}

// Stats summarizes an owner's tasks.
type Stats struct {
	Total         int
	Completed     int
	Active        int
	Uncategorized int
	ByQuadrant    map[Quadrant]int
}

// ComputeStats counts tasks per completion state and quadrant.
func ComputeStats(tasks []Task) Stats {
	s := Stats{ByQuadrant: make(map[Quadrant]int, len(Quadrants))}
	for _, q := range Quadrants {
		s.ByQuadrant[q] = 0
	}
	for _, t := range tasks {
		s.Total++
		if t.Completed {
			s.Completed++
		} else {
			s.Active++
		}
		if t.Quadrant != nil {
			s.ByQuadrant[*t.Quadrant]++
		}
		if !t.Categorized() {
			s.Uncategorized++
		}
	}
	return s
}
