package dto

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// DueDate parses due_date from JSON as either date-only ("2006-01-02") or RFC3339.
// Date-only is stored as start of that day in UTC. An empty string clears the date.
type DueDate struct{ t *time.Time }

func (d *DueDate) UnmarshalJSON(data []byte) error {
	var raw *string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == nil || strings.TrimSpace(*raw) == "" {
		d.t = nil
		return nil
	}
	s := strings.TrimSpace(*raw)
	layouts := []string{
		"2006-01-02",
		time.RFC3339,
		time.RFC3339Nano,
		"2006-01-02T15:04:05",
	}
	for _, layout := range layouts {
		parsed, err := time.Parse(layout, s)
		if err == nil {
			parsed = parsed.UTC()
			d.t = &parsed
			return nil
		}
	}
	return fmt.Errorf("due_date: use date (YYYY-MM-DD) or RFC3339 datetime")
}

// Ptr returns *time.Time for use in service/domain.
func (d DueDate) Ptr() *time.Time { return d.t }

type CreateTodoRequest struct {
	Title       string  `json:"title" binding:"required,min=1,max=120"`
	Description string  `json:"description" binding:"max=1000"`
	Priority    *int    `json:"priority"`
	Category    *string `json:"category" binding:"omitempty,max=60"`
	Urgency     *int    `json:"urgency"`
	Importance  *int    `json:"importance"`
	Quadrant    *string `json:"quadrant"`
	DueDate     DueDate `json:"due_date"` // optional: "2026-02-19" or RFC3339
	SkipAI      bool    `json:"skip_ai"`
}

// UpdateTodoRequest is a partial update: absent (or null) fields are left as is.
type UpdateTodoRequest struct {
	Title       *string  `json:"title" binding:"omitempty,min=1,max=120"`
	Description *string  `json:"description" binding:"omitempty,max=1000"`
	Completed   *bool    `json:"completed"`
	Priority    *int     `json:"priority"`
	Category    *string  `json:"category" binding:"omitempty,max=60"` // "" clears
	Urgency     *int     `json:"urgency"`
	Importance  *int     `json:"importance"`
	Quadrant    *string  `json:"quadrant"`
	DueDate     *DueDate `json:"due_date"` // "" clears
}

type TodoResponse struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Completed   bool       `json:"completed"`
	Priority    int        `json:"priority"`
	Category    *string    `json:"category"`
	Urgency     *int       `json:"urgency"`
	Importance  *int       `json:"importance"`
	Quadrant    *string    `json:"quadrant"`
	DueDate     *time.Time `json:"due_date"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type ListTodosResponse struct {
	Items []TodoResponse `json:"items"`
}

type CreateTodoResponse struct {
	Todo         TodoResponse        `json:"todo"`
	AISuggestion *SuggestionResponse `json:"ai_suggestion,omitempty"`
}

type AutoCategorizeResponse struct {
	Updated      []TodoResponse `json:"updated"`
	Failed       []string       `json:"failed"`
	UpdatedCount int            `json:"updated_count"`
	FailedCount  int            `json:"failed_count"`
}

type StatsResponse struct {
	Total         int `json:"total"`
	Completed     int `json:"completed"`
	Active        int `json:"active"`
	Uncategorized int `json:"uncategorized"`
	DoFirst       int `json:"do_first"`
	Schedule      int `json:"schedule"`
	Delegate      int `json:"delegate"`
	DoLater       int `json:"do_later"`
}
