package dto

// CategorizeRequest is the JSON body for the suggestion endpoints.
type CategorizeRequest struct {
	Title       string  `json:"title" binding:"required,max=120"`
	Description string  `json:"description" binding:"max=1000"`
	DueDate     DueDate `json:"due_date"`
}

// SuggestionResponse is a matrix classification. Matrix fields are omitted
// for the fallback suggestion.
type SuggestionResponse struct {
	Category   string  `json:"category"`
	Urgency    *int    `json:"urgency,omitempty"`
	Importance *int    `json:"importance,omitempty"`
	Quadrant   *string `json:"quadrant,omitempty"`
	Priority   *int    `json:"priority,omitempty"`
	Reasoning  string  `json:"reasoning"`
}

type CategorySuggestionResponse struct {
	Category  string `json:"category"`
	Priority  int    `json:"priority"`
	Reasoning string `json:"reasoning"`
}
