package classifier

import (
	"fmt"
	"strings"
)

const systemPrompt = "You triage personal and work tasks. Answer with a single JSON object and nothing else."

func describe(req Request) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Title: %s\n", req.Title)
	if d := strings.TrimSpace(req.Description); d != "" {
		fmt.Fprintf(&b, "Description: %s\n", d)
	} else {
		b.WriteString("Description: none\n")
	}
	if req.DueDate != nil {
		fmt.Fprintf(&b, "Due date: %s\n", req.DueDate.UTC().Format("2006-01-02"))
	} else {
		b.WriteString("Due date: none\n")
	}
	return b.String()
}

func matrixPrompt(req Request) string {
	return describe(req) + `
Place this task on the Eisenhower matrix.

urgency (1-3): 1 = can wait, 2 = should happen soon, 3 = time-sensitive.
importance (1-3): 1 = nice to have, 2 = moves goals forward, 3 = critical.
quadrant: "do_first" when urgency and importance are both 3, "schedule" when only importance is 3,
"delegate" when only urgency is 3, otherwise "do_later".
priority (1-3): overall priority, 1 = low, 3 = high.
category: a short label such as Work, Personal, Health, Shopping or Learning.
reasoning: one or two sentences.

Respond as {"category": string, "urgency": int, "importance": int, "quadrant": string, "priority": int, "reasoning": string}.`
}

func categoryPrompt(req Request) string {
	return describe(req) + `
Pick a short category for this task (Work, Personal, Health, Shopping, Learning or similar)
and a priority from 1 (low) to 3 (high) based on deadlines and impact.

Respond as {"category": string, "priority": int, "reasoning": string}.`
}
