package domain

import (
	"strings"
	"time"
)

// Reconcile merges patch into existing and returns the result.
// It is pure: existing is never modified, and on a validation error
// existing is returned as is together with the error.
//
// Matrix rules:
//   - quadrant without both axes: missing axes take the quadrant's canonical scores;
//   - both axes: quadrant is derived from them (axes win over a patched quadrant);
//   - a single axis: the other axis is kept and the quadrant is re-derived when both are known;
//   - none of the three: matrix fields are left untouched.
func Reconcile(existing Task, patch TaskPatch, now time.Time) (Task, error) {
	if err := patch.Validate(); err != nil {
		return existing, err
	}

	out := existing
	if patch.Title.Set {
		out.Title = strings.TrimSpace(patch.Title.Value)
	}
	if patch.Description.Set {
		out.Description = strings.TrimSpace(patch.Description.Value)
	}
	if patch.Completed.Set {
		out.Completed = patch.Completed.Value
	}
	if patch.Priority.Set {
		out.Priority = patch.Priority.Value
	}
	if patch.Category.Set {
		out.Category = normalizeCategory(patch.Category.Value)
	}
	if patch.DueDate.Set {
		out.DueDate = copyTime(patch.DueDate.Value)
	}
	if patch.TouchesMatrix() {
		reconcileMatrix(&out, patch)
	}
	out.UpdatedAt = now
	return out, nil
}

func reconcileMatrix(t *Task, p TaskPatch) {
	if p.Quadrant.Set && !(p.Urgency.Set && p.Importance.Set) {
		u, i, _ := ScoresOf(p.Quadrant.Value)
		t.Urgency, t.Importance = intPtr(u), intPtr(i)
		q := p.Quadrant.Value
		t.Quadrant = &q
	}
	if p.Urgency.Set {
		t.Urgency = intPtr(p.Urgency.Value)
	}
	if p.Importance.Set {
		t.Importance = intPtr(p.Importance.Value)
	}
	if t.Urgency != nil && t.Importance != nil {
		q := QuadrantOf(*t.Urgency, *t.Importance)
		t.Quadrant = &q
	}
}

func normalizeCategory(c *string) *string {
	if c == nil {
		return nil
	}
	v := strings.TrimSpace(*c)
	if v == "" {
		return nil
	}
	return &v
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}

func intPtr(v int) *int { return &v }
