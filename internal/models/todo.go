package models

import "time"

// Todo is a single task belonging to a TodoGroup.
type Todo struct {
	ID    string `json:"id"`
	Text  string `json:"text"`
	Group string `json:"group"`
	Owner string `json:"owner"`
	Done  bool   `json:"done"`

	// Date is the creation time, bumped whenever Text or Done changes.
	Date time.Time `json:"date"`
}

// TodoPatch holds the optional fields of a partial Todo update.
// A nil field is left untouched.
type TodoPatch struct {
	Text *string
	Done *bool
}

// Apply copies the present fields onto t, bumping Date once per touched field.
// It reports whether anything changed.
func (t *Todo) Apply(p TodoPatch, now time.Time) bool {
	changed := false
	if p.Text != nil {
		t.Text = *p.Text
		t.Date = now
		changed = true
	}
	if p.Done != nil {
		t.Done = *p.Done
		t.Date = now
		changed = true
	}
	return changed
}
