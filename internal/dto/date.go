package dto

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/yukikurage/project-dashboard-api/internal/models"
)

// Date is a calendar date encoded as "YYYY-MM-DD". Decoding also accepts an
// RFC 3339 timestamp and keeps only its date.
type Date time.Time

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Time(d).Format(models.DateLayout))
}

func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}

	t, err := models.ParseDate(s)
	if err != nil {
		ts, tsErr := time.Parse(time.RFC3339, s)
		if tsErr != nil {
			return fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
		}
		t = models.DateOf(ts)
	}

	*d = Date(t)
	return nil
}

// Time returns nil for a nil date.
func (d *Date) Time() *time.Time {
	if d == nil {
		return nil
	}
	t := time.Time(*d)
	return &t
}

// ToDate converts an optional timestamp to its calendar date.
func ToDate(t *time.Time) *Date {
	if t == nil {
		return nil
	}
	d := Date(models.DateOf(*t))
	return &d
}

// Nullable distinguishes an absent field from an explicit null in partial
// updates. Set is true whenever the field was present in the request body.
type Nullable[T any] struct {
	Set   bool
	Value *T
}

func (n *Nullable[T]) UnmarshalJSON(b []byte) error {
	n.Set = true
	if string(b) == "null" {
		n.Value = nil
		return nil
	}

	var v T
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	n.Value = &v
	return nil
}

// IsNull reports an explicit null.
func (n Nullable[T]) IsNull() bool {
	return n.Set && n.Value == nil
}
