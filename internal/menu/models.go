package menu

import (
	"encoding/json"
	"errors"
	"fmt"
)

// WeeklyMenu represents one server-provided menu record: the month it
// applies to, the day-of-month values for the week, and the daily special
// ("higawari") caption for each day. Read-only after decoding.
type WeeklyMenu struct {
	Month    int      `json:"month"`
	Days     []int    `json:"days"`
	Higawari []string `json:"higawari"`
}

// DecodeError reports a menu record that could not be decoded
type DecodeError struct {
	Field string
	Err   error
}

func (e *DecodeError) Error() string {
	if e.Field != "" && e.Err == nil {
		return fmt.Sprintf("menu record: missing field %q", e.Field)
	}
	if e.Field != "" {
		return fmt.Sprintf("menu record: field %q: %v", e.Field, e.Err)
	}
	return fmt.Sprintf("menu record: %v", e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// UnmarshalJSON implements json.Unmarshaler for WeeklyMenu.
// The upstream feed has a data-quality issue: "days" elements arrive
// sometimes as numbers and sometimes as strings. Integer elements are kept
// in order; everything else is dropped with no placeholder, so Days can end
// up shorter than Higawari. "month" and "higawari" are required and must
// have their declared types.
func (m *WeeklyMenu) UnmarshalJSON(b []byte) error {
	var raw struct {
		Month    *int              `json:"month"`
		Days     []json.RawMessage `json:"days"`
		Higawari *[]string         `json:"higawari"`
	}

	if err := json.Unmarshal(b, &raw); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return &DecodeError{Field: typeErr.Field, Err: err}
		}
		return &DecodeError{Err: err}
	}

	if raw.Month == nil {
		return &DecodeError{Field: "month"}
	}
	if raw.Higawari == nil {
		return &DecodeError{Field: "higawari"}
	}

	days := make([]int, 0, len(raw.Days))
	for _, el := range raw.Days {
		// Pointer target so JSON null is skipped rather than kept as 0
		var day *int
		if err := json.Unmarshal(el, &day); err != nil || day == nil {
			continue
		}
		days = append(days, *day)
	}

	m.Month = *raw.Month
	m.Days = days
	m.Higawari = *raw.Higawari

	return nil
}

// FirstDay returns the first day-of-month of the record. Records with no
// decodable days have no first day and cannot be placed in a week.
func (m WeeklyMenu) FirstDay() (int, bool) {
	if len(m.Days) == 0 {
		return 0, false
	}
	return m.Days[0], true
}

// Caption returns the higawari text for the i-th day, or "" when the
// captions ran out (possible when malformed day entries were dropped)
func (m WeeklyMenu) Caption(i int) string {
	if i < 0 || i >= len(m.Higawari) {
		return ""
	}
	return m.Higawari[i]
}

// DecodeMenus decodes a JSON array of menu records. Any record failing to
// decode fails the whole response; entry-level tolerance lives inside
// WeeklyMenu.UnmarshalJSON.
func DecodeMenus(data []byte) ([]WeeklyMenu, error) {
	var menus []WeeklyMenu
	if err := json.Unmarshal(data, &menus); err != nil {
		var decodeErr *DecodeError
		if errors.As(err, &decodeErr) {
			return nil, decodeErr
		}
		return nil, &DecodeError{Err: err}
	}
	return menus, nil
}
