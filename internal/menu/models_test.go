package menu

import (
	"errors"
	"reflect"
	"testing"
)

func TestWeeklyMenuUnmarshal(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		want      WeeklyMenu
		wantErr   bool
		wantField string
	}{
		{
			name:  "All integer days",
			input: `{"month": 4, "days": [8, 9, 10, 11, 12], "higawari": ["a", "b", "c", "d", "e"]}`,
			want: WeeklyMenu{
				Month:    4,
				Days:     []int{8, 9, 10, 11, 12},
				Higawari: []string{"a", "b", "c", "d", "e"},
			},
		},
		{
			name:  "String day entries dropped, order preserved",
			input: `{"month": 4, "days": [12, "x", 14], "higawari": ["a", "b", "c"]}`,
			want: WeeklyMenu{
				Month:    4,
				Days:     []int{12, 14},
				Higawari: []string{"a", "b", "c"},
			},
		},
		{
			name:  "Numeric string is still a string and is dropped",
			input: `{"month": 4, "days": ["13"], "higawari": ["a"]}`,
			want: WeeklyMenu{
				Month:    4,
				Days:     []int{},
				Higawari: []string{"a"},
			},
		},
		{
			name:  "Null and float day entries dropped",
			input: `{"month": 4, "days": [null, 9.5, 10], "higawari": ["a", "b", "c"]}`,
			want: WeeklyMenu{
				Month:    4,
				Days:     []int{10},
				Higawari: []string{"a", "b", "c"},
			},
		},
		{
			name:  "Missing days decodes to empty",
			input: `{"month": 4, "higawari": ["a"]}`,
			want: WeeklyMenu{
				Month:    4,
				Days:     []int{},
				Higawari: []string{"a"},
			},
		},
		{
			name:      "Missing month",
			input:     `{"days": [1], "higawari": ["a"]}`,
			wantErr:   true,
			wantField: "month",
		},
		{
			name:      "Missing higawari",
			input:     `{"month": 4, "days": [1]}`,
			wantErr:   true,
			wantField: "higawari",
		},
		{
			name:      "Mistyped month",
			input:     `{"month": "April", "days": [1], "higawari": ["a"]}`,
			wantErr:   true,
			wantField: "month",
		},
		{
			name:    "Mistyped higawari",
			input:   `{"month": 4, "days": [1], "higawari": "curry"}`,
			wantErr: true,
		},
		{
			name:    "Not an object",
			input:   `[1, 2, 3]`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got WeeklyMenu
			err := got.UnmarshalJSON([]byte(tt.input))

			if (err != nil) != tt.wantErr {
				t.Fatalf("UnmarshalJSON(%s) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}

			if tt.wantErr {
				var decodeErr *DecodeError
				if !errors.As(err, &decodeErr) {
					t.Fatalf("UnmarshalJSON(%s) error type = %T, want *DecodeError", tt.input, err)
				}
				if tt.wantField != "" && decodeErr.Field != tt.wantField {
					t.Errorf("DecodeError.Field = %q, want %q", decodeErr.Field, tt.wantField)
				}
				return
			}

			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("UnmarshalJSON(%s) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

// Dropping malformed day entries desynchronizes Days and Higawari: the
// captions keep their original indices while the surviving days close ranks.
// That is the upstream-compatible behavior, pinned here on purpose.
func TestDroppedDaysMisalignHigawari(t *testing.T) {
	input := `{"month": 6, "days": [3, "4", 5], "higawari": ["soba", "curry", "ramen"]}`

	var m WeeklyMenu
	if err := m.UnmarshalJSON([]byte(input)); err != nil {
		t.Fatalf("UnmarshalJSON failed: %v", err)
	}

	if len(m.Days) != 2 || len(m.Higawari) != 3 {
		t.Fatalf("got %d days and %d captions, want 2 and 3", len(m.Days), len(m.Higawari))
	}

	// Day 5 now sits at index 1 and picks up the caption that belonged to day 4
	if m.Days[1] != 5 || m.Caption(1) != "curry" {
		t.Errorf("Days[1] = %d with caption %q, want 5 with %q", m.Days[1], m.Caption(1), "curry")
	}
}

func TestCaption(t *testing.T) {
	m := WeeklyMenu{Month: 4, Days: []int{1, 2, 3}, Higawari: []string{"a", "b"}}

	tests := []struct {
		name  string
		index int
		want  string
	}{
		{"In range", 1, "b"},
		{"Past the captions", 2, ""},
		{"Negative", -1, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := m.Caption(tt.index); got != tt.want {
				t.Errorf("Caption(%d) = %q, want %q", tt.index, got, tt.want)
			}
		})
	}
}

func TestFirstDay(t *testing.T) {
	if _, ok := (WeeklyMenu{}).FirstDay(); ok {
		t.Error("FirstDay() on empty Days reported ok")
	}

	day, ok := (WeeklyMenu{Days: []int{21, 22}}).FirstDay()
	if !ok || day != 21 {
		t.Errorf("FirstDay() = (%d, %v), want (21, true)", day, ok)
	}
}

func TestDecodeMenus(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantLen int
		wantErr bool
	}{
		{
			name:    "Two valid records",
			input:   `[{"month": 4, "days": [1], "higawari": ["a"]}, {"month": 4, "days": [8], "higawari": ["b"]}]`,
			wantLen: 2,
		},
		{
			name:    "Empty array",
			input:   `[]`,
			wantLen: 0,
		},
		{
			name:    "One bad record fails the response",
			input:   `[{"month": 4, "days": [1], "higawari": ["a"]}, {"days": [8], "higawari": ["b"]}]`,
			wantErr: true,
		},
		{
			name:    "Not JSON",
			input:   `<html>`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			menus, err := DecodeMenus([]byte(tt.input))

			if (err != nil) != tt.wantErr {
				t.Fatalf("DecodeMenus error = %v, wantErr %v", err, tt.wantErr)
			}

			if tt.wantErr {
				var decodeErr *DecodeError
				if !errors.As(err, &decodeErr) {
					t.Errorf("DecodeMenus error type = %T, want *DecodeError", err)
				}
				return
			}

			if len(menus) != tt.wantLen {
				t.Errorf("DecodeMenus returned %d records, want %d", len(menus), tt.wantLen)
			}
		})
	}
}
