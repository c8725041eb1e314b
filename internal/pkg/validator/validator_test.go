package validator

import (
	"testing"
	"time"
)

func TestIsEmpty(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"abc", false},
		{" abc ", false},
	}
	for _, c := range cases {
		got := IsEmpty(c.input)
		if got != c.want {
			t.Errorf("IsEmpty(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestIsValidDateTime(t *testing.T) {
	valid := []struct {
		in   string
		want time.Time
	}{
		{"2024-01-15T10:30:00Z", time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)},
		{"2024-01-15T10:30:00.123Z", time.Date(2024, 1, 15, 10, 30, 0, 123_000_000, time.UTC)},
		{"2024-01-15T19:30:00+09:00", time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)},
		{" 2024-01-15T10:30:00.000Z ", time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)},
		{"2024-01-15T05:30:00.5-05:00", time.Date(2024, 1, 15, 10, 30, 0, 500_000_000, time.UTC)},
	}
	invalid := []string{"", "2024-01-15", "2024-01-15 10:30:00", "10:30", "2024-13-01T00:00:00Z", "not a date"}

	for _, c := range valid {
		got, ok := IsValidDateTime(c.in)
		if !ok {
			t.Errorf("IsValidDateTime(%q) = false, want true", c.in)
			continue
		}
		if !got.Equal(c.want) {
			t.Errorf("IsValidDateTime(%q) = %v, want %v", c.in, got, c.want)
		}
	}
	for _, s := range invalid {
		if _, ok := IsValidDateTime(s); ok {
			t.Errorf("IsValidDateTime(%q) = true, want false", s)
		}
	}
}

func TestValidationErrors_Error(t *testing.T) {
	errs := ValidationErrors{
		{Field: "month", Message: "invalid"},
		{Field: "timestamp", Message: "required"},
	}
	got := errs.Error()
	want := "month: invalid; timestamp: required"
	if got != want {
		t.Errorf("ValidationErrors.Error() = %q, want %q", got, want)
	}
}

func TestValidationErrors_ToMap(t *testing.T) {
	errs := ValidationErrors{
		{Field: "month", Message: "invalid"},
		{Field: "timestamp", Message: "required"},
	}
	got := errs.ToMap()
	want := map[string]string{"month": "invalid", "timestamp": "required"}
	if len(got) != len(want) {
		t.Errorf("ValidationErrors.ToMap() length = %d, want %d", len(got), len(want))
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("ValidationErrors.ToMap()[%q] = %q, want %q", k, got[k], v)
		}
	}
}
