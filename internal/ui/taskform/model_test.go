package taskform

import (
	"reflect"
	"testing"
)

func TestParseCategories(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"work, errands", []string{"work", "errands"}},
		{"work", []string{"work"}},
		{"  spaced  ,  out  ", []string{"spaced", "out"}},
		{"a,,b,", []string{"a", "b"}},
		{"", nil},
		{" , ", nil},
	}

	for _, tt := range tests {
		if got := ParseCategories(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("ParseCategories(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestValidateOptionalDate(t *testing.T) {
	if err := validateOptionalDate(""); err != nil {
		t.Errorf("empty deadline should be allowed, got %v", err)
	}
	if err := validateOptionalDate("2026-03-14"); err != nil {
		t.Errorf("valid date rejected: %v", err)
	}
	if err := validateOptionalDate("14/03/2026"); err == nil {
		t.Error("expected an error for a non ISO date")
	}
	if err := validateOptionalDate("2026-13-40"); err == nil {
		t.Error("expected an error for an impossible date")
	}
}
