package handler

import (
	"errors"
	"testing"
)

func TestOptionalFloat(t *testing.T) {
	tests := []struct {
		raw     string
		want    *float64
		wantErr bool
	}{
		{raw: ""},
		{raw: " 4.5 ", want: ptr(4.5)},
		{raw: "abc", wantErr: true},
		{raw: "NaN", wantErr: true},
		{raw: "nan", wantErr: true},
		{raw: "+Inf", wantErr: true},
	}

	for _, tt := range tests {
		got, err := optionalFloat(tt.raw)
		if tt.wantErr {
			if err == nil {
				t.Fatalf("%q: expected error, got %v", tt.raw, got)
			}
			continue
		}
		if err != nil {
			t.Fatalf("%q: unexpected err: %v", tt.raw, err)
		}
		if (got == nil) != (tt.want == nil) || (got != nil && *got != *tt.want) {
			t.Fatalf("%q: got %v, want %v", tt.raw, got, tt.want)
		}
	}

	if _, err := optionalFloat("NaN"); !errors.Is(err, errNotFinite) {
		t.Fatalf("expected errNotFinite, got %v", err)
	}
}

func ptr(f float64) *float64 { return &f }
