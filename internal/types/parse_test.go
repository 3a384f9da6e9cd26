package types

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestParseActiveFlag(t *testing.T) {
	tests := []struct {
		name string
		in   interface{}
		want bool
	}{
		{name: "boolean true", in: true, want: true},
		{name: "boolean false", in: false, want: false},
		{name: "active sentinel", in: "active", want: true},
		{name: "active sentinel uppercase", in: "Active", want: true},
		{name: "active sentinel padded", in: "  active ", want: true},
		{name: "other string", in: "yes", want: false},
		{name: "empty string", in: "", want: false},
		{name: "nil", in: nil, want: false},
		{name: "number", in: 1.0, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseActiveFlag(tt.in); got != tt.want {
				t.Errorf("ParseActiveFlag(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseInt(t *testing.T) {
	tests := []struct {
		name   string
		in     interface{}
		want   int
		wantOK bool
	}{
		{name: "float64 from json", in: float64(12), want: 12, wantOK: true},
		{name: "int", in: 7, want: 7, wantOK: true},
		{name: "numeric string", in: "31", want: 31, wantOK: true},
		{name: "padded numeric string", in: " 5 ", want: 5, wantOK: true},
		{name: "non-numeric string", in: "abc", wantOK: false},
		{name: "empty string", in: "", wantOK: false},
		{name: "nil", in: nil, wantOK: false},
		{name: "bool", in: true, wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseInt(tt.in)
			if ok != tt.wantOK {
				t.Fatalf("ParseInt(%v) ok = %v, want %v", tt.in, ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("ParseInt(%v) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}

	if got := ParseIntOrZero("not a number"); got != 0 {
		t.Errorf("ParseIntOrZero(non-numeric) = %d, want 0", got)
	}
}

func TestParseDecimal(t *testing.T) {
	tests := []struct {
		name   string
		in     interface{}
		want   string
		wantOK bool
	}{
		{name: "float64", in: 49.9, want: "49.9", wantOK: true},
		{name: "integer string", in: "120", want: "120", wantOK: true},
		{name: "dot decimal string", in: "19.99", want: "19.99", wantOK: true},
		{name: "comma decimal string", in: "19,99", want: "19.99", wantOK: true},
		{name: "garbage string", in: "n/a", wantOK: false},
		{name: "nil", in: nil, wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseDecimal(tt.in)
			if ok != tt.wantOK {
				t.Fatalf("ParseDecimal(%v) ok = %v, want %v", tt.in, ok, tt.wantOK)
			}
			if !ok {
				return
			}
			want, err := decimal.NewFromString(tt.want)
			if err != nil {
				t.Fatalf("bad want value %q: %v", tt.want, err)
			}
			if !got.Equal(want) {
				t.Errorf("ParseDecimal(%v) = %s, want %s", tt.in, got, want)
			}
		})
	}
}

func TestParseStringSlice(t *testing.T) {
	got := ParseStringSlice([]interface{}{"recA", "recB", 3.0})
	if len(got) != 2 || got[0] != "recA" || got[1] != "recB" {
		t.Errorf("ParseStringSlice mixed input = %v, want [recA recB]", got)
	}

	if got := ParseStringSlice(nil); got != nil {
		t.Errorf("ParseStringSlice(nil) = %v, want nil", got)
	}
}
