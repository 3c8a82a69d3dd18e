package parser

import (
	"math"
	"testing"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{"R$ 146,73", 146.73, false},
		{"R$ 1.234,56", 1234.56, false},
		{"R$1.234.567,89", 1234567.89, false},
		{"5,95", 5.95, false},
		{"- R$ 146,73", 146.73, false}, // separator hyphen, not a sign
		{"+ R$ 500,00", 500.00, false}, // parses; credit rejection is separate
		{"R$ 0,00", 0, false},
		{"", 0, true},
		{"R$", 0, true},
		{"abc", 0, true},
	}

	for _, tt := range tests {
		got, err := parseAmount(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("parseAmount(%q): expected error, got %f", tt.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("parseAmount(%q): unexpected error: %v", tt.in, err)
			continue
		}
		if math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("parseAmount(%q) = %f, want %f", tt.in, got, tt.want)
		}
	}
}

func TestHasCreditMarker(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"+ R$ 500,00", true},
		{"  + R$ 10,00", true},
		{"+R$10,00", true},
		{"R$ 500,00", false},
		{"- R$ 500,00", false},
		{"500,00", false},
	}

	for _, tt := range tests {
		if got := hasCreditMarker(tt.in); got != tt.want {
			t.Errorf("hasCreditMarker(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
