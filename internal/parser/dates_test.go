package parser

import (
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name        string
		in          string
		impliedYear int
		want        string
		ok          bool
	}{
		{"long form abbreviated", "10 de nov. 2025", 0, "2025-11-10", true},
		{"long form full month", "3 de dezembro de 2025", 0, "2025-12-03", true},
		{"long form march accent", "1 de março de 2026", 0, "2026-03-01", true},
		{"slash full year", "05/02/2026", 0, "2026-02-05", true},
		{"slash short year", "05/02/26", 0, "2026-02-05", true},
		{"slash no year", "05/02", 2026, "2026-02-05", true},
		{"day month implied year", "01 jan", 2026, "2026-01-01", true},
		{"day month uppercase", "15 SET", 2025, "2025-09-15", true},
		{"iso passthrough", "2025-11-10", 0, "2025-11-10", true},
		{"month out of range", "05/13/2026", 0, "", false},
		{"day out of range", "32/01/2026", 0, "", false},
		{"impossible day for month", "31/02/2026", 0, "", false},
		{"not a date", "MERCADO LIVRE", 0, "", false},
		{"empty", "", 0, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := parseDate(tt.in, tt.impliedYear)
			if ok != tt.ok {
				t.Fatalf("parseDate(%q) ok = %v, want %v", tt.in, ok, tt.ok)
			}
			if got != tt.want {
				t.Errorf("parseDate(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestImpliedYear(t *testing.T) {
	tests := []struct {
		name string
		text string
		want int
	}{
		{"fatura label", "FATURA DE 01/2026 01 jan IFD*IFOOD CLUB 5,95", 2026},
		{"referencia label", "REFERÊNCIA: 03/2025", 2025},
		{"periodo label", "PERÍODO 12/2024", 2024},
		{"full slash date fallback", "compra em 15/08/2025 no cartão", 2025},
		{"label wins over slash date", "FATURA 2026 compra 15/08/2025", 2026},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ImpliedYear(tt.text); got != tt.want {
				t.Errorf("ImpliedYear(%q) = %d, want %d", tt.text, got, tt.want)
			}
		})
	}
}

func TestImpliedYear_CurrentYearFallback(t *testing.T) {
	restore := now
	now = func() time.Time { return time.Date(2031, time.July, 1, 0, 0, 0, 0, time.UTC) }
	defer func() { now = restore }()

	if got := ImpliedYear("nothing datable here"); got != 2031 {
		t.Errorf("ImpliedYear fallback = %d, want 2031", got)
	}
}
