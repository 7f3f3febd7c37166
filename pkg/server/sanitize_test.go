package server

import "testing"

func TestContainsMarkup(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"Booking.com (1234)", false},
		{"A & B", false},
		{"AT&amp;T", false},
		{"", false},
		{"<b>Booking</b>", true},
		{"Hotels<Beds>", true},
		{`"><script>alert(1)</script>`, true},
	}
	for _, tt := range tests {
		if got := containsMarkup(tt.in); got != tt.want {
			t.Errorf("containsMarkup(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNormalizeText(t *testing.T) {
	if got := normalizeText("RO<NANR>\r\nAT&amp;T\r\n"); got != "RO<NANR>\nAT&amp;T\n" {
		t.Fatalf("normalizeText = %q", got)
	}
}
