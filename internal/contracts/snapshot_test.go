package contracts

import "testing"

func TestToken(t *testing.T) {
	tests := []struct {
		exchange string
		symbol   string
		want     string
	}{
		{"NASDAQ", "AAPL", "NASDAQ:AAPL"},
		{"NYSE", "JPM", "NYSE:JPM"},
		{"EURONEXT", "MC", "EURONEXT:MC"},
	}

	for _, tt := range tests {
		if got := Token(tt.exchange, tt.symbol); got != tt.want {
			t.Errorf("Token(%q, %q) = %q, want %q", tt.exchange, tt.symbol, got, tt.want)
		}
	}
}

func TestRequiredSetsAreDisjoint(t *testing.T) {
	scoring := make(map[string]bool, len(ScoringColumns))
	for _, c := range ScoringColumns {
		scoring[c] = true
	}

	for _, c := range CurationColumns {
		if scoring[c] {
			t.Errorf("column %q appears in both required sets", c)
		}
	}
}
