package model

import "testing"

func TestParsePosition(t *testing.T) {
	tests := []struct {
		input    string
		expected Position
	}{
		{input: "GK", expected: POS_GK},
		{input: "gk", expected: POS_GK},
		{input: "Goalkeeper", expected: POS_GK},
		{input: "DEF", expected: POS_DEF},
		{input: "Defence", expected: POS_DEF},
		{input: "Centre-Back", expected: POS_DEF},
		{input: "mid", expected: POS_MID},
		{input: "Midfield", expected: POS_MID},
		{input: "Attacking Midfield", expected: POS_MID},
		{input: "FWD", expected: POS_FWD},
		{input: "Offence", expected: POS_FWD},
		{input: " Centre-Forward ", expected: POS_FWD},
		{input: "UNKNOWN", expected: POS_UNKNOWN},
		{input: "QB", expected: POS_UNKNOWN},
		{input: "", expected: POS_UNKNOWN},
	}

	for _, tc := range tests {
		a := ParsePosition(tc.input)
		if a != tc.expected {
			t.Errorf("input: '%s', expected: '%s', got '%s'", tc.input, tc.expected, a)
		}
	}
}
