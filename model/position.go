package model

import (
	"strings"
)

type Position string

const (
	POS_UNKNOWN Position = "UNK"
	POS_GK      Position = "GK"
	POS_DEF     Position = "DEF"
	POS_MID     Position = "MID"
	POS_FWD     Position = "FWD"
)

// ParsePosition accepts the short codes as well as the long names used by the
// football data feed, e.g. "Goalkeeper", "Defence", "Centre-Back", "Offence".
func ParsePosition(pos string) Position {
	pos = strings.ToLower(strings.TrimSpace(pos))
	switch pos {
	case "gk", "goalkeeper", "keeper":
		return POS_GK
	case "def", "defender", "defence", "defense", "centre-back", "left-back", "right-back":
		return POS_DEF
	case "mid", "midfielder", "midfield", "defensive midfield", "central midfield", "attacking midfield":
		return POS_MID
	case "fwd", "forward", "offence", "offense", "attacker", "centre-forward", "left winger", "right winger":
		return POS_FWD
	default:
		return POS_UNKNOWN
	}
}
