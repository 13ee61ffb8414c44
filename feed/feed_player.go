package feed

import (
	"strings"

	"github.com/mww/dreamsquad/model"
)

type playersResponse struct {
	Players []feedPlayer `json:"players"`
}

type feedPlayer struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Club     string   `json:"club"`
	Position string   `json:"position"`
	Value    *float64 `json:"value"`
}

type scoresResponse struct {
	Matchday int         `json:"matchday"`
	Scores   []feedScore `json:"scores"`
}

type feedScore struct {
	ID     string `json:"id"`
	Points int    `json:"points"`
}

// toPlayer reports false for records that cannot be used: no id, no name or
// a position that does not map to one of ours.
func (p *feedPlayer) toPlayer() (*model.Player, bool) {
	id := strings.TrimSpace(p.ID)
	name := model.TrimNameSuffix(p.Name)
	if id == "" || name == "" {
		return nil, false
	}

	pos := model.ParsePosition(p.Position)
	if pos == model.POS_UNKNOWN {
		return nil, false
	}

	value := model.DefaultPlayerValue
	if p.Value != nil && *p.Value > 0 {
		if v := model.NewMoney(*p.Value); v > 0 {
			value = v
		}
	}

	return &model.Player{
		ExternalID: id,
		Name:       name,
		Club:       strings.TrimSpace(p.Club),
		Position:   pos,
		Value:      value,
	}, true
}
