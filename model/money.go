package model

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// Money is a fixed-point amount in hundredths (85.50 is Money(8550)).
type Money int64

const (
	moneyScale = 100

	// InitialBudget is the allowance every roster starts with.
	InitialBudget Money = 100 * moneyScale
	// DefaultPlayerValue is used when the feed does not price a player.
	DefaultPlayerValue Money = 10 * moneyScale
)

// NewMoney converts a decimal amount, rounding to the nearest hundredth.
func NewMoney(v float64) Money {
	return Money(math.Round(v * moneyScale))
}

func (m Money) Float64() float64 {
	return float64(m) / moneyScale
}

func (m Money) String() string {
	return strconv.FormatFloat(m.Float64(), 'f', 2, 64)
}

func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatFloat(m.Float64(), 'f', -1, 64)), nil
}

func (m *Money) UnmarshalJSON(b []byte) error {
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return fmt.Errorf("money must be a number: %w", err)
	}
	*m = NewMoney(f)
	return nil
}
