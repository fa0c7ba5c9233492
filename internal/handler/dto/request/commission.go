package request

import (
	"strings"

	"rental-escrow/internal/usecase/commands"

	"github.com/shopspring/decimal"
)

type RateChangeRequest struct {
	Category string `json:"category" binding:"required"`
	Value    string `json:"value" binding:"required"`
}

type UpdateRatesRequest struct {
	Rates  []RateChangeRequest `json:"rates" binding:"required,min=1,dive"`
	Reason string              `json:"reason" binding:"max=500"`
}

// ToInput parses rate values as exact decimals; floats never reach the resolver.
func (r UpdateRatesRequest) ToInput() (commands.UpdateRatesInput, error) {
	in := commands.UpdateRatesInput{
		Changes: make([]commands.RateChange, 0, len(r.Rates)),
		Reason:  strings.TrimSpace(r.Reason),
	}
	for _, rc := range r.Rates {
		v, err := decimal.NewFromString(strings.TrimSpace(rc.Value))
		if err != nil {
			return commands.UpdateRatesInput{}, err
		}
		in.Changes = append(in.Changes, commands.RateChange{Category: rc.Category, Value: v})
	}
	return in, nil
}
