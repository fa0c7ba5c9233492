package response

import (
	"rental-escrow/internal/usecase/commands"
	"rental-escrow/internal/usecase/queries"

	"github.com/google/uuid"
)

type UpdateRatesResponse struct {
	Rates   []*queries.CommissionRateView    `json:"rates"`
	Changes []*queries.CommissionHistoryView `json:"changes"`
}

func FromUpdateRatesResult(r *commands.UpdateRatesResult) *UpdateRatesResponse {
	res := &UpdateRatesResponse{
		Rates:   make([]*queries.CommissionRateView, 0, len(r.Rates)),
		Changes: make([]*queries.CommissionHistoryView, 0, len(r.History)),
	}
	for _, rate := range r.Rates {
		res.Rates = append(res.Rates, queries.NewCommissionRateView(rate))
	}
	for _, h := range r.History {
		res.Changes = append(res.Changes, queries.NewCommissionHistoryView(h))
	}
	return res
}

type ScheduleResponse struct {
	Payouts      []*queries.PayoutView `json:"payouts"`
	SkippedHosts []uuid.UUID           `json:"skipped_hosts"`
}

func FromScheduleResult(r *commands.ScheduleResult) *ScheduleResponse {
	res := &ScheduleResponse{
		Payouts:      make([]*queries.PayoutView, 0, len(r.Requests)),
		SkippedHosts: r.SkippedHosts,
	}
	if res.SkippedHosts == nil {
		res.SkippedHosts = []uuid.UUID{}
	}
	for _, p := range r.Requests {
		res.Payouts = append(res.Payouts, queries.NewPayoutView(p))
	}
	return res
}
