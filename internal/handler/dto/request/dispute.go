package request

import (
	"strings"

	"rental-escrow/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"github.com/shopspring/decimal"
)

type OpenDisputeRequest struct {
	Reason      string `json:"reason" binding:"required"`
	Description string `json:"description" binding:"required,max=5000"`
	Priority    string `json:"priority" binding:"omitempty,oneof=low medium high urgent"`
}

func (r OpenDisputeRequest) ToInput() (commands.OpenDisputeInput, error) {
	var in commands.OpenDisputeInput
	if err := copier.Copy(&in, &r); err != nil {
		return commands.OpenDisputeInput{}, err
	}
	return in, nil
}

type AddNoteRequest struct {
	Message  string     `json:"message" binding:"required,max=2000"`
	ParentID *uuid.UUID `json:"parent_id"`
}

func (r AddNoteRequest) ToInput() (commands.AddNoteInput, error) {
	var in commands.AddNoteInput
	if err := copier.Copy(&in, &r); err != nil {
		return commands.AddNoteInput{}, err
	}
	return in, nil
}

type AddEvidenceRequest struct {
	URL  string `json:"url" binding:"required,url"`
	Type string `json:"type" binding:"required,oneof=image video document other"`
}

func (r AddEvidenceRequest) ToInput() commands.AddEvidenceInput {
	return commands.AddEvidenceInput{URL: strings.TrimSpace(r.URL), Type: r.Type}
}

type ResolveDisputeRequest struct {
	Resolution     string `json:"resolution" binding:"required,max=5000"`
	HostShareRatio string `json:"host_share_ratio" binding:"required"`
}

func (r ResolveDisputeRequest) ToInput() (commands.ResolveDisputeInput, error) {
	ratio, err := decimal.NewFromString(strings.TrimSpace(r.HostShareRatio))
	if err != nil {
		return commands.ResolveDisputeInput{}, err
	}
	return commands.ResolveDisputeInput{Resolution: r.Resolution, HostShareRatio: ratio}, nil
}

type CloseDisputeRequest struct {
	Resolution string `json:"resolution" binding:"required,max=5000"`
}
