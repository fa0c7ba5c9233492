package converter

import (
	"rental-escrow/internal/domain/dispute"
	"rental-escrow/internal/infra/pgq"
	"rental-escrow/internal/pkg/errs"
	"rental-escrow/internal/pkg/pgconv"

	"github.com/google/uuid"
)

func DisputeToRow(d *dispute.Dispute) pgq.Disputes {
	row := pgq.Disputes{
		ID:           d.ID(),
		BookingID:    d.BookingID(),
		ReporterID:   d.ReporterID(),
		ReporterRole: string(d.ReporterRole()),
		Reason:       string(d.Reason()),
		Description:  d.Description(),
		Priority:     string(d.Priority()),
		Status:       d.Status().String(),
		CreatedAt:    pgconv.TimeToPgtype(d.CreatedAt()),
		UpdatedAt:    pgconv.TimeToPgtype(d.UpdatedAt()),
	}
	if r := d.Resolution(); r != nil {
		row.Resolution = pgconv.StringToPgtype(r.Text)
		row.ResolvedBy = pgconv.UUIDToPgtype(r.ResolvedBy)
		row.ResolvedAt = pgconv.TimeToPgtype(r.ResolvedAt)
		row.HostShareRatio = pgconv.DecimalPtrToNumeric(r.HostShareRatio)
	}
	return row
}

func DisputeToStateParams(d *dispute.Dispute, expected dispute.Status) pgq.UpdateDisputeStateParams {
	row := DisputeToRow(d)
	return pgq.UpdateDisputeStateParams{
		ID:             row.ID,
		ExpectedStatus: expected.String(),
		Status:         row.Status,
		Resolution:     row.Resolution,
		ResolvedBy:     row.ResolvedBy,
		ResolvedAt:     row.ResolvedAt,
		HostShareRatio: row.HostShareRatio,
		UpdatedAt:      row.UpdatedAt,
	}
}

func DisputeFromRow(row pgq.Disputes, evidence []pgq.DisputeEvidence, notes []pgq.DisputeNotes) (*dispute.Dispute, error) {
	status, err := dispute.NewStatus(row.Status)
	if err != nil {
		return nil, errs.Mark(err, ErrCorruptRow)
	}
	var resolution *dispute.Resolution
	if row.ResolvedAt.Valid {
		ratio, err := pgconv.NumericPtrToDecimal(row.HostShareRatio)
		if err != nil {
			return nil, errs.Mark(err, ErrCorruptRow)
		}
		resolution = &dispute.Resolution{
			Text:           pgconv.StringFromPgtype(row.Resolution),
			ResolvedBy:     uuidOrNil(row.ResolvedBy),
			ResolvedAt:     row.ResolvedAt.Time,
			HostShareRatio: ratio,
		}
	}
	ev := make([]dispute.Evidence, 0, len(evidence))
	for _, e := range evidence {
		ev = append(ev, DisputeEvidenceFromRow(e))
	}
	ns := make([]dispute.Note, 0, len(notes))
	for _, n := range notes {
		ns = append(ns, DisputeNoteFromRow(n))
	}
	return dispute.ReconstructDispute(
		row.ID,
		row.BookingID,
		row.ReporterID,
		dispute.ReporterRole(row.ReporterRole),
		dispute.Reason(row.Reason),
		row.Description,
		dispute.Priority(row.Priority),
		status,
		ev,
		ns,
		resolution,
		pgconv.TimeFromPgtype(row.CreatedAt),
		pgconv.TimeFromPgtype(row.UpdatedAt),
	), nil
}

func DisputeNoteToRow(disputeID uuid.UUID, n dispute.Note) pgq.DisputeNotes {
	return pgq.DisputeNotes{
		ID:        n.ID,
		DisputeID: disputeID,
		ParentID:  pgconv.UUIDPtrToPgtype(n.ParentID),
		AuthorID:  n.AuthorID,
		Message:   n.Message,
		CreatedAt: pgconv.TimeToPgtype(n.CreatedAt),
	}
}

func DisputeNoteFromRow(row pgq.DisputeNotes) dispute.Note {
	return dispute.Note{
		ID:        row.ID,
		ParentID:  pgconv.UUIDPtrFromPgtype(row.ParentID),
		AuthorID:  row.AuthorID,
		Message:   row.Message,
		CreatedAt: pgconv.TimeFromPgtype(row.CreatedAt),
	}
}

func DisputeEvidenceToRow(disputeID uuid.UUID, e dispute.Evidence) pgq.DisputeEvidence {
	return pgq.DisputeEvidence{
		ID:         e.ID,
		DisputeID:  disputeID,
		Url:        e.URL,
		Type:       string(e.Type),
		UploadedBy: e.UploadedBy,
		UploadedAt: pgconv.TimeToPgtype(e.UploadedAt),
	}
}

func DisputeEvidenceFromRow(row pgq.DisputeEvidence) dispute.Evidence {
	return dispute.Evidence{
		ID:         row.ID,
		URL:        row.Url,
		Type:       dispute.EvidenceType(row.Type),
		UploadedBy: row.UploadedBy,
		UploadedAt: pgconv.TimeFromPgtype(row.UploadedAt),
	}
}
