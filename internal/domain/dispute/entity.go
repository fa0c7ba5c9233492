package dispute

import (
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"rental-escrow/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	MaxDescriptionLength = 5000
	MaxNoteLength        = 2000
	MaxResolutionLength  = 5000
)

var (
	ErrInvalidStatus      = errs.New("invalid dispute status")
	ErrInvalidReason      = errs.New("invalid dispute reason")
	ErrInvalidPriority    = errs.New("invalid dispute priority")
	ErrInvalidEvidence    = errs.New("invalid evidence")
	ErrDescriptionEmpty   = errs.New("dispute description is required")
	ErrDescriptionTooLong = errs.New("dispute description is too long")
	ErrNoteEmpty          = errs.New("note message is required")
	ErrNoteTooLong        = errs.New("note message is too long")
	ErrParentNoteNotFound = errs.New("parent note not found")
	ErrResolutionRequired = errs.New("resolution text is required")
	ErrInvalidRatio       = errs.New("host share ratio must be within [0,1]")
	ErrNotOpen            = errs.New("dispute is no longer open")
	ErrNotReviewable      = errs.New("only open disputes can be taken under review")
	ErrInvalidReporter    = errs.New("reporter must be a guest, host or admin")
)

type ReporterRole string

const (
	ReporterGuest ReporterRole = "guest"
	ReporterHost  ReporterRole = "host"
	ReporterAdmin ReporterRole = "admin"
)

type Evidence struct {
	ID         uuid.UUID
	URL        string
	Type       EvidenceType
	UploadedBy uuid.UUID
	UploadedAt time.Time
}

// Note is one message in the dispute thread. ParentID links replies.
type Note struct {
	ID        uuid.UUID
	ParentID  *uuid.UUID
	AuthorID  uuid.UUID
	Message   string
	CreatedAt time.Time
}

type Resolution struct {
	Text           string
	ResolvedBy     uuid.UUID
	ResolvedAt     time.Time
	HostShareRatio *decimal.Decimal
}

type Dispute struct {
	id           uuid.UUID
	bookingID    uuid.UUID
	reporterID   uuid.UUID
	reporterRole ReporterRole
	reason       Reason
	description  string
	priority     Priority
	status       Status
	evidence     []Evidence
	notes        []Note
	resolution   *Resolution
	createdAt    time.Time
	updatedAt    time.Time
}

func NewDispute(bookingID, reporterID uuid.UUID, role ReporterRole, reason Reason, description string, priority Priority, now time.Time) (*Dispute, error) {
	switch role {
	case ReporterGuest, ReporterHost, ReporterAdmin:
	default:
		return nil, ErrInvalidReporter
	}
	if _, err := NewReason(string(reason)); err != nil {
		return nil, err
	}
	if _, err := NewPriority(string(priority)); err != nil {
		return nil, err
	}
	if priority == "" {
		priority = PriorityMedium
	}
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, ErrDescriptionEmpty
	}
	if utf8.RuneCountInString(description) > MaxDescriptionLength {
		return nil, ErrDescriptionTooLong
	}
	return &Dispute{
		id:           uuid.New(),
		bookingID:    bookingID,
		reporterID:   reporterID,
		reporterRole: role,
		reason:       reason,
		description:  description,
		priority:     priority,
		status:       StatusOpen,
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

func ReconstructDispute(
	id, bookingID, reporterID uuid.UUID,
	role ReporterRole,
	reason Reason,
	description string,
	priority Priority,
	status Status,
	evidence []Evidence,
	notes []Note,
	resolution *Resolution,
	createdAt, updatedAt time.Time,
) *Dispute {
	return &Dispute{
		id:           id,
		bookingID:    bookingID,
		reporterID:   reporterID,
		reporterRole: role,
		reason:       reason,
		description:  description,
		priority:     priority,
		status:       status,
		evidence:     evidence,
		notes:        notes,
		resolution:   resolution,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}
}

func (d *Dispute) AddNote(author uuid.UUID, message string, parentID *uuid.UUID, now time.Time) (Note, error) {
	if !d.status.IsOpen() {
		return Note{}, ErrNotOpen
	}
	message = strings.TrimSpace(message)
	if message == "" {
		return Note{}, ErrNoteEmpty
	}
	if utf8.RuneCountInString(message) > MaxNoteLength {
		return Note{}, ErrNoteTooLong
	}
	if parentID != nil && !d.hasNote(*parentID) {
		return Note{}, ErrParentNoteNotFound
	}
	n := Note{ID: uuid.New(), ParentID: parentID, AuthorID: author, Message: message, CreatedAt: now}
	d.notes = append(d.notes, n)
	d.updatedAt = now
	return n, nil
}

func (d *Dispute) AddEvidence(uploader uuid.UUID, rawURL string, typ EvidenceType, now time.Time) (Evidence, error) {
	if !d.status.IsOpen() {
		return Evidence{}, ErrNotOpen
	}
	if _, err := NewEvidenceType(string(typ)); err != nil {
		return Evidence{}, err
	}
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || (u.Scheme != "https" && u.Scheme != "http") || u.Host == "" {
		return Evidence{}, ErrInvalidEvidence
	}
	e := Evidence{ID: uuid.New(), URL: u.String(), Type: typ, UploadedBy: uploader, UploadedAt: now}
	d.evidence = append(d.evidence, e)
	d.updatedAt = now
	return e, nil
}

func (d *Dispute) MarkUnderReview(now time.Time) error {
	if d.status != StatusOpen {
		return ErrNotReviewable
	}
	d.status = StatusPending
	d.updatedAt = now
	return nil
}

// Resolve ends the dispute with a fund decision expressed as the host's share of the held amount.
func (d *Dispute) Resolve(admin uuid.UUID, text string, hostShareRatio decimal.Decimal, now time.Time) error {
	if !d.status.IsOpen() {
		return ErrNotOpen
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return ErrResolutionRequired
	}
	if utf8.RuneCountInString(text) > MaxResolutionLength {
		return ErrDescriptionTooLong
	}
	if hostShareRatio.IsNegative() || hostShareRatio.GreaterThan(decimal.NewFromInt(1)) {
		return ErrInvalidRatio
	}
	ratio := hostShareRatio
	d.status = StatusResolved
	d.resolution = &Resolution{Text: text, ResolvedBy: admin, ResolvedAt: now, HostShareRatio: &ratio}
	d.updatedAt = now
	return nil
}

// Close ends the dispute without moving funds.
func (d *Dispute) Close(admin uuid.UUID, text string, now time.Time) error {
	if !d.status.IsOpen() {
		return ErrNotOpen
	}
	d.status = StatusClosed
	d.resolution = &Resolution{Text: strings.TrimSpace(text), ResolvedBy: admin, ResolvedAt: now}
	d.updatedAt = now
	return nil
}

func (d *Dispute) hasNote(id uuid.UUID) bool {
	for _, n := range d.notes {
		if n.ID == id {
			return true
		}
	}
	return false
}

func (d *Dispute) ID() uuid.UUID              { return d.id }
func (d *Dispute) BookingID() uuid.UUID       { return d.bookingID }
func (d *Dispute) ReporterID() uuid.UUID      { return d.reporterID }
func (d *Dispute) ReporterRole() ReporterRole { return d.reporterRole }
func (d *Dispute) Reason() Reason             { return d.reason }
func (d *Dispute) Description() string        { return d.description }
func (d *Dispute) Priority() Priority         { return d.priority }
func (d *Dispute) Status() Status             { return d.status }
func (d *Dispute) Evidence() []Evidence       { return d.evidence }
func (d *Dispute) Notes() []Note              { return d.notes }
func (d *Dispute) Resolution() *Resolution    { return d.resolution }
func (d *Dispute) CreatedAt() time.Time       { return d.createdAt }
func (d *Dispute) UpdatedAt() time.Time       { return d.updatedAt }
