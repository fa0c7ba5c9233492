package dispute

type Status string

const (
	StatusOpen     Status = "open"
	StatusPending  Status = "pending"
	StatusResolved Status = "resolved"
	StatusClosed   Status = "closed"
)

func (s Status) String() string { return string(s) }

// IsOpen covers both states in which a dispute still blocks escrow release.
func (s Status) IsOpen() bool {
	return s == StatusOpen || s == StatusPending
}

func NewStatus(s string) (Status, error) {
	switch st := Status(s); st {
	case StatusOpen, StatusPending, StatusResolved, StatusClosed:
		return st, nil
	default:
		return "", ErrInvalidStatus
	}
}

type Reason string

const (
	ReasonDamage         Reason = "damage"
	ReasonCleanliness    Reason = "cleanliness"
	ReasonNotAsDescribed Reason = "not_as_described"
	ReasonNoShow         Reason = "no_show"
	ReasonCancellation   Reason = "cancellation"
	ReasonPayment        Reason = "payment"
	ReasonOther          Reason = "other"
)

func NewReason(s string) (Reason, error) {
	switch r := Reason(s); r {
	case ReasonDamage, ReasonCleanliness, ReasonNotAsDescribed, ReasonNoShow,
		ReasonCancellation, ReasonPayment, ReasonOther:
		return r, nil
	default:
		return "", ErrInvalidReason
	}
}

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// NewPriority defaults an empty value to medium.
func NewPriority(s string) (Priority, error) {
	if s == "" {
		return PriorityMedium, nil
	}
	switch p := Priority(s); p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return p, nil
	default:
		return "", ErrInvalidPriority
	}
}

type EvidenceType string

const (
	EvidenceImage    EvidenceType = "image"
	EvidenceVideo    EvidenceType = "video"
	EvidenceDocument EvidenceType = "document"
	EvidenceOther    EvidenceType = "other"
)

func NewEvidenceType(s string) (EvidenceType, error) {
	switch t := EvidenceType(s); t {
	case EvidenceImage, EvidenceVideo, EvidenceDocument, EvidenceOther:
		return t, nil
	default:
		return "", ErrInvalidEvidence
	}
}
