package commands

import (
	"errors"

	"rental-escrow/internal/domain/booking"
	"rental-escrow/internal/domain/commission"
	"rental-escrow/internal/domain/dispute"
	"rental-escrow/internal/domain/escrow"
	"rental-escrow/internal/domain/payout"
	"rental-escrow/internal/domain/pricing"
	"rental-escrow/internal/domain/voucher"
	"rental-escrow/internal/infra"
	"rental-escrow/internal/pkg/errs"
	"rental-escrow/internal/usecase/ledger"
	"rental-escrow/internal/usecase/payment"
)

// Error families. Every error a command returns is marked with at most one of these; handlers map
// the family to a status code.
var (
	ErrValidation      = errs.New("validation failed")
	ErrNotFound        = errs.New("not found")
	ErrForbidden       = errs.New("forbidden")
	ErrConflict        = errs.New("conflict")
	ErrIntegrity       = errs.New("integrity violation")
	ErrPaymentProvider = errs.New("payment provider unavailable")
)

var (
	ErrBookingNotFound        = errs.Mark(errs.New("booking not found"), ErrNotFound)
	ErrListingNotFound        = errs.Mark(errs.New("listing not found"), ErrNotFound)
	ErrDisputeNotFound        = errs.Mark(errs.New("dispute not found"), ErrNotFound)
	ErrVoucherNotFound        = errs.Mark(errs.New("voucher not found"), ErrNotFound)
	ErrEscrowNotFound         = errs.Mark(errs.New("escrow not found"), ErrNotFound)
	ErrRateNotConfigured      = errs.Mark(errs.New("commission category is not configured"), ErrNotFound)
	ErrNotParticipant         = errs.Mark(errs.New("actor is not a participant of this booking"), ErrForbidden)
	ErrAdminOnly              = errs.Mark(errs.New("admin role required"), ErrForbidden)
	ErrHostOnly               = errs.Mark(errs.New("only the host can do this"), ErrForbidden)
	ErrUnavailable            = errs.Mark(errs.New("listing is not available for these dates"), ErrConflict)
	ErrInvalidTransition      = errs.Mark(errs.New("booking status does not allow this action"), ErrConflict)
	ErrPaymentExpired         = errs.Mark(errs.New("payment window has expired"), ErrConflict)
	ErrVoucherExpired         = errs.Mark(errs.New("voucher has expired"), ErrConflict)
	ErrVoucherAlreadyUsed     = errs.Mark(errs.New("voucher was already validated"), ErrConflict)
	ErrDisputeAlreadyOpen     = errs.Mark(errs.New("booking already has an open dispute"), ErrConflict)
	ErrDisputeOpen            = errs.Mark(errs.New("escrow is under an open dispute"), ErrConflict)
	ErrDisputeNotOpen         = errs.Mark(errs.New("dispute is no longer open"), ErrConflict)
	ErrEscrowConflict         = errs.Mark(errs.New("escrow state does not allow this action"), ErrConflict)
	ErrConcurrentUpdate       = errs.Mark(errs.New("resource was modified concurrently"), ErrConflict)
	ErrIdempotencyInProgress  = errs.Mark(errs.New("request with this idempotency key is in progress"), ErrConflict)
	ErrIdempotencyKeyReused   = errs.Mark(errs.New("idempotency key was used with a different request"), ErrConflict)
	ErrIdempotencyKeyRequired = errs.Mark(errs.New("idempotency key required"), ErrValidation)
	ErrGuestContactMissing    = errs.Mark(errs.New("cash payment requires the guest's full name and phone"), ErrValidation)
	ErrDuplicateCategory      = errs.Mark(errs.New("category listed more than once"), ErrValidation)
	ErrNoChanges              = errs.Mark(errs.New("no rate changes given"), ErrValidation)
	ErrVoucherRefRequired     = errs.Mark(errs.New("voucher id or booking id is required"), ErrValidation)
)

var validationErrs = []error{
	booking.ErrInvalidPaymentMethod, booking.ErrInvalidPolicy, booking.ErrInvalidDateRange,
	booking.ErrCheckInInPast, booking.ErrInvalidGuests, booking.ErrTooManyGuests,
	booking.ErrInvalidClockTime, booking.ErrListingInactive, booking.ErrSelfBooking,
	booking.ErrStayTooShort, booking.ErrStayTooLong,
	dispute.ErrInvalidReason, dispute.ErrInvalidPriority, dispute.ErrInvalidEvidence,
	dispute.ErrDescriptionEmpty, dispute.ErrDescriptionTooLong, dispute.ErrNoteEmpty,
	dispute.ErrNoteTooLong, dispute.ErrParentNoteNotFound, dispute.ErrResolutionRequired,
	dispute.ErrInvalidRatio, dispute.ErrInvalidReporter,
	voucher.ErrAgencyCodeRequired, voucher.ErrTransactionIDEmpty,
	commission.ErrInvalidCategory, commission.ErrReasonTooLong, commission.ErrActorRequired,
	commission.ErrDefaultRateMissing, commission.ErrMissingExchangeRate,
	escrow.ErrInvalidRatio,
	pricing.ErrInvalidNights, pricing.ErrInvalidRate, pricing.ErrCurrencyMismatch,
	ledger.ErrInvalidInput,
	payment.ErrUnsupportedMethod, payment.ErrValidationMissing,
}

var integrityErrs = []error{
	ledger.ErrIntegrity, payment.ErrAmountMismatch, pricing.ErrUnbalanced,
	commission.ErrRateOutOfBounds, commission.ErrInvalidBounds,
	payout.ErrCurrencyMixed, payout.ErrDuplicateBooking,
}

var conflictErrs = []error{
	booking.ErrInvalidTransition, booking.ErrPaymentAttached, booking.ErrPaymentMismatch,
	dispute.ErrNotReviewable,
	voucher.ErrNotPending,
	ledger.ErrDuplicateHold,
	payment.ErrVoucherRejected,
}

// classify marks err with its family. Errors already carrying a family pass through unchanged;
// anything unrecognized stays an internal error.
func classify(err error) error {
	if err == nil {
		return nil
	}
	for _, fam := range []error{ErrValidation, ErrNotFound, ErrForbidden, ErrConflict, ErrIntegrity, ErrPaymentProvider} {
		if errors.Is(err, fam) {
			return err
		}
	}

	switch {
	case errors.Is(err, booking.ErrNotParticipant):
		return errs.Mark(err, ErrNotParticipant)
	case errors.Is(err, voucher.ErrExpired):
		return errs.Mark(err, ErrVoucherExpired)
	case errors.Is(err, dispute.ErrNotOpen):
		return errs.Mark(err, ErrDisputeNotOpen)
	case errors.Is(err, ledger.ErrEscrowConflict):
		return errs.Mark(err, ErrEscrowConflict)
	case errors.Is(err, ledger.ErrEscrowNotFound):
		return errs.Mark(err, ErrEscrowNotFound)
	case errors.Is(err, payment.ErrVoucherNotFound):
		return errs.Mark(err, ErrVoucherNotFound)
	case errors.Is(err, payment.ErrProvider):
		return errs.Mark(err, ErrPaymentProvider)
	}

	if matchesAny(err, integrityErrs) {
		return errs.Mark(err, ErrIntegrity)
	}
	if matchesAny(err, validationErrs) {
		return errs.Mark(err, ErrValidation)
	}
	if matchesAny(err, conflictErrs) {
		return errs.Mark(err, ErrConflict)
	}

	switch {
	case infra.IsKind(err, infra.KindStaleState):
		return errs.Mark(err, ErrConcurrentUpdate)
	case infra.IsKind(err, infra.KindConflict), infra.IsKind(err, infra.KindDuplicateKey):
		return errs.Mark(err, ErrConflict)
	case infra.IsKind(err, infra.KindNotFound):
		return errs.Mark(err, ErrNotFound)
	}
	return err
}

func matchesAny(err error, refs []error) bool {
	for _, ref := range refs {
		if errors.Is(err, ref) {
			return true
		}
	}
	return false
}
