//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"rental-escrow/internal/domain/booking"
	"rental-escrow/internal/domain/dispute"
	"rental-escrow/internal/domain/escrow"
	"rental-escrow/internal/domain/user"
	"rental-escrow/internal/usecase/commands"
	"rental-escrow/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type DisputeCommandsTestSuite struct {
	suite.Suite
	h       *harness
	ctx     context.Context
	booking uuid.UUID
}

func (s *DisputeCommandsTestSuite) SetupTest() {
	s.h = newHarness(s.T())
	s.ctx = context.Background()
	s.booking = s.h.confirmedBooking(s.T()).BookingID
	s.h.recorder.reset()
}

func (s *DisputeCommandsTestSuite) open(actor shared.Actor) *dispute.Dispute {
	d, err := s.h.disputes.Open(s.ctx, s.booking, commands.OpenDisputeInput{
		Reason:      "cleanliness",
		Description: "The kitchen was not cleaned before arrival.",
		Priority:    "high",
	}, actor)
	s.Require().NoError(err)
	return d
}

func (s *DisputeCommandsTestSuite) TestOpenFreezesEscrow() {
	d := s.open(s.h.guest)

	s.Equal(dispute.StatusOpen, d.Status())
	s.Equal(dispute.ReporterGuest, d.ReporterRole())
	s.Equal(dispute.PriorityHigh, d.Priority())
	s.Equal(escrow.StatusFrozen, s.h.escrow(s.T(), s.booking).Status())
	s.Equal(booking.StatusDisputed, s.h.booking(s.T(), s.booking).Status())
	s.Equal([]escrow.Action{escrow.ActionHold, escrow.ActionFreeze}, s.h.escrowActions(s.T(), s.booking))
	s.Equal([]string{shared.NotifyDisputeOpened}, s.h.recorder.typesFor(s.h.host.ID))
	s.Empty(s.h.recorder.typesFor(s.h.guest.ID))
}

func (s *DisputeCommandsTestSuite) TestOpenRefusals() {
	s.Run("second open dispute", func() {
		s.open(s.h.guest)

		_, err := s.h.disputes.Open(s.ctx, s.booking, commands.OpenDisputeInput{
			Reason:      "damage",
			Description: "Broken window.",
		}, s.h.host)

		s.ErrorIs(err, commands.ErrDisputeAlreadyOpen)
	})

	s.Run("stranger", func() {
		_, err := s.h.disputes.Open(s.ctx, s.booking, commands.OpenDisputeInput{
			Reason:      "damage",
			Description: "Broken window.",
		}, shared.Actor{ID: uuid.New(), Role: user.RoleGuest})

		s.ErrorIs(err, commands.ErrNotParticipant)
	})

	s.Run("unknown reason", func() {
		_, err := s.h.disputes.Open(s.ctx, s.booking, commands.OpenDisputeInput{
			Reason:      "noise",
			Description: "Loud neighbours.",
		}, s.h.guest)

		s.ErrorIs(err, commands.ErrValidation)
	})

	s.Run("pending booking", func() {
		other := newHarness(s.T())
		pending := other.create(s.T(), other.input(booking.MethodCard))

		_, err := other.disputes.Open(s.ctx, pending.BookingID, commands.OpenDisputeInput{
			Reason:      "payment",
			Description: "Charged twice.",
		}, other.guest)

		s.ErrorIs(err, commands.ErrInvalidTransition)
	})
}

func (s *DisputeCommandsTestSuite) TestOpenOnCompletedBookingKeepsStatus() {
	s.h.clock.Set(time.Date(2026, 3, 13, 13, 0, 0, 0, time.UTC))
	_, err := s.h.sweeps.ActivateDue(s.ctx)
	s.Require().NoError(err)
	_, err = s.h.sweeps.CompleteDue(s.ctx)
	s.Require().NoError(err)
	s.Require().Equal(booking.StatusCompleted, s.h.booking(s.T(), s.booking).Status())

	s.open(s.h.host)

	s.Equal(booking.StatusCompleted, s.h.booking(s.T(), s.booking).Status())
	s.Equal(escrow.StatusFrozen, s.h.escrow(s.T(), s.booking).Status())
}

func (s *DisputeCommandsTestSuite) TestNotesAndEvidence() {
	d := s.open(s.h.guest)

	note, err := s.h.disputes.AddNote(s.ctx, d.ID(), commands.AddNoteInput{Message: "Photos attached."}, s.h.guest)
	s.Require().NoError(err)
	reply, err := s.h.disputes.AddNote(s.ctx, d.ID(), commands.AddNoteInput{Message: "It was clean at checkout.", ParentID: &note.ID}, s.h.host)
	s.Require().NoError(err)
	s.Equal(note.ID, *reply.ParentID)
	s.Contains(s.h.recorder.typesFor(s.h.host.ID), shared.NotifyDisputeNote)
	s.Contains(s.h.recorder.typesFor(s.h.guest.ID), shared.NotifyDisputeNote)

	missing := uuid.New()
	_, err = s.h.disputes.AddNote(s.ctx, d.ID(), commands.AddNoteInput{Message: "?", ParentID: &missing}, s.h.guest)
	s.ErrorIs(err, commands.ErrValidation)

	evidence, err := s.h.disputes.AddEvidence(s.ctx, d.ID(), commands.AddEvidenceInput{URL: "https://cdn.example.com/kitchen.jpg", Type: "image"}, s.h.guest)
	s.Require().NoError(err)
	s.Equal(dispute.EvidenceImage, evidence.Type)

	_, err = s.h.disputes.AddEvidence(s.ctx, d.ID(), commands.AddEvidenceInput{URL: "ftp://files/kitchen.jpg", Type: "image"}, s.h.guest)
	s.ErrorIs(err, commands.ErrValidation)

	_, err = s.h.disputes.AddNote(s.ctx, d.ID(), commands.AddNoteInput{Message: "hello"}, shared.Actor{ID: uuid.New(), Role: user.RoleHost})
	s.ErrorIs(err, commands.ErrNotParticipant)

	_, err = s.h.disputes.AddNote(s.ctx, uuid.New(), commands.AddNoteInput{Message: "hello"}, s.h.guest)
	s.ErrorIs(err, commands.ErrDisputeNotFound)
}

func (s *DisputeCommandsTestSuite) TestMarkUnderReview() {
	d := s.open(s.h.guest)

	_, err := s.h.disputes.MarkUnderReview(s.ctx, d.ID(), s.h.guest)
	s.ErrorIs(err, commands.ErrAdminOnly)

	reviewed, err := s.h.disputes.MarkUnderReview(s.ctx, d.ID(), s.h.admin)
	s.Require().NoError(err)
	s.Equal(dispute.StatusPending, reviewed.Status())

	_, err = s.h.disputes.MarkUnderReview(s.ctx, d.ID(), s.h.admin)
	s.ErrorIs(err, commands.ErrConflict)

	_, err = s.h.disputes.AddNote(s.ctx, d.ID(), commands.AddNoteInput{Message: "Still waiting."}, s.h.guest)
	s.NoError(err)
}

func (s *DisputeCommandsTestSuite) TestResolveSplitsEscrow() {
	d := s.open(s.h.guest)
	s.h.recorder.reset()

	resolved, err := s.h.disputes.Resolve(s.ctx, d.ID(), commands.ResolveDisputeInput{
		Resolution:     "Partial cleaning fee refund.",
		HostShareRatio: decimal.RequireFromString("0.7"),
	}, s.h.admin)

	s.Require().NoError(err)
	s.Equal(dispute.StatusResolved, resolved.Status())
	s.True(resolved.Resolution().HostShareRatio.Equal(decimal.RequireFromString("0.7")))

	e := s.h.escrow(s.T(), s.booking)
	s.Equal(escrow.StatusSplit, e.Status())
	s.Require().NotNil(e.SplitResult())
	s.True(e.SplitResult().HostShare.Equal(dzd("11718")), "got %s", e.SplitResult().HostShare)
	s.True(e.SplitResult().GuestShare.Equal(dzd("5022")), "got %s", e.SplitResult().GuestShare)
	s.Equal(s.h.admin.ID, e.SplitResult().ResolvedBy)

	b := s.h.booking(s.T(), s.booking)
	s.Equal(booking.StatusCancelledByAdmin, b.Status())
	s.Equal(booking.PaymentPartiallyRefunded, b.PaymentStatus())
	s.Require().NotNil(b.Cancellation())
	s.Equal(booking.ActorAdmin, b.Cancellation().Role)

	s.Equal([]string{shared.NotifyDisputeResolved, shared.NotifyBookingCancelled}, s.h.recorder.typesFor(s.h.guest.ID))
	s.Equal([]string{shared.NotifyDisputeResolved}, s.h.recorder.typesFor(s.h.host.ID))
}

func (s *DisputeCommandsTestSuite) TestResolveDuringStayResumesIt() {
	s.h.clock.Set(s.h.booking(s.T(), s.booking).CheckInAt())
	n, err := s.h.sweeps.ActivateDue(s.ctx)
	s.Require().NoError(err)
	s.Require().Equal(1, n)
	d := s.open(s.h.guest)

	_, err = s.h.disputes.Resolve(s.ctx, d.ID(), commands.ResolveDisputeInput{
		Resolution:     "Broken heater, partial refund.",
		HostShareRatio: decimal.RequireFromString("0.7"),
	}, s.h.admin)

	s.Require().NoError(err)
	s.Equal(booking.StatusActive, s.h.booking(s.T(), s.booking).Status())
	s.Equal(escrow.StatusSplit, s.h.escrow(s.T(), s.booking).Status())
}

func (s *DisputeCommandsTestSuite) TestResolveWholeAmountToGuest() {
	d := s.open(s.h.host)

	_, err := s.h.disputes.Resolve(s.ctx, d.ID(), commands.ResolveDisputeInput{
		Resolution:     "Host no-show.",
		HostShareRatio: decimal.Zero,
	}, s.h.admin)

	s.Require().NoError(err)
	e := s.h.escrow(s.T(), s.booking)
	s.True(e.SplitResult().HostShare.IsZero())
	s.True(e.SplitResult().GuestShare.Equal(dzd("16740")), "got %s", e.SplitResult().GuestShare)
	b := s.h.booking(s.T(), s.booking)
	s.Equal(booking.PaymentRefunded, b.PaymentStatus())
	s.Equal(booking.StatusCancelledByAdmin, b.Status())

	s.h.clock.Set(b.CheckInAt())
	n, err := s.h.sweeps.ActivateDue(s.ctx)
	s.Require().NoError(err)
	s.Zero(n)
	s.Equal(booking.StatusCancelledByAdmin, s.h.booking(s.T(), s.booking).Status())
}

func (s *DisputeCommandsTestSuite) TestResolveRefusals() {
	d := s.open(s.h.guest)

	_, err := s.h.disputes.Resolve(s.ctx, d.ID(), commands.ResolveDisputeInput{
		Resolution:     "Nope.",
		HostShareRatio: decimal.RequireFromString("0.5"),
	}, s.h.host)
	s.ErrorIs(err, commands.ErrAdminOnly)

	_, err = s.h.disputes.Resolve(s.ctx, d.ID(), commands.ResolveDisputeInput{
		Resolution:     "Too generous.",
		HostShareRatio: decimal.RequireFromString("1.2"),
	}, s.h.admin)
	s.ErrorIs(err, commands.ErrValidation)

	_, err = s.h.disputes.Resolve(s.ctx, d.ID(), commands.ResolveDisputeInput{
		HostShareRatio: decimal.RequireFromString("0.5"),
	}, s.h.admin)
	s.ErrorIs(err, commands.ErrValidation)

	s.Equal(escrow.StatusFrozen, s.h.escrow(s.T(), s.booking).Status())
}

func (s *DisputeCommandsTestSuite) TestCloseUnfreezes() {
	d := s.open(s.h.guest)

	closed, err := s.h.disputes.Close(s.ctx, d.ID(), "Settled between the parties.", s.h.admin)

	s.Require().NoError(err)
	s.Equal(dispute.StatusClosed, closed.Status())
	s.Equal(escrow.StatusHeld, s.h.escrow(s.T(), s.booking).Status())
	s.Equal(booking.StatusConfirmed, s.h.booking(s.T(), s.booking).Status())
	s.Equal(
		[]escrow.Action{escrow.ActionHold, escrow.ActionFreeze, escrow.ActionUnfreeze},
		s.h.escrowActions(s.T(), s.booking),
	)

	_, err = s.h.disputes.AddNote(s.ctx, d.ID(), commands.AddNoteInput{Message: "One more thing."}, s.h.guest)
	s.ErrorIs(err, commands.ErrDisputeNotOpen)

	_, err = s.h.disputes.Close(s.ctx, d.ID(), "again", s.h.admin)
	s.ErrorIs(err, commands.ErrDisputeNotOpen)
}

func TestDisputeCommandsTestSuite(t *testing.T) {
	suite.Run(t, new(DisputeCommandsTestSuite))
}
