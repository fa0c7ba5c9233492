//go:build unit

package dispute_test

import (
	"strings"
	"testing"
	"time"

	"rental-escrow/internal/domain/dispute"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

func openDispute(t *testing.T) *dispute.Dispute {
	t.Helper()
	d, err := dispute.NewDispute(uuid.New(), uuid.New(), dispute.ReporterGuest, dispute.ReasonCleanliness, "  The flat was dirty  ", "", now)
	require.NoError(t, err)
	return d
}

func TestNewDispute(t *testing.T) {
	d := openDispute(t)
	assert.Equal(t, dispute.StatusOpen, d.Status())
	assert.Equal(t, dispute.PriorityMedium, d.Priority())
	assert.Equal(t, "The flat was dirty", d.Description())

	cases := []struct {
		name        string
		role        dispute.ReporterRole
		reason      dispute.Reason
		description string
		priority    dispute.Priority
		errIs       error
	}{
		{name: "unknown reason", role: dispute.ReporterHost, reason: "fraud", description: "x", errIs: dispute.ErrInvalidReason},
		{name: "unknown priority", role: dispute.ReporterHost, reason: dispute.ReasonDamage, description: "x", priority: "critical", errIs: dispute.ErrInvalidPriority},
		{name: "blank description", role: dispute.ReporterHost, reason: dispute.ReasonDamage, description: "   ", errIs: dispute.ErrDescriptionEmpty},
		{name: "description too long", role: dispute.ReporterHost, reason: dispute.ReasonDamage, description: strings.Repeat("a", dispute.MaxDescriptionLength+1), errIs: dispute.ErrDescriptionTooLong},
		{name: "unknown reporter role", role: "agency", reason: dispute.ReasonDamage, description: "x", errIs: dispute.ErrInvalidReporter},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := dispute.NewDispute(uuid.New(), uuid.New(), c.role, c.reason, c.description, c.priority, now)
			require.ErrorIs(t, err, c.errIs)
		})
	}
}

func TestDisputeThread(t *testing.T) {
	d := openDispute(t)
	author := uuid.New()

	root, err := d.AddNote(author, "Photos attached", nil, now)
	require.NoError(t, err)
	reply, err := d.AddNote(uuid.New(), "We cleaned before check-in", &root.ID, now.Add(time.Minute))
	require.NoError(t, err)
	require.NotNil(t, reply.ParentID)
	assert.Equal(t, root.ID, *reply.ParentID)

	missing := uuid.New()
	_, err = d.AddNote(author, "orphan", &missing, now)
	require.ErrorIs(t, err, dispute.ErrParentNoteNotFound)
	_, err = d.AddNote(author, " ", nil, now)
	require.ErrorIs(t, err, dispute.ErrNoteEmpty)

	ev, err := d.AddEvidence(author, "https://cdn.example.com/p/1.jpg", dispute.EvidenceImage, now)
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/p/1.jpg", ev.URL)
	_, err = d.AddEvidence(author, "ftp://example.com/1.jpg", dispute.EvidenceImage, now)
	require.ErrorIs(t, err, dispute.ErrInvalidEvidence)
	_, err = d.AddEvidence(author, "https://example.com/1.jpg", "audio", now)
	require.ErrorIs(t, err, dispute.ErrInvalidEvidence)

	assert.Len(t, d.Notes(), 2)
	assert.Len(t, d.Evidence(), 1)
}

func TestDisputeLifecycle(t *testing.T) {
	t.Run("review then resolve", func(t *testing.T) {
		d := openDispute(t)
		require.NoError(t, d.MarkUnderReview(now))
		assert.Equal(t, dispute.StatusPending, d.Status())
		assert.True(t, d.Status().IsOpen())
		require.ErrorIs(t, d.MarkUnderReview(now), dispute.ErrNotReviewable)

		admin := uuid.New()
		require.NoError(t, d.Resolve(admin, "Partial refund for cleaning", decimal.RequireFromString("0.7"), now))
		assert.Equal(t, dispute.StatusResolved, d.Status())
		require.NotNil(t, d.Resolution())
		assert.Equal(t, admin, d.Resolution().ResolvedBy)
		assert.True(t, d.Resolution().HostShareRatio.Equal(decimal.RequireFromString("0.7")))

		_, err := d.AddNote(admin, "late note", nil, now)
		require.ErrorIs(t, err, dispute.ErrNotOpen)
		require.ErrorIs(t, d.Close(admin, "", now), dispute.ErrNotOpen)
	})

	t.Run("resolve validates input", func(t *testing.T) {
		d := openDispute(t)
		require.ErrorIs(t, d.Resolve(uuid.New(), "", decimal.RequireFromString("0.5"), now), dispute.ErrResolutionRequired)
		require.ErrorIs(t, d.Resolve(uuid.New(), "ok", decimal.RequireFromString("1.2"), now), dispute.ErrInvalidRatio)
		require.ErrorIs(t, d.Resolve(uuid.New(), "ok", decimal.RequireFromString("-0.1"), now), dispute.ErrInvalidRatio)
		assert.Equal(t, dispute.StatusOpen, d.Status())
	})

	t.Run("close without fund action", func(t *testing.T) {
		d := openDispute(t)
		require.NoError(t, d.Close(uuid.New(), "resolved between parties", now))
		assert.Equal(t, dispute.StatusClosed, d.Status())
		assert.Nil(t, d.Resolution().HostShareRatio)
	})
}
