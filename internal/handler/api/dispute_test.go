//go:build unit

package api_test

import (
	"net/http"
	"testing"
	"time"

	"rental-escrow/internal/domain/dispute"
	"rental-escrow/internal/domain/user"
	"rental-escrow/internal/handler/api"
	"rental-escrow/internal/usecase/commands"
	"rental-escrow/internal/usecase/queries"
	"rental-escrow/internal/usecase/shared"
	"rental-escrow/tests/common/httptest"
	"rental-escrow/tests/common/testutil"
	commandsmock "rental-escrow/tests/mock/commands"
	queriesmock "rental-escrow/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type DisputeHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockDisputeCommands
	mockQueries  *queriesmock.MockDisputeQueries
	actor        shared.Actor
	dispute      *dispute.Dispute
}

func (s *DisputeHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockDisputeCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockDisputeQueries(s.mockCtrl)
	h := api.NewDisputeHandler(s.mockCommands, s.mockQueries)

	s.actor = shared.Actor{ID: uuid.New(), Role: user.RoleAdmin}
	auth := stubAuth(s.actor)

	d, err := dispute.NewDispute(uuid.New(), uuid.New(), dispute.ReporterGuest, dispute.ReasonCleanliness,
		"The flat was dirty", dispute.PriorityHigh, time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC))
	s.Require().NoError(err)
	s.dispute = d

	s.router.POST("/bookings/:id/disputes", auth, h.Open)
	s.router.GET("/bookings/:id/disputes", auth, h.ListByBooking)
	s.router.GET("/disputes/:id", auth, h.Get)
	s.router.POST("/disputes/:id/notes", auth, h.AddNote)
	s.router.POST("/disputes/:id/evidence", auth, h.AddEvidence)
	s.router.POST("/admin/disputes/:id/review", auth, h.MarkUnderReview)
	s.router.POST("/admin/disputes/:id/resolve", auth, h.Resolve)
	s.router.POST("/admin/disputes/:id/close", auth, h.Close)
}

func (s *DisputeHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestDisputeHandlerSuite(t *testing.T) {
	suite.Run(t, new(DisputeHandlerTestSuite))
}

func (s *DisputeHandlerTestSuite) TestOpen() {
	bookingID := s.dispute.BookingID()
	path := "/bookings/" + bookingID.String() + "/disputes"
	reqBody := map[string]any{
		"reason":      "cleanliness",
		"description": "The flat was dirty",
		"priority":    "high",
	}

	s.Run("success: 201 with the dispute view", func() {
		s.mockCommands.EXPECT().
			Open(gomock.Any(), bookingID, commands.OpenDisputeInput{Reason: "cleanliness", Description: "The flat was dirty", Priority: "high"}, s.actor).
			Return(s.dispute, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, path, reqBody, "token")

		var body queries.DisputeView
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &body)
		s.Equal(s.dispute.ID(), body.ID)
		s.Equal("open", body.Status)
		s.Equal("high", body.Priority)
	})

	s.Run("error: 400 on validation errors", func() {
		for name, mutate := range map[string]func(map[string]any){
			"missing reason":      testutil.Field("reason", nil),
			"missing description": testutil.Field("description", nil),
			"unknown priority":    testutil.Field("priority", "whenever"),
		} {
			s.Run(name, func() {
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, path, testutil.DtoMap(s.T(), reqBody, mutate), "token")
				httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
			})
		}
	})

	s.Run("error: 409 when a dispute is already open", func() {
		s.mockCommands.EXPECT().Open(gomock.Any(), bookingID, gomock.Any(), s.actor).Return(nil, commands.ErrDisputeAlreadyOpen)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, path, reqBody, "token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "already has an open dispute")
	})
}

func (s *DisputeHandlerTestSuite) TestListAndGet() {
	s.Run("list: empty array", func() {
		bookingID := uuid.New()
		s.mockQueries.EXPECT().ListByBooking(gomock.Any(), bookingID, s.actor).Return(nil, nil)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings/"+bookingID.String()+"/disputes", nil, "token")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
		s.JSONEq(`[]`, rec.Body.String())
	})

	s.Run("get: 404", func() {
		id := uuid.New()
		s.mockQueries.EXPECT().GetByID(gomock.Any(), id, s.actor).Return(nil, commands.ErrDisputeNotFound)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/disputes/"+id.String(), nil, "token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "dispute not found")
	})
}

func (s *DisputeHandlerTestSuite) TestAddNoteAndEvidence() {
	id := s.dispute.ID()

	s.Run("note: 201", func() {
		note, err := s.dispute.AddNote(s.actor.ID, "Photos attached", nil, time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC))
		s.Require().NoError(err)
		s.mockCommands.EXPECT().
			AddNote(gomock.Any(), id, commands.AddNoteInput{Message: "Photos attached"}, s.actor).
			Return(&note, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/disputes/"+id.String()+"/notes",
			map[string]any{"message": "Photos attached"}, "token")

		var body queries.NoteView
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &body)
		s.Equal("Photos attached", body.Message)
	})

	s.Run("evidence: 400 on a non url", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/disputes/"+id.String()+"/evidence",
			map[string]any{"url": "not a url", "type": "image"}, "token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
	})

	s.Run("evidence: 409 once the dispute is closed", func() {
		s.mockCommands.EXPECT().AddEvidence(gomock.Any(), id, commands.AddEvidenceInput{URL: "https://cdn.example.com/a.jpg", Type: "image"}, s.actor).
			Return(nil, commands.ErrDisputeNotOpen)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/disputes/"+id.String()+"/evidence",
			map[string]any{"url": "https://cdn.example.com/a.jpg", "type": "image"}, "token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "no longer open")
	})
}

func (s *DisputeHandlerTestSuite) TestResolve() {
	id := s.dispute.ID()
	path := "/admin/disputes/" + id.String() + "/resolve"

	s.Run("success: ratio parsed as an exact decimal", func() {
		s.mockCommands.EXPECT().
			Resolve(gomock.Any(), id, gomock.Any(), s.actor).
			DoAndReturn(func(_ any, _ uuid.UUID, in commands.ResolveDisputeInput, _ shared.Actor) (*dispute.Dispute, error) {
				s.True(in.HostShareRatio.Equal(decimal.RequireFromString("0.7")))
				s.Equal("Partial refund", in.Resolution)
				return s.dispute, nil
			})

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, path,
			map[string]any{"resolution": "Partial refund", "host_share_ratio": "0.7"}, "token")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("error: 400 on a non numeric ratio", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, path,
			map[string]any{"resolution": "Partial refund", "host_share_ratio": "seventy"}, "token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid host_share_ratio")
	})

	s.Run("error: 422 when the split does not balance", func() {
		s.mockCommands.EXPECT().Resolve(gomock.Any(), id, gomock.Any(), s.actor).
			Return(nil, commands.ErrIntegrity)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, path,
			map[string]any{"resolution": "Partial refund", "host_share_ratio": "0.7"}, "token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnprocessableEntity, "")
	})
}

func (s *DisputeHandlerTestSuite) TestReviewAndClose() {
	id := s.dispute.ID()

	s.Run("review: 409 when not open", func() {
		s.mockCommands.EXPECT().MarkUnderReview(gomock.Any(), id, s.actor).Return(nil, commands.ErrDisputeNotOpen)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/admin/disputes/"+id.String()+"/review", nil, "token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "")
	})

	s.Run("close: requires a resolution text", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/admin/disputes/"+id.String()+"/close", map[string]any{}, "token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
	})

	s.Run("close: success", func() {
		s.mockCommands.EXPECT().Close(gomock.Any(), id, "Resolved with the host directly", s.actor).Return(s.dispute, nil)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/admin/disputes/"+id.String()+"/close",
			map[string]any{"resolution": "Resolved with the host directly"}, "token")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})
}
