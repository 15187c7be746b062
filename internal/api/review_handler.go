package api

import (
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/phrazzld/vortex-api/internal/service/review"
)

// ReviewHandler handles review session API requests.
type ReviewHandler struct {
	reviewService review.ReviewService
	validator     *validator.Validate
}

// NewReviewHandler creates a new ReviewHandler.
func NewReviewHandler(reviewService review.ReviewService) *ReviewHandler {
	return &ReviewHandler{
		reviewService: reviewService,
		validator:     validator.New(),
	}
}

// Queue handles GET /api/reviews/queue.
func (h *ReviewHandler) Queue(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	due, err := h.reviewService.Queue(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	RespondWithJSON(w, r, http.StatusOK, due)
}

// Start handles POST /api/reviews/session.
func (h *ReviewHandler) Start(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req StartSessionRequest
	if err := DecodeJSON(r, &req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	session, err := h.reviewService.Start(r.Context(), userID, req.Mode)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	RespondWithJSON(w, r, http.StatusCreated, session)
}

// Active handles GET /api/reviews/session.
func (h *ReviewHandler) Active(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	session, err := h.reviewService.Active(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	RespondWithJSON(w, r, http.StatusOK, session)
}

// Answer handles POST /api/reviews/session/answer.
func (h *ReviewHandler) Answer(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req AnswerRequest
	if err := DecodeJSON(r, &req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	session, err := h.reviewService.SubmitAnswer(r.Context(), userID, review.ReviewAnswer{
		KnewIt:       req.KnewIt,
		SelectedTerm: req.SelectedTerm,
	})
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	RespondWithJSON(w, r, http.StatusOK, session)
}

// Cancel handles POST /api/reviews/session/cancel.
func (h *ReviewHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	session, err := h.reviewService.Cancel(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	RespondWithJSON(w, r, http.StatusOK, session)
}
