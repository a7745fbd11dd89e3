package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/vorapat/event-registry-api/internal/model"
	"github.com/vorapat/event-registry-api/internal/repository"
	"github.com/vorapat/event-registry-api/internal/usecase"
	"github.com/vorapat/event-registry-api/pkg/httpx"
)

// AttendeeHandler serves the admin attendee endpoints.
type AttendeeHandler struct {
	attendeeUsecase usecase.AttendeeUsecase
	logger          *zerolog.Logger
}

func NewAttendeeHandler(attendeeUsecase usecase.AttendeeUsecase, logger *zerolog.Logger) *AttendeeHandler {
	return &AttendeeHandler{
		attendeeUsecase: attendeeUsecase,
		logger:          logger,
	}
}

// ListAttendees handles GET /api/attendees with an optional isApproved filter.
func (h *AttendeeHandler) ListAttendees(w http.ResponseWriter, r *http.Request) {
	params := repository.FilterAttendeesParams{}
	if raw := r.URL.Query().Get("isApproved"); raw != "" {
		approved, err := strconv.ParseBool(raw)
		if err != nil {
			httpx.Error(w, http.StatusBadRequest, "isApproved must be a boolean")
			return
		}
		params.Approved = &approved
	}

	h.listAttendees(w, r, params)
}

// ListPendingAttendees handles GET /api/attendees/pending.
func (h *AttendeeHandler) ListPendingAttendees(w http.ResponseWriter, r *http.Request) {
	h.listAttendees(w, r, repository.FilterAttendeesParams{Pending: true})
}

func (h *AttendeeHandler) listAttendees(
	w http.ResponseWriter,
	r *http.Request,
	params repository.FilterAttendeesParams,
) {
	attendees, err := h.attendeeUsecase.ListAttendees(r.Context(), params)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list attendees")
		httpx.Internal(w)
		return
	}

	if attendees == nil {
		attendees = []*model.AttendeeDetail{}
	}

	httpx.JSON(w, http.StatusOK, attendees)
}

// GetAttendee handles GET /api/attendees/{id}.
func (h *AttendeeHandler) GetAttendee(w http.ResponseWriter, r *http.Request) {
	detail, err := h.attendeeUsecase.GetAttendee(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeAttendeeError(w, err, "failed to get attendee")
		return
	}

	httpx.JSON(w, http.StatusOK, detail)
}

// ApproveAttendee handles POST /api/attendees/{id}/approve.
func (h *AttendeeHandler) ApproveAttendee(w http.ResponseWriter, r *http.Request) {
	h.setApproval(w, r, true)
}

// RejectAttendee handles POST /api/attendees/{id}/reject.
func (h *AttendeeHandler) RejectAttendee(w http.ResponseWriter, r *http.Request) {
	h.setApproval(w, r, false)
}

func (h *AttendeeHandler) setApproval(w http.ResponseWriter, r *http.Request, approved bool) {
	detail, err := h.attendeeUsecase.SetApproval(r.Context(), chi.URLParam(r, "id"), approved)
	if err != nil {
		h.writeAttendeeError(w, err, "failed to update attendee approval")
		return
	}

	httpx.JSON(w, http.StatusOK, detail)
}

// DeleteAttendee handles DELETE /api/attendees/{id}.
func (h *AttendeeHandler) DeleteAttendee(w http.ResponseWriter, r *http.Request) {
	if err := h.attendeeUsecase.DeleteAttendee(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.writeAttendeeError(w, err, "failed to delete attendee")
		return
	}

	httpx.NoContent(w)
}

func (h *AttendeeHandler) writeAttendeeError(w http.ResponseWriter, err error, logMsg string) {
	if errors.Is(err, usecase.ErrAttendeeNotFound) {
		httpx.Error(w, http.StatusNotFound, "attendee not found")
		return
	}

	h.logger.Error().Err(err).Msg(logMsg)
	httpx.Internal(w)
}
