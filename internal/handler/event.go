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

// EventHandler serves read-only event endpoints.
type EventHandler struct {
	eventUsecase usecase.EventUsecase
	logger       *zerolog.Logger
}

func NewEventHandler(eventUsecase usecase.EventUsecase, logger *zerolog.Logger) *EventHandler {
	return &EventHandler{
		eventUsecase: eventUsecase,
		logger:       logger,
	}
}

// ListEvents handles GET /api/events with an optional active filter.
func (h *EventHandler) ListEvents(w http.ResponseWriter, r *http.Request) {
	params := repository.FilterEventsParams{}
	if raw := r.URL.Query().Get("active"); raw != "" {
		active, err := strconv.ParseBool(raw)
		if err != nil {
			httpx.Error(w, http.StatusBadRequest, "active must be a boolean")
			return
		}
		params.Active = &active
	}

	events, err := h.eventUsecase.ListEvents(r.Context(), params)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list events")
		httpx.Internal(w)
		return
	}

	if events == nil {
		events = []*model.Event{}
	}

	httpx.JSON(w, http.StatusOK, events)
}

// GetEvent handles GET /api/events/{id}.
func (h *EventHandler) GetEvent(w http.ResponseWriter, r *http.Request) {
	event, err := h.eventUsecase.GetEvent(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, usecase.ErrEventNotFound) {
			httpx.Error(w, http.StatusNotFound, "event not found")
			return
		}

		h.logger.Error().Err(err).Msg("failed to get event")
		httpx.Internal(w)
		return
	}

	httpx.JSON(w, http.StatusOK, event)
}
