package api

import (
	"net/http"
	"strconv"
)

// @Summary      Get new events
// @Description  Returns up to 100 change events of the current user with an ID greater than `since`, oldest first. Clients poll this to catch up after a websocket disconnect.
// @Tags         events
// @Produce      json
// @Security     BearerAuth
// @Param        since  query     int  false  "The ID of the last event received. Omit or use 0 to get all events."
// @Success      200    {array}   models.Event
// @Failure      400    {object}  ProblemDetail
// @Failure      401    {object}  ProblemDetail
// @Failure      500    {object}  ProblemDetail
// @Router       /api/fs/events [get]
func (s *Server) GetEventsHandler(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	sinceStr := r.URL.Query().Get("since")
	if sinceStr == "" {
		sinceStr = "0"
	}

	sinceID, err := strconv.ParseInt(sinceStr, 10, 64)
	if err != nil || sinceID < 0 {
		respondProblem(w, http.StatusBadRequest, "invalid 'since' parameter, must be a non-negative number")
		return
	}

	events, err := s.store.GetEventsSince(r.Context(), user.ID, sinceID)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, events)
}
