package api

import (
	"net/http"
	"sejf-plikow/internal/websocket"

	"go.uber.org/zap"
)

// @Summary      Subscribe to change events
// @Description  Upgrades to a websocket that pushes the current user's change events as JSON. Browsers cannot set headers on websocket requests, so the token travels in the query string.
// @Tags         events
// @Param        token  query  string  true  "Bearer token"
// @Success      101
// @Failure      401  {object}  ProblemDetail
// @Router       /ws [get]
func (s *Server) ServeWsHandler(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		s.logger.Debug("websocket connection attempt without token", zap.String("remote_addr", r.RemoteAddr))
		respondProblem(w, http.StatusUnauthorized, "token query parameter required")
		return
	}

	user, err := s.accounts.Authenticate(r.Context(), token)
	if err != nil {
		s.logger.Debug("websocket connection attempt with invalid token", zap.Error(err))
		s.respondError(w, r, err)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	client := websocket.NewClient(s.wsHub, conn, user.ID)
	if !s.wsHub.Attach(client) {
		conn.Close()
		return
	}

	go client.ReadPump()
	go client.WritePump()
}
