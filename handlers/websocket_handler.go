package handlers

import (
	"log/slog"
	"net/http"

	"github.com/garry1963/golf-society-manager-sub000/leaderboard"
	"github.com/garry1963/golf-society-manager-sub000/services"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// TODO: restrict Origin once the frontend domain is settled.
	CheckOrigin: func(r *http.Request) bool { return true },
}

type WebSocketHandler struct {
	hub               *leaderboard.Hub
	tournamentService services.TournamentService
}

func NewWebSocketHandler(hub *leaderboard.Hub, tournamentService services.TournamentService) *WebSocketHandler {
	return &WebSocketHandler{hub: hub, tournamentService: tournamentService}
}

// ServeWs handles GET /ws/tournaments/{tournamentID}: it upgrades the
// connection and parks the client in that tournament's room.
func (h *WebSocketHandler) ServeWs(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if _, err := h.tournamentService.GetByID(r.Context(), id); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Error("failed to upgrade websocket connection",
			slog.Int("tournament_id", id),
			slog.String("error", err.Error()),
		)
		return
	}

	client := leaderboard.NewClient(h.hub, conn, leaderboard.RoomName(id))
	h.hub.Register(client)

	go client.WritePump()
	go client.ReadPump()
}
