package routes

import (
	"context"
	"encoding/json"
	"net/http"

	"chatrelay/chatrelay/controllers"
	"chatrelay/chatrelay/realtime"
	"chatrelay/chatrelay/utils/logging"
	"chatrelay/chatrelay/utils/types"

	"github.com/coder/websocket"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func WSRoutes(hub *realtime.Hub, relayCtrl *controllers.RelayController) chi.Router {
	r := chi.NewRouter()

	r.HandleFunc("/", func(w http.ResponseWriter, req *http.Request) {
		conn, err := websocket.Accept(w, req, &websocket.AcceptOptions{InsecureSkipVerify: true})
		if err != nil {
			return
		}

		client := realtime.NewClient(conn)
		hub.Register(client)
		// Disconnect runs however the connection ends, so membership
		// never leaks a dead connection.
		defer hub.Disconnect(client)

		logging.AppLogger.Info("websocket connected", zap.String("client_id", client.ID.String()))
		defer logging.AppLogger.Info("websocket closed", zap.String("client_id", client.ID.String()))

		go client.WritePump(req.Context(), logging.AppLogger)

		client.ReadLoop(req.Context(), logging.AppLogger, func(evt types.InboundEvent) {
			switch evt.Type {
			case types.EventJoinRoom:
				var join types.JoinRoomEvent
				if err := json.Unmarshal(evt.Data, &join); err != nil || join.RoomID == 0 {
					return
				}
				hub.Join(client, join.RoomID)

			case types.EventLeaveRoom:
				var leave types.JoinRoomEvent
				if err := json.Unmarshal(evt.Data, &leave); err != nil || leave.RoomID == 0 {
					return
				}
				hub.Leave(client, leave.RoomID)

			case types.EventChatMessage:
				var msg types.ChatMessageEvent
				if err := json.Unmarshal(evt.Data, &msg); err != nil {
					return
				}
				// Each event is its own task, detached from the
				// connection: the relay finishes even if the sender
				// drops mid-flight.
				go relayCtrl.HandleChatMessage(context.Background(), msg)
			}
		})
	})

	return r
}
