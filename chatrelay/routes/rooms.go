package routes

import (
	"encoding/json"
	"net/http"
	"strconv"

	"chatrelay/chatrelay/controllers"
	"chatrelay/chatrelay/utils/types"

	"github.com/go-chi/chi/v5"
)

func RoomRoutes(roomCtrl *controllers.RoomController, msgCtrl *controllers.MessageController) chi.Router {
	r := chi.NewRouter()

	// GET / : room catalog
	r.Get("/", handleJSON(func(r *http.Request) (any, int, error) {
		rooms, err := roomCtrl.ListRooms(r.Context())
		if err != nil {
			return nil, statusFor(err), err
		}
		return rooms, http.StatusOK, nil
	}))

	// POST / : create room
	r.Post("/", handleJSON(func(r *http.Request) (any, int, error) {
		var req types.CreateRoomRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return nil, http.StatusBadRequest, err
		}
		if err := validate.Struct(req); err != nil {
			return nil, http.StatusBadRequest, err
		}
		room, err := roomCtrl.CreateRoom(r.Context(), req.Name)
		if err != nil {
			return nil, statusFor(err), err
		}
		return room, http.StatusCreated, nil
	}))

	// GET /{room_id}/messages : newest first, capped; callers reverse
	// for display
	r.Get("/{room_id}/messages", handleJSON(func(r *http.Request) (any, int, error) {
		roomID, err := strconv.Atoi(chi.URLParam(r, "room_id"))
		if err != nil {
			return nil, http.StatusBadRequest, err
		}
		msgs, err := msgCtrl.ListRoomMessages(r.Context(), roomID)
		if err != nil {
			return nil, statusFor(err), err
		}
		return msgs, http.StatusOK, nil
	}))

	// POST /{room_id}/messages : direct append, no AI reply
	r.Post("/{room_id}/messages", handleJSON(func(r *http.Request) (any, int, error) {
		roomID, err := strconv.Atoi(chi.URLParam(r, "room_id"))
		if err != nil {
			return nil, http.StatusBadRequest, err
		}
		var req types.PostMessageRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return nil, http.StatusBadRequest, err
		}
		if err := validate.Struct(req); err != nil {
			return nil, http.StatusBadRequest, err
		}
		msg, err := msgCtrl.PostMessage(r.Context(), roomID, req.UserID, req.Content)
		if err != nil {
			return nil, statusFor(err), err
		}
		return msg, http.StatusCreated, nil
	}))

	return r
}
