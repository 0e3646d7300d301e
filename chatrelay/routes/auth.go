package routes

import (
	"encoding/json"
	"net/http"

	"chatrelay/chatrelay/controllers"
	"chatrelay/chatrelay/utils/types"

	"github.com/go-chi/chi/v5"
)

func AuthRoutes(ctrl *controllers.AuthController) chi.Router {
	r := chi.NewRouter()

	// POST / : get-or-create a user by display name
	r.Post("/", handleJSON(func(r *http.Request) (any, int, error) {
		var req types.LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return nil, http.StatusBadRequest, err
		}
		if err := validate.Struct(req); err != nil {
			return nil, http.StatusBadRequest, err
		}
		user, err := ctrl.Login(r.Context(), req.Username)
		if err != nil {
			return nil, statusFor(err), err
		}
		return user, http.StatusOK, nil
	}))

	return r
}
