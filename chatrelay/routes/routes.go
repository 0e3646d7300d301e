package routes

import (
	"encoding/json"
	"errors"
	"net/http"

	"chatrelay/chatrelay/sources/psql/dao"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// generic wrapper to reduce boilerplate
func handleJSON(handler func(r *http.Request) (any, int, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res, status, err := handler(r)
		if err != nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(status)
			json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(res)
	}
}

// statusFor maps store sentinels onto HTTP statuses.
func statusFor(err error) int {
	switch {
	case errors.Is(err, dao.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, dao.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
