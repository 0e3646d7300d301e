package types

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
}
