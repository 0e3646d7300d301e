package types

type CreateRoomRequest struct {
	Name string `json:"name" validate:"required"`
}
