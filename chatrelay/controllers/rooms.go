package controllers

import (
	"context"

	"chatrelay/chatrelay/sources/psql/models"
)

// RoomStore is the room DAO surface the room controller needs.
type RoomStore interface {
	GetAllRooms(ctx context.Context) ([]models.Room, error)
	GetRoomByID(ctx context.Context, id int) (*models.Room, error)
	CreateRoom(ctx context.Context, name string) (*models.Room, error)
}

type RoomController struct {
	rooms RoomStore
}

func NewRoomController(rooms RoomStore) *RoomController {
	return &RoomController{rooms: rooms}
}

func (c *RoomController) ListRooms(ctx context.Context) ([]models.Room, error) {
	return c.rooms.GetAllRooms(ctx)
}

func (c *RoomController) CreateRoom(ctx context.Context, name string) (*models.Room, error) {
	return c.rooms.CreateRoom(ctx, name)
}
