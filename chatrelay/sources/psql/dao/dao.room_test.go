package dao

import (
	"context"
	"errors"
	"testing"
)

func TestCreateRoomAndList(t *testing.T) {
	dao := NewRoomDAO(setupTestDB(t))
	ctx := context.Background()

	room, err := dao.CreateRoom(ctx, "general")
	if err != nil {
		t.Fatalf("CreateRoom err: %v", err)
	}
	if room.ID == 0 {
		t.Fatal("no id assigned")
	}
	if room.Name != "general" {
		t.Errorf("name = %q, want general", room.Name)
	}

	rooms, err := dao.GetAllRooms(ctx)
	if err != nil {
		t.Fatalf("GetAllRooms err: %v", err)
	}
	found := false
	for _, r := range rooms {
		if r.ID == room.ID && r.Name == "general" {
			found = true
		}
	}
	if !found {
		t.Errorf("created room missing from list: %+v", rooms)
	}
}

func TestCreateRoomRejectsEmptyName(t *testing.T) {
	dao := NewRoomDAO(setupTestDB(t))

	_, err := dao.CreateRoom(context.Background(), "")
	if !errors.Is(err, ErrValidation) {
		t.Errorf("got %v, want ErrValidation", err)
	}

	rooms, err := dao.GetAllRooms(context.Background())
	if err != nil {
		t.Fatalf("GetAllRooms err: %v", err)
	}
	if len(rooms) != 0 {
		t.Errorf("rejected create still wrote %d rows", len(rooms))
	}
}

func TestGetRoomByIDNotFound(t *testing.T) {
	dao := NewRoomDAO(setupTestDB(t))

	_, err := dao.GetRoomByID(context.Background(), 12345)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}
