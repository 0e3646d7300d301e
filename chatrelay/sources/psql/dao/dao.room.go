package dao

import (
	"context"
	"fmt"
	"strings"

	"chatrelay/chatrelay/sources/psql/models"

	"gorm.io/gorm"
)

type RoomDAO struct {
	DB *gorm.DB
}

func NewRoomDAO(db *gorm.DB) *RoomDAO {
	return &RoomDAO{DB: db}
}

func (dao *RoomDAO) GetAllRooms(ctx context.Context) ([]models.Room, error) {
	rooms := make([]models.Room, 0)
	err := dao.DB.WithContext(ctx).Find(&rooms).Error
	if err != nil {
		return nil, err
	}
	return rooms, nil
}

func (dao *RoomDAO) GetRoomByID(ctx context.Context, id int) (*models.Room, error) {
	var room models.Room
	err := dao.DB.WithContext(ctx).First(&room, id).Error
	if err == gorm.ErrRecordNotFound {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &room, nil
}

func (dao *RoomDAO) CreateRoom(ctx context.Context, name string) (*models.Room, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: room name is required", ErrValidation)
	}
	room := models.Room{Name: name}
	err := dao.DB.WithContext(ctx).Create(&room).Error
	if err != nil {
		return nil, err
	}
	return &room, nil
}
