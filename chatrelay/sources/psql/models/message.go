package models

import (
	"time"
)

// Message rows are append-only: never updated or deleted. Room ordering
// is defined by created_at with id as the tie-break, both store-assigned.
type Message struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	RoomID    int       `json:"room_id" gorm:"not null;index"`
	Room      Room      `json:"-" gorm:"foreignKey:RoomID;references:ID"`
	UserID    int       `json:"user_id" gorm:"not null"`
	User      User      `json:"-" gorm:"foreignKey:UserID;references:ID"`
	Content   string    `json:"content" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}
