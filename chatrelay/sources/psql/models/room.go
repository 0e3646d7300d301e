package models

type Room struct {
	ID   int    `json:"id" gorm:"primaryKey;autoIncrement"`
	Name string `json:"name" gorm:"type:varchar(255);not null"`
}

func (Room) TableName() string {
	return "chat_rooms"
}
