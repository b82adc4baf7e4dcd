package models

import "time"

type Service struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:100;uniqueIndex;not null" json:"name"`

	CreatedAt time.Time `json:"created_at"`
}
