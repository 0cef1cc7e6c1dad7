package models

import "time"

// Journal represents a private journal entry owned by a single user.
// Deletion is permanent; there is no soft-delete column.
type Journal struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"index;not null"`
	User      *User     `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Title     string    `json:"title" gorm:"type:varchar(255)" validate:"required"`
	Content   string    `json:"content" gorm:"type:text" validate:"required"`
	Mood      string    `json:"mood" gorm:"type:text"`
	Pinned    bool      `json:"pinned"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
