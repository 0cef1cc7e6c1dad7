package models

import "time"

// User represents a registered account. Password holds a bcrypt hash and OTP
// is only populated between registration and a successful verification.
type User struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	Name       string    `json:"name" gorm:"type:varchar(100)" validate:"required,min=2,max=100"`
	Email      string    `json:"email" gorm:"uniqueIndex;type:varchar(255)" validate:"required,email"`
	Password   string    `json:"-" gorm:"type:varchar(255)" validate:"required,min=6"` // Never serialized
	OTP        *string   `json:"-" gorm:"column:otp;type:varchar(10)"`
	IsVerified bool      `json:"is_verified"`
	IsAdmin    bool      `json:"is_admin"`
	IsBanned   bool      `json:"is_banned"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// PublicUser is the outward projection of a User. Password and OTP never
// cross the service boundary.
type PublicUser struct {
	ID         uint   `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	IsVerified bool   `json:"is_verified"`
}

// Public returns the serializable projection of the user. Admin status is
// only reported on the admin surface, never here.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:         u.ID,
		Name:       u.Name,
		Email:      u.Email,
		IsVerified: u.IsVerified,
	}
}
