package repositories

import "mindcare/internal/models"

// UserRepository defines the interface for user data access.
type UserRepository interface {
	Create(user *models.User) error
	GetByEmail(email string) (*models.User, error)
	GetByID(id uint) (*models.User, error)
	GetAll() ([]models.User, error)
	// MarkVerified sets is_verified and clears the stored OTP in one statement.
	MarkVerified(email string) error
	SetBanned(id uint, banned bool) error
}
