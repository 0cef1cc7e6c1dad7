package repositories

import "mindcare/internal/models"

// JournalRepository defines the interface for journal data access. Every
// owner-scoped method matches on both the journal ID and the owning user ID,
// so a mismatched owner behaves exactly like a missing row.
type JournalRepository interface {
	Create(journal *models.Journal) error
	GetAllByUser(userID uint) ([]models.Journal, error)
	GetByID(id, userID uint) (*models.Journal, error)
	Update(id, userID uint, title, content, mood string) error
	Delete(id, userID uint) error
	TogglePin(id, userID uint) error

	// Moderation access, unscoped by owner.
	GetAll() ([]models.Journal, error)
	DeleteByID(id uint) error
}
