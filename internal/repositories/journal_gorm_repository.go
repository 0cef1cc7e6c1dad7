package repositories

import (
	"fmt"
	"mindcare/internal/models"

	"gorm.io/gorm"
)

// GORMJournalRepository is a GORM implementation of JournalRepository.
type GORMJournalRepository struct {
	db *gorm.DB
}

// NewGORMJournalRepository creates a new instance of GORMJournalRepository.
func NewGORMJournalRepository(db *gorm.DB) *GORMJournalRepository {
	return &GORMJournalRepository{
		db: db,
	}
}

// Create creates a new journal entry in the database.
func (r *GORMJournalRepository) Create(journal *models.Journal) error {
	if err := r.db.Create(journal).Error; err != nil {
		return fmt.Errorf("failed to create journal: %w", err)
	}
	return nil
}

// GetAllByUser retrieves all journals owned by a user, pinned entries first,
// newest first within each pin group.
func (r *GORMJournalRepository) GetAllByUser(userID uint) ([]models.Journal, error) {
	var journals []models.Journal
	if err := r.db.Where("user_id = ?", userID).
		Order("pinned DESC, created_at DESC").
		Find(&journals).Error; err != nil {
		return nil, fmt.Errorf("failed to get journals for user %d: %w", userID, err)
	}
	return journals, nil
}

// GetByID retrieves a single journal by its ID, scoped to the owner.
func (r *GORMJournalRepository) GetByID(id, userID uint) (*models.Journal, error) {
	var journal models.Journal
	if err := r.db.First(&journal, "id = ? AND user_id = ?", id, userID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("journal with ID %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get journal %d: %w", id, err)
	}
	return &journal, nil
}

// Update overwrites title, content and mood in one owner-scoped statement.
// A zero rows-affected result means the row does not exist for this owner.
func (r *GORMJournalRepository) Update(id, userID uint, title, content, mood string) error {
	res := r.db.Model(&models.Journal{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(map[string]interface{}{"title": title, "content": content, "mood": mood})
	if res.Error != nil {
		return fmt.Errorf("failed to update journal %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("journal with ID %d: %w", id, ErrNotFound)
	}
	return nil
}

// Delete permanently removes a journal, scoped to the owner.
func (r *GORMJournalRepository) Delete(id, userID uint) error {
	res := r.db.Delete(&models.Journal{}, "id = ? AND user_id = ?", id, userID)
	if res.Error != nil {
		return fmt.Errorf("failed to delete journal %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("journal with ID %d: %w", id, ErrNotFound)
	}
	return nil
}

// TogglePin flips the pinned flag in place. The flip happens inside the
// statement itself rather than as a read-modify-write in Go, so two
// concurrent toggles cannot lose an update.
func (r *GORMJournalRepository) TogglePin(id, userID uint) error {
	res := r.db.Model(&models.Journal{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("pinned", gorm.Expr("NOT pinned"))
	if res.Error != nil {
		return fmt.Errorf("failed to toggle pin on journal %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("journal with ID %d: %w", id, ErrNotFound)
	}
	return nil
}

// GetAll retrieves every journal regardless of owner, for moderation.
func (r *GORMJournalRepository) GetAll() ([]models.Journal, error) {
	var journals []models.Journal
	if err := r.db.Order("created_at DESC").Find(&journals).Error; err != nil {
		return nil, fmt.Errorf("failed to get all journals: %w", err)
	}
	return journals, nil
}

// DeleteByID permanently removes a journal regardless of owner, for moderation.
func (r *GORMJournalRepository) DeleteByID(id uint) error {
	res := r.db.Delete(&models.Journal{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete journal %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("journal with ID %d: %w", id, ErrNotFound)
	}
	return nil
}
