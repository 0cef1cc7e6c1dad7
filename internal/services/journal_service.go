package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"mindcare/internal/models"
	"mindcare/internal/repositories"
	"mindcare/pkg/rabbitmq"

	"github.com/google/uuid"
)

// JournalService handles business logic for journal entries. Every operation
// except the Admin* pair is scoped to the owning user.
type JournalService struct {
	journalRepo repositories.JournalRepository
	mqClient    *rabbitmq.Client
}

// NewJournalService creates a new JournalService.
func NewJournalService(journalRepo repositories.JournalRepository, mqClient *rabbitmq.Client) *JournalService {
	return &JournalService{
		journalRepo: journalRepo,
		mqClient:    mqClient,
	}
}

// Create inserts a new unpinned journal entry owned by the given user.
func (s *JournalService) Create(userID uint, title, content, mood string) (*models.Journal, error) {
	journal := &models.Journal{
		UserID:  userID,
		Title:   title,
		Content: content,
		Mood:    mood,
	}
	if err := s.journalRepo.Create(journal); err != nil {
		return nil, fmt.Errorf("failed to create journal: %w", err)
	}
	return journal, nil
}

// ListAll returns the caller's journals, pinned first, newest first within
// each pin group.
func (s *JournalService) ListAll(userID uint) ([]models.Journal, error) {
	return s.journalRepo.GetAllByUser(userID)
}

// GetByID returns the journal if it exists and belongs to the caller.
func (s *JournalService) GetByID(id, userID uint) (*models.Journal, error) {
	journal, err := s.journalRepo.GetByID(id, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrJournalNotFound
		}
		return nil, fmt.Errorf("failed to get journal: %w", err)
	}
	return journal, nil
}

// Update overwrites title, content and mood on the caller's journal.
func (s *JournalService) Update(id, userID uint, title, content, mood string) error {
	if err := s.journalRepo.Update(id, userID, title, content, mood); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrJournalNotFound
		}
		return fmt.Errorf("failed to update journal: %w", err)
	}
	return nil
}

// Delete permanently removes the caller's journal.
func (s *JournalService) Delete(id, userID uint) error {
	if err := s.journalRepo.Delete(id, userID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrJournalNotFound
		}
		return fmt.Errorf("failed to delete journal: %w", err)
	}
	return nil
}

// TogglePin flips the pinned flag on the caller's journal. Applying it twice
// restores the original state.
func (s *JournalService) TogglePin(id, userID uint) error {
	if err := s.journalRepo.TogglePin(id, userID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrJournalNotFound
		}
		return fmt.Errorf("failed to toggle pin: %w", err)
	}
	return nil
}

// AdminListAll returns every journal regardless of owner.
func (s *JournalService) AdminListAll() ([]models.Journal, error) {
	return s.journalRepo.GetAll()
}

// AdminDelete removes a journal regardless of owner and emits a moderation
// event.
func (s *JournalService) AdminDelete(id uint) error {
	if err := s.journalRepo.DeleteByID(id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrJournalNotFound
		}
		return fmt.Errorf("failed to delete journal: %w", err)
	}
	s.publishEvent("journal.moderated", map[string]interface{}{"journalID": id})
	return nil
}

// publishEvent emits a domain event to the message broker. Publishing is
// best-effort: failures are logged and never surface to the caller.
func (s *JournalService) publishEvent(routingKey string, payload map[string]interface{}) {
	if s.mqClient == nil {
		return
	}
	payload["eventID"] = uuid.New().String()
	body, err := json.Marshal(payload)
	if err != nil {
		log.Printf("Failed to marshal %s event: %v", routingKey, err)
		return
	}
	if err := s.mqClient.Publish("mindcare", routingKey, body); err != nil {
		log.Printf("Warning: Failed to publish %s event: %v", routingKey, err)
	}
}
