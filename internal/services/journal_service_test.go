package services_test

import (
	"fmt"
	"testing"

	"mindcare/internal/models"
	"mindcare/internal/repositories"
	"mindcare/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockJournalRepository is a mock implementation of repositories.JournalRepository
type MockJournalRepository struct {
	mock.Mock
}

func (m *MockJournalRepository) Create(journal *models.Journal) error {
	args := m.Called(journal)
	return args.Error(0)
}

func (m *MockJournalRepository) GetAllByUser(userID uint) ([]models.Journal, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Journal), args.Error(1)
}

func (m *MockJournalRepository) GetByID(id, userID uint) (*models.Journal, error) {
	args := m.Called(id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Journal), args.Error(1)
}

func (m *MockJournalRepository) Update(id, userID uint, title, content, mood string) error {
	args := m.Called(id, userID, title, content, mood)
	return args.Error(0)
}

func (m *MockJournalRepository) Delete(id, userID uint) error {
	args := m.Called(id, userID)
	return args.Error(0)
}

func (m *MockJournalRepository) TogglePin(id, userID uint) error {
	args := m.Called(id, userID)
	return args.Error(0)
}

func (m *MockJournalRepository) GetAll() ([]models.Journal, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Journal), args.Error(1)
}

func (m *MockJournalRepository) DeleteByID(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

func journalNotFoundErr(id uint) error {
	return fmt.Errorf("journal with ID %d: %w", id, repositories.ErrNotFound)
}

func TestJournalService_Create(t *testing.T) {
	mockRepo := new(MockJournalRepository)
	journalService := services.NewJournalService(mockRepo, nil)

	mockRepo.On("Create", mock.AnythingOfType("*models.Journal")).Run(func(args mock.Arguments) {
		j := args.Get(0).(*models.Journal)
		j.ID = 1 // simulate assignment on insert
	}).Return(nil).Once()

	journal, err := journalService.Create(7, "T", "C", "Happy")
	assert.NoError(t, err)
	assert.Equal(t, uint(1), journal.ID)
	assert.Equal(t, uint(7), journal.UserID)
	assert.False(t, journal.Pinned)
	mockRepo.AssertExpectations(t)
}

func TestJournalService_GetByID(t *testing.T) {
	mockRepo := new(MockJournalRepository)
	journalService := services.NewJournalService(mockRepo, nil)

	journal := &models.Journal{ID: 1, UserID: 7, Title: "T", Content: "C"}
	mockRepo.On("GetByID", uint(1), uint(7)).Return(journal, nil).Once()

	got, err := journalService.GetByID(1, 7)
	assert.NoError(t, err)
	assert.Equal(t, journal, got)

	// Another caller's ID yields the same not-found as a missing row.
	mockRepo.On("GetByID", uint(1), uint(8)).Return(nil, journalNotFoundErr(1)).Once()
	_, err = journalService.GetByID(1, 8)
	assert.ErrorIs(t, err, services.ErrJournalNotFound)
	mockRepo.AssertExpectations(t)
}

func TestJournalService_Update(t *testing.T) {
	mockRepo := new(MockJournalRepository)
	journalService := services.NewJournalService(mockRepo, nil)

	mockRepo.On("Update", uint(1), uint(7), "T2", "C2", "Calm").Return(nil).Once()
	assert.NoError(t, journalService.Update(1, 7, "T2", "C2", "Calm"))

	mockRepo.On("Update", uint(2), uint(7), "T2", "C2", "Calm").Return(journalNotFoundErr(2)).Once()
	assert.ErrorIs(t, journalService.Update(2, 7, "T2", "C2", "Calm"), services.ErrJournalNotFound)
	mockRepo.AssertExpectations(t)
}

func TestJournalService_Delete(t *testing.T) {
	mockRepo := new(MockJournalRepository)
	journalService := services.NewJournalService(mockRepo, nil)

	mockRepo.On("Delete", uint(1), uint(7)).Return(nil).Once()
	assert.NoError(t, journalService.Delete(1, 7))

	mockRepo.On("Delete", uint(1), uint(7)).Return(journalNotFoundErr(1)).Once()
	assert.ErrorIs(t, journalService.Delete(1, 7), services.ErrJournalNotFound)
	mockRepo.AssertExpectations(t)
}

func TestJournalService_TogglePin(t *testing.T) {
	mockRepo := new(MockJournalRepository)
	journalService := services.NewJournalService(mockRepo, nil)

	mockRepo.On("TogglePin", uint(1), uint(7)).Return(nil).Twice()
	assert.NoError(t, journalService.TogglePin(1, 7))
	assert.NoError(t, journalService.TogglePin(1, 7))

	mockRepo.On("TogglePin", uint(9), uint(7)).Return(journalNotFoundErr(9)).Once()
	assert.ErrorIs(t, journalService.TogglePin(9, 7), services.ErrJournalNotFound)
	mockRepo.AssertExpectations(t)
}

func TestJournalService_AdminDelete(t *testing.T) {
	mockRepo := new(MockJournalRepository)
	journalService := services.NewJournalService(mockRepo, nil)

	// Moderation delete is unscoped by owner.
	mockRepo.On("DeleteByID", uint(5)).Return(nil).Once()
	assert.NoError(t, journalService.AdminDelete(5))

	mockRepo.On("DeleteByID", uint(6)).Return(journalNotFoundErr(6)).Once()
	assert.ErrorIs(t, journalService.AdminDelete(6), services.ErrJournalNotFound)
	mockRepo.AssertExpectations(t)
}
