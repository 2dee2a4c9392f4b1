package escalation_test

import (
	"grievgo/backend/internal/models"

	"github.com/stretchr/testify/mock"
)

type MockBackend struct {
	mock.Mock
}

func (m *MockBackend) UpdateStatus(complaintID string, newStatus models.Status, reason string) (*models.Complaint, error) {
	args := m.Called(complaintID, newStatus, reason)
	var complaint *models.Complaint
	if v := args.Get(0); v != nil {
		complaint = v.(*models.Complaint)
	}
	return complaint, args.Error(1)
}

func (m *MockBackend) Escalate(complaintID string, reason string) (*models.Complaint, error) {
	args := m.Called(complaintID, reason)
	var complaint *models.Complaint
	if v := args.Get(0); v != nil {
		complaint = v.(*models.Complaint)
	}
	return complaint, args.Error(1)
}

func (m *MockBackend) CastVote(complaintID string, vote models.VoteType) (*models.VoteResult, error) {
	args := m.Called(complaintID, vote)
	var result *models.VoteResult
	if v := args.Get(0); v != nil {
		result = v.(*models.VoteResult)
	}
	return result, args.Error(1)
}

func (m *MockBackend) ClearVote(complaintID string) (*models.VoteResult, error) {
	args := m.Called(complaintID)
	var result *models.VoteResult
	if v := args.Get(0); v != nil {
		result = v.(*models.VoteResult)
	}
	return result, args.Error(1)
}

func (m *MockBackend) UnreadNotificationCount() (int, error) {
	args := m.Called()
	return args.Int(0), args.Error(1)
}

func (m *MockBackend) ListNotices() ([]models.Notice, error) {
	args := m.Called()
	var notices []models.Notice
	if v := args.Get(0); v != nil {
		notices = v.([]models.Notice)
	}
	return notices, args.Error(1)
}

func (m *MockBackend) FetchConfig() (*models.ClientConfig, error) {
	args := m.Called()
	var cfg *models.ClientConfig
	if v := args.Get(0); v != nil {
		cfg = v.(*models.ClientConfig)
	}
	return cfg, args.Error(1)
}
