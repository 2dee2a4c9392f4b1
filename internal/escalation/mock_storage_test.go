package escalation_test

import (
	"time"

	"grievgo/backend/internal/models"

	"github.com/stretchr/testify/mock"
)

type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) GetUserByID(id string) (*models.User, error) {
	args := m.Called(id)
	var user *models.User
	if v := args.Get(0); v != nil {
		user = v.(*models.User)
	}
	return user, args.Error(1)
}

func (m *MockStorage) SaveUser(user *models.User) error {
	return m.Called(user).Error(0)
}

func (m *MockStorage) CreateComplaint(complaint *models.Complaint) error {
	return m.Called(complaint).Error(0)
}

func (m *MockStorage) GetComplaintByID(id string) (*models.Complaint, error) {
	args := m.Called(id)
	var complaint *models.Complaint
	if v := args.Get(0); v != nil {
		complaint = v.(*models.Complaint)
	}
	return complaint, args.Error(1)
}

func (m *MockStorage) ListComplaints(status models.Status) ([]models.Complaint, error) {
	args := m.Called(status)
	var complaints []models.Complaint
	if v := args.Get(0); v != nil {
		complaints = v.([]models.Complaint)
	}
	return complaints, args.Error(1)
}

func (m *MockStorage) AssignAuthority(complaintID, authorityID string) error {
	return m.Called(complaintID, authorityID).Error(0)
}

func (m *MockStorage) ApplyTransition(complaintID string, newStatus models.Status, reason, updatedBy string) (*models.Complaint, error) {
	args := m.Called(complaintID, newStatus, reason, updatedBy)
	var complaint *models.Complaint
	if v := args.Get(0); v != nil {
		complaint = v.(*models.Complaint)
	}
	return complaint, args.Error(1)
}

func (m *MockStorage) ApplyEscalation(complaintID, reason, escalatedBy string) (*models.Complaint, error) {
	args := m.Called(complaintID, reason, escalatedBy)
	var complaint *models.Complaint
	if v := args.Get(0); v != nil {
		complaint = v.(*models.Complaint)
	}
	return complaint, args.Error(1)
}

func (m *MockStorage) ListOverdueComplaints(cutoff time.Time) ([]models.Complaint, error) {
	args := m.Called(cutoff)
	var complaints []models.Complaint
	if v := args.Get(0); v != nil {
		complaints = v.([]models.Complaint)
	}
	return complaints, args.Error(1)
}

func (m *MockStorage) GetUserVote(complaintID, voterID string) (models.VoteType, error) {
	args := m.Called(complaintID, voterID)
	return args.Get(0).(models.VoteType), args.Error(1)
}

func (m *MockStorage) ApplyVote(complaintID, voterID string, vote models.VoteType) (*models.VoteResult, error) {
	args := m.Called(complaintID, voterID, vote)
	var result *models.VoteResult
	if v := args.Get(0); v != nil {
		result = v.(*models.VoteResult)
	}
	return result, args.Error(1)
}

func (m *MockStorage) ClearVote(complaintID, voterID string) (*models.VoteResult, error) {
	args := m.Called(complaintID, voterID)
	var result *models.VoteResult
	if v := args.Get(0); v != nil {
		result = v.(*models.VoteResult)
	}
	return result, args.Error(1)
}

func (m *MockStorage) SetPriority(complaintID string, priority models.Priority) error {
	return m.Called(complaintID, priority).Error(0)
}

func (m *MockStorage) CreateNotification(n *models.Notification) error {
	return m.Called(n).Error(0)
}

func (m *MockStorage) CountUnreadNotifications(userID string) (int64, error) {
	args := m.Called(userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStorage) MarkAllNotificationsRead(userID string) error {
	return m.Called(userID).Error(0)
}

func (m *MockStorage) ListNotices(limit int) ([]models.Notice, error) {
	args := m.Called(limit)
	var notices []models.Notice
	if v := args.Get(0); v != nil {
		notices = v.([]models.Notice)
	}
	return notices, args.Error(1)
}

func (m *MockStorage) CreateNotice(n *models.Notice) error {
	return m.Called(n).Error(0)
}

func (m *MockStorage) PublishEvent(event models.StatusEvent) error {
	return m.Called(event).Error(0)
}
