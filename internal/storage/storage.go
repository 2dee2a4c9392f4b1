package storage

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"grievgo/backend/internal/models"
	"grievgo/backend/pkg/logger"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// EventChannel is the redis pub/sub channel complaint events fan out on.
const EventChannel = "complaints:events"

type Storage interface {
	GetUserByID(id string) (*models.User, error)
	SaveUser(user *models.User) error

	CreateComplaint(complaint *models.Complaint) error
	GetComplaintByID(id string) (*models.Complaint, error)
	ListComplaints(status models.Status) ([]models.Complaint, error)
	AssignAuthority(complaintID, authorityID string) error

	ApplyTransition(complaintID string, newStatus models.Status, reason, updatedBy string) (*models.Complaint, error)
	ApplyEscalation(complaintID, reason, escalatedBy string) (*models.Complaint, error)
	ListOverdueComplaints(cutoff time.Time) ([]models.Complaint, error)

	GetUserVote(complaintID, voterID string) (models.VoteType, error)
	ApplyVote(complaintID, voterID string, vote models.VoteType) (*models.VoteResult, error)
	ClearVote(complaintID, voterID string) (*models.VoteResult, error)
	SetPriority(complaintID string, priority models.Priority) error

	CreateNotification(n *models.Notification) error
	CountUnreadNotifications(userID string) (int64, error)
	MarkAllNotificationsRead(userID string) error
	ListNotices(limit int) ([]models.Notice, error)
	CreateNotice(n *models.Notice) error

	PublishEvent(event models.StatusEvent) error
}

// Service implements Storage over PostgreSQL and Redis.
type Service struct {
	DB    *gorm.DB
	Redis *redis.Client
	Ctx   context.Context
}

// NewStorageService Constructor
func NewStorageService(db *gorm.DB, rdb *redis.Client) *Service {
	return &Service{
		DB:    db,
		Redis: rdb,
		Ctx:   context.Background(),
	}
}

func (s *Service) GetUserByID(id string) (*models.User, error) {
	var user models.User
	if err := s.DB.First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Service) SaveUser(user *models.User) error {
	return s.DB.Save(user).Error
}

func (s *Service) CreateComplaint(complaint *models.Complaint) error {
	if complaint.Status == "" {
		complaint.Status = models.StatusRaised
	}
	if complaint.Priority == "" {
		complaint.Priority = models.PriorityMedium
	}
	if complaint.BasePriority == "" {
		complaint.BasePriority = complaint.Priority
	}
	if err := s.DB.Create(complaint).Error; err != nil {
		logger.Error().Err(err).Str("submitter", complaint.SubmitterID).Msg("failed to create complaint")
		return err
	}
	return nil
}

// GetComplaintByID loads a complaint with its status history, oldest entry
// first.
func (s *Service) GetComplaintByID(id string) (*models.Complaint, error) {
	var complaint models.Complaint
	err := s.DB.Preload("History", func(db *gorm.DB) *gorm.DB {
		return db.Order("updated_at asc")
	}).First(&complaint, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &complaint, nil
}

// ListComplaints returns complaints, newest first, optionally filtered by
// status.
func (s *Service) ListComplaints(status models.Status) ([]models.Complaint, error) {
	var complaints []models.Complaint
	q := s.DB.Order("created_at desc")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	if err := q.Find(&complaints).Error; err != nil {
		return nil, err
	}
	return complaints, nil
}

func (s *Service) AssignAuthority(complaintID, authorityID string) error {
	return s.DB.Model(&models.Complaint{}).
		Where("id = ?", complaintID).
		Update("assigned_authority_id", authorityID).Error
}

// ApplyTransition updates the status and appends the history entry in one
// transaction, so the newest history row always matches the stored status.
// Resolution and closure clear the escalation reason/actor; the level stays
// as an audit trail.
func (s *Service) ApplyTransition(complaintID string, newStatus models.Status, reason, updatedBy string) (*models.Complaint, error) {
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var complaint models.Complaint
		if err := tx.First(&complaint, "id = ?", complaintID).Error; err != nil {
			return err
		}

		entry := models.StatusHistoryEntry{
			ComplaintID: complaintID,
			OldStatus:   complaint.Status,
			NewStatus:   newStatus,
			Reason:      reason,
			UpdatedBy:   updatedBy,
			UpdatedAt:   time.Now(),
		}
		if err := tx.Create(&entry).Error; err != nil {
			return err
		}

		updates := map[string]interface{}{"status": newStatus}
		if newStatus == models.StatusResolved || newStatus == models.StatusClosed {
			updates["escalation_reason"] = ""
			updates["escalated_by"] = ""
			updates["escalated_at"] = nil
		}
		return tx.Model(&models.Complaint{}).Where("id = ?", complaintID).Updates(updates).Error
	})
	if err != nil {
		logger.Error().Err(err).Str("complaint", complaintID).Msg("status transition failed")
		return nil, err
	}
	return s.GetComplaintByID(complaintID)
}

// ApplyEscalation increments the level atomically in the database so
// concurrent authority sessions cannot assign the same level twice.
func (s *Service) ApplyEscalation(complaintID, reason, escalatedBy string) (*models.Complaint, error) {
	err := s.DB.Model(&models.Complaint{}).
		Where("id = ?", complaintID).
		Updates(map[string]interface{}{
			"escalation_level":  gorm.Expr("escalation_level + 1"),
			"escalation_reason": reason,
			"escalated_by":      escalatedBy,
			"escalated_at":      time.Now(),
		}).Error
	if err != nil {
		logger.Error().Err(err).Str("complaint", complaintID).Msg("escalation failed")
		return nil, err
	}
	return s.GetComplaintByID(complaintID)
}

// ListOverdueComplaints returns non-terminal complaints with no update
// since the cutoff, candidates for auto-escalation.
func (s *Service) ListOverdueComplaints(cutoff time.Time) ([]models.Complaint, error) {
	var complaints []models.Complaint
	err := s.DB.
		Where("status NOT IN ?", []models.Status{models.StatusClosed, models.StatusSpam}).
		Where("updated_at < ?", cutoff).
		Find(&complaints).Error
	if err != nil {
		return nil, err
	}
	return complaints, nil
}

func (s *Service) GetUserVote(complaintID, voterID string) (models.VoteType, error) {
	var vote models.Vote
	err := s.DB.Where("complaint_id = ? AND voter_id = ?", complaintID, voterID).First(&vote).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.VoteNone, nil
	}
	if err != nil {
		return models.VoteNone, err
	}
	return vote.Type, nil
}

func (s *Service) ApplyVote(complaintID, voterID string, vote models.VoteType) (*models.VoteResult, error) {
	return s.mutateVote(complaintID, voterID, vote)
}

// ClearVote removes the voter's vote. Idempotent: clearing a vote that does
// not exist returns the current aggregate.
func (s *Service) ClearVote(complaintID, voterID string) (*models.VoteResult, error) {
	return s.mutateVote(complaintID, voterID, models.VoteNone)
}

// mutateVote applies cast/switch/clear semantics in one transaction.
// Counters are clamped with GREATEST so a double-delivered clear cannot
// drive them negative.
func (s *Service) mutateVote(complaintID, voterID string, requested models.VoteType) (*models.VoteResult, error) {
	var result models.VoteResult

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var complaint models.Complaint
		if err := tx.First(&complaint, "id = ?", complaintID).Error; err != nil {
			return err
		}

		var existing models.Vote
		findErr := tx.Where("complaint_id = ? AND voter_id = ?", complaintID, voterID).First(&existing).Error
		hasVote := findErr == nil
		if findErr != nil && !errors.Is(findErr, gorm.ErrRecordNotFound) {
			return findErr
		}

		switch {
		case requested == models.VoteNone:
			if hasVote {
				if err := tx.Delete(&existing).Error; err != nil {
					return err
				}
				updateCounter(tx, complaintID, existing.Type, -1)
			}
		case hasVote && existing.Type == requested:
			// Same type again: toggle off.
			if err := tx.Delete(&existing).Error; err != nil {
				return err
			}
			updateCounter(tx, complaintID, existing.Type, -1)
			requested = models.VoteNone
		case hasVote:
			// Switch direction.
			if err := tx.Model(&existing).Update("type", requested).Error; err != nil {
				return err
			}
			updateCounter(tx, complaintID, existing.Type, -1)
			updateCounter(tx, complaintID, requested, +1)
		default:
			newVote := models.Vote{ComplaintID: complaintID, VoterID: voterID, Type: requested}
			if err := tx.Create(&newVote).Error; err != nil {
				return err
			}
			updateCounter(tx, complaintID, requested, +1)
		}

		if err := tx.First(&complaint, "id = ?", complaintID).Error; err != nil {
			return err
		}
		result = models.VoteResult{
			Upvotes:   complaint.Upvotes,
			Downvotes: complaint.Downvotes,
			UserVote:  requested,
			Priority:  complaint.Priority,
		}
		return nil
	})
	if err != nil {
		logger.Error().Err(err).Str("complaint", complaintID).Str("voter", voterID).Msg("vote mutation failed")
		return nil, err
	}
	return &result, nil
}

func updateCounter(tx *gorm.DB, complaintID string, vote models.VoteType, delta int) {
	field := "upvotes"
	if vote == models.VoteDownvote {
		field = "downvotes"
	}
	tx.Model(&models.Complaint{}).
		Where("id = ?", complaintID).
		UpdateColumn(field, gorm.Expr("GREATEST("+field+" + ?, 0)", delta))
}

// SetPriority persists a re-evaluated effective priority.
func (s *Service) SetPriority(complaintID string, priority models.Priority) error {
	return s.DB.Model(&models.Complaint{}).
		Where("id = ?", complaintID).
		UpdateColumn("priority", priority).Error
}

func (s *Service) CreateNotification(n *models.Notification) error {
	return s.DB.Create(n).Error
}

func (s *Service) CountUnreadNotifications(userID string) (int64, error) {
	var count int64
	err := s.DB.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	return count, err
}

func (s *Service) MarkAllNotificationsRead(userID string) error {
	return s.DB.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true).Error
}

// ListNotices returns broadcast notices, newest first.
func (s *Service) ListNotices(limit int) ([]models.Notice, error) {
	var notices []models.Notice
	if err := s.DB.Order("created_at desc").Limit(limit).Find(&notices).Error; err != nil {
		return nil, err
	}
	return notices, nil
}

func (s *Service) CreateNotice(n *models.Notice) error {
	return s.DB.Create(n).Error
}

// PublishEvent pushes a complaint event onto the redis channel the live hub
// listens on.
func (s *Service) PublishEvent(event models.StatusEvent) error {
	if s.Redis == nil {
		return nil
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return s.Redis.Publish(s.Ctx, EventChannel, string(payload)).Err()
}

// Subscribe returns a subscription on the complaint event channel.
func (s *Service) Subscribe() *redis.PubSub {
	return s.Redis.Subscribe(s.Ctx, EventChannel)
}
