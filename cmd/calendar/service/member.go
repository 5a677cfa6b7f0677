package service

import (
	"calendar-backend/cmd/calendar/model"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DefaultMemberLimit is the number of members an event admits.
const DefaultMemberLimit = 10

type IMemberRepo interface {
	CountMembers(ctx context.Context, eventID string) (int64, error)
	MemberExists(ctx context.Context, eventID, userID string) (bool, error)
	ListMembers(ctx context.Context, eventID string) ([]model.EventMember, error)
	GetMember(ctx context.Context, id string) (model.EventMember, error)
	CreateMember(ctx context.Context, member model.EventMember) error
	DeleteMember(ctx context.Context, id string) error
}

type MemberService struct {
	events  IEventLookup
	members IMemberRepo
	tx      ITxRunner
	limit   int
	log     *zap.Logger
	now     func() time.Time
}

func NewMemberService(events IEventLookup, members IMemberRepo, tx ITxRunner, limit int, log *zap.Logger) *MemberService {
	if limit <= 0 {
		limit = DefaultMemberLimit
	}
	return &MemberService{
		events:  events,
		members: members,
		tx:      tx,
		limit:   limit,
		log:     log,
		now:     time.Now,
	}
}

// AddMember invites userID to the event. The insert is admitted while the
// event has fewer than limit members.
func (s *MemberService) AddMember(ctx context.Context, ownerID, eventID, userID string) (model.EventMember, error) {

	if _, err := uuid.Parse(userID); err != nil {
		return model.EventMember{}, newError(ErrValidation, "User id must be a UUID.")
	}

	var member model.EventMember

	err := s.tx.WithLock(ctx, "members:"+eventID, func(ctx context.Context) error {
		if _, err := lookupEvent(ctx, s.events, ownerID, eventID); err != nil {
			return err
		}

		exists, err := s.members.MemberExists(ctx, eventID, userID)
		if err != nil {
			return fmt.Errorf("check member: %w", err)
		}
		if exists {
			return newError(ErrAlreadyMember, "User is already a member of this event.")
		}

		count, err := s.members.CountMembers(ctx, eventID)
		if err != nil {
			return fmt.Errorf("count members: %w", err)
		}
		if count >= int64(s.limit) {
			memberCapacityRejections.Inc()
			s.log.Warn("user limit exceeded",
				zap.String("event_id", eventID),
				zap.Int64("members", count),
				zap.Int("limit", s.limit))
			return newError(ErrCapacityExceeded, "User limit exceeded!")
		}

		id, err := uuid.NewV7()
		if err != nil {
			return fmt.Errorf("generate member id: %w", err)
		}

		member = model.EventMember{
			ID:         id.String(),
			EventID:    eventID,
			UserID:     userID,
			CreateDate: s.now(),
		}

		if err := s.members.CreateMember(ctx, member); err != nil {
			return fmt.Errorf("create member: %w", err)
		}
		return nil
	})
	if err != nil {
		return model.EventMember{}, err
	}

	return member, nil
}

func (s *MemberService) ListMembers(ctx context.Context, ownerID, eventID string) ([]model.EventMember, error) {

	if _, err := lookupEvent(ctx, s.events, ownerID, eventID); err != nil {
		return nil, err
	}

	members, err := s.members.ListMembers(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}

	return members, nil
}

// RemoveMember deletes a membership of an event owned by ownerID.
func (s *MemberService) RemoveMember(ctx context.Context, ownerID, memberID string) error {

	member, err := s.members.GetMember(ctx, memberID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return newError(ErrNotFound, "Member not found.")
		}
		return fmt.Errorf("get member: %w", err)
	}

	if _, err := lookupEvent(ctx, s.events, ownerID, member.EventID); err != nil {
		return err
	}

	if err := s.members.DeleteMember(ctx, memberID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return newError(ErrNotFound, "Member not found.")
		}
		return fmt.Errorf("delete member: %w", err)
	}

	return nil
}
