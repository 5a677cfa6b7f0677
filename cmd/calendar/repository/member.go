package repository

import (
	"calendar-backend/cmd/calendar/model"
	"context"

	"gorm.io/gorm"
)

type MemberRepo struct {
	db *gorm.DB
}

func NewMemberRepo(db *gorm.DB) *MemberRepo {
	return &MemberRepo{
		db: db,
	}
}

func (r *MemberRepo) CountMembers(ctx context.Context, eventID string) (int64, error) {

	var count int64

	result := conn(ctx, r.db).
		Model(&model.EventMember{}).
		Where("event_id = ?", eventID).
		Count(&count)

	if result.Error != nil {
		return 0, result.Error
	}

	return count, nil
}

func (r *MemberRepo) MemberExists(ctx context.Context, eventID, userID string) (bool, error) {

	var count int64

	result := conn(ctx, r.db).
		Model(&model.EventMember{}).
		Where("event_id = ? AND user_id = ?", eventID, userID).
		Count(&count)

	if result.Error != nil {
		return false, result.Error
	}

	return count > 0, nil
}

func (r *MemberRepo) ListMembers(ctx context.Context, eventID string) ([]model.EventMember, error) {

	var members []model.EventMember

	result := conn(ctx, r.db).
		Model(&model.EventMember{}).
		Where("event_id = ?", eventID).
		Order("create_date").
		Find(&members)

	if result.Error != nil {
		return nil, result.Error
	}

	return members, nil
}

func (r *MemberRepo) GetMember(ctx context.Context, id string) (model.EventMember, error) {

	var member model.EventMember

	result := conn(ctx, r.db).
		Where("id = ?", id).
		First(&member)

	if result.Error != nil {
		return model.EventMember{}, result.Error
	}

	return member, nil
}

func (r *MemberRepo) CreateMember(ctx context.Context, member model.EventMember) error {

	result := conn(ctx, r.db).
		Model(&member).
		Create(&member)

	if result.Error != nil {
		return result.Error
	}

	return nil
}

func (r *MemberRepo) DeleteMember(ctx context.Context, id string) error {

	result := conn(ctx, r.db).
		Where("id = ?", id).
		Delete(&model.EventMember{})

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}
