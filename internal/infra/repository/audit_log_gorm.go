package repository

import (
	"context"

	"freshmarket/internal/domain/model"
	repo "freshmarket/internal/repository"

	"gorm.io/gorm"
)

type AuditLogGormRepository struct {
	db *gorm.DB
}

func NewAuditLogGormRepository(db *gorm.DB) *AuditLogGormRepository {
	return &AuditLogGormRepository{db: db}
}

func (r *AuditLogGormRepository) Create(ctx context.Context, log model.AuditLog) error {
	return r.db.WithContext(ctx).Create(&log).Error
}

func (r *AuditLogGormRepository) List(ctx context.Context, f repo.AuditLogFilter) ([]model.AuditLog, error) {
	tx := r.db.WithContext(ctx).Model(&model.AuditLog{})

	if f.ActorUserID != nil {
		tx = tx.Where("actor_user_id = ?", *f.ActorUserID)
	}
	if f.Action != nil {
		tx = tx.Where("action = ?", *f.Action)
	}
	if f.ResourceType != nil {
		tx = tx.Where("resource_type = ?", *f.ResourceType)
	}
	if f.ResourceID != nil {
		tx = tx.Where("resource_id = ?", *f.ResourceID)
	}
	if f.CreatedFrom != nil {
		tx = tx.Where("created_at >= ?", *f.CreatedFrom)
	}
	if f.CreatedTo != nil {
		tx = tx.Where("created_at <= ?", *f.CreatedTo)
	}

	limit := f.Limit
	if limit <= 0 || limit > 1000 {
		limit = 50
	}

	var logs []model.AuditLog
	err := tx.Order("created_at desc").Limit(limit).Offset(f.Offset).Find(&logs).Error
	if err != nil {
		return []model.AuditLog{}, err
	}
	return logs, nil
}
