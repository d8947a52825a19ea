package repository

import (
	"talentgate/internal/domain/entity"

	"gorm.io/gorm"
)

type DefaultActivityLogRepository struct {
	db *gorm.DB
}

func NewActivityLogRepository(db *gorm.DB) *DefaultActivityLogRepository {
	return &DefaultActivityLogRepository{db: db}
}

func (d *DefaultActivityLogRepository) Create(log *entity.ActivityLog) error {
	return d.db.Create(log).Error
}

func (d *DefaultActivityLogRepository) FindForCompany(companyID string, filter entity.ActivityLogFilter, limit int) ([]*entity.ActivityLog, error) {
	query := d.db.
		Where("company_id = ?", companyID).
		Preload("Admin").
		Order("created_at DESC").
		Limit(limit)
	query = applyLogFilter(query, filter)

	var logs []*entity.ActivityLog
	if err := query.Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

// FindAll is the platform-wide view; filter.CompanyID optionally narrows
// it to one tenant.
func (d *DefaultActivityLogRepository) FindAll(filter entity.ActivityLogFilter, limit int) ([]*entity.ActivityLog, error) {
	query := d.db.
		Preload("Admin").
		Preload("Company").
		Order("created_at DESC").
		Limit(limit)
	if filter.CompanyID != "" {
		query = query.Where("company_id = ?", filter.CompanyID)
	}
	query = applyLogFilter(query, filter)

	var logs []*entity.ActivityLog
	if err := query.Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

func (d *DefaultActivityLogRepository) FindForEntity(entityType, entityID string) ([]*entity.ActivityLog, error) {
	var logs []*entity.ActivityLog
	err := d.db.
		Where("entity_type = ? AND entity_id = ?", entityType, entityID).
		Preload("Admin").
		Order("created_at DESC").
		Find(&logs).Error
	if err != nil {
		return nil, err
	}
	return logs, nil
}

func applyLogFilter(query *gorm.DB, filter entity.ActivityLogFilter) *gorm.DB {
	if filter.ActionType != "" {
		query = query.Where("action_type = ?", filter.ActionType)
	}
	if filter.EntityType != "" {
		query = query.Where("entity_type = ?", filter.EntityType)
	}
	if filter.DateFrom != "" {
		query = query.Where("DATE(created_at) >= ?", filter.DateFrom)
	}
	if filter.DateTo != "" {
		query = query.Where("DATE(created_at) <= ?", filter.DateTo)
	}
	return query
}
