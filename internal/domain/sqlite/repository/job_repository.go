package repository

import (
	"errors"

	"talentgate/internal/domain/entity"

	"gorm.io/gorm"
)

type DefaultJobRepository struct {
	db *gorm.DB
}

func NewJobRepository(db *gorm.DB) *DefaultJobRepository {
	return &DefaultJobRepository{db: db}
}

func (d *DefaultJobRepository) FindByID(id string) (*entity.Job, error) {
	var job entity.Job
	err := d.db.First(&job, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}
	return &job, nil
}

// FindOwned returns the job only if it belongs to the company.
func (d *DefaultJobRepository) FindOwned(id, companyID string) (*entity.Job, error) {
	var job entity.Job
	err := d.db.First(&job, "id = ? AND company_id = ?", id, companyID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}
	return &job, nil
}

func (d *DefaultJobRepository) FindForCompany(companyID, status string) ([]*entity.Job, error) {
	var jobs []*entity.Job
	query := d.db.Where("company_id = ?", companyID).Order("created_at DESC")
	if status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Find(&jobs).Error; err != nil {
		return nil, err
	}
	return jobs, nil
}

// FindPublicOpen lists a company's open jobs for the public board.
func (d *DefaultJobRepository) FindPublicOpen(companyID string) ([]*entity.Job, error) {
	var jobs []*entity.Job
	err := d.db.
		Where("company_id = ? AND status = ?", companyID, entity.JobStatusOpen).
		Order("created_at DESC").
		Find(&jobs).Error
	if err != nil {
		return nil, err
	}
	return jobs, nil
}

// CloseExpired flips open jobs with a deadline before the given day to
// closed. Runs ahead of every listing so the board never shows stale
// openings.
func (d *DefaultJobRepository) CloseExpired(companyID, today string) (int64, error) {
	res := d.db.Model(&entity.Job{}).
		Where("company_id = ? AND status = ? AND deadline < ?", companyID, entity.JobStatusOpen, today).
		Update("status", entity.JobStatusClosed)
	return res.RowsAffected, res.Error
}

func (d *DefaultJobRepository) Save(job *entity.Job) error {
	return d.db.Save(job).Error
}

func (d *DefaultJobRepository) Delete(job *entity.Job) error {
	return d.db.Delete(job).Error
}

func (d *DefaultJobRepository) Count() (int64, error) {
	var n int64
	err := d.db.Model(&entity.Job{}).Count(&n).Error
	return n, err
}

func (d *DefaultJobRepository) CountByStatus(status string) (int64, error) {
	var n int64
	err := d.db.Model(&entity.Job{}).Where("status = ?", status).Count(&n).Error
	return n, err
}

func (d *DefaultJobRepository) CountForCompany(companyID string) (int64, error) {
	var n int64
	err := d.db.Model(&entity.Job{}).Where("company_id = ?", companyID).Count(&n).Error
	return n, err
}
