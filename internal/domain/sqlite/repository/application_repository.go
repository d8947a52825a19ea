package repository

import (
	"errors"
	"strings"

	"talentgate/internal/domain/entity"

	"gorm.io/gorm"
)

type DefaultApplicationRepository struct {
	db *gorm.DB
}

func NewApplicationRepository(db *gorm.DB) *DefaultApplicationRepository {
	return &DefaultApplicationRepository{db: db}
}

// tenantScope restricts rows to a company either through the job join or
// through the denormalized company column, so applications whose job was
// deleted stay visible to their tenant.
func (d *DefaultApplicationRepository) tenantScope(companyID string) *gorm.DB {
	return d.db.Table("applications").
		Select("applications.*").
		Joins("LEFT JOIN jobs ON jobs.id = applications.job_id").
		Where("applications.company_id = ? OR jobs.company_id = ?", companyID, companyID)
}

func (d *DefaultApplicationRepository) FindByID(id string) (*entity.Application, error) {
	var app entity.Application
	err := d.db.Preload("Job").First(&app, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}
	return &app, nil
}

// FindOwned returns the application only if it belongs to the company.
func (d *DefaultApplicationRepository) FindOwned(id, companyID string) (*entity.Application, error) {
	var app entity.Application
	err := d.tenantScope(companyID).
		Where("applications.id = ?", id).
		Preload("Job").
		First(&app).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}
	return &app, nil
}

func (d *DefaultApplicationRepository) FindForCompany(companyID string, filter entity.ApplicationFilter) ([]*entity.Application, error) {
	query := d.tenantScope(companyID).Preload("Job").Order("applications.applied_at DESC")

	if filter.JobID != "" {
		query = query.Where("applications.job_id = ?", filter.JobID)
	}
	if filter.Status != "" {
		query = query.Where("applications.status = ?", filter.Status)
	}
	if filter.DateFrom != "" {
		query = query.Where("DATE(applications.applied_at) >= ?", filter.DateFrom)
	}
	if filter.DateTo != "" {
		query = query.Where("DATE(applications.applied_at) <= ?", filter.DateTo)
	}

	var apps []*entity.Application
	if err := query.Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

func (d *DefaultApplicationRepository) FindByStatus(companyID, status string) ([]*entity.Application, error) {
	var apps []*entity.Application
	err := d.tenantScope(companyID).
		Where("applications.status = ?", status).
		Preload("Job").
		Find(&apps).Error
	if err != nil {
		return nil, err
	}
	return apps, nil
}

func (d *DefaultApplicationRepository) FindTalentPool(companyID string) ([]*entity.Application, error) {
	var apps []*entity.Application
	err := d.db.
		Where("company_id = ? AND in_talent_pool = ?", companyID, true).
		Preload("Job").
		Order("talent_pool_added_at DESC").
		Find(&apps).Error
	if err != nil {
		return nil, err
	}
	return apps, nil
}

func (d *DefaultApplicationRepository) FindByEmail(email string) ([]*entity.Application, error) {
	var apps []*entity.Application
	err := d.db.
		Where("email = ?", email).
		Preload("Job").
		Order("applied_at DESC").
		Find(&apps).Error
	if err != nil {
		return nil, err
	}
	return apps, nil
}

func (d *DefaultApplicationRepository) FindByEmailAndJob(email, jobID string) (*entity.Application, error) {
	var app entity.Application
	err := d.db.Preload("Job").First(&app, "email = ? AND job_id = ?", email, jobID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}
	return &app, nil
}

// Search applies the structured half of a candidate search in SQL. Text
// scoring over extracted CV content happens in the service afterwards.
func (d *DefaultApplicationRepository) Search(companyID string, filter entity.CandidateSearchFilter) ([]*entity.Application, error) {
	query := d.tenantScope(companyID).Preload("Job")

	if filter.Status != "" {
		query = query.Where("applications.status = ?", filter.Status)
	}
	if filter.HasPortfolio {
		query = query.Where("applications.portfolio_url != ''")
	}
	if filter.HasLinkedIn {
		query = query.Where("applications.linkedin_url != ''")
	}
	if filter.MinExperience != nil {
		query = query.Where("applications.years_of_experience >= ?", *filter.MinExperience)
	}
	if filter.MaxExperience != nil {
		query = query.Where("applications.years_of_experience <= ?", *filter.MaxExperience)
	}
	if filter.CurrentPosition != "" {
		query = query.Where("LOWER(applications.current_position) LIKE ?",
			"%"+strings.ToLower(filter.CurrentPosition)+"%")
	}

	var apps []*entity.Application
	if err := query.Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

func (d *DefaultApplicationRepository) Save(app *entity.Application) error {
	return d.db.Save(app).Error
}

func (d *DefaultApplicationRepository) Delete(app *entity.Application) error {
	return d.db.Delete(app).Error
}

func (d *DefaultApplicationRepository) Count() (int64, error) {
	var n int64
	err := d.db.Model(&entity.Application{}).Count(&n).Error
	return n, err
}

func (d *DefaultApplicationRepository) CountByStatus(status string) (int64, error) {
	var n int64
	err := d.db.Model(&entity.Application{}).Where("status = ?", status).Count(&n).Error
	return n, err
}

func (d *DefaultApplicationRepository) CountForCompany(companyID string) (int64, error) {
	var n int64
	err := d.db.Model(&entity.Application{}).Where("company_id = ?", companyID).Count(&n).Error
	return n, err
}
