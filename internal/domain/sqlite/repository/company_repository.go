package repository

import (
	"errors"

	"talentgate/internal/domain/entity"

	"gorm.io/gorm"
)

type DefaultCompanyRepository struct {
	db *gorm.DB
}

func NewCompanyRepository(db *gorm.DB) *DefaultCompanyRepository {
	return &DefaultCompanyRepository{db: db}
}

func (d *DefaultCompanyRepository) FindByID(id string) (*entity.Company, error) {
	var company entity.Company
	err := d.db.First(&company, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}
	return &company, nil
}

func (d *DefaultCompanyRepository) FindByEmail(email string) (*entity.Company, error) {
	var company entity.Company
	err := d.db.First(&company, "email = ?", email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}
	return &company, nil
}

func (d *DefaultCompanyRepository) FindAll() ([]*entity.Company, error) {
	var companies []*entity.Company
	err := d.db.Order("created_at DESC").Find(&companies).Error
	if err != nil {
		return nil, err
	}
	return companies, nil
}

func (d *DefaultCompanyRepository) Save(company *entity.Company) error {
	return d.db.Save(company).Error
}

func (d *DefaultCompanyRepository) Count() (int64, error) {
	var n int64
	err := d.db.Model(&entity.Company{}).Count(&n).Error
	return n, err
}

func (d *DefaultCompanyRepository) CountBySubscriptionStatus(status string) (int64, error) {
	var n int64
	err := d.db.Model(&entity.Company{}).Where("subscription_status = ?", status).Count(&n).Error
	return n, err
}
