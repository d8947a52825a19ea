package repository

import (
	"errors"

	"talentgate/internal/domain/entity"

	"gorm.io/gorm"
)

type DefaultAdminRepository struct {
	db *gorm.DB
}

func NewAdminRepository(db *gorm.DB) *DefaultAdminRepository {
	return &DefaultAdminRepository{db: db}
}

func (d *DefaultAdminRepository) FindByID(id string) (*entity.Admin, error) {
	var admin entity.Admin
	err := d.db.First(&admin, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}
	return &admin, nil
}

func (d *DefaultAdminRepository) FindByEmail(email string) (*entity.Admin, error) {
	var admin entity.Admin
	err := d.db.First(&admin, "email = ?", email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}
	return &admin, nil
}

func (d *DefaultAdminRepository) Save(admin *entity.Admin) error {
	return d.db.Save(admin).Error
}

func (d *DefaultAdminRepository) Count() (int64, error) {
	var n int64
	err := d.db.Model(&entity.Admin{}).Count(&n).Error
	return n, err
}

type DefaultSuperAdminRepository struct {
	db *gorm.DB
}

func NewSuperAdminRepository(db *gorm.DB) *DefaultSuperAdminRepository {
	return &DefaultSuperAdminRepository{db: db}
}

func (d *DefaultSuperAdminRepository) FindByID(id string) (*entity.SuperAdmin, error) {
	var sa entity.SuperAdmin
	err := d.db.First(&sa, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}
	return &sa, nil
}

func (d *DefaultSuperAdminRepository) FindByEmail(email string) (*entity.SuperAdmin, error) {
	var sa entity.SuperAdmin
	err := d.db.First(&sa, "email = ?", email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}
	return &sa, nil
}
