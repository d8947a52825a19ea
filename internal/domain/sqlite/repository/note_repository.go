package repository

import (
	"errors"

	"talentgate/internal/domain/entity"

	"gorm.io/gorm"
)

type DefaultNoteRepository struct {
	db *gorm.DB
}

func NewNoteRepository(db *gorm.DB) *DefaultNoteRepository {
	return &DefaultNoteRepository{db: db}
}

func (d *DefaultNoteRepository) FindByID(id string) (*entity.CandidateNote, error) {
	var note entity.CandidateNote
	err := d.db.Preload("Admin").First(&note, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}
	return &note, nil
}

// FindVisible returns an application's notes readable by the actor:
// every public note plus the actor's own private ones.
func (d *DefaultNoteRepository) FindVisible(applicationID, adminID string) ([]*entity.CandidateNote, error) {
	var notes []*entity.CandidateNote
	err := d.db.
		Where("application_id = ? AND (is_private = ? OR admin_id = ?)", applicationID, false, adminID).
		Preload("Admin").
		Order("created_at DESC").
		Find(&notes).Error
	if err != nil {
		return nil, err
	}
	return notes, nil
}

func (d *DefaultNoteRepository) FindByApplication(applicationID string) ([]*entity.CandidateNote, error) {
	var notes []*entity.CandidateNote
	err := d.db.
		Where("application_id = ?", applicationID).
		Preload("Admin").
		Order("created_at DESC").
		Find(&notes).Error
	if err != nil {
		return nil, err
	}
	return notes, nil
}

func (d *DefaultNoteRepository) Save(note *entity.CandidateNote) error {
	return d.db.Save(note).Error
}

func (d *DefaultNoteRepository) Delete(note *entity.CandidateNote) error {
	return d.db.Delete(note).Error
}
