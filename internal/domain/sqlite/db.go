package sqlite

import (
	"path/filepath"
	"time"

	"talentgate/internal/domain/entity"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func Init(path string) (*gorm.DB, error) {
	if path == "" {
		path = filepath.Join(".", "talentgate.db")
	}
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	err = db.AutoMigrate(
		&entity.Company{},
		&entity.Admin{},
		&entity.SuperAdmin{},
		&entity.Job{},
		&entity.Application{},
		&entity.ActivityLog{},
		&entity.CandidateNote{},
	)
	if err != nil {
		return nil, err
	}

	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return db, nil
}
