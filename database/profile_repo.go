package database

import (
	"context"
	"errors"
	"time"

	"github.com/rpupo63/portfolio-backend/errs"
	"github.com/rpupo63/portfolio-backend/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProfileRepo struct {
	db *gorm.DB
}

func NewProfileRepo(db *gorm.DB) *ProfileRepo {
	return &ProfileRepo{db}
}

// Find returns the profile row, or an empty profile when it was never created.
func (r *ProfileRepo) Find(ctx context.Context) (*models.Profile, error) {
	var profile models.Profile
	err := r.db.WithContext(ctx).First(&profile, models.ProfileID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &models.Profile{ID: models.ProfileID}, nil
	}
	if err != nil {
		return nil, errs.NewDatabaseError("find", "profile", err)
	}
	return &profile, nil
}

// Replace overwrites all profile columns, inserting the row if missing.
func (r *ProfileRepo) Replace(ctx context.Context, in models.ProfileInput) (*models.Profile, error) {
	now := time.Now()
	profile := models.Profile{ID: models.ProfileID, UpdatedAt: &now}
	in.Apply(&profile)

	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).
		Create(&profile).Error
	if err != nil {
		return nil, errs.NewDatabaseError("update", "profile", err)
	}
	return &profile, nil
}

// ensureDefault inserts the default profile unless a row already exists.
func (r *ProfileRepo) ensureDefault(tx *gorm.DB) error {
	now := time.Now()
	profile := models.DefaultProfile()
	profile.UpdatedAt = &now
	return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&profile).Error
}
