package database

import (
	"context"
	"time"

	"github.com/rpupo63/portfolio-backend/errs"
	"github.com/rpupo63/portfolio-backend/models"
	"gorm.io/gorm"
)

type ProjectRepo struct {
	db *gorm.DB
}

func NewProjectRepo(db *gorm.DB) *ProjectRepo {
	return &ProjectRepo{db}
}

// FindAll returns all projects ordered by id
func (r *ProjectRepo) FindAll(ctx context.Context) ([]models.Project, error) {
	var projects []models.Project
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&projects).Error; err != nil {
		return nil, errs.NewDatabaseError("find", "projects", err)
	}
	for i := range projects {
		projects[i].Normalize()
	}
	if projects == nil {
		projects = []models.Project{}
	}
	return projects, nil
}

// FindBySlug returns the project with the exact slug
func (r *ProjectRepo) FindBySlug(ctx context.Context, slug string) (*models.Project, error) {
	var project models.Project
	err := r.db.WithContext(ctx).Where("slug = ?", slug).Order("id ASC").First(&project).Error
	if err != nil {
		return nil, errs.NewDatabaseError("find", "project", err)
	}
	project.Normalize()
	return &project, nil
}

// FindByID returns a project by its ID
func (r *ProjectRepo) FindByID(ctx context.Context, id int64) (*models.Project, error) {
	var project models.Project
	if err := r.db.WithContext(ctx).First(&project, id).Error; err != nil {
		return nil, errs.NewDatabaseError("find", "project", err)
	}
	project.Normalize()
	return &project, nil
}

// Add inserts a new project; the database assigns the id
func (r *ProjectRepo) Add(ctx context.Context, project *models.Project) error {
	if err := r.db.WithContext(ctx).Create(project).Error; err != nil {
		return errs.NewDatabaseError("create", "project", err)
	}
	return nil
}

// Replace overwrites every mutable column of the project with the given id.
func (r *ProjectRepo) Replace(ctx context.Context, id int64, in models.ProjectInput) (*models.Project, error) {
	var updated models.Project
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&updated, id).Error; err != nil {
			return err
		}
		in.Apply(&updated)
		updated.Normalize()
		updated.UpdatedAt = time.Now()
		return tx.Save(&updated).Error
	})
	if err != nil {
		return nil, errs.NewDatabaseError("update", "project", err)
	}
	return &updated, nil
}

// Delete removes a project from the database by id
func (r *ProjectRepo) Delete(ctx context.Context, id int64) error {
	if err := r.db.WithContext(ctx).Delete(&models.Project{}, id).Error; err != nil {
		return errs.NewDatabaseError("delete", "project", err)
	}
	return nil
}
