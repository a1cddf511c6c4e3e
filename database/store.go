package database

import (
	"context"

	"github.com/rpupo63/portfolio-backend/models"
)

// Store is the persistence contract for projects and the profile. It is
// implemented over a relational database (SQLStore), process memory
// (MemoryStore) and a key-value namespace (KVStore).
//
// Lookups that match nothing return an error satisfying errs.IsNotFound.
// A duplicate slug is rejected with errs.IsConflict by SQLStore only; the
// other adapters accept it and GetProjectBySlug returns the lowest id.
// I/O failures satisfy errs.IsStorageFailure.
type Store interface {
	// Init prepares the medium and creates the default profile if absent.
	Init(ctx context.Context) error

	// ListProjects returns all projects ordered by ascending id.
	ListProjects(ctx context.Context) ([]models.Project, error)
	GetProjectBySlug(ctx context.Context, slug string) (*models.Project, error)
	GetProjectByID(ctx context.Context, id int64) (*models.Project, error)
	CreateProject(ctx context.Context, in models.ProjectInput) (*models.Project, error)
	// UpdateProject replaces every mutable field, keeping id and createdAt.
	UpdateProject(ctx context.Context, id int64, in models.ProjectInput) (*models.Project, error)
	// DeleteProject is idempotent: a missing id is not an error.
	DeleteProject(ctx context.Context, id int64) error

	// GetProfile never reports NotFound; an empty profile is returned instead.
	GetProfile(ctx context.Context) (*models.Profile, error)
	UpdateProfile(ctx context.Context, in models.ProfileInput) (*models.Profile, error)

	Close() error
}

// newProject builds a fresh record from input; list fields default to empty.
func newProject(in models.ProjectInput) models.Project {
	var p models.Project
	in.Apply(&p)
	p.Normalize()
	return p
}
