package database

import (
	"cmp"
	"context"
	"slices"
	"sync"
	"time"

	"github.com/rpupo63/portfolio-backend/errs"
	"github.com/rpupo63/portfolio-backend/models"
)

// MemoryStore keeps projects and the profile in process memory. It is meant
// for local development and demos; nothing survives a restart. A mutex
// serializes all access, so id assignment is race free.
type MemoryStore struct {
	mu       sync.Mutex
	projects []models.Project // ascending id
	profile  *models.Profile
	lastID   int64
	now      func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{now: time.Now}
}

func (s *MemoryStore) Init(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.profile == nil {
		profile := models.DefaultProfile()
		now := s.now()
		profile.UpdatedAt = &now
		s.profile = &profile
	}
	return nil
}

func (s *MemoryStore) ListProjects(_ context.Context) ([]models.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Project, 0, len(s.projects))
	for _, p := range s.projects {
		out = append(out, p.Clone())
	}
	return out, nil
}

func (s *MemoryStore) GetProjectBySlug(_ context.Context, slug string) (*models.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range s.projects {
		if p.Slug == slug {
			found := p.Clone()
			return &found, nil
		}
	}
	return nil, errs.NewNotFound("project")
}

func (s *MemoryStore) GetProjectByID(_ context.Context, id int64) (*models.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return nil, errs.NewNotFound("project")
	}
	found := s.projects[i].Clone()
	return &found, nil
}

func (s *MemoryStore) CreateProject(_ context.Context, in models.ProjectInput) (*models.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	project := newProject(in)
	s.lastID++
	project.ID = s.lastID
	project.CreatedAt = s.now()
	project.UpdatedAt = project.CreatedAt

	s.projects = append(s.projects, project)
	created := project.Clone()
	return &created, nil
}

func (s *MemoryStore) UpdateProject(_ context.Context, id int64, in models.ProjectInput) (*models.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return nil, errs.NewNotFound("project")
	}
	project := &s.projects[i]
	in.Apply(project)
	project.Normalize()
	project.UpdatedAt = s.now()

	updated := project.Clone()
	return &updated, nil
}

func (s *MemoryStore) DeleteProject(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexOf(id); i >= 0 {
		s.projects = append(s.projects[:i], s.projects[i+1:]...)
	}
	return nil
}

func (s *MemoryStore) GetProfile(_ context.Context) (*models.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.profile == nil {
		return &models.Profile{}, nil
	}
	profile := s.profile.Clone()
	return &profile, nil
}

func (s *MemoryStore) UpdateProfile(_ context.Context, in models.ProfileInput) (*models.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	profile := models.Profile{ID: models.ProfileID}
	in.Apply(&profile)
	now := s.now()
	profile.UpdatedAt = &now
	s.profile = &profile

	out := profile.Clone()
	return &out, nil
}

func (s *MemoryStore) Close() error {
	return nil
}

// projects are appended with increasing ids, so the slice stays sorted
func (s *MemoryStore) indexOf(id int64) int {
	i, found := slices.BinarySearchFunc(s.projects, id, func(p models.Project, id int64) int {
		return cmp.Compare(p.ID, id)
	})
	if !found {
		return -1
	}
	return i
}
