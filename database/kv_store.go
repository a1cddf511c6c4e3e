package database

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"strconv"
	"time"

	"github.com/rpupo63/portfolio-backend/errs"
	"github.com/rpupo63/portfolio-backend/models"
)

const (
	projectKeyPrefix = "project:"
	profileKey       = "profile:settings"
)

func projectKey(id int64) string {
	return projectKeyPrefix + strconv.FormatInt(id, 10)
}

// KVStore stores each project as a JSON document under project:<id> and the
// profile under profile:settings.
//
// CreateProject assigns max(id)+1 from a prefix scan followed by a separate
// write; two concurrent creates can receive the same id and the later write
// wins. Slugs are not checked for uniqueness.
type KVStore struct {
	kv  KV
	now func() time.Time
}

func NewKVStore(kv KV) *KVStore {
	return &KVStore{kv: kv, now: time.Now}
}

func (s *KVStore) Init(ctx context.Context) error {
	if err := s.kv.Migrate(ctx); err != nil {
		return err
	}
	_, exists, err := s.kv.Get(ctx, profileKey)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	profile := models.DefaultProfile()
	now := s.now()
	profile.UpdatedAt = &now
	return s.put(ctx, profileKey, "profile", profile)
}

func (s *KVStore) ListProjects(ctx context.Context) ([]models.Project, error) {
	docs, err := s.kv.GetByPrefix(ctx, projectKeyPrefix)
	if err != nil {
		return nil, err
	}

	projects := make([]models.Project, 0, len(docs))
	for _, doc := range docs {
		var p models.Project
		if err := json.Unmarshal(doc, &p); err != nil {
			return nil, errs.NewStorageFailure("decode", "project", err)
		}
		p.Normalize()
		projects = append(projects, p)
	}
	slices.SortFunc(projects, func(a, b models.Project) int {
		switch {
		case a.ID < b.ID:
			return -1
		case a.ID > b.ID:
			return 1
		}
		return 0
	})
	return projects, nil
}

func (s *KVStore) GetProjectBySlug(ctx context.Context, slug string) (*models.Project, error) {
	projects, err := s.ListProjects(ctx)
	if err != nil {
		return nil, err
	}
	for i := range projects {
		if projects[i].Slug == slug {
			return &projects[i], nil
		}
	}
	return nil, errs.NewNotFound("project")
}

func (s *KVStore) GetProjectByID(ctx context.Context, id int64) (*models.Project, error) {
	doc, exists, err := s.kv.Get(ctx, projectKey(id))
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, errs.NewNotFound("project")
	}

	var p models.Project
	if err := json.Unmarshal(doc, &p); err != nil {
		return nil, errs.NewStorageFailure("decode", "project", err)
	}
	p.Normalize()
	return &p, nil
}

func (s *KVStore) CreateProject(ctx context.Context, in models.ProjectInput) (*models.Project, error) {
	projects, err := s.ListProjects(ctx)
	if err != nil {
		return nil, err
	}
	var maxID int64
	for _, p := range projects {
		maxID = max(maxID, p.ID)
	}

	project := newProject(in)
	project.ID = maxID + 1
	project.CreatedAt = s.now()
	project.UpdatedAt = project.CreatedAt

	if err := s.put(ctx, projectKey(project.ID), "project", project); err != nil {
		return nil, err
	}
	return &project, nil
}

func (s *KVStore) UpdateProject(ctx context.Context, id int64, in models.ProjectInput) (*models.Project, error) {
	project, err := s.GetProjectByID(ctx, id)
	if err != nil {
		return nil, err
	}
	in.Apply(project)
	project.Normalize()
	project.UpdatedAt = s.now()

	if err := s.put(ctx, projectKey(id), "project", project); err != nil {
		return nil, err
	}
	return project, nil
}

func (s *KVStore) DeleteProject(ctx context.Context, id int64) error {
	return s.kv.Del(ctx, projectKey(id))
}

func (s *KVStore) GetProfile(ctx context.Context) (*models.Profile, error) {
	doc, exists, err := s.kv.Get(ctx, profileKey)
	if err != nil {
		return nil, err
	}
	var profile models.Profile
	if !exists {
		return &profile, nil
	}
	if err := json.Unmarshal(doc, &profile); err != nil {
		return nil, errs.NewStorageFailure("decode", "profile", err)
	}
	profile.ID = models.ProfileID
	return &profile, nil
}

func (s *KVStore) UpdateProfile(ctx context.Context, in models.ProfileInput) (*models.Profile, error) {
	profile := models.Profile{ID: models.ProfileID}
	in.Apply(&profile)
	now := s.now()
	profile.UpdatedAt = &now

	if err := s.put(ctx, profileKey, "profile", profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

func (s *KVStore) Close() error {
	return s.kv.Close()
}

func (s *KVStore) put(ctx context.Context, key, entity string, v any) error {
	doc, err := json.Marshal(v)
	if err != nil {
		return errs.NewStorageFailure("encode", entity, fmt.Errorf("%s: %w", key, err))
	}
	return s.kv.Set(ctx, key, doc)
}
