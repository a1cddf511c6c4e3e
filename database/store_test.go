package database

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/rpupo63/portfolio-backend/config"
	"github.com/rpupo63/portfolio-backend/errs"
	"github.com/rpupo63/portfolio-backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type storeFactory struct {
	name string
	// uniqueSlugs is true for adapters that reject duplicate slugs
	uniqueSlugs bool
	open        func(t *testing.T) Store
}

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := Open(config.Database{
		Driver:     config.DBDriverSQLite,
		SQLitePath: filepath.Join(t.TempDir(), "portfolio.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = closeDB(db) })
	return db
}

func storeFactories() []storeFactory {
	return []storeFactory{
		{
			name: "memory",
			open: func(t *testing.T) Store { return NewMemoryStore() },
		},
		{
			name:        "sql",
			uniqueSlugs: true,
			open:        func(t *testing.T) Store { return NewSQLStore(openTestDB(t)) },
		},
		{
			name: "kv",
			open: func(t *testing.T) Store { return NewKVStore(NewGormKV(openTestDB(t))) },
		},
	}
}

// forEachStore runs fn against a freshly initialized instance of every adapter.
func forEachStore(t *testing.T, fn func(t *testing.T, f storeFactory, s Store)) {
	for _, f := range storeFactories() {
		t.Run(f.name, func(t *testing.T) {
			s := f.open(t)
			require.NoError(t, s.Init(context.Background()))
			fn(t, f, s)
		})
	}
}

func sampleInput(slug string) models.ProjectInput {
	return models.ProjectInput{
		Slug:        slug,
		Title:       "Foo",
		Product:     "SaaS",
		Platform:    "Web",
		Description: "A project",
		Year:        "2024",
		Challenge:   "Hard problem",
		Solution:    "Clever solution",
		Results:     models.StringList{},
		Tags:        models.StringList{},
	}
}

func assertSameFields(t *testing.T, want models.ProjectInput, got *models.Project) {
	t.Helper()
	assert.Equal(t, want.Slug, got.Slug)
	assert.Equal(t, want.Title, got.Title)
	assert.Equal(t, want.Product, got.Product)
	assert.Equal(t, want.Platform, got.Platform)
	assert.Equal(t, want.Description, got.Description)
	assert.Equal(t, want.Year, got.Year)
	assert.Equal(t, want.Challenge, got.Challenge)
	assert.Equal(t, want.Solution, got.Solution)
	assert.Equal(t, want.Results.Clone(), got.Results)
	assert.Equal(t, want.Tags.Clone(), got.Tags)
	assert.Equal(t, want.CaseImages.Clone(), got.CaseImages)
	assert.Equal(t, want.ImageURL, got.ImageURL)
}

func TestCreateThenGet(t *testing.T) {
	forEachStore(t, func(t *testing.T, _ storeFactory, s Store) {
		ctx := context.Background()
		image := "https://cdn.example.com/foo.png"
		in := sampleInput("foo")
		in.Results = models.StringList{"+34% conversion", "NPS 67"}
		in.Tags = models.StringList{"B2B", "UX"}
		in.ImageURL = &image
		in.CaseImages = models.StringList{"/uploads/1.png", "/uploads/2.png"}

		created, err := s.CreateProject(ctx, in)
		require.NoError(t, err)
		assert.Equal(t, int64(1), created.ID)
		assert.False(t, created.CreatedAt.IsZero())
		assert.False(t, created.UpdatedAt.IsZero())
		assertSameFields(t, in, created)

		byID, err := s.GetProjectByID(ctx, created.ID)
		require.NoError(t, err)
		assertSameFields(t, in, byID)
		assert.Equal(t, created.ID, byID.ID)
		assert.WithinDuration(t, created.CreatedAt, byID.CreatedAt, time.Millisecond)

		bySlug, err := s.GetProjectBySlug(ctx, "foo")
		require.NoError(t, err)
		assert.Equal(t, byID.ID, bySlug.ID)
		assertSameFields(t, in, bySlug)
	})
}

func TestOmittedListsRoundTripEmpty(t *testing.T) {
	forEachStore(t, func(t *testing.T, _ storeFactory, s Store) {
		ctx := context.Background()
		in := sampleInput("bare")
		in.Results = nil
		in.Tags = nil

		created, err := s.CreateProject(ctx, in)
		require.NoError(t, err)

		got, err := s.GetProjectByID(ctx, created.ID)
		require.NoError(t, err)
		assert.NotNil(t, got.Results)
		assert.Empty(t, got.Results)
		assert.NotNil(t, got.Tags)
		assert.Empty(t, got.Tags)
		assert.NotNil(t, got.CaseImages)
		assert.Empty(t, got.CaseImages)
		assert.Nil(t, got.ImageURL)
	})
}

func TestLookupMissing(t *testing.T) {
	forEachStore(t, func(t *testing.T, _ storeFactory, s Store) {
		ctx := context.Background()

		_, err := s.GetProjectBySlug(ctx, "missing")
		require.Error(t, err)
		assert.True(t, errs.IsNotFound(err))
		assert.False(t, errs.IsStorageFailure(err))

		_, err = s.GetProjectByID(ctx, 42)
		require.Error(t, err)
		assert.True(t, errs.IsNotFound(err))
	})
}

func TestSlugLookupIsCaseSensitive(t *testing.T) {
	forEachStore(t, func(t *testing.T, _ storeFactory, s Store) {
		ctx := context.Background()
		_, err := s.CreateProject(ctx, sampleInput("Foo"))
		require.NoError(t, err)

		_, err = s.GetProjectBySlug(ctx, "foo")
		assert.True(t, errs.IsNotFound(err))
	})
}

func TestListProjectsAscendingID(t *testing.T) {
	forEachStore(t, func(t *testing.T, _ storeFactory, s Store) {
		ctx := context.Background()

		empty, err := s.ListProjects(ctx)
		require.NoError(t, err)
		assert.NotNil(t, empty)
		assert.Empty(t, empty)

		for _, slug := range []string{"c", "a", "b", "d"} {
			_, err := s.CreateProject(ctx, sampleInput(slug))
			require.NoError(t, err)
		}
		require.NoError(t, s.DeleteProject(ctx, 2))

		projects, err := s.ListProjects(ctx)
		require.NoError(t, err)
		require.Len(t, projects, 3)

		var ids []int64
		var slugs []string
		for _, p := range projects {
			ids = append(ids, p.ID)
			slugs = append(slugs, p.Slug)
		}
		assert.Equal(t, []int64{1, 3, 4}, ids)
		assert.Equal(t, []string{"c", "b", "d"}, slugs)
	})
}

func TestUpdateProject(t *testing.T) {
	forEachStore(t, func(t *testing.T, _ storeFactory, s Store) {
		ctx := context.Background()
		image := "https://cdn.example.com/old.png"
		in := sampleInput("old")
		in.ImageURL = &image
		in.Tags = models.StringList{"a", "b"}

		created, err := s.CreateProject(ctx, in)
		require.NoError(t, err)

		time.Sleep(5 * time.Millisecond)

		replacement := sampleInput("new")
		replacement.Title = "Renamed"
		replacement.Results = models.StringList{"b", "a"}

		updated, err := s.UpdateProject(ctx, created.ID, replacement)
		require.NoError(t, err)
		assert.Equal(t, created.ID, updated.ID)
		assertSameFields(t, replacement, updated)
		assert.Nil(t, updated.ImageURL, "full replacement clears omitted optional fields")
		assert.Empty(t, updated.Tags)

		got, err := s.GetProjectByID(ctx, created.ID)
		require.NoError(t, err)
		assertSameFields(t, replacement, got)
		assert.WithinDuration(t, created.CreatedAt, got.CreatedAt, time.Millisecond)
		assert.False(t, got.UpdatedAt.Before(created.UpdatedAt))

		_, err = s.GetProjectBySlug(ctx, "old")
		assert.True(t, errs.IsNotFound(err))
	})
}

func TestUpdateMissingProject(t *testing.T) {
	forEachStore(t, func(t *testing.T, _ storeFactory, s Store) {
		_, err := s.UpdateProject(context.Background(), 999, sampleInput("ghost"))
		require.Error(t, err)
		assert.True(t, errs.IsNotFound(err))

		projects, err := s.ListProjects(context.Background())
		require.NoError(t, err)
		assert.Empty(t, projects)
	})
}

func TestDeleteIsIdempotent(t *testing.T) {
	forEachStore(t, func(t *testing.T, _ storeFactory, s Store) {
		ctx := context.Background()

		assert.NoError(t, s.DeleteProject(ctx, 999))

		created, err := s.CreateProject(ctx, sampleInput("gone"))
		require.NoError(t, err)

		assert.NoError(t, s.DeleteProject(ctx, created.ID))
		assert.NoError(t, s.DeleteProject(ctx, created.ID))

		_, err = s.GetProjectByID(ctx, created.ID)
		assert.True(t, errs.IsNotFound(err))
	})
}

func TestDuplicateSlug(t *testing.T) {
	forEachStore(t, func(t *testing.T, f storeFactory, s Store) {
		ctx := context.Background()
		first, err := s.CreateProject(ctx, sampleInput("dup"))
		require.NoError(t, err)

		second, err := s.CreateProject(ctx, sampleInput("dup"))
		if f.uniqueSlugs {
			require.Error(t, err)
			assert.True(t, errs.IsConflict(err))
			assert.False(t, errs.IsStorageFailure(err))
			return
		}
		require.NoError(t, err)
		assert.NotEqual(t, first.ID, second.ID)

		got, err := s.GetProjectBySlug(ctx, "dup")
		require.NoError(t, err)
		assert.Equal(t, first.ID, got.ID, "lowest id wins")
	})
}

func TestUpdateToTakenSlugConflicts(t *testing.T) {
	forEachStore(t, func(t *testing.T, f storeFactory, s Store) {
		if !f.uniqueSlugs {
			t.Skip("adapter does not enforce slug uniqueness")
		}
		ctx := context.Background()
		_, err := s.CreateProject(ctx, sampleInput("taken"))
		require.NoError(t, err)
		other, err := s.CreateProject(ctx, sampleInput("other"))
		require.NoError(t, err)

		_, err = s.UpdateProject(ctx, other.ID, sampleInput("taken"))
		require.Error(t, err)
		assert.True(t, errs.IsConflict(err))
	})
}

func TestProfileDefaultsAfterInit(t *testing.T) {
	forEachStore(t, func(t *testing.T, _ storeFactory, s Store) {
		profile, err := s.GetProfile(context.Background())
		require.NoError(t, err)
		require.NotNil(t, profile.Name)
		assert.Equal(t, models.DefaultProfileName, *profile.Name)
		require.NotNil(t, profile.TelegramURL)
		assert.Equal(t, models.DefaultProfileTelegramURL, *profile.TelegramURL)
		assert.Nil(t, profile.PhotoURL)
	})
}

func TestInitKeepsExistingProfile(t *testing.T) {
	forEachStore(t, func(t *testing.T, _ storeFactory, s Store) {
		ctx := context.Background()
		name := "Jane"
		_, err := s.UpdateProfile(ctx, models.ProfileInput{Name: &name})
		require.NoError(t, err)

		require.NoError(t, s.Init(ctx))

		profile, err := s.GetProfile(ctx)
		require.NoError(t, err)
		require.NotNil(t, profile.Name)
		assert.Equal(t, "Jane", *profile.Name)
	})
}

func TestUpdateProfileReplacesAllFields(t *testing.T) {
	forEachStore(t, func(t *testing.T, _ storeFactory, s Store) {
		ctx := context.Background()
		name := "X"
		about := "Line one\nLine two"
		cv := "https://cdn.example.com/cv.pdf"

		updated, err := s.UpdateProfile(ctx, models.ProfileInput{Name: &name, About: &about, CVURL: &cv})
		require.NoError(t, err)
		require.NotNil(t, updated.UpdatedAt)

		profile, err := s.GetProfile(ctx)
		require.NoError(t, err)
		require.NotNil(t, profile.Name)
		assert.Equal(t, "X", *profile.Name)
		require.NotNil(t, profile.About)
		assert.Equal(t, about, *profile.About)
		assert.Equal(t, cv, *profile.CVURL)
		assert.Nil(t, profile.TelegramURL, "default telegram link is replaced, not merged")
		assert.Nil(t, profile.PhotoURL)
	})
}

func TestProfileBeforeInit(t *testing.T) {
	ctx := context.Background()

	t.Run("memory", func(t *testing.T) {
		s := NewMemoryStore()
		profile, err := s.GetProfile(ctx)
		require.NoError(t, err)
		assert.Nil(t, profile.Name)
	})

	t.Run("kv", func(t *testing.T) {
		kv := NewGormKV(openTestDB(t))
		require.NoError(t, kv.Migrate(ctx))
		s := NewKVStore(kv)

		profile, err := s.GetProfile(ctx)
		require.NoError(t, err)
		assert.Nil(t, profile.Name)

		name := "X"
		_, err = s.UpdateProfile(ctx, models.ProfileInput{Name: &name})
		require.NoError(t, err)

		profile, err = s.GetProfile(ctx)
		require.NoError(t, err)
		require.NotNil(t, profile.Name)
		assert.Equal(t, "X", *profile.Name)
		assert.Nil(t, profile.PhotoURL)
		assert.Nil(t, profile.About)
		assert.Nil(t, profile.TelegramURL)
		assert.Nil(t, profile.CVURL)
	})
}

func TestSQLStoreProfileRequiresInit(t *testing.T) {
	ctx := context.Background()
	s := NewSQLStore(openTestDB(t))

	_, err := s.GetProfile(ctx)
	assert.True(t, errs.IsStorageFailure(err))

	require.NoError(t, s.Init(ctx))
	profile, err := s.GetProfile(ctx)
	require.NoError(t, err)
	require.NotNil(t, profile.Name)
	assert.Equal(t, models.DefaultProfileName, *profile.Name)
}

func TestReturnedRecordsAreCopies(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	in := sampleInput("copy")
	in.Tags = models.StringList{"a"}

	created, err := s.CreateProject(ctx, in)
	require.NoError(t, err)
	created.Tags[0] = "mutated"
	in.Tags[0] = "mutated too"

	got, err := s.GetProjectByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StringList{"a"}, got.Tags)
}

func TestSeedDemoProjects(t *testing.T) {
	forEachStore(t, func(t *testing.T, _ storeFactory, s Store) {
		ctx := context.Background()

		created, err := SeedDemoProjects(ctx, s)
		require.NoError(t, err)
		assert.Equal(t, len(DemoProjects()), created)

		created, err = SeedDemoProjects(ctx, s)
		require.NoError(t, err)
		assert.Zero(t, created)

		komus, err := s.GetProjectBySlug(ctx, "komus")
		require.NoError(t, err)
		assert.Len(t, komus.Results, 4)
		assert.Contains(t, komus.Tags, "B2B")
	})
}

func TestNewSelectsAdapter(t *testing.T) {
	s, err := New(config.Config{StoreDriver: config.StoreMemory})
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, s)

	dbCfg := config.Database{Driver: config.DBDriverSQLite, SQLitePath: filepath.Join(t.TempDir(), "kv.db")}
	s, err = New(config.Config{StoreDriver: config.StoreKV, Database: dbCfg})
	require.NoError(t, err)
	assert.IsType(t, &KVStore{}, s)
	require.NoError(t, s.Close())

	_, err = New(config.Config{StoreDriver: "redis"})
	require.Error(t, err)
	assert.True(t, errs.IsConfigError(err))
}

func TestColumnMismatches(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	store := NewSQLStore(db)
	require.NoError(t, store.Init(ctx))

	report, err := ColumnMismatches(ctx, db)
	require.NoError(t, err)
	assert.Empty(t, report)

	require.NoError(t, db.Exec("ALTER TABLE projects ADD COLUMN legacy_rank integer").Error)

	report, err = ColumnMismatches(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, map[string][]string{"projects": {"legacy_rank"}}, report)
}
