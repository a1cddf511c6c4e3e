package database

import (
	"context"
	"fmt"

	"github.com/rpupo63/portfolio-backend/config"
	"github.com/rpupo63/portfolio-backend/errs"
	"github.com/rpupo63/portfolio-backend/models"
	"gorm.io/gorm"
)

// SQLStore is the relational Store. Slug uniqueness is enforced by a unique
// index and list fields are stored as JSON array columns.
type SQLStore struct {
	db          *gorm.DB
	projectRepo *ProjectRepo
	profileRepo *ProfileRepo
}

// NewSQLStore initializes a store with each repository sharing one GORM instance
func NewSQLStore(db *gorm.DB) *SQLStore {
	return &SQLStore{
		db:          db,
		projectRepo: NewProjectRepo(db),
		profileRepo: NewProfileRepo(db),
	}
}

// Init creates both tables and the default profile row in one transaction.
func (s *SQLStore) Init(ctx context.Context) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.AutoMigrate(&models.Project{}, &models.Profile{}); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
		return s.profileRepo.ensureDefault(tx)
	})
	if err != nil {
		return errs.NewTransactionFailedError("initialize database", err)
	}
	logColumnMismatches(ctx, s.db)
	return nil
}

func (s *SQLStore) ListProjects(ctx context.Context) ([]models.Project, error) {
	return s.projectRepo.FindAll(ctx)
}

func (s *SQLStore) GetProjectBySlug(ctx context.Context, slug string) (*models.Project, error) {
	return s.projectRepo.FindBySlug(ctx, slug)
}

func (s *SQLStore) GetProjectByID(ctx context.Context, id int64) (*models.Project, error) {
	return s.projectRepo.FindByID(ctx, id)
}

func (s *SQLStore) CreateProject(ctx context.Context, in models.ProjectInput) (*models.Project, error) {
	project := newProject(in)
	if err := s.projectRepo.Add(ctx, &project); err != nil {
		return nil, err
	}
	return &project, nil
}

func (s *SQLStore) UpdateProject(ctx context.Context, id int64, in models.ProjectInput) (*models.Project, error) {
	return s.projectRepo.Replace(ctx, id, in)
}

func (s *SQLStore) DeleteProject(ctx context.Context, id int64) error {
	return s.projectRepo.Delete(ctx, id)
}

func (s *SQLStore) GetProfile(ctx context.Context) (*models.Profile, error) {
	return s.profileRepo.Find(ctx)
}

func (s *SQLStore) UpdateProfile(ctx context.Context, in models.ProfileInput) (*models.Profile, error) {
	return s.profileRepo.Replace(ctx, in)
}

func (s *SQLStore) Close() error {
	return closeDB(s.db)
}

func closeDB(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// New opens the store selected by cfg.StoreDriver. Init is not called.
func New(cfg config.Config) (Store, error) {
	switch cfg.StoreDriver {
	case config.StoreMemory:
		return NewMemoryStore(), nil
	case config.StorePostgres:
		db, err := Open(cfg.Database)
		if err != nil {
			return nil, err
		}
		return NewSQLStore(db), nil
	case config.StoreKV:
		db, err := Open(cfg.Database)
		if err != nil {
			return nil, err
		}
		return NewKVStore(NewGormKV(db)), nil
	default:
		return nil, errs.NewConfigInvalidError("STORE_DRIVER", cfg.StoreDriver)
	}
}
