package migration

import (
	"embed"
	"fmt"
	"io/fs"
	"path/filepath"
	"sync"

	"github.com/pressly/goose/v3"
	"gorm.io/gorm"

	"github.com/reelpop-inc/reelpop/internal/shared/logger"
)

//go:embed scripts
var scripts embed.FS

// goose keeps its base FS and dialect in package state.
var gooseMu sync.Mutex

// Strategy defines the interface for different migration strategies
type Strategy interface {
	Migrate(db *gorm.DB) error
	GetName() string
}

// GormAutoMigrateStrategy creates tables from the persistence models. It
// never drops columns, which makes it suitable for development and tests.
type GormAutoMigrateStrategy struct {
	logger logger.Interface
}

func NewGormAutoMigrateStrategy() Strategy {
	return &GormAutoMigrateStrategy{
		logger: logger.WithComponent("migration.automigrate"),
	}
}

func (s *GormAutoMigrateStrategy) Migrate(db *gorm.DB) error {
	models := Models()
	s.logger.Infow("starting gorm auto migration", "models_count", len(models))
	if err := db.AutoMigrate(models...); err != nil {
		return fmt.Errorf("failed to auto migrate: %w", err)
	}
	return nil
}

func (s *GormAutoMigrateStrategy) GetName() string {
	return "gorm_auto_migrate"
}

// GooseStrategy applies the versioned SQL scripts embedded in the binary.
type GooseStrategy struct {
	dialect string
	dir     string
	logger  logger.Interface
}

// NewGooseStrategy selects the script set for the database driver.
func NewGooseStrategy(driver string) (*GooseStrategy, error) {
	dialect, dir, err := scriptSet(driver)
	if err != nil {
		return nil, err
	}
	return &GooseStrategy{
		dialect: dialect,
		dir:     dir,
		logger:  logger.WithComponent("migration.goose"),
	}, nil
}

func scriptSet(driver string) (dialect, dir string, err error) {
	switch driver {
	case "", "mysql":
		return "mysql", "scripts/mysql", nil
	case "postgres", "postgresql":
		return "postgres", "scripts/postgres", nil
	default:
		return "", "", fmt.Errorf("unsupported database driver for migrations: %s", driver)
	}
}

func (s *GooseStrategy) GetName() string {
	return "goose"
}

// run prepares goose's package state and calls fn with the raw connection.
func (s *GooseStrategy) run(db *gorm.DB, fn func(*gooseConn) error) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(scripts)
	defer goose.SetBaseFS(nil)
	if err := goose.SetDialect(s.dialect); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}
	return fn(&gooseConn{db: sqlDB, dir: s.dir})
}

func (s *GooseStrategy) Migrate(db *gorm.DB) error {
	s.logger.Infow("starting goose migration", "dialect", s.dialect)

	return s.run(db, func(c *gooseConn) error {
		from, err := goose.GetDBVersion(c.db)
		if err != nil {
			return fmt.Errorf("failed to get current version: %w", err)
		}
		if err := goose.Up(c.db, c.dir); err != nil {
			s.logger.Errorw("migration failed", "error", err)
			return fmt.Errorf("failed to run migrations: %w", err)
		}
		to, err := goose.GetDBVersion(c.db)
		if err != nil {
			return fmt.Errorf("failed to get final version: %w", err)
		}

		s.logger.Infow("migration completed successfully",
			"from_version", from,
			"to_version", to)
		return nil
	})
}

func (s *GooseStrategy) MigrateDown(db *gorm.DB, steps int) error {
	s.logger.Infow("starting down migration", "steps", steps)

	return s.run(db, func(c *gooseConn) error {
		for i := 0; i < steps; i++ {
			if err := goose.Down(c.db, c.dir); err != nil {
				return fmt.Errorf("failed to run down migration: %w", err)
			}
		}
		return nil
	})
}

func (s *GooseStrategy) GetVersion(db *gorm.DB) (int64, error) {
	var version int64
	err := s.run(db, func(c *gooseConn) error {
		v, err := goose.GetDBVersion(c.db)
		version = v
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("failed to get version: %w", err)
	}
	return version, nil
}

func (s *GooseStrategy) Status(db *gorm.DB) error {
	return s.run(db, func(c *gooseConn) error {
		return goose.Status(c.db, c.dir)
	})
}

// Create writes a new numbered SQL script for the strategy's dialect under
// root, which must point at the migration package directory in a checkout.
func (s *GooseStrategy) Create(root, name string) error {
	dir := filepath.Join(root, filepath.FromSlash(s.dir))

	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(nil)
	goose.SetSequential(true)
	defer goose.SetSequential(false)

	if err := goose.Create(nil, dir, name, "sql"); err != nil {
		return fmt.Errorf("failed to create migration: %w", err)
	}
	s.logger.Infow("migration script created", "dir", dir, "name", name)
	return nil
}

// ScriptNames lists the embedded scripts for the strategy's dialect.
func (s *GooseStrategy) ScriptNames() ([]string, error) {
	entries, err := fs.ReadDir(scripts, s.dir)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names, nil
}
