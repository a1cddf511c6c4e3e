package database

import (
	"context"
	"slices"

	"github.com/rpupo63/portfolio-backend/errs"
	"github.com/rpupo63/portfolio-backend/models"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// ColumnMismatches lists, per table, database columns that no model field
// maps to. AutoMigrate never drops columns, so renamed or removed fields
// accumulate here.
func ColumnMismatches(ctx context.Context, db *gorm.DB) (map[string][]string, error) {
	report := map[string][]string{}
	for _, model := range []any{&models.Project{}, &models.Profile{}} {
		stmt := &gorm.Statement{DB: db}
		if err := stmt.Parse(model); err != nil {
			return nil, errs.NewStorageFailure("parse schema of", "model", err)
		}

		columnTypes, err := db.WithContext(ctx).Migrator().ColumnTypes(model)
		if err != nil {
			return nil, errs.NewDatabaseError("read columns of", stmt.Schema.Table, err)
		}

		var extra []string
		for _, col := range columnTypes {
			if !slices.Contains(stmt.Schema.DBNames, col.Name()) {
				extra = append(extra, col.Name())
			}
		}
		if len(extra) > 0 {
			slices.Sort(extra)
			report[stmt.Schema.Table] = extra
		}
	}
	return report, nil
}

func logColumnMismatches(ctx context.Context, db *gorm.DB) {
	report, err := ColumnMismatches(ctx, db)
	if err != nil {
		log.Warn().Err(err).Msg("Column report failed")
		return
	}
	for table, columns := range report {
		log.Warn().Str("table", table).Strs("columns", columns).Msg("Columns not mapped by any model field")
	}
}
