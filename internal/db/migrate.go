package db

import (
	"context"
	_ "embed"
	"fmt"
	"strings"
	"time"
)

//go:embed sql/pre_automigrate.sql
var preAutoMigrateSQL string

//go:embed sql/post_automigrate.sql
var postAutoMigrateSQL string

type migrationStep struct {
	label string
	run   func(ctx context.Context) error
}

// migrate creates the textlens schema, then lets gorm create or extend the
// run tables, then adds the indexes gorm tags cannot express.
func (p *Pool) migrate(ctx context.Context) error {
	if p == nil || p.gdb == nil {
		return fmt.Errorf("database pool is not initialized")
	}

	steps := []migrationStep{
		{label: "pre-auto-migrate", run: p.execSQL(preAutoMigrateSQL)},
		{label: "auto-migrate", run: func(ctx context.Context) error {
			return p.gdb.WithContext(ctx).AutoMigrate(autoMigrateModels()...)
		}},
		{label: "post-auto-migrate", run: p.execSQL(postAutoMigrateSQL)},
	}

	for _, step := range steps {
		started := time.Now()
		if err := step.run(ctx); err != nil {
			return fmt.Errorf("%s: %w", step.label, err)
		}
		p.logger.Debug().Str("step", step.label).Dur("elapsed", time.Since(started)).Msg("migration step complete")
	}
	return nil
}

func (p *Pool) execSQL(sqlText string) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		trimmed := strings.TrimSpace(sqlText)
		if trimmed == "" {
			return nil
		}
		return p.gdb.WithContext(ctx).Exec(trimmed).Error
	}
}
