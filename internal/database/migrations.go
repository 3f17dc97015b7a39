package database

import (
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type indexSpec struct {
	table   string
	name    string
	columns string
}

// dashboardIndexes back the counting queries issued by the dashboard reports.
var dashboardIndexes = []indexSpec{
	{"tasks", "idx_tasks_project_status", "project_id, status"},
	{"tasks", "idx_tasks_status", "status"},
	{"tasks", "idx_tasks_deadline", "deadline"},
	{"task_assignees", "idx_task_assignees_user_id", "user_id"},
	{"project_members", "idx_project_members_user_id", "user_id"},
	{"projects", "idx_projects_status", "status"},
}

// AddIndexes creates the dashboard indexes that do not exist yet.
func AddIndexes(db *gorm.DB, log *zap.Logger) error {
	migrator := db.Migrator()

	for _, idx := range dashboardIndexes {
		if migrator.HasIndex(idx.table, idx.name) {
			log.Debug("Index already exists, skipping", zap.String("index", idx.name))
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}

		log.Info("Created index",
			zap.String("index", idx.name),
			zap.String("table", idx.table),
			zap.String("columns", idx.columns),
		)
	}

	return nil
}

// MigrateDatabase runs the schema migration followed by index creation.
func MigrateDatabase(db *gorm.DB, log *zap.Logger) error {
	log.Info("Running database migrations...")
	if err := Migrate(db); err != nil {
		return err
	}

	if err := AddIndexes(db, log); err != nil {
		return fmt.Errorf("failed to add indexes: %w", err)
	}

	log.Info("Database migrations completed")
	return nil
}
