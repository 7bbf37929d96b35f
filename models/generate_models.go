package models

import (
	"fmt"
	"io"
	"reflect"
	"sort"
	"strings"

	"gorm.io/gen"
	"gorm.io/gorm"
)

/*
Column mismatch report

Compares the live schema (created by the SQL migrations) with the column
tags declared on the structs in this package. Run with:

	portfolio column-report

Example output:

	=== COLUMN MISMATCH REPORT ===
	--- Table: blogs ---
	Found 1 columns not accounted for in model:
	  - legacy_views
	=== SUMMARY ===
	Total mismatched columns across all tables: 1
*/

// All lists every persisted model, in migration order.
func All() []any {
	return []any{
		User{},
		Tag{},
		Project{},
		Blog{},
		ProjectTag{},
		BlogTag{},
		ProjectBlog{},
		Activity{},
	}
}

// TableModels maps table names to their model struct.
func TableModels() map[string]any {
	return map[string]any{
		"users":         User{},
		"tags":          Tag{},
		"projects":      Project{},
		"blogs":         Blog{},
		"project_tags":  ProjectTag{},
		"blog_tags":     BlogTag{},
		"project_blogs": ProjectBlog{},
		"activities":    Activity{},
	}
}

// GenerateModels writes typed gorm/gen query helpers for every model into outPath.
func GenerateModels(db *gorm.DB, outPath string) error {
	if err := db.Exec("SELECT 1").Error; err != nil {
		return fmt.Errorf("ping database: %w", err)
	}

	g := gen.NewGenerator(gen.Config{
		OutPath:           outPath,
		Mode:              gen.WithDefaultQuery | gen.WithQueryInterface,
		FieldNullable:     true,
		FieldCoverable:    true,
		FieldWithIndexTag: true,
		FieldWithTypeTag:  true,
	})
	g.UseDB(db)
	g.ApplyBasic(All()...)
	g.Execute()
	return nil
}

// ColumnMismatch lists the database columns of one table that no struct field maps to.
type ColumnMismatch struct {
	Table   string
	Missing []string
	Exists  bool
}

// FindColumnMismatches inspects every table in TableModels.
func FindColumnMismatches(db *gorm.DB) ([]ColumnMismatch, error) {
	tables := TableModels()
	names := make([]string, 0, len(tables))
	for name := range tables {
		names = append(names, name)
	}
	sort.Strings(names)

	report := make([]ColumnMismatch, 0, len(names))
	for _, name := range names {
		dbColumns, exists, err := getTableColumns(db, name)
		if err != nil {
			return nil, err
		}
		report = append(report, ColumnMismatch{
			Table:   name,
			Exists:  exists,
			Missing: findColumnMismatches(dbColumns, getModelFields(tables[name])),
		})
	}
	return report, nil
}

// WriteColumnReport renders the mismatch report in the human format documented above.
func WriteColumnReport(w io.Writer, report []ColumnMismatch) int {
	fmt.Fprintln(w, "=== COLUMN MISMATCH REPORT ===")
	total := 0
	for _, table := range report {
		fmt.Fprintf(w, "\n--- Table: %s ---\n", table.Table)
		switch {
		case !table.Exists:
			fmt.Fprintln(w, "Table does not exist yet (run migrations first)")
		case len(table.Missing) > 0:
			fmt.Fprintf(w, "Found %d columns not accounted for in model:\n", len(table.Missing))
			for _, col := range table.Missing {
				fmt.Fprintf(w, "  - %s\n", col)
			}
			total += len(table.Missing)
		default:
			fmt.Fprintln(w, "All columns are accounted for in the model.")
		}
	}
	fmt.Fprintf(w, "\n=== SUMMARY ===\nTotal mismatched columns across all tables: %d\n", total)
	return total
}

func getTableColumns(db *gorm.DB, tableName string) ([]string, bool, error) {
	var columns []string
	query := `
		SELECT column_name
		FROM information_schema.columns
		WHERE table_name = ?
		AND table_schema = CURRENT_SCHEMA()
		ORDER BY ordinal_position
	`
	if err := db.Raw(query, tableName).Scan(&columns).Error; err != nil {
		return nil, false, fmt.Errorf("query columns for table %s: %w", tableName, err)
	}
	return columns, len(columns) > 0, nil
}

// getModelFields extracts the column names declared in gorm tags
func getModelFields(model any) []string {
	var fields []string
	t := reflect.TypeOf(model)

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if field.Anonymous {
			continue
		}
		if column := extractColumnNameFromGormTag(field.Tag.Get("gorm")); column != "" {
			fields = append(fields, column)
		}
	}
	return fields
}

func extractColumnNameFromGormTag(gormTag string) string {
	for _, part := range strings.Split(gormTag, ";") {
		part = strings.TrimSpace(part)
		if strings.HasPrefix(part, "column:") {
			return strings.TrimPrefix(part, "column:")
		}
	}
	return ""
}

func findColumnMismatches(dbColumns, modelFields []string) []string {
	modelFieldSet := make(map[string]bool, len(modelFields))
	for _, field := range modelFields {
		modelFieldSet[field] = true
	}

	var mismatches []string
	for _, col := range dbColumns {
		if !modelFieldSet[col] {
			mismatches = append(mismatches, col)
		}
	}
	return mismatches
}
