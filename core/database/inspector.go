package database

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// MissingColumns reports which of the expected columns are absent from a table.
// A missing table reports every expected column.
func MissingColumns(db *gorm.DB, tableName string, expected []string) ([]string, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}

	if !db.Migrator().HasTable(tableName) {
		return append([]string(nil), expected...), nil
	}

	columnTypes, err := db.Migrator().ColumnTypes(tableName)
	if err != nil {
		return nil, fmt.Errorf("failed to get columns for table %s: %w", tableName, err)
	}

	present := make(map[string]struct{}, len(columnTypes))
	for _, col := range columnTypes {
		present[strings.ToLower(col.Name())] = struct{}{}
	}

	var missing []string
	for _, name := range expected {
		if _, ok := present[strings.ToLower(name)]; !ok {
			missing = append(missing, name)
		}
	}
	return missing, nil
}
