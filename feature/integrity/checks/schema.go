package checks

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"asset-janitor/core/database"

	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// SchemaReport strictly types the result of a schema check.
type SchemaReport struct {
	Matched bool                   `json:"matched"`
	Tables  map[string]TableReport `json:"tables"`
	Errors  []string               `json:"errors"`
}

type TableReport struct {
	MissingColumns []string `json:"missing_columns"`
	TypeMismatches []string `json:"type_mismatches"`
	Status         string   `json:"status"` // "ok", "error"
}

// TableExpectation lists the columns a table must carry.
type TableExpectation struct {
	Table   string
	Columns []ColumnExpectation
}

// ColumnExpectation is an expected column. An empty Type skips the type check.
type ColumnExpectation struct {
	Name string
	Type string
}

var schemaCache sync.Map

// ModelExpectation builds the expectation of a GORM model from its parsed schema.
// Only fields with an explicit type tag get a type check.
func ModelExpectation(model any) (TableExpectation, error) {
	s, err := schema.Parse(model, &schemaCache, schema.NamingStrategy{})
	if err != nil {
		return TableExpectation{}, fmt.Errorf("failed to parse model: %w", err)
	}

	exp := TableExpectation{Table: s.Table}
	for _, name := range s.DBNames {
		f := s.FieldsByDBName[name]
		exp.Columns = append(exp.Columns, ColumnExpectation{
			Name: f.DBName,
			Type: f.TagSettings["TYPE"],
		})
	}
	return exp, nil
}

// CheckSchema verifies that the connected database carries the expected tables and columns.
func CheckSchema(db *gorm.DB, tables []TableExpectation) (*SchemaReport, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}

	report := &SchemaReport{
		Tables:  make(map[string]TableReport),
		Matched: true,
		Errors:  []string{},
	}

	for _, exp := range mergeTables(tables) {
		actualCols, err := database.GetTableColumns(db, exp.Table)
		if err != nil {
			report.Errors = append(report.Errors, fmt.Sprintf("Failed to inspect table %s: %v", exp.Table, err))
			report.Matched = false
			continue
		}

		actualMap := make(map[string]database.ColumnInfo, len(actualCols))
		for _, col := range actualCols {
			actualMap[col.Field] = col
		}

		tblReport := TableReport{
			MissingColumns: []string{},
			TypeMismatches: []string{},
			Status:         "ok",
		}

		for _, col := range exp.Columns {
			name := strings.ToLower(col.Name)
			actCol, exists := actualMap[name]
			if !exists {
				tblReport.MissingColumns = append(tblReport.MissingColumns, name)
				tblReport.Status = "error"
				report.Matched = false
				continue
			}

			if col.Type != "" && !sameType(col.Type, actCol.Type) {
				mismatch := fmt.Sprintf("%s: expected %s, got %s", name, strings.ToLower(col.Type), actCol.Type)
				tblReport.TypeMismatches = append(tblReport.TypeMismatches, mismatch)
				tblReport.Status = "error"
				report.Matched = false
			}
		}

		report.Tables[exp.Table] = tblReport
	}

	return report, nil
}

// typeAliases maps a declared type to the name information_schema reports for it.
var typeAliases = map[string]string{
	"varchar": "character varying",
	"char":    "character",
	"int":     "integer",
}

// sameType is a soft comparison: the declared type or its base name must appear in the actual type.
func sameType(expected, actual string) bool {
	expected = strings.ToLower(strings.TrimSpace(expected))
	if strings.Contains(actual, expected) {
		return true
	}
	base := expected
	if idx := strings.Index(base, "("); idx >= 0 {
		base = base[:idx]
	}
	if strings.HasPrefix(actual, base) {
		return true
	}
	alias, ok := typeAliases[base]
	return ok && strings.HasPrefix(actual, alias)
}

// mergeTables folds expectations on the same table together, sorted by table name.
func mergeTables(tables []TableExpectation) []TableExpectation {
	byTable := make(map[string]*TableExpectation)
	var order []string
	for _, t := range tables {
		merged, ok := byTable[t.Table]
		if !ok {
			merged = &TableExpectation{Table: t.Table}
			byTable[t.Table] = merged
			order = append(order, t.Table)
		}
	outer:
		for _, c := range t.Columns {
			for _, existing := range merged.Columns {
				if strings.EqualFold(existing.Name, c.Name) {
					continue outer
				}
			}
			merged.Columns = append(merged.Columns, c)
		}
	}
	sort.Strings(order)

	out := make([]TableExpectation, 0, len(order))
	for _, name := range order {
		out = append(out, *byTable[name])
	}
	return out
}
