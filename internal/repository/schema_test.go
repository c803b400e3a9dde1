package repository

import (
	"os"
	"reflect"
	"strings"
	"testing"

	"github.com/taskhive/backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// schemaColumns pulls the column names out of a CREATE TABLE block.
func schemaColumns(t *testing.T, schema string, table string) map[string]bool {
	t.Helper()

	marker := "CREATE TABLE " + table + " ("
	start := strings.Index(schema, marker)
	require.NotEqual(t, -1, start, "table %s not found in schema", table)

	block := schema[start+len(marker):]
	end := strings.Index(block, ");")
	require.NotEqual(t, -1, end, "table %s is not terminated", table)
	block = block[:end]

	columns := make(map[string]bool)
	for _, line := range strings.Split(block, "\n") {
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		switch fields[0] {
		case "KEY", "UNIQUE", "PRIMARY", "CONSTRAINT":
			continue
		}
		columns[fields[0]] = true
	}
	return columns
}

func dbTags(entity interface{}) []string {
	var tags []string
	typ := reflect.TypeOf(entity)
	for i := 0; i < typ.NumField(); i++ {
		tag := typ.Field(i).Tag.Get("db")
		if tag == "" || tag == "-" {
			continue
		}
		tags = append(tags, tag)
	}
	return tags
}

// Every db-mapped struct field must have a backing column, otherwise the
// SELECT lists in this package fail with an unknown-column error at runtime.
func TestSchemaCoversMappedColumns(t *testing.T) {
	raw, err := os.ReadFile("../../migrations/schema.sql")
	require.NoError(t, err)
	schema := string(raw)

	cases := []struct {
		table  string
		entity interface{}
	}{
		{"users", domain.User{}},
		{"email_verification", domain.EmailVerification{}},
		{"password_reset", domain.PasswordReset{}},
		{"refresh_session", domain.RefreshSession{}},
		{"tasks_detail", domain.Task{}},
		{"task_tags", domain.Tag{}},
		{"task_requirements", domain.Requirement{}},
		{"specialties", domain.Specialty{}},
	}

	for _, tc := range cases {
		t.Run(tc.table, func(t *testing.T) {
			columns := schemaColumns(t, schema, tc.table)
			for _, tag := range dbTags(tc.entity) {
				assert.Contains(t, columns, tag, "column %s missing from table %s", tag, tc.table)
			}
		})
	}
}
