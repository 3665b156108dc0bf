// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package migration_test

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/mangashelf/internal/platform/migration"
	"github.com/taibuivan/mangashelf/migrations"
)

func TestToPgx5DSN(t *testing.T) {
	assert.Equal(t, "pgx5://u:p@h:5432/db", migration.ToPgx5DSN("postgres://u:p@h:5432/db"))
	assert.Equal(t, "pgx5://h/db", migration.ToPgx5DSN("postgresql://h/db"))
	assert.Equal(t, "pgx5://h/db", migration.ToPgx5DSN("pgx5://h/db"))
	assert.Equal(t, "host=h dbname=db", migration.ToPgx5DSN("host=h dbname=db"))
}

/*
TestEmbeddedMigrations_Paired verifies every up file ships with its down file.
*/
func TestEmbeddedMigrations_Paired(t *testing.T) {
	entries, err := fs.ReadDir(migrations.FS, ".")
	require.NoError(t, err)

	ups, downs := map[string]bool{}, map[string]bool{}
	for _, entry := range entries {
		name := entry.Name()
		switch {
		case strings.HasSuffix(name, ".up.sql"):
			ups[strings.TrimSuffix(name, ".up.sql")] = true
		case strings.HasSuffix(name, ".down.sql"):
			downs[strings.TrimSuffix(name, ".down.sql")] = true
		}
	}

	require.NotEmpty(t, ups)
	assert.Equal(t, ups, downs)
}
