package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/honyakun/localdict/internal/config"
	"github.com/honyakun/localdict/internal/database"
)

func TestInitDBAndImport(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "dictionary.db")
	t.Setenv("DICT_DB_PATH", dbPath)
	t.Chdir(dir)

	// initdb creates the store.
	cmd := newInitDBCommand()
	require.NoError(t, cmd.Execute())
	_, err := os.Stat(dbPath)
	require.NoError(t, err)

	// Running it again is a no-op.
	require.NoError(t, newInitDBCommand().Execute())

	// import loads CSV rows, defaulting lemma to surface.
	csvPath := filepath.Join(dir, "dict.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte(
		"word,pos,translation_ja,tags\n사과,noun,りんご,fruit\n물,noun,水,\n",
	), 0o644))

	importCmd := newImportCommand()
	importCmd.SetArgs([]string{csvPath})
	require.NoError(t, importCmd.Execute())

	db, err := database.Open(config.DatabaseConfig{Path: dbPath})
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	var lemmas []string
	require.NoError(t, db.SelectContext(context.Background(), &lemmas, "SELECT lemma FROM dict ORDER BY id"))
	assert.Equal(t, []string{"사과", "물"}, lemmas)
}

func TestImport_RequiresStore(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("DICT_DB_PATH", filepath.Join(dir, "missing.db"))
	t.Chdir(dir)

	cmd := newImportCommand()
	cmd.SetArgs([]string{filepath.Join(dir, "dict.csv")})
	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "run initdb first")
}
