package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/modkit/pkg/config"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestLoad(t *testing.T) {
	t.Parallel()

	t.Run("empty directory yields a valid empty store", func(t *testing.T) {
		t.Parallel()

		store, err := config.Load(config.WithDir(t.TempDir()))
		require.NoError(t, err)
		require.Equal(t, "", store.Get("anything.at.all"))
	})

	t.Run("merges yaml and env with env winning at top level", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeFile(t, dir, "config.yaml", "PORT: 3000\ndatabase:\n  host: localhost\n  port: 5432\n")
		writeFile(t, dir, ".env", "PORT=8080\n")

		store, err := config.Load(config.WithDir(dir))
		require.NoError(t, err)

		require.Equal(t, "8080", store.Get("PORT"))
		require.Equal(t, "localhost", store.Get("database.host"))
		require.Equal(t, 5432, store.Get("database.port"))
	})

	t.Run("mode variant shadows base file", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeFile(t, dir, "config.yaml", "name: base\nkeep: yes\n")
		writeFile(t, dir, "config.test.yaml", "name: test-override\n")
		writeFile(t, dir, ".env", "SECRET=default\n")
		writeFile(t, dir, ".env.test", "SECRET=test-secret\n")

		store, err := config.Load(config.WithDir(dir), config.WithMode(config.ModeTest))
		require.NoError(t, err)

		require.Equal(t, "test-override", store.Get("name"))
		require.Equal(t, "test-secret", store.Get("SECRET"))
		require.NotEqual(t, "", store.Get("keep"))
	})

	t.Run("malformed env line fails loudly", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeFile(t, dir, ".env", "JUSTAKEY\n")

		_, err := config.Load(config.WithDir(dir))
		require.ErrorIs(t, err, config.ErrMalformedEnvLine)
	})
}

func TestStore_Get(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "config.yaml", `
server:
  http:
    addr: ":8080"
flags:
  - a
  - b
`)

	store, err := config.Load(config.WithDir(dir))
	require.NoError(t, err)

	t.Run("nested hit", func(t *testing.T) {
		t.Parallel()
		require.Equal(t, ":8080", store.Get("server.http.addr"))
	})

	t.Run("missing leaf returns empty string", func(t *testing.T) {
		t.Parallel()
		require.Equal(t, "", store.Get("server.http.port"))
	})

	t.Run("missing root returns empty string", func(t *testing.T) {
		t.Parallel()
		require.Equal(t, "", store.Get("nope.nope.nope"))
	})

	t.Run("descending into a scalar returns empty string", func(t *testing.T) {
		t.Parallel()
		require.Equal(t, "", store.Get("server.http.addr.deeper"))
	})

	t.Run("descending into a list returns empty string", func(t *testing.T) {
		t.Parallel()
		require.Equal(t, "", store.Get("flags.0"))
	})

	t.Run("empty path returns empty string", func(t *testing.T) {
		t.Parallel()
		require.Equal(t, "", store.Get(""))
	})
}

func TestEnvInterpolation(t *testing.T) {
	t.Parallel()

	t.Run("references resolve against earlier keys", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeFile(t, dir, ".env", "A=1\nB=${A}2\n")

		store, err := config.Load(config.WithDir(dir))
		require.NoError(t, err)
		require.Equal(t, "12", store.Get("B"))
	})

	t.Run("unknown reference keeps literal text", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeFile(t, dir, ".env", "C=${UNSET}\n")

		store, err := config.Load(config.WithDir(dir))
		require.NoError(t, err)
		require.Equal(t, "${UNSET}", store.Get("C"))
	})

	t.Run("chained references resolve fully", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeFile(t, dir, ".env", "HOST=db.internal\nPORT=5432\nURL=postgres://${HOST}:${PORT}/app\n")

		store, err := config.Load(config.WithDir(dir))
		require.NoError(t, err)
		require.Equal(t, "postgres://db.internal:5432/app", store.Get("URL"))
	})

	t.Run("self reference terminates with literal text", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeFile(t, dir, ".env", "LOOP=${LOOP}\n")

		store, err := config.Load(config.WithDir(dir))
		require.NoError(t, err)
		require.Equal(t, "${LOOP}", store.Get("LOOP"))
	})

	t.Run("comments and quoted values", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeFile(t, dir, ".env", "# comment line\n\nNAME=\"quoted value\"\nALIAS='${NAME}'\n")

		store, err := config.Load(config.WithDir(dir))
		require.NoError(t, err)
		require.Equal(t, "quoted value", store.Get("NAME"))
		require.Equal(t, "quoted value", store.Get("ALIAS"))
	})
}

func TestStore_GetString(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "config.yaml", "port: 8080\nname: svc\nempty:\n")

	store, err := config.Load(config.WithDir(dir))
	require.NoError(t, err)

	require.Equal(t, "8080", store.GetString("port"))
	require.Equal(t, "svc", store.GetString("name"))
	require.Equal(t, "", store.GetString("missing"))
	require.Equal(t, "", store.GetString("empty"))
}
