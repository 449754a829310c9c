package jsonfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

type doc struct {
	Title string   `json:"title"`
	Tags  []string `json:"tags"`
}

func TestWriteAtomicAndRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.json")
	in := doc{Title: "Оплата <картой> & счёт", Tags: []string{"a"}}

	require.NoError(t, WriteAtomic(path, in))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(raw), "Оплата <картой> & счёт")
	require.Contains(t, string(raw), "\n  \"tags\": [")

	var out doc
	require.NoError(t, Read(path, &out))
	require.Equal(t, in, out)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	require.Len(t, entries, 1)
}

func TestReadErrors(t *testing.T) {
	dir := t.TempDir()
	var out doc
	require.ErrorIs(t, Read(filepath.Join(dir, "missing.json"), &out), os.ErrNotExist)

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{"), 0o644))
	require.Error(t, Read(bad, &out))
}
