package filestore

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalExistsAndRemove(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "proofs/42.pdf", []byte("pdf"), 0o644))
	store := New(fs)

	for _, ref := range []string{
		"proofs/42.pdf",
		"/uploads/proofs/42.pdf",
		"https://cdn.example.com/uploads/proofs/42.pdf",
	} {
		ok, err := store.Exists(ref)
		require.NoError(t, err)
		assert.True(t, ok, ref)
	}

	require.NoError(t, store.Remove("/uploads/proofs/42.pdf"))

	ok, err := store.Exists("proofs/42.pdf")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLocalConfinesPathsToRoot(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "secret.txt", []byte("x"), 0o644))
	store := New(fs)

	ok, err := store.Exists("../../secret.txt")
	require.NoError(t, err)
	assert.True(t, ok, "traversal collapses inside the root")

	ok, err = store.Exists("")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLocalRemoveMissing(t *testing.T) {
	store := New(afero.NewMemMapFs())
	assert.Error(t, store.Remove("gone.png"))
}
