package storage

import (
	"context"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStore_SaveOpenDelete(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "public")
	s := NewLocalStore(dir)

	p, err := s.Save(ctx, "invoice.pdf", strings.NewReader("pdf-bytes"))
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(p, "_invoice.pdf"))
	assert.Equal(t, "invoice.pdf", OriginalName(p))

	rc, err := s.Open(ctx, p)
	require.NoError(t, err)
	body, err := io.ReadAll(rc)
	rc.Close()
	require.NoError(t, err)
	assert.Equal(t, "pdf-bytes", string(body))

	require.NoError(t, s.Delete(ctx, p))
	require.NoError(t, s.Delete(ctx, p))

	_, err = s.Open(ctx, p)
	assert.ErrorIs(t, err, ErrNotExist)
}

func TestLocalStore_SameNameDoesNotCollide(t *testing.T) {
	s := NewLocalStore(t.TempDir())
	a, err := s.Save(context.Background(), "bl.pdf", strings.NewReader("a"))
	require.NoError(t, err)
	b, err := s.Save(context.Background(), "bl.pdf", strings.NewReader("b"))
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestLocalStore_RejectsPathsOutsideDir(t *testing.T) {
	s := NewLocalStore(t.TempDir())
	_, err := s.Open(context.Background(), "/etc/passwd")
	assert.Error(t, err)
	assert.Error(t, s.Delete(context.Background(), filepath.Join(s.Dir, "..", "x")))
}

func TestUniqueName_StripsDirectories(t *testing.T) {
	n := UniqueName("../../etc/passwd")
	assert.True(t, strings.HasSuffix(n, "_passwd"))
	assert.NotContains(t, n, "/")
	assert.Equal(t, "plain.txt", OriginalName("plain.txt"))
}
