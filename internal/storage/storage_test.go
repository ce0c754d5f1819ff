package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocal(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	l := NewLocal(dir, "http://localhost:8081/")

	img, err := l.Upload(ctx, []byte("gif89a"), "Kofi.GIF")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(img.URL, "http://localhost:8081/images/"))
	assert.True(t, strings.HasSuffix(img.ID, ".gif"))

	data, err := os.ReadFile(filepath.Join(dir, img.ID))
	require.NoError(t, err)
	assert.Equal(t, "gif89a", string(data))

	require.NoError(t, l.Delete(ctx, img.ID))
	_, err = os.Stat(filepath.Join(dir, img.ID))
	assert.True(t, os.IsNotExist(err))

	assert.NoError(t, l.Delete(ctx, img.ID))
	assert.NoError(t, l.Delete(ctx, "../etc/passwd"))
}
