package system

import (
	"image"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isPNG(name string) bool { return strings.HasSuffix(name, ".png") }

func TestFindLatestImage(t *testing.T) {
	dir := t.TempDir()
	names := []string{"old.png", "new.png", "newest.txt"}
	for i, n := range names {
		p := filepath.Join(dir, n)
		require.NoError(t, os.WriteFile(p, []byte("x"), 0644))
		mod := time.Now().Add(time.Duration(i) * time.Hour)
		require.NoError(t, os.Chtimes(p, mod, mod))
	}

	latest, err := FindLatestImage(dir, isPNG)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "new.png"), latest)

	latest, err = FindLatestImage(filepath.Join(dir, "old.png"), isPNG)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "new.png"), latest, "a file path searches its directory")

	_, err = FindLatestImage(t.TempDir(), isPNG)
	assert.Error(t, err)
}

func TestDefaultWorkers(t *testing.T) {
	assert.GreaterOrEqual(t, DefaultWorkers(0), 1)
	assert.Equal(t, 1, DefaultWorkers(^uint64(0)), "a job larger than memory still gets one worker")
}

func TestImagePool(t *testing.T) {
	pool := NewImagePool()
	rect := image.Rect(0, 0, 8, 4)

	img := pool.Get(rect)
	require.NotNil(t, img)
	assert.Equal(t, rect, img.Bounds())
	pool.Put(img)
	pool.Put(nil)

	other := pool.Get(image.Rect(0, 0, 2, 2))
	assert.Equal(t, image.Rect(0, 0, 2, 2), other.Bounds())

	assert.Equal(t, rect, GetImage(rect).Bounds())
}
