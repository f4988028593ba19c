package config

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	c := NewAppConfig()

	assert.Equal(t, "http://127.0.0.1:5000", c.APIURL())
	assert.Equal(t, "sqlite", c.StorageType())
	assert.Equal(t, filepath.Join("data", "eatnow.sqlite"), c.StoragePath())
	assert.Equal(t, 30*time.Second, c.HTTPTimeout())
	assert.Equal(t, "static", c.LocationSource())
}

func TestLoadFile(t *testing.T) {
	f, err := os.CreateTemp("", "eatnow_test*.yml")
	require.NoError(t, err)
	defer os.Remove(f.Name())

	fmt.Fprint(f, "---\napi_url: https://api.example.com/\nstorage:\n    type: file\nme:\n    lat: 10.5\n")
	f.Close()

	c := NewAppConfig()
	require.True(t, c.Load(f.Name()))

	assert.Equal(t, "https://api.example.com", c.APIURL())
	assert.Equal(t, filepath.Join("data", "storage.yml"), c.StoragePath())

	lat, lon := c.StaticPosition()
	assert.Equal(t, 10.5, lat)
	assert.Equal(t, -6.2546, lon)
}

func TestLoadMissing(t *testing.T) {
	c := NewAppConfig()
	assert.False(t, c.Load(filepath.Join(t.TempDir(), "nope.yml")))
}

func TestEnv(t *testing.T) {
	t.Setenv("EATNOW_STORAGE_TYPE", "FILE")
	t.Setenv("EATNOW_API_URL", "http://env:1")

	c := NewAppConfig()
	c.LoadEnv(EnvPrefix)

	assert.Equal(t, "file", c.StorageType())
	assert.Equal(t, "http://env:1", c.APIURL())
}

func TestMemoryPath(t *testing.T) {
	c := NewAppConfig()
	c.Set("storage.db", ":memory:")

	assert.Equal(t, ":memory:", c.StoragePath())
}
