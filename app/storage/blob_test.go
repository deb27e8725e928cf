package storage

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiskStore(t *testing.T) {
	store, err := NewDiskStore(t.TempDir())
	require.NoError(t, err)

	t.Run("save and open", func(t *testing.T) {
		key, err := store.Save(strings.NewReader("image bytes"), ".JPG")
		require.NoError(t, err)
		assert.True(t, strings.HasSuffix(key, ".jpg"))

		r, err := store.Open(key)
		require.NoError(t, err)
		defer r.Close()
		data, err := io.ReadAll(r)
		require.NoError(t, err)
		assert.Equal(t, "image bytes", string(data))
	})

	t.Run("remove", func(t *testing.T) {
		key, err := store.Save(strings.NewReader("x"), "png")
		require.NoError(t, err)
		require.NoError(t, store.Remove(key))
		_, err = store.Open(key)
		assert.Error(t, err)
	})

	t.Run("path-like keys rejected", func(t *testing.T) {
		_, err := store.Open("../etc/passwd")
		assert.Error(t, err)
		assert.Error(t, store.Remove("../etc/passwd"))
	})

	t.Run("missing extension defaults", func(t *testing.T) {
		key, err := store.Save(strings.NewReader("x"), "")
		require.NoError(t, err)
		assert.True(t, strings.HasSuffix(key, ".bin"))
	})
}

func TestMemStore(t *testing.T) {
	store := NewMemStore()

	key, err := store.Save(strings.NewReader("hello"), "jpg")
	require.NoError(t, err)
	assert.Equal(t, 1, store.Len())

	r, err := store.Open(key)
	require.NoError(t, err)
	data, _ := io.ReadAll(r)
	assert.Equal(t, "hello", string(data))

	require.NoError(t, store.Remove(key))
	assert.Equal(t, 0, store.Len())
	_, err = store.Open(key)
	assert.Error(t, err)
}
