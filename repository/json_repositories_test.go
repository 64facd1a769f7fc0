package repository

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFixture(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func readJSON(t *testing.T, path string) map[string]any {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := map[string]any{}
	require.NoError(t, json.Unmarshal(data, &out))
	return out
}

func TestLinkRepository(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "discord-links.json")

	repo, err := NewLinkRepository(path)
	require.NoError(t, err)

	t.Run("creates an empty file", func(t *testing.T) {
		assert.FileExists(t, path)
		username, err := repo.GetChatUsername(ctx, "123")
		require.NoError(t, err)
		assert.Empty(t, username)
	})

	t.Run("reads links written by other tools", func(t *testing.T) {
		writeFixture(t, path, `{"123": "StreamFan", "456": "lurker"}`)

		username, err := repo.GetChatUsername(ctx, "123")
		require.NoError(t, err)
		assert.Equal(t, "StreamFan", username)

		discordID, err := repo.GetDiscordID(ctx, "streamfan")
		require.NoError(t, err)
		assert.Equal(t, "123", discordID)
	})

	t.Run("corrupt file is an error", func(t *testing.T) {
		writeFixture(t, path, `{not json`)
		_, err := repo.GetChatUsername(ctx, "123")
		assert.Error(t, err)
	})
}

func TestLocalPointsRepository(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "discord-users.json")

	repo, err := NewLocalPointsRepository(path)
	require.NoError(t, err)

	points, err := repo.GetPoints(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, int64(0), points)

	require.NoError(t, repo.SetPoints(ctx, "1", 35))
	require.NoError(t, repo.SetPoints(ctx, "2", -4))

	points, err = repo.GetPoints(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, int64(35), points)

	points, err = repo.GetPoints(ctx, "2")
	require.NoError(t, err)
	assert.Equal(t, int64(0), points)

	stored := readJSON(t, path)
	assert.Equal(t, map[string]any{"points": float64(35)}, stored["1"])

	t.Run("fractional values round", func(t *testing.T) {
		writeFixture(t, path, `{"3": {"points": 12.6}}`)
		points, err := repo.GetPoints(ctx, "3")
		require.NoError(t, err)
		assert.Equal(t, int64(13), points)
	})

	t.Run("concurrent writers do not lose records", func(t *testing.T) {
		writeFixture(t, path, `{}`)

		var wg sync.WaitGroup
		for i := 0; i < 20; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				assert.NoError(t, repo.SetPoints(ctx, string(rune('a'+i)), int64(i)))
			}(i)
		}
		wg.Wait()

		assert.Len(t, readJSON(t, path), 20)
	})
}

func TestProfilePointsRepository(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("missing file means no profile", func(t *testing.T) {
		repo := NewProfilePointsRepository(filepath.Join(t.TempDir(), "users.json"))

		_, found, err := repo.GetPoints(ctx, "viewer")
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("reads stats.points case-insensitively", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "users.json")
		writeFixture(t, path, `{"viewer": {"stats": {"points": 120, "wins": 3}}, "nostats": {}}`)
		repo := NewProfilePointsRepository(path)

		points, found, err := repo.GetPoints(ctx, "Viewer")
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, int64(120), points)

		points, found, err = repo.GetPoints(ctx, "nostats")
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, int64(0), points)
	})

	t.Run("malformed sibling profile does not hide the others", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "users.json")
		writeFixture(t, path, `{"alice": {"stats": {"points": 50}}, "bob": {"stats": {"points": 100}}, "carol": {"stats": {"points": "12"}}, "dave": "oops"}`)
		repo := NewProfilePointsRepository(path)

		points, found, err := repo.GetPoints(ctx, "alice")
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, int64(50), points)

		points, found, err = repo.GetPoints(ctx, "bob")
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, int64(100), points)

		for _, name := range []string{"carol", "dave"} {
			points, found, err = repo.GetPoints(ctx, name)
			require.NoError(t, err)
			assert.True(t, found, name)
			assert.Equal(t, int64(0), points, name)
		}
	})

	t.Run("write preserves the rest of the profile", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "users.json")
		writeFixture(t, path, `{
			"viewer": {"character": {"hat": "crown"}, "stats": {"points": 120, "wins": 3}},
			"other": {"stats": {"points": 5}}
		}`)
		repo := NewProfilePointsRepository(path)

		found, err := repo.SetPoints(ctx, "VIEWER", 80)
		require.NoError(t, err)
		assert.True(t, found)

		stored := readJSON(t, path)
		viewer := stored["viewer"].(map[string]any)
		assert.Equal(t, map[string]any{"hat": "crown"}, viewer["character"])
		assert.Equal(t, map[string]any{"points": float64(80), "wins": float64(3)}, viewer["stats"])
		assert.Equal(t, map[string]any{"stats": map[string]any{"points": float64(5)}}, stored["other"])
	})

	t.Run("write creates missing stats", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "users.json")
		writeFixture(t, path, `{"viewer": {"character": {}}}`)
		repo := NewProfilePointsRepository(path)

		found, err := repo.SetPoints(ctx, "viewer", 10)
		require.NoError(t, err)
		assert.True(t, found)

		points, _, err := repo.GetPoints(ctx, "viewer")
		require.NoError(t, err)
		assert.Equal(t, int64(10), points)
	})

	t.Run("unknown profile is not created", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "users.json")
		writeFixture(t, path, `{"viewer": {"stats": {"points": 1}}}`)
		repo := NewProfilePointsRepository(path)

		found, err := repo.SetPoints(ctx, "stranger", 10)
		require.NoError(t, err)
		assert.False(t, found)
		assert.NotContains(t, readJSON(t, path), "stranger")
	})
}
