package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func writeConfig(t *testing.T, path, data string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))
}

func TestLoad(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "todo.yaml")
		writeConfig(t, path, `
min_length: 3
min_length_mode: words
fortune:
  delay: 10ms
  texts: ["one", "two"]
`)

		cfg, err := Load(path)
		require.NoError(t, err)

		assert.Equal(t, 3, cfg.MinLength)
		assert.Equal(t, "words", cfg.MinLengthMode)
		assert.Equal(t, 10*time.Millisecond, cfg.Fortune.Delay)
		assert.Equal(t, []string{"one", "two"}, cfg.Fortune.Texts)
	})

	t.Run("defaults", func(t *testing.T) {
		cfg, err := Parse([]byte("{}"))
		require.NoError(t, err)

		assert.Equal(t, Default(), cfg)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.ErrorContains(t, err, "config: read file")
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("invalid yaml", func(t *testing.T) {
		_, err := Parse([]byte("min_length: [1"))
		assert.ErrorContains(t, err, "config: parse yaml")
	})

	t.Run("validation", func(t *testing.T) {
		for name, data := range map[string]string{
			"min length":   "min_length: 0",
			"unknown mode": "min_length_mode: sentences",
			"delay":        "fortune: {delay: -1s}",
		} {
			t.Run(name, func(t *testing.T) {
				_, err := Parse([]byte(data))
				assert.Error(t, err)
			})
		}
	})
}

func TestWatch(t *testing.T) {
	t.Run("reloads on write and skips broken files", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "todo.yaml")
		writeConfig(t, path, "min_length: 1")

		ctx, cancel := context.WithCancel(context.Background())
		changes := make(chan *Config, 64)

		var g errgroup.Group
		g.Go(func() error {
			return Watch(ctx, path, zap.NewNop(), func(cfg *Config) {
				select {
				case changes <- cfg:
				default:
				}
			})
		})

		// keep writing until the watcher is registered and picks it up,
		// truncation may surface intermediate reloads
		reloaded := false
		deadline := time.After(5 * time.Second)
		for !reloaded {
			writeConfig(t, path, "min_length: [broken")
			writeConfig(t, path, "min_length: 4")

			select {
			case cfg := <-changes:
				reloaded = cfg.MinLength == 4
			case <-time.After(50 * time.Millisecond):
			case <-deadline:
				t.Fatal("no reload observed")
			}
		}

		cancel()
		require.NoError(t, g.Wait())
	})

	t.Run("missing file", func(t *testing.T) {
		err := Watch(context.Background(), filepath.Join(t.TempDir(), "nope.yaml"), zap.NewNop(), func(*Config) {})
		assert.Error(t, err)
	})
}
