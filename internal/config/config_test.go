package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/matryer/is"
)

func TestLoadOrCreate(t *testing.T) {
	t.Run("writes defaults on first launch", func(t *testing.T) {
		is := is.New(t)
		path := filepath.Join(t.TempDir(), "kadai", DefaultConfigFileName)

		cfg, err := LoadOrCreate(path)
		is.NoErr(err)
		is.Equal(cfg.DefaultFilter, "all")
		is.Equal(cfg.PollSeconds, 60)
		is.Equal(cfg.DBPath, filepath.Join(filepath.Dir(path), DefaultDBName))

		_, err = os.Stat(path)
		is.NoErr(err)
	})

	t.Run("reads an existing file", func(t *testing.T) {
		is := is.New(t)
		dir := t.TempDir()
		path := filepath.Join(dir, DefaultConfigFileName)
		content := "default_filter = \"important\"\npoll_interval_seconds = 30\n"
		is.NoErr(os.WriteFile(path, []byte(content), 0o644))

		cfg, err := LoadOrCreate(path)
		is.NoErr(err)
		is.Equal(cfg.DefaultFilter, "important")
		is.Equal(cfg.PollInterval(), 30*time.Second)
		// unset paths fall back next to the config file
		is.Equal(cfg.DBPath, filepath.Join(dir, DefaultDBName))
		is.Equal(cfg.LogPath, filepath.Join(dir, DefaultLogName))
	})
}

func TestConfig_PollInterval(t *testing.T) {
	is := is.New(t)
	is.Equal(Config{}.PollInterval(), time.Minute)
	is.Equal(Config{PollSeconds: -5}.PollInterval(), time.Minute)
	is.Equal(Config{PollSeconds: 120}.PollInterval(), 2*time.Minute)
}
