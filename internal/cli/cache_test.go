package cli

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/exprgraph/pkg/cache"
	"github.com/matzehuels/exprgraph/pkg/config"
)

func TestCacheLocation(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "")

	c := New(os.Stderr, LogInfo)
	dir := c.cacheLocation()

	home, _ := os.UserHomeDir()
	if want := filepath.Join(home, ".cache", appName); dir != want {
		t.Errorf("cacheLocation() = %q, want %q", dir, want)
	}
}

func TestCacheLocationXDG(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", xdg)

	c := New(os.Stderr, LogInfo)
	if got, want := c.cacheLocation(), filepath.Join(xdg, appName); got != want {
		t.Errorf("cacheLocation() = %q, want %q", got, want)
	}

	c.Config.Cache.Dir = "/tmp/custom"
	if got := c.cacheLocation(); got != "/tmp/custom" {
		t.Errorf("cacheLocation() with dir = %q, want /tmp/custom", got)
	}
}

func TestCacheLocationRedis(t *testing.T) {
	c := New(os.Stderr, LogInfo)
	c.Config.Cache.Backend = config.BackendRedis
	c.Config.Cache.RedisAddr = "localhost:6379"

	got := c.cacheLocation()
	if !strings.Contains(got, "localhost:6379") || !strings.Contains(got, cache.DefaultRedisPrefix) {
		t.Errorf("cacheLocation() = %q", got)
	}
}

func TestNewCache(t *testing.T) {
	tests := []struct {
		name   string
		setup  func(c *CLI)
		isNull bool
	}{
		{"file backend", func(c *CLI) { c.Config.Cache.Dir = t.TempDir() }, false},
		{"no-cache flag", func(c *CLI) { c.noCache = true }, true},
		{"disabled in config", func(c *CLI) { c.Config.Cache.Enabled = false }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(os.Stderr, LogInfo)
			tt.setup(c)

			ch, _, err := c.newCache(context.Background())
			if err != nil {
				t.Fatalf("newCache() error: %v", err)
			}
			defer ch.Close()

			_, isNull := ch.(*cache.NullCache)
			if isNull != tt.isNull {
				t.Errorf("newCache() = %T, want null cache %v", ch, tt.isNull)
			}
		})
	}
}

func TestNewCacheScopedKeyer(t *testing.T) {
	c := New(os.Stderr, LogInfo)
	c.Config.Cache.Dir = t.TempDir()
	c.Config.Cache.Prefix = "team:"

	ch, keyer, err := c.newCache(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	defer ch.Close()

	if keyer == nil || !strings.HasPrefix(keyer.GraphKey("abc"), "team:") {
		t.Errorf("keyer = %v, want scoped keyer with prefix team:", keyer)
	}
}
