package config_test

import (
	"context"
	"strings"
	"testing"

	"github.com/climblabs/corvid/pkg/config"
	"github.com/climblabs/corvid/pkg/egbb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOverridesDefaults(t *testing.T) {
	ctx := context.Background()

	src := `
# a comment line
hash = 128
egbb_5men = on
egbb_load_type = smart
egbb_cache=16
egbb_path = "/opt/bitbases"
bookmode=disk
learn=off
logfile = on
threads = 8
`
	cfg, err := config.Parse(ctx, strings.NewReader(src))
	require.NoError(t, err)

	assert.Equal(t, 128, cfg.HashMB)
	assert.True(t, cfg.Egbb5Men)
	assert.Equal(t, egbb.SmartLoad, cfg.EgbbLoadType)
	assert.Equal(t, 16, cfg.EgbbCacheMB)
	assert.Equal(t, "/opt/bitbases/", cfg.EgbbPath)
	assert.Equal(t, config.BookDisk, cfg.BookMode)
	assert.False(t, cfg.Learn)
	assert.True(t, cfg.LogFile)
	assert.Equal(t, 8, cfg.Threads)
}

func TestParseIgnoresInvalidLines(t *testing.T) {
	ctx := context.Background()

	src := "hash = not-a-number\nunknown_option = 1\nthreads = 4\n"
	cfg, err := config.Parse(ctx, strings.NewReader(src))
	require.NoError(t, err)

	def := config.Default()
	assert.Equal(t, def.HashMB, cfg.HashMB) // invalid value left the default in place
	assert.Equal(t, 4, cfg.Threads)
}

func TestParseHandlesQuotedHashInValue(t *testing.T) {
	ctx := context.Background()

	src := `egbb_path = "/opt/bb#5"` + "\n"
	cfg, err := config.Parse(ctx, strings.NewReader(src))
	require.NoError(t, err)

	assert.Equal(t, "/opt/bb#5/", cfg.EgbbPath)
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	ctx := context.Background()

	cfg, err := config.Load(ctx, "/nonexistent/path/to/sloppy.conf")
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}
