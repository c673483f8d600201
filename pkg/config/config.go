// Package config reads the engine's line-oriented key=value configuration file: one option per
// line, quoted values, '#' starts a comment that runs to end of line. An unrecognized key or an
// invalid value for a recognized key is logged and otherwise ignored, so a typo in one line never
// prevents the rest of the file from taking effect.
package config

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/climblabs/corvid/pkg/egbb"
	"github.com/seekerror/logw"
)

// BookMode selects whether the opening book is used, and if so, whether it's held entirely in
// memory (required for learning) or probed from disk.
type BookMode int

const (
	BookOff BookMode = iota
	BookMem
	BookDisk
)

// Config holds every setting the engine reads from its configuration file, with the reference
// engine's own defaults.
type Config struct {
	HashMB       int  // transposition table size in MB
	Egbb5Men     bool // whether 5-man endgame bitbases are enabled, if available
	EgbbLoadType egbb.LoadType
	EgbbCacheMB  int
	EgbbPath     string
	BookMode     BookMode
	Learn        bool
	LogFile      bool
	Threads      int // perft worker count; 0 means auto-detect
}

// Default returns the engine's built-in configuration, used before any config file is read and
// for any setting a config file doesn't mention.
func Default() Config {
	return Config{
		HashMB:       64,
		Egbb5Men:     false,
		EgbbLoadType: egbb.LoadNone,
		EgbbCacheMB:  8,
		BookMode:     BookMem,
		Learn:        true,
		LogFile:      false,
		Threads:      0,
	}
}

// Load reads and applies a configuration file on top of Default(). A missing file is not an
// error: the engine runs on defaults.
func Load(ctx context.Context, path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return Config{}, fmt.Errorf("config: open %v: %w", path, err)
	}
	defer f.Close()

	return Parse(ctx, f)
}

// Parse reads a configuration file's contents from r and applies them on top of Default().
func Parse(ctx context.Context, r io.Reader) (Config, error) {
	cfg := Default()

	for name, val := range scan(r) {
		apply(ctx, &cfg, name, val)
	}
	return cfg, nil
}

// scan tokenizes a config file into name=value pairs, one per line, honoring '#' comments outside
// quotes and quoted values that may themselves contain '=' or '#'.
func scan(r io.Reader) map[string]string {
	out := map[string]string{}

	s := bufio.NewScanner(r)
	for s.Scan() {
		line := s.Text()

		name, val, ok := splitConfigLine(line)
		if ok {
			out[name] = val
		}
	}
	return out
}

// splitConfigLine parses a single line into a name/value pair, stripping a trailing '#' comment
// unless it falls inside a quoted value, and unquoting the value if it's wrapped in '"'.
func splitConfigLine(line string) (name, val string, ok bool) {
	inQuotes := false
	eq := -1
scan:
	for i, c := range line {
		switch c {
		case '"':
			inQuotes = !inQuotes
		case '#':
			if !inQuotes {
				line = line[:i]
				break scan
			}
		case '=':
			if !inQuotes && eq < 0 {
				eq = i
			}
		}
	}
	if eq < 0 {
		return "", "", false
	}

	name = strings.TrimSpace(line[:eq])
	val = strings.TrimSpace(line[eq+1:])
	if name == "" {
		return "", "", false
	}

	val = strings.ReplaceAll(val, `"`, "")
	return name, val, true
}

// apply validates and stores one name=value setting into cfg, logging and ignoring anything it
// doesn't recognize.
func apply(ctx context.Context, cfg *Config, name, val string) {
	switch name {
	case "hash":
		n, err := strconv.Atoi(val)
		if err != nil || n <= 0 {
			logw.Errorf(ctx, "config: invalid hash size: %v", val)
			return
		}
		cfg.HashMB = n

	case "egbb_5men":
		switch val {
		case "on":
			cfg.Egbb5Men = true
		case "off":
			cfg.Egbb5Men = false
		default:
			logw.Errorf(ctx, "config: invalid egbb_5men value: %v", val)
		}

	case "egbb_load_type":
		switch val {
		case "4men":
			cfg.EgbbLoadType = egbb.Load4Men
		case "5men":
			cfg.EgbbLoadType = egbb.Load5Men
		case "smart":
			cfg.EgbbLoadType = egbb.SmartLoad
		case "none", "off":
			cfg.EgbbLoadType = egbb.LoadNone
		default:
			logw.Errorf(ctx, "config: invalid egbb load type: %v", val)
		}

	case "egbb_cache":
		n, err := strconv.Atoi(val)
		if err != nil || n <= 0 {
			logw.Errorf(ctx, "config: invalid egbb cache size: %v", val)
			return
		}
		cfg.EgbbCacheMB = n

	case "egbb_path":
		if val != "" && !strings.HasSuffix(val, "/") {
			val += "/"
		}
		cfg.EgbbPath = val

	case "bookmode":
		switch val {
		case "off":
			cfg.BookMode = BookOff
		case "mem":
			cfg.BookMode = BookMem
		case "disk":
			cfg.BookMode = BookDisk
		default:
			logw.Errorf(ctx, "config: invalid book mode: %v", val)
		}

	case "learn":
		switch val {
		case "on":
			cfg.Learn = true
		case "off":
			cfg.Learn = false
		default:
			logw.Errorf(ctx, "config: invalid learning mode: %v", val)
		}

	case "logfile":
		switch val {
		case "on":
			cfg.LogFile = true
		case "off":
			cfg.LogFile = false
		default:
			logw.Errorf(ctx, "config: invalid logfile mode: %v", val)
		}

	case "threads":
		n, err := strconv.Atoi(val)
		if err != nil || n <= 0 {
			logw.Errorf(ctx, "config: invalid thread count: %v", val)
			return
		}
		cfg.Threads = n

	default:
		logw.Errorf(ctx, "config: invalid option: %v", name)
	}
}
