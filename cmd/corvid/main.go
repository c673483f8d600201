// corvid is a CECP/xboard chess engine, also reachable through a line-oriented console protocol
// for debugging. It reads exactly one line off stdin to pick a protocol, then hands the rest of
// stdin to that protocol's driver.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/climblabs/corvid/pkg/book"
	"github.com/climblabs/corvid/pkg/config"
	"github.com/climblabs/corvid/pkg/egbb"
	"github.com/climblabs/corvid/pkg/engine"
	"github.com/climblabs/corvid/pkg/engine/console"
	"github.com/climblabs/corvid/pkg/engine/xboard"
	"github.com/seekerror/logw"
)

var (
	configPath = flag.String("config", "", "Configuration file (see pkg/config)")
	bookPath   = flag.String("book", "", "Opening book file (none: book disabled)")
	depth      = flag.Int("depth", 0, "Search depth limit (zero: no limit)")
	noise      = flag.Int("noise", 10, "Evaluation noise in centipawns (zero if deterministic)")
)

func init() {
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, `usage: corvid [options]

corvid is a CECP/xboard chess engine.
Options:
`)
		flag.PrintDefaults()
	}
}

func main() {
	flag.Parse()
	ctx := context.Background()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(ctx, *configPath)
		if err != nil {
			logw.Exitf(ctx, "failed to load config %v: %v", *configPath, err)
		}
		cfg = loaded
	}

	opts := []engine.Option{
		engine.WithOptions(engine.Options{Depth: *depth, Hash: cfg.HashMB, Noise: *noise}),
		engine.WithSeed(time.Now().UnixNano()),
		engine.WithEGBB(loadEGBB(ctx, cfg)),
	}
	if bk := loadBook(ctx, cfg); bk != nil {
		opts = append(opts, engine.WithBook(bk))
	}

	e := engine.New(ctx, "corvid", "climblabs", opts...)

	in := engine.ReadStdinLines(ctx)
	switch <-in {
	case xboard.ProtocolName:
		driver, out := xboard.NewDriver(ctx, e, in)
		go engine.WriteStdoutLines(ctx, out)

		<-driver.Closed()

	case console.ProtocolName:
		driver, out := console.NewDriver(ctx, e, in)
		go engine.WriteStdoutLines(ctx, out)

		<-driver.Closed()

	default:
		flag.Usage()
		logw.Exitf(ctx, "protocol not supported")
	}
}

// loadBook honors cfg.BookMode: disabled entirely, or loaded from *bookPath (an empty book if no
// path was given, since a disk-backed book still needs a file to eventually Save to).
func loadBook(ctx context.Context, cfg config.Config) *book.Book {
	if cfg.BookMode == config.BookOff {
		return nil
	}
	var bk *book.Book
	if *bookPath != "" {
		loaded, err := book.Load(ctx, *bookPath)
		if err != nil {
			logw.Errorf(ctx, "failed to load book %v: %v", *bookPath, err)
			bk = book.New()
		} else {
			bk = loaded
		}
	} else {
		bk = book.New()
	}
	bk.SetLearn(cfg.Learn && cfg.BookMode == config.BookMem)
	return bk
}

// loadEGBB attaches endgame-bitbase probing if cfg enables it and a tablebase path is configured.
// The only Facade shipped is egbb.NoFacade{} (see pkg/egbb), whose Load is a no-op that reports
// success, so this returns a facade that never finds a position either way.
func loadEGBB(ctx context.Context, cfg config.Config) egbb.Facade {
	f := egbb.NoFacade{}
	if cfg.EgbbLoadType == egbb.LoadNone || cfg.EgbbPath == "" {
		return f
	}
	if err := f.Load(cfg.EgbbPath, cfg.EgbbCacheMB<<20, cfg.EgbbLoadType); err != nil {
		logw.Errorf(ctx, "failed to load egbb from %v: %v", cfg.EgbbPath, err)
	}
	return f
}
