// Command plotdemo renders a streaming curve with a markup title,
// as PNG and/or PDF.
//
// Settings are read from the environment (see Config):
//
//	PLOTDEMO_TITLE_FILE=title.txt PLOTDEMO_WATCH=true plotdemo
//
// In watch mode, the pictures are rendered again each time
// the title file changes, until interrupted.
package main

import (
	"context"
	"flag"
	"fmt"
	"image/color"
	"log/slog"
	"math"
	"os"
	"os/signal"
	"time"

	"github.com/benoitkugler/plotdraw/drawobj"
	"github.com/benoitkugler/plotdraw/drawpdf"
	"github.com/benoitkugler/plotdraw/drawraster"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, "plotdemo:", err)
		os.Exit(2)
	}
	flag.StringVar(&cfg.PNG, "png", cfg.PNG, "PNG output file (empty to disable)")
	flag.StringVar(&cfg.PDF, "pdf", cfg.PDF, "PDF output file (empty to disable)")
	flag.Parse()

	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	drawobj.SetLogger(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("plotdemo failed", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *Config, logger *slog.Logger) error {
	title := cfg.Title
	if cfg.TitleFile != "" {
		t, err := readTitle(cfg.TitleFile, cfg.Charset)
		if err != nil {
			return err
		}
		title = t
	}
	sc := newScene(cfg, title)

	if err := stream(ctx, sc, cfg, logger); err != nil {
		return err
	}
	if err := sc.write(cfg, logger); err != nil {
		return err
	}

	if !cfg.Watch {
		return nil
	}
	if cfg.TitleFile == "" {
		return fmt.Errorf("watch mode requires PLOTDEMO_TITLE_FILE")
	}
	return watchTitle(ctx, cfg.TitleFile, func() error {
		t, err := readTitle(cfg.TitleFile, cfg.Charset)
		if err != nil {
			return err
		}
		sc.setTitle(t)
		logger.Info("title changed", "title", t)
		return sc.write(cfg, logger)
	}, func(err error) {
		logger.Warn("watching title", "err", err)
	})
}

// stream feeds the curve from one goroutine while
// another one renders previews, until every point is added.
func stream(ctx context.Context, sc *scene, cfg *Config, logger *slog.Logger) error {
	g, ctx := errgroup.WithContext(ctx)
	done := make(chan struct{})

	g.Go(func() error {
		defer close(done)
		for i := 0; i < cfg.Points; i++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			t := float64(i) / 20
			sc.curve.Add(float64(i), 0.8*math.Sin(t)*math.Exp(-t/40))
			sc.follow()
			if i%50 == 0 {
				time.Sleep(time.Millisecond)
			}
		}
		return nil
	})

	g.Go(func() error {
		preview := drawraster.New(cfg.Width, cfg.Height, color.White)
		frames := 0
		for {
			select {
			case <-done:
				logger.Debug("streaming done", "frames", frames, "points", sc.curve.Len())
				return nil
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			adv := sc.root.Render(preview, drawobj.DefaultState(), nil, false)
			frames++
			logger.Debug("preview rendered", "frame", frames, "points", sc.curve.Len(), "advance", adv.X)
			time.Sleep(5 * time.Millisecond)
		}
	})
	return g.Wait()
}

// write renders the scene into the configured outputs
func (sc *scene) write(cfg *Config, logger *slog.Logger) error {
	if cfg.PNG != "" {
		rd := drawraster.New(cfg.Width, cfg.Height, color.White)
		sc.root.Render(rd, drawobj.DefaultState(), nil, false)
		f, err := os.Create(cfg.PNG)
		if err != nil {
			return err
		}
		if err := rd.SavePNG(f); err != nil {
			f.Close()
			return fmt.Errorf("writing %s: %w", cfg.PNG, err)
		}
		if err := f.Close(); err != nil {
			return err
		}
		logger.Info("png written", "file", cfg.PNG)
	}
	if cfg.PDF != "" {
		rd := drawpdf.New(sc.width, sc.height)
		sc.root.Render(rd, drawobj.DefaultState(), nil, false)
		f, err := os.Create(cfg.PDF)
		if err != nil {
			return err
		}
		if err := rd.Output(f); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
		logger.Info("pdf written", "file", cfg.PDF)
	}
	return nil
}
