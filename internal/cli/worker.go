package cli

import (
	"context"
	"log/slog"
	"time"

	"github.com/tartampluch/go-lunar/internal/almanac"
	"github.com/tartampluch/go-lunar/internal/config"
	"github.com/tartampluch/go-lunar/internal/server"
)

// worker keeps the published almanac current: it regenerates on month
// rollover and whenever the favorable-days file changes.
type worker struct {
	gen      *almanac.Generator
	srv      *server.AlmanacServer
	settings config.Settings

	year  int
	month time.Month
}

// Run publishes the current month, then reacts to rollovers and file edits
// until ctx is cancelled. Only the first generation is fatal; later failures
// keep the previous document online.
func (w *worker) Run(ctx context.Context) error {
	log := slog.With(config.LogKeyComponent, config.CompWorker)
	log.Info(config.MsgWorkerStart, config.LogKeyInterval, w.settings.Server.CheckInterval.String())

	if err := w.refresh(ctx); err != nil {
		return err
	}

	var changes <-chan struct{}
	if path := w.settings.FavorableFile; path != "" {
		fw, err := watchFile(path)
		if err != nil {
			log.Warn(config.ErrWatch, config.LogKeyFile, path, config.LogKeyError, err)
		} else {
			defer func() { _ = fw.Close() }()
			changes = fw.Changes
			log.Info(config.MsgWatchStarted, config.LogKeyFile, path)
		}
	}

	ticker := time.NewTicker(w.settings.Server.CheckInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info(config.MsgWorkerStop)
			return nil

		case <-ticker.C:
			y, m := w.gen.CurrentMonth()
			if y == w.year && m == w.month {
				continue
			}
			log.Info(config.MsgMonthRollover, config.LogKeyMonth, time.Date(y, m, 1, 0, 0, 0, 0, time.UTC).Format(config.DateFormatMonth))
			w.regenerate(ctx, log)

		case <-changes:
			log.Info(config.MsgFileChanged, config.LogKeyFile, w.settings.FavorableFile)
			tables, err := almanac.LoadTables(w.settings.FavorableFile)
			if err != nil {
				log.Error(config.ErrGenerationFailed, config.LogKeyError, err)
				continue
			}
			w.gen.Tables = tables
			w.regenerate(ctx, log)
		}
	}
}

func (w *worker) regenerate(ctx context.Context, log *slog.Logger) {
	if err := w.refresh(ctx); err != nil && ctx.Err() == nil {
		log.Error(config.ErrGenerationFailed, config.LogKeyError, err)
	}
}

// refresh builds the current month, writes the configured files and swaps
// the served documents.
func (w *worker) refresh(ctx context.Context) error {
	y, m := w.gen.CurrentMonth()
	built, err := w.gen.Build(ctx, y, m)
	if err != nil {
		return err
	}

	now := w.gen.Clock.Now()
	doc, err := built.Almanac().Encode()
	if err != nil {
		return err
	}
	cal, err := built.ICS(w.gen.Translator, now)
	if err != nil {
		return err
	}

	if w.settings.Output != "" {
		if err := almanac.WriteFile(w.settings.Output, built.Almanac()); err != nil {
			return err
		}
	}
	if w.settings.ICSOutput != "" {
		if err := almanac.WriteICSFile(w.settings.ICSOutput, built, w.gen.Translator, now); err != nil {
			return err
		}
	}

	w.srv.Update(doc, cal)
	w.year, w.month = y, m
	return nil
}
