package ui

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/PreOnZi/justacalculator/internal/engine"
	"github.com/PreOnZi/justacalculator/internal/haptics"
	"github.com/PreOnZi/justacalculator/internal/store"
	"github.com/PreOnZi/justacalculator/internal/util"
)

// Run resumes (or creates) a session, boots the runtime and blocks on the
// TUI until it exits.
func Run(ctx context.Context, db *store.DB, cfg util.Config, version string) error {
	log := newLogger(cfg)

	sessions := store.NewSessionRepo(db)
	values := store.NewValueRepo(db)
	history := store.NewHistoryRepo(db)

	sess, err := sessions.Latest(ctx)
	if err == store.ErrNoSession {
		sess, err = sessions.Create(ctx)
	}
	if err != nil {
		return err
	}

	kv, err := values.LoadAll(ctx, sess.ID)
	if err != nil {
		return err
	}
	st := engine.Resume(engine.FromSnapshot(kv), time.Now())

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	rec := store.NewRecorder(ctx, values, sess.ID, log)
	hap := haptics.New(cfg.Haptics)
	if err := hap.Init(); err != nil {
		log.Warn("haptics unavailable", "err", err)
	}
	defer hap.Close()

	fx := &appEffects{rec: rec, hap: hap, log: log, artifactDir: cfg.ArtifactDir}
	rt := engine.NewRuntime(st, fx, log)
	go func() { _ = rt.Run(ctx) }()

	m := initialModel(ctx, rt.Events(), rt.Snapshots(), history, sess.ID, version)
	program := tea.NewProgram(m, tea.WithContext(ctx), tea.WithAltScreen())
	_, err = program.Run()
	return err
}

// appEffects adapts the runtime's side effects onto the store, the speaker
// and the filesystem.
type appEffects struct {
	rec         *store.Recorder
	hap         *haptics.Engine
	log         *slog.Logger
	artifactDir string
}

func (e *appEffects) Persist(key, value string) { e.rec.Persist(key, value) }

func (e *appEffects) Vibrate(d time.Duration, intensity float64) {
	e.hap.Pulse(d, intensity)
}

func (e *appEffects) ScheduleNotification(delay time.Duration) {
	// No notification daemon in a terminal; the runtime brings the story
	// back on its own. Log it so the gesture is visible.
	e.log.Info("reminder scheduled", "in", delay)
}

func (e *appEffects) OpenCamera()  { e.log.Info("camera opened") }
func (e *appEffects) CloseCamera() { e.log.Info("camera closed") }

func (e *appEffects) WriteArtifact(name, content string) {
	dir := e.artifactDir
	if dir == "" {
		dir = "."
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		e.log.Warn("artifact write failed", "path", path, "err", err)
		return
	}
	e.log.Info("artifact written", "path", path)
}

// newLogger routes logs away from the terminal the TUI owns. Silent unless a
// log file is configured.
func newLogger(cfg util.Config) *slog.Logger {
	var w io.Writer = io.Discard
	if cfg.Logging.File != "" {
		if f, err := os.OpenFile(cfg.Logging.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644); err == nil {
			w = f
		}
	}
	level := slog.LevelInfo
	switch cfg.Logging.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
