package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/automoto/stompgrid/assets"
	"github.com/automoto/stompgrid/config"
	"github.com/automoto/stompgrid/game"
	"github.com/automoto/stompgrid/logging"
	"github.com/automoto/stompgrid/shared/leveldata"
	"github.com/automoto/stompgrid/shared/messages"
	"go.uber.org/zap"
)

type options struct {
	configPath string
	level      string
	script     string
	ticks      uint64
	tickRate   int
	realtime   bool
	watch      bool
	logFile    string
	logLevel   string
}

func main() {
	var opts options
	flag.StringVar(&opts.configPath, "config", "", "Settings YAML file (defaults when empty)")
	flag.StringVar(&opts.level, "level", assets.DefaultLevel, "Bundled level name or path to a .txt/.tmx file")
	flag.StringVar(&opts.script, "script", "", "Input script file (idle input when empty)")
	flag.Uint64Var(&opts.ticks, "ticks", 600, "Stop after this many ticks (0 = no limit)")
	flag.IntVar(&opts.tickRate, "tickrate", 60, "Simulation tick rate (ticks per second)")
	flag.BoolVar(&opts.realtime, "realtime", false, "Tick on a wall-clock ticker instead of as fast as possible")
	flag.BoolVar(&opts.watch, "watch", false, "Reload the level file when it changes on disk")
	flag.StringVar(&opts.logFile, "log-file", "", "Log to a rotating file instead of stderr")
	flag.StringVar(&opts.logLevel, "log-level", "", "Log level override (debug, info, warn, error)")
	flag.Parse()

	if err := run(opts); err != nil {
		fmt.Fprintln(os.Stderr, "stompgrid:", err)
		os.Exit(1)
	}
}

func run(opts options) error {
	settings := config.Default()
	if opts.configPath != "" {
		dir, file := filepath.Split(opts.configPath)
		if dir == "" {
			dir = "."
		}
		s, err := config.Load(os.DirFS(dir), file)
		if err != nil {
			return err
		}
		settings = s
	}
	if opts.logFile != "" {
		settings.Log.File = opts.logFile
	}
	if opts.logLevel != "" {
		settings.Log.Level = opts.logLevel
	}

	log, err := logging.New(settings.Log)
	if err != nil {
		return err
	}
	defer logging.Sync(log)

	parseOpts, err := game.ParseOptions(settings)
	if err != nil {
		return err
	}
	level, err := assets.Open(opts.level, parseOpts)
	if err != nil {
		return err
	}
	log.Infow("level loaded", "level", opts.level, "tiles", len(level.Tiles), "enemies", len(level.EnemySpawns))

	session, err := game.NewSession(level, settings, game.WithLogger(log))
	if err != nil {
		return err
	}
	tuning := session.Settings()
	log.Infow("session ready",
		"fall_policy", tuning.Player.FallPolicy,
		"tie_break", tuning.Physics.TieBreak,
		"max_delta", tuning.Physics.MaxDelta,
		"tick_rate", opts.tickRate,
	)

	loopOpts := []game.LoopOption{
		game.WithMaxTicks(opts.ticks),
		game.WithLoopLogger(log),
		game.WithEventHandler(logEvents(log)),
	}
	if opts.script != "" {
		f, err := os.Open(opts.script)
		if err != nil {
			return fmt.Errorf("open script: %w", err)
		}
		src, err := game.ParseScript(f)
		f.Close()
		if err != nil {
			return fmt.Errorf("%s: %w", opts.script, err)
		}
		loopOpts = append(loopOpts, game.WithInput(src))
	}
	loop := game.NewGameLoop(session, opts.tickRate, loopOpts...)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if opts.watch {
		stopWatch, err := watchLevel(ctx, log, opts.level, parseOpts, loop)
		if err != nil {
			return err
		}
		defer stopWatch()
	}

	if opts.realtime {
		err = loop.Run(ctx)
	} else {
		err = loop.RunHeadless(ctx)
	}
	if err != nil {
		return err
	}

	snap := session.Snapshot()
	fmt.Printf("ticks=%d score=%d enemies=%d game_over=%t player=(%.3f, %.3f)\n",
		snap.Tick, snap.Score, len(snap.Enemies), snap.GameOver, snap.Player.X, snap.Player.Y)
	return nil
}

func logEvents(log *zap.SugaredLogger) game.EventHandler {
	return func(res game.TickResult) {
		for _, ev := range res.Events {
			switch ev.Kind {
			case messages.EnemyStomped, messages.PlayerHit, messages.PlayerFell, messages.GameOver:
				log.Infow(ev.Kind.String(), "tick", ev.Tick, "enemy", ev.EnemyID, "score", ev.Score)
			}
		}
	}
}

// watchLevel reloads the level file on edits. Bundled levels cannot be
// watched.
func watchLevel(ctx context.Context, log *zap.SugaredLogger, ref string, opts leveldata.ParseOptions, loop *game.GameLoop) (func(), error) {
	if !assets.IsLevelFile(ref) {
		return nil, fmt.Errorf("-watch needs a level file path, got %q", ref)
	}
	abs, err := filepath.Abs(ref)
	if err != nil {
		return nil, err
	}
	w, err := assets.NewWatcher(filepath.Dir(abs))
	if err != nil {
		return nil, fmt.Errorf("watch %s: %w", ref, err)
	}

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case name, ok := <-w.Events:
				if !ok {
					return
				}
				if name != abs {
					continue
				}
				level, err := assets.Open(abs, opts)
				if err != nil {
					log.Warnf("Reload error: %v", err)
					continue
				}
				log.Infow("level changed on disk", "path", abs)
				loop.Reload(level)
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				log.Warnf("Watch error: %v", err)
			}
		}
	}()

	return func() { _ = w.Close() }, nil
}
