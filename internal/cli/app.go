package cli

import (
	"context"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/stigoleg/jiggler/internal/config"
	"github.com/stigoleg/jiggler/internal/idle"
	"github.com/stigoleg/jiggler/internal/jiggler"
	"github.com/stigoleg/jiggler/internal/lifecycle"
	"github.com/stigoleg/jiggler/internal/logging"
	"github.com/stigoleg/jiggler/internal/mouse"
	"github.com/stigoleg/jiggler/internal/notify"
	"github.com/stigoleg/jiggler/internal/ui"
)

// platform is the set of OS-facing pieces the app runs on.
type platform struct {
	idle     idle.Querier
	cursor   mouse.Backend
	notifier func(*zap.Logger) notify.Notifier
	idleOpts []idle.Option
	moveOpts []mouse.Option
}

func systemPlatform() platform {
	return platform{
		idle:     idle.System(),
		cursor:   mouse.NewRobotgoBackend(),
		notifier: notify.New,
	}
}

// newPlatform is replaced in tests.
var newPlatform = systemPlatform

func runApp(cmd *cobra.Command, opts *options) error {
	loader, s, err := loadSettings(cmd, opts)
	if err != nil {
		return err
	}

	logCfg := s.Log
	var console io.Writer
	if opts.headless {
		console = cmd.ErrOrStderr()
	} else if logCfg.File == "" {
		logCfg.File = config.DefaultLogFile()
	}
	level := logging.ParseLevel(logCfg.Level)
	logger, err := logging.New(level, logCfg, console)
	if err != nil {
		return err
	}
	restoreLogging := logging.Install(logger)
	loader.SetLogger(logger.Named("config"))
	loader.OnChange(func(s config.Settings) {
		level.SetLevel(logging.ParseLevel(s.Log.Level).Level())
	})

	ctx, stopSignals := lifecycle.NotifyContext(cmd.Context())
	defer stopSignals()

	cleanup := lifecycle.NewCleanupManager(lifecycle.DefaultTimeout, logger.Named("cleanup"))
	defer cleanup.Execute()

	p := newPlatform()
	source := idle.NewSource(p.idle, logger.Named("idle"), p.idleOpts...)
	actuator := mouse.NewActuator(p.cursor, logger.Named("mouse"), p.moveOpts...)
	coord := jiggler.New(source, actuator, p.cursor, loader,
		jiggler.WithLogger(logger.Named("jiggler")),
		jiggler.WithNotifier(p.notifier(logger.Named("notify"))))

	cleanup.RegisterFunc("coordinator", coord.Stop)

	watchCtx, stopWatch := context.WithCancel(ctx)
	if err := loader.Watch(watchCtx); err != nil {
		logger.Warn("settings hot reload disabled", zap.Error(err))
	}
	cleanup.RegisterFunc("settings watcher", func() error {
		stopWatch()
		return nil
	})
	cleanup.RegisterFunc("logger", func() error {
		// Sync fails on terminals; nothing useful can be done about it here.
		_ = logger.Sync()
		restoreLogging()
		return nil
	})

	logger.Info("jiggler starting",
		zap.String("version", opts.version),
		zap.String("config", loader.Path()),
		zap.Bool("headless", opts.headless))

	if opts.headless {
		return runHeadless(ctx, coord, logger)
	}

	m := ui.InitialModel(ctx, coord, loader)
	m.SetVersion(opts.version)
	return ui.Run(ctx, m)
}

// runHeadless starts jiggling straight away and blocks until ctx is done.
func runHeadless(ctx context.Context, coord *jiggler.Coordinator, logger *zap.Logger) error {
	if err := coord.Start(ctx); err != nil {
		return err
	}
	<-ctx.Done()
	logger.Info("shutting down")
	return nil
}
