package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/hoverkit/sim"
	"github.com/milk9111/hoverkit/tuning"
	"github.com/sirupsen/logrus"
)

type options struct {
	scene    string
	script   string
	headless bool
	ticks    int
	watch    bool
}

func main() {
	tuningDir := flag.String("tuning", tuning.Dir, "directory searched first for tuning and script files")
	sceneName := flag.String("scene", "scene.yaml", "scene file")
	scriptName := flag.String("script", "", "tengo script driving the keyboard character instead")
	headless := flag.Bool("headless", false, "run without a window and log telemetry")
	ticks := flag.Int("ticks", 600, "ticks to run in headless mode")
	debug := flag.Bool("debug", false, "enable debug logging and overlay")
	dsn := flag.String("sentry", "", "sentry DSN for crash reports")
	watch := flag.Bool("watch", false, "reload tuning and scripts when they change on disk")
	flag.Parse()

	lg := logrus.New()
	lg.Formatter = &logrus.TextFormatter{ForceColors: true}
	if *debug {
		lg.Level = logrus.DebugLevel
	}
	tuning.Dir = *tuningDir

	if *dsn != "" {
		if err := sentry.Init(sentry.ClientOptions{Dsn: *dsn}); err != nil {
			lg.WithError(err).Warn("sentry disabled")
		}
	}

	opts := options{
		scene:    *sceneName,
		script:   *scriptName,
		headless: *headless,
		ticks:    *ticks,
		watch:    *watch,
	}
	err := guard(lg, func() error { return run(lg, opts, *debug) })
	sentry.Flush(5 * time.Second)
	if err != nil {
		lg.WithError(err).Error("hoverbox stopped")
		os.Exit(1)
	}
}

// guard turns a panic into an error and reports it.
func guard(lg *logrus.Logger, fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			lg.Errorf("panic: %v", r)
			hub := sentry.CurrentHub().Clone()
			hub.ConfigureScope(func(scope *sentry.Scope) {
				scope.SetTag("component", "hoverbox")
			})
			hub.Recover(r)
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return fn()
}

func run(lg *logrus.Logger, opts options, debug bool) error {
	scene, err := tuning.LoadScene(opts.scene)
	if err != nil {
		return err
	}
	if opts.script != "" {
		driveWithScript(&scene, opts.script)
	}

	sb, err := sim.NewSandbox(scene, sim.Options{Logger: lg, Keyboard: !opts.headless})
	if err != nil {
		return err
	}

	var watcher *tuning.Watcher
	if opts.watch {
		watcher, err = tuning.NewWatcher(tuning.Dir, tuning.Dir+"/scripts")
		if err != nil {
			return fmt.Errorf("watch %s: %w", tuning.Dir, err)
		}
		defer watcher.Close()
	}

	if opts.headless {
		return runHeadless(lg, sb, watcher, opts.ticks)
	}

	runner, err := sim.NewRunner(scene.TickRate, sim.DefaultMaxCatchUp)
	if err != nil {
		return err
	}
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(baseWidth, baseHeight)
	ebiten.SetWindowTitle("hoverbox")
	return ebiten.RunGame(NewGame(sb, runner, watcher, debug))
}

// driveWithScript hands every keyboard character to the script.
func driveWithScript(scene *tuning.SceneSpec, name string) {
	for i := range scene.Characters {
		if scene.Characters[i].Input == tuning.InputKeyboard {
			scene.Characters[i].Input = tuning.InputScript
			scene.Characters[i].Script = name
		}
	}
}

func runHeadless(lg *logrus.Logger, sb *sim.Sandbox, watcher *tuning.Watcher, ticks int) error {
	rate := int(sb.Scene().TickRate)
	if rate <= 0 {
		rate = 60
	}
	dt := 1 / sb.Scene().TickRate
	for i := 0; i < ticks; i++ {
		sb.DrainReloads(watcher)
		if err := sb.Step(dt); err != nil {
			return err
		}
		if (i+1)%rate == 0 || i == ticks-1 {
			for _, c := range sb.Characters() {
				lg.WithFields(c.Fields()).WithField("tick", sb.Ticks()).Info("telemetry")
			}
		}
	}
	return nil
}
