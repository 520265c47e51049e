package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/NextPr0gram/dusky/internal/config"
	"github.com/NextPr0gram/dusky/internal/hypr"
	"github.com/NextPr0gram/dusky/internal/monconf"
	"github.com/NextPr0gram/dusky/internal/scale"
	"github.com/charmbracelet/log"
)

// setupRuntime loads the user configuration and applies command-line
// overrides on top of it. Called at the start of every command that talks
// to the compositor.
func setupRuntime() {
	log.SetLevel(log.WarnLevel)
	if verbose {
		log.SetLevel(log.DebugLevel)
	}

	userConfig, err := config.LoadUserConfig()
	if err != nil {
		log.Warnf("Failed to load config, using defaults: %v", err)
		userConfig = config.DefaultConfig()
	}

	overrides := config.Overrides{
		Monitor:      monitorFlag,
		MonitorsFile: confFlag,
		DryRun:       dryRun,
		NoNotify:     noNotify,
	}
	config.ApplyOverrides(overrides, userConfig)

	log.Debugf("Monitors file: %s", config.MonitorsFile)
}

// targetMonitor resolves the monitor the command operates on. An explicit
// --monitor flag names it, otherwise the focused monitor is used.
func targetMonitor(ctx context.Context, client *hypr.Client) (*hypr.Monitor, error) {
	if config.TargetMonitor != "" {
		return client.MonitorByName(ctx, config.TargetMonitor)
	}
	return client.FocusedMonitor(ctx)
}

// runStep moves the target monitor one rung along the scale ladder.
func runStep(dir scale.Direction) error {
	setupRuntime()
	ctx := context.Background()

	client, err := hypr.NewClient()
	if err != nil {
		return err
	}

	mon, err := targetMonitor(ctx, client)
	if err != nil {
		return err
	}

	ladder := scale.New(config.Ladder)
	res := ladder.Next(mon.Scale, dir, mon.Width, mon.Height, config.MinLogicalWidth, config.MinLogicalHeight)
	if !res.Changed {
		msg := fmt.Sprintf("%s already at the %s of the ladder (scale %s)", mon.Name, boundaryName(dir), scale.Format(res.Scale))
		fmt.Println(msg)
		notify(ctx, client, hypr.NotifyIconInfo, msg)
		return nil
	}

	return applyScale(ctx, client, mon, res)
}

// runSet applies an explicit scale factor instead of stepping the ladder.
// The value is not required to sit on the ladder.
func runSet(arg string) error {
	setupRuntime()
	ctx := context.Background()

	target, err := strconv.ParseFloat(arg, 64)
	if err != nil {
		return fmt.Errorf("invalid scale %q: %w", arg, err)
	}
	if target <= 0 {
		return fmt.Errorf("invalid scale %q: must be positive", arg)
	}

	client, err := hypr.NewClient()
	if err != nil {
		return err
	}

	mon, err := targetMonitor(ctx, client)
	if err != nil {
		return err
	}

	if scale.Equal(target, mon.Scale) {
		fmt.Printf("%s already at scale %s\n", mon.Name, scale.Format(target))
		return nil
	}

	res := scale.Result{
		Scale:         target,
		LogicalWidth:  scale.Logical(mon.Width, target),
		LogicalHeight: scale.Logical(mon.Height, target),
		Changed:       true,
	}
	return applyScale(ctx, client, mon, res)
}

// applyScale persists the new scale to the monitors file, applies it live
// through the compositor, and verifies the compositor kept it.
func applyScale(ctx context.Context, client *hypr.Client, mon *hypr.Monitor, res scale.Result) error {
	formatted := scale.Format(res.Scale)
	rule := mon.Rule(formatted)

	if config.DryRun {
		fmt.Printf("would set %s scale %s -> %s (%dx%d logical)\n",
			mon.Name, scale.Format(mon.Scale), formatted, res.LogicalWidth, res.LogicalHeight)
		fmt.Printf("would write %q to %s\n", rule, config.MonitorsFile)
		return nil
	}

	store := monconf.New(config.MonitorsFile)
	if err := store.Update(mon.Name, formatted); err != nil {
		return err
	}
	log.Debugf("Wrote scale %s for %s to %s", formatted, mon.Name, store.Path())

	if err := client.Keyword(ctx, "monitor", rule); err != nil {
		return err
	}

	applied, err := verifyScale(ctx, client, mon.Name, res.Scale, store)
	if err != nil {
		return err
	}
	if !scale.Equal(applied, res.Scale) {
		formatted = scale.Format(applied)
		res.LogicalWidth = scale.Logical(mon.Width, applied)
		res.LogicalHeight = scale.Logical(mon.Height, applied)
	}

	msg := fmt.Sprintf("%s scale %s -> %s (%dx%d logical)",
		mon.Name, scale.Format(mon.Scale), formatted, res.LogicalWidth, res.LogicalHeight)
	fmt.Println(msg)
	notify(ctx, client, hypr.NotifyIconOK, msg)
	return nil
}

// verifyScale re-reads the monitor after a short settle delay and reconciles
// the monitors file when the compositor adjusted the requested factor to
// something its backend could honor.
func verifyScale(ctx context.Context, client *hypr.Client, name string, requested float64, store *monconf.Store) (float64, error) {
	time.Sleep(config.VerifyDelay)

	mon, err := client.MonitorByName(ctx, name)
	if err != nil {
		return 0, fmt.Errorf("failed to verify applied scale: %w", err)
	}

	if scale.Equal(mon.Scale, requested) {
		return mon.Scale, nil
	}

	log.Warnf("Compositor adjusted scale %s to %s, recording the reported value",
		scale.Format(requested), scale.Format(mon.Scale))
	if err := store.Update(name, scale.Format(mon.Scale)); err != nil {
		return 0, err
	}
	return mon.Scale, nil
}

// notify sends a compositor notification. Failures are logged and swallowed
// since the scale change itself already succeeded.
func notify(ctx context.Context, client *hypr.Client, icon int, message string) {
	if !config.NotifyEnabled || config.DryRun {
		return
	}
	if err := client.Notify(ctx, icon, config.NotifyTimeout, message); err != nil {
		log.Debugf("Failed to send notification: %v", err)
	}
}

// printConfigPath prints the path of the user configuration file.
func printConfigPath() error {
	path, err := config.GetConfigPath()
	if err != nil {
		return fmt.Errorf("failed to resolve config path: %w", err)
	}
	fmt.Println(path)
	return nil
}

// initConfig writes a fresh default configuration file. Refuses to clobber
// an existing file unless forced.
func initConfig(force bool) error {
	path, err := config.GetConfigPath()
	if err != nil {
		return fmt.Errorf("failed to resolve config path: %w", err)
	}
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("config already exists at %s (use --force to overwrite)", path)
	}

	if _, err := config.WriteDefaultConfig(); err != nil {
		return err
	}
	fmt.Printf("Wrote default config to %s\n", path)
	return nil
}

// boundaryName names the end of the ladder a step direction runs into.
func boundaryName(dir scale.Direction) string {
	if dir == scale.Up {
		return "top"
	}
	return "bottom"
}
