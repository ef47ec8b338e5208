// Package input types text and sends key presses to application windows with
// xdotool.
package input

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strconv"
	"time"

	"github.com/1broseidon/wmproj/internal/project"
)

// ErrTextOrKeyInputFailed is returned when an xdotool invocation does not
// finish within the exec timeout.
var ErrTextOrKeyInputFailed = errors.New("text or key input failed")

// DefaultBinary is the automation tool used when none is configured.
const DefaultBinary = "xdotool"

// Driver runs xdotool against windows owned by a given process.
type Driver struct {
	Binary string
	Logger *slog.Logger
}

// NewDriver returns a driver for binary, or DefaultBinary if empty.
func NewDriver(binary string, logger *slog.Logger) *Driver {
	if binary == "" {
		binary = DefaultBinary
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Driver{Binary: binary, Logger: logger}
}

// locator selects the first visible window of pid, focuses it and leaves it
// on the xdotool window stack as %1.
func locator(pid int) []string {
	return []string{
		"search", "--sync", "--onlyvisible", "--any", "--pid", strconv.Itoa(pid),
		"ignorepattern",
		"windowfocus", "--sync", "%1",
	}
}

// Drive sends ex to the window of pid. It stops at the first invocation
// that fails or times out.
func (d *Driver) Drive(ctx context.Context, pid int, ex project.Exec) error {
	base := locator(pid)

	switch ex.Type {
	case project.ExecText, project.ExecTextNoReturn:
		for _, text := range ex.Commands {
			if err := d.run(ctx, ex.Timeout, concat(base, "type", "--window", "%1", text)); err != nil {
				return err
			}
			if ex.Type == project.ExecText {
				if err := d.run(ctx, ex.Timeout, concat(base, "key", "--window", "%1", "Return")); err != nil {
					return err
				}
			}
		}
	case project.ExecKeys:
		return d.run(ctx, ex.Timeout, concat(base, append([]string{"key", "--window", "%1"}, ex.Commands...)...))
	default:
		return fmt.Errorf("unsupported exec type %v", ex.Type)
	}
	return nil
}

// run starts one invocation and waits at most timeout for it. The exit status
// is not interpreted. On timeout the process is killed and reaped.
func (d *Driver) run(ctx context.Context, timeout time.Duration, args []string) error {
	cmd := exec.Command(d.Binary, args...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to run %s: %w", d.Binary, err)
	}
	d.Logger.Debug("xdotool started", "pid", cmd.Process.Pid, "args", args)

	done := make(chan error, 1)
	go func() { done <- cmd.Wait() }()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-done:
		return nil
	case <-timer.C:
		cmd.Process.Kill()
		<-done
		d.Logger.Warn("xdotool timed out", "timeout", timeout, "args", args)
		return fmt.Errorf("%w: %s did not finish within %s", ErrTextOrKeyInputFailed, d.Binary, timeout)
	case <-ctx.Done():
		cmd.Process.Kill()
		<-done
		return ctx.Err()
	}
}

func concat(base []string, rest ...string) []string {
	out := make([]string, 0, len(base)+len(rest))
	out = append(out, base...)
	return append(out, rest...)
}
