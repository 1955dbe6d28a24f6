// Package simctl drives `xcrun simctl` to remove simulator devices.
package simctl

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"sort"
	"time"

	"github.com/lu-zhengda/macsweep/internal/log"
)

// ErrNotInstalled is returned when xcrun cannot be found.
var ErrNotInstalled = errors.New("xcrun is not installed")

const defaultTimeout = 2 * time.Minute

type Device struct {
	UDID        string `json:"udid"`
	Name        string `json:"name"`
	State       string `json:"state"`
	IsAvailable bool   `json:"isAvailable"`
	Runtime     string `json:"-"`
}

type deviceList struct {
	Devices map[string][]Device `json:"devices"`
}

type Manager struct {
	// lookPath is used to check if xcrun is installed.
	// Defaults to exec.LookPath; override in tests.
	lookPath func(file string) (string, error)

	// runCmd executes a command and returns its stdout.
	// Defaults to exec.CommandContext(...).Output(); override in tests.
	runCmd func(ctx context.Context, name string, args ...string) ([]byte, error)

	timeout time.Duration
}

func New() *Manager {
	return &Manager{
		lookPath: exec.LookPath,
		runCmd: func(ctx context.Context, name string, args ...string) ([]byte, error) {
			return exec.CommandContext(ctx, name, args...).Output()
		},
		timeout: defaultTimeout,
	}
}

func (m *Manager) run(ctx context.Context, args ...string) ([]byte, error) {
	if _, err := m.lookPath("xcrun"); err != nil {
		return nil, ErrNotInstalled
	}

	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	out, err := m.runCmd(ctx, "xcrun", append([]string{"simctl"}, args...)...)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("simctl %s: %w", args[0], ctx.Err())
		}
		return nil, fmt.Errorf("simctl %s: %w", args[0], err)
	}
	return out, nil
}

// List returns every simulator device, sorted by runtime then name.
func (m *Manager) List(ctx context.Context) ([]Device, error) {
	out, err := m.run(ctx, "list", "devices", "-j")
	if err != nil {
		return nil, err
	}

	var list deviceList
	if err := json.Unmarshal(out, &list); err != nil {
		return nil, fmt.Errorf("failed to parse simctl output: %w", err)
	}

	var devices []Device
	for runtime, ds := range list.Devices {
		for _, d := range ds {
			d.Runtime = runtime
			devices = append(devices, d)
		}
	}
	sort.Slice(devices, func(i, j int) bool {
		if devices[i].Runtime != devices[j].Runtime {
			return devices[i].Runtime < devices[j].Runtime
		}
		return devices[i].Name < devices[j].Name
	})
	return devices, nil
}

func (m *Manager) Delete(ctx context.Context, udid string) error {
	_, err := m.run(ctx, "delete", udid)
	return err
}

// DeleteUnavailable removes devices whose runtime is no longer installed.
func (m *Manager) DeleteUnavailable(ctx context.Context) error {
	_, err := m.run(ctx, "delete", "unavailable")
	return err
}

// DeleteAll deletes every available device and then purges unavailable
// ones. It keeps going after failures and returns them joined.
func (m *Manager) DeleteAll(ctx context.Context) error {
	var errs []error

	devices, err := m.List(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to list simulators")
		errs = append(errs, err)
	}

	for _, d := range devices {
		if !d.IsAvailable {
			continue
		}
		log.Info().Str("udid", d.UDID).Str("name", d.Name).Msg("deleting simulator")
		if err := m.Delete(ctx, d.UDID); err != nil {
			log.Error().Err(err).Str("udid", d.UDID).Msg("failed to delete simulator")
			errs = append(errs, err)
		}
	}

	if err := m.DeleteUnavailable(ctx); err != nil {
		log.Error().Err(err).Msg("failed to delete unavailable simulators")
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}
