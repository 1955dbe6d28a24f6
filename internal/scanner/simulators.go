package scanner

import (
	"context"
	"errors"
	"path/filepath"
)

// SimulatorManager removes simulator devices through the platform tooling
// instead of deleting their directories.
type SimulatorManager interface {
	DeleteAll(ctx context.Context) error
}

var errNoSimulatorManager = errors.New("no simulator manager available")

// SimulatorDevices resolves every device directory under devicesDir.
func SimulatorDevices(devicesDir string) Resolver {
	return func(_ context.Context) ([]string, error) {
		devices, err := listDirs(devicesDir)
		if err != nil {
			return nil, err
		}

		paths := make([]string, 0, len(devices))
		for _, d := range devices {
			paths = append(paths, filepath.Join(devicesDir, d.Name()))
		}
		return paths, nil
	}
}

func simulatorPurge(m SimulatorManager) func(context.Context) error {
	return func(ctx context.Context) error {
		if m == nil {
			return errNoSimulatorManager
		}
		return m.DeleteAll(ctx)
	}
}
