package platform

import (
	"os"
	"strings"

	"github.com/cockroachdb/errors"
)

var (
	errEmptyAppName  = errors.New("app name is empty")
	errEmptyExecPath = errors.New("exec path is empty")
)

// Service defines OS-specific helpers needed by the application.
type Service interface {
	GetConfigDir() (string, error)
	GetStateDir() (string, error)
	EnableAutostart(appName, execPath string, args ...string) error
	DisableAutostart(appName string) error
}

type platformService struct{}

// NewService returns a platform-specific implementation.
func NewService() Service {
	return &platformService{}
}

// GetConfigDir returns the OS-standard configuration directory.
func (service *platformService) GetConfigDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err == nil && configDir != "" {
		return configDir, nil
	}

	homeDir, homeErr := os.UserHomeDir()
	if homeErr != nil {
		if err != nil {
			return "", errors.Wrap(err, "get config dir")
		}
		return "", errors.Wrap(homeErr, "get config dir")
	}

	return fallbackConfigDir(homeDir), nil
}

// GetStateDir returns the directory for logs and other runtime state.
func (service *platformService) GetStateDir() (string, error) {
	if stateDir := stateDirFromEnv(); stateDir != "" {
		return stateDir, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "get state dir")
	}
	return fallbackStateDir(homeDir), nil
}

func checkAutostartArgs(appName, execPath string) error {
	if appName == "" {
		return errEmptyAppName
	}
	if execPath == "" {
		return errEmptyExecPath
	}
	return nil
}

func slug(appName string) string {
	name := strings.TrimSpace(appName)
	if name == "" {
		name = "restwatch"
	}
	name = strings.ToLower(name)
	return strings.ReplaceAll(name, " ", "-")
}
