package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"

	"github.com/thoreinstein/qgate/internal/errors"
)

const (
	// AppName names the config directory.
	AppName = "qgate"

	// ProjectConfigName is the per-project config file, looked up in the
	// current directory.
	ProjectConfigName = ".qgate.yaml"

	// GlobalConfigName is the file name inside ConfigDir.
	GlobalConfigName = "config.yaml"

	// EnvConfigDir overrides ConfigDir.
	EnvConfigDir = "QGATE_CONFIG_DIR"
)

// Sentinel errors for path resolution.
var (
	// ErrInvalidPath indicates the provided path is malformed or unusable.
	ErrInvalidPath = errors.New("invalid path")

	// ErrNotDirectory indicates a path exists but is not a directory.
	ErrNotDirectory = errors.New("not a directory")
)

// DefaultDirPerm is the permission for newly created config directories.
const DefaultDirPerm = 0o700

// EnsureDir creates path and any parents. A zero perm means DefaultDirPerm.
func EnsureDir(path string, perm os.FileMode) error {
	if perm == 0 {
		perm = DefaultDirPerm
	}
	return errors.Wrapf(os.MkdirAll(path, perm), "creating %s", path)
}

// ConfigHome returns the XDG config home directory.
// On Linux: ~/.config
// On macOS: ~/Library/Application Support
// On Windows: %LOCALAPPDATA%
func ConfigHome() string {
	return xdg.ConfigHome
}

// ConfigDir returns the qgate config directory, honoring QGATE_CONFIG_DIR.
func ConfigDir() string {
	if dir := os.Getenv(EnvConfigDir); dir != "" {
		return dir
	}
	return filepath.Join(ConfigHome(), AppName)
}

// GlobalConfigFile returns <ConfigDir>/config.yaml.
func GlobalConfigFile() string {
	return filepath.Join(ConfigDir(), GlobalConfigName)
}

// ProjectConfigFile returns the project config path inside dir.
func ProjectConfigFile(dir string) string {
	return filepath.Join(dir, ProjectConfigName)
}

// ResolveWorkdir returns dir as a cleaned absolute path after checking it is
// an existing directory. An empty dir means the current directory.
func ResolveWorkdir(dir string) (string, error) {
	if dir == "" {
		dir = "."
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", errors.Mark(errors.Wrapf(err, "resolving %q", dir), ErrInvalidPath)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return "", errors.Mark(errors.Wrapf(err, "workdir %s", abs), ErrInvalidPath)
	}
	if !info.IsDir() {
		return "", errors.Wrapf(ErrNotDirectory, "workdir %s", abs)
	}
	return abs, nil
}
