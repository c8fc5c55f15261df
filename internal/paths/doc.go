// Package paths resolves the locations qgate reads and writes: the user's
// XDG config directory, the per-project config file, and the directory the
// checks run in.
//
// The package wraps github.com/adrg/xdg, so the global config lives at
// ~/.config/qgate/config.yaml on Linux and the platform equivalent
// elsewhere. QGATE_CONFIG_DIR overrides the directory outright, which tests
// rely on to stay hermetic.
package paths
