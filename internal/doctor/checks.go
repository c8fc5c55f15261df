package doctor

import (
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"slices"

	"github.com/thoreinstein/qgate/internal/errors"
	"github.com/thoreinstein/qgate/internal/paths"
)

// packageManifest is the file package scripts are read from.
const packageManifest = "package.json"

// ConfigCheck reports which config file is in use and whether it loaded.
type ConfigCheck struct {
	file    string
	loadErr error
}

var _ Check = (*ConfigCheck)(nil)

// NewConfigCheck creates a config check. file is the config file in use
// ("" for built-in defaults) and loadErr the error from loading it.
func NewConfigCheck(file string, loadErr error) *ConfigCheck {
	return &ConfigCheck{file: file, loadErr: loadErr}
}

// Name returns the unique identifier for this check.
func (c *ConfigCheck) Name() string { return "config" }

// Category returns the grouping for this check.
func (c *ConfigCheck) Category() string { return "config" }

// Run executes the config diagnostic check.
func (c *ConfigCheck) Run() *CheckResult {
	result := &CheckResult{Name: c.Name(), Category: c.Category()}

	if c.loadErr != nil {
		result.Status = SeverityError
		result.Message = c.loadErr.Error()
		result.FixHint = "qgate init --force"
		return result
	}
	if c.file == "" {
		result.Status = SeverityInfo
		result.Message = "no config file, using built-in defaults"
		result.FixHint = "qgate init"
		return result
	}

	result.Details = map[string]any{"file": c.file}
	info, err := os.Stat(c.file)
	if err != nil {
		result.Status = SeverityError
		result.Message = fmt.Sprintf("cannot stat %s: %v", c.file, err)
		return result
	}
	// Unix permissions don't apply on Windows.
	if runtime.GOOS != "windows" && info.Mode().Perm()&0o002 != 0 {
		result.Status = SeverityWarning
		result.Message = fmt.Sprintf("%s is world-writable (%04o)", c.file, info.Mode().Perm())
		result.FixHint = "chmod 644 " + c.file
		return result
	}

	result.Status = SeverityPass
	result.Message = "loaded " + c.file
	return result
}

// WorkdirCheck validates the directory checks run in.
type WorkdirCheck struct {
	dir string
}

var _ Check = (*WorkdirCheck)(nil)

// NewWorkdirCheck creates a work directory check.
func NewWorkdirCheck(dir string) *WorkdirCheck {
	return &WorkdirCheck{dir: dir}
}

// Name returns the unique identifier for this check.
func (c *WorkdirCheck) Name() string { return "workdir" }

// Category returns the grouping for this check.
func (c *WorkdirCheck) Category() string { return "filesystem" }

// Run executes the work directory diagnostic check.
func (c *WorkdirCheck) Run() *CheckResult {
	result := &CheckResult{Name: c.Name(), Category: c.Category()}

	dir, err := paths.ResolveWorkdir(c.dir)
	if err != nil {
		result.Status = SeverityError
		result.Message = err.Error()
		result.FixHint = "set workdir in the config file or pass -C"
		return result
	}
	result.Details = map[string]any{"dir": dir}

	if _, err := os.Stat(filepath.Join(dir, packageManifest)); err != nil {
		result.Status = SeverityWarning
		result.Message = "no " + packageManifest + " in " + dir
		return result
	}

	result.Status = SeverityPass
	result.Message = dir
	return result
}

// ToolCheck verifies that a check's executable is on PATH.
type ToolCheck struct {
	check string
	key   string
	argv  []string
}

var _ Check = (*ToolCheck)(nil)

// NewToolCheck creates a tool check for the named check. key is the config
// key holding argv, used in hints.
func NewToolCheck(check, key string, argv []string) *ToolCheck {
	return &ToolCheck{check: check, key: key, argv: argv}
}

// Name returns the unique identifier for this check.
func (c *ToolCheck) Name() string { return "tool:" + c.check }

// Category returns the grouping for this check.
func (c *ToolCheck) Category() string { return "tools" }

// Run executes the tool diagnostic check.
func (c *ToolCheck) Run() *CheckResult {
	result := &CheckResult{Name: c.Name(), Category: c.Category()}

	if len(c.argv) == 0 || c.argv[0] == "" {
		result.Status = SeverityError
		result.Message = "no command configured"
		result.FixHint = "set " + c.key
		return result
	}

	path, err := exec.LookPath(c.argv[0])
	if err != nil {
		result.Status = SeverityError
		result.Message = fmt.Sprintf("%s not found in PATH", c.argv[0])
		result.FixHint = fmt.Sprintf("install %s or change %s", c.argv[0], c.key)
		return result
	}

	result.Status = SeverityPass
	result.Message = path
	return result
}

// ScriptCheck verifies that a package-manager command names a script that
// package.json defines.
type ScriptCheck struct {
	check string
	dir   string
	argv  []string
}

var _ Check = (*ScriptCheck)(nil)

// NewScriptCheck creates a script check for argv run in dir.
func NewScriptCheck(check, dir string, argv []string) *ScriptCheck {
	return &ScriptCheck{check: check, dir: dir, argv: argv}
}

// Name returns the unique identifier for this check.
func (c *ScriptCheck) Name() string { return "script:" + c.check }

// Category returns the grouping for this check.
func (c *ScriptCheck) Category() string { return "tools" }

// Run executes the script diagnostic check.
func (c *ScriptCheck) Run() *CheckResult {
	result := &CheckResult{Name: c.Name(), Category: c.Category()}

	script, ok := ScriptName(c.argv)
	if !ok {
		result.Status = SeverityInfo
		result.Message = "not a package script"
		return result
	}
	result.Details = map[string]any{"script": script}

	manifest := filepath.Join(c.dir, packageManifest)
	scripts, err := readScripts(manifest)
	if err != nil {
		if os.IsNotExist(err) {
			result.Status = SeverityWarning
			result.Message = packageManifest + " not found"
			return result
		}
		result.Status = SeverityError
		result.Message = err.Error()
		return result
	}

	if _, ok := scripts[script]; !ok {
		result.Status = SeverityError
		result.Message = fmt.Sprintf("script %q is not defined in %s", script, packageManifest)
		result.FixHint = fmt.Sprintf("add a %q entry under \"scripts\"", script)
		return result
	}

	result.Status = SeverityPass
	result.Message = script + ": " + scripts[script]
	return result
}

// ScriptName extracts the package script argv runs, for pnpm, npm, yarn,
// and bun invocations such as "pnpm lint", "npm run lint", or "npm test".
func ScriptName(argv []string) (string, bool) {
	if len(argv) < 2 {
		return "", false
	}
	manager, rest := filepath.Base(argv[0]), argv[1:]
	if !slices.Contains([]string{"pnpm", "npm", "yarn", "bun"}, manager) {
		return "", false
	}

	if rest[0] == "run" || rest[0] == "run-script" {
		if len(rest) < 2 {
			return "", false
		}
		return rest[1], true
	}
	// npm only runs lifecycle scripts without "run".
	if manager == "npm" && !slices.Contains([]string{"test", "start", "stop", "restart"}, rest[0]) {
		return "", false
	}
	return rest[0], true
}

func readScripts(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var manifest struct {
		Scripts map[string]string `json:"scripts"`
	}
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil, errors.Wrapf(err, "parsing %s", path)
	}
	return manifest.Scripts, nil
}
