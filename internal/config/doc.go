// Package config loads qgate settings using Viper.
//
// Settings come from, in increasing precedence: built-in defaults, the first
// config file found, and QGATE_* environment variables. Files are searched
// in this order and only the first hit is read:
//
//  1. the path given with --config
//  2. ./.qgate.yaml
//  3. $XDG_CONFIG_HOME/qgate/config.yaml
//
// A complete file looks like:
//
//	workdir: .
//	timeout: 5m
//	format: text
//	commands:
//	  typecheck: [pnpm, typecheck]
//	  lint: [pnpm, lint]
//	  test: [pnpm, test]
//	lint_fix_command: pnpm lint:fix
//	watch:
//	  debounce: 500ms
//	  ignore: [node_modules, .git, dist, coverage, "*.tsbuildinfo"]
//	telemetry:
//	  enabled: false
//
// Environment variables replace dots with underscores, e.g.
// QGATE_COMMANDS_LINT="npm run lint" or QGATE_WATCH_DEBOUNCE=1s. Command
// strings from the environment are split on whitespace.
package config
