// Package config loads and watches the todo demo configuration file (todo.yaml).
//
// Load(path) reads the YAML file, applies defaults (min length 1 counted in
// letters, 500ms fortune delay, built-in fortunes) and validates the result.
//
// Watch(ctx, path, logger, onChange) uses fsnotify to detect writes and calls
// onChange with the newly parsed Config, which the CLI feeds into the todo
// controller's observables.
package config
