// Package config loads textops settings.
//
// Settings come from three layers, later ones overriding earlier:
//
//  1. Built-in defaults
//  2. A TOML or YAML file, chosen by extension
//  3. TEXTOPS_ environment variables
//
// Environment variables map onto dotted paths: TEXTOPS_LOG_LEVEL sets
// logging.level and TEXTOPS_SECTION_KEY_NAME sets section.keyName.
//
// # Basic Usage
//
//	cfg := config.New(config.WithFile("textops.toml"))
//	if err := cfg.Load(); err != nil {
//	    return err
//	}
//	lines := cfg.Lines()
//
// Section accessors never fail. A missing setting yields its default and a
// setting of the wrong type yields the default and is recorded in
// ConfigErrors.
//
// # Live Reload
//
// Watcher reloads the file whenever it changes:
//
//	w, err := config.NewWatcher(cfg, func(c *config.Config, err error) { ... })
//	defer w.Close()
package config
