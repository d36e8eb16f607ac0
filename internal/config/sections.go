package config

import (
	"errors"
	"time"
)

// Section accessor methods return snapshot structs. Mutating the returned
// struct does not modify the underlying configuration. Use Config.Set()
// to update configuration values.

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum level logged: debug, info, warn or error.
	Level string
}

// LinesConfig holds defaults for the line actions.
type LinesConfig struct {
	// CaseSensitive makes dedup and sort compare keys exactly.
	CaseSensitive bool

	// Offset is the column dedup and sort keys start at.
	Offset int

	// JoinWithSpaces separates joined lines with a space.
	JoinWithSpaces bool
}

// PercentConfig holds defaults for percent encoding.
type PercentConfig struct {
	// KeepUnencoded lists characters left as they are.
	KeepUnencoded string
}

// EncodingConfig holds defaults for redecoding.
type EncodingConfig struct {
	// Default is the encoding files are read and written in.
	Default string

	// Transliterate strips accents from redecoded text.
	Transliterate bool

	// Language filters the encodings offered, "mul" for all.
	Language string
}

// StatsConfig holds document statistics settings.
type StatsConfig struct {
	// LiveThreshold is the largest document, in characters, whose statistics
	// update on every change.
	LiveThreshold int
}

// PluginsConfig holds Lua script settings.
type PluginsConfig struct {
	// Timeout bounds one script run.
	Timeout time.Duration
}

// WatchConfig holds settings for watch mode.
type WatchConfig struct {
	// Debounce is the quiet period before a changed file is processed.
	Debounce time.Duration

	// Action is applied to each file after it is saved.
	Action string
}

// Logging returns logging settings.
func (c *Config) Logging() LoggingConfig {
	return LoggingConfig{
		Level: c.getStringOr("logging.level", "info"),
	}
}

// Lines returns line action settings.
func (c *Config) Lines() LinesConfig {
	offset := c.getIntOr("lines.offset", 0)
	if offset < 0 {
		offset = 0
	}
	return LinesConfig{
		CaseSensitive:  c.getBoolOr("lines.caseSensitive", false),
		Offset:         offset,
		JoinWithSpaces: c.getBoolOr("lines.joinWithSpaces", true),
	}
}

// Percent returns percent encoding settings.
func (c *Config) Percent() PercentConfig {
	return PercentConfig{
		KeepUnencoded: c.getStringOr("percent.keepUnencoded", ""),
	}
}

// Encoding returns encoding settings.
func (c *Config) Encoding() EncodingConfig {
	return EncodingConfig{
		Default:       c.getStringOr("encoding.default", "utf_8"),
		Transliterate: c.getBoolOr("encoding.transliterate", false),
		Language:      c.getStringOr("encoding.language", "mul"),
	}
}

// Stats returns statistics settings.
func (c *Config) Stats() StatsConfig {
	return StatsConfig{
		LiveThreshold: c.getIntOr("stats.liveThreshold", 300000),
	}
}

// Plugins returns Lua script settings.
func (c *Config) Plugins() PluginsConfig {
	return PluginsConfig{
		Timeout: c.getDurationOr("plugins.timeout", 5*time.Second),
	}
}

// Watch returns watch mode settings.
func (c *Config) Watch() WatchConfig {
	return WatchConfig{
		Debounce: c.getDurationOr("watch.debounce", 100*time.Millisecond),
		Action:   c.getStringOr("watch.action", "lines.removeTrailingSpaces"),
	}
}

// Helper methods for getting values with defaults.
// These methods only return the default silently for ErrSettingNotFound.
// Type errors are recorded and return the default to avoid breaking callers,
// but indicate a configuration problem that should be fixed.

func (c *Config) getStringOr(path string, defaultValue string) string {
	v, err := c.GetString(path)
	if err != nil {
		c.recordConfigError(path, err)
		return defaultValue
	}
	return v
}

func (c *Config) getIntOr(path string, defaultValue int) int {
	v, err := c.GetInt(path)
	if err != nil {
		c.recordConfigError(path, err)
		return defaultValue
	}
	return v
}

func (c *Config) getBoolOr(path string, defaultValue bool) bool {
	v, err := c.GetBool(path)
	if err != nil {
		c.recordConfigError(path, err)
		return defaultValue
	}
	return v
}

func (c *Config) getDurationOr(path string, defaultValue time.Duration) time.Duration {
	v, err := c.GetDuration(path)
	if err != nil {
		c.recordConfigError(path, err)
		return defaultValue
	}
	return v
}

// recordConfigError stores configuration errors for later retrieval.
// Only the first error for each path is recorded to preserve the original cause.
func (c *Config) recordConfigError(path string, err error) {
	if errors.Is(err, ErrSettingNotFound) {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.configErrors == nil {
		c.configErrors = make(map[string]error)
	}
	if _, exists := c.configErrors[path]; !exists {
		c.configErrors[path] = err
	}
}

// ConfigErrors returns any configuration errors encountered during access.
func (c *Config) ConfigErrors() map[string]error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.configErrors == nil {
		return nil
	}
	result := make(map[string]error, len(c.configErrors))
	for k, v := range c.configErrors {
		result[k] = v
	}
	return result
}

// ClearConfigErrors clears any stored configuration errors.
func (c *Config) ClearConfigErrors() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.configErrors = nil
}

// Check reads every section and returns the settings that have the wrong
// type, keyed by path.
func (c *Config) Check() map[string]error {
	c.Logging()
	c.Lines()
	c.Percent()
	c.Encoding()
	c.Stats()
	c.Plugins()
	c.Watch()
	return c.ConfigErrors()
}
