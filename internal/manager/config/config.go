package config

import (
	"fmt"
	"sync"

	"github.com/spf13/cast"
	"github.com/spf13/viper"
)

const (
	// FFMpegPath is the path to the ffmpeg executable. Empty means resolve
	// from PATH at startup.
	FFMpegPath = "ffmpeg_path"
	// FFProbePath is the path to the ffprobe executable.
	FFProbePath = "ffprobe_path"

	// DefaultQuality is the export quality profile used when none is given.
	DefaultQuality        = "export.default_quality"
	defaultQualityDefault = "high"

	// TransitionsEnabled toggles cross-fade transitions for multi-clip exports.
	TransitionsEnabled = "export.transitions_enabled"

	// TransitionDuration is the cross-fade duration in milliseconds.
	TransitionDuration        = "export.transition_duration"
	transitionDurationDefault = 500

	// TempDir is the directory temp clips are staged under during export.
	// Empty uses the system default.
	TempDir = "export.temp_dir"

	// UndoDepth is the maximum number of commands kept on the undo stack.
	UndoDepth        = "undo_depth"
	undoDepthDefault = 100

	// MarkerTolerance is the snap window in milliseconds for marker lookup.
	MarkerTolerance        = "marker_tolerance"
	markerToleranceDefault = 500

	Language        = "language"
	languageDefault = "en-US"

	// LogLevel is the minimum level written to the log.
	LogLevel        = "log_level"
	logLevelDefault = "Info"
)

type Config struct {
	// main stores the values written back to the config file. overrides
	// holds flag and environment values which take precedence but are
	// never persisted.
	main      *viper.Viper
	overrides *viper.Viper

	filePath    string
	isNewSystem bool

	sync.RWMutex
}

func (i *Config) IsNewSystem() bool {
	return i.isNewSystem
}

func (i *Config) SetConfigFile(fn string) {
	i.Lock()
	defer i.Unlock()
	i.filePath = fn
	i.main.SetConfigFile(fn)
}

func (i *Config) GetConfigFile() string {
	i.RLock()
	defer i.RUnlock()
	return i.filePath
}

// Set sets a value in the main config, overwriting any value loaded from
// the config file. It does not write the file; call Write for that.
func (i *Config) Set(key string, value interface{}) {
	i.Lock()
	defer i.Unlock()
	i.main.Set(key, value)
}

func (i *Config) HasOverride(key string) bool {
	i.RLock()
	defer i.RUnlock()
	return i.overrides.IsSet(key)
}

// viper returns the viper instance that should be used to get the provided
// key. Returns the overrides instance if the key is set there, otherwise
// the main instance is returned.
func (i *Config) viper(key string) *viper.Viper {
	v := i.main
	if i.overrides.IsSet(key) {
		v = i.overrides
	}
	return v
}

func (i *Config) getString(key string) string {
	i.RLock()
	defer i.RUnlock()
	return i.viper(key).GetString(key)
}

func (i *Config) getBool(key string) bool {
	i.RLock()
	defer i.RUnlock()
	return i.viper(key).GetBool(key)
}

func (i *Config) getInt(key string) int {
	i.RLock()
	defer i.RUnlock()
	return i.viper(key).GetInt(key)
}

func (i *Config) getStringDefault(key string, def string) string {
	i.RLock()
	defer i.RUnlock()

	v := i.viper(key)
	ret := def
	if v.IsSet(key) {
		ret = v.GetString(key)
	}
	return ret
}

func (i *Config) getIntDefault(key string, def int) int {
	i.RLock()
	defer i.RUnlock()

	v := i.viper(key)
	ret := def
	if v.IsSet(key) {
		ret = cast.ToInt(v.Get(key))
	}
	return ret
}

func (i *Config) GetFFMpegPath() string {
	return i.getString(FFMpegPath)
}

func (i *Config) GetFFProbePath() string {
	return i.getString(FFProbePath)
}

func (i *Config) GetDefaultQuality() string {
	return i.getStringDefault(DefaultQuality, defaultQualityDefault)
}

func (i *Config) GetTransitionsEnabled() bool {
	return i.getBool(TransitionsEnabled)
}

func (i *Config) GetTransitionDuration() int {
	return i.getIntDefault(TransitionDuration, transitionDurationDefault)
}

func (i *Config) GetTempDir() string {
	return i.getString(TempDir)
}

func (i *Config) GetUndoDepth() int {
	return i.getIntDefault(UndoDepth, undoDepthDefault)
}

func (i *Config) GetMarkerTolerance() int {
	return i.getIntDefault(MarkerTolerance, markerToleranceDefault)
}

func (i *Config) GetLanguage() string {
	return i.getStringDefault(Language, languageDefault)
}

func (i *Config) GetLogLevel() string {
	level := i.getStringDefault(LogLevel, logLevelDefault)
	if level != "Debug" && level != "Info" && level != "Warning" && level != "Error" {
		level = logLevelDefault
	}
	return level
}

// Validate checks that configured values are usable. Paths are only
// validated when set; empty tool paths mean PATH resolution.
func (i *Config) Validate() error {
	if d := i.GetTransitionDuration(); d <= 0 {
		return fmt.Errorf("invalid %s: %d", TransitionDuration, d)
	}
	if d := i.GetUndoDepth(); d <= 0 {
		return fmt.Errorf("invalid %s: %d", UndoDepth, d)
	}
	return nil
}

// setDefaultValues copies default values into the main config so that a
// written config file is self-describing.
func (i *Config) setDefaultValues() {
	i.main.SetDefault(DefaultQuality, defaultQualityDefault)
	i.main.SetDefault(TransitionsEnabled, true)
	i.main.SetDefault(TransitionDuration, transitionDurationDefault)
	i.main.SetDefault(UndoDepth, undoDepthDefault)
	i.main.SetDefault(MarkerTolerance, markerToleranceDefault)
	i.main.SetDefault(Language, languageDefault)
	i.main.SetDefault(LogLevel, logLevelDefault)
}

// Write writes the main config to the config file, if one is set.
func (i *Config) Write() error {
	i.Lock()
	defer i.Unlock()

	if i.filePath == "" {
		return nil
	}
	return i.main.WriteConfig()
}
