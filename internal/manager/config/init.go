package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/Mikuu177/qt-cw-vedio/pkg/fsutil"
	"github.com/Mikuu177/qt-cw-vedio/pkg/logger"
)

type flagStruct struct {
	configFilePath string
}

var flags flagStruct

func init() {
	pflag.String("ffmpeg_path", "", "path to the ffmpeg executable")
	pflag.String("ffprobe_path", "", "path to the ffprobe executable")
	pflag.StringVarP(&flags.configFilePath, "config", "c", "", "config file to use")
}

// Called at startup
func Initialize() (*Config, error) {
	cfg := &Config{
		main:      viper.New(),
		overrides: viper.New(),
	}

	cfg.initOverrides()

	err := cfg.initConfig()
	if err != nil {
		return nil, err
	}

	if !cfg.isNewSystem {
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}

	cfg.setDefaultValues()

	return cfg, nil
}

// Called by tests to initialize an empty config
func InitializeEmpty() *Config {
	cfg := &Config{
		main:      viper.New(),
		overrides: viper.New(),
	}
	cfg.setDefaultValues()
	return cfg
}

func bindEnv(v *viper.Viper, key string) {
	if err := v.BindEnv(key); err != nil {
		panic(fmt.Sprintf("unable to set environment key (%v): %v", key, err))
	}
}

func (i *Config) initOverrides() {
	v := i.overrides

	if err := v.BindPFlags(pflag.CommandLine); err != nil {
		logger.Infof("failed to bind flags: %v", err)
	}

	v.SetEnvPrefix("qtcw")      // will be uppercased automatically
	bindEnv(v, "ffmpeg_path")   // QTCW_FFMPEG_PATH
	bindEnv(v, "ffprobe_path")  // QTCW_FFPROBE_PATH
	bindEnv(v, "log_level")     // QTCW_LOG_LEVEL
	bindEnv(v, "language")      // QTCW_LANGUAGE
}

func (i *Config) initConfig() error {
	v := i.main

	v.SetConfigType("yml")

	configFile := ""
	envConfigFile := os.Getenv("QTCW_CONFIG_FILE")

	switch {
	case flags.configFilePath != "":
		configFile = flags.configFilePath
	case envConfigFile != "":
		configFile = envConfigFile
	default:
		// Look for config in the working directory and in $HOME/.qtcw
		paths := []string{
			".",
			filepath.Join(fsutil.GetHomeDirectory(), ".qtcw"),
		}
		configFile = fsutil.FindInPaths(paths, "config.yml")

		// if we haven't found a config file, we have a new system
		if configFile == "" {
			i.isNewSystem = true
			return nil
		}
	}

	i.SetConfigFile(configFile)

	// if the config file does not exist, we also have a new system
	if exists, _ := fsutil.FileExists(configFile); !exists {
		i.isNewSystem = true

		// ensure we can write to the file
		if err := fsutil.Touch(configFile); err != nil {
			return fmt.Errorf(`could not write to provided config path "%s": %v`, configFile, err)
		} else {
			// remove the file
			os.Remove(configFile)
		}

		return nil
	}

	err := v.ReadInConfig()
	if err != nil {
		return err
	}

	return nil
}
