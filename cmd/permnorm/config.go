package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/lucas-albers-lz4/permnorm/pkg/exitcodes"
	"github.com/lucas-albers-lz4/permnorm/pkg/fileutil"
	log "github.com/lucas-albers-lz4/permnorm/pkg/log"
)

// Configuration keys. Each is also a persistent flag and an environment
// variable (PERMNORM_ + upper-cased key with '-' replaced by '_').
const (
	keyLogLevel  = "log-level"
	keyLogFormat = "log-format"
	keyDebug     = "debug"
	keyPathsFrom = "paths-from"

	envPrefix      = "PERMNORM"
	configBaseName = ".permnorm"
)

// settings is the resolved configuration for one run.
type settings struct {
	LogLevel  string
	LogFormat string
	Debug     bool
	PathsFrom string
}

// loadSettings merges flags, environment and the optional config file, in
// that order of precedence.
func loadSettings(flags *pflag.FlagSet, cfgFile string) (*settings, error) {
	v := viper.New()
	v.SetFs(fileutil.DefaultFS.GetUnderlyingFs())
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlags(flags); err != nil {
		return nil, &exitcodes.ExitCodeError{
			Code: exitcodes.ExitInternalError,
			Err:  fmt.Errorf("failed to bind flags: %w", err),
		}
	}

	if err := readConfigFile(v, cfgFile); err != nil {
		return nil, err
	}

	return &settings{
		LogLevel:  v.GetString(keyLogLevel),
		LogFormat: v.GetString(keyLogFormat),
		Debug:     v.GetBool(keyDebug),
		PathsFrom: v.GetString(keyPathsFrom),
	}, nil
}

// readConfigFile loads cfgFile, or $HOME/.permnorm.yaml when cfgFile is
// empty. Only an explicitly requested file has to exist.
func readConfigFile(v *viper.Viper, cfgFile string) error {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			log.Debug("No home directory, skipping config file lookup", "error", err)
			return nil
		}
		v.SetConfigName(configBaseName)
		v.SetConfigType("yaml")
		v.AddConfigPath(home)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return nil
		}
		return &exitcodes.ExitCodeError{
			Code: exitcodes.ExitInputConfigurationError,
			Err:  fmt.Errorf("failed to read config file %s: %w", displayConfigPath(v, cfgFile), err),
		}
	}
	log.Debug("Loaded config file", "file", v.ConfigFileUsed())
	return nil
}

func displayConfigPath(v *viper.Viper, cfgFile string) string {
	if cfgFile != "" {
		return cfgFile
	}
	if used := v.ConfigFileUsed(); used != "" {
		return used
	}
	return filepath.Join("$HOME", configBaseName+".yaml")
}

// applyLogging configures pkg/log from settings. An unknown format is a
// configuration error; an unknown level falls back to INFO with a warning.
func applyLogging(s *settings) error {
	if err := log.SetFormat(s.LogFormat); err != nil {
		return &exitcodes.ExitCodeError{
			Code: exitcodes.ExitInputConfigurationError,
			Err:  err,
		}
	}

	level := log.LevelInfo
	if s.Debug {
		level = log.LevelDebug
	} else if s.LogLevel != "" {
		parsed, err := log.ParseLevel(s.LogLevel)
		if err != nil {
			log.Warnf("Invalid log level specified: '%s'. Using default: %s. Error: %v", s.LogLevel, level, err)
		} else {
			level = parsed
		}
	}
	log.SetLevel(level)
	return nil
}
