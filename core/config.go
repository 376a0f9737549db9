// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package core

import (
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/gobuffalo/envy"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

// Environment variables read by LoadConfiguration
const (
	EnvWindowTitle        = "VKSANDBOX_WINDOW_TITLE"
	EnvWindowWidth        = "VKSANDBOX_WINDOW_WIDTH"
	EnvWindowHeight       = "VKSANDBOX_WINDOW_HEIGHT"
	EnvWindowBackend      = "VKSANDBOX_WINDOW_BACKEND"
	EnvPollFPS            = "VKSANDBOX_POLL_FPS"
	EnvInstanceExtensions = "VKSANDBOX_INSTANCE_EXTENSIONS"
	EnvLogLevel           = "VKSANDBOX_LOG_LEVEL"
)

// Configuration defines a global engine configuration setting
type Configuration struct {
	Time     TimeConfiguration
	Window   WindowConfiguration
	Renderer RendererConfiguration
	LogLevel log.Level
}

// WindowConfiguration is used to configure the native window
type WindowConfiguration struct {
	Title   string
	Width   int
	Height  int
	Backend string
}

// RendererConfiguration is used to configure the renderer
type RendererConfiguration struct {
	// InstanceExtensions are enabled on top of
	// the ones the window requires
	InstanceExtensions []string
}

// DefaultConfiguration is used for anything the environment does not set
var DefaultConfiguration = Configuration{
	Window: WindowConfiguration{
		Title:   "Test window",
		Width:   800,
		Height:  600,
		Backend: "sdl",
	},
	LogLevel: log.InfoLevel,
}

// LoadConfiguration builds the configuration from the environment.
// A .env file in the working directory is picked up automatically,
// further files can be given and override earlier values.
func LoadConfiguration(files ...string) (Configuration, error) {
	if len(files) > 0 {
		if err := godotenv.Overload(files...); err != nil {
			return Configuration{}, errors.Wrap(err, "load env files")
		}
	}
	envy.Reload()

	cfg := DefaultConfiguration
	cfg.Window.Title = envy.Get(EnvWindowTitle, cfg.Window.Title)
	cfg.Window.Backend = strings.ToLower(envy.Get(EnvWindowBackend, cfg.Window.Backend))

	var err error
	if cfg.Window.Width, err = intFromEnv(EnvWindowWidth, cfg.Window.Width); err != nil {
		return Configuration{}, err
	}
	if cfg.Window.Height, err = intFromEnv(EnvWindowHeight, cfg.Window.Height); err != nil {
		return Configuration{}, err
	}
	if cfg.Window.Width <= 0 || cfg.Window.Height <= 0 {
		return Configuration{}, errors.Newf("window size must be positive, got %dx%d", cfg.Window.Width, cfg.Window.Height)
	}
	if cfg.Time.FramesPerSecond, err = intFromEnv(EnvPollFPS, cfg.Time.FramesPerSecond); err != nil {
		return Configuration{}, err
	}
	if cfg.Time.FramesPerSecond < 0 {
		return Configuration{}, errors.Newf("%s must not be negative", EnvPollFPS)
	}

	for _, ext := range strings.Split(envy.Get(EnvInstanceExtensions, ""), ",") {
		if ext = strings.TrimSpace(ext); ext != "" {
			cfg.Renderer.InstanceExtensions = append(cfg.Renderer.InstanceExtensions, ext)
		}
	}

	if level := envy.Get(EnvLogLevel, ""); level != "" {
		if cfg.LogLevel, err = log.ParseLevel(level); err != nil {
			return Configuration{}, errors.Wrapf(err, "parse %s", EnvLogLevel)
		}
	}
	return cfg, nil
}

func intFromEnv(key string, fallback int) (int, error) {
	value := envy.Get(key, "")
	if value == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, errors.Wrapf(err, "parse %s", key)
	}
	return n, nil
}
