// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package core_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	qt "github.com/frankban/quicktest"
	log "github.com/sirupsen/logrus"

	"github.com/devblok/vksandbox/core"
)

var configKeys = []string{
	core.EnvWindowTitle,
	core.EnvWindowWidth,
	core.EnvWindowHeight,
	core.EnvWindowBackend,
	core.EnvPollFPS,
	core.EnvInstanceExtensions,
	core.EnvLogLevel,
}

// clearEnv unsets every configuration variable for the duration of the test.
func clearEnv(t *testing.T) {
	for _, key := range configKeys {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoadConfigurationDefaults(t *testing.T) {
	clearEnv(t)
	c := qt.New(t)

	cfg, err := core.LoadConfiguration()
	c.Assert(err, qt.IsNil)
	c.Assert(cfg.Window, qt.Equals, core.WindowConfiguration{
		Title:   "Test window",
		Width:   800,
		Height:  600,
		Backend: "sdl",
	})
	c.Assert(cfg.Time.FramesPerSecond, qt.Equals, 0)
	c.Assert(cfg.Renderer.InstanceExtensions, qt.HasLen, 0)
	c.Assert(cfg.LogLevel, qt.Equals, log.InfoLevel)
}

func TestLoadConfigurationEnvironment(t *testing.T) {
	clearEnv(t)
	c := qt.New(t)
	t.Setenv(core.EnvWindowTitle, "Sandbox")
	t.Setenv(core.EnvWindowWidth, "1024")
	t.Setenv(core.EnvWindowHeight, "768")
	t.Setenv(core.EnvWindowBackend, "GLFW")
	t.Setenv(core.EnvPollFPS, "60")
	t.Setenv(core.EnvInstanceExtensions, "VK_EXT_debug_utils, VK_KHR_get_physical_device_properties2,,")
	t.Setenv(core.EnvLogLevel, "debug")

	cfg, err := core.LoadConfiguration()
	c.Assert(err, qt.IsNil)
	c.Assert(cfg.Window, qt.Equals, core.WindowConfiguration{
		Title:   "Sandbox",
		Width:   1024,
		Height:  768,
		Backend: "glfw",
	})
	c.Assert(cfg.Time.FramesPerSecond, qt.Equals, 60)
	c.Assert(cfg.Renderer.InstanceExtensions, qt.DeepEquals,
		[]string{"VK_EXT_debug_utils", "VK_KHR_get_physical_device_properties2"})
	c.Assert(cfg.LogLevel, qt.Equals, log.DebugLevel)
}

func TestLoadConfigurationFile(t *testing.T) {
	clearEnv(t)
	c := qt.New(t)

	path := filepath.Join(t.TempDir(), "sandbox.env")
	err := os.WriteFile(path, []byte(core.EnvWindowTitle+"=From file\n"+core.EnvWindowWidth+"=640\n"), 0o600)
	c.Assert(err, qt.IsNil)

	cfg, err := core.LoadConfiguration(path)
	c.Assert(err, qt.IsNil)
	c.Assert(cfg.Window.Title, qt.Equals, "From file")
	c.Assert(cfg.Window.Width, qt.Equals, 640)
	c.Assert(cfg.Window.Height, qt.Equals, 600)

	_, err = core.LoadConfiguration(filepath.Join(t.TempDir(), "missing.env"))
	c.Assert(err, qt.ErrorMatches, "load env files: .*")
}

func TestLoadConfigurationInvalid(t *testing.T) {
	tests := []struct {
		key, value, err string
	}{
		{core.EnvWindowWidth, "wide", `parse VKSANDBOX_WINDOW_WIDTH: .*`},
		{core.EnvWindowHeight, "0", `window size must be positive, got 800x0`},
		{core.EnvPollFPS, "-1", `VKSANDBOX_POLL_FPS must not be negative`},
		{core.EnvLogLevel, "loud", `parse VKSANDBOX_LOG_LEVEL: .*`},
	}

	for _, test := range tests {
		t.Run(test.key, func(t *testing.T) {
			clearEnv(t)
			c := qt.New(t)
			t.Setenv(test.key, test.value)

			_, err := core.LoadConfiguration()
			c.Assert(err, qt.ErrorMatches, test.err)
		})
	}
}

func TestPollInterval(t *testing.T) {
	c := qt.New(t)
	c.Assert(core.TimeConfiguration{}.PollInterval(), qt.Equals, time.Duration(0))
	c.Assert(core.TimeConfiguration{FramesPerSecond: 50}.PollInterval(), qt.Equals, 20*time.Millisecond)
}
