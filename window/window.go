// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package window opens the native window Vulkan is brought up for and pumps
// its events. Windows are never resizable and never get an OpenGL context.
package window

import (
	"time"
	"unsafe"

	"github.com/cockroachdb/errors"
)

// ErrWindowInit marks every failure to bring up the window system.
var ErrWindowInit = errors.New("window initialisation failed")

// Backend names accepted by Open
const (
	BackendSDL  = "sdl"
	BackendGLFW = "glfw"
)

// Config describes the window to open
type Config struct {
	Title   string
	Width   int
	Height  int
	Backend string
}

// Host is an open native window together with its window system.
type Host interface {
	// ShouldClose reports whether the user asked for the window to close
	ShouldClose() bool

	// PollEvents dispatches pending events without blocking
	PollEvents()

	// RequiredInstanceExtensions returns the instance extensions
	// the window system needs to present to this window
	RequiredInstanceExtensions() []string

	// ProcAddr returns vkGetInstanceProcAddr as loaded by the window system
	ProcAddr() unsafe.Pointer

	// Destroy destroys the window and shuts down the window system
	Destroy()
}

// Open creates the window with the configured backend. It must be called
// from the main, locked OS thread.
func Open(cfg Config) (Host, error) {
	var (
		host Host
		err  error
	)
	switch cfg.Backend {
	case BackendSDL, "":
		host, err = openSDL(cfg)
	case BackendGLFW:
		host, err = openGLFW(cfg)
	default:
		err = errors.Newf("unknown window backend %q", cfg.Backend)
	}
	if err != nil {
		return nil, errors.Mark(err, ErrWindowInit)
	}
	return host, nil
}

// Run polls events until the host wants to close. With a positive interval
// polls are paced by a ticker, otherwise they run back to back.
func Run(host Host, interval time.Duration) {
	if interval <= 0 {
		for !host.ShouldClose() {
			host.PollEvents()
		}
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for !host.ShouldClose() {
		host.PollEvents()
		<-ticker.C
	}
}
