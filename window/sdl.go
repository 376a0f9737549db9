// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package window

import (
	"unsafe"

	"github.com/cockroachdb/errors"
	log "github.com/sirupsen/logrus"
	"github.com/veandco/go-sdl2/sdl"
)

type sdlHost struct {
	window *sdl.Window
	closed bool
}

func openSDL(cfg Config) (*sdlHost, error) {
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return nil, errors.Wrap(err, "sdl.Init()")
	}

	if err := sdl.VulkanLoadLibrary(""); err != nil {
		sdl.Quit()
		return nil, errors.Wrap(err, "sdl.VulkanLoadLibrary()")
	}

	window, err := sdl.CreateWindow(cfg.Title,
		sdl.WINDOWPOS_UNDEFINED,
		sdl.WINDOWPOS_UNDEFINED,
		int32(cfg.Width),
		int32(cfg.Height),
		sdl.WINDOW_SHOWN|sdl.WINDOW_VULKAN)
	if err != nil {
		sdl.VulkanUnloadLibrary()
		sdl.Quit()
		return nil, errors.Wrap(err, "sdl.CreateWindow()")
	}

	log.WithFields(log.Fields{
		"backend": BackendSDL,
		"width":   cfg.Width,
		"height":  cfg.Height,
	}).Debug("Window opened")
	return &sdlHost{window: window}, nil
}

func (h *sdlHost) ShouldClose() bool {
	return h.closed
}

func (h *sdlHost) PollEvents() {
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch et := event.(type) {
		case *sdl.KeyboardEvent:
			if et.Keysym.Sym == sdl.K_ESCAPE {
				h.closed = true
			}
		case *sdl.WindowEvent:
			if et.Event == sdl.WINDOWEVENT_CLOSE {
				h.closed = true
			}
		case *sdl.QuitEvent:
			h.closed = true
		}
	}
}

func (h *sdlHost) RequiredInstanceExtensions() []string {
	return h.window.VulkanGetInstanceExtensions()
}

func (h *sdlHost) ProcAddr() unsafe.Pointer {
	return sdl.VulkanGetVkGetInstanceProcAddr()
}

func (h *sdlHost) Destroy() {
	if err := h.window.Destroy(); err != nil {
		log.WithError(err).Warn("Window destroy failed")
	}
	sdl.VulkanUnloadLibrary()
	sdl.Quit()
}
