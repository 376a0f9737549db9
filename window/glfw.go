// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package window

import (
	"unsafe"

	"github.com/cockroachdb/errors"
	"github.com/go-gl/glfw/v3.3/glfw"
	log "github.com/sirupsen/logrus"
)

type glfwHost struct {
	window *glfw.Window
}

func openGLFW(cfg Config) (*glfwHost, error) {
	if err := glfw.Init(); err != nil {
		return nil, errors.Wrap(err, "glfw.Init()")
	}

	if !glfw.VulkanSupported() {
		glfw.Terminate()
		return nil, errors.New("glfw: Vulkan loader not found")
	}

	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)
	glfw.WindowHint(glfw.Resizable, glfw.False)

	window, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, errors.Wrap(err, "glfw.CreateWindow()")
	}

	log.WithFields(log.Fields{
		"backend": BackendGLFW,
		"width":   cfg.Width,
		"height":  cfg.Height,
	}).Debug("Window opened")
	return &glfwHost{window: window}, nil
}

func (h *glfwHost) ShouldClose() bool {
	return h.window.ShouldClose()
}

func (h *glfwHost) PollEvents() {
	glfw.PollEvents()
}

func (h *glfwHost) RequiredInstanceExtensions() []string {
	return h.window.GetRequiredInstanceExtensions()
}

func (h *glfwHost) ProcAddr() unsafe.Pointer {
	return glfw.GetVulkanGetInstanceProcAddress()
}

func (h *glfwHost) Destroy() {
	h.window.Destroy()
	glfw.Terminate()
}
