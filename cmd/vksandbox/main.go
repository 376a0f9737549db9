// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package main

import (
	"os"
	"runtime"

	"github.com/devblok/vksandbox/core"
	"github.com/devblok/vksandbox/device"
	"github.com/devblok/vksandbox/window"
	log "github.com/sirupsen/logrus"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	os.Exit(run())
}

// run owns the window and the renderer, everything it creates is torn
// down in reverse order before it returns the exit status.
func run() int {
	configuration, err := core.LoadConfiguration()
	if err != nil {
		log.WithError(err).Fatal("Invalid configuration")
	}
	log.SetLevel(configuration.LogLevel)

	host, err := window.Open(window.Config{
		Title:   configuration.Window.Title,
		Width:   configuration.Window.Width,
		Height:  configuration.Window.Height,
		Backend: configuration.Window.Backend,
	})
	if err != nil {
		log.WithError(err).Fatal("Could not open window")
	}
	defer host.Destroy()

	loader, err := device.NewVulkanLoader(host.ProcAddr())
	if err != nil {
		log.WithError(err).Error("Could not load Vulkan")
		return 1
	}

	renderer := core.NewVulkanRenderer(loader, configuration.Renderer)
	if err := renderer.Init(host); err != nil {
		return 1
	}
	defer renderer.Cleanup()

	window.Run(host, configuration.Time.PollInterval())
	log.Info("Event loop exited")
	return 0
}
