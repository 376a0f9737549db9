// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package core brings up Vulkan for a window: it creates the instance,
// picks a physical device and creates a logical device with a graphics
// queue.
package core

import "github.com/devblok/vksandbox/device"

// ExtensionProvider is anything that needs instance extensions enabled,
// usually the window the renderer will eventually draw into.
type ExtensionProvider interface {
	// RequiredInstanceExtensions returns the names of extensions
	// that have to be present on the instance
	RequiredInstanceExtensions() []string
}

// Renderer describes the rendering machinery.
// It's created only with internal values set,
// it needs to be initialised with Init() before use.
type Renderer interface {
	// Init brings the renderer up to a usable state
	Init(window ExtensionProvider) error

	// State reports how far initialisation got
	State() State

	// Cleanup destroys internal members
	Cleanup()
}

// MainDevice pairs the selected physical device with the logical device
// created from it. The physical device is borrowed from the driver.
type MainDevice struct {
	PhysicalDevice device.PhysicalDevice
	LogicalDevice  device.LogicalDevice
}

// State is a step of the renderer initialisation.
type State int

// Renderer states, in the only order they can be reached.
const (
	Uninitialized State = iota
	InstanceCreated
	PhysicalDeviceSelected
	LogicalDeviceReady
	Destroyed
)

var stateNames = [...]string{
	Uninitialized:          "uninitialized",
	InstanceCreated:        "instance created",
	PhysicalDeviceSelected: "physical device selected",
	LogicalDeviceReady:     "logical device ready",
	Destroyed:              "destroyed",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}
	return stateNames[s]
}
