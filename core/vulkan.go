// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package core

import (
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/devblok/vksandbox/device"
	"github.com/loov/hrtime"
	log "github.com/sirupsen/logrus"
)

// graphicsQueuePriority is the priority of the single graphics queue, 1 is the highest.
const graphicsQueuePriority float32 = 1.0

// DefaultApplicationInfo describes the application to the driver
var DefaultApplicationInfo = device.ApplicationInfo{
	ApplicationName:    "Vulkan App",
	ApplicationVersion: device.MakeVersion(1, 0, 0),
	EngineName:         "No Engine",
	EngineVersion:      device.MakeVersion(1, 0, 0),
	APIVersion:         device.MakeVersion(1, 0, 0),
}

// NewVulkanRenderer creates a not yet initialised Vulkan renderer
func NewVulkanRenderer(loader device.Loader, cfg RendererConfiguration) *VulkanRenderer {
	return &VulkanRenderer{
		configuration: cfg,
		loader:        loader,
		enumerator:    NewEnumerator(loader),
		indices:       NewQueueFamilyIndices(),
		log:           log.StandardLogger(),
	}
}

var _ Renderer = (*VulkanRenderer)(nil)

// VulkanRenderer owns the Vulkan instance, the logical device and its
// graphics queue. Handles are only valid in the LogicalDeviceReady state.
type VulkanRenderer struct {
	configuration RendererConfiguration

	loader     device.Loader
	enumerator *Enumerator
	log        log.FieldLogger

	window ExtensionProvider
	state  State

	instance      device.Instance
	mainDevice    MainDevice
	indices       QueueFamilyIndices
	graphicsQueue device.Queue
}

// WithLogger replaces the logger, the standard logrus logger is used otherwise.
func (v *VulkanRenderer) WithLogger(logger log.FieldLogger) *VulkanRenderer {
	v.log = logger
	return v
}

// Init creates the instance, selects a physical device and creates the
// logical device. Required instance extensions are taken from window, which
// may be nil when running headless. On failure the error is logged, whatever
// was created is released, and the renderer must not be used again.
func (v *VulkanRenderer) Init(window ExtensionProvider) error {
	start := hrtime.Now()
	v.window = window

	if err := v.initialise(); err != nil {
		v.log.Errorf("ERROR: %s", err)
		v.release()
		return err
	}

	v.log.WithFields(log.Fields{
		"family":  v.indices.GraphicsFamily,
		"elapsed": hrtime.Since(start),
	}).Info("Vulkan initialised")
	return nil
}

func (v *VulkanRenderer) initialise() error {
	if err := v.CreateInstance(); err != nil {
		return err
	}
	if err := v.SelectPhysicalDevice(); err != nil {
		return err
	}
	return v.CreateLogicalDevice()
}

// State implements interface
func (v *VulkanRenderer) State() State {
	return v.state
}

// Instance returns the API instance
func (v *VulkanRenderer) Instance() device.Instance {
	return v.instance
}

// MainDevice returns the selected physical device and the logical device
func (v *VulkanRenderer) MainDevice() MainDevice {
	return v.mainDevice
}

// GraphicsQueue returns the queue retrieved from the logical device
func (v *VulkanRenderer) GraphicsQueue() device.Queue {
	return v.graphicsQueue
}

// QueueFamilyIndices returns the families found on the selected device
func (v *VulkanRenderer) QueueFamilyIndices() QueueFamilyIndices {
	return v.indices
}

func (v *VulkanRenderer) expect(state State, step string) error {
	if v.state != state {
		return errors.Mark(errors.Newf("%s: renderer is %s, expected %s", step, v.state, state), ErrRendererState)
	}
	return nil
}

func (v *VulkanRenderer) advance(state State) {
	v.state = state
	v.log.WithField("state", state).Debug("Renderer state changed")
}

// CreateInstance creates the Vulkan instance with the configured and the
// window-required extensions enabled. No layers are enabled.
func (v *VulkanRenderer) CreateInstance() error {
	if err := v.expect(Uninitialized, "create instance"); err != nil {
		return err
	}

	extensions := appendUnique(nil, v.configuration.InstanceExtensions...)
	if v.window != nil {
		extensions = appendUnique(extensions, v.window.RequiredInstanceExtensions()...)
	}

	missing, err := v.enumerator.MissingExtensions(extensions)
	if err != nil {
		return errors.Wrap(err, "create instance")
	}
	if len(missing) > 0 {
		return errors.Mark(
			errors.Newf("VkInstance does not support required extensions: %s", strings.Join(missing, ", ")),
			ErrUnsupportedExtension,
		)
	}

	appInfo := DefaultApplicationInfo
	instance, err := v.loader.CreateInstance(device.InstanceOptions{
		Application: &appInfo,
		Extensions:  extensions,
	})
	if err != nil {
		return errors.Mark(errors.Wrap(err, "failed to create a Vulkan instance"), ErrInstanceCreation)
	}

	v.instance = instance
	v.log.WithField("extensions", extensions).Debug("Vulkan instance created")
	v.advance(InstanceCreated)
	return nil
}

// SelectPhysicalDevice picks the first device, in enumeration order,
// that is suitable for the renderer.
func (v *VulkanRenderer) SelectPhysicalDevice() error {
	if err := v.expect(InstanceCreated, "select physical device"); err != nil {
		return err
	}

	devices, err := v.enumerator.EnumeratePhysicalDevices(v.instance)
	if err != nil {
		return err
	}

	for i, pd := range devices {
		indices := v.enumerator.QueueFamilies(pd)
		if !indices.IsValid() {
			v.log.WithField("device", i).Debug("Physical device not suitable")
			continue
		}

		v.mainDevice.PhysicalDevice = pd
		v.indices = indices
		v.log.WithFields(log.Fields{
			"device": i,
			"family": indices.GraphicsFamily,
		}).Debug("Physical device selected")
		v.advance(PhysicalDeviceSelected)
		return nil
	}

	return errors.Mark(errors.New("failed to find a suitable physical device"), ErrNoSuitableDevice)
}

// CreateLogicalDevice creates the logical device with a single queue from
// the graphics family, and keeps that queue. No device extensions or
// features are enabled.
func (v *VulkanRenderer) CreateLogicalDevice() error {
	if err := v.expect(PhysicalDeviceSelected, "create logical device"); err != nil {
		return err
	}

	family := uint32(v.indices.GraphicsFamily)
	logicalDevice, err := v.mainDevice.PhysicalDevice.CreateDevice(device.DeviceOptions{
		Queues: []device.QueueOptions{{
			FamilyIndex: family,
			Priorities:  []float32{graphicsQueuePriority},
		}},
	})
	if err != nil {
		return errors.Mark(errors.Wrap(err, "failed to create a logical device"), ErrDeviceCreation)
	}

	v.mainDevice.LogicalDevice = logicalDevice
	v.graphicsQueue = logicalDevice.Queue(family, 0)
	v.advance(LogicalDeviceReady)
	return nil
}

// Cleanup destroys the logical device and then the instance.
// Calling it more than once does nothing.
func (v *VulkanRenderer) Cleanup() {
	if v.state == Destroyed {
		return
	}
	v.release()
}

// release tears down in reverse creation order, from any state.
func (v *VulkanRenderer) release() {
	if v.mainDevice.LogicalDevice != nil {
		v.mainDevice.LogicalDevice.Destroy()
		v.mainDevice.LogicalDevice = nil
		v.graphicsQueue = nil
	}
	v.mainDevice.PhysicalDevice = nil

	if v.instance != nil {
		v.instance.Destroy()
		v.instance = nil
	}
	v.advance(Destroyed)
}

func appendUnique(list []string, names ...string) []string {
	for _, name := range names {
		if !contains(list, name) {
			list = append(list, name)
		}
	}
	return list
}

func contains(list []string, name string) bool {
	for _, s := range list {
		if s == name {
			return true
		}
	}
	return false
}
