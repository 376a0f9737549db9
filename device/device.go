// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package device is a thin layer over the Vulkan driver. It hands out
// instances, physical devices, logical devices and queues as interfaces
// so that callers can be driven by something other than a real GPU.
package device

// QueueFlags describes the capabilities of a queue family.
type QueueFlags uint32

// Queue family capabilities, matching the values of VkQueueFlagBits.
const (
	QueueGraphics      QueueFlags = 0x1
	QueueCompute       QueueFlags = 0x2
	QueueTransfer      QueueFlags = 0x4
	QueueSparseBinding QueueFlags = 0x8
)

// Has reports whether all bits of other are set.
func (f QueueFlags) Has(other QueueFlags) bool {
	return f&other == other
}

// Type is the kind of a physical device.
type Type int

// Physical device kinds, matching VkPhysicalDeviceType.
const (
	TypeOther Type = iota
	TypeIntegratedGPU
	TypeDiscreteGPU
	TypeVirtualGPU
	TypeCPU
)

func (t Type) String() string {
	switch t {
	case TypeIntegratedGPU:
		return "integrated"
	case TypeDiscreteGPU:
		return "discrete"
	case TypeVirtualGPU:
		return "virtual"
	case TypeCPU:
		return "cpu"
	default:
		return "other"
	}
}

// MarshalText implements encoding.TextMarshaler
func (t Type) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// MakeVersion packs a version the way VK_MAKE_VERSION does.
func MakeVersion(major, minor, patch uint32) uint32 {
	return major<<22 | minor<<12 | patch
}

// ApplicationInfo describes the application to the driver.
type ApplicationInfo struct {
	ApplicationName    string
	ApplicationVersion uint32
	EngineName         string
	EngineVersion      uint32
	APIVersion         uint32
}

// InstanceOptions configures instance creation.
type InstanceOptions struct {
	Application *ApplicationInfo
	Extensions  []string
	Layers      []string
}

// QueueFamilyProperties describes one queue family of a physical device.
type QueueFamilyProperties struct {
	Flags      QueueFlags
	QueueCount uint32
}

// QueueOptions requests queues from a single family.
type QueueOptions struct {
	FamilyIndex uint32
	Priorities  []float32
}

// DeviceOptions configures logical device creation. No device features
// are ever enabled.
type DeviceOptions struct {
	Queues     []QueueOptions
	Extensions []string
}

// PhysicalDeviceInfo describes available physical properties of a rendering device
type PhysicalDeviceInfo struct {
	ID            int
	VendorID      int
	DriverVersion int
	Name          string
	Type          Type
	Invalid       bool
	Extensions    []string
	Layers        []string
	Memory        uint64
	QueueFamilies []QueueFamilyProperties
}

// Loader is the global entry point of the driver.
type Loader interface {
	// InstanceExtensions lists every globally available instance extension.
	InstanceExtensions() ([]string, error)

	// CreateInstance creates a new API instance.
	CreateInstance(opts InstanceOptions) (Instance, error)
}

// Instance is an application's connection to the driver.
type Instance interface {
	// PhysicalDevices returns the devices in driver enumeration order.
	PhysicalDevices() ([]PhysicalDevice, error)

	// Inner returns the inner handle of the underlying API
	Inner() interface{}

	// Destroy destroys the instance. Every logical device created from it
	// must be destroyed first.
	Destroy()
}

// PhysicalDevice is a GPU exposed by the driver. It is owned by the
// driver and needs no destruction.
type PhysicalDevice interface {
	// QueueFamilyProperties lists queue families in index order.
	QueueFamilyProperties() []QueueFamilyProperties

	// Info gathers general, extension, layer and memory information.
	Info() PhysicalDeviceInfo

	// CreateDevice creates a logical device.
	CreateDevice(opts DeviceOptions) (LogicalDevice, error)

	Inner() interface{}
}

// LogicalDevice is a configured connection to a physical device.
type LogicalDevice interface {
	// Queue retrieves a queue created together with the device.
	Queue(familyIndex, queueIndex uint32) Queue

	Inner() interface{}

	// Destroy destroys the device, which also invalidates its queues.
	Destroy()
}

// Queue is used to submit work to the device. Its lifetime is that of
// the logical device it came from.
type Queue interface {
	FamilyIndex() uint32
	Inner() interface{}
}
