// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package device

import (
	"unsafe"

	"github.com/cockroachdb/errors"
	vk "github.com/vulkan-go/vulkan"
)

// NewVulkanLoader binds the Vulkan loader and returns the driver entry point.
// procAddr is the vkGetInstanceProcAddr handed out by the window system,
// when nil the system Vulkan library is loaded instead.
func NewVulkanLoader(procAddr unsafe.Pointer) (Loader, error) {
	if procAddr == nil {
		if err := vk.SetDefaultGetInstanceProcAddr(); err != nil {
			return nil, errors.Wrap(err, "vk.SetDefaultGetInstanceProcAddr()")
		}
	} else {
		vk.SetGetInstanceProcAddr(procAddr)
	}

	if err := vk.Init(); err != nil {
		return nil, errors.Wrap(err, "vk.Init()")
	}
	return vulkanLoader{}, nil
}

var (
	_ Loader         = vulkanLoader{}
	_ Instance       = (*vulkanInstance)(nil)
	_ PhysicalDevice = (*vulkanPhysicalDevice)(nil)
	_ LogicalDevice  = (*vulkanDevice)(nil)
	_ Queue          = (*vulkanQueue)(nil)
)

type vulkanLoader struct{}

func (vulkanLoader) InstanceExtensions() ([]string, error) {
	var count uint32
	if err := vk.Error(vk.EnumerateInstanceExtensionProperties("", &count, nil)); err != nil {
		return nil, errors.Wrap(err, "vk.EnumerateInstanceExtensionProperties()")
	}
	props := make([]vk.ExtensionProperties, count)
	if err := vk.Error(vk.EnumerateInstanceExtensionProperties("", &count, props)); err != nil {
		return nil, errors.Wrap(err, "vk.EnumerateInstanceExtensionProperties()")
	}

	names := make([]string, 0, count)
	for _, ext := range props[:count] {
		ext.Deref()
		names = append(names, vk.ToString(ext.ExtensionName[:]))
	}
	return names, nil
}

func (vulkanLoader) CreateInstance(opts InstanceOptions) (Instance, error) {
	instanceInfo := vk.InstanceCreateInfo{
		SType:                   vk.StructureTypeInstanceCreateInfo,
		EnabledExtensionCount:   uint32(len(opts.Extensions)),
		PpEnabledExtensionNames: safeStrings(opts.Extensions),
		EnabledLayerCount:       uint32(len(opts.Layers)),
		PpEnabledLayerNames:     safeStrings(opts.Layers),
	}
	if app := opts.Application; app != nil {
		instanceInfo.PApplicationInfo = &vk.ApplicationInfo{
			SType:              vk.StructureTypeApplicationInfo,
			PApplicationName:   safeString(app.ApplicationName),
			ApplicationVersion: app.ApplicationVersion,
			PEngineName:        safeString(app.EngineName),
			EngineVersion:      app.EngineVersion,
			ApiVersion:         app.APIVersion,
		}
	}

	var instance vk.Instance
	if err := vk.Error(vk.CreateInstance(&instanceInfo, nil, &instance)); err != nil {
		return nil, errors.Wrap(err, "vk.CreateInstance()")
	}
	if err := vk.InitInstance(instance); err != nil {
		vk.DestroyInstance(instance, nil)
		return nil, errors.Wrap(err, "vk.InitInstance()")
	}
	return &vulkanInstance{instance: instance}, nil
}

type vulkanInstance struct {
	instance vk.Instance
}

func (v *vulkanInstance) PhysicalDevices() ([]PhysicalDevice, error) {
	var deviceCount uint32
	if err := vk.Error(vk.EnumeratePhysicalDevices(v.instance, &deviceCount, nil)); err != nil {
		return nil, errors.Wrap(err, "vulkan physical device enumeration failed")
	}
	availableDevices := make([]vk.PhysicalDevice, deviceCount)
	if err := vk.Error(vk.EnumeratePhysicalDevices(v.instance, &deviceCount, availableDevices)); err != nil {
		return nil, errors.Wrap(err, "vulkan physical device enumeration failed")
	}

	devices := make([]PhysicalDevice, 0, deviceCount)
	for _, pd := range availableDevices[:deviceCount] {
		devices = append(devices, &vulkanPhysicalDevice{physicalDevice: pd})
	}
	return devices, nil
}

func (v *vulkanInstance) Inner() interface{} {
	return v.instance
}

func (v *vulkanInstance) Destroy() {
	vk.DestroyInstance(v.instance, nil)
	v.instance = nil
}

type vulkanPhysicalDevice struct {
	physicalDevice vk.PhysicalDevice
}

func (v *vulkanPhysicalDevice) QueueFamilyProperties() []QueueFamilyProperties {
	var queueFamilyCount uint32
	vk.GetPhysicalDeviceQueueFamilyProperties(v.physicalDevice, &queueFamilyCount, nil)
	queueFamilies := make([]vk.QueueFamilyProperties, queueFamilyCount)
	vk.GetPhysicalDeviceQueueFamilyProperties(v.physicalDevice, &queueFamilyCount, queueFamilies)

	families := make([]QueueFamilyProperties, queueFamilyCount)
	for i := range families {
		queueFamilies[i].Deref()
		families[i] = QueueFamilyProperties{
			Flags:      QueueFlags(queueFamilies[i].QueueFlags),
			QueueCount: queueFamilies[i].QueueCount,
		}
	}
	return families
}

func (v *vulkanPhysicalDevice) Info() PhysicalDeviceInfo {
	var pdi PhysicalDeviceInfo

	// Get extension info
	var numDeviceExtensions uint32
	if err := vk.Error(vk.EnumerateDeviceExtensionProperties(v.physicalDevice, "", &numDeviceExtensions, nil)); err != nil {
		pdi.Invalid = true
	}
	deviceExt := make([]vk.ExtensionProperties, numDeviceExtensions)
	if err := vk.Error(vk.EnumerateDeviceExtensionProperties(v.physicalDevice, "", &numDeviceExtensions, deviceExt)); err != nil {
		pdi.Invalid = true
	}
	for _, ext := range deviceExt {
		ext.Deref()
		pdi.Extensions = append(pdi.Extensions, vk.ToString(ext.ExtensionName[:]))
	}

	// Get layers info
	var numDeviceLayers uint32
	if err := vk.Error(vk.EnumerateDeviceLayerProperties(v.physicalDevice, &numDeviceLayers, nil)); err != nil {
		pdi.Invalid = true
	}
	deviceLayers := make([]vk.LayerProperties, numDeviceLayers)
	if err := vk.Error(vk.EnumerateDeviceLayerProperties(v.physicalDevice, &numDeviceLayers, deviceLayers)); err != nil {
		pdi.Invalid = true
	}
	for _, layer := range deviceLayers {
		layer.Deref()
		pdi.Layers = append(pdi.Layers, vk.ToString(layer.LayerName[:]))
	}

	// Get memory info
	var memoryProperties vk.PhysicalDeviceMemoryProperties
	vk.GetPhysicalDeviceMemoryProperties(v.physicalDevice, &memoryProperties)
	memoryProperties.Deref()
	for iMem := uint32(0); iMem < memoryProperties.MemoryHeapCount; iMem++ {
		memoryProperties.MemoryHeaps[iMem].Deref()
		pdi.Memory += uint64(memoryProperties.MemoryHeaps[iMem].Size)
	}

	// Get general device info
	var physicalDeviceProperties vk.PhysicalDeviceProperties
	vk.GetPhysicalDeviceProperties(v.physicalDevice, &physicalDeviceProperties)
	physicalDeviceProperties.Deref()
	pdi.ID = int(physicalDeviceProperties.DeviceID)
	pdi.VendorID = int(physicalDeviceProperties.VendorID)
	pdi.Name = vk.ToString(physicalDeviceProperties.DeviceName[:])
	pdi.DriverVersion = int(physicalDeviceProperties.DriverVersion)
	pdi.Type = Type(physicalDeviceProperties.DeviceType)

	pdi.QueueFamilies = v.QueueFamilyProperties()
	return pdi
}

func (v *vulkanPhysicalDevice) CreateDevice(opts DeviceOptions) (LogicalDevice, error) {
	queueInfos := make([]vk.DeviceQueueCreateInfo, 0, len(opts.Queues))
	for _, q := range opts.Queues {
		queueInfos = append(queueInfos, vk.DeviceQueueCreateInfo{
			SType:            vk.StructureTypeDeviceQueueCreateInfo,
			QueueFamilyIndex: q.FamilyIndex,
			QueueCount:       uint32(len(q.Priorities)),
			PQueuePriorities: q.Priorities,
		})
	}

	dci := vk.DeviceCreateInfo{
		SType:                   vk.StructureTypeDeviceCreateInfo,
		QueueCreateInfoCount:    uint32(len(queueInfos)),
		PQueueCreateInfos:       queueInfos,
		EnabledExtensionCount:   uint32(len(opts.Extensions)),
		PpEnabledExtensionNames: safeStrings(opts.Extensions),
		PEnabledFeatures:        []vk.PhysicalDeviceFeatures{{}},
	}

	var vkDevice vk.Device
	if err := vk.Error(vk.CreateDevice(v.physicalDevice, &dci, nil, &vkDevice)); err != nil {
		return nil, errors.Wrap(err, "vk.CreateDevice()")
	}
	return &vulkanDevice{device: vkDevice}, nil
}

func (v *vulkanPhysicalDevice) Inner() interface{} {
	return v.physicalDevice
}

type vulkanDevice struct {
	device vk.Device
}

func (v *vulkanDevice) Queue(familyIndex, queueIndex uint32) Queue {
	var queue vk.Queue
	vk.GetDeviceQueue(v.device, familyIndex, queueIndex, &queue)
	return &vulkanQueue{queue: queue, family: familyIndex}
}

func (v *vulkanDevice) Inner() interface{} {
	return v.device
}

func (v *vulkanDevice) Destroy() {
	vk.DestroyDevice(v.device, nil)
	v.device = nil
}

type vulkanQueue struct {
	queue  vk.Queue
	family uint32
}

func (v *vulkanQueue) FamilyIndex() uint32 {
	return v.family
}

func (v *vulkanQueue) Inner() interface{} {
	return v.queue
}

// safeString null-terminates s for the C side of the bindings.
func safeString(s string) string {
	return s + "\x00"
}

func safeStrings(sgs []string) []string {
	safe := make([]string, 0, len(sgs))
	for _, s := range sgs {
		safe = append(safe, safeString(s))
	}
	return safe
}
