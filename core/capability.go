// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package core

import (
	"github.com/cockroachdb/errors"
	"github.com/devblok/vksandbox/device"
)

// QueueFamilyIndices holds the locations of the queue families the
// renderer needs. A negative index means the family was not found.
type QueueFamilyIndices struct {
	GraphicsFamily int
}

// NewQueueFamilyIndices returns indices with no family found yet.
func NewQueueFamilyIndices() QueueFamilyIndices {
	return QueueFamilyIndices{GraphicsFamily: -1}
}

// IsValid reports whether every required family was found.
func (i QueueFamilyIndices) IsValid() bool {
	return i.GraphicsFamily >= 0
}

// Enumerator queries the driver for what it and its devices can do.
type Enumerator struct {
	loader device.Loader
}

// NewEnumerator creates an Enumerator over the given driver.
func NewEnumerator(loader device.Loader) *Enumerator {
	return &Enumerator{loader: loader}
}

// ListInstanceExtensions returns every globally available instance extension.
func (e *Enumerator) ListInstanceExtensions() ([]string, error) {
	extensions, err := e.loader.InstanceExtensions()
	if err != nil {
		return nil, errors.Wrap(err, "list instance extensions")
	}
	return extensions, nil
}

// MissingExtensions returns the requested extensions that are not available.
// The driver is queried once.
func (e *Enumerator) MissingExtensions(requested []string) ([]string, error) {
	available, err := e.ListInstanceExtensions()
	if err != nil {
		return nil, err
	}
	return MissingExtensions(requested, available), nil
}

// ExtensionsSupported reports whether every name in requested is present in
// available. Names are compared for exact equality.
func ExtensionsSupported(requested, available []string) bool {
	return len(MissingExtensions(requested, available)) == 0
}

// MissingExtensions returns, in request order, the names in requested that
// have no exact match in available.
func MissingExtensions(requested, available []string) []string {
	set := make(map[string]struct{}, len(available))
	for _, name := range available {
		set[name] = struct{}{}
	}

	var missing []string
	for _, name := range requested {
		if _, ok := set[name]; !ok {
			missing = append(missing, name)
		}
	}
	return missing
}

// EnumeratePhysicalDevices lists the devices the instance can reach.
// An empty list means nothing supports Vulkan and fails with ErrNoCapableDevice.
func (e *Enumerator) EnumeratePhysicalDevices(instance device.Instance) ([]device.PhysicalDevice, error) {
	devices, err := instance.PhysicalDevices()
	if err != nil {
		return nil, errors.Wrap(err, "enumerate physical devices")
	}
	if len(devices) == 0 {
		return nil, errors.Mark(errors.New("can't find GPUs that support the Vulkan instance"), ErrNoCapableDevice)
	}
	return devices, nil
}

// QueueFamilies finds the first queue family that has at least one queue
// and supports graphics. The scan stops at the first match.
func (e *Enumerator) QueueFamilies(pd device.PhysicalDevice) QueueFamilyIndices {
	indices := NewQueueFamilyIndices()
	for i, family := range pd.QueueFamilyProperties() {
		if family.QueueCount > 0 && family.Flags.Has(device.QueueGraphics) {
			indices.GraphicsFamily = i
		}
		if indices.IsValid() {
			break
		}
	}
	return indices
}

// IsDeviceSuitable reports whether the device has every queue family the
// renderer needs. Device type, memory and features are not considered.
func (e *Enumerator) IsDeviceSuitable(pd device.PhysicalDevice) bool {
	return e.QueueFamilies(pd).IsValid()
}
