// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package core_test

import (
	"github.com/devblok/vksandbox/device"
)

// recorder keeps the order in which driver objects were created and destroyed.
type recorder struct {
	calls []string
}

func (r *recorder) add(call string) {
	r.calls = append(r.calls, call)
}

type fakeLoader struct {
	rec *recorder

	extensions    []string
	extensionsErr error
	createErr     error
	devices       []device.PhysicalDevice
	devicesErr    error

	instanceOpts *device.InstanceOptions
}

func newFakeLoader(extensions ...string) *fakeLoader {
	return &fakeLoader{rec: &recorder{}, extensions: extensions}
}

func (l *fakeLoader) withDevices(devices ...*fakePhysicalDevice) *fakeLoader {
	for _, d := range devices {
		d.rec = l.rec
		l.devices = append(l.devices, d)
	}
	return l
}

func (l *fakeLoader) InstanceExtensions() ([]string, error) {
	return l.extensions, l.extensionsErr
}

func (l *fakeLoader) CreateInstance(opts device.InstanceOptions) (device.Instance, error) {
	if l.createErr != nil {
		return nil, l.createErr
	}
	l.instanceOpts = &opts
	l.rec.add("create instance")
	return &fakeInstance{loader: l}, nil
}

type fakeInstance struct {
	loader *fakeLoader
}

func (i *fakeInstance) PhysicalDevices() ([]device.PhysicalDevice, error) {
	return i.loader.devices, i.loader.devicesErr
}

func (i *fakeInstance) Inner() interface{} { return i }

func (i *fakeInstance) Destroy() {
	i.loader.rec.add("destroy instance")
}

type fakePhysicalDevice struct {
	rec *recorder

	name      string
	families  []device.QueueFamilyProperties
	createErr error

	deviceOpts *device.DeviceOptions
}

func newFakePhysicalDevice(name string, families ...device.QueueFamilyProperties) *fakePhysicalDevice {
	return &fakePhysicalDevice{rec: &recorder{}, name: name, families: families}
}

func (p *fakePhysicalDevice) QueueFamilyProperties() []device.QueueFamilyProperties {
	return p.families
}

func (p *fakePhysicalDevice) Info() device.PhysicalDeviceInfo {
	return device.PhysicalDeviceInfo{Name: p.name, QueueFamilies: p.families}
}

func (p *fakePhysicalDevice) CreateDevice(opts device.DeviceOptions) (device.LogicalDevice, error) {
	if p.createErr != nil {
		return nil, p.createErr
	}
	p.deviceOpts = &opts
	p.rec.add("create device " + p.name)
	return &fakeLogicalDevice{rec: p.rec, name: p.name}, nil
}

func (p *fakePhysicalDevice) Inner() interface{} { return p }

type fakeLogicalDevice struct {
	rec  *recorder
	name string
}

func (d *fakeLogicalDevice) Queue(familyIndex, queueIndex uint32) device.Queue {
	return &fakeQueue{family: familyIndex, index: queueIndex}
}

func (d *fakeLogicalDevice) Inner() interface{} { return d }

func (d *fakeLogicalDevice) Destroy() {
	d.rec.add("destroy device " + d.name)
}

type fakeQueue struct {
	family uint32
	index  uint32
}

func (q *fakeQueue) FamilyIndex() uint32 { return q.family }

func (q *fakeQueue) Inner() interface{} { return q }

type fakeWindow []string

func (w fakeWindow) RequiredInstanceExtensions() []string { return w }

func graphics(count uint32) device.QueueFamilyProperties {
	return device.QueueFamilyProperties{Flags: device.QueueGraphics, QueueCount: count}
}

func compute(count uint32) device.QueueFamilyProperties {
	return device.QueueFamilyProperties{Flags: device.QueueCompute | device.QueueTransfer, QueueCount: count}
}
