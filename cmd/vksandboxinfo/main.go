// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Command vksandboxinfo prints what the driver reports about every
// physical device as JSON, without opening a window.
package main

import (
	"encoding/json"
	"os"

	"github.com/devblok/vksandbox/core"
	"github.com/devblok/vksandbox/device"
	log "github.com/sirupsen/logrus"
)

func main() {
	os.Exit(run())
}

func run() int {
	configuration, err := core.LoadConfiguration()
	if err != nil {
		log.WithError(err).Fatal("Invalid configuration")
	}
	log.SetLevel(configuration.LogLevel)

	loader, err := device.NewVulkanLoader(nil)
	if err != nil {
		log.WithError(err).Fatal("Could not load Vulkan")
	}

	appInfo := core.DefaultApplicationInfo
	instance, err := loader.CreateInstance(device.InstanceOptions{
		Application: &appInfo,
		Extensions:  configuration.Renderer.InstanceExtensions,
	})
	if err != nil {
		log.WithError(err).Fatal("Could not create instance")
	}
	defer instance.Destroy()

	devices, err := core.NewEnumerator(loader).EnumeratePhysicalDevices(instance)
	if err != nil {
		log.WithError(err).Error("Could not enumerate devices")
		return 1
	}

	infos := make([]device.PhysicalDeviceInfo, 0, len(devices))
	for _, pd := range devices {
		infos = append(infos, pd.Info())
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(infos); err != nil {
		log.WithError(err).Error("Could not encode device info")
		return 1
	}
	return 0
}
