//go:build vkvalidate

// Package vkvalidate hands an emitted SPIR-V module to a real Vulkan
// driver via vkCreateShaderModule and reports whether the driver
// accepted it. It is not part of the compiler: the core backend never
// imports this package. It exists as an opt-in smoke-test harness for
// environments with a working Vulkan loader and ICD, built only under
// the vkvalidate tag because most CI and developer machines lack one.
package vkvalidate

import (
	"fmt"

	vk "github.com/goki/vulkan"
)

// Validator owns a headless Vulkan instance and device used only to
// compile shader modules; it draws nothing and presents nothing.
type Validator struct {
	instance vk.Instance
	device   vk.Device
}

// New creates a headless Vulkan instance and picks the first physical
// device's first queue family, matching the minimal bring-up every real
// Vulkan backend needs before it can call vkCreateShaderModule.
func New() (*Validator, error) {
	if err := vk.SetDefaultGetInstanceProcAddr(); err != nil {
		return nil, fmt.Errorf("vulkan loader: %w", err)
	}
	if err := vk.Init(); err != nil {
		return nil, fmt.Errorf("vulkan init: %w", err)
	}

	appInfo := vk.ApplicationInfo{
		SType:      vk.StructureTypeApplicationInfo,
		ApiVersion: vk.MakeVersion(1, 1, 0),
	}
	createInfo := vk.InstanceCreateInfo{
		SType:            vk.StructureTypeInstanceCreateInfo,
		PApplicationInfo: &appInfo,
	}

	var instance vk.Instance
	if res := vk.CreateInstance(&createInfo, nil, &instance); res != vk.Success {
		return nil, fmt.Errorf("vkCreateInstance failed: %d", res)
	}
	vk.InitInstance(instance)

	var deviceCount uint32
	vk.EnumeratePhysicalDevices(instance, &deviceCount, nil)
	if deviceCount == 0 {
		vk.DestroyInstance(instance, nil)
		return nil, fmt.Errorf("no Vulkan physical devices available")
	}
	physicalDevices := make([]vk.PhysicalDevice, deviceCount)
	vk.EnumeratePhysicalDevices(instance, &deviceCount, physicalDevices)

	queueCreateInfo := vk.DeviceQueueCreateInfo{
		SType:            vk.StructureTypeDeviceQueueCreateInfo,
		QueueFamilyIndex: 0,
		QueueCount:       1,
		PQueuePriorities: []float32{1.0},
	}
	deviceCreateInfo := vk.DeviceCreateInfo{
		SType:                vk.StructureTypeDeviceCreateInfo,
		QueueCreateInfoCount: 1,
		PQueueCreateInfos:    []vk.DeviceQueueCreateInfo{queueCreateInfo},
	}

	var device vk.Device
	if res := vk.CreateDevice(physicalDevices[0], &deviceCreateInfo, nil, &device); res != vk.Success {
		vk.DestroyInstance(instance, nil)
		return nil, fmt.Errorf("vkCreateDevice failed: %d", res)
	}

	return &Validator{instance: instance, device: device}, nil
}

// Validate submits words (a little-endian SPIR-V word stream) to
// vkCreateShaderModule and reports the driver's verdict. A module the
// backend emits should always be accepted; a rejection here means a
// structural rule (SSA order, section placement, structured CFG shape)
// was violated despite passing the backend's own invariants.
func (v *Validator) Validate(words []uint32) error {
	bytes := make([]byte, len(words)*4)
	for i, w := range words {
		bytes[i*4+0] = byte(w)
		bytes[i*4+1] = byte(w >> 8)
		bytes[i*4+2] = byte(w >> 16)
		bytes[i*4+3] = byte(w >> 24)
	}

	createInfo := vk.ShaderModuleCreateInfo{
		SType:    vk.StructureTypeShaderModuleCreateInfo,
		CodeSize: uint64(len(bytes)),
		PCode:    sliceUint32(bytes),
	}

	var module vk.ShaderModule
	if res := vk.CreateShaderModule(v.device, &createInfo, nil, &module); res != vk.Success {
		return fmt.Errorf("vkCreateShaderModule rejected module: %d", res)
	}
	vk.DestroyShaderModule(v.device, module, nil)
	return nil
}

// Close tears down the headless device and instance.
func (v *Validator) Close() {
	vk.DestroyDevice(v.device, nil)
	vk.DestroyInstance(v.instance, nil)
}

func sliceUint32(data []byte) []uint32 {
	out := make([]uint32, len(data)/4)
	for i := range out {
		out[i] = uint32(data[i*4]) | uint32(data[i*4+1])<<8 | uint32(data[i*4+2])<<16 | uint32(data[i*4+3])<<24
	}
	return out
}
