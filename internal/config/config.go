// Copyright 2025 Arion Yau
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// DefaultPath is the registry file used when no --config flag is given
const DefaultPath = "devices.yml"

// Device represents a single paired TV in the registry
type Device struct {
	ID         string `yaml:"id"`
	Name       string `yaml:"name"`        // friendly name used to select the device
	Host       string `yaml:"host"`        // hostname or IP, optional port
	DeviceName string `yaml:"device_name"` // controller name registered at the TV
	Credential string `yaml:"credential"`  // session cookie from the last pairing
}

// Registry holds all paired devices
type Registry struct {
	Devices []Device `yaml:"devices"`
}

// NewDevice creates a registry entry with a fresh ID
func NewDevice(name, host, deviceName string) Device {
	return Device{
		ID:         uuid.New().String(),
		Name:       name,
		Host:       host,
		DeviceName: deviceName,
	}
}

// Load reads the registry from a YAML file. A missing file yields an
// empty registry rather than an error.
func Load(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &Registry{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var registry Registry
	if err := yaml.Unmarshal(data, &registry); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := registry.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &registry, nil
}

// Save writes the registry to a YAML file
func (r *Registry) Save(path string) error {
	data, err := yaml.Marshal(r)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// Credentials live in here, keep the file private
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks if the registry is consistent
func (r *Registry) Validate() error {
	ids := make(map[string]bool)
	names := make(map[string]bool)
	for i, device := range r.Devices {
		if device.ID == "" {
			return fmt.Errorf("device[%d].id is required", i)
		}
		if ids[device.ID] {
			return fmt.Errorf("duplicate device ID: %s", device.ID)
		}
		ids[device.ID] = true

		if device.Name == "" {
			return fmt.Errorf("device[%d].name is required", i)
		}
		if names[device.Name] {
			return fmt.Errorf("duplicate device name: %s", device.Name)
		}
		names[device.Name] = true

		if device.Host == "" {
			return fmt.Errorf("device[%d].host is required", i)
		}
		if device.DeviceName == "" {
			return fmt.Errorf("device[%d].device_name is required", i)
		}
	}

	return nil
}

// Get returns the device matching the given ID or friendly name. With
// an empty selector and exactly one device configured, that device is
// returned.
func (r *Registry) Get(selector string) (*Device, error) {
	if selector == "" {
		if len(r.Devices) == 1 {
			return &r.Devices[0], nil
		}
		return nil, fmt.Errorf("%d devices configured, select one by name", len(r.Devices))
	}

	for i := range r.Devices {
		if r.Devices[i].ID == selector || r.Devices[i].Name == selector {
			return &r.Devices[i], nil
		}
	}

	return nil, fmt.Errorf("device not found: %s", selector)
}

// Add appends a new device, rejecting duplicate names
func (r *Registry) Add(device Device) error {
	for _, existing := range r.Devices {
		if existing.Name == device.Name {
			return fmt.Errorf("device with name '%s' already exists", device.Name)
		}
	}

	r.Devices = append(r.Devices, device)
	return nil
}

// Upsert adds the device, or updates the existing entry with the same
// name in place
func (r *Registry) Upsert(device Device) {
	for i, existing := range r.Devices {
		if existing.Name == device.Name {
			device.ID = existing.ID
			r.Devices[i] = device
			return
		}
	}

	r.Devices = append(r.Devices, device)
}

// Remove deletes the device matching the given ID or name
func (r *Registry) Remove(selector string) error {
	for i, device := range r.Devices {
		if device.ID == selector || device.Name == selector {
			r.Devices = append(r.Devices[:i], r.Devices[i+1:]...)
			return nil
		}
	}

	return fmt.Errorf("device not found: %s", selector)
}
