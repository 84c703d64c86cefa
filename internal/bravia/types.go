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

package bravia

// Command identifies a remote-control command by the name the TV
// reports for it (e.g. "Mute", "VolumeUp")
type Command string

// Endpoint represents an API endpoint for Sony Bravia control
type Endpoint string

// Method represents an API method for Sony Bravia control
type Method string

// Payload represents the JSON payload structure for control API requests
type Payload struct {
	ID      int    `json:"id"`
	Version string `json:"version"`
	Method  string `json:"method"`
	Params  []any  `json:"params"`
}

// Config describes the TV to control and how this controller
// identifies itself towards it. Immutable after creation.
type Config struct {
	// Host is the hostname or IP address of the TV, with an
	// optional port.
	Host string

	// DeviceName is the name under which this controller registers
	// itself at the TV during pairing.
	DeviceName string
}

// NewConfig creates a new TV configuration
func NewConfig(host, deviceName string) *Config {
	return &Config{
		Host:       host,
		DeviceName: deviceName,
	}
}

// ClientID returns the client identifier sent during registration
func (c *Config) ClientID() string {
	return c.DeviceName + ":1"
}

// NewPayload creates a payload with the protocol's default version
func NewPayload(id int, method Method, params []any) Payload {
	if params == nil {
		params = []any{}
	}

	return Payload{
		ID:      id,
		Version: "1.0",
		Method:  string(method),
		Params:  params,
	}
}
