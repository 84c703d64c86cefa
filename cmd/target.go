package cmd

import (
	"github.com/spf13/cobra"

	"remi/internal/bravia"
)

// Flags shared by the commands that talk to a TV
var (
	targetDevice     string
	targetHost       string
	targetDeviceName string
)

func addTargetFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&targetDevice, "device", "", "Registry device to use (name or ID)")
	cmd.Flags().StringVarP(&targetHost, "host", "H", "", "TV host address, bypassing the registry")
	cmd.Flags().StringVarP(&targetDeviceName, "name", "n", "remi", "Controller name when --host is used")
}

// targetConfig resolves the TV to talk to, either from --host or from
// the device registry
func targetConfig() (*bravia.Config, error) {
	if targetHost != "" {
		return bravia.NewConfig(targetHost, targetDeviceName), nil
	}

	registry, err := loadRegistry()
	if err != nil {
		return nil, err
	}

	device, err := registry.Get(targetDevice)
	if err != nil {
		return nil, err
	}

	return bravia.NewConfig(device.Host, device.DeviceName), nil
}

// connectTarget pairs with the resolved TV, prompting for a pincode if
// the TV demands a fresh pairing. The stored credential is refreshed
// on success.
func connectTarget() (*bravia.TV, error) {
	cfg, err := targetConfig()
	if err != nil {
		return nil, err
	}

	tv, err := bravia.Connect(cfg, promptPincode, bravia.WithDebug(debugFlag))
	if err != nil {
		return nil, err
	}

	// Best effort: remember the fresh session cookie for the
	// registry entry we connected through.
	if targetHost == "" {
		if registry, err := loadRegistry(); err == nil {
			if device, err := registry.Get(targetDevice); err == nil {
				device.Credential = tv.Credential()
				if err := registry.Save(configPath); err != nil {
					log.Warn().Err(err).Msg("Failed to update stored credential")
				}
			}
		}
	}

	return tv, nil
}

// commandAliases maps the CLI's spelling of a command to the name the
// TV reports it under
var commandAliases = map[string]bravia.Command{
	"power-off":    bravia.CommandPowerOff,
	"wake":         bravia.CommandWakeUp,
	"volume-up":    bravia.CommandVolumeUp,
	"volume-down":  bravia.CommandVolumeDown,
	"mute":         bravia.CommandMute,
	"play":         bravia.CommandPlay,
	"pause":        bravia.CommandPause,
	"up":           bravia.CommandUp,
	"down":         bravia.CommandDown,
	"left":         bravia.CommandLeft,
	"right":        bravia.CommandRight,
	"enter":        bravia.CommandEnter,
	"confirm":      bravia.CommandConfirm,
	"return":       bravia.CommandReturn,
	"home":         bravia.CommandHome,
	"channel-up":   bravia.CommandChannelUp,
	"channel-down": bravia.CommandChannelDown,
	"netflix":      bravia.CommandNetflix,
}
