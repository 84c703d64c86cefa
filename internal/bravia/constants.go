package bravia

// API Endpoints for Sony Bravia Control
const (
	AccessControlEndpoint Endpoint = "/sony/accessControl"
	SystemEndpoint        Endpoint = "/sony/system"
	IRCCEndpoint          Endpoint = "/sony/IRCC"
)

// API Methods for Sony Bravia Control
const (
	ActRegister             Method = "actRegister"
	GetRemoteControllerInfo Method = "getRemoteControllerInfo"
	GetPowerStatus          Method = "getPowerStatus"
)

// Commands reported by Bravia TVs. The actual IRCC code behind each
// name is fetched from the TV at connect time; these constants only
// name the commands the high-level actions rely on.
const (
	// Power Controls
	CommandPowerOff Command = "PowerOff"
	CommandWakeUp   Command = "WakeUp"

	// Volume Controls
	CommandVolumeUp   Command = "VolumeUp"
	CommandVolumeDown Command = "VolumeDown"
	CommandMute       Command = "Mute"

	// Playback Controls
	CommandPlay  Command = "Play"
	CommandPause Command = "Pause"

	// Navigation Controls
	CommandUp      Command = "Up"
	CommandDown    Command = "Down"
	CommandLeft    Command = "Left"
	CommandRight   Command = "Right"
	CommandEnter   Command = "Enter"
	CommandConfirm Command = "Confirm"
	CommandReturn  Command = "Return"
	CommandHome    Command = "Home"

	// Channel Controls
	CommandChannelUp   Command = "ChannelUp"
	CommandChannelDown Command = "ChannelDown"

	// App Controls
	CommandNetflix Command = "Netflix"
)

// DefaultVolumeSteps is the number of discrete volume presses issued
// when no explicit repeat count is given. There is no "set volume to N"
// primitive on the IRCC endpoint; the level is only ever nudged.
const DefaultVolumeSteps = 5

// KnownCommands lists the command names the high-level actions and the
// TUI use, in display order.
var KnownCommands = []Command{
	CommandPowerOff,
	CommandWakeUp,
	CommandVolumeUp,
	CommandVolumeDown,
	CommandMute,
	CommandPlay,
	CommandPause,
	CommandUp,
	CommandDown,
	CommandLeft,
	CommandRight,
	CommandEnter,
	CommandConfirm,
	CommandReturn,
	CommandHome,
	CommandChannelUp,
	CommandChannelDown,
	CommandNetflix,
}
