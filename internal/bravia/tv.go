package bravia

import (
	"fmt"
	"maps"
	"net/http"
)

// ChallengeResolver resolves a pairing challenge by returning the
// pincode shown on the TV's screen.
type ChallengeResolver func() (string, error)

// TV represents a paired Sony Bravia TV that can be controlled
// remotely. Instances are created by Connect; the command-code mapping
// is fetched once at that point and cached for the TV's lifetime.
type TV struct {
	client *Client
	codes  map[Command]string
}

// Connect pairs with the TV described by cfg and returns a ready
// session.
//
// Registration is attempted without a pairing code first, which
// succeeds for controllers the TV already knows. If the TV demands
// pairing, resolve is called once for the pincode shown on its screen
// and registration is retried with it. When both attempts are
// rejected, the returned error wraps ErrAuthentication. At most two
// registration requests are issued.
func Connect(cfg *Config, resolve ChallengeResolver, opts ...Option) (*TV, error) {
	client := NewClient(cfg, opts...)

	credential, ok, err := client.attemptAuth("")
	if err != nil {
		return nil, err
	}

	if !ok {
		if resolve == nil {
			return nil, fmt.Errorf("TV requires pairing and no challenge resolver was provided: %w", ErrAuthentication)
		}

		pincode, err := resolve()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve pairing challenge: %w", err)
		}

		credential, ok, err = client.attemptAuth(pincode)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("registration rejected twice: %w", ErrAuthentication)
		}
	}

	client.credential = credential

	// Fetch the command codes eagerly so every action method is
	// usable the moment Connect returns.
	codes, err := client.CommandCodes()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch command codes: %w", err)
	}

	return &TV{
		client: client,
		codes:  codes,
	}, nil
}

// attemptAuth performs a single registration attempt. ok reports
// whether the TV accepted it; a rejection is not an error. The session
// credential is whatever the TV set as its session cookie.
func (c *Client) attemptAuth(pincode string) (credential string, ok bool, err error) {
	resp, err := c.register(pincode)
	if err != nil {
		return "", false, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", false, nil
	}

	cookie := resp.Header.Get("Set-Cookie")
	if cookie == "" {
		return "", false, &ParseError{Method: ActRegister, Missing: "Set-Cookie header"}
	}

	return cookie, true, nil
}

// SendCommand resolves the command name in the cached mapping and
// dispatches the matching IRCC code. Commands the TV never reported
// fail with an UnknownCommandError.
func (tv *TV) SendCommand(cmd Command) error {
	code, exists := tv.codes[cmd]
	if !exists {
		return &UnknownCommandError{Command: cmd}
	}

	return tv.client.SendIRCC(code)
}

// Codes returns a copy of the command-code mapping fetched at connect
// time
func (tv *TV) Codes() map[Command]string {
	return maps.Clone(tv.codes)
}

// Supports reports whether the TV advertised a code for cmd
func (tv *TV) Supports(cmd Command) bool {
	_, exists := tv.codes[cmd]
	return exists
}

// Credential returns the opaque session credential obtained during
// pairing
func (tv *TV) Credential() string {
	return tv.client.credential
}

// Config returns the configuration of this TV
func (tv *TV) Config() *Config {
	return tv.client.cfg
}

// IsOn reports whether the TV is turned on
func (tv *TV) IsOn() (bool, error) {
	return tv.client.IsOn()
}

// Mute toggles the TV audio
func (tv *TV) Mute() error {
	return tv.SendCommand(CommandMute)
}

// Pause pauses playback
func (tv *TV) Pause() error {
	return tv.SendCommand(CommandPause)
}

// Play resumes playback
func (tv *TV) Play() error {
	return tv.SendCommand(CommandPlay)
}

// PowerOff turns the TV off
func (tv *TV) PowerOff() error {
	return tv.SendCommand(CommandPowerOff)
}

// WakeUp turns the TV on
func (tv *TV) WakeUp() error {
	return tv.SendCommand(CommandWakeUp)
}

// Home navigates to the home screen
func (tv *TV) Home() error {
	return tv.SendCommand(CommandHome)
}

// Netflix launches the Netflix app
func (tv *TV) Netflix() error {
	return tv.SendCommand(CommandNetflix)
}

// Enter confirms a text or number entry
func (tv *TV) Enter() error {
	return tv.SendCommand(CommandEnter)
}

// Confirm confirms the current selection
func (tv *TV) Confirm() error {
	return tv.SendCommand(CommandConfirm)
}

// VolumeUp raises the volume by the given number of discrete presses.
// Values below one fall back to DefaultVolumeSteps.
func (tv *TV) VolumeUp(steps int) error {
	return tv.repeat(CommandVolumeUp, steps)
}

// VolumeDown lowers the volume by the given number of discrete
// presses. Values below one fall back to DefaultVolumeSteps.
func (tv *TV) VolumeDown(steps int) error {
	return tv.repeat(CommandVolumeDown, steps)
}

func (tv *TV) repeat(cmd Command, steps int) error {
	if steps < 1 {
		steps = DefaultVolumeSteps
	}

	for i := 0; i < steps; i++ {
		if err := tv.SendCommand(cmd); err != nil {
			return err
		}
	}

	return nil
}
