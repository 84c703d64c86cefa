package cli

import (
	"errors"
	"net"
	"regexp"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbletea"

	"remi/internal/bravia"
	"remi/internal/config"
	"remi/internal/logger"
)

// errPincodeRequired signals that the TV demanded pairing and the
// pincode field is still empty
var errPincodeRequired = errors.New("pairing code required")

// Setup screen input fields
type setupField int

const (
	setupFieldHost setupField = iota
	setupFieldDeviceName
	setupFieldPincode
	setupFieldConnect
)

// SetupModel handles the pairing screen
type SetupModel struct {
	focusedField setupField

	// Input fields
	host       string
	deviceName string
	pincode    string

	// Cursor positions
	hostCursor       int
	deviceNameCursor int
	pincodeCursor    int

	// Connection state
	connecting      bool
	pairingRequired bool
	connectionError string

	// Connected session (when setup is complete)
	tv *bravia.TV

	debugMode  bool
	configPath string
}

// NewSetupModel creates a new pairing screen model
func NewSetupModel(debug bool, configPath string) SetupModel {
	return SetupModel{
		focusedField: setupFieldHost,
		deviceName:   "remi",
		debugMode:    debug,
		configPath:   configPath,
	}
}

// Update handles pairing screen messages
func (m SetupModel) Update(msg tea.Msg) (SetupModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "tab", "shift+tab":
			return m.handleTabNavigation(msg.String() == "shift+tab"), nil

		case "enter":
			if m.focusedField == setupFieldConnect {
				return m.handleConnect(), nil
			}
			return m.handleTabNavigation(false), nil

		case "up":
			return m.handleTabNavigation(true), nil

		case "down":
			return m.handleTabNavigation(false), nil

		case "left":
			return m.moveCursor(-1), nil

		case "right":
			return m.moveCursor(1), nil

		case "backspace":
			return m.handleBackspace(), nil

		case "delete":
			return m.handleDelete(), nil

		case "home":
			return m.setCursor(0), nil

		case "end":
			return m.setCursor(1 << 30), nil

		default:
			return m.handleTextInput(msg.String()), nil
		}
	}

	return m, nil
}

// View renders the pairing screen
func (m SetupModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Remi - TV Setup"))
	b.WriteString("\n\n")

	b.WriteString(subtitleStyle.Render("Host Address (IP or IP:Port):"))
	b.WriteString("\n")
	b.WriteString(m.renderInput(m.host, m.hostCursor, setupFieldHost))
	b.WriteString("\n\n")

	b.WriteString(subtitleStyle.Render("Controller Name:"))
	b.WriteString("\n")
	b.WriteString(m.renderInput(m.deviceName, m.deviceNameCursor, setupFieldDeviceName))
	b.WriteString("\n\n")

	// The pincode field only matters once the TV has asked for it
	pincodeLabel := "Pairing Code (only for a first pairing):"
	if m.pairingRequired {
		pincodeLabel = "Pairing Code (shown on the TV screen):"
	}
	b.WriteString(subtitleStyle.Render(pincodeLabel))
	b.WriteString("\n")
	b.WriteString(m.renderInput(m.pincode, m.pincodeCursor, setupFieldPincode))
	b.WriteString("\n\n")

	connectStyle := buttonStyle
	if m.focusedField == setupFieldConnect {
		connectStyle = buttonActiveStyle
	}
	connectText := "Connect"
	if m.connecting {
		connectText = "Connecting..."
	}
	b.WriteString(connectStyle.Render(connectText))
	b.WriteString("\n\n")

	if m.connectionError != "" {
		b.WriteString(errorStyle.Render("Error: " + m.connectionError))
		b.WriteString("\n\n")
	}

	b.WriteString(helpStyle.Render("Tab: Next field • Enter: Action • ←/→: Move cursor • q/Ctrl+C: Quit"))

	return b.String()
}

func (m SetupModel) renderInput(text string, cursor int, field setupField) string {
	style := inputStyle
	focused := m.focusedField == field
	if focused {
		style = inputFocusedStyle
	}
	return style.Render(renderTextWithCursor(text, cursor, focused))
}

// handleTabNavigation moves between input fields
func (m SetupModel) handleTabNavigation(reverse bool) SetupModel {
	fields := []setupField{setupFieldHost, setupFieldDeviceName, setupFieldPincode, setupFieldConnect}

	currentIndex := 0
	for i, field := range fields {
		if field == m.focusedField {
			currentIndex = i
			break
		}
	}

	if reverse {
		currentIndex--
		if currentIndex < 0 {
			currentIndex = len(fields) - 1
		}
	} else {
		currentIndex = (currentIndex + 1) % len(fields)
	}

	m.focusedField = fields[currentIndex]
	return m
}

// handleConnect runs the pairing flow against the TV
func (m SetupModel) handleConnect() SetupModel {
	if m.connecting {
		return m
	}

	if m.host == "" {
		m.connectionError = "Host address is required"
		return m
	}
	if m.deviceName == "" {
		m.connectionError = "Controller name is required"
		return m
	}
	if !validHostAddress(m.host) {
		m.connectionError = "Invalid host address format"
		return m
	}

	m.connecting = true
	m.connectionError = ""

	// The resolver hands Connect whatever pincode was typed; with an
	// empty field a pairing demand surfaces as errPincodeRequired and
	// the user gets another round to fill it in.
	pincode := m.pincode
	resolve := func() (string, error) {
		if pincode == "" {
			return "", errPincodeRequired
		}
		return pincode, nil
	}

	cfg := bravia.NewConfig(m.host, m.deviceName)
	tv, err := bravia.Connect(cfg, resolve, bravia.WithDebug(m.debugMode))
	m.connecting = false

	if err != nil {
		if errors.Is(err, errPincodeRequired) {
			m.pairingRequired = true
			m.focusedField = setupFieldPincode
			m.connectionError = "The TV is showing a pairing code, enter it above"
			return m
		}
		m.connectionError = err.Error()
		return m
	}

	m.tv = tv
	m.saveDevice(tv)

	log := logger.New()
	log.Info().
		Str("host", m.host).
		Int("commands", len(tv.Codes())).
		Msg("TV connected successfully")

	return m
}

// saveDevice remembers the paired TV in the registry. Failures here
// never block the remote screen.
func (m SetupModel) saveDevice(tv *bravia.TV) {
	log := logger.New()
	registry, err := config.Load(m.configPath)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to load device registry")
		return
	}

	device := config.NewDevice(m.host, m.host, m.deviceName)
	device.Credential = tv.Credential()
	registry.Upsert(device)

	if err := registry.Save(m.configPath); err != nil {
		log.Warn().Err(err).Msg("Failed to save device registry")
	}
}

func (m SetupModel) moveCursor(delta int) SetupModel {
	switch m.focusedField {
	case setupFieldHost:
		m.hostCursor = clamp(m.hostCursor+delta, 0, len(m.host))
	case setupFieldDeviceName:
		m.deviceNameCursor = clamp(m.deviceNameCursor+delta, 0, len(m.deviceName))
	case setupFieldPincode:
		m.pincodeCursor = clamp(m.pincodeCursor+delta, 0, len(m.pincode))
	}
	return m
}

func (m SetupModel) setCursor(pos int) SetupModel {
	switch m.focusedField {
	case setupFieldHost:
		m.hostCursor = clamp(pos, 0, len(m.host))
	case setupFieldDeviceName:
		m.deviceNameCursor = clamp(pos, 0, len(m.deviceName))
	case setupFieldPincode:
		m.pincodeCursor = clamp(pos, 0, len(m.pincode))
	}
	return m
}

func (m SetupModel) handleBackspace() SetupModel {
	switch m.focusedField {
	case setupFieldHost:
		if m.hostCursor > 0 {
			m.host = deleteCharAt(m.host, m.hostCursor-1)
			m.hostCursor--
		}
	case setupFieldDeviceName:
		if m.deviceNameCursor > 0 {
			m.deviceName = deleteCharAt(m.deviceName, m.deviceNameCursor-1)
			m.deviceNameCursor--
		}
	case setupFieldPincode:
		if m.pincodeCursor > 0 {
			m.pincode = deleteCharAt(m.pincode, m.pincodeCursor-1)
			m.pincodeCursor--
		}
	}
	return m
}

func (m SetupModel) handleDelete() SetupModel {
	switch m.focusedField {
	case setupFieldHost:
		if m.hostCursor < len(m.host) {
			m.host = deleteCharAt(m.host, m.hostCursor)
		}
	case setupFieldDeviceName:
		if m.deviceNameCursor < len(m.deviceName) {
			m.deviceName = deleteCharAt(m.deviceName, m.deviceNameCursor)
		}
	case setupFieldPincode:
		if m.pincodeCursor < len(m.pincode) {
			m.pincode = deleteCharAt(m.pincode, m.pincodeCursor)
		}
	}
	return m
}

// handleTextInput handles character input
func (m SetupModel) handleTextInput(input string) SetupModel {
	printable := ""
	for _, r := range input {
		if r >= 32 && r < 127 || r > 127 {
			printable += string(r)
		}
	}
	if printable == "" {
		return m
	}

	switch m.focusedField {
	case setupFieldHost:
		m.host = insertText(m.host, m.hostCursor, printable)
		m.hostCursor += len(printable)
	case setupFieldDeviceName:
		m.deviceName = insertText(m.deviceName, m.deviceNameCursor, printable)
		m.deviceNameCursor += len(printable)
	case setupFieldPincode:
		m.pincode = insertText(m.pincode, m.pincodeCursor, printable)
		m.pincodeCursor += len(printable)
	}
	return m
}

// IsConnected returns true once pairing has produced a session
func (m SetupModel) IsConnected() bool {
	return m.tv != nil
}

// GetTV returns the connected session
func (m SetupModel) GetTV() *bravia.TV {
	return m.tv
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// validHostAddress validates the host address format (with optional port)
func validHostAddress(address string) bool {
	host, portStr, err := net.SplitHostPort(address)
	if err != nil {
		host = address
		portStr = ""
	}

	if net.ParseIP(host) == nil {
		matched, _ := regexp.MatchString(`^[a-zA-Z0-9.-]+$`, host)
		if !matched {
			return false
		}
	}

	if portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil || port < 1 || port > 65535 {
			return false
		}
	}

	return true
}
