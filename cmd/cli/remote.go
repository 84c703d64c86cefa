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

package cli

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"remi/internal/bravia"
)

// RemoteModel handles the remote control screen
type RemoteModel struct {
	tv *bravia.TV

	// Remote control state
	selectedButton  remoteButton
	lastButtonPress time.Time

	// History of dispatched actions, newest last
	actionHistory []actionHistoryEntry

	debugMode bool

	width  int
	height int
}

// buttonCommands maps remote buttons to the command dispatched for them
var buttonCommands = map[remoteButton]bravia.Command{
	buttonPowerOff:    bravia.CommandPowerOff,
	buttonWake:        bravia.CommandWakeUp,
	buttonVolumeUp:    bravia.CommandVolumeUp,
	buttonVolumeDown:  bravia.CommandVolumeDown,
	buttonMute:        bravia.CommandMute,
	buttonChannelUp:   bravia.CommandChannelUp,
	buttonChannelDown: bravia.CommandChannelDown,
	buttonUp:          bravia.CommandUp,
	buttonDown:        bravia.CommandDown,
	buttonLeft:        bravia.CommandLeft,
	buttonRight:       bravia.CommandRight,
	buttonOK:          bravia.CommandConfirm,
	buttonHome:        bravia.CommandHome,
	buttonReturn:      bravia.CommandReturn,
	buttonPlay:        bravia.CommandPlay,
	buttonPause:       bravia.CommandPause,
	buttonNetflix:     bravia.CommandNetflix,
}

// NewRemoteModel creates a new remote control screen model
func NewRemoteModel(tv *bravia.TV, debug bool) RemoteModel {
	return RemoteModel{
		tv:            tv,
		actionHistory: []actionHistoryEntry{},
		debugMode:     debug,
	}
}

// Update handles remote control screen messages
func (m RemoteModel) Update(msg tea.Msg) (RemoteModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		// Navigation keys
		case "up":
			return m.handleRemoteButton(buttonUp)
		case "down":
			return m.handleRemoteButton(buttonDown)
		case "left":
			return m.handleRemoteButton(buttonLeft)
		case "right":
			return m.handleRemoteButton(buttonRight)
		case "enter":
			return m.handleRemoteButton(buttonOK)

		// Power and volume
		case "p":
			return m.handleRemoteButton(buttonPowerOff)
		case "w":
			return m.handleRemoteButton(buttonWake)
		case "+", "=":
			return m.handleRemoteButton(buttonVolumeUp)
		case "-":
			return m.handleRemoteButton(buttonVolumeDown)
		case "m":
			return m.handleRemoteButton(buttonMute)

		// Channel controls
		case "ctrl+up":
			return m.handleRemoteButton(buttonChannelUp)
		case "ctrl+down":
			return m.handleRemoteButton(buttonChannelDown)

		// Function keys
		case "h":
			return m.handleRemoteButton(buttonHome)
		case "backspace":
			return m.handleRemoteButton(buttonReturn)
		case "n":
			return m.handleRemoteButton(buttonNetflix)
		case " ":
			return m.handleRemoteButton(buttonPause)
		case "s":
			return m.handleRemoteButton(buttonPlay)
		}
	}

	return m, nil
}

// handleRemoteButton dispatches the command behind the pressed button
func (m RemoteModel) handleRemoteButton(btn remoteButton) (RemoteModel, tea.Cmd) {
	command, exists := buttonCommands[btn]
	if !exists {
		return m, nil
	}

	m.selectedButton = btn
	m.lastButtonPress = time.Now()

	entry := actionHistoryEntry{
		Timestamp: time.Now(),
		Action:    string(command),
		Success:   true,
	}

	if err := m.tv.SendCommand(command); err != nil {
		entry.Success = false
		entry.Error = err.Error()
	}

	m.actionHistory = append(m.actionHistory, entry)

	return m, nil
}

// View renders the remote control screen
func (m RemoteModel) View() string {
	var sections []string

	sections = append(sections, titleStyle.Render("Remi - TV Remote Control"))

	header := successStyle.Render("📺 " + m.tv.Config().Host)
	sections = append(sections, header)

	sections = append(sections, m.renderRemoteLayout())

	if status := m.renderStatusBar(); status != "" {
		sections = append(sections, status)
	}

	if m.debugMode {
		if history := m.renderHistory(); history != "" {
			sections = append(sections, history)
		}
	}

	sections = append(sections, m.renderHelpText())

	return strings.Join(sections, "\n\n")
}

// renderRemoteLayout creates the three-column remote control layout
func (m RemoteModel) renderRemoteLayout() string {
	getButtonStyle := func(btn remoteButton) lipgloss.Style {
		base := remoteButtonStyle
		if m.selectedButton == btn && time.Since(m.lastButtonPress) < 200*time.Millisecond {
			base = remoteButtonActiveStyle
		}
		return base
	}

	navColumn := lipgloss.JoinVertical(lipgloss.Center,
		lipgloss.NewStyle().Foreground(lipgloss.Color("#50FA7B")).Render("Power & Navigation:"),
		lipgloss.JoinHorizontal(lipgloss.Center,
			getButtonStyle(buttonPowerOff).Render(" OFF  "),
			getButtonStyle(buttonWake).Render(" WAKE ")),
		"",
		getButtonStyle(buttonUp).Render("  ↑   "),
		lipgloss.JoinHorizontal(lipgloss.Center,
			getButtonStyle(buttonLeft).Render("  ←   "),
			getButtonStyle(buttonOK).Render(" OK   "),
			getButtonStyle(buttonRight).Render("  →   ")),
		getButtonStyle(buttonDown).Render("  ↓   "),
	)

	volumeColumn := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().Foreground(lipgloss.Color("#8BE9FD")).Render("Volume & Channel:"),
		lipgloss.JoinHorizontal(lipgloss.Left,
			getButtonStyle(buttonVolumeUp).Render("VOL + "),
			"  ",
			getButtonStyle(buttonChannelUp).Render("CH +  ")),
		lipgloss.JoinHorizontal(lipgloss.Left,
			getButtonStyle(buttonVolumeDown).Render("VOL - "),
			"  ",
			getButtonStyle(buttonChannelDown).Render("CH -  ")),
		getButtonStyle(buttonMute).Render("MUTE  "),
	)

	functionColumn := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().Foreground(lipgloss.Color("#FFB86C")).Render("Functions:"),
		lipgloss.JoinHorizontal(lipgloss.Left,
			getButtonStyle(buttonHome).Render("HOME  "),
			" ",
			getButtonStyle(buttonReturn).Render("BACK  ")),
		lipgloss.JoinHorizontal(lipgloss.Left,
			getButtonStyle(buttonPlay).Render("PLAY  "),
			" ",
			getButtonStyle(buttonPause).Render("PAUSE ")),
		"",
		getButtonStyle(buttonNetflix).Render("NETFLIX"),
	)

	return lipgloss.JoinHorizontal(lipgloss.Top,
		navColumn,
		strings.Repeat(" ", 6),
		volumeColumn,
		strings.Repeat(" ", 6),
		functionColumn,
	)
}

// renderStatusBar shows the outcome of the last action
func (m RemoteModel) renderStatusBar() string {
	if len(m.actionHistory) == 0 {
		return ""
	}

	last := m.actionHistory[len(m.actionHistory)-1]
	if last.Success {
		return successStyle.Render("✓ " + last.Action)
	}
	return errorStyle.Render("✗ " + last.Action + ": " + last.Error)
}

// renderHistory shows the last few dispatched actions
func (m RemoteModel) renderHistory() string {
	if len(m.actionHistory) == 0 {
		return ""
	}

	maxLines := 3
	start := 0
	if len(m.actionHistory) > maxLines {
		start = len(m.actionHistory) - maxLines
	}

	lines := []string{helpStyle.Render("─── HISTORY ───")}
	for _, entry := range m.actionHistory[start:] {
		mark := "✓"
		if !entry.Success {
			mark = "✗"
		}
		lines = append(lines, helpStyle.Render(
			entry.Timestamp.Format("15:04:05")+" "+mark+" "+entry.Action))
	}

	return strings.Join(lines, "\n")
}

func (m RemoteModel) renderHelpText() string {
	return helpStyle.Render(
		"↑/↓/←/→: Navigate • Enter: OK • p: Off • w: Wake • +/-: Volume • m: Mute\n" +
			"Ctrl+↑/↓: Channel • h: Home • n: Netflix • Space: Pause • s: Play • q: Back • Ctrl+C: Quit")
}
