package cli

import (
	"context"
	"net"
	"regexp"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"vizctl/internal/config"
	"vizctl/internal/device"
	"vizctl/internal/logger"
	"vizctl/internal/vizio"
	"vizctl/internal/wol"
)

// Setup screen input fields
type setupField int

const (
	setupFieldHost setupField = iota
	setupFieldToken
	setupFieldPIN
	setupFieldPair
	setupFieldConnect
)

// SetupModel handles the TV setup screen. It either connects with a saved
// auth token or walks through the pairing handshake to obtain one.
type SetupModel struct {
	// Navigation
	focusedField setupField

	// Input fields
	host  string
	token string
	pin   string

	// Cursor positions
	hostCursor  int
	tokenCursor int
	pinCursor   int

	// Pairing state. A non-nil session means the TV is showing a PIN and
	// we are waiting for the user to type it in.
	pairingClient  *vizio.Client
	pairingSession *vizio.PairingSession

	// Connection state
	connecting      bool
	connectionError string
	statusMessage   string

	// Connected device (when setup complete)
	device     device.Device
	deviceInfo device.DeviceInfo

	// Flags
	debugMode bool

	// Credentials persistence
	store *config.Store
}

// NewSetupModel creates a setup screen model, prefilled from saved credentials
func NewSetupModel(store *config.Store, debug bool) SetupModel {
	m := SetupModel{
		focusedField: setupFieldHost,
		debugMode:    debug,
		store:        store,
	}

	if store != nil {
		if creds, err := store.Load(); err == nil {
			m.host = creds.IP
			m.token = creds.AuthToken
			m.hostCursor = len(m.host)
			m.tokenCursor = len(m.token)
		}
	}

	return m
}

// Update handles setup screen messages
func (m SetupModel) Update(msg tea.Msg) (SetupModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "tab", "shift+tab":
			return m.handleTabNavigation(msg.String() == "shift+tab"), nil

		case "enter":
			switch m.focusedField {
			case setupFieldPair:
				return m.handleStartPairing()
			case setupFieldPIN:
				return m.handleCompletePairing()
			case setupFieldConnect:
				return m.handleConnect()
			}
			return m, nil

		case "esc":
			return m.handleCancelPairing()

		case "left":
			return m.handleLeft(), nil

		case "right":
			return m.handleRight(), nil

		case "backspace":
			return m.handleBackspace(), nil

		case "delete":
			return m.handleDelete(), nil

		case "home":
			return m.handleHome(), nil

		case "end":
			return m.handleEnd(), nil

		default:
			return m.handleTextInput(msg.String()), nil
		}
	}

	return m, nil
}

// View renders the setup screen
func (m SetupModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("vizctl - TV Setup"))
	b.WriteString("\n\n")

	// Host Address Input
	b.WriteString(subtitleStyle.Render("TV Address (IP or IP:Port):"))
	b.WriteString("\n")
	hostStyle := inputStyle
	showHostCursor := m.focusedField == setupFieldHost
	if showHostCursor {
		hostStyle = inputFocusedStyle
	}
	b.WriteString(hostStyle.Render(renderTextWithCursor(m.host, m.hostCursor, showHostCursor)))
	b.WriteString("\n\n")

	// Auth Token Input
	b.WriteString(subtitleStyle.Render("Auth Token (leave empty to pair):"))
	b.WriteString("\n")
	tokenStyle := inputStyle
	showTokenCursor := m.focusedField == setupFieldToken
	if showTokenCursor {
		tokenStyle = inputFocusedStyle
	}
	b.WriteString(tokenStyle.Render(renderTextWithCursor(m.token, m.tokenCursor, showTokenCursor)))
	b.WriteString("\n\n")

	// PIN input, only while a pairing handshake is in flight
	if m.pairingSession != nil {
		b.WriteString(subtitleStyle.Render("PIN shown on the TV screen:"))
		b.WriteString("\n")
		pinStyle := inputStyle
		showPINCursor := m.focusedField == setupFieldPIN
		if showPINCursor {
			pinStyle = inputFocusedStyle
		}
		b.WriteString(pinStyle.Render(renderTextWithCursor(m.pin, m.pinCursor, showPINCursor)))
		b.WriteString("\n\n")
	}

	// Pair Button
	pairStyle := buttonStyle
	if m.focusedField == setupFieldPair {
		pairStyle = buttonActiveStyle
	}
	pairText := "Pair"
	if m.pairingSession != nil {
		pairText = "Restart Pairing"
	}
	b.WriteString(pairStyle.Render(pairText))

	// Connect Button
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

	if m.statusMessage != "" {
		b.WriteString(successStyle.Render(m.statusMessage))
		b.WriteString("\n\n")
	}

	if m.connectionError != "" {
		b.WriteString(errorStyle.Render("Error: " + m.connectionError))
		b.WriteString("\n\n")
	}

	help := "Tab: Next field • Enter: Action • ←/→: Move cursor • q: Quit"
	if m.pairingSession != nil {
		help = "Type the PIN and press Enter • Esc: Cancel pairing • " + help
	}
	b.WriteString(helpStyle.Render(help))

	return b.String()
}

// handleTabNavigation moves between input fields
func (m SetupModel) handleTabNavigation(reverse bool) SetupModel {
	fields := []setupField{setupFieldHost, setupFieldToken, setupFieldPair, setupFieldConnect}
	if m.pairingSession != nil {
		fields = []setupField{setupFieldHost, setupFieldToken, setupFieldPIN, setupFieldPair, setupFieldConnect}
	}

	currentIndex := -1
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
		currentIndex++
		if currentIndex >= len(fields) {
			currentIndex = 0
		}
	}

	m.focusedField = fields[currentIndex]
	m.syncCursorPosition()
	return m
}

// handleStartPairing begins the pairing handshake. The TV puts a PIN on
// screen and the PIN field appears.
func (m SetupModel) handleStartPairing() (SetupModel, tea.Cmd) {
	m.connectionError = ""
	m.statusMessage = ""

	if m.host == "" {
		m.connectionError = "TV address is required"
		return m, nil
	}
	if !isValidHostAddress(m.host) {
		m.connectionError = "Invalid TV address format"
		return m, nil
	}

	client := vizio.NewClient(m.host, "", m.debugMode)
	session, err := client.BeginPair(context.Background())
	if err != nil {
		m.connectionError = err.Error()
		return m, nil
	}

	m.pairingClient = client
	m.pairingSession = session
	m.pin = ""
	m.pinCursor = 0
	m.focusedField = setupFieldPIN
	m.statusMessage = "Pairing started, enter the PIN shown on the TV"
	return m, nil
}

// handleCompletePairing sends the typed PIN back to the TV. A wrong PIN
// keeps the session alive for another attempt.
func (m SetupModel) handleCompletePairing() (SetupModel, tea.Cmd) {
	m.connectionError = ""
	m.statusMessage = ""

	token, err := m.pairingClient.CompletePair(context.Background(), m.pairingSession, m.pin)
	if err != nil {
		m.connectionError = err.Error()
		m.pin = ""
		m.pinCursor = 0
		return m, nil
	}

	m.token = token
	m.tokenCursor = len(token)
	m.pairingClient = nil
	m.pairingSession = nil
	m.pin = ""
	m.focusedField = setupFieldConnect

	if m.store != nil {
		creds := &config.Credentials{IP: m.host, AuthToken: token}
		if mac, err := wol.MACFromARP(stripPort(m.host)); err == nil {
			creds.MAC = mac
		}
		if err := m.store.Save(creds); err != nil {
			m.connectionError = "paired, but saving credentials failed: " + err.Error()
			return m, nil
		}
	}

	m.statusMessage = "Paired. Press Connect to open the remote."
	return m, nil
}

// handleCancelPairing abandons an in-flight pairing session
func (m SetupModel) handleCancelPairing() (SetupModel, tea.Cmd) {
	if m.pairingSession == nil {
		return m, nil
	}

	// Best effort: the session expires on the TV side anyway
	_ = m.pairingClient.CancelPair(context.Background(), m.pairingSession)

	m.pairingClient = nil
	m.pairingSession = nil
	m.pin = ""
	m.pinCursor = 0
	m.focusedField = setupFieldPair
	m.statusMessage = "Pairing cancelled"
	return m, nil
}

// handleConnect builds the remote with the current host and token
func (m SetupModel) handleConnect() (SetupModel, tea.Cmd) {
	if m.connecting {
		return m, nil
	}

	m.statusMessage = ""

	if m.host == "" {
		m.connectionError = "TV address is required"
		return m, nil
	}
	if m.token == "" {
		m.connectionError = "Auth token is required: pair first"
		return m, nil
	}
	if !isValidHostAddress(m.host) {
		m.connectionError = "Invalid TV address format"
		return m, nil
	}

	m.connecting = true
	m.connectionError = ""

	remote := vizio.NewRemote(m.host, m.token, m.debugMode)

	if m.store != nil {
		if creds, err := m.store.Load(); err == nil {
			remote.Client().SetMAC(creds.MAC)
		}
	}

	deviceInfo := remote.GetDeviceInfo()

	m.device = remote
	m.deviceInfo = deviceInfo
	m.connecting = false

	log := logger.New()
	log.Info().
		Str("device_type", deviceInfo.Type).
		Str("device_model", deviceInfo.Model).
		Str("address", m.host).
		Msg("TV connected")

	return m, nil
}

// handleLeft handles left arrow key
func (m SetupModel) handleLeft() SetupModel {
	switch m.focusedField {
	case setupFieldHost:
		if m.hostCursor > 0 {
			m.hostCursor--
		}
	case setupFieldToken:
		if m.tokenCursor > 0 {
			m.tokenCursor--
		}
	case setupFieldPIN:
		if m.pinCursor > 0 {
			m.pinCursor--
		}
	}
	return m
}

// handleRight handles right arrow key
func (m SetupModel) handleRight() SetupModel {
	switch m.focusedField {
	case setupFieldHost:
		if m.hostCursor < len(m.host) {
			m.hostCursor++
		}
	case setupFieldToken:
		if m.tokenCursor < len(m.token) {
			m.tokenCursor++
		}
	case setupFieldPIN:
		if m.pinCursor < len(m.pin) {
			m.pinCursor++
		}
	}
	return m
}

// handleBackspace handles backspace key
func (m SetupModel) handleBackspace() SetupModel {
	switch m.focusedField {
	case setupFieldHost:
		if m.hostCursor > 0 && len(m.host) > 0 {
			m.host = deleteCharAt(m.host, m.hostCursor-1)
			m.hostCursor--
		}
	case setupFieldToken:
		if m.tokenCursor > 0 && len(m.token) > 0 {
			m.token = deleteCharAt(m.token, m.tokenCursor-1)
			m.tokenCursor--
		}
	case setupFieldPIN:
		if m.pinCursor > 0 && len(m.pin) > 0 {
			m.pin = deleteCharAt(m.pin, m.pinCursor-1)
			m.pinCursor--
		}
	}
	return m
}

// handleDelete handles delete key
func (m SetupModel) handleDelete() SetupModel {
	switch m.focusedField {
	case setupFieldHost:
		if m.hostCursor < len(m.host) {
			m.host = deleteCharAt(m.host, m.hostCursor)
		}
	case setupFieldToken:
		if m.tokenCursor < len(m.token) {
			m.token = deleteCharAt(m.token, m.tokenCursor)
		}
	case setupFieldPIN:
		if m.pinCursor < len(m.pin) {
			m.pin = deleteCharAt(m.pin, m.pinCursor)
		}
	}
	return m
}

// handleHome handles home key
func (m SetupModel) handleHome() SetupModel {
	switch m.focusedField {
	case setupFieldHost:
		m.hostCursor = 0
	case setupFieldToken:
		m.tokenCursor = 0
	case setupFieldPIN:
		m.pinCursor = 0
	}
	return m
}

// handleEnd handles end key
func (m SetupModel) handleEnd() SetupModel {
	switch m.focusedField {
	case setupFieldHost:
		m.hostCursor = len(m.host)
	case setupFieldToken:
		m.tokenCursor = len(m.token)
	case setupFieldPIN:
		m.pinCursor = len(m.pin)
	}
	return m
}

// handleTextInput handles character input
func (m SetupModel) handleTextInput(input string) SetupModel {
	if len(input) == 0 || input == "\x00" {
		return m
	}

	printableInput := ""
	for _, r := range input {
		if r >= 32 && r < 127 || r > 127 {
			printableInput += string(r)
		}
	}

	if len(printableInput) == 0 {
		return m
	}

	switch m.focusedField {
	case setupFieldHost:
		m.host = insertText(m.host, m.hostCursor, printableInput)
		m.hostCursor += len(printableInput)
	case setupFieldToken:
		m.token = insertText(m.token, m.tokenCursor, printableInput)
		m.tokenCursor += len(printableInput)
	case setupFieldPIN:
		m.pin = insertText(m.pin, m.pinCursor, printableInput)
		m.pinCursor += len(printableInput)
	}
	return m
}

// syncCursorPosition ensures cursor positions are within bounds
func (m *SetupModel) syncCursorPosition() {
	switch m.focusedField {
	case setupFieldHost:
		if m.hostCursor < 0 {
			m.hostCursor = 0
		}
		if m.hostCursor > len(m.host) {
			m.hostCursor = len(m.host)
		}
	case setupFieldToken:
		if m.tokenCursor < 0 {
			m.tokenCursor = 0
		}
		if m.tokenCursor > len(m.token) {
			m.tokenCursor = len(m.token)
		}
	case setupFieldPIN:
		if m.pinCursor < 0 {
			m.pinCursor = 0
		}
		if m.pinCursor > len(m.pin) {
			m.pinCursor = len(m.pin)
		}
	}
}

// isValidHostAddress validates the host address format (with optional port)
func isValidHostAddress(address string) bool {
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

// stripPort drops the :port suffix if present
func stripPort(address string) string {
	if host, _, err := net.SplitHostPort(address); err == nil {
		return host
	}
	return address
}

// IsConnected returns true if the TV is connected
func (m SetupModel) IsConnected() bool {
	return m.device != nil
}

// GetDevice returns the connected device
func (m SetupModel) GetDevice() device.Device {
	return m.device
}

// GetDeviceInfo returns the device info
func (m SetupModel) GetDeviceInfo() device.DeviceInfo {
	return m.deviceInfo
}

// GetDebugMode returns the debug mode flag
func (m SetupModel) GetDebugMode() bool {
	return m.debugMode
}
