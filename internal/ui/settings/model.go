// Package settings is the in-app editor for the configuration file
// and the keyring-held credentials.
package settings

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/voicedesk/internal/credential"
	"github.com/nhle/voicedesk/internal/keys"
	"github.com/nhle/voicedesk/internal/model"
	"github.com/nhle/voicedesk/internal/source/mailbox"
	"github.com/nhle/voicedesk/internal/theme"
)

// SettingsMode represents the current state of the settings view.
type SettingsMode int

const (
	ModeList           SettingsMode = iota // Overview of current settings
	ModeFormMailbox                        // Mailbox account form
	ModeFormSpeech                         // Voice capture form
	ModeValidating                         // Testing connection
	ModeValidateResult                     // Show validation result
)

// DoneMsg signals the settings view should close and return to the
// main app.
type DoneMsg struct{}

// SavedMsg signals the configuration was written. The receiver rebuilds
// anything derived from it, such as the mail poller and the recognizer.
type SavedMsg struct {
	Config *model.AppConfig
}

// ValidateResultMsg carries the result of a connection test.
type ValidateResultMsg struct {
	Account string
	Err     error
}

// configSavedMsg is sent after the config file and credentials are
// persisted.
type configSavedMsg struct {
	err error
}

// formBindings keeps huh's value pointers stable across model copies.
type formBindings struct {
	mailEnabled  bool
	mailHost     string
	mailPort     string
	mailUsername string
	mailPassword string
	mailSecurity string
	mailFolder   string

	captureCommand string
	recordCommand  string
	speechURL      string
	speechModel    string
	speechKey      string
	searchURL      string
}

// Model is the Bubble Tea model for the settings UI.
type Model struct {
	mode       SettingsMode
	configPath string
	config     *model.AppConfig
	fb         *formBindings

	mailForm   *huh.Form
	speechForm *huh.Form

	validating  bool
	validResult string
	validError  error
	spinner     spinner.Model

	// Status message for transient feedback
	statusMsg string

	keys          *keys.KeyMap
	width, height int
}

// New creates a new settings view model.
func New(configPath string, cfg *model.AppConfig, k *keys.KeyMap, width, height int) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return Model{
		mode:       ModeList,
		configPath: configPath,
		config:     cfg,
		fb:         &formBindings{},
		keys:       k,
		spinner:    sp,
		width:      width,
		height:     height,
	}
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return nil
}

// SetConfig replaces the configuration shown in the list.
func (m *Model) SetConfig(cfg *model.AppConfig) {
	m.config = cfg
}

// Update handles messages and dispatches based on current mode.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case configSavedMsg:
		if msg.err != nil {
			m.statusMsg = fmt.Sprintf("Error saving settings: %v", msg.err)
			m.mode = ModeList
			return m, nil
		}
		m.statusMsg = "Settings saved"
		m.mode = ModeList
		cfg := m.config
		return m, func() tea.Msg { return SavedMsg{Config: cfg} }

	case ValidateResultMsg:
		m.validating = false
		m.validResult = msg.Account
		m.validError = msg.Err
		m.mode = ModeValidateResult
		return m, nil

	case spinner.TickMsg:
		if m.mode == ModeValidating {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	}

	// Delegate to active form
	return m.updateActiveForm(msg)
}

// handleKeyMsg processes key messages based on the current mode.
func (m Model) handleKeyMsg(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch m.mode {
	case ModeList:
		return m.handleListKeys(msg)
	case ModeFormMailbox:
		return m.updateMailForm(msg)
	case ModeFormSpeech:
		return m.updateSpeechForm(msg)
	case ModeValidateResult:
		return m.handleValidateResultKeys(msg)
	case ModeValidating:
		// Only allow escape during validation
		if msg.String() == "esc" {
			m.mode = ModeList
			m.validating = false
			return m, nil
		}
		return m, nil
	}
	return m, nil
}

// handleListKeys processes key events in the overview mode.
func (m Model) handleListKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		return m, func() tea.Msg { return DoneMsg{} }

	case msg.String() == "m":
		m.mode = ModeFormMailbox
		m.statusMsg = ""
		m.fillMailBindings()
		m.mailForm = m.buildMailForm()
		return m, m.mailForm.Init()

	case msg.String() == "s":
		m.mode = ModeFormSpeech
		m.statusMsg = ""
		m.fillSpeechBindings()
		m.speechForm = m.buildSpeechForm()
		return m, m.speechForm.Init()

	case msg.String() == "enter":
		if !m.config.Mailbox.Enabled {
			m.statusMsg = "Mailbox capture is disabled. Press 'm' to set it up."
			return m, nil
		}
		m.mode = ModeValidating
		m.validating = true
		return m, tea.Batch(
			m.spinner.Tick,
			m.testMailbox(m.config.Mailbox),
		)
	}

	return m, nil
}

// handleValidateResultKeys processes key events on the test result screen.
func (m Model) handleValidateResultKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "esc":
		m.mode = ModeList
		m.validResult = ""
		m.validError = nil
		return m, nil
	case "r":
		if m.validError != nil {
			m.mode = ModeValidating
			m.validating = true
			return m, tea.Batch(
				m.spinner.Tick,
				m.testMailbox(m.config.Mailbox),
			)
		}
		return m, nil
	}
	return m, nil
}

// updateActiveForm dispatches non-key messages to the active form.
func (m Model) updateActiveForm(msg tea.Msg) (Model, tea.Cmd) {
	switch m.mode {
	case ModeFormMailbox:
		return m.updateMailForm(msg)
	case ModeFormSpeech:
		return m.updateSpeechForm(msg)
	}
	return m, nil
}

// --- Mailbox Form ---

func (m *Model) fillMailBindings() {
	mb := m.config.Mailbox
	m.fb.mailEnabled = mb.Enabled
	m.fb.mailHost = mb.Host
	m.fb.mailPort = strconv.Itoa(mb.Port)
	m.fb.mailUsername = mb.Username
	m.fb.mailPassword = "" // Never pre-fill credentials
	m.fb.mailSecurity = mb.Security
	m.fb.mailFolder = mb.Folder
}

func (m *Model) buildMailForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Mailbox capture").
				Description("Poll an IMAP folder for task: and link: messages").
				Affirmative("Enabled").
				Negative("Disabled").
				Value(&m.fb.mailEnabled),
			huh.NewInput().
				Title("IMAP Host").
				Description("IMAP server hostname").
				Placeholder("imap.example.com").
				Value(&m.fb.mailHost).
				Validate(validateRequired("IMAP Host")),
			huh.NewInput().
				Title("IMAP Port").
				Description("IMAP server port (e.g., 993)").
				Placeholder("993").
				Value(&m.fb.mailPort).
				Validate(validatePort),
			huh.NewInput().
				Title("Username").
				Description("Mail account username").
				Placeholder("user@example.com").
				Value(&m.fb.mailUsername).
				Validate(validateRequired("Username")),
			huh.NewInput().
				Title("Password").
				Description("Account password or app password; leave empty to keep the stored one").
				EchoMode(huh.EchoModePassword).
				Value(&m.fb.mailPassword),
			huh.NewSelect[string]().
				Title("Security").
				Options(
					huh.NewOption("SSL/TLS", "ssl"),
					huh.NewOption("STARTTLS", "starttls"),
				).
				Value(&m.fb.mailSecurity),
			huh.NewInput().
				Title("Folder").
				Description("Folder to watch for capture messages").
				Placeholder("INBOX").
				Value(&m.fb.mailFolder),
		),
	).WithWidth(m.formWidth())
}

func (m Model) updateMailForm(msg tea.Msg) (Model, tea.Cmd) {
	if m.mailForm == nil {
		return m, nil
	}

	mdl, cmd := m.mailForm.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.mailForm = f
	}

	if m.mailForm.State == huh.StateCompleted {
		return m.saveMailSettings()
	}
	if m.mailForm.State == huh.StateAborted {
		m.mode = ModeList
		return m, nil
	}

	return m, cmd
}

func (m Model) saveMailSettings() (Model, tea.Cmd) {
	port, err := strconv.Atoi(strings.TrimSpace(m.fb.mailPort))
	if err != nil {
		port = 993
	}

	m.config.Mailbox.Enabled = m.fb.mailEnabled
	m.config.Mailbox.Host = strings.TrimSpace(m.fb.mailHost)
	m.config.Mailbox.Port = port
	m.config.Mailbox.Username = strings.TrimSpace(m.fb.mailUsername)
	m.config.Mailbox.Security = m.fb.mailSecurity
	m.config.Mailbox.Folder = strings.TrimSpace(m.fb.mailFolder)
	if m.config.Mailbox.Folder == "" {
		m.config.Mailbox.Folder = "INBOX"
	}

	return m, m.persist(credential.KeyMailboxPassword, m.fb.mailPassword)
}

// --- Speech Form ---

func (m *Model) fillSpeechBindings() {
	cc := m.config.Capture
	m.fb.captureCommand = cc.Command
	m.fb.recordCommand = cc.RecordCommand
	m.fb.speechURL = cc.SpeechURL
	m.fb.speechModel = cc.SpeechModel
	m.fb.speechKey = "" // Never pre-fill credentials
	m.fb.searchURL = cc.SearchURL
}

func (m *Model) buildSpeechForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Capture Command").
				Description("Program whose stdout is the transcript; overrides the API fields below").
				Placeholder("nerd-dictation-oneshot").
				Value(&m.fb.captureCommand),
			huh.NewInput().
				Title("Record Command").
				Description("Records audio into the WAV file passed as its last argument").
				Placeholder("arecord -f cd -t wav").
				Value(&m.fb.recordCommand),
			huh.NewInput().
				Title("Speech API URL").
				Description("Base URL of the transcription service").
				Placeholder("https://api.openai.com/v1").
				Value(&m.fb.speechURL),
			huh.NewInput().
				Title("Speech Model").
				Placeholder("whisper-1").
				Value(&m.fb.speechModel),
			huh.NewInput().
				Title("API Key").
				Description("Leave empty to keep the stored key").
				EchoMode(huh.EchoModePassword).
				Value(&m.fb.speechKey),
			huh.NewInput().
				Title("Search URL").
				Description("Prefix for searches made from spoken phrases that are not addresses").
				Placeholder("https://www.google.com/search?q=").
				Value(&m.fb.searchURL),
		),
	).WithWidth(m.formWidth())
}

func (m Model) updateSpeechForm(msg tea.Msg) (Model, tea.Cmd) {
	if m.speechForm == nil {
		return m, nil
	}

	mdl, cmd := m.speechForm.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.speechForm = f
	}

	if m.speechForm.State == huh.StateCompleted {
		return m.saveSpeechSettings()
	}
	if m.speechForm.State == huh.StateAborted {
		m.mode = ModeList
		return m, nil
	}

	return m, cmd
}

func (m Model) saveSpeechSettings() (Model, tea.Cmd) {
	m.config.Capture.Command = strings.TrimSpace(m.fb.captureCommand)
	m.config.Capture.RecordCommand = strings.TrimSpace(m.fb.recordCommand)
	m.config.Capture.SpeechURL = strings.TrimSpace(m.fb.speechURL)
	m.config.Capture.SpeechModel = strings.TrimSpace(m.fb.speechModel)
	m.config.Capture.SearchURL = strings.TrimSpace(m.fb.searchURL)

	return m, m.persist(credential.KeySpeechAPIKey, m.fb.speechKey)
}

// --- Persistence ---

// persist writes the config file and, when secret is non-empty, stores
// it in the keyring under credKey.
func (m Model) persist(credKey, secret string) tea.Cmd {
	path := m.configPath
	cfg := m.config
	return func() tea.Msg {
		if secret != "" {
			if err := credential.Set(credKey, secret); err != nil {
				return configSavedMsg{err: fmt.Errorf("storing credential: %w", err)}
			}
		}
		if err := model.SaveConfig(path, cfg); err != nil {
			return configSavedMsg{err: err}
		}
		return configSavedMsg{}
	}
}

// testMailbox tries to log in with the stored account settings.
func (m Model) testMailbox(mb model.MailboxConfig) tea.Cmd {
	return func() tea.Msg {
		password, err := credential.Get(credential.KeyMailboxPassword)
		if err != nil {
			return ValidateResultMsg{Err: fmt.Errorf("no stored password: %w", err)}
		}

		client := mailbox.NewClient(
			mb.Host, mb.Port, mb.Username, password, mb.Security, mb.Folder,
		)
		account, err := client.Validate(context.Background())
		return ValidateResultMsg{Account: account, Err: err}
	}
}

// --- View ---

// View renders the settings UI based on the current mode.
func (m Model) View() string {
	switch m.mode {
	case ModeList:
		return m.viewList()
	case ModeFormMailbox:
		return m.viewForm(m.mailForm, "Mailbox Account")
	case ModeFormSpeech:
		return m.viewForm(m.speechForm, "Voice Capture")
	case ModeValidating:
		return m.viewValidating()
	case ModeValidateResult:
		return m.viewValidateResult()
	default:
		return ""
	}
}

func (m Model) viewList() string {
	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	b.WriteString(titleStyle.Render("Settings"))
	b.WriteString("\n\n")

	labelStyle := lipgloss.NewStyle().Foreground(theme.ColorGray)
	valStyle := lipgloss.NewStyle().Foreground(theme.ColorWhite)

	b.WriteString(fmt.Sprintf(
		"%s  %s\n",
		labelStyle.Render("Mailbox:"),
		valStyle.Render(m.mailboxSummary()),
	))
	b.WriteString(fmt.Sprintf(
		"%s  %s\n",
		labelStyle.Render("Capture:"),
		valStyle.Render(m.captureSummary()),
	))
	b.WriteString(fmt.Sprintf(
		"%s   %s\n",
		labelStyle.Render("Search:"),
		valStyle.Render(m.config.Capture.SearchURL),
	))
	b.WriteString(fmt.Sprintf(
		"%s   %s\n",
		labelStyle.Render("Config:"),
		valStyle.Render(m.configPath),
	))

	if m.statusMsg != "" {
		b.WriteString("\n")
		statusStyle := lipgloss.NewStyle().
			Foreground(theme.ColorYellow).
			Italic(true)
		b.WriteString(statusStyle.Render(m.statusMsg))
	}

	b.WriteString("\n\n")
	hintStyle := lipgloss.NewStyle().Foreground(theme.ColorGray)
	b.WriteString(hintStyle.Render(
		"m mailbox | s voice capture | enter test mailbox | esc back",
	))

	return lipgloss.NewStyle().
		Padding(1, 2).
		Width(m.width).
		Height(m.height).
		Render(b.String())
}

func (m Model) mailboxSummary() string {
	mb := m.config.Mailbox
	if !mb.Enabled {
		return "disabled"
	}
	if mb.Username == "" || mb.Host == "" {
		return "enabled, not configured"
	}
	return fmt.Sprintf("%s on %s:%d (%s)", mb.Username, mb.Host, mb.Port, mb.Folder)
}

func (m Model) captureSummary() string {
	cc := m.config.Capture
	if cc.Command != "" {
		return "command: " + cc.Command
	}
	if cc.RecordCommand != "" {
		return fmt.Sprintf("%s via %s", cc.SpeechModel, cc.SpeechURL)
	}
	return "not configured"
}

func (m Model) viewForm(f *huh.Form, title string) string {
	if f == nil {
		return ""
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	content := titleStyle.Render(title) + "\n" + f.View()

	return lipgloss.NewStyle().
		Padding(1, 2).
		Width(m.width).
		Height(m.height).
		Render(content)
}

func (m Model) viewValidating() string {
	style := lipgloss.NewStyle().
		Padding(1, 2).
		Width(m.width).
		Height(m.height)

	content := fmt.Sprintf(
		"%s Testing connection...\n\nPress esc to cancel.",
		m.spinner.View(),
	)

	return style.Render(content)
}

func (m Model) viewValidateResult() string {
	style := lipgloss.NewStyle().
		Padding(1, 2).
		Width(m.width).
		Height(m.height)

	var content string
	if m.validError != nil {
		errStyle := lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.ColorRed)
		content = errStyle.Render("Connection failed") + "\n\n" +
			m.validError.Error() + "\n\n" +
			lipgloss.NewStyle().Foreground(theme.ColorGray).
				Render("r retry | enter/esc back")
	} else {
		okStyle := lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.ColorGreen)
		account := m.validResult
		if account == "" {
			account = "OK"
		}
		content = okStyle.Render("Connection successful") + "\n\n" +
			fmt.Sprintf("Authenticated as: %s", account) + "\n\n" +
			lipgloss.NewStyle().Foreground(theme.ColorGray).
				Render("enter/esc back")
	}

	return style.Render(content)
}

// --- Helpers ---

// SetSize updates the view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m Model) formWidth() int {
	w := m.width - 4
	if w < 40 {
		w = 40
	}
	if w > 100 {
		w = 100
	}
	return w
}

// --- Validators ---

func validateRequired(fieldName string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", fieldName)
		}
		return nil
	}
}

func validatePort(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("port is required")
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return fmt.Errorf("port must be a number")
		}
	}
	return nil
}
