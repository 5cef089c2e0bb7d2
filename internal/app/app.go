package app

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/voicedesk/internal/capture"
	"github.com/nhle/voicedesk/internal/keys"
	"github.com/nhle/voicedesk/internal/linkstore"
	"github.com/nhle/voicedesk/internal/model"
	"github.com/nhle/voicedesk/internal/source"
	"github.com/nhle/voicedesk/internal/storage"
	appsync "github.com/nhle/voicedesk/internal/sync"
	"github.com/nhle/voicedesk/internal/taskstore"
	"github.com/nhle/voicedesk/internal/theme"
	"github.com/nhle/voicedesk/internal/ui"
	"github.com/nhle/voicedesk/internal/ui/command"
	"github.com/nhle/voicedesk/internal/ui/detail"
	helpview "github.com/nhle/voicedesk/internal/ui/help"
	"github.com/nhle/voicedesk/internal/ui/linkform"
	"github.com/nhle/voicedesk/internal/ui/linklist"
	"github.com/nhle/voicedesk/internal/ui/prompt"
	"github.com/nhle/voicedesk/internal/ui/settings"
	"github.com/nhle/voicedesk/internal/ui/taskform"
	"github.com/nhle/voicedesk/internal/ui/tasklist"
)

// ViewState represents the current active view in the application.
type ViewState int

const (
	ViewTasks ViewState = iota
	ViewLinks
	ViewDetail
	ViewSettings
	ViewHelp
	ViewCommand
	ViewTaskForm
	ViewLinkForm
	ViewPrompt
)

// Options carries everything the root model needs from main.
type Options struct {
	ConfigPath string
	Config     *model.AppConfig
	KV         *storage.KV
	Tasks      *taskstore.Store
	Links      *linkstore.Store
	Capture    *capture.Manager
	ThemeMode  theme.Mode
}

// Model is the root Bubble Tea model that manages view routing,
// layout, and the two collections.
type Model struct {
	currentView  ViewState
	previousView ViewState
	layout       ui.Layout
	keys         *keys.KeyMap

	configPath string
	config     *model.AppConfig

	kv      *storage.KV
	tasks   *taskstore.Store
	links   *linkstore.Store
	capture *capture.Manager

	poller  *appsync.Poller
	sources map[string]source.Source
	seen    map[string]bool

	taskList     tasklist.Model
	linkList     linklist.Model
	detailView   detail.Model
	helpView     helpview.Model
	commandView  command.Model
	settingsView settings.Model
	taskFormView taskform.Model
	linkFormView linkform.Model
	promptView   prompt.Model

	// promptTaskID is the task receiving the subtask being typed.
	promptTaskID string

	themeMode theme.Mode
	notice    model.Notice
	hasNotice bool
	ready     bool
}

// New creates the root application model.
func New(opts Options) Model {
	k := keys.DefaultKeyMap()

	return Model{
		currentView:  ViewTasks,
		keys:         k,
		configPath:   opts.ConfigPath,
		config:       opts.Config,
		kv:           opts.KV,
		tasks:        opts.Tasks,
		links:        opts.Links,
		capture:      opts.Capture,
		poller:       appsync.New(pollInterval(opts.Config)),
		sources:      make(map[string]source.Source),
		seen:         make(map[string]bool),
		themeMode:    opts.ThemeMode,
		taskList:     tasklist.New(opts.Tasks, k, 80, 24),
		linkList:     linklist.New(opts.Links, k, 80, 24),
		detailView:   detail.New(k, 80, 24),
		helpView:     helpview.New(k, 80, 24),
		commandView:  command.New(80, 24),
		settingsView: settings.New(opts.ConfigPath, opts.Config, k, 80, 24),
		taskFormView: taskform.New(80, 24),
		linkFormView: linkform.New(80, 24),
		promptView:   prompt.New(80, 24),
	}
}

func pollInterval(cfg *model.AppConfig) time.Duration {
	return time.Duration(cfg.Mailbox.PollMinutes) * time.Minute
}

// Init subscribes to capture events, registers mail sources, and arms
// the midnight rollover.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.capture.WaitForEvent(),
		m.registerSources(),
		scheduleDayRollover(),
	)
}

// Update handles messages and dispatches to the active view.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout = ui.NewLayout(msg.Width, msg.Height)
		m.ready = true
		contentWidth := m.layout.ContentWidth()
		contentHeight := m.layout.ContentHeight()
		m.taskList.SetSize(contentWidth, contentHeight)
		m.linkList.SetSize(contentWidth, contentHeight)
		m.detailView.SetSize(contentWidth, contentHeight)
		m.helpView.SetSize(contentWidth, contentHeight)
		m.commandView.SetSize(contentWidth, contentHeight)
		m.settingsView.SetSize(contentWidth, contentHeight)
		m.taskFormView.SetSize(contentWidth, contentHeight)
		m.linkFormView.SetSize(contentWidth, contentHeight)
		m.promptView.SetSize(contentWidth, contentHeight)
		// Forward to active view so huh forms can calculate their layout.
		return m.updateActiveView(msg)

	case sourcesRegisteredMsg:
		for _, src := range msg.sources {
			m.sources[src.Name()] = src
		}
		return m, m.poller.Start()

	case appsync.SyncResultMsg:
		return m.handleSyncResult(msg)

	case capture.StartedMsg:
		return m, m.capture.WaitForEvent()

	case capture.ResultMsg:
		return m.handleCaptureResult(msg)

	case capture.ErrorMsg:
		return m, tea.Batch(
			m.capture.WaitForEvent(),
			m.setNotice(model.NoticeError, "Capture failed: "+msg.Message),
		)

	case capture.StoppedMsg:
		// Sessions that heard nothing end without user-visible output.
		return m, m.capture.WaitForEvent()

	case noticeExpiredMsg:
		if m.hasNotice && m.notice.ID == msg.id {
			m.hasNotice = false
		}
		return m, nil

	case dayRolloverMsg:
		// Day groupings and overdue states shift at local midnight.
		m.taskList.Reload()
		if m.currentView == ViewDetail {
			if task, ok := m.tasks.Get(m.detailView.TaskID()); ok {
				m.detailView.Refresh(task)
			}
		}
		return m, scheduleDayRollover()

	case tasklist.SelectedTaskMsg:
		if task, ok := m.tasks.Get(msg.TaskID); ok {
			m.previousView = m.currentView
			m.currentView = ViewDetail
			m.detailView.SetTask(task)
		}
		return m, nil

	case linklist.SelectedLinkMsg:
		if link, ok := m.links.Get(msg.LinkID); ok {
			m.previousView = m.currentView
			m.currentView = ViewLinkForm
			return m, m.linkFormView.StartEdit(link)
		}
		return m, nil

	case detail.BackMsg:
		m.currentView = ViewTasks
		return m, nil

	case taskform.TaskCreatedMsg:
		m.currentView = ViewTasks
		if m.tasks.Add(msg.Text, msg.Opts) {
			m.taskList.Reload()
			return m, m.setNotice(model.NoticeInfo, "Task added")
		}
		return m, nil

	case taskform.TaskUpdatedMsg:
		m.currentView = ViewTasks
		m.tasks.UpdateText(msg.ID, msg.Text)
		m.tasks.SetDeadline(msg.ID, msg.Deadline)
		m.tasks.SetPriority(msg.ID, msg.Priority)
		m.tasks.SetCategories(msg.ID, msg.Categories)
		m.taskList.Reload()
		return m, m.setNotice(model.NoticeInfo, "Task updated")

	case taskform.FormCancelMsg:
		m.currentView = ViewTasks
		return m, nil

	case linkform.LinkAddedMsg:
		m.currentView = ViewLinks
		if m.links.Add(msg.URL) {
			return m, tea.Batch(
				m.linkList.Reload(),
				m.setNotice(model.NoticeInfo, "Link saved"),
			)
		}
		return m, m.setNotice(model.NoticeWarn,
			fmt.Sprintf("Not a usable address: %q", msg.URL))

	case linkform.DescriptionEditedMsg:
		m.currentView = ViewLinks
		m.links.UpdateDescription(msg.ID, msg.Text)
		return m, m.linkList.Reload()

	case linkform.FormCancelMsg:
		m.currentView = ViewLinks
		return m, nil

	case prompt.SubmitMsg:
		m.currentView = ViewTasks
		if m.tasks.AddSubtask(m.promptTaskID, msg.Value) {
			if !m.tasks.IsExpanded(m.promptTaskID) {
				m.tasks.ToggleExpanded(m.promptTaskID)
			}
			m.taskList.Reload()
		}
		return m, nil

	case prompt.CancelMsg:
		m.currentView = ViewTasks
		return m, nil

	case command.CommandMsg:
		m.currentView = m.previousView
		return m, m.executeCommand(string(msg))

	case settings.SavedMsg:
		m.config = msg.Config
		m.links.SetSearchURL(m.config.Capture.SearchURL)
		return m, tea.Batch(
			m.reloadRecognizer(),
			m.restartPoller(),
			m.setNotice(model.NoticeInfo, "Settings saved"),
		)

	case settings.DoneMsg:
		m.currentView = ViewTasks
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.poller.Stop()
			return m, tea.Quit
		}
		if m.currentView == ViewCommand {
			switch msg.String() {
			case "esc", ":":
				m.currentView = m.previousView
				return m, nil
			}
		}
		if !m.textEntryActive() {
			if handled, next, cmd := m.handleGlobalKey(msg); handled {
				return next, cmd
			}
		}
	}

	// Delegate to active sub-view
	return m.updateActiveView(msg)
}

// textEntryActive reports whether the current view owns the keyboard,
// so single-letter shortcuts must not be intercepted.
func (m Model) textEntryActive() bool {
	switch m.currentView {
	case ViewTaskForm, ViewLinkForm, ViewPrompt, ViewCommand, ViewSettings:
		return true
	}
	return m.currentView == ViewLinks && m.linkList.Filtering()
}

// handleGlobalKey processes application-wide shortcuts. It reports
// whether the key was consumed.
func (m Model) handleGlobalKey(msg tea.KeyMsg) (bool, Model, tea.Cmd) {
	inList := m.currentView == ViewTasks || m.currentView == ViewLinks

	switch msg.String() {
	case "q":
		if inList {
			m.poller.Stop()
			return true, m, tea.Quit
		}

	case "?":
		if m.currentView == ViewHelp {
			m.currentView = m.previousView
			return true, m, nil
		}
		m.previousView = m.currentView
		m.currentView = ViewHelp
		return true, m, nil

	case "esc":
		if m.currentView == ViewHelp {
			m.currentView = m.previousView
			return true, m, nil
		}

	case ":":
		m.previousView = m.currentView
		m.currentView = ViewCommand
		return true, m, m.commandView.Focus()

	case "1":
		if inList && m.currentView != ViewTasks {
			m.currentView = ViewTasks
			m.taskList.Reload()
			return true, m, nil
		}

	case "2":
		if inList && m.currentView != ViewLinks {
			m.currentView = ViewLinks
			return true, m, m.linkList.Reload()
		}

	case "a":
		switch m.currentView {
		case ViewTasks:
			m.previousView = m.currentView
			m.currentView = ViewTaskForm
			return true, m, m.taskFormView.StartCreate()
		case ViewLinks:
			m.previousView = m.currentView
			m.currentView = ViewLinkForm
			return true, m, m.linkFormView.StartCreate()
		}

	case "e":
		switch m.currentView {
		case ViewTasks:
			if task, ok := m.taskList.SelectedTask(); ok {
				m.previousView = m.currentView
				m.currentView = ViewTaskForm
				return true, m, m.taskFormView.StartEdit(task)
			}
		case ViewLinks:
			if link, ok := m.linkList.SelectedLink(); ok {
				m.previousView = m.currentView
				m.currentView = ViewLinkForm
				return true, m, m.linkFormView.StartEdit(link)
			}
		}

	case "d":
		switch m.currentView {
		case ViewTasks:
			if parentID, sub, ok := m.taskList.SelectedSubtask(); ok {
				m.tasks.RemoveSubtask(parentID, sub.ID)
				m.taskList.Reload()
				return true, m, nil
			}
			if task, ok := m.taskList.SelectedTask(); ok {
				m.tasks.Remove(task.ID)
				m.taskList.Reload()
				return true, m, m.setNotice(model.NoticeInfo, "Task deleted")
			}
		case ViewLinks:
			if link, ok := m.linkList.SelectedLink(); ok {
				m.links.Remove(link.ID)
				return true, m, tea.Batch(
					m.linkList.Reload(),
					m.setNotice(model.NoticeInfo, "Link deleted"),
				)
			}
		}

	case "x":
		if m.currentView == ViewTasks {
			if parentID, sub, ok := m.taskList.SelectedSubtask(); ok {
				m.tasks.ToggleSubtask(parentID, sub.ID)
				m.taskList.Reload()
				return true, m, nil
			}
			if task, ok := m.taskList.SelectedTask(); ok {
				m.tasks.Toggle(task.ID)
				m.taskList.Reload()
				return true, m, nil
			}
		}

	case " ":
		if m.currentView == ViewTasks {
			if task, ok := m.taskList.SelectedTask(); ok {
				m.tasks.ToggleExpanded(task.ID)
				m.taskList.Reload()
				return true, m, nil
			}
		}

	case "S":
		if m.currentView == ViewTasks {
			if task, ok := m.taskList.SelectedTask(); ok {
				m.promptTaskID = task.ID
				m.previousView = m.currentView
				m.currentView = ViewPrompt
				return true, m, m.promptView.Start("Add Subtask", "first concrete step...")
			}
		}

	case "f":
		if m.currentView == ViewTasks {
			f := m.tasks.CycleFilter()
			m.taskList.Reload()
			return true, m, m.setNotice(model.NoticeInfo, "Filter: "+string(f))
		}

	case "s":
		if m.currentView == ViewTasks {
			o := m.tasks.CycleSort()
			m.taskList.Reload()
			return true, m, m.setNotice(model.NoticeInfo, "Sort: "+string(o))
		}

	case "v":
		if inList {
			if !m.capture.Supported() {
				return true, m, m.setNotice(model.NoticeWarn,
					"Voice capture is not configured. Press 'c' to set it up.")
			}
			target := capture.TargetTasks
			if m.currentView == ViewLinks {
				target = capture.TargetLinks
			}
			m.capture.Toggle(target)
			return true, m, nil
		}

	case "r":
		if inList {
			if len(m.sources) == 0 {
				return true, m, m.setNotice(model.NoticeWarn,
					"Mailbox capture is disabled. Press 'c' to set it up.")
			}
			m.poller.Refresh()
			return true, m, m.setNotice(model.NoticeInfo, "Checking mail...")
		}

	case "t":
		if inList {
			m.themeMode = theme.Toggle(m.themeMode)
			theme.Apply(m.themeMode)
			m.kv.Set(storage.KeyTheme, string(m.themeMode))
			return true, m, m.setNotice(model.NoticeInfo, "Theme: "+string(m.themeMode))
		}

	case "c":
		if inList {
			m.previousView = m.currentView
			m.currentView = ViewSettings
			return true, m, m.settingsView.Init()
		}
	}

	return false, m, nil
}

// handleCaptureResult routes a finished transcript into the collection
// the session was aimed at.
func (m Model) handleCaptureResult(msg capture.ResultMsg) (tea.Model, tea.Cmd) {
	cmds := []tea.Cmd{m.capture.WaitForEvent()}

	switch msg.Target {
	case capture.TargetLinks:
		if m.links.AddTranscript(msg.Text) {
			cmds = append(cmds,
				m.linkList.Reload(),
				m.setNotice(model.NoticeInfo, "Captured link: "+truncate(msg.Text, 40)),
			)
		}
	default:
		if m.tasks.Add(msg.Text, taskstore.AddOptions{}) {
			m.taskList.Reload()
			cmds = append(cmds,
				m.setNotice(model.NoticeInfo, "Captured task: "+truncate(msg.Text, 40)),
			)
		}
	}

	return m, tea.Batch(cmds...)
}

// handleSyncResult imports fetched mail items and acknowledges them.
func (m Model) handleSyncResult(msg appsync.SyncResultMsg) (tea.Model, tea.Cmd) {
	cmds := []tea.Cmd{m.poller.WaitForNextResult()}

	if msg.AuthError != nil {
		cmds = append(cmds, m.setNotice(model.NoticeError, msg.AuthError.Message))
	}

	if len(msg.Items) > 0 {
		tasksAdded, linksAdded, refs := m.importItems(msg.Source, msg.Items)
		if tasksAdded > 0 {
			m.taskList.Reload()
		}
		if linksAdded > 0 {
			cmds = append(cmds, m.linkList.Reload())
		}
		if n := tasksAdded + linksAdded; n > 0 {
			text := fmt.Sprintf("Imported %d items from %s", n, msg.Source)
			if n == 1 {
				text = fmt.Sprintf("Imported 1 item from %s", msg.Source)
			}
			cmds = append(cmds, m.setNotice(model.NoticeInfo, text))
		}
		if len(refs) > 0 {
			cmds = append(cmds, m.markProcessed(msg.Source, refs))
		}
	}

	return m, tea.Batch(cmds...)
}

// updateActiveView dispatches the message to the currently active view.
func (m Model) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.currentView {
	case ViewTasks:
		m.taskList, cmd = m.taskList.Update(msg)
	case ViewLinks:
		m.linkList, cmd = m.linkList.Update(msg)
	case ViewDetail:
		m.detailView, cmd = m.detailView.Update(msg)
	case ViewSettings:
		m.settingsView, cmd = m.settingsView.Update(msg)
	case ViewHelp:
		m.helpView, cmd = m.helpView.Update(msg)
	case ViewCommand:
		m.commandView, cmd = m.commandView.Update(msg)
	case ViewTaskForm:
		m.taskFormView, cmd = m.taskFormView.Update(msg)
	case ViewLinkForm:
		m.linkFormView, cmd = m.linkFormView.Update(msg)
	case ViewPrompt:
		m.promptView, cmd = m.promptView.Update(msg)
	}

	return m, cmd
}

// View renders the full terminal UI using the layout manager.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	header := m.layout.RenderHeader("VoiceDesk", m.headerStatus())
	content := m.renderContent()
	statusBar := m.layout.RenderStatusBar(m.statusLine())

	return m.layout.RenderWithFrame(header, content, statusBar)
}

// renderContent returns the rendered string for the current active view.
func (m Model) renderContent() string {
	switch m.currentView {
	case ViewTasks:
		return m.taskList.View()
	case ViewLinks:
		return m.linkList.View()
	case ViewDetail:
		return m.detailView.View()
	case ViewSettings:
		return m.settingsView.View()
	case ViewHelp:
		return m.helpView.View()
	case ViewCommand:
		return m.commandView.View()
	case ViewTaskForm:
		return m.taskFormView.View()
	case ViewLinkForm:
		return m.linkFormView.View()
	case ViewPrompt:
		return m.promptView.View()
	default:
		return ""
	}
}

// headerStatus returns the right-aligned header text: the capture
// indicator while listening, otherwise the mail poll state.
func (m Model) headerStatus() string {
	if m.capture.Active() {
		return theme.CaptureStyle.Render("● listening")
	}
	return m.syncStatus()
}

// syncStatus summarizes the mail poll state for the header.
func (m Model) syncStatus() string {
	statuses := m.poller.Statuses()
	if len(statuses) == 0 {
		return ""
	}

	running := 0
	errCount := 0
	for _, s := range statuses {
		switch s.State {
		case appsync.SyncRunning:
			running++
		case appsync.SyncError:
			errCount++
		}
	}

	switch {
	case running > 0:
		return "checking mail"
	case errCount > 0:
		return "mail unreachable"
	default:
		return "mail idle"
	}
}

// statusLine returns the bottom bar content: the latest notice while
// it lasts, otherwise key hints for the active view.
func (m Model) statusLine() string {
	if m.hasNotice {
		return theme.NoticeStyle(m.notice.Level).Render(m.notice.Message)
	}
	return m.keyHints()
}

// keyHints returns keyboard shortcut hints for the status bar.
func (m Model) keyHints() string {
	switch m.currentView {
	case ViewHelp:
		return "? close help | esc back"
	case ViewCommand:
		return "enter run | esc close"
	case ViewDetail:
		return "esc back | j/k scroll"
	case ViewSettings:
		return "m mailbox | s voice capture | enter test | esc back"
	case ViewTaskForm, ViewLinkForm:
		return "enter next | shift+tab back | esc cancel"
	case ViewPrompt:
		return "enter add | esc cancel"
	case ViewLinks:
		return "a add | e describe | d delete | / search | v capture | 1 tasks"
	default:
		return fmt.Sprintf(
			"f filter: %s | s sort: %s | v capture | 2 links | ? help",
			m.tasks.CurrentFilter(), m.tasks.CurrentSort(),
		)
	}
}

// executeCommand handles a command string from the command palette.
func (m *Model) executeCommand(cmd string) tea.Cmd {
	switch cmd {
	case "refresh", "sync":
		if len(m.sources) == 0 {
			return m.setNotice(model.NoticeWarn, "Mailbox capture is disabled.")
		}
		m.poller.Refresh()
		return m.setNotice(model.NoticeInfo, "Checking mail...")
	case "quit", "q":
		m.poller.Stop()
		return tea.Quit
	case "settings", "config":
		m.previousView = m.currentView
		m.currentView = ViewSettings
		return m.settingsView.Init()
	case "tasks":
		m.currentView = ViewTasks
		m.taskList.Reload()
		return nil
	case "links":
		m.currentView = ViewLinks
		return m.linkList.Reload()
	case "theme":
		m.themeMode = theme.Toggle(m.themeMode)
		theme.Apply(m.themeMode)
		m.kv.Set(storage.KeyTheme, string(m.themeMode))
		return m.setNotice(model.NoticeInfo, "Theme: "+string(m.themeMode))
	case "capture", "voice":
		if !m.capture.Supported() {
			return m.setNotice(model.NoticeWarn, "Voice capture is not configured.")
		}
		target := capture.TargetTasks
		if m.currentView == ViewLinks {
			target = capture.TargetLinks
		}
		m.capture.Toggle(target)
		return nil
	case "filter all", "filter active", "filter completed", "filter overdue":
		f := taskstore.Filter(cmd[len("filter "):])
		m.tasks.SetFilter(f)
		m.taskList.Reload()
		m.currentView = ViewTasks
		return m.setNotice(model.NoticeInfo, "Filter: "+string(f))
	case "sort newest", "sort oldest", "sort deadline", "sort priority":
		o := taskstore.Sort(cmd[len("sort "):])
		m.tasks.SetSort(o)
		m.taskList.Reload()
		m.currentView = ViewTasks
		return m.setNotice(model.NoticeInfo, "Sort: "+string(o))
	default:
		return m.setNotice(model.NoticeWarn, fmt.Sprintf("Unknown command: %q", cmd))
	}
}

// truncate shortens s for one-line notices.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
