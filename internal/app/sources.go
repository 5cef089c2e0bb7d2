package app

import (
	"context"
	"log"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/voicedesk/internal/capture"
	"github.com/nhle/voicedesk/internal/credential"
	"github.com/nhle/voicedesk/internal/model"
	"github.com/nhle/voicedesk/internal/source"
	"github.com/nhle/voicedesk/internal/source/mailbox"
	appsync "github.com/nhle/voicedesk/internal/sync"
	"github.com/nhle/voicedesk/internal/taskstore"
)

// sourcesRegisteredMsg is sent when the configured capture sources have
// been registered with the poller.
type sourcesRegisteredMsg struct {
	sources []source.Source
}

// registerSources builds the mailbox source when it is enabled and
// registers it with the poller. The account password comes from the
// system keyring.
func (m Model) registerSources() tea.Cmd {
	cfg := m.config
	p := m.poller

	return func() tea.Msg {
		var registered []source.Source

		if cfg.Mailbox.Enabled {
			if src := buildMailboxSource(cfg.Mailbox); src != nil {
				p.Register(src)
				registered = append(registered, src)
			}
		}

		return sourcesRegisteredMsg{sources: registered}
	}
}

// buildMailboxSource assembles the IMAP adapter, loading the password
// from the system keyring.
func buildMailboxSource(mb model.MailboxConfig) source.Source {
	password, err := credential.Get(credential.KeyMailboxPassword)
	if err != nil {
		log.Printf(
			"skipping mailbox source %s@%s: credential not found: %v",
			mb.Username, mb.Host, err,
		)
		return nil
	}

	client := mailbox.NewClient(
		mb.Host, mb.Port, mb.Username, password, mb.Security, mb.Folder,
	)
	return mailbox.New(client)
}

// restartPoller replaces the poller after a configuration change and
// re-registers the sources against it.
func (m *Model) restartPoller() tea.Cmd {
	m.poller.Stop()
	m.poller = appsync.New(pollInterval(m.config))
	m.sources = make(map[string]source.Source)
	return m.registerSources()
}

// reloadRecognizer rebuilds the speech backend from the current
// configuration and keyring state.
func (m Model) reloadRecognizer() tea.Cmd {
	cfg := m.config
	mgr := m.capture

	return func() tea.Msg {
		// A missing key only matters for the API path; FromConfig
		// returns the command recognizer or nil as appropriate.
		apiKey, _ := credential.Get(credential.KeySpeechAPIKey)
		mgr.SetRecognizer(capture.FromConfig(cfg.Capture, apiKey))
		return nil
	}
}

// importItems adds fetched items to the stores, skipping refs already
// handled this session. Texts the stores decline are acknowledged
// anyway; they would never import on a retry either.
func (m *Model) importItems(sourceName string, items []source.Item) (tasksAdded, linksAdded int, refs []string) {
	for _, item := range items {
		refs = append(refs, item.Ref)

		key := sourceName + "/" + item.Ref
		if m.seen[key] {
			continue
		}
		m.seen[key] = true

		switch item.Kind {
		case source.ItemLink:
			if m.links.Add(item.Text) || m.links.AddTranscript(item.Text) {
				linksAdded++
			}
		default:
			if m.tasks.Add(item.Text, taskstore.AddOptions{}) {
				tasksAdded++
			}
		}
	}
	return tasksAdded, linksAdded, refs
}

// markProcessed acknowledges refs on the source so it stops offering
// them on later fetches.
func (m Model) markProcessed(sourceName string, refs []string) tea.Cmd {
	src, ok := m.sources[sourceName]
	if !ok {
		return nil
	}

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := src.MarkProcessed(ctx, refs); err != nil {
			log.Printf("acknowledging %d items on %s: %v", len(refs), sourceName, err)
		}
		return nil
	}
}
