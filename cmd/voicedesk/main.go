package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/voicedesk/internal/app"
	"github.com/nhle/voicedesk/internal/capture"
	"github.com/nhle/voicedesk/internal/credential"
	"github.com/nhle/voicedesk/internal/linkstore"
	"github.com/nhle/voicedesk/internal/model"
	"github.com/nhle/voicedesk/internal/storage"
	"github.com/nhle/voicedesk/internal/taskstore"
	"github.com/nhle/voicedesk/internal/theme"
)

func main() {
	configPath := flag.String("config", model.DefaultConfigPath(), "path to the config file")
	dbPath := flag.String("db", "", "path to the database (overrides config)")
	debug := flag.Bool("debug", false, "write debug logs to voicedesk.log")
	flag.Parse()

	// The standard logger must never write to the terminal while the
	// TUI owns it.
	if *debug {
		f, err := tea.LogToFile("voicedesk.log", "voicedesk")
		if err != nil {
			fmt.Fprintf(os.Stderr, "opening log file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	cfg, err := model.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "loading config: %v\n", err)
		os.Exit(1)
	}
	if *dbPath != "" {
		cfg.Storage.Path = *dbPath
	}

	if dir := filepath.Dir(cfg.Storage.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			fmt.Fprintf(os.Stderr, "creating data directory: %v\n", err)
			os.Exit(1)
		}
	}

	kv, err := storage.Open(cfg.Storage.Path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "opening database: %v\n", err)
		os.Exit(1)
	}
	defer kv.Close()

	tasks := taskstore.New(kv)
	tasks.Load()
	links := linkstore.New(kv, cfg.Capture.SearchURL)
	links.Load()

	// The stored theme choice wins over the config default once set.
	mode := theme.ParseMode(cfg.Display.Theme)
	var stored string
	if kv.Get(storage.KeyTheme, &stored) {
		mode = theme.ParseMode(stored)
	}
	theme.Apply(mode)

	apiKey, _ := credential.Get(credential.KeySpeechAPIKey)
	mgr := capture.NewManager(capture.FromConfig(cfg.Capture, apiKey))

	root := app.New(app.Options{
		ConfigPath: *configPath,
		Config:     cfg,
		KV:         kv,
		Tasks:      tasks,
		Links:      links,
		Capture:    mgr,
		ThemeMode:  mode,
	})

	p := tea.NewProgram(root, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "running voicedesk: %v\n", err)
		os.Exit(1)
	}
}
