package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/jspark-dev/cinegrid/internal/adapter"
	"github.com/jspark-dev/cinegrid/internal/api"
	"github.com/jspark-dev/cinegrid/internal/domain"
	"github.com/jspark-dev/cinegrid/internal/state"
	"github.com/jspark-dev/cinegrid/internal/store"
	"github.com/jspark-dev/cinegrid/internal/tui"
)

// Version is set at build time via -ldflags
var Version = "dev"

func main() {
	var showVersion bool
	var runSetup bool
	flag.BoolVar(&showVersion, "v", false, "print version")
	flag.BoolVar(&showVersion, "version", false, "print version")
	flag.BoolVar(&runSetup, "setup", false, "configure the backend server")
	flag.Parse()

	if showVersion {
		fmt.Printf("cinegrid %s\n", Version)
		return
	}

	if err := run(runSetup); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(runSetup bool) error {
	cfg, err := adapter.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := adapter.SetupLogger(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = adapter.NullLogger()
	}
	slog.SetDefault(logger)

	logger.Info("starting cinegrid", "version", Version)

	if runSetup || !cfg.IsConfigured() {
		return runSetupFlow(cfg, logger)
	}

	client := api.NewClient(cfg.Server.BaseURL, logger,
		api.WithTimeout(cfg.Server.Timeout),
		api.WithUploadTimeout(cfg.Server.UploadTimeout),
	)

	kv, err := store.Open(cfg.Storage.Dir)
	if err != nil {
		logger.Warn("local storage unavailable, using memory only", "error", err)
		kv, err = store.Open("")
		if err != nil {
			return fmt.Errorf("failed to open storage: %w", err)
		}
	}
	defer kv.Close()

	session := state.NewSession(kv, logger)
	movies := state.NewMovieStore(client, session, cfg.UI.PageSize, logger)
	member := state.NewMemberStore(client, kv, logger)
	grid := state.NewGridStore(client, kv, logger)

	model := tui.NewModel(tui.Options{
		Session:          session,
		Movies:           movies,
		Member:           member,
		Grid:             grid,
		Client:           client,
		Logger:           logger,
		InitialRoute:     domain.Route(cfg.UI.DefaultRoute),
		RecommendedLimit: cfg.Server.RecommendedLimit,
	})

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	logger.Info("starting TUI")

	if _, err := p.Run(); err != nil {
		logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}

	logger.Info("shutting down")
	return nil
}

// runSetupFlow prompts for the backend URL, verifies it with an optional
// login, and writes the config file.
func runSetupFlow(cfg *adapter.Config, logger *slog.Logger) error {
	fmt.Println()
	fmt.Println("Welcome to cinegrid!")
	fmt.Println()

	reader := bufio.NewReader(os.Stdin)

	var baseURL string
	for {
		fmt.Print("Enter the catalog server URL (e.g., http://localhost:8080/api): ")
		input, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}
		baseURL = strings.TrimSpace(input)
		if baseURL != "" {
			break
		}
		fmt.Println("Server URL cannot be empty. Please try again.")
	}

	cfg.Server.BaseURL = baseURL

	fmt.Print("Verify with a login now? [y/N]: ")
	answer, err := reader.ReadString('\n')
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}
	if strings.EqualFold(strings.TrimSpace(answer), "y") {
		if err := verifyLogin(baseURL, reader, logger); err != nil {
			return err
		}
	}

	if err := adapter.SaveConfig(cfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Println()
	fmt.Println("✓ Configuration saved!")
	fmt.Println()
	fmt.Println("Run cinegrid again to start the application.")
	return nil
}

func verifyLogin(baseURL string, reader *bufio.Reader, logger *slog.Logger) error {
	fmt.Print("Member ID: ")
	input, err := reader.ReadString('\n')
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}
	memberID := strings.TrimSpace(input)

	fmt.Print("Password: ")
	pwBytes, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}

	client := api.NewClient(baseURL, logger)
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	identity, err := client.Login(ctx, api.Credentials{
		ID:       memberID,
		Password: string(pwBytes),
	})
	if err != nil {
		return fmt.Errorf("login failed: %s", api.UserMessage(err).Message)
	}

	fmt.Printf("✓ Logged in as %s\n", identity.ID)
	return nil
}
