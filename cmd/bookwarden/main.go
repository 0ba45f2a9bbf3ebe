// ABOUTME: Entry point for the bookwarden library catalog
// ABOUTME: Runs the interactive session, creates config, and imports catalogs

package main

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fatih/color"

	"github.com/2389/bookwarden/internal/borrow"
	"github.com/2389/bookwarden/internal/catalog"
	"github.com/2389/bookwarden/internal/config"
	"github.com/2389/bookwarden/internal/ledger"
	"github.com/2389/bookwarden/internal/roster"
	"github.com/2389/bookwarden/internal/session"
)

// Version is set by goreleaser at build time.
var version = "dev"

const banner = `
 _                 _                            _
| |__   ___   ___ | | ____      ____ _ _ __ __| | ___ _ __
| '_ \ / _ \ / _ \| |/ /\ \ /\ / / _' | '__/ _' |/ _ \ '_ \
| |_) | (_) | (_) |   <  \ V  V / (_| | | | (_| |  __/ | | |
|_.__/ \___/ \___/|_|\_\  \_/\_/ \__,_|_|  \__,_|\___|_| |_|
`

// getConfigPath returns the path to the bookwarden config file.
// Priority: BOOKWARDEN_CONFIG env var > XDG_CONFIG_HOME/bookwarden/bookwarden.yaml > ~/.config/bookwarden/bookwarden.yaml
func getConfigPath() string {
	if envPath := os.Getenv("BOOKWARDEN_CONFIG"); envPath != "" {
		return envPath
	}

	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "bookwarden.yaml" // fallback
		}
		configDir = filepath.Join(homeDir, ".config")
	}

	return filepath.Join(configDir, "bookwarden", "bookwarden.yaml")
}

// getDataPath returns the path to the bookwarden data directory.
// Priority: XDG_DATA_HOME/bookwarden > ~/.local/share/bookwarden
func getDataPath() string {
	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "data" // fallback
		}
		dataDir = filepath.Join(homeDir, ".local", "share")
	}

	return filepath.Join(dataDir, "bookwarden")
}

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: bookwarden <command>")
		fmt.Println()
		fmt.Println("Commands:")
		fmt.Println("  run            Start the interactive library session")
		fmt.Println("  init           Create a new config file interactively")
		fmt.Println("  import FILE    Import books from a semicolon-separated text file")
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "run":
		err = runSession()
	case "init":
		err = runInit()
	case "import":
		err = runImport()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", os.Args[1])
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig reads the config file, falling back to built-in defaults
// when no file exists so first runs work without setup.
func loadConfig() (*config.Config, string, error) {
	configPath := getConfigPath()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return config.Default(getDataPath()), configPath + " (not found, using defaults)", nil
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, "", fmt.Errorf("loading config: %w", err)
	}
	return cfg, configPath, nil
}

// openStores builds the catalog, roster, ledger, and borrowing service
// over the configured data directory, loading persisted state.
func openStores(cfg *config.Config, logger *slog.Logger) (*catalog.Catalog, *roster.Roster, *ledger.Ledger, *borrow.Service, error) {
	if err := os.MkdirAll(cfg.Data.Dir, 0755); err != nil {
		return nil, nil, nil, nil, fmt.Errorf("creating data directory: %w", err)
	}

	books := catalog.New(filepath.Join(cfg.Data.Dir, "books.dat"), logger)
	if err := books.Load(); err != nil {
		return nil, nil, nil, nil, fmt.Errorf("loading catalog: %w", err)
	}

	users := roster.New(filepath.Join(cfg.Data.Dir, "users.txt"), logger)
	users.SetAdminCredentials(cfg.Auth.AdminUsername, cfg.Auth.AdminPassword)
	if err := users.Load(); err != nil {
		return nil, nil, nil, nil, fmt.Errorf("loading roster: %w", err)
	}

	records := ledger.New(cfg.Data.Dir, logger)
	loans := borrow.NewService(books, records, logger)

	return books, users, records, loans, nil
}

func runSession() error {
	cyan := color.New(color.FgCyan)
	cyan.Print(banner)

	gray := color.New(color.FgHiBlack)
	gray.Printf("    version: %s\n\n", version)

	cfg, configPath, err := loadConfig()
	if err != nil {
		return err
	}

	logger := setupLogger(cfg.Logging)

	green := color.New(color.FgGreen)
	green.Print("    ▶ ")
	fmt.Printf("Config: %s\n", configPath)
	green.Print("    ▶ ")
	fmt.Printf("Data:   %s\n", cfg.Data.Dir)
	fmt.Println()

	books, users, records, loans, err := openStores(cfg, logger)
	if err != nil {
		return err
	}

	// Seed an empty catalog from books.txt when one is present in the
	// data directory.
	if books.Len() == 0 {
		seedPath := filepath.Join(cfg.Data.Dir, "books.txt")
		if _, err := os.Stat(seedPath); err == nil {
			n, err := books.ImportText(seedPath)
			if err != nil {
				return fmt.Errorf("importing seed catalog: %w", err)
			}
			if err := books.Save(); err != nil {
				return fmt.Errorf("saving catalog: %w", err)
			}
			logger.Info("imported seed catalog", "path", seedPath, "books", n)
		}
	}

	logger.Info("starting bookwarden",
		"config", configPath,
		"data_dir", cfg.Data.Dir,
		"books", books.Len(),
		"users", users.Len(),
	)

	sess := session.New(os.Stdin, os.Stdout, books, users, records, loans, logger)
	return sess.Run()
}

func runImport() error {
	if len(os.Args) < 3 {
		return fmt.Errorf("usage: bookwarden import FILE")
	}
	importPath := os.Args[2]

	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}
	logger := setupLogger(cfg.Logging)

	books, _, _, _, err := openStores(cfg, logger)
	if err != nil {
		return err
	}

	n, err := books.ImportText(importPath)
	if err != nil {
		return fmt.Errorf("importing %s: %w", importPath, err)
	}
	if err := books.Save(); err != nil {
		return fmt.Errorf("saving catalog: %w", err)
	}

	green := color.New(color.FgGreen)
	green.Printf("  ✓ Imported %d books from %s\n", n, importPath)
	fmt.Printf("  Catalog now holds %d books\n", books.Len())
	return nil
}

func runInit() error {
	reader := bufio.NewReader(os.Stdin)

	fmt.Println("bookwarden configuration setup")
	fmt.Println("==============================")
	fmt.Println()

	defaultConfigPath := getConfigPath()
	defaultDataPath := getDataPath()

	outputFile := prompt(reader, "Config file path", defaultConfigPath)

	if _, err := os.Stat(outputFile); err == nil {
		overwrite := prompt(reader, "File exists. Overwrite?", "no")
		if strings.ToLower(overwrite) != "yes" && strings.ToLower(overwrite) != "y" {
			fmt.Println("Aborted.")
			return nil
		}
	}

	fmt.Println("\n--- Data Configuration ---")
	dataDir := prompt(reader, "Data directory", defaultDataPath)

	fmt.Println("\n--- Admin Configuration ---")
	adminUsername := prompt(reader, "Admin username", roster.DefaultAdminUsername)
	adminPassword := prompt(reader, "Admin password", roster.DefaultAdminPassword)

	fmt.Println("\n--- Logging Configuration ---")
	logLevel := prompt(reader, "Log level (debug/info/warn/error)", "info")
	logFormat := prompt(reader, "Log format (text/json)", "text")

	var cfg strings.Builder
	cfg.WriteString("# bookwarden configuration\n")
	cfg.WriteString("# Generated by bookwarden init\n\n")

	cfg.WriteString("data:\n")
	cfg.WriteString(fmt.Sprintf("  dir: \"%s\"\n", dataDir))
	cfg.WriteString("\n")

	cfg.WriteString("auth:\n")
	cfg.WriteString(fmt.Sprintf("  admin_username: \"%s\"\n", adminUsername))
	cfg.WriteString(fmt.Sprintf("  admin_password: \"%s\"\n", adminPassword))
	cfg.WriteString("\n")

	cfg.WriteString("logging:\n")
	cfg.WriteString(fmt.Sprintf("  level: \"%s\"\n", logLevel))
	cfg.WriteString(fmt.Sprintf("  format: \"%s\"\n", logFormat))

	configDir := filepath.Dir(outputFile)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(outputFile, []byte(cfg.String()), 0600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	fmt.Printf("\nConfig written to %s\n", outputFile)
	fmt.Printf("Data directory: %s\n", dataDir)
	fmt.Println("\nTo start the library:")
	fmt.Printf("  bookwarden run\n")

	return nil
}

func prompt(reader *bufio.Reader, question, defaultVal string) string {
	if defaultVal != "" {
		fmt.Printf("%s [%s]: ", question, defaultVal)
	} else {
		fmt.Printf("%s: ", question)
	}

	input, err := reader.ReadString('\n')
	if err != nil {
		// On EOF or error, return default
		fmt.Println()
		return defaultVal
	}
	input = strings.TrimSpace(input)

	if input == "" {
		return defaultVal
	}
	return input
}

func setupLogger(cfg config.LoggingConfig) *slog.Logger {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = &colorHandler{
			level: level,
		}
	}

	return slog.New(handler)
}

// colorHandler provides colorized log output with thread-safe writes.
// Logs go to stderr so they do not interleave with menu output.
type colorHandler struct {
	mu     sync.Mutex
	level  slog.Level
	attrs  []slog.Attr
	groups []string
}

func (h *colorHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

func (h *colorHandler) Handle(_ context.Context, r slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	var buf strings.Builder

	buf.WriteString(color.HiBlackString(r.Time.Format("15:04:05") + " "))

	switch r.Level {
	case slog.LevelDebug:
		buf.WriteString(color.MagentaString("DBG "))
	case slog.LevelInfo:
		buf.WriteString(color.CyanString("INF "))
	case slog.LevelWarn:
		buf.WriteString(color.YellowString("WRN "))
	case slog.LevelError:
		buf.WriteString(color.New(color.FgRed, color.Bold).Sprint("ERR "))
	default:
		buf.WriteString("??? ")
	}

	buf.WriteString(r.Message)

	// Handler-level attrs first (from WithAttrs), then record attrs
	for _, a := range h.attrs {
		buf.WriteString(color.HiBlackString(" " + a.Key + "="))
		buf.WriteString(a.Value.String())
	}
	r.Attrs(func(a slog.Attr) bool {
		buf.WriteString(color.HiBlackString(" " + a.Key + "="))
		buf.WriteString(a.Value.String())
		return true
	})

	buf.WriteString("\n")
	fmt.Fprint(os.Stderr, buf.String())
	return nil
}

func (h *colorHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	newAttrs := make([]slog.Attr, len(h.attrs), len(h.attrs)+len(attrs))
	copy(newAttrs, h.attrs)
	newAttrs = append(newAttrs, attrs...)
	return &colorHandler{
		level:  h.level,
		attrs:  newAttrs,
		groups: h.groups,
	}
}

func (h *colorHandler) WithGroup(name string) slog.Handler {
	newGroups := make([]string, len(h.groups), len(h.groups)+1)
	copy(newGroups, h.groups)
	newGroups = append(newGroups, name)
	return &colorHandler{
		level:  h.level,
		attrs:  h.attrs,
		groups: newGroups,
	}
}
