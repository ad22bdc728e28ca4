package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/ajramos/invitemate/internal/config"
	"github.com/ajramos/invitemate/internal/db"
	"github.com/ajramos/invitemate/internal/gmail"
	"github.com/ajramos/invitemate/internal/mail"
	"github.com/ajramos/invitemate/internal/services"
	"github.com/ajramos/invitemate/internal/sheets"
	"github.com/ajramos/invitemate/internal/version"
	"github.com/ajramos/invitemate/internal/web"
	"github.com/ajramos/invitemate/pkg/auth"
)

// sessionMaxAge bounds startup housekeeping of abandoned sessions.
const sessionMaxAge = 30 * 24 * time.Hour

func main() {
	configPathFlag := flag.String("config", "", "Path to JSON configuration file (default: ~/.config/invitemate/config.json)")
	addrFlag := flag.String("addr", "", "Listen address (overrides config)")
	versionFlag := flag.Bool("version", false, "Show version information and exit")
	flag.Parse()

	if *versionFlag {
		fmt.Println(version.GetDetailedVersionString())
		return
	}

	configPath := *configPathFlag
	if configPath == "" {
		configPath = config.DefaultConfigPath()
	}
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		log.Printf("Warning: could not load configuration: %v", err)
		cfg = config.DefaultConfig()
	}
	if *addrFlag != "" {
		cfg.Server.Addr = *addrFlag
	}
	secrets := config.LoadSecrets()

	logger := newLogger(cfg.LogFile)
	ctx := context.Background()

	// Session store
	store, err := db.Open(ctx, cfg.SessionDB)
	if err != nil {
		log.Fatalf("Could not open session store: %v", err)
	}
	defer func() { _ = store.Close() }()
	if n, err := store.DeleteOlderThan(ctx, time.Now().Add(-sessionMaxAge)); err == nil && n > 0 {
		logger.Info("removed stale sessions", "count", n)
	}

	// Record store
	if cfg.Sheets.SpreadsheetID == "" {
		log.Fatal("A spreadsheet ID is required. Set sheets.spreadsheet_id in the config file.")
	}
	if secrets.GoogleCredentials == "" {
		log.Fatal("GOOGLE_CREDENTIALS is required: a service-account JSON blob with Sheets access.")
	}
	sheetsService, err := auth.NewSheetsService(ctx, []byte(secrets.GoogleCredentials))
	if err != nil {
		log.Fatalf("Could not initialize Sheets service: %v", err)
	}
	sheetsClient := sheets.NewClient(sheetsService, cfg.Sheets.SpreadsheetID, cfg.Sheets.SheetName)
	repo := services.NewSheetsContactRepository(sheetsClient)

	// Mail provider
	sender, err := buildSender(ctx, cfg, secrets)
	if err != nil {
		log.Fatalf("Could not initialize mail provider: %v", err)
	}

	server := web.NewServer(
		store,
		services.NewAuthService(store, sender, cfg.Mail.CodeSubject),
		services.NewContactService(repo),
		services.NewFilterService(),
		services.NewActionService(),
		logger,
	)

	logger.Info("starting server",
		"addr", cfg.Server.Addr,
		"mail_provider", cfg.Mail.Provider,
		"version", version.GetVersionString())
	if err := server.Start(cfg.Server.Addr); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}

// buildSender selects the delivery backend from config, mirroring the
// provider switch used elsewhere in the stack.
func buildSender(ctx context.Context, cfg *config.Config, secrets config.Secrets) (mail.Sender, error) {
	switch cfg.Mail.Provider {
	case "", "smtp":
		if secrets.EmailSender == "" || secrets.EmailPassword == "" {
			return nil, fmt.Errorf("smtp provider needs EMAIL_SENDER and EMAIL_PASSWORD")
		}
		return mail.NewSMTPSender(cfg.Mail.SMTPHost, cfg.Mail.SMTPPort, secrets.EmailSender, secrets.EmailPassword), nil

	case "gmail":
		credPath, tokenPath := cfg.Credentials, cfg.Token
		if credPath == "" || tokenPath == "" {
			credPath, tokenPath = config.DefaultCredentialPaths()
		}
		service, err := auth.NewGmailService(ctx, credPath, tokenPath, auth.GmailSendScope)
		if err != nil {
			return nil, err
		}
		return mail.NewGmailSender(gmail.NewClient(service)), nil

	default:
		return nil, fmt.Errorf("unknown mail provider: %s", cfg.Mail.Provider)
	}
}

func newLogger(logFile string) *slog.Logger {
	if logFile != "" {
		if f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644); err == nil {
			return slog.New(slog.NewTextHandler(f, nil))
		}
		log.Printf("Warning: could not open log file %s, logging to stderr", logFile)
	}
	return slog.New(slog.NewTextHandler(os.Stderr, nil))
}
