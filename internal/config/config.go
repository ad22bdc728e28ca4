// Package config loads the application configuration: a JSON file merged
// over defaults, plus secrets sourced from the process environment.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	// Addr is the listen address for the web surface
	Addr string `json:"addr"`
}

// MailConfig holds all mail-delivery configuration
type MailConfig struct {
	// Provider selects the delivery backend: smtp, gmail
	Provider string `json:"provider"`

	// SMTP settings (smtp provider). The sender address and password come
	// from the EMAIL_SENDER / EMAIL_PASSWORD environment variables.
	SMTPHost string `json:"smtp_host"`
	SMTPPort int    `json:"smtp_port"`

	// Subject used for login-code messages
	CodeSubject string `json:"code_subject"`
}

// SheetsConfig holds the record-store spreadsheet settings
type SheetsConfig struct {
	// SpreadsheetID is the fixed document key of the shared contact sheet
	SpreadsheetID string `json:"spreadsheet_id"`

	// SheetName is the tab holding contact rows
	SheetName string `json:"sheet_name"`
}

// Config holds all configuration for the Invitemate application
type Config struct {
	Server ServerConfig `json:"server"`
	Mail   MailConfig   `json:"mail"`
	Sheets SheetsConfig `json:"sheets"`

	// Credentials is the OAuth client credentials path (gmail mail provider)
	Credentials string `json:"credentials"`
	// Token is the cached OAuth token path (gmail mail provider)
	Token string `json:"token"`

	// SessionDB is the SQLite session store path
	SessionDB string `json:"session_db"`

	// Logging
	LogFile string `json:"log_file"`
}

// Secrets holds process-environment credentials that never live in the
// config file.
type Secrets struct {
	// GoogleCredentials is the service-account JSON blob (GOOGLE_CREDENTIALS)
	GoogleCredentials string
	// EmailSender is the SMTP sender address (EMAIL_SENDER)
	EmailSender string
	// EmailPassword is the SMTP password (EMAIL_PASSWORD)
	EmailPassword string
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr: ":8000",
		},
		Mail: MailConfig{
			Provider:    "smtp",
			SMTPHost:    "smtp.gmail.com",
			SMTPPort:    587,
			CodeSubject: "Your verification code",
		},
		Sheets: SheetsConfig{
			SheetName: "Sheet1",
		},
		SessionDB: DefaultSessionDBPath(),
	}
}

// LoadConfig loads configuration from file, merged over defaults
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	// Try to load from config file
	if configPath != "" {
		if data, err := os.ReadFile(configPath); err == nil {
			if err := json.Unmarshal(data, cfg); err != nil {
				return nil, err
			}
		}
	}

	return cfg, nil
}

// LoadSecrets reads credentials from the process environment.
func LoadSecrets() Secrets {
	return Secrets{
		GoogleCredentials: os.Getenv("GOOGLE_CREDENTIALS"),
		EmailSender:       os.Getenv("EMAIL_SENDER"),
		EmailPassword:     os.Getenv("EMAIL_PASSWORD"),
	}
}

// DefaultConfigPath returns the default configuration file path
func DefaultConfigPath() string {
	if env := os.Getenv("INVITEMATE_CONFIG"); env != "" {
		return env
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "invitemate", "config.json")
}

// DefaultSessionDBPath returns the default session store path
func DefaultSessionDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "invitemate", "sessions.db")
}

// DefaultCredentialPaths returns the default paths for OAuth credentials and token
func DefaultCredentialPaths() (string, string) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", ""
	}

	configDir := filepath.Join(home, ".config", "invitemate")
	return filepath.Join(configDir, "credentials.json"), filepath.Join(configDir, "token.json")
}

// SaveConfig saves the configuration to a file
func (c *Config) SaveConfig(path string) error {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
