// Package auth builds authenticated Google API services: the Sheets record
// store from a service-account blob, and the Gmail sender from OAuth client
// credentials with a cached token.
package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"
)

// SheetsScope is the only scope the record store needs.
const SheetsScope = "https://www.googleapis.com/auth/spreadsheets"

// GmailSendScope is the only scope the gmail mail provider needs.
const GmailSendScope = "https://www.googleapis.com/auth/gmail.send"

// NewSheetsService creates a Sheets service from a service-account JSON blob
// (the GOOGLE_CREDENTIALS secret).
func NewSheetsService(ctx context.Context, credentialsJSON []byte, scopes ...string) (*sheetsapi.Service, error) {
	if len(credentialsJSON) == 0 {
		return nil, fmt.Errorf("empty service-account credentials")
	}
	if len(scopes) == 0 {
		scopes = []string{SheetsScope}
	}

	jwtConfig, err := google.JWTConfigFromJSON(credentialsJSON, scopes...)
	if err != nil {
		return nil, fmt.Errorf("could not parse service-account credentials: %w", err)
	}

	service, err := sheetsapi.NewService(ctx, option.WithHTTPClient(jwtConfig.Client(ctx)))
	if err != nil {
		return nil, fmt.Errorf("could not create Sheets service: %w", err)
	}
	return service, nil
}

// NewGmailService creates a Gmail service from OAuth client credentials and a
// cached token file. There is no interactive flow here: a missing token is an
// error telling the operator to provision one.
func NewGmailService(ctx context.Context, credentialsPath, tokenPath string, scopes ...string) (*gmail.Service, error) {
	if len(scopes) == 0 {
		scopes = []string{GmailSendScope}
	}

	data, err := os.ReadFile(credentialsPath)
	if err != nil {
		return nil, fmt.Errorf("could not read credentials file: %w", err)
	}
	config, err := google.ConfigFromJSON(data, scopes...)
	if err != nil {
		return nil, fmt.Errorf("could not parse credentials file: %w", err)
	}

	token, err := LoadToken(tokenPath)
	if err != nil {
		return nil, fmt.Errorf("no cached OAuth token at %s; provision one for the sender account: %w", tokenPath, err)
	}

	if !token.Valid() {
		token, err = config.TokenSource(ctx, token).Token()
		if err != nil {
			return nil, fmt.Errorf("token refresh failed: %w", err)
		}
		if err := SaveToken(tokenPath, token); err != nil {
			return nil, err
		}
	}

	service, err := gmail.NewService(ctx, option.WithHTTPClient(config.Client(ctx, token)))
	if err != nil {
		return nil, fmt.Errorf("could not create Gmail service: %w", err)
	}
	return service, nil
}

// LoadToken loads a cached token from file
func LoadToken(tokenPath string) (*oauth2.Token, error) {
	f, err := os.Open(tokenPath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	token := &oauth2.Token{}
	err = json.NewDecoder(f).Decode(token)
	return token, err
}

// SaveToken saves a token to file
func SaveToken(tokenPath string, token *oauth2.Token) error {
	// Ensure directory exists
	dir := filepath.Dir(tokenPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	f, err := os.OpenFile(tokenPath, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("could not save OAuth token: %w", err)
	}
	defer f.Close()

	return json.NewEncoder(f).Encode(token)
}
