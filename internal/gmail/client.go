// Package gmail wraps the Gmail API for outbound delivery of login codes
// when the Gmail mail provider is configured.
package gmail

import (
	"encoding/base64"
	"fmt"
	"strings"

	gmailapi "google.golang.org/api/gmail/v1"
)

// Client wraps the gmail.Service and provides convenience methods
type Client struct {
	Service *gmailapi.Service
}

// NewClient creates a new Gmail client
func NewClient(service *gmailapi.Service) *Client {
	return &Client{Service: service}
}

// SendMessage sends a plaintext message from the authenticated account and
// returns the Gmail message ID.
func (c *Client) SendMessage(from, to, subject, body string) (string, error) {
	if c == nil || c.Service == nil {
		return "", fmt.Errorf("gmail client not initialized")
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("From: %s\r\n", from))
	sb.WriteString(fmt.Sprintf("To: %s\r\n", to))
	sb.WriteString(fmt.Sprintf("Subject: %s\r\n", subject))
	sb.WriteString("MIME-Version: 1.0\r\n")
	sb.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	sb.WriteString("\r\n")
	sb.WriteString(body)

	message := &gmailapi.Message{
		Raw: base64.URLEncoding.EncodeToString([]byte(sb.String())),
	}

	sentMsg, err := c.Service.Users.Messages.Send("me", message).Do()
	if err != nil {
		return "", fmt.Errorf("failed to send message: %w", err)
	}

	return sentMsg.Id, nil
}
