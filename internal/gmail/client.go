// Package gmail creates draft messages in the operator's Gmail account.
//
// Authentication uses the standard installed-app OAuth2 files: a
// credentials.json issued for the client and a token.json persisted from a
// prior authorization. The token is refreshed on startup and the rotated
// token written back, so a valid refresh token keeps working across runs
// without ambient state. Creating drafts is the only write this package
// performs against the account; nothing is ever sent.
package gmail

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	gmailapi "google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"

	"github.com/spartaxi/matchday/internal/logger"
)

// DraftCreator persists a raw RFC 822 message (base64url-encoded) as a
// draft and returns the provider's draft ID.
type DraftCreator interface {
	CreateDraft(raw string) (string, error)
}

// Client is the live Gmail implementation of DraftCreator.
type Client struct {
	svc *gmailapi.Service
}

// NewClient authenticates against Gmail with the stored client credentials
// and persisted user token. The token is refreshed eagerly so expired
// credentials surface at startup rather than mid-run, and the refreshed
// token is saved back to tokenFile for the next invocation.
func NewClient(ctx context.Context, credentialsFile, tokenFile string) (*Client, error) {
	credBytes, err := os.ReadFile(credentialsFile)
	if err != nil {
		return nil, fmt.Errorf("reading credentials file: %w", err)
	}

	cfg, err := google.ConfigFromJSON(credBytes, gmailapi.GmailModifyScope)
	if err != nil {
		return nil, fmt.Errorf("parsing credentials file: %w", err)
	}

	tok, err := loadToken(tokenFile)
	if err != nil {
		return nil, fmt.Errorf("loading token file (run the authorization flow first): %w", err)
	}

	src := cfg.TokenSource(ctx, tok)
	fresh, err := src.Token()
	if err != nil {
		return nil, fmt.Errorf("refreshing access token: %w", err)
	}
	if fresh.AccessToken != tok.AccessToken {
		if err := saveToken(tokenFile, fresh); err != nil {
			// Not fatal: this run still has a valid token in memory
			logger.Warn("could not persist refreshed token", logger.Fields{
				"path":   tokenFile,
				"reason": err.Error(),
			})
		} else {
			logger.Info("refreshed and saved access token", logger.Fields{"path": tokenFile})
		}
	}

	svc, err := gmailapi.NewService(ctx, option.WithHTTPClient(oauth2.NewClient(ctx, src)))
	if err != nil {
		return nil, fmt.Errorf("initializing Gmail service: %w", err)
	}

	return &Client{svc: svc}, nil
}

// CreateDraft stores the encoded message as a draft in the authenticated
// account and returns the new draft's ID.
func (c *Client) CreateDraft(raw string) (string, error) {
	draft := &gmailapi.Draft{
		Message: &gmailapi.Message{Raw: raw},
	}

	created, err := c.svc.Users.Drafts.Create("me", draft).Do()
	if err != nil {
		return "", fmt.Errorf("creating draft: %w", err)
	}
	return created.Id, nil
}

func loadToken(path string) (*oauth2.Token, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	tok := &oauth2.Token{}
	if err := json.NewDecoder(f).Decode(tok); err != nil {
		return nil, fmt.Errorf("parsing token: %w", err)
	}
	return tok, nil
}

func saveToken(path string, tok *oauth2.Token) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	defer f.Close()

	return json.NewEncoder(f).Encode(tok)
}
