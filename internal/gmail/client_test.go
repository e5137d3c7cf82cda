package gmail

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"golang.org/x/oauth2"
	gmailapi "google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"
)

func TestTokenRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token.json")

	tok := &oauth2.Token{
		AccessToken:  "access-abc",
		RefreshToken: "refresh-xyz",
		TokenType:    "Bearer",
		Expiry:       time.Date(2025, time.July, 27, 12, 0, 0, 0, time.UTC),
	}

	if err := saveToken(path, tok); err != nil {
		t.Fatalf("saveToken() error = %v", err)
	}

	loaded, err := loadToken(path)
	if err != nil {
		t.Fatalf("loadToken() error = %v", err)
	}

	if loaded.AccessToken != tok.AccessToken {
		t.Errorf("AccessToken = %q, want %q", loaded.AccessToken, tok.AccessToken)
	}
	if loaded.RefreshToken != tok.RefreshToken {
		t.Errorf("RefreshToken = %q, want %q", loaded.RefreshToken, tok.RefreshToken)
	}
	if !loaded.Expiry.Equal(tok.Expiry) {
		t.Errorf("Expiry = %v, want %v", loaded.Expiry, tok.Expiry)
	}
}

func TestLoadTokenMissingFile(t *testing.T) {
	if _, err := loadToken(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Fatal("expected error for missing token file")
	}
}

func TestCreateDraft(t *testing.T) {
	var gotBody struct {
		Message struct {
			Raw string `json:"raw"`
		} `json:"message"`
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Fatalf("decoding draft body: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"draft-123","message":{"id":"msg-1"}}`)) // nolint:errcheck
	}))
	defer server.Close()

	svc, err := gmailapi.NewService(context.Background(),
		option.WithEndpoint(server.URL),
		option.WithoutAuthentication(),
	)
	if err != nil {
		t.Fatalf("NewService() error = %v", err)
	}

	c := &Client{svc: svc}
	id, err := c.CreateDraft("ZW5jb2RlZC1tZXNzYWdl")
	if err != nil {
		t.Fatalf("CreateDraft() error = %v", err)
	}
	if id != "draft-123" {
		t.Errorf("draft ID = %q, want %q", id, "draft-123")
	}
	if gotBody.Message.Raw != "ZW5jb2RlZC1tZXNzYWdl" {
		t.Errorf("raw message = %q", gotBody.Message.Raw)
	}
}

func TestCreateDraftAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"code":401,"message":"invalid credentials"}}`, http.StatusUnauthorized)
	}))
	defer server.Close()

	svc, err := gmailapi.NewService(context.Background(),
		option.WithEndpoint(server.URL),
		option.WithoutAuthentication(),
	)
	if err != nil {
		t.Fatalf("NewService() error = %v", err)
	}

	c := &Client{svc: svc}
	if _, err := c.CreateDraft("abc"); err == nil {
		t.Fatal("expected error on API failure")
	}
}
