package invite

import (
	"bytes"
	"io"
	"mime"
	"mime/multipart"
	"net/mail"
	"strings"
	"testing"
)

func TestBuildMessage(t *testing.T) {
	raw, err := BuildMessage(
		[]string{"rival@x.com", "vice@x.com"},
		[]string{"cc@x.com"},
		"SPARTA XI VS Rivals CC",
		"<p>hello</p>",
		"BEGIN:VCALENDAR\r\nEND:VCALENDAR\r\n",
	)
	if err != nil {
		t.Fatalf("BuildMessage() error = %v", err)
	}

	msg, err := mail.ReadMessage(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("message does not parse as RFC 822: %v", err)
	}

	if got := msg.Header.Get("To"); got != "rival@x.com, vice@x.com" {
		t.Errorf("To = %q", got)
	}
	if got := msg.Header.Get("Cc"); got != "cc@x.com" {
		t.Errorf("Cc = %q", got)
	}
	if got := msg.Header.Get("Subject"); got != "SPARTA XI VS Rivals CC" {
		t.Errorf("Subject = %q", got)
	}

	mediaType, params, err := mime.ParseMediaType(msg.Header.Get("Content-Type"))
	if err != nil {
		t.Fatalf("parsing content type: %v", err)
	}
	if mediaType != "multipart/mixed" {
		t.Errorf("media type = %q, want multipart/mixed", mediaType)
	}

	mr := multipart.NewReader(msg.Body, params["boundary"])

	htmlPart, err := mr.NextPart()
	if err != nil {
		t.Fatalf("reading HTML part: %v", err)
	}
	if ct := htmlPart.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("first part content type = %q", ct)
	}
	body, _ := io.ReadAll(htmlPart)
	if string(body) != "<p>hello</p>" {
		t.Errorf("HTML body = %q", body)
	}

	icsPart, err := mr.NextPart()
	if err != nil {
		t.Fatalf("reading calendar part: %v", err)
	}
	if ct := icsPart.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/calendar") {
		t.Errorf("second part content type = %q", ct)
	}
	if cd := icsPart.Header.Get("Content-Disposition"); !strings.Contains(cd, "match.ics") {
		t.Errorf("calendar disposition = %q", cd)
	}

	if _, err := mr.NextPart(); err != io.EOF {
		t.Errorf("expected exactly two parts, got extra part (err = %v)", err)
	}
}

func TestBuildMessageNoCC(t *testing.T) {
	raw, err := BuildMessage([]string{"rival@x.com"}, nil, "Subject", "<p>hi</p>", "")
	if err != nil {
		t.Fatalf("BuildMessage() error = %v", err)
	}

	msg, err := mail.ReadMessage(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("parsing message: %v", err)
	}
	if got := msg.Header.Get("Cc"); got != "" {
		t.Errorf("Cc header should be absent, got %q", got)
	}
}

func TestBuildMessageNoRecipients(t *testing.T) {
	if _, err := BuildMessage(nil, nil, "Subject", "<p>hi</p>", ""); err == nil {
		t.Fatal("expected error with no recipients")
	}
}
