package invite

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/textproto"
	"strings"
)

// BuildMessage assembles the raw RFC 822 invitation: top-level headers, an
// HTML body part, and the match calendar invite as an attachment.
func BuildMessage(to, cc []string, subject, htmlBody, ics string) ([]byte, error) {
	if len(to) == 0 {
		return nil, fmt.Errorf("at least one recipient is required")
	}

	var body bytes.Buffer
	w := multipart.NewWriter(&body)

	var msg bytes.Buffer
	msg.WriteString(fmt.Sprintf("To: %s\r\n", strings.Join(to, ", ")))
	if len(cc) > 0 {
		msg.WriteString(fmt.Sprintf("Cc: %s\r\n", strings.Join(cc, ", ")))
	}
	msg.WriteString(fmt.Sprintf("Subject: %s\r\n", subject))
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString(fmt.Sprintf("Content-Type: multipart/mixed; boundary=%q\r\n", w.Boundary()))
	msg.WriteString("\r\n")

	htmlPart, err := w.CreatePart(textproto.MIMEHeader{
		"Content-Type": {"text/html; charset=UTF-8"},
	})
	if err != nil {
		return nil, fmt.Errorf("creating HTML part: %w", err)
	}
	if _, err := htmlPart.Write([]byte(htmlBody)); err != nil {
		return nil, fmt.Errorf("writing HTML part: %w", err)
	}

	if ics != "" {
		icsPart, err := w.CreatePart(textproto.MIMEHeader{
			"Content-Type":        {"text/calendar; method=PUBLISH; charset=UTF-8"},
			"Content-Disposition": {`attachment; filename="match.ics"`},
		})
		if err != nil {
			return nil, fmt.Errorf("creating calendar part: %w", err)
		}
		if _, err := icsPart.Write([]byte(ics)); err != nil {
			return nil, fmt.Errorf("writing calendar part: %w", err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("finalizing message: %w", err)
	}

	msg.Write(body.Bytes())
	return msg.Bytes(), nil
}
