package notification

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/smtp"
	"net/textproto"
)

// Mailer sends an ICS artifact to a recipient. The engine only produces the
// artifact; actual transport is this one seam.
type Mailer interface {
	SendICS(email, subject string, icsBytes []byte, cancelled bool) error
}

// SMTPMailer delivers invites through a plain SMTP relay.
type SMTPMailer struct {
	Addr string // host:port
	From string
}

func (m *SMTPMailer) SendICS(email, subject string, icsBytes []byte, cancelled bool) error {
	method := "REQUEST"
	if cancelled {
		method = "CANCEL"
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "From: %s\r\n", m.From)
	fmt.Fprintf(&buf, "To: %s\r\n", email)
	fmt.Fprintf(&buf, "Subject: %s\r\n", subject)
	buf.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&buf, "Content-Type: multipart/mixed; boundary=%s\r\n\r\n", writer.Boundary())

	part, err := writer.CreatePart(textproto.MIMEHeader{
		"Content-Type": {fmt.Sprintf("text/calendar; method=%s; charset=UTF-8", method)},
	})
	if err != nil {
		return fmt.Errorf("failed to build calendar part: %w", err)
	}
	if _, err := part.Write(icsBytes); err != nil {
		return fmt.Errorf("failed to write calendar part: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize message: %w", err)
	}
	buf.Write(body.Bytes())

	if err := smtp.SendMail(m.Addr, nil, m.From, []string{email}, buf.Bytes()); err != nil {
		return fmt.Errorf("smtp delivery to %s failed: %w", email, err)
	}
	return nil
}
