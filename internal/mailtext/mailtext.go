// Package mailtext flattens RFC822 messages into the plain fields the
// categorizer consumes.
package mailtext

import (
	"fmt"
	"io"
	"strings"

	"github.com/emersion/go-message/mail"

	"github.com/mikey/mail-triage/internal/core"
)

// Parse reads an RFC822 message and extracts sender, subject and a plain-text
// body. Multipart messages prefer the first text/plain part, then any other
// text part. Attachments are ignored.
func Parse(r io.Reader) (*core.Email, error) {
	mr, err := mail.CreateReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read message: %w", err)
	}

	email := &core.Email{}
	if addrs, err := mr.Header.AddressList("From"); err == nil && len(addrs) > 0 {
		email.From = addrs[0].Address
		email.FromName = addrs[0].Name
	}
	if subject, err := mr.Header.Subject(); err == nil {
		email.Subject = subject
	}

	var plain, other strings.Builder
	for {
		part, err := mr.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			// Salvage what was read so far; a broken later part should not
			// discard the whole message.
			break
		}

		header, ok := part.Header.(*mail.InlineHeader)
		if !ok {
			continue
		}
		contentType, _, err := header.ContentType()
		if err != nil {
			continue
		}

		switch {
		case contentType == "text/plain":
			io.Copy(&plain, part.Body)
		case strings.HasPrefix(contentType, "text/"):
			io.Copy(&other, part.Body)
		}
	}

	body := plain.String()
	if body == "" {
		body = other.String()
	}
	email.Body = strings.TrimSpace(body)

	return email, nil
}
