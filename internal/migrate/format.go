package migrate

import (
	"fmt"
	"strings"

	"github.com/slackmigrate/slack-to-teams/internal/export"
)

// formatText right-trims the flattened text and converts newlines to
// line breaks for the target's HTML body.
func formatText(text string) string {
	return strings.ReplaceAll(strings.TrimRight(text, " \t\r\n"), "\n", "<br>")
}

// renderBody produces the HTML body for a replayed message: the
// flattened text, with attachment names quoted below it when both are
// present.
func renderBody(m *export.Message) string {
	text := formatText(m.Text)
	attachments := attachmentList(m.Attachments)

	switch {
	case text == "" && attachments == "":
		return "EMPTY TEXT<br>Possibly a reference to a message/thread"
	case text == "":
		return attachments
	case attachments == "":
		return text
	default:
		return fmt.Sprintf("%s<blockquote>%s</blockquote>", text, attachments)
	}
}

func attachmentList(attachments []export.Attachment) string {
	var b strings.Builder
	for _, att := range attachments {
		fmt.Fprintf(&b, "[%s]<br>", att.Name)
	}
	return b.String()
}

// renderAttachmentsBody is the body of an attachment-reference reply:
// a sender header followed by one reference tag per uploaded file.
func renderAttachmentsBody(m *export.Message) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<strong>[%s] %s</strong><br>",
		m.Time().Format("2006-01-02 15:04:05"), m.Sender.DisplayName())
	for _, att := range m.Attachments {
		if !att.Uploaded() {
			continue
		}
		fmt.Fprintf(&b, "<attachment id='%s'></attachment>", att.TeamsFileID)
	}
	return b.String()
}

// attachmentRefs collects references for the uploaded attachments of
// a message.
func attachmentRefs(attachments []export.Attachment) []AttachmentRef {
	var refs []AttachmentRef
	for _, att := range attachments {
		if !att.Uploaded() {
			continue
		}
		refs = append(refs, AttachmentRef{
			ID:         att.TeamsFileID,
			ContentURL: att.TeamsURL,
			Name:       att.Name,
		})
	}
	return refs
}

// buildOutbound converts a normalized message into the backend
// payload, attributing it to the reconciled identity when one exists
// and to a bare display name otherwise.
func buildOutbound(m *export.Message) OutboundMessage {
	return OutboundMessage{
		Body:            renderBody(m),
		FromUserID:      m.Sender.TeamsID(),
		FromDisplayName: m.Sender.DisplayName(),
		CreatedAt:       m.Time(),
	}
}
