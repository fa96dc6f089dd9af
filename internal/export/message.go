package export

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/slack-go/slack"
	"go.uber.org/zap"

	"github.com/slackmigrate/slack-to-teams/internal/identity"
)

// threadKeyWidth is the width of a Teams migration-mode message ID:
// the first 13 digits of the dot-stripped Slack timestamp, which is
// the created time in milliseconds.
const threadKeyWidth = 13

// Message is one normalized chat entry. Timestamp is Slack's dotted
// epoch string and the canonical ordering and identity key. Immutable
// after construction, except that the upload step completes its
// attachments in place.
type Message struct {
	Sender          identity.Sender
	Timestamp       string
	ThreadTimestamp string
	Text            string
	Attachments     []Attachment
}

// IsInThread reports whether the record carried a thread timestamp.
func (m *Message) IsInThread() bool {
	return m.ThreadTimestamp != ""
}

// IsThreadRoot reports whether this message is the first message of
// its own thread.
func (m *Message) IsThreadRoot() bool {
	return m.IsInThread() && m.ThreadTimestamp == m.Timestamp
}

// ThreadKey is the canonical lookup-table key for the thread this
// message belongs to: the root's timestamp for replies, the message's
// own timestamp otherwise.
func (m *Message) ThreadKey() string {
	if m.ThreadTimestamp != "" {
		return CanonicalThreadKey(m.ThreadTimestamp)
	}
	return CanonicalThreadKey(m.Timestamp)
}

// Time converts the dotted timestamp to local time. Returns the zero
// time when the timestamp does not parse.
func (m *Message) Time() time.Time {
	t, _ := parseSlackTime(m.Timestamp)
	return t
}

// CanonicalThreadKey strips the decimal point from a Slack timestamp
// and truncates or right-pads with zeros to a fixed 13 digits.
func CanonicalThreadKey(ts string) string {
	key := strings.Replace(ts, ".", "", 1)
	if len(key) > threadKeyWidth {
		return key[:threadKeyWidth]
	}
	return key + strings.Repeat("0", threadKeyWidth-len(key))
}

func parseSlackTime(ts string) (time.Time, bool) {
	secPart, fracPart, _ := strings.Cut(ts, ".")
	sec, err := strconv.ParseInt(secPart, 10, 64)
	if err != nil {
		return time.Time{}, false
	}
	var micro int64
	if fracPart != "" {
		// Microsecond precision; shorter fractions are padded.
		if len(fracPart) > 6 {
			fracPart = fracPart[:6]
		}
		fracPart += strings.Repeat("0", 6-len(fracPart))
		micro, err = strconv.ParseInt(fracPart, 10, 64)
		if err != nil {
			return time.Time{}, false
		}
	}
	return time.Unix(sec, micro*1000), true
}

// ReadMessages normalizes every record of one day file, in stream
// order. Records without a ts are malformed: logged and skipped,
// never fatal. Unparseable files abort with an error; unparseable
// single records do not.
func ReadMessages(r io.Reader, reg *identity.Registry, logger *zap.Logger) ([]Message, error) {
	var messages []Message
	err := decodeRecords(r, func(raw json.RawMessage) error {
		var rec slack.Msg
		if err := json.Unmarshal(raw, &rec); err != nil {
			logger.Warn("Skipping malformed message record", zap.Error(err))
			return nil
		}
		if rec.Timestamp == "" {
			logger.Warn("Skipping message record without ts")
			return nil
		}
		messages = append(messages, Message{
			Sender:          reg.ResolveSender(rec.User),
			Timestamp:       rec.Timestamp,
			ThreadTimestamp: rec.ThreadTimestamp,
			Text:            flattenText(&rec, reg),
			Attachments:     extractAttachments(rec.Files),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan day file: %w", err)
	}
	return messages, nil
}

// ReadMessagesFile is ReadMessages over a single day file.
func ReadMessagesFile(path string, reg *identity.Registry, logger *zap.Logger) ([]Message, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open day file: %w", err)
	}
	defer f.Close()
	return ReadMessages(f, reg, logger)
}

// flattenText renders the first rich-text section of the record's
// blocks into the markup the target understands, falling back to the
// plain text field when no structured blocks exist.
func flattenText(rec *slack.Msg, reg *identity.Registry) string {
	section := firstRichTextSection(rec.Blocks)
	if section == nil || len(section.Elements) == 0 {
		return rec.Text
	}

	var b strings.Builder
	for _, el := range section.Elements {
		switch el := el.(type) {
		case *slack.RichTextSectionTextElement:
			b.WriteString(el.Text)
		case *slack.RichTextSectionLinkElement:
			if el.URL == "" {
				continue
			}
			label := el.Text
			if label == "" {
				label = el.URL
			}
			fmt.Fprintf(&b, "<a href='%s'>%s</a>", el.URL, label)
		case *slack.RichTextSectionUserElement:
			if el.UserID == "" {
				continue
			}
			b.WriteString("@")
			b.WriteString(reg.MentionName(el.UserID))
		case *slack.RichTextSectionUserGroupElement:
			// Group name resolution is a non-goal; keep the
			// placeholder the original emitted.
			b.WriteString("@TEAM")
		default:
			// emoji and unrecognized element types render nothing
		}
	}
	return b.String()
}

func firstRichTextSection(blocks slack.Blocks) *slack.RichTextSection {
	if len(blocks.BlockSet) == 0 {
		return nil
	}
	rt, ok := blocks.BlockSet[0].(*slack.RichTextBlock)
	if !ok || len(rt.Elements) == 0 {
		return nil
	}
	section, ok := rt.Elements[0].(*slack.RichTextSection)
	if !ok {
		return nil
	}
	return section
}

// extractAttachments keeps files that have a download URL and at
// least one of filetype or title.
func extractAttachments(files []slack.File) []Attachment {
	var attachments []Attachment
	for _, f := range files {
		if f.URLPrivateDownload == "" {
			continue
		}
		if f.Filetype == "" && f.Title == "" {
			continue
		}
		attachments = append(attachments, NewAttachment(
			f.URLPrivateDownload, f.Filetype, f.Title, int64(f.Timestamp)))
	}
	return attachments
}
