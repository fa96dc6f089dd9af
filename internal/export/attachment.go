package export

import (
	"fmt"
	"time"
)

// Attachment is one file reference extracted from a message record.
// TeamsURL and TeamsFileID stay empty until the upload step completes
// and are set exactly once via ApplyUpload.
type Attachment struct {
	SourceURL   string `json:"source_url"`
	Name        string `json:"name"`
	Extension   string `json:"extension"`
	CaptureDate string `json:"capture_date"`

	TeamsURL    string `json:"teams_url,omitempty"`
	TeamsFileID string `json:"teams_file_id,omitempty"`
}

// NewAttachment derives the display name and capture date from the
// export metadata. unixTime is the file's capture timestamp, zero
// when absent:
//
//	no name, no time  -> "Unknown.<ext>", date UNKNOWN
//	no name, time     -> "HH.MM.SS.<ext>"
//	name, no time     -> name unchanged, date UNKNOWN
//	name, time        -> "HH.MM.SS name"
//
// The date is formatted YYYY/MM/DD-Weekday in local time.
func NewAttachment(sourceURL, extension, name string, unixTime int64) Attachment {
	a := Attachment{
		SourceURL: sourceURL,
		Name:      name,
		Extension: extension,
	}

	if unixTime == 0 {
		a.CaptureDate = "UNKNOWN"
		if a.Name == "" {
			a.Name = fmt.Sprintf("Unknown.%s", a.Extension)
		}
		return a
	}

	t := time.Unix(unixTime, 0)
	a.CaptureDate = fmt.Sprintf("%d/%02d/%02d-%s", t.Year(), int(t.Month()), t.Day(), t.Weekday())

	clock := fmt.Sprintf("%02d.%02d.%02d", t.Hour(), t.Minute(), t.Second())
	if a.Name == "" {
		a.Name = fmt.Sprintf("%s.%s", clock, a.Extension)
	} else {
		a.Name = fmt.Sprintf("%s %s", clock, a.Name)
	}
	return a
}

// Uploaded reports whether the upload step has completed for this
// attachment.
func (a *Attachment) Uploaded() bool {
	return a.TeamsFileID != "" || a.TeamsURL != ""
}

// ApplyUpload records the upload result. The target may rename the
// file on conflict, so a non-empty uploaded name replaces the derived
// one.
func (a *Attachment) ApplyUpload(url, fileID, name string) {
	a.TeamsURL = url
	a.TeamsFileID = fileID
	if name != "" {
		a.Name = name
	}
}
