package msgfile

import (
	"time"

	"github.com/RavuAlHemio/tnef2mime/mapiprop"
)

// filetimeEpochDiff100ns is the number of 100ns intervals between the
// PT_SYSTIME epoch (1601-01-01) and the Unix epoch (1970-01-01).
const filetimeEpochDiff100ns = 116444736000000000

// Summary is a read-only, flattened view over a Msg's well-known
// properties: the fields a caller reaching for "the subject", "the
// sender", or "the body" almost always wants, looked up by PropTag
// instead of walked by hand. It adds no new semantics beyond picking
// among already-decoded PropValues: no RTF-to-text conversion, no
// message validation.
type Summary struct {
	MessageClass     string
	Subject          string
	SenderName       string
	SenderEmail      string
	DisplayTo        string
	DisplayCc        string
	DisplayBcc       string
	TransportHeaders string

	// Body and BodyHTML cross-fill: if only one of PR_BODY/PR_HTML
	// decoded, the other is populated from it rather than left empty.
	Body     string
	BodyHTML string

	ClientSubmitTime     time.Time
	DeliveryTime         time.Time
	CreationTime         time.Time
	LastModificationTime time.Time

	RecipientCount  int
	AttachmentCount int
}

// Summarize builds a Summary from m's already-decoded properties. It
// never re-reads the underlying container; it is a pure view.
func (m *Msg) Summarize() Summary {
	s := Summary{
		MessageClass:     stringProp(m.Properties, mapiprop.TagMessageClass),
		Subject:          stringProp(m.Properties, mapiprop.TagSubject),
		SenderName:       stringProp(m.Properties, mapiprop.TagSenderName),
		SenderEmail:      stringProp(m.Properties, mapiprop.TagSenderEmailAddress),
		DisplayTo:        stringProp(m.Properties, mapiprop.TagDisplayTo),
		DisplayCc:        stringProp(m.Properties, mapiprop.TagDisplayCc),
		DisplayBcc:       stringProp(m.Properties, mapiprop.TagDisplayBcc),
		TransportHeaders: stringProp(m.Properties, mapiprop.TagTransportMessageHeaders),

		Body:     stringProp(m.Properties, mapiprop.TagBody),
		BodyHTML: stringProp(m.Properties, mapiprop.TagBodyHtml),

		ClientSubmitTime:     timeProp(m.Properties, mapiprop.TagClientSubmitTime),
		DeliveryTime:         timeProp(m.Properties, mapiprop.TagMessageDeliveryTime),
		CreationTime:         timeProp(m.Properties, mapiprop.TagCreationTime),
		LastModificationTime: timeProp(m.Properties, mapiprop.TagLastModificationTime),

		RecipientCount:  len(m.Recipients),
		AttachmentCount: len(m.Attachments),
	}

	if s.Body == "" && s.BodyHTML != "" {
		s.Body = s.BodyHTML
	}
	if s.BodyHTML == "" && s.Body != "" {
		s.BodyHTML = s.Body
	}

	return s
}

// stringProp returns the first String or String8 value found under
// tag, or "" if tag is absent or holds some other PropValue variant.
func stringProp(properties []Property, tag mapiprop.PropTag) string {
	for _, p := range properties {
		if !p.Tag.Equal(tag) {
			continue
		}
		switch v := p.Value.(type) {
		case mapiprop.ValueString:
			return string(v)
		case mapiprop.ValueString8:
			return string(v)
		}
	}
	return ""
}

// timeProp returns the first PT_SYSTIME value found under tag,
// converted from 100ns-since-1601 to a UTC time.Time, or the zero
// time.Time if tag is absent or holds some other PropValue variant.
func timeProp(properties []Property, tag mapiprop.PropTag) time.Time {
	for _, p := range properties {
		if !p.Tag.Equal(tag) {
			continue
		}
		if v, ok := p.Value.(mapiprop.ValueTime); ok {
			return filetimeToTime(int64(v))
		}
	}
	return time.Time{}
}

// filetimeToTime converts a PT_SYSTIME value (100ns intervals since
// 1601-01-01) to a UTC time.Time.
func filetimeToTime(filetime int64) time.Time {
	return time.Unix(0, (filetime-filetimeEpochDiff100ns)*100).UTC()
}
