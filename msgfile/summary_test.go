package msgfile

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/RavuAlHemio/tnef2mime/mapiprop"
)

func TestSummarizeBodyCrossFill(t *testing.T) {
	msg := &Msg{
		Properties: []Property{
			{Tag: mapiprop.TagSubject, Value: mapiprop.ValueString("hello")},
			{Tag: mapiprop.TagBody, Value: mapiprop.ValueString("plain text only")},
		},
	}
	s := msg.Summarize()
	assert.Equal(t, "hello", s.Subject)
	assert.Equal(t, "plain text only", s.Body)
	assert.Equal(t, "plain text only", s.BodyHTML)
}

func TestSummarizeBodyHtmlCrossFill(t *testing.T) {
	msg := &Msg{
		Properties: []Property{
			{Tag: mapiprop.TagBodyHtml, Value: mapiprop.ValueString8("<p>hi</p>")},
		},
	}
	s := msg.Summarize()
	assert.Equal(t, "<p>hi</p>", s.Body)
	assert.Equal(t, "<p>hi</p>", s.BodyHTML)
}

func TestSummarizeNeitherBodyPresent(t *testing.T) {
	msg := &Msg{}
	s := msg.Summarize()
	assert.Empty(t, s.Body)
	assert.Empty(t, s.BodyHTML)
}

func TestSummarizeSenderAndRecipientCounts(t *testing.T) {
	msg := &Msg{
		Properties: []Property{
			{Tag: mapiprop.TagSenderName, Value: mapiprop.ValueString8("Jane Doe")},
			{Tag: mapiprop.TagSenderEmailAddress, Value: mapiprop.ValueString8("jane@example.com")},
		},
		Recipients:  []Recipient{{}, {}},
		Attachments: []Attachment{{}},
	}
	s := msg.Summarize()
	assert.Equal(t, "Jane Doe", s.SenderName)
	assert.Equal(t, "jane@example.com", s.SenderEmail)
	assert.Equal(t, 2, s.RecipientCount)
	assert.Equal(t, 1, s.AttachmentCount)
}

func TestSummarizeTimeConversion(t *testing.T) {
	// 2020-01-01T00:00:00Z as PT_SYSTIME (100ns intervals since
	// 1601-01-01): (unixSeconds + 11644473600) * 10_000_000.
	want := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	filetime := (want.Unix() + 11644473600) * 10_000_000

	msg := &Msg{
		Properties: []Property{
			{Tag: mapiprop.TagCreationTime, Value: mapiprop.ValueTime(filetime)},
		},
	}
	s := msg.Summarize()
	assert.True(t, want.Equal(s.CreationTime), "expected %v, got %v", want, s.CreationTime)
}

func TestSummarizeMissingTimeIsZero(t *testing.T) {
	msg := &Msg{}
	s := msg.Summarize()
	assert.True(t, s.CreationTime.IsZero())
}
