package mapiprop

import "fmt"

// PropTag identifies a well-known MAPI property by its 16-bit code.
// Like PropType, it is a closed enumeration with an Other(code) escape
// for anything this module does not name; building an exhaustive
// catalogue from Microsoft's property specification documents is left
// to a separate code generator, not this decoder. Codes at or above
// 0x8000 denote named properties: see PropID.
type PropTag struct {
	code  uint16
	other bool
}

// Well-known property tags. Names follow the MS-OXPROPS PidTag*
// convention, with the "Pid" prefix dropped and a "Tag" prefix kept
// (TagAttachDataBinary, TagBodyHtml, ...).
var (
	TagMessageClass                = PropTag{code: 0x001A}
	TagImportance                  = PropTag{code: 0x0017}
	TagPriority                    = PropTag{code: 0x0026}
	TagSensitivity                 = PropTag{code: 0x0036}
	TagSubject                     = PropTag{code: 0x0037}
	TagClientSubmitTime            = PropTag{code: 0x0039}
	TagSentRepresentingName        = PropTag{code: 0x0042}
	TagMessageDeliveryTime         = PropTag{code: 0x0E06}
	TagMessageFlags                = PropTag{code: 0x0E07}
	TagSentRepresentingEmailAddr   = PropTag{code: 0x0065}
	TagConversationTopic           = PropTag{code: 0x0070}
	TagConversationIndex           = PropTag{code: 0x0071}
	TagDisplayBcc                  = PropTag{code: 0x0E02}
	TagDisplayCc                   = PropTag{code: 0x0E03}
	TagDisplayTo                   = PropTag{code: 0x0E04}
	TagTransportMessageHeaders     = PropTag{code: 0x007D}
	TagSenderName                  = PropTag{code: 0x0C1A}
	TagSenderEmailAddress          = PropTag{code: 0x0C1F}
	TagHasAttachments              = PropTag{code: 0x0E1B}
	TagBody                        = PropTag{code: 0x1000}
	TagRtfSyncBodyCRC              = PropTag{code: 0x1006}
	TagRtfSyncBodyCount            = PropTag{code: 0x1007}
	TagRtfSyncBodyTag              = PropTag{code: 0x1008}
	TagRtfCompressed               = PropTag{code: 0x1009}
	TagRtfSyncPrefixCount          = PropTag{code: 0x1010}
	TagRtfSyncTrailingCount        = PropTag{code: 0x1011}
	TagBodyHtml                    = PropTag{code: 0x1013}
	TagInternetMessageID           = PropTag{code: 0x1035}
	TagCreationTime                = PropTag{code: 0x3007}
	TagLastModificationTime        = PropTag{code: 0x3008}
	TagEntryID                     = PropTag{code: 0x0FFF}
	TagObjectType                  = PropTag{code: 0x0FFE}
	TagRecordKey                   = PropTag{code: 0x0FF9}
	TagAttachDataBinary             = PropTag{code: 0x3701}
	TagAttachEncoding              = PropTag{code: 0x3702}
	TagAttachExtension             = PropTag{code: 0x3703}
	TagAttachFilename              = PropTag{code: 0x3704}
	TagAttachMethod                = PropTag{code: 0x3705}
	TagAttachLongFilename          = PropTag{code: 0x3707}
	TagAttachRenderData            = PropTag{code: 0x3709}
	TagAttachSize                  = PropTag{code: 0x0E20}
	TagAttachNumber                = PropTag{code: 0x0E21}
	TagAttachLongPathname          = PropTag{code: 0x370D}
	TagAttachMimeTag               = PropTag{code: 0x370E}
	TagAttachContentID             = PropTag{code: 0x3712}
	TagDisplayName                 = PropTag{code: 0x3001}
	TagAddressType                 = PropTag{code: 0x3002}
	TagEmailAddress                = PropTag{code: 0x3003}
	TagSmtpAddress                 = PropTag{code: 0x39FE}
	TagRecipientType               = PropTag{code: 0x0C15}
)

var propTagNames = buildPropTagNames()

func buildPropTagNames() map[uint16]string {
	named := []struct {
		tag  PropTag
		name string
	}{
		{TagMessageClass, "TagMessageClass"},
		{TagImportance, "TagImportance"},
		{TagPriority, "TagPriority"},
		{TagSensitivity, "TagSensitivity"},
		{TagSubject, "TagSubject"},
		{TagClientSubmitTime, "TagClientSubmitTime"},
		{TagSentRepresentingName, "TagSentRepresentingName"},
		{TagMessageDeliveryTime, "TagMessageDeliveryTime"},
		{TagMessageFlags, "TagMessageFlags"},
		{TagSentRepresentingEmailAddr, "TagSentRepresentingEmailAddr"},
		{TagConversationTopic, "TagConversationTopic"},
		{TagConversationIndex, "TagConversationIndex"},
		{TagDisplayBcc, "TagDisplayBcc"},
		{TagDisplayCc, "TagDisplayCc"},
		{TagDisplayTo, "TagDisplayTo"},
		{TagTransportMessageHeaders, "TagTransportMessageHeaders"},
		{TagSenderName, "TagSenderName"},
		{TagSenderEmailAddress, "TagSenderEmailAddress"},
		{TagHasAttachments, "TagHasAttachments"},
		{TagBody, "TagBody"},
		{TagRtfSyncBodyCRC, "TagRtfSyncBodyCRC"},
		{TagRtfSyncBodyCount, "TagRtfSyncBodyCount"},
		{TagRtfSyncBodyTag, "TagRtfSyncBodyTag"},
		{TagRtfCompressed, "TagRtfCompressed"},
		{TagRtfSyncPrefixCount, "TagRtfSyncPrefixCount"},
		{TagRtfSyncTrailingCount, "TagRtfSyncTrailingCount"},
		{TagBodyHtml, "TagBodyHtml"},
		{TagInternetMessageID, "TagInternetMessageID"},
		{TagCreationTime, "TagCreationTime"},
		{TagLastModificationTime, "TagLastModificationTime"},
		{TagEntryID, "TagEntryID"},
		{TagObjectType, "TagObjectType"},
		{TagRecordKey, "TagRecordKey"},
		{TagAttachDataBinary, "TagAttachDataBinary"},
		{TagAttachEncoding, "TagAttachEncoding"},
		{TagAttachExtension, "TagAttachExtension"},
		{TagAttachFilename, "TagAttachFilename"},
		{TagAttachMethod, "TagAttachMethod"},
		{TagAttachLongFilename, "TagAttachLongFilename"},
		{TagAttachRenderData, "TagAttachRenderData"},
		{TagAttachSize, "TagAttachSize"},
		{TagAttachNumber, "TagAttachNumber"},
		{TagAttachLongPathname, "TagAttachLongPathname"},
		{TagAttachMimeTag, "TagAttachMimeTag"},
		{TagAttachContentID, "TagAttachContentID"},
		{TagDisplayName, "TagDisplayName"},
		{TagAddressType, "TagAddressType"},
		{TagEmailAddress, "TagEmailAddress"},
		{TagSmtpAddress, "TagSmtpAddress"},
		{TagRecipientType, "TagRecipientType"},
	}
	m := make(map[uint16]string, len(named))
	for _, n := range named {
		m[n.tag.code] = n.name
	}
	return m
}

// PropTagFromBaseType maps a 16-bit wire code to its PropTag. Unknown
// codes produce the Other(code) escape variant.
func PropTagFromBaseType(code uint16) PropTag {
	if _, ok := propTagNames[code]; ok {
		return PropTag{code: code}
	}
	return PropTag{code: code, other: true}
}

// ToBaseType returns the 16-bit wire code for t.
func (t PropTag) ToBaseType() uint16 {
	return t.code
}

// IsOther reports whether t is the Other(code) escape variant.
func (t PropTag) IsOther() bool {
	return t.other
}

// IsNamed reports whether t's code denotes a named property (≥
// 0x8000), which carries a (GUID, PropID) pair alongside it.
func (t PropTag) IsNamed() bool {
	return t.code >= 0x8000
}

func (t PropTag) String() string {
	if name, ok := propTagNames[t.code]; ok {
		return name
	}
	return fmt.Sprintf("Other(0x%04X)", t.code)
}

// Equal compares two PropTag values by their underlying code.
func (t PropTag) Equal(other PropTag) bool {
	return t.code == other.code
}
