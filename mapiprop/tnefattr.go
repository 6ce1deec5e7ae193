package mapiprop

import (
	"fmt"

	"github.com/RavuAlHemio/tnef2mime/guid"
)

// TnefAttributeLevel is the one-byte level field preceding every TNEF
// attribute record: Message (top-level) or Attachment (scoped to the
// most recently opened AttAttachRenddata).
type TnefAttributeLevel uint8

const (
	TnefAttributeLevelMessage    TnefAttributeLevel = 0x01
	TnefAttributeLevelAttachment TnefAttributeLevel = 0x02
)

func (l TnefAttributeLevel) String() string {
	switch l {
	case TnefAttributeLevelMessage:
		return "Message"
	case TnefAttributeLevelAttachment:
		return "Attachment"
	default:
		return fmt.Sprintf("Other(0x%02X)", uint8(l))
	}
}

// TnefAttributeId identifies a TNEF attribute record's 32-bit id field.
// Like PropType/PropTag, unknown codes decode to an Other(code) escape
// rather than failing the whole record; an attribute this module does
// not recognize is still framed correctly (length-prefixed, checksummed)
// and can be skipped.
type TnefAttributeId struct {
	code  uint32
	other bool
}

var (
	TnefAttrOwner             = TnefAttributeId{code: 0x00060000}
	TnefAttrSentFor           = TnefAttributeId{code: 0x00060001}
	TnefAttrDelegate          = TnefAttributeId{code: 0x00060002}
	TnefAttrDateStart         = TnefAttributeId{code: 0x00000006}
	TnefAttrDateEnd           = TnefAttributeId{code: 0x00000007}
	TnefAttrAidOwner          = TnefAttributeId{code: 0x00000008}
	TnefAttrRequestRes        = TnefAttributeId{code: 0x00000009}
	TnefAttrFrom              = TnefAttributeId{code: 0x00008000}
	TnefAttrSubject           = TnefAttributeId{code: 0x00008004}
	TnefAttrDateSent          = TnefAttributeId{code: 0x00008005}
	TnefAttrDateRecd          = TnefAttributeId{code: 0x00008006}
	TnefAttrMessageStatus     = TnefAttributeId{code: 0x00008007}
	TnefAttrMessageClass      = TnefAttributeId{code: 0x00008008}
	TnefAttrMessageID         = TnefAttributeId{code: 0x00008009}
	TnefAttrParentID          = TnefAttributeId{code: 0x0000800A}
	TnefAttrConversationID    = TnefAttributeId{code: 0x0000800B}
	TnefAttrBody              = TnefAttributeId{code: 0x0000800C}
	TnefAttrPriority          = TnefAttributeId{code: 0x0000800D}
	TnefAttrAttachData        = TnefAttributeId{code: 0x0000800F}
	TnefAttrAttachTitle       = TnefAttributeId{code: 0x00008010}
	TnefAttrAttachMetaFile    = TnefAttributeId{code: 0x00008011}
	TnefAttrAttachCreateDate  = TnefAttributeId{code: 0x00008012}
	TnefAttrAttachModifyDate  = TnefAttributeId{code: 0x00008013}
	TnefAttrDateModified      = TnefAttributeId{code: 0x00008020}
	TnefAttrAttachTransportFn = TnefAttributeId{code: 0x00009001}
	TnefAttrAttachRenddata    = TnefAttributeId{code: 0x00009002}
	TnefAttrMapiProps         = TnefAttributeId{code: 0x00009003}
	TnefAttrRecipTable        = TnefAttributeId{code: 0x00009004}
	TnefAttrAttachment        = TnefAttributeId{code: 0x00009005}
	TnefAttrTnefVersion       = TnefAttributeId{code: 0x00009006}
	TnefAttrOemCodepage       = TnefAttributeId{code: 0x00009007}
	TnefAttrOriginalMsgClass  = TnefAttributeId{code: 0x00009008}
)

var tnefAttrNames = buildTnefAttrNames()

func buildTnefAttrNames() map[uint32]string {
	named := []struct {
		id   TnefAttributeId
		name string
	}{
		{TnefAttrOwner, "TnefAttrOwner"},
		{TnefAttrSentFor, "TnefAttrSentFor"},
		{TnefAttrDelegate, "TnefAttrDelegate"},
		{TnefAttrDateStart, "TnefAttrDateStart"},
		{TnefAttrDateEnd, "TnefAttrDateEnd"},
		{TnefAttrAidOwner, "TnefAttrAidOwner"},
		{TnefAttrRequestRes, "TnefAttrRequestRes"},
		{TnefAttrFrom, "TnefAttrFrom"},
		{TnefAttrSubject, "TnefAttrSubject"},
		{TnefAttrDateSent, "TnefAttrDateSent"},
		{TnefAttrDateRecd, "TnefAttrDateRecd"},
		{TnefAttrMessageStatus, "TnefAttrMessageStatus"},
		{TnefAttrMessageClass, "TnefAttrMessageClass"},
		{TnefAttrMessageID, "TnefAttrMessageID"},
		{TnefAttrParentID, "TnefAttrParentID"},
		{TnefAttrConversationID, "TnefAttrConversationID"},
		{TnefAttrBody, "TnefAttrBody"},
		{TnefAttrPriority, "TnefAttrPriority"},
		{TnefAttrAttachData, "TnefAttrAttachData"},
		{TnefAttrAttachTitle, "TnefAttrAttachTitle"},
		{TnefAttrAttachMetaFile, "TnefAttrAttachMetaFile"},
		{TnefAttrAttachCreateDate, "TnefAttrAttachCreateDate"},
		{TnefAttrAttachModifyDate, "TnefAttrAttachModifyDate"},
		{TnefAttrDateModified, "TnefAttrDateModified"},
		{TnefAttrAttachTransportFn, "TnefAttrAttachTransportFn"},
		{TnefAttrAttachRenddata, "TnefAttrAttachRenddata"},
		{TnefAttrMapiProps, "TnefAttrMapiProps"},
		{TnefAttrRecipTable, "TnefAttrRecipTable"},
		{TnefAttrAttachment, "TnefAttrAttachment"},
		{TnefAttrTnefVersion, "TnefAttrTnefVersion"},
		{TnefAttrOemCodepage, "TnefAttrOemCodepage"},
		{TnefAttrOriginalMsgClass, "TnefAttrOriginalMsgClass"},
	}
	m := make(map[uint32]string, len(named))
	for _, n := range named {
		m[n.id.code] = n.name
	}
	return m
}

// TnefAttributeIdFromBaseType maps a 32-bit wire code to its
// TnefAttributeId. Unknown codes produce the Other(code) escape.
func TnefAttributeIdFromBaseType(code uint32) TnefAttributeId {
	if _, ok := tnefAttrNames[code]; ok {
		return TnefAttributeId{code: code}
	}
	return TnefAttributeId{code: code, other: true}
}

// ToBaseType returns the 32-bit wire code for id.
func (id TnefAttributeId) ToBaseType() uint32 {
	return id.code
}

// IsOther reports whether id is the Other(code) escape variant.
func (id TnefAttributeId) IsOther() bool {
	return id.other
}

func (id TnefAttributeId) String() string {
	if name, ok := tnefAttrNames[id.code]; ok {
		return name
	}
	return fmt.Sprintf("Other(0x%08X)", id.code)
}

// Equal compares two TnefAttributeId values by their underlying code.
func (id TnefAttributeId) Equal(other TnefAttributeId) bool {
	return id.code == other.code
}

// PropIdType distinguishes the two kinds of named-property identifier
// that follow a named property's GUID: a 32-bit numeric id, or a
// UTF-16 string id.
type PropIdType uint32

const (
	PropIdTypeNumber PropIdType = 0
	PropIdTypeString PropIdType = 1
)

func (k PropIdType) String() string {
	switch k {
	case PropIdTypeNumber:
		return "Number"
	case PropIdTypeString:
		return "String"
	default:
		return fmt.Sprintf("Invalid(0x%08X)", uint32(k))
	}
}

// PropID is a named property's qualifier: a GUID plus either a numeric
// or string id, carried alongside a Property whose Tag.IsNamed() is
// true.
type PropID struct {
	Guid   guid.GUID
	Kind   PropIdType
	Number uint32
	String string
}
