package mapiprop

// Property is the decoded, container-agnostic view of one MAPI
// property: which well-known tag it is, the storage type it was
// decoded with, the CFB flags word (zero for TNEF, which has no flags
// field), an optional named-property qualifier, and the decoded value
// itself. Invariant: Value.Type().Equal(PropertyType) always holds for
// a Property produced by this package.
type Property struct {
	Tag          PropTag
	PropertyType PropType
	Flags        uint32
	ID           *PropID
	Value        PropValue
}
