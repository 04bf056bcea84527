package wireformat

// Tag identifies a host capability on the wire. The tag space is append-only:
// new capabilities take the next free value and retired values are never
// reused, so host and guest builds of different vintages stay compatible.
type Tag uint32

const (
	// TagInvalid is reserved; no capability ever uses it.
	TagInvalid Tag = iota

	TagCreateEntry
	TagGetRecord
	TagGetDetails
	TagUpdateEntry
	TagDeleteEntry
	TagCreateLink
	TagDeleteLink
	TagGetLinks
	TagSign
	TagVerifySignature
	TagEmitSignal
	TagAgentInfo
	TagCallRemote
	TagQuery
	TagLogMessage
	TagDnaInfo

	// tagEnd marks the first unassigned value. Append new tags above.
	tagEnd
)

var tagNames = map[Tag]string{
	TagCreateEntry:     "create_entry",
	TagGetRecord:       "get_record",
	TagGetDetails:      "get_details",
	TagUpdateEntry:     "update_entry",
	TagDeleteEntry:     "delete_entry",
	TagCreateLink:      "create_link",
	TagDeleteLink:      "delete_link",
	TagGetLinks:        "get_links",
	TagSign:            "sign",
	TagVerifySignature: "verify_signature",
	TagEmitSignal:      "emit_signal",
	TagAgentInfo:       "agent_info",
	TagCallRemote:      "call_remote",
	TagQuery:           "query",
	TagLogMessage:      "log_message",
	TagDnaInfo:         "dna_info",
}

// Known reports whether this build recognizes the tag.
func (t Tag) Known() bool {
	_, ok := tagNames[t]
	return ok
}

// String returns the stable capability name for the tag.
func (t Tag) String() string {
	if name, ok := tagNames[t]; ok {
		return name
	}
	return "unknown"
}
