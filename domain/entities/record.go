package entities

// Signature is an ed25519 signature produced by the host over canonical
// action bytes. The guest never signs locally; it only carries signatures.
type Signature []byte

// Record pairs a signed action with the entry it committed, if any.
// Records are immutable and identified by their action hash.
type Record struct {
	Action    Action    `json:"action" msgpack:"action"`
	Signature Signature `json:"signature" msgpack:"signature"`
	Entry     *Entry    `json:"entry,omitempty" msgpack:"entry,omitempty"`
}

// RecordStatus describes the materialized state of a record's lineage.
type RecordStatus string

const (
	// RecordLive means no delete tombstones the lineage.
	RecordLive RecordStatus = "live"
	// RecordDead means a delete action tombstones the lineage.
	RecordDead RecordStatus = "dead"
)

// RecordDetails is the full history view of an address: the original record
// plus every update and delete that references it. Get returns only the
// resolved state; GetDetails returns this.
type RecordDetails struct {
	Record  Record       `json:"record" msgpack:"record"`
	Updates []Record     `json:"updates,omitempty" msgpack:"updates,omitempty"`
	Deletes []Record     `json:"deletes,omitempty" msgpack:"deletes,omitempty"`
	Status  RecordStatus `json:"status" msgpack:"status"`
}
