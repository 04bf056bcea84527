package sdk

import (
	"github.com/zomekit-dev/zome-sdk/dispatch"
	"github.com/zomekit-dev/zome-sdk/domain/entities"
	"github.com/zomekit-dev/zome-sdk/domain/errors"
	"github.com/zomekit-dev/zome-sdk/hash"
	"github.com/zomekit-dev/zome-sdk/wireformat"
)

// CreateEntry commits a new entry of the given application type and returns
// the action hash of the commit.
//
// Content must be the canonical encoding of the application value; encode
// it with MarshalContent so equal values always hash identically.
func CreateEntry(entryType EntryType, content []byte) (hash.Hash, error) {
	if err := checkEntryInput(entryType, content); err != nil {
		return hash.Hash{}, err
	}

	out, err := dispatch.CallTyped[entities.CreateEntryInput, entities.CreateEntryOutput](
		wireformat.TagCreateEntry,
		entities.CreateEntryInput{Entry: entities.Entry{Type: entryType, Content: content}},
	)
	if err != nil {
		return hash.Hash{}, err
	}
	return out.ActionHash, nil
}

// GetRecord fetches the resolved record at an address (entry or action
// hash). A superseded address resolves to the latest update in its lineage.
// A lineage that was deleted, or an address the host has never seen, yields
// a NotFoundError; raw history is only available through GetDetails.
func GetRecord(address hash.Hash) (*Record, error) {
	if !address.IsValid() {
		return nil, &errors.ValidationError{Field: "address", Reason: "malformed hash"}
	}

	out, err := dispatch.CallTyped[entities.GetRecordInput, entities.GetRecordOutput](
		wireformat.TagGetRecord,
		entities.GetRecordInput{Address: address},
	)
	if err != nil {
		return nil, err
	}
	if out.Record == nil {
		return nil, &errors.NotFoundError{What: address.String(), Reason: "no record at address"}
	}
	return out.Record, nil
}

// GetDetails fetches the full history view of an address: the original
// record plus every update and delete referencing it.
func GetDetails(address hash.Hash) (*RecordDetails, error) {
	if !address.IsValid() {
		return nil, &errors.ValidationError{Field: "address", Reason: "malformed hash"}
	}

	out, err := dispatch.CallTyped[entities.GetDetailsInput, entities.GetDetailsOutput](
		wireformat.TagGetDetails,
		entities.GetDetailsInput{Address: address},
	)
	if err != nil {
		return nil, err
	}
	if out.Details == nil {
		return nil, &errors.NotFoundError{What: address.String(), Reason: "no record at address"}
	}
	return out.Details, nil
}

// UpdateEntry supersedes a prior create or update with new content. The
// original record stays in history; reads through GetRecord resolve to the
// update from now on.
func UpdateEntry(originalAction hash.Hash, entryType EntryType, content []byte) (hash.Hash, error) {
	if !originalAction.IsValid() {
		return hash.Hash{}, &errors.ValidationError{Field: "original_action", Reason: "malformed hash"}
	}
	if err := checkEntryInput(entryType, content); err != nil {
		return hash.Hash{}, err
	}

	out, err := dispatch.CallTyped[entities.UpdateEntryInput, entities.UpdateEntryOutput](
		wireformat.TagUpdateEntry,
		entities.UpdateEntryInput{
			OriginalAction: originalAction,
			Entry:          entities.Entry{Type: entryType, Content: content},
		},
	)
	if err != nil {
		return hash.Hash{}, err
	}
	return out.ActionHash, nil
}

// DeleteEntry tombstones a prior create or update. Nothing is erased: the
// delete is a new action referencing the old one, and reads resolve the
// lineage as dead afterwards.
func DeleteEntry(deletesAction hash.Hash) (hash.Hash, error) {
	if !deletesAction.IsValid() {
		return hash.Hash{}, &errors.ValidationError{Field: "deletes_action", Reason: "malformed hash"}
	}

	out, err := dispatch.CallTyped[entities.DeleteEntryInput, entities.DeleteEntryOutput](
		wireformat.TagDeleteEntry,
		entities.DeleteEntryInput{DeletesAction: deletesAction},
	)
	if err != nil {
		return hash.Hash{}, err
	}
	return out.ActionHash, nil
}

// MarshalContent canonically encodes an application value for use as entry
// content. Equal values always produce identical bytes, which is what makes
// entry hashes stable.
func MarshalContent(v any) ([]byte, error) {
	return wireformat.Marshal(v)
}

// UnmarshalContent decodes entry content produced by MarshalContent.
func UnmarshalContent(content []byte, v any) error {
	return wireformat.Unmarshal(content, v)
}

// checkEntryInput enforces the cheap local preconditions that must never
// cost a host round trip.
func checkEntryInput(entryType EntryType, content []byte) error {
	if entryType == "" {
		return &errors.ValidationError{Field: "entry_type", Reason: "must not be empty"}
	}
	if entryType.IsSystem() {
		return &errors.ValidationError{Field: "entry_type", Reason: "system entry types are committed through their own functions"}
	}
	if len(content) == 0 {
		return &errors.ValidationError{Field: "content", Reason: "must not be empty"}
	}
	return nil
}
