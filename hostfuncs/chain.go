package hostfuncs

import (
	"crypto/ed25519"
	"fmt"
	"time"

	"github.com/zomekit-dev/zome-sdk/domain/entities"
	"github.com/zomekit-dev/zome-sdk/domain/errors"
	"github.com/zomekit-dev/zome-sdk/hash"
	"github.com/zomekit-dev/zome-sdk/wireformat"
)

// sourceChain is one agent's append-only action log plus the indexes the
// conductor needs to resolve addresses. Nothing is ever removed: updates and
// deletes are new actions referencing prior ones, and resolution happens at
// read time.
type sourceChain struct {
	agent   hash.Hash
	records []entities.Record
	head    hash.Hash

	byAction map[string]*entities.Record
	// byEntry maps an entry hash to every create or update action that
	// committed it. Distinct actions can commit identical content, so this
	// is a list, not a single hash.
	byEntry map[string][]hash.Hash
	// updatesOf and deletesOf index the actions that supersede or tombstone
	// a given action hash.
	updatesOf map[string][]hash.Hash
	deletesOf map[string][]hash.Hash
}

func newSourceChain(agent hash.Hash) *sourceChain {
	return &sourceChain{
		agent:     agent,
		byAction:  make(map[string]*entities.Record),
		byEntry:   make(map[string][]hash.Hash),
		updatesOf: make(map[string][]hash.Hash),
		deletesOf: make(map[string][]hash.Hash),
	}
}

// append signs the action, stores the record, and advances the chain head.
// The action's Seq and PrevAction are filled in here; callers set the rest.
func (s *sourceChain) append(priv ed25519.PrivateKey, action entities.Action, entry *entities.Entry) (hash.Hash, error) {
	action.Seq = uint32(len(s.records))
	action.PrevAction = s.head

	if err := action.Validate(); err != nil {
		return hash.Hash{}, &errors.ValidationError{Reason: err.Error()}
	}

	canonical, err := wireformat.Marshal(action)
	if err != nil {
		return hash.Hash{}, fmt.Errorf("encode action: %w", err)
	}
	actionHash := hash.Sum(hash.KindAction, canonical)

	record := entities.Record{
		Action:    action,
		Signature: ed25519.Sign(priv, canonical),
		Entry:     entry,
	}

	s.records = append(s.records, record)
	s.head = actionHash
	s.byAction[actionHash.String()] = &s.records[len(s.records)-1]

	switch action.Type {
	case entities.ActionCreate, entities.ActionUpdate:
		key := action.EntryHash.String()
		s.byEntry[key] = append(s.byEntry[key], actionHash)
		if action.Type == entities.ActionUpdate {
			orig := action.OriginalAction.String()
			s.updatesOf[orig] = append(s.updatesOf[orig], actionHash)
		}
	case entities.ActionDelete:
		key := action.Deletes.String()
		s.deletesOf[key] = append(s.deletesOf[key], actionHash)
	case entities.ActionCreateLink, entities.ActionDeleteLink:
		// Link actions are indexed by the conductor's link store.
	}

	return actionHash, nil
}

// record returns the stored record for an action hash.
func (s *sourceChain) record(actionHash hash.Hash) (*entities.Record, bool) {
	rec, ok := s.byAction[actionHash.String()]
	return rec, ok
}

// commitEntry appends a create action for the entry.
func (s *sourceChain) commitEntry(priv ed25519.PrivateKey, now time.Time, entry entities.Entry) (hash.Hash, error) {
	entryHash, err := entry.Hash()
	if err != nil {
		return hash.Hash{}, err
	}
	return s.append(priv, entities.Action{
		Type:      entities.ActionCreate,
		Author:    s.agent,
		Timestamp: now,
		EntryType: entry.Type,
		EntryHash: entryHash,
	}, &entry)
}

// commitUpdate appends an update action superseding originalAction.
func (s *sourceChain) commitUpdate(priv ed25519.PrivateKey, now time.Time, originalAction hash.Hash, entry entities.Entry) (hash.Hash, error) {
	orig, ok := s.record(originalAction)
	if !ok {
		return hash.Hash{}, &errors.NotFoundError{What: "action", Reason: "original action is not on this chain"}
	}
	if orig.Action.Type != entities.ActionCreate && orig.Action.Type != entities.ActionUpdate {
		return hash.Hash{}, &errors.ValidationError{Reason: fmt.Sprintf("cannot update a %s action", orig.Action.Type)}
	}

	entryHash, err := entry.Hash()
	if err != nil {
		return hash.Hash{}, err
	}
	return s.append(priv, entities.Action{
		Type:           entities.ActionUpdate,
		Author:         s.agent,
		Timestamp:      now,
		EntryType:      entry.Type,
		EntryHash:      entryHash,
		OriginalAction: originalAction,
		OriginalEntry:  orig.Action.EntryHash,
	}, &entry)
}

// commitDelete appends a delete action tombstoning deletesAction.
func (s *sourceChain) commitDelete(priv ed25519.PrivateKey, now time.Time, deletesAction hash.Hash) (hash.Hash, error) {
	target, ok := s.record(deletesAction)
	if !ok {
		return hash.Hash{}, &errors.NotFoundError{What: "action", Reason: "action to delete is not on this chain"}
	}
	if target.Action.Type != entities.ActionCreate && target.Action.Type != entities.ActionUpdate {
		return hash.Hash{}, &errors.ValidationError{Reason: fmt.Sprintf("cannot delete a %s action", target.Action.Type)}
	}

	return s.append(priv, entities.Action{
		Type:      entities.ActionDelete,
		Author:    s.agent,
		Timestamp: now,
		Deletes:   deletesAction,
	}, nil)
}

// commitCreateLink appends a create_link action.
func (s *sourceChain) commitCreateLink(priv ed25519.PrivateKey, now time.Time, in entities.CreateLinkInput) (hash.Hash, error) {
	return s.append(priv, entities.Action{
		Type:      entities.ActionCreateLink,
		Author:    s.agent,
		Timestamp: now,
		Base:      in.Base,
		Target:    in.Target,
		LinkType:  in.Type,
		LinkTag:   in.Tag,
	}, nil)
}

// commitDeleteLink appends a delete_link action tombstoning linkAdd.
func (s *sourceChain) commitDeleteLink(priv ed25519.PrivateKey, now time.Time, linkAdd hash.Hash) (hash.Hash, error) {
	target, ok := s.record(linkAdd)
	if !ok {
		return hash.Hash{}, &errors.NotFoundError{What: "create_link", Reason: "create_link is not on this chain"}
	}
	if target.Action.Type != entities.ActionCreateLink {
		return hash.Hash{}, &errors.ValidationError{Reason: fmt.Sprintf("delete_link must reference a create_link, got %s", target.Action.Type)}
	}

	return s.append(priv, entities.Action{
		Type:      entities.ActionDeleteLink,
		Author:    s.agent,
		Timestamp: now,
		LinkAdd:   linkAdd,
	}, nil)
}

// query returns chain records matching the filter, in chain order.
func (s *sourceChain) query(in entities.QueryInput) []entities.Record {
	var out []entities.Record
	for _, rec := range s.records {
		if !in.Matches(rec) {
			continue
		}
		if !in.IncludeEntries {
			rec.Entry = nil
		}
		out = append(out, rec)
	}
	return out
}
