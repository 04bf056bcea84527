package hostfuncs

import (
	"bytes"
	"sort"

	"github.com/zomekit-dev/zome-sdk/domain/entities"
	"github.com/zomekit-dev/zome-sdk/hash"
)

// Read-side resolution. Committed data is shared: every cell sees every
// other cell's records, the way a DHT would serve them. Resolution never
// mutates anything; conflicting updates stay stored and the winner is
// recomputed on each read.

// findRecord locates a record by action hash across all cells.
func (c *Conductor) findRecord(actionHash hash.Hash) (*entities.Record, bool) {
	for _, cl := range c.cells {
		if rec, ok := cl.chain.record(actionHash); ok {
			return rec, true
		}
	}
	return nil, false
}

// updatesOf aggregates the update actions superseding actionHash.
func (c *Conductor) updatesOf(actionHash hash.Hash) []hash.Hash {
	var out []hash.Hash
	for _, cl := range c.cells {
		out = append(out, cl.chain.updatesOf[actionHash.String()]...)
	}
	return out
}

// deletesOf aggregates the delete actions tombstoning actionHash.
func (c *Conductor) deletesOf(actionHash hash.Hash) []hash.Hash {
	var out []hash.Hash
	for _, cl := range c.cells {
		out = append(out, cl.chain.deletesOf[actionHash.String()]...)
	}
	return out
}

// committersOf aggregates the create and update actions that committed the
// entry with the given hash.
func (c *Conductor) committersOf(entryHash hash.Hash) []hash.Hash {
	var out []hash.Hash
	for _, cl := range c.cells {
		out = append(out, cl.chain.byEntry[entryHash.String()]...)
	}
	return out
}

// resolveRecord answers GetRecord. Resolution follows the update lineage:
// an address whose record was superseded resolves to the latest live tip,
// never to a superseded revision. Tombstones end a lineage.
func (c *Conductor) resolveRecord(address hash.Hash) *entities.Record {
	switch address.Kind() {
	case hash.KindAction:
		rec, _ := c.resolveAction(address)
		return rec
	case hash.KindEntry:
		return c.resolveEntry(address)
	default:
		return nil
	}
}

// resolveAction resolves an action address to the live tip of its update
// lineage. A tombstone on the addressed action or on the tip kills the
// lookup; a superseded revision is never served in either case.
func (c *Conductor) resolveAction(actionHash hash.Hash) (*entities.Record, hash.Hash) {
	if len(c.deletesOf(actionHash)) > 0 {
		return nil, hash.Hash{}
	}
	tip, tipHash := c.lineageTip(actionHash, make(map[string]bool))
	if tip == nil || len(c.deletesOf(tipHash)) > 0 {
		return nil, hash.Hash{}
	}
	return tip, tipHash
}

// lineageTip walks update actions transitively from actionHash and returns
// the latest superseding record by (timestamp, action hash) ordering, so
// every cell agrees on the winner of a competing-update branch. An action
// nothing supersedes is its own tip. The seen set guards against reference
// cycles in hostile chains.
func (c *Conductor) lineageTip(actionHash hash.Hash, seen map[string]bool) (*entities.Record, hash.Hash) {
	key := actionHash.String()
	if seen[key] {
		return nil, hash.Hash{}
	}
	seen[key] = true

	rec, ok := c.findRecord(actionHash)
	if !ok {
		return nil, hash.Hash{}
	}

	var best *entities.Record
	var bestHash hash.Hash
	for _, updateHash := range c.updatesOf(actionHash) {
		tip, tipHash := c.lineageTip(updateHash, seen)
		if tip == nil {
			continue
		}
		if best == nil || laterThan(tip, tipHash, best, bestHash) {
			best, bestHash = tip, tipHash
		}
	}
	if best != nil {
		return best, bestHash
	}
	return rec, actionHash
}

// resolveEntry answers GetRecord at an entry address: every committer of
// the content resolves through its update lineage, and the latest live tip
// wins, ties broken by action hash.
func (c *Conductor) resolveEntry(entryHash hash.Hash) *entities.Record {
	var winner *entities.Record
	var winnerHash hash.Hash
	for _, actionHash := range c.committersOf(entryHash) {
		rec, recHash := c.resolveAction(actionHash)
		if rec == nil {
			continue
		}
		if winner == nil || laterThan(rec, recHash, winner, winnerHash) {
			winner, winnerHash = rec, recHash
		}
	}
	return winner
}

// winningCommitter anchors an entry address at the record that committed
// the content, ignoring lineage. Details views root history here rather
// than at the tip.
func (c *Conductor) winningCommitter(entryHash hash.Hash) (*entities.Record, hash.Hash) {
	var winner *entities.Record
	var winnerHash hash.Hash
	for _, actionHash := range c.committersOf(entryHash) {
		rec, ok := c.findRecord(actionHash)
		if !ok {
			continue
		}
		if winner == nil || laterThan(rec, actionHash, winner, winnerHash) {
			winner, winnerHash = rec, actionHash
		}
	}
	return winner, winnerHash
}

// laterThan orders candidate records for entry resolution.
func laterThan(a *entities.Record, aHash hash.Hash, b *entities.Record, bHash hash.Hash) bool {
	if !a.Action.Timestamp.Equal(b.Action.Timestamp) {
		return a.Action.Timestamp.After(b.Action.Timestamp)
	}
	return bytes.Compare(aHash.Bytes(), bHash.Bytes()) > 0
}

// resolveDetails answers GetDetails: the raw record at an action address
// plus every update and delete referencing it. Unlike resolveRecord this
// never follows the lineage; entry addresses anchor at the winning
// committer so the history stays rooted where the content was committed.
func (c *Conductor) resolveDetails(address hash.Hash) *entities.RecordDetails {
	var rec *entities.Record
	var actionHash hash.Hash

	switch address.Kind() {
	case hash.KindAction:
		found, ok := c.findRecord(address)
		if !ok {
			return nil
		}
		rec, actionHash = found, address
	case hash.KindEntry:
		found, foundHash := c.winningCommitter(address)
		if found == nil {
			return nil
		}
		rec, actionHash = found, foundHash
	default:
		return nil
	}

	details := &entities.RecordDetails{
		Record: *rec,
		Status: entities.RecordLive,
	}
	for _, h := range c.updatesOf(actionHash) {
		if upd, ok := c.findRecord(h); ok {
			details.Updates = append(details.Updates, *upd)
		}
	}
	for _, h := range c.deletesOf(actionHash) {
		if del, ok := c.findRecord(h); ok {
			details.Deletes = append(details.Deletes, *del)
		}
	}
	if len(details.Deletes) > 0 {
		details.Status = entities.RecordDead
	}
	sortRecords(details.Updates)
	sortRecords(details.Deletes)
	return details
}

// liveLinks answers GetLinks: every create_link from the base, across all
// cells, minus the ones a delete_link tombstones.
func (c *Conductor) liveLinks(base hash.Hash, linkType string) []entities.Link {
	deleted := make(map[string]bool)
	for _, cl := range c.cells {
		for _, rec := range cl.chain.records {
			if rec.Action.Type == entities.ActionDeleteLink {
				deleted[rec.Action.LinkAdd.String()] = true
			}
		}
	}

	var links []entities.Link
	for _, cl := range c.cells {
		for _, rec := range cl.chain.records {
			if rec.Action.Type != entities.ActionCreateLink {
				continue
			}
			if !rec.Action.Base.Equal(base) {
				continue
			}
			if linkType != "" && rec.Action.LinkType != linkType {
				continue
			}
			createHash, err := rec.Action.Hash()
			if err != nil || deleted[createHash.String()] {
				continue
			}
			links = append(links, entities.Link{
				Base:       rec.Action.Base,
				Target:     rec.Action.Target,
				Type:       rec.Action.LinkType,
				Tag:        rec.Action.LinkTag,
				Author:     rec.Action.Author,
				Timestamp:  rec.Action.Timestamp,
				CreateHash: createHash,
			})
		}
	}
	sort.Slice(links, func(i, j int) bool {
		if !links[i].Timestamp.Equal(links[j].Timestamp) {
			return links[i].Timestamp.Before(links[j].Timestamp)
		}
		return bytes.Compare(links[i].CreateHash.Bytes(), links[j].CreateHash.Bytes()) < 0
	})
	return links
}

func sortRecords(recs []entities.Record) {
	sort.Slice(recs, func(i, j int) bool {
		return recs[i].Action.Timestamp.Before(recs[j].Action.Timestamp)
	})
}
