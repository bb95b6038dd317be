package tagauthority

import (
	"context"

	"github.com/pkg/errors"

	"github.com/posawiki/posawiki/store"
)

// Entry is the index view of one active authority.
type Entry struct {
	ID            int32
	UID           string
	CanonicalName string
	Category      store.AuthorityCategory
}

// Index is an immutable snapshot of the active authority table keyed by
// normalized alias key. Mutations build a fresh Index and swap it in;
// readers keep resolving against the snapshot they started with, so a
// report never observes a half-applied mutation.
type Index struct {
	version int64
	byKey   map[string]*Entry
	byID    map[int32]*Entry
}

// Version identifies the snapshot; it increases with every rebuild.
func (idx *Index) Version() int64 {
	return idx.version
}

// Lookup returns the active authority claiming the given normalized key.
func (idx *Index) Lookup(normalizedKey string) (*Entry, bool) {
	entry, ok := idx.byKey[normalizedKey]
	return entry, ok
}

// Owner returns the active authority with the given id.
func (idx *Index) Owner(authorityID int32) (*Entry, bool) {
	entry, ok := idx.byID[authorityID]
	return entry, ok
}

// Size returns the number of distinct keys the snapshot can match.
func (idx *Index) Size() int {
	return len(idx.byKey)
}

// BuildIndex loads all active authorities and their aliases into a fresh
// snapshot. Aliases of archived authorities are skipped, which is what
// makes their keys claimable again.
func BuildIndex(ctx context.Context, s *store.Store, version int64) (*Index, error) {
	normal := store.Normal
	authorities, err := s.ListAuthorities(ctx, &store.FindAuthority{RowStatus: &normal})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list authorities")
	}

	idx := &Index{
		version: version,
		byKey:   make(map[string]*Entry),
		byID:    make(map[int32]*Entry, len(authorities)),
	}
	for _, authority := range authorities {
		idx.byID[authority.ID] = &Entry{
			ID:            authority.ID,
			UID:           authority.UID,
			CanonicalName: authority.CanonicalName,
			Category:      authority.Category,
		}
	}

	aliases, err := s.ListAliases(ctx, &store.FindAuthorityAlias{})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list aliases")
	}
	for _, alias := range aliases {
		entry, ok := idx.byID[alias.AuthorityID]
		if !ok {
			continue
		}
		if claimed, ok := idx.byKey[alias.NormalizedKey]; ok && claimed.ID != entry.ID {
			return nil, errors.Errorf("index corrupt: key %q claimed by both %q and %q",
				alias.NormalizedKey, claimed.CanonicalName, entry.CanonicalName)
		}
		idx.byKey[alias.NormalizedKey] = entry
	}
	return idx, nil
}
