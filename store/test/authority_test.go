package test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/posawiki/posawiki/store"
)

func TestAuthorityStore(t *testing.T) {
	ctx := context.Background()
	ts := NewTestingStore(ctx, t)

	authority, err := ts.CreateAuthority(ctx, &store.Authority{
		UID:           "auth-1",
		CanonicalName: "Boundary Waters Canoe Area",
		Category:      store.AuthorityCategoryLocation,
		Description:   "Wilderness area",
	}, []*store.AuthorityAlias{
		{AliasText: "Boundary Waters Canoe Area", NormalizedKey: "boundary waters canoe area", Confidence: 1.0},
		{AliasText: "bwca", NormalizedKey: "bwca", Confidence: 1.0},
	})
	require.NoError(t, err)
	require.NotZero(t, authority.ID)
	require.Equal(t, store.Normal, authority.RowStatus)
	require.NotZero(t, authority.CreatedTs)

	// Creation is transactional: both aliases landed with the row.
	aliases, err := ts.ListAliases(ctx, &store.FindAuthorityAlias{AuthorityID: &authority.ID})
	require.NoError(t, err)
	require.Len(t, aliases, 2)

	key := "bwca"
	byKey, err := ts.ListAliases(ctx, &store.FindAuthorityAlias{NormalizedKey: &key})
	require.NoError(t, err)
	require.Len(t, byKey, 1)
	require.Equal(t, authority.ID, byKey[0].AuthorityID)

	// Category filter.
	location := store.AuthorityCategoryLocation
	authorities, err := ts.ListAuthorities(ctx, &store.FindAuthority{Category: &location})
	require.NoError(t, err)
	require.Len(t, authorities, 1)

	// Archive and fetch by status.
	archived := store.Archived
	require.NoError(t, ts.UpdateAuthority(ctx, &store.UpdateAuthority{
		ID:        authority.ID,
		RowStatus: &archived,
	}))

	normal := store.Normal
	active, err := ts.ListAuthorities(ctx, &store.FindAuthority{RowStatus: &normal})
	require.NoError(t, err)
	require.Empty(t, active)

	// Aliases survive archiving.
	aliases, err = ts.ListAliases(ctx, &store.FindAuthorityAlias{AuthorityID: &authority.ID})
	require.NoError(t, err)
	require.Len(t, aliases, 2)

	require.NoError(t, ts.DeleteAlias(ctx, &store.DeleteAuthorityAlias{ID: aliases[0].ID}))
	aliases, err = ts.ListAliases(ctx, &store.FindAuthorityAlias{AuthorityID: &authority.ID})
	require.NoError(t, err)
	require.Len(t, aliases, 1)
}

func TestCreateAliasesBatch(t *testing.T) {
	ctx := context.Background()
	ts := NewTestingStore(ctx, t)

	authority, err := ts.CreateAuthority(ctx, &store.Authority{
		UID:           "auth-1",
		CanonicalName: "Fishing",
		Category:      store.AuthorityCategoryActivity,
	}, nil)
	require.NoError(t, err)

	created, err := ts.CreateAliases(ctx, []*store.AuthorityAlias{
		{AuthorityID: authority.ID, AliasText: "fish", NormalizedKey: "fish", Confidence: 1.0},
		{AuthorityID: authority.ID, AliasText: "catch and cook", NormalizedKey: "catch and cook", Confidence: 0.9},
	})
	require.NoError(t, err)
	require.Len(t, created, 2)
	for _, alias := range created {
		require.NotZero(t, alias.ID)
		require.NotZero(t, alias.CreatedTs)
	}
}
