package tagauthority_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/posawiki/posawiki/server/service/tagauthority"
	"github.com/posawiki/posawiki/store"
	"github.com/posawiki/posawiki/store/test"
)

func newTestService(ctx context.Context, t *testing.T) (*tagauthority.Service, *store.Store) {
	ts := test.NewTestingStore(ctx, t)
	svc, err := tagauthority.NewService(ctx, ts)
	require.NoError(t, err)
	return svc, ts
}

func createTestVideo(ctx context.Context, t *testing.T, ts *store.Store, uid string, tags []string) *store.Video {
	video, err := ts.CreateVideo(ctx, &store.Video{
		UID:         uid,
		YoutubeID:   fmt.Sprintf("yt-%s", uid),
		Title:       "video " + uid,
		UploadDate:  "2024-01-15",
		YoutubeTags: tags,
	})
	require.NoError(t, err)
	return video
}

func TestResolveDeterminism(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(ctx, t)

	_, err := svc.CreateAuthority(ctx, "Winter Camping", store.AuthorityCategoryActivity, "", nil)
	require.NoError(t, err)

	idx := svc.Index()
	first := tagauthority.Resolve("Winter Camping", idx)
	require.True(t, first.Matched)
	for i := 0; i < 100; i++ {
		got := tagauthority.Resolve("Winter Camping", idx)
		require.Equal(t, first, got)
	}
}

func TestDuplicateCanonicalName(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(ctx, t)

	_, err := svc.CreateAuthority(ctx, "Fishing", store.AuthorityCategoryActivity, "", nil)
	require.NoError(t, err)

	_, err = svc.CreateAuthority(ctx, "fishing", store.AuthorityCategoryActivity, "", nil)
	var dup *tagauthority.DuplicateNameError
	require.ErrorAs(t, err, &dup)
	require.Equal(t, "fishing", dup.CanonicalName)
}

func TestAliasConflictNamesClaimingAuthority(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(ctx, t)

	a, err := svc.CreateAuthority(ctx, "Boundary Waters Canoe Area", store.AuthorityCategoryLocation, "", nil)
	require.NoError(t, err)
	_, err = svc.AddAliases(ctx, a.UID, []tagauthority.AliasInput{{Text: "Boundary Waters"}})
	require.NoError(t, err)

	b, err := svc.CreateAuthority(ctx, "Quetico", store.AuthorityCategoryLocation, "", nil)
	require.NoError(t, err)

	_, err = svc.AddAliases(ctx, b.UID, []tagauthority.AliasInput{{Text: "boundary waters"}})
	var conflict *tagauthority.AliasConflictError
	require.ErrorAs(t, err, &conflict)
	require.Equal(t, "Boundary Waters Canoe Area", conflict.ClaimedByName)
	require.Equal(t, a.UID, conflict.ClaimedByUID)
}

func TestIdempotentAliasReAdd(t *testing.T) {
	ctx := context.Background()
	svc, ts := newTestService(ctx, t)

	a, err := svc.CreateAuthority(ctx, "Boundary Waters Canoe Area", store.AuthorityCategoryLocation, "", nil)
	require.NoError(t, err)

	created, err := svc.AddAliases(ctx, a.UID, []tagauthority.AliasInput{{Text: "bwca"}})
	require.NoError(t, err)
	require.Len(t, created, 1)

	// Same key after normalization, so a silent no-op.
	created, err = svc.AddAliases(ctx, a.UID, []tagauthority.AliasInput{{Text: "BWCA "}})
	require.NoError(t, err)
	require.Empty(t, created)

	key := "bwca"
	aliases, err := ts.ListAliases(ctx, &store.FindAuthorityAlias{NormalizedKey: &key})
	require.NoError(t, err)
	require.Len(t, aliases, 1)
	require.Equal(t, a.ID, aliases[0].AuthorityID)
}

func TestBatchAtomicity(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(ctx, t)

	_, err := svc.CreateAuthority(ctx, "Ice Fishing", store.AuthorityCategoryActivity, "", nil)
	require.NoError(t, err)

	b, err := svc.CreateAuthority(ctx, "Snowshoeing", store.AuthorityCategoryActivity, "", nil)
	require.NoError(t, err)

	batch := []tagauthority.AliasInput{
		{Text: "snow shoes"},
		{Text: "snowshoe hike"},
		{Text: "Ice Fishing"}, // claimed by the other authority
		{Text: "winter hiking"},
		{Text: "snow trekking"},
	}
	_, err = svc.AddAliases(ctx, b.UID, batch)
	var conflict *tagauthority.AliasConflictError
	require.ErrorAs(t, err, &conflict)

	// Nothing from the batch may have landed, not even the two
	// aliases ahead of the conflicting one.
	idx := svc.Index()
	for _, input := range batch {
		key := tagauthority.Normalize(input.Text)
		entry, ok := idx.Lookup(key)
		if key == "ice fishing" {
			require.True(t, ok)
			require.NotEqual(t, b.ID, entry.ID)
			continue
		}
		require.False(t, ok, "key %q must remain unclaimed", key)
	}
}

func TestAnalyzeEmptyCorpus(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(ctx, t)

	report, err := svc.Analyze(ctx)
	require.NoError(t, err)
	require.Equal(t, 1.0, report.UniqueTagCoverage)
	require.Equal(t, 1.0, report.InstanceCoverage)
	require.Empty(t, report.UnmatchedRanked)
	require.Empty(t, report.Authorities)
}

func TestAnalyzeEndToEnd(t *testing.T) {
	ctx := context.Background()
	svc, ts := newTestService(ctx, t)

	createTestVideo(ctx, t, ts, "v1", []string{"bwca", "winter camping"})
	createTestVideo(ctx, t, ts, "v2", []string{"BWCA", "fishing"})

	report, err := svc.Analyze(ctx)
	require.NoError(t, err)
	require.Equal(t, 4, report.TotalInstances)
	require.Equal(t, 4, report.DistinctRawTags)
	require.Equal(t, 0.0, report.UniqueTagCoverage)
	require.Equal(t, 0.0, report.InstanceCoverage)

	// All counts tie at 1, so order falls back to normalized key then
	// raw string: both bwca variants ahead of fishing.
	var ranked []string
	for _, unmatched := range report.UnmatchedRanked {
		require.Equal(t, 1, unmatched.InstanceCount)
		ranked = append(ranked, unmatched.RawTag)
	}
	require.Equal(t, []string{"BWCA", "bwca", "fishing", "winter camping"}, ranked)

	// One alias covers both raw spellings through the shared key.
	_, err = svc.CreateAuthority(ctx, "Boundary Waters Canoe Area", store.AuthorityCategoryLocation, "",
		[]tagauthority.AliasInput{{Text: "bwca"}})
	require.NoError(t, err)

	report, err = svc.Analyze(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, report.MatchedInstances)
	require.Equal(t, 0.5, report.InstanceCoverage)
	require.Equal(t, 0.5, report.UniqueTagCoverage)

	require.Len(t, report.Authorities, 1)
	require.Equal(t, "Boundary Waters Canoe Area", report.Authorities[0].CanonicalName)
	require.Equal(t, 2, report.Authorities[0].InstanceCount)
	require.Equal(t, 2, report.Authorities[0].VideoCount)
}

func TestCoverageMonotonicity(t *testing.T) {
	ctx := context.Background()
	svc, ts := newTestService(ctx, t)

	for i := 0; i < 5; i++ {
		createTestVideo(ctx, t, ts, fmt.Sprintf("snow-%d", i), []string{"snowshoeing", "misc"})
	}

	before, err := svc.Analyze(ctx)
	require.NoError(t, err)

	_, err = svc.CreateAuthority(ctx, "Snowshoeing", store.AuthorityCategoryActivity, "", nil)
	require.NoError(t, err)

	after, err := svc.Analyze(ctx)
	require.NoError(t, err)
	require.Greater(t, after.InstanceCoverage, before.InstanceCoverage)

	require.Len(t, after.Authorities, 1)
	require.Equal(t, 5, after.Authorities[0].InstanceCount)
	require.Equal(t, 5, after.Authorities[0].VideoCount)
}

func TestDeactivateFreesKey(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(ctx, t)

	a, err := svc.CreateAuthority(ctx, "Lake Trout", store.AuthorityCategoryOther, "", nil)
	require.NoError(t, err)

	require.True(t, tagauthority.Resolve("lake trout", svc.Index()).Matched)

	require.NoError(t, svc.DeactivateAuthority(ctx, a.UID))
	// Idempotent.
	require.NoError(t, svc.DeactivateAuthority(ctx, a.UID))

	require.False(t, tagauthority.Resolve("lake trout", svc.Index()).Matched)

	// The archived authority's keys are claimable again.
	_, err = svc.CreateAuthority(ctx, "Lake Trout", store.AuthorityCategoryOther, "", nil)
	require.NoError(t, err)
	require.True(t, tagauthority.Resolve("Lake TROUT", svc.Index()).Matched)
}

func TestValidationRejectsBeforeMutation(t *testing.T) {
	ctx := context.Background()
	svc, ts := newTestService(ctx, t)

	var validation *tagauthority.ValidationError

	_, err := svc.CreateAuthority(ctx, "   ", store.AuthorityCategoryOther, "", nil)
	require.ErrorAs(t, err, &validation)

	_, err = svc.CreateAuthority(ctx, "Canoeing", "paddlesports", "", nil)
	require.ErrorAs(t, err, &validation)

	_, err = svc.CreateAuthority(ctx, "Canoeing", store.AuthorityCategoryActivity, "",
		[]tagauthority.AliasInput{{Text: "..."}})
	require.ErrorAs(t, err, &validation)

	normal := store.Normal
	authorities, err := ts.ListAuthorities(ctx, &store.FindAuthority{RowStatus: &normal})
	require.NoError(t, err)
	require.Empty(t, authorities)
}

func TestRevalidateSplitsTags(t *testing.T) {
	ctx := context.Background()
	svc, ts := newTestService(ctx, t)

	video := createTestVideo(ctx, t, ts, "v1", []string{"bwca", "BWCA", "fishing"})

	_, err := svc.CreateAuthority(ctx, "Boundary Waters Canoe Area", store.AuthorityCategoryLocation, "",
		[]tagauthority.AliasInput{{Text: "bwca"}})
	require.NoError(t, err)

	result, err := svc.Revalidate(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, result.Videos)
	require.Equal(t, 1, result.UpdatedVideos)

	refreshed, err := ts.GetVideo(ctx, &store.FindVideo{ID: &video.ID})
	require.NoError(t, err)
	require.NotNil(t, refreshed)
	require.Equal(t, []string{"Boundary Waters Canoe Area"}, refreshed.ValidatedTags)
	require.Equal(t, []string{"fishing"}, refreshed.UnvalidatedTags)

	// A second pass with no changes writes nothing.
	result, err = svc.Revalidate(ctx)
	require.NoError(t, err)
	require.Zero(t, result.UpdatedVideos)
}
