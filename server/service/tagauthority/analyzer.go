package tagauthority

import (
	"sort"

	"github.com/posawiki/posawiki/store"
)

// AuthorityUsage aggregates corpus hits for one authority.
type AuthorityUsage struct {
	UID           string                  `json:"uid"`
	CanonicalName string                  `json:"canonicalName"`
	Category      store.AuthorityCategory `json:"category"`
	VideoCount    int                     `json:"videoCount"`
	InstanceCount int                     `json:"instanceCount"`
}

// UnmatchedTag is one distinct raw string that resolved to nothing,
// with its instance count across the corpus.
type UnmatchedTag struct {
	RawTag        string `json:"rawTag"`
	InstanceCount int    `json:"instanceCount"`
}

// CoverageReport is the authoritative coverage computation. Every
// consumer (dashboard, CLI, RSS) renders from this one shape so they
// all agree on the numbers.
type CoverageReport struct {
	IndexVersion     int64 `json:"indexVersion"`
	TotalInstances   int   `json:"totalInstances"`
	MatchedInstances int   `json:"matchedInstances"`
	DistinctRawTags  int   `json:"distinctRawTags"`
	MatchedRawTags   int   `json:"matchedRawTags"`

	// Coverage ratios in [0,1]. An empty corpus is vacuously covered.
	UniqueTagCoverage float64 `json:"uniqueTagCoverage"`
	InstanceCoverage  float64 `json:"instanceCoverage"`

	// Authorities with at least one hit, instance count descending.
	Authorities []*AuthorityUsage `json:"authorities"`

	// UnmatchedRanked lists distinct unmatched raw tags, instance count
	// descending, ties broken by normalized key then raw string. Raw
	// variants are kept separate so curators see the exact creator-typed
	// spellings.
	UnmatchedRanked []*UnmatchedTag `json:"unmatchedRanked"`
}

type rawTagStat struct {
	count int
	entry *Entry
}

// Analyze resolves every corpus instance against the snapshot and
// aggregates coverage. Single pass over the corpus; each distinct raw
// string is resolved once and cached.
func Analyze(corpus []store.TagInstance, idx *Index) *CoverageReport {
	report := &CoverageReport{
		IndexVersion:    idx.Version(),
		Authorities:     []*AuthorityUsage{},
		UnmatchedRanked: []*UnmatchedTag{},
	}

	rawStats := make(map[string]*rawTagStat)
	usage := make(map[int32]*AuthorityUsage)
	videosSeen := make(map[int32]map[string]struct{})

	for _, instance := range corpus {
		report.TotalInstances++

		stat, ok := rawStats[instance.RawTag]
		if !ok {
			stat = &rawTagStat{}
			if outcome := Resolve(instance.RawTag, idx); outcome.Matched {
				stat.entry = outcome.Authority
			}
			rawStats[instance.RawTag] = stat
		}
		stat.count++

		if stat.entry == nil {
			continue
		}
		report.MatchedInstances++

		entry := stat.entry
		aggregate, ok := usage[entry.ID]
		if !ok {
			aggregate = &AuthorityUsage{
				UID:           entry.UID,
				CanonicalName: entry.CanonicalName,
				Category:      entry.Category,
			}
			usage[entry.ID] = aggregate
			videosSeen[entry.ID] = make(map[string]struct{})
		}
		aggregate.InstanceCount++
		if _, seen := videosSeen[entry.ID][instance.VideoUID]; !seen {
			videosSeen[entry.ID][instance.VideoUID] = struct{}{}
			aggregate.VideoCount++
		}
	}

	report.DistinctRawTags = len(rawStats)
	for raw, stat := range rawStats {
		if stat.entry != nil {
			report.MatchedRawTags++
			continue
		}
		report.UnmatchedRanked = append(report.UnmatchedRanked, &UnmatchedTag{
			RawTag:        raw,
			InstanceCount: stat.count,
		})
	}

	sort.Slice(report.UnmatchedRanked, func(i, j int) bool {
		a, b := report.UnmatchedRanked[i], report.UnmatchedRanked[j]
		if a.InstanceCount != b.InstanceCount {
			return a.InstanceCount > b.InstanceCount
		}
		keyA, keyB := Normalize(a.RawTag), Normalize(b.RawTag)
		if keyA != keyB {
			return keyA < keyB
		}
		return a.RawTag < b.RawTag
	})

	for _, aggregate := range usage {
		report.Authorities = append(report.Authorities, aggregate)
	}
	sort.Slice(report.Authorities, func(i, j int) bool {
		a, b := report.Authorities[i], report.Authorities[j]
		if a.InstanceCount != b.InstanceCount {
			return a.InstanceCount > b.InstanceCount
		}
		return a.CanonicalName < b.CanonicalName
	})

	report.UniqueTagCoverage = coverageRatio(report.MatchedRawTags, report.DistinctRawTags)
	report.InstanceCoverage = coverageRatio(report.MatchedInstances, report.TotalInstances)
	return report
}

func coverageRatio(matched, total int) float64 {
	if total == 0 {
		return 1.0
	}
	return float64(matched) / float64(total)
}
