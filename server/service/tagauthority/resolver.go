package tagauthority

// Outcome is the result of resolving one raw tag against an index
// snapshot. Authority is nil when the tag is unmatched.
type Outcome struct {
	RawTag    string
	Matched   bool
	Authority *Entry
}

// Resolve maps a raw tag to an authority through the snapshot's key
// index. A tag whose normalized key is empty is unmatched without a
// lookup. Pure with respect to the snapshot: no fuzzy matching, no
// order dependence, same input always yields the same outcome.
func Resolve(rawTag string, idx *Index) Outcome {
	key := Normalize(rawTag)
	if key == "" {
		return Outcome{RawTag: rawTag}
	}
	entry, ok := idx.Lookup(key)
	if !ok {
		return Outcome{RawTag: rawTag}
	}
	return Outcome{RawTag: rawTag, Matched: true, Authority: entry}
}
