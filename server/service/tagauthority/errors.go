package tagauthority

import "fmt"

// DuplicateNameError reports a canonical name collision with an active
// authority. The compare is case-insensitive.
type DuplicateNameError struct {
	CanonicalName string
	ExistingUID   string
}

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("authority named %q already exists (uid %s)", e.CanonicalName, e.ExistingUID)
}

// AliasConflictError reports a normalized key already claimed by a
// different active authority. It always names the claiming authority so
// a curator can decide how to resolve the ambiguity.
type AliasConflictError struct {
	AliasText     string
	NormalizedKey string
	ClaimedByUID  string
	ClaimedByName string
}

func (e *AliasConflictError) Error() string {
	return fmt.Sprintf("alias %q (key %q) is already claimed by authority %q (uid %s)",
		e.AliasText, e.NormalizedKey, e.ClaimedByName, e.ClaimedByUID)
}

// ValidationError rejects malformed input before any store mutation.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
