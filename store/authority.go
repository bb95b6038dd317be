package store

import (
	"context"
)

// AuthorityCategory groups authorities in reports.
type AuthorityCategory string

const (
	AuthorityCategoryLocation    AuthorityCategory = "location"
	AuthorityCategoryActivity    AuthorityCategory = "activity"
	AuthorityCategoryWeather     AuthorityCategory = "weather"
	AuthorityCategoryContentType AuthorityCategory = "content_type"
	AuthorityCategoryEquipment   AuthorityCategory = "equipment"
	AuthorityCategoryOther       AuthorityCategory = "other"
)

// IsValidAuthorityCategory reports whether category is a known category.
func IsValidAuthorityCategory(category AuthorityCategory) bool {
	switch category {
	case AuthorityCategoryLocation,
		AuthorityCategoryActivity,
		AuthorityCategoryWeather,
		AuthorityCategoryContentType,
		AuthorityCategoryEquipment,
		AuthorityCategoryOther:
		return true
	}
	return false
}

// Authority is a canonical concept a raw tag can resolve to.
type Authority struct {
	ID            int32
	UID           string
	RowStatus     RowStatus
	CreatedTs     int64
	UpdatedTs     int64
	CanonicalName string
	Category      AuthorityCategory
	Description   string
}

// FindAuthority is the find condition for authority.
type FindAuthority struct {
	ID        *int32
	UID       *string
	RowStatus *RowStatus
	Category  *AuthorityCategory

	Limit  *int
	Offset *int
}

// UpdateAuthority is the update request for authority.
type UpdateAuthority struct {
	ID          int32
	UpdatedTs   *int64
	RowStatus   *RowStatus
	Description *string
}

// AuthorityAlias is a literal text variant owned by exactly one authority.
// NormalizedKey is the comparison form; matching never looks at AliasText.
type AuthorityAlias struct {
	ID            int32
	AuthorityID   int32
	CreatedTs     int64
	AliasText     string
	NormalizedKey string
	Confidence    float64
}

// FindAuthorityAlias is the find condition for authority alias.
type FindAuthorityAlias struct {
	ID            *int32
	AuthorityID   *int32
	NormalizedKey *string
}

// DeleteAuthorityAlias is the delete request for authority alias.
type DeleteAuthorityAlias struct {
	ID int32
}

// CreateAuthority creates an authority together with its initial aliases
// in a single transaction.
func (s *Store) CreateAuthority(ctx context.Context, create *Authority, aliases []*AuthorityAlias) (*Authority, error) {
	return s.driver.CreateAuthority(ctx, create, aliases)
}

// ListAuthorities lists authorities with filter.
func (s *Store) ListAuthorities(ctx context.Context, find *FindAuthority) ([]*Authority, error) {
	return s.driver.ListAuthorities(ctx, find)
}

// GetAuthority gets a single authority, or nil if not found.
func (s *Store) GetAuthority(ctx context.Context, find *FindAuthority) (*Authority, error) {
	list, err := s.driver.ListAuthorities(ctx, find)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}
	return list[0], nil
}

// UpdateAuthority updates an authority.
func (s *Store) UpdateAuthority(ctx context.Context, update *UpdateAuthority) error {
	return s.driver.UpdateAuthority(ctx, update)
}

// CreateAliases inserts the whole alias batch in one transaction.
func (s *Store) CreateAliases(ctx context.Context, creates []*AuthorityAlias) ([]*AuthorityAlias, error) {
	return s.driver.CreateAliases(ctx, creates)
}

// ListAliases lists aliases with filter.
func (s *Store) ListAliases(ctx context.Context, find *FindAuthorityAlias) ([]*AuthorityAlias, error) {
	return s.driver.ListAliases(ctx, find)
}

// DeleteAlias removes an alias.
func (s *Store) DeleteAlias(ctx context.Context, delete *DeleteAuthorityAlias) error {
	return s.driver.DeleteAlias(ctx, delete)
}
