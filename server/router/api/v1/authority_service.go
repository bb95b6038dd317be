package v1

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/posawiki/posawiki/server/service/tagauthority"
	"github.com/posawiki/posawiki/store"
)

type AliasPayload struct {
	ID            int32   `json:"id"`
	AliasText     string  `json:"aliasText"`
	NormalizedKey string  `json:"normalizedKey"`
	Confidence    float64 `json:"confidence"`
}

type AuthorityPayload struct {
	UID           string                  `json:"uid"`
	RowStatus     string                  `json:"rowStatus"`
	CanonicalName string                  `json:"canonicalName"`
	Category      store.AuthorityCategory `json:"category"`
	Description   string                  `json:"description,omitempty"`
	CreatedTs     int64                   `json:"createdTs"`
	UpdatedTs     int64                   `json:"updatedTs"`
	Aliases       []*AliasPayload         `json:"aliases"`
}

type CreateAuthorityRequest struct {
	CanonicalName string              `json:"canonicalName"`
	Category      string              `json:"category"`
	Description   string              `json:"description"`
	Aliases       []AliasInputPayload `json:"aliases"`
}

type AliasInputPayload struct {
	Text       string  `json:"text"`
	Confidence float64 `json:"confidence"`
}

type AddAliasesRequest struct {
	Aliases []AliasInputPayload `json:"aliases"`
}

// ListAuthorities returns all authorities with their aliases. Archived
// authorities are included when ?state=all is passed.
func (s *APIV1Service) ListAuthorities(c echo.Context) error {
	ctx := c.Request().Context()

	find := &store.FindAuthority{}
	if c.QueryParam("state") != "all" {
		normal := store.Normal
		find.RowStatus = &normal
	}
	if category := c.QueryParam("category"); category != "" {
		authorityCategory := store.AuthorityCategory(category)
		if !store.IsValidAuthorityCategory(authorityCategory) {
			return echo.NewHTTPError(http.StatusBadRequest, "unknown category "+category)
		}
		find.Category = &authorityCategory
	}

	authorities, err := s.Store.ListAuthorities(ctx, find)
	if err != nil {
		return mapServiceError(err)
	}
	aliases, err := s.Store.ListAliases(ctx, &store.FindAuthorityAlias{})
	if err != nil {
		return mapServiceError(err)
	}
	aliasesByAuthority := make(map[int32][]*AliasPayload)
	for _, alias := range aliases {
		aliasesByAuthority[alias.AuthorityID] = append(aliasesByAuthority[alias.AuthorityID], &AliasPayload{
			ID:            alias.ID,
			AliasText:     alias.AliasText,
			NormalizedKey: alias.NormalizedKey,
			Confidence:    alias.Confidence,
		})
	}

	payload := make([]*AuthorityPayload, 0, len(authorities))
	for _, authority := range authorities {
		payload = append(payload, convertAuthority(authority, aliasesByAuthority[authority.ID]))
	}
	return c.JSON(http.StatusOK, payload)
}

func (s *APIV1Service) CreateAuthority(c echo.Context) error {
	ctx := c.Request().Context()

	request := &CreateAuthorityRequest{}
	if err := c.Bind(request); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed request body")
	}

	authority, err := s.TagAuthority.CreateAuthority(ctx,
		request.CanonicalName,
		store.AuthorityCategory(request.Category),
		request.Description,
		convertAliasInputs(request.Aliases),
	)
	if err != nil {
		return mapServiceError(err)
	}

	aliases, err := s.Store.ListAliases(ctx, &store.FindAuthorityAlias{AuthorityID: &authority.ID})
	if err != nil {
		return mapServiceError(err)
	}
	payload := make([]*AliasPayload, 0, len(aliases))
	for _, alias := range aliases {
		payload = append(payload, &AliasPayload{
			ID:            alias.ID,
			AliasText:     alias.AliasText,
			NormalizedKey: alias.NormalizedKey,
			Confidence:    alias.Confidence,
		})
	}
	return c.JSON(http.StatusCreated, convertAuthority(authority, payload))
}

func (s *APIV1Service) AddAliases(c echo.Context) error {
	ctx := c.Request().Context()
	uid := c.Param("uid")

	request := &AddAliasesRequest{}
	if err := c.Bind(request); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed request body")
	}

	created, err := s.TagAuthority.AddAliases(ctx, uid, convertAliasInputs(request.Aliases))
	if err != nil {
		return mapServiceError(err)
	}

	payload := make([]*AliasPayload, 0, len(created))
	for _, alias := range created {
		payload = append(payload, &AliasPayload{
			ID:            alias.ID,
			AliasText:     alias.AliasText,
			NormalizedKey: alias.NormalizedKey,
			Confidence:    alias.Confidence,
		})
	}
	return c.JSON(http.StatusCreated, payload)
}

func (s *APIV1Service) DeleteAlias(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := strconv.ParseInt(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid alias id")
	}
	if err := s.TagAuthority.RemoveAlias(ctx, int32(id)); err != nil {
		return mapServiceError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *APIV1Service) DeactivateAuthority(c echo.Context) error {
	ctx := c.Request().Context()

	if err := s.TagAuthority.DeactivateAuthority(ctx, c.Param("uid")); err != nil {
		return mapServiceError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func convertAuthority(authority *store.Authority, aliases []*AliasPayload) *AuthorityPayload {
	if aliases == nil {
		aliases = []*AliasPayload{}
	}
	return &AuthorityPayload{
		UID:           authority.UID,
		RowStatus:     string(authority.RowStatus),
		CanonicalName: authority.CanonicalName,
		Category:      authority.Category,
		Description:   authority.Description,
		CreatedTs:     authority.CreatedTs,
		UpdatedTs:     authority.UpdatedTs,
		Aliases:       aliases,
	}
}

func convertAliasInputs(payloads []AliasInputPayload) []tagauthority.AliasInput {
	inputs := make([]tagauthority.AliasInput, 0, len(payloads))
	for _, payload := range payloads {
		inputs = append(inputs, tagauthority.AliasInput{
			Text:       payload.Text,
			Confidence: payload.Confidence,
		})
	}
	return inputs
}
