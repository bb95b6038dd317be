package tagauthority

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/lithammer/shortuuid/v4"
	"github.com/pkg/errors"
	"golang.org/x/sync/semaphore"

	"github.com/posawiki/posawiki/store"
)

// maxConcurrentAnalyses bounds in-flight coverage computations. Reports
// are read-only but hold the whole corpus in memory while running.
const maxConcurrentAnalyses = 4

// AliasInput is one curator-submitted alias in a batch.
type AliasInput struct {
	Text       string
	Confidence float64
}

// Service owns the authority table. All mutations run under a single
// lock so a conflict check and the write it guards see the same index
// state; reads resolve against immutable snapshots and never block.
type Service struct {
	store *store.Store

	mu      sync.Mutex
	idx     atomic.Pointer[Index]
	version atomic.Int64
	sem     *semaphore.Weighted
}

// NewService builds the initial index snapshot from the store.
func NewService(ctx context.Context, s *store.Store) (*Service, error) {
	service := &Service{
		store: s,
		sem:   semaphore.NewWeighted(maxConcurrentAnalyses),
	}
	if err := service.rebuildIndex(ctx); err != nil {
		return nil, errors.Wrap(err, "failed to build authority index")
	}
	return service, nil
}

// Index returns the current snapshot. Callers resolving many tags
// should grab the snapshot once and reuse it.
func (s *Service) Index() *Index {
	return s.idx.Load()
}

// CreateAuthority validates and creates an authority together with its
// alias batch in one transaction. The canonical name is always
// registered as an implicit alias, so an active authority is matchable
// by at least its own name.
func (s *Service) CreateAuthority(ctx context.Context, canonicalName string, category store.AuthorityCategory, description string, aliases []AliasInput) (*store.Authority, error) {
	canonicalName = strings.TrimSpace(canonicalName)
	if canonicalName == "" {
		return nil, &ValidationError{Field: "canonicalName", Reason: "must not be empty"}
	}
	if !store.IsValidAuthorityCategory(category) {
		return nil, &ValidationError{Field: "category", Reason: "unknown category " + string(category)}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	normal := store.Normal
	existing, err := s.store.ListAuthorities(ctx, &store.FindAuthority{RowStatus: &normal})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list authorities")
	}
	for _, authority := range existing {
		if strings.EqualFold(authority.CanonicalName, canonicalName) {
			return nil, &DuplicateNameError{CanonicalName: canonicalName, ExistingUID: authority.UID}
		}
	}

	batch := append([]AliasInput{{Text: canonicalName, Confidence: 1.0}}, aliases...)
	creates, err := s.validateAliasBatch(batch, nil)
	if err != nil {
		return nil, err
	}

	create := &store.Authority{
		UID:           shortuuid.New(),
		CanonicalName: canonicalName,
		Category:      category,
		Description:   description,
	}
	authority, err := s.store.CreateAuthority(ctx, create, creates)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create authority")
	}
	if err := s.rebuildIndex(ctx); err != nil {
		return nil, err
	}
	slog.Info("authority created",
		slog.String("uid", authority.UID),
		slog.String("name", authority.CanonicalName),
		slog.Int("aliases", len(creates)))
	return authority, nil
}

// AddAliases applies a curator's alias batch to one authority. The
// batch is all-or-nothing: any conflict rejects every alias in it.
// Aliases whose key the same authority already owns are silent no-ops.
func (s *Service) AddAliases(ctx context.Context, authorityUID string, aliases []AliasInput) ([]*store.AuthorityAlias, error) {
	if len(aliases) == 0 {
		return []*store.AuthorityAlias{}, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	authority, err := s.getActiveAuthority(ctx, authorityUID)
	if err != nil {
		return nil, err
	}

	creates, err := s.validateAliasBatch(aliases, authority)
	if err != nil {
		return nil, err
	}
	for _, create := range creates {
		create.AuthorityID = authority.ID
	}
	if len(creates) == 0 {
		return []*store.AuthorityAlias{}, nil
	}

	created, err := s.store.CreateAliases(ctx, creates)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create aliases")
	}
	if err := s.rebuildIndex(ctx); err != nil {
		return nil, err
	}
	slog.Info("aliases added",
		slog.String("authority", authority.CanonicalName),
		slog.Int("count", len(created)))
	return created, nil
}

// RemoveAlias deletes one alias by id.
func (s *Service) RemoveAlias(ctx context.Context, aliasID int32) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.DeleteAlias(ctx, &store.DeleteAuthorityAlias{ID: aliasID}); err != nil {
		return errors.Wrap(err, "failed to delete alias")
	}
	return s.rebuildIndex(ctx)
}

// DeactivateAuthority archives an authority. Its aliases are kept for
// history but drop out of the index, freeing their keys. Idempotent.
func (s *Service) DeactivateAuthority(ctx context.Context, authorityUID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	authority, err := s.store.GetAuthority(ctx, &store.FindAuthority{UID: &authorityUID})
	if err != nil {
		return errors.Wrap(err, "failed to get authority")
	}
	if authority == nil {
		return &ValidationError{Field: "authorityUID", Reason: "no such authority " + authorityUID}
	}
	if authority.RowStatus == store.Archived {
		return nil
	}

	archived := store.Archived
	now := time.Now().Unix()
	if err := s.store.UpdateAuthority(ctx, &store.UpdateAuthority{
		ID:        authority.ID,
		UpdatedTs: &now,
		RowStatus: &archived,
	}); err != nil {
		return errors.Wrap(err, "failed to archive authority")
	}
	if err := s.rebuildIndex(ctx); err != nil {
		return err
	}
	slog.Info("authority deactivated", slog.String("uid", authority.UID))
	return nil
}

// Analyze recomputes the coverage report over the current corpus and
// the current snapshot. Always a full pass; coverage is never patched
// incrementally after a mutation.
func (s *Service) Analyze(ctx context.Context) (*CoverageReport, error) {
	if err := s.sem.Acquire(ctx, 1); err != nil {
		return nil, errors.Wrap(err, "failed to acquire analysis slot")
	}
	defer s.sem.Release(1)

	idx := s.idx.Load()
	corpus, err := s.store.ListTagCorpus(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load tag corpus")
	}
	return Analyze(corpus, idx), nil
}

// getActiveAuthority is a mutation-path helper; callers hold s.mu.
func (s *Service) getActiveAuthority(ctx context.Context, uid string) (*store.Authority, error) {
	normal := store.Normal
	authority, err := s.store.GetAuthority(ctx, &store.FindAuthority{UID: &uid, RowStatus: &normal})
	if err != nil {
		return nil, errors.Wrap(err, "failed to get authority")
	}
	if authority == nil {
		return nil, &ValidationError{Field: "authorityUID", Reason: "no active authority " + uid}
	}
	return authority, nil
}

// validateAliasBatch normalizes and conflict-checks a batch against the
// current index before anything is written. owner is nil when the batch
// belongs to an authority being created. Keys already owned by the same
// authority, and repeats within the batch, are dropped as no-ops.
func (s *Service) validateAliasBatch(batch []AliasInput, owner *store.Authority) ([]*store.AuthorityAlias, error) {
	idx := s.idx.Load()
	seen := make(map[string]struct{}, len(batch))
	creates := make([]*store.AuthorityAlias, 0, len(batch))

	for _, input := range batch {
		key := Normalize(input.Text)
		if key == "" {
			return nil, &ValidationError{Field: "aliasText", Reason: "normalizes to the empty key: " + input.Text}
		}
		confidence := input.Confidence
		if confidence == 0 {
			confidence = 1.0
		}
		if confidence < 0 || confidence > 1 {
			return nil, &ValidationError{Field: "confidence", Reason: "must be in [0,1]"}
		}

		if claimed, ok := idx.Lookup(key); ok {
			if owner != nil && claimed.ID == owner.ID {
				continue
			}
			return nil, &AliasConflictError{
				AliasText:     input.Text,
				NormalizedKey: key,
				ClaimedByUID:  claimed.UID,
				ClaimedByName: claimed.CanonicalName,
			}
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		creates = append(creates, &store.AuthorityAlias{
			AliasText:     input.Text,
			NormalizedKey: key,
			Confidence:    confidence,
		})
	}
	return creates, nil
}

// rebuildIndex swaps in a fresh snapshot; callers hold s.mu except
// during construction.
func (s *Service) rebuildIndex(ctx context.Context) error {
	idx, err := BuildIndex(ctx, s.store, s.version.Add(1))
	if err != nil {
		return err
	}
	s.idx.Store(idx)
	slog.Debug("authority index rebuilt",
		slog.Int64("version", idx.Version()),
		slog.Int("keys", idx.Size()))
	return nil
}
