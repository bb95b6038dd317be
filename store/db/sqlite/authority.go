package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/posawiki/posawiki/store"
)

func (d *DB) CreateAuthority(ctx context.Context, create *store.Authority, aliases []*store.AuthorityAlias) (*store.Authority, error) {
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt := `INSERT INTO authority (uid, canonical_name, category, description)
		VALUES (` + placeholders(4) + `)
		RETURNING id, created_ts, updated_ts, row_status`
	if err := tx.QueryRowContext(ctx, stmt,
		create.UID, create.CanonicalName, create.Category, create.Description,
	).Scan(
		&create.ID,
		&create.CreatedTs,
		&create.UpdatedTs,
		&create.RowStatus,
	); err != nil {
		return nil, fmt.Errorf("failed to create authority: %w", err)
	}

	for _, alias := range aliases {
		alias.AuthorityID = create.ID
		if err := createAliasTx(ctx, tx, alias); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit authority creation: %w", err)
	}
	return create, nil
}

func (d *DB) ListAuthorities(ctx context.Context, find *store.FindAuthority) ([]*store.Authority, error) {
	where, args := []string{"1 = 1"}, []any{}

	if v := find.ID; v != nil {
		where, args = append(where, "authority.id = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.UID; v != nil {
		where, args = append(where, "authority.uid = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.RowStatus; v != nil {
		where, args = append(where, "authority.row_status = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.Category; v != nil {
		where, args = append(where, "authority.category = "+placeholder(len(args)+1)), append(args, *v)
	}

	query := `
		SELECT
			id, uid, row_status, created_ts, updated_ts,
			canonical_name, category, description
		FROM authority
		WHERE ` + strings.Join(where, " AND ") + ` ORDER BY authority.canonical_name ASC`

	if find.Limit != nil {
		query = fmt.Sprintf("%s LIMIT %d", query, *find.Limit)
		if find.Offset != nil {
			query = fmt.Sprintf("%s OFFSET %d", query, *find.Offset)
		}
	}

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query authorities: %w", err)
	}
	defer rows.Close()

	list := make([]*store.Authority, 0)
	for rows.Next() {
		var authority store.Authority
		if err := rows.Scan(
			&authority.ID,
			&authority.UID,
			&authority.RowStatus,
			&authority.CreatedTs,
			&authority.UpdatedTs,
			&authority.CanonicalName,
			&authority.Category,
			&authority.Description,
		); err != nil {
			return nil, fmt.Errorf("failed to scan authority: %w", err)
		}
		list = append(list, &authority)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate authorities: %w", err)
	}
	return list, nil
}

func (d *DB) UpdateAuthority(ctx context.Context, update *store.UpdateAuthority) error {
	set, args := []string{}, []any{}

	if v := update.UpdatedTs; v != nil {
		set, args = append(set, "updated_ts = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := update.RowStatus; v != nil {
		set, args = append(set, "row_status = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := update.Description; v != nil {
		set, args = append(set, "description = "+placeholder(len(args)+1)), append(args, *v)
	}

	if len(set) == 0 {
		return nil
	}

	args = append(args, update.ID)
	stmt := `UPDATE authority SET ` + strings.Join(set, ", ") + ` WHERE id = ` + placeholder(len(args))
	if _, err := d.db.ExecContext(ctx, stmt, args...); err != nil {
		return fmt.Errorf("failed to update authority: %w", err)
	}
	return nil
}

func (d *DB) CreateAliases(ctx context.Context, creates []*store.AuthorityAlias) ([]*store.AuthorityAlias, error) {
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, alias := range creates {
		if err := createAliasTx(ctx, tx, alias); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit alias batch: %w", err)
	}
	return creates, nil
}

func createAliasTx(ctx context.Context, tx *sql.Tx, create *store.AuthorityAlias) error {
	stmt := `INSERT INTO authority_alias (authority_id, alias_text, normalized_key, confidence)
		VALUES (` + placeholders(4) + `)
		RETURNING id, created_ts`
	if err := tx.QueryRowContext(ctx, stmt,
		create.AuthorityID, create.AliasText, create.NormalizedKey, create.Confidence,
	).Scan(
		&create.ID,
		&create.CreatedTs,
	); err != nil {
		return fmt.Errorf("failed to create alias: %w", err)
	}
	return nil
}

func (d *DB) ListAliases(ctx context.Context, find *store.FindAuthorityAlias) ([]*store.AuthorityAlias, error) {
	where, args := []string{"1 = 1"}, []any{}

	if v := find.ID; v != nil {
		where, args = append(where, "authority_alias.id = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.AuthorityID; v != nil {
		where, args = append(where, "authority_alias.authority_id = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.NormalizedKey; v != nil {
		where, args = append(where, "authority_alias.normalized_key = "+placeholder(len(args)+1)), append(args, *v)
	}

	query := `
		SELECT id, authority_id, created_ts, alias_text, normalized_key, confidence
		FROM authority_alias
		WHERE ` + strings.Join(where, " AND ") + ` ORDER BY authority_alias.id ASC`

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query aliases: %w", err)
	}
	defer rows.Close()

	list := make([]*store.AuthorityAlias, 0)
	for rows.Next() {
		var alias store.AuthorityAlias
		if err := rows.Scan(
			&alias.ID,
			&alias.AuthorityID,
			&alias.CreatedTs,
			&alias.AliasText,
			&alias.NormalizedKey,
			&alias.Confidence,
		); err != nil {
			return nil, fmt.Errorf("failed to scan alias: %w", err)
		}
		list = append(list, &alias)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate aliases: %w", err)
	}
	return list, nil
}

func (d *DB) DeleteAlias(ctx context.Context, delete *store.DeleteAuthorityAlias) error {
	stmt := `DELETE FROM authority_alias WHERE id = ` + placeholder(1)
	if _, err := d.db.ExecContext(ctx, stmt, delete.ID); err != nil {
		return fmt.Errorf("failed to delete alias: %w", err)
	}
	return nil
}
