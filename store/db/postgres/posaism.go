package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/posawiki/posawiki/store"
)

func (d *DB) CreatePosaism(ctx context.Context, create *store.Posaism) (*store.Posaism, error) {
	stmt := `INSERT INTO posaism (uid, name, description, example_video_uid)
		VALUES (` + placeholders(4) + `)
		RETURNING id, created_ts`
	if err := d.db.QueryRowContext(ctx, stmt,
		create.UID, create.Name, create.Description, create.ExampleVideoUID,
	).Scan(
		&create.ID,
		&create.CreatedTs,
	); err != nil {
		return nil, fmt.Errorf("failed to create posaism: %w", err)
	}
	return create, nil
}

func (d *DB) ListPosaisms(ctx context.Context, find *store.FindPosaism) ([]*store.Posaism, error) {
	where, args := []string{"1 = 1"}, []any{}

	if v := find.ID; v != nil {
		where, args = append(where, "posaism.id = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.UID; v != nil {
		where, args = append(where, "posaism.uid = "+placeholder(len(args)+1)), append(args, *v)
	}

	query := `
		SELECT id, uid, created_ts, name, description, example_video_uid
		FROM posaism
		WHERE ` + strings.Join(where, " AND ") + ` ORDER BY posaism.name ASC`

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query posaisms: %w", err)
	}
	defer rows.Close()

	list := make([]*store.Posaism, 0)
	for rows.Next() {
		var posaism store.Posaism
		if err := rows.Scan(
			&posaism.ID,
			&posaism.UID,
			&posaism.CreatedTs,
			&posaism.Name,
			&posaism.Description,
			&posaism.ExampleVideoUID,
		); err != nil {
			return nil, fmt.Errorf("failed to scan posaism: %w", err)
		}
		list = append(list, &posaism)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate posaisms: %w", err)
	}
	return list, nil
}

func (d *DB) DeletePosaism(ctx context.Context, delete *store.DeletePosaism) error {
	stmt := `DELETE FROM posaism WHERE id = ` + placeholder(1)
	if _, err := d.db.ExecContext(ctx, stmt, delete.ID); err != nil {
		return fmt.Errorf("failed to delete posaism: %w", err)
	}
	return nil
}
