package sqlite

import (
	"context"
	"fmt"
	"strings"

	"github.com/posawiki/posawiki/store"
)

func (d *DB) CreateDog(ctx context.Context, create *store.Dog) (*store.Dog, error) {
	stmt := `INSERT INTO dog (uid, name, birth_date, breed_primary, breed_secondary, color, description, notes)
		VALUES (` + placeholders(8) + `)
		RETURNING id, created_ts`
	if err := d.db.QueryRowContext(ctx, stmt,
		create.UID, create.Name, create.BirthDate, create.BreedPrimary, create.BreedSecondary,
		create.Color, create.Description, create.Notes,
	).Scan(
		&create.ID,
		&create.CreatedTs,
	); err != nil {
		return nil, fmt.Errorf("failed to create dog: %w", err)
	}
	return create, nil
}

func (d *DB) ListDogs(ctx context.Context, find *store.FindDog) ([]*store.Dog, error) {
	where, args := []string{"1 = 1"}, []any{}

	if v := find.ID; v != nil {
		where, args = append(where, "dog.id = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.UID; v != nil {
		where, args = append(where, "dog.uid = "+placeholder(len(args)+1)), append(args, *v)
	}

	query := `
		SELECT id, uid, created_ts, name, birth_date, breed_primary, breed_secondary, color, description, notes
		FROM dog
		WHERE ` + strings.Join(where, " AND ") + ` ORDER BY dog.name ASC`

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query dogs: %w", err)
	}
	defer rows.Close()

	list := make([]*store.Dog, 0)
	for rows.Next() {
		var dog store.Dog
		if err := rows.Scan(
			&dog.ID,
			&dog.UID,
			&dog.CreatedTs,
			&dog.Name,
			&dog.BirthDate,
			&dog.BreedPrimary,
			&dog.BreedSecondary,
			&dog.Color,
			&dog.Description,
			&dog.Notes,
		); err != nil {
			return nil, fmt.Errorf("failed to scan dog: %w", err)
		}
		list = append(list, &dog)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate dogs: %w", err)
	}
	return list, nil
}

func (d *DB) DeleteDog(ctx context.Context, delete *store.DeleteDog) error {
	stmt := `DELETE FROM dog WHERE id = ` + placeholder(1)
	if _, err := d.db.ExecContext(ctx, stmt, delete.ID); err != nil {
		return fmt.Errorf("failed to delete dog: %w", err)
	}
	return nil
}
