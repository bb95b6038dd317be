package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/posawiki/posawiki/store"
)

func (d *DB) CreatePerson(ctx context.Context, create *store.Person) (*store.Person, error) {
	aliases, err := marshalStringList(create.Aliases)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal person aliases: %w", err)
	}

	stmt := `INSERT INTO person (uid, canonical_name, youtube_handle, youtube_url, aliases, bio, notes)
		VALUES (` + placeholders(7) + `)
		RETURNING id, created_ts`
	if err := d.db.QueryRowContext(ctx, stmt,
		create.UID, create.CanonicalName, create.YoutubeHandle, create.YoutubeURL, aliases, create.Bio, create.Notes,
	).Scan(
		&create.ID,
		&create.CreatedTs,
	); err != nil {
		return nil, fmt.Errorf("failed to create person: %w", err)
	}
	return create, nil
}

func (d *DB) ListPeople(ctx context.Context, find *store.FindPerson) ([]*store.Person, error) {
	where, args := []string{"1 = 1"}, []any{}

	if v := find.ID; v != nil {
		where, args = append(where, "person.id = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.UID; v != nil {
		where, args = append(where, "person.uid = "+placeholder(len(args)+1)), append(args, *v)
	}

	query := `
		SELECT id, uid, created_ts, canonical_name, youtube_handle, youtube_url, aliases, bio, notes
		FROM person
		WHERE ` + strings.Join(where, " AND ") + ` ORDER BY person.canonical_name ASC`

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query people: %w", err)
	}
	defer rows.Close()

	list := make([]*store.Person, 0)
	for rows.Next() {
		var person store.Person
		var aliases string
		if err := rows.Scan(
			&person.ID,
			&person.UID,
			&person.CreatedTs,
			&person.CanonicalName,
			&person.YoutubeHandle,
			&person.YoutubeURL,
			&aliases,
			&person.Bio,
			&person.Notes,
		); err != nil {
			return nil, fmt.Errorf("failed to scan person: %w", err)
		}
		if person.Aliases, err = unmarshalStringList(aliases); err != nil {
			return nil, fmt.Errorf("failed to unmarshal person aliases: %w", err)
		}
		list = append(list, &person)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate people: %w", err)
	}
	return list, nil
}

func (d *DB) DeletePerson(ctx context.Context, delete *store.DeletePerson) error {
	stmt := `DELETE FROM person WHERE id = ` + placeholder(1)
	if _, err := d.db.ExecContext(ctx, stmt, delete.ID); err != nil {
		return fmt.Errorf("failed to delete person: %w", err)
	}
	return nil
}
