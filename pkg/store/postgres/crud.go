package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/shulgaalexey/robo-peoples-person/pkg/model"
	"github.com/shulgaalexey/robo-peoples-person/pkg/store"
)

const personColumns = `id, name, COALESCE(email, ''), role, department, location,
	expertise, comm_preference, notes, attributes, created_at, last_interaction`

func scanPerson(row pgx.Row) (*model.Person, error) {
	p := &model.Person{}
	var attributes []byte
	var lastInteraction *time.Time
	var pref string
	err := row.Scan(
		&p.ID, &p.Name, &p.Email, &p.Role, &p.Department, &p.Location,
		&p.Expertise, &pref, &p.Notes, &attributes, &p.CreatedAt, &lastInteraction,
	)
	if err != nil {
		return nil, err
	}
	p.CommPreference = model.CommPreference(pref)
	if lastInteraction != nil {
		p.LastInteraction = *lastInteraction
	}
	if len(attributes) > 0 {
		if err := json.Unmarshal(attributes, &p.Attributes); err != nil {
			return nil, fmt.Errorf("failed to decode attributes: %w", err)
		}
	}
	return p, nil
}

func (s *Store) GetPerson(ctx context.Context, id string) (*model.Person, error) {
	ctx, cancel := s.queryCtx(ctx)
	defer cancel()

	query := `SELECT ` + personColumns + ` FROM people WHERE id = $1`
	p, err := scanPerson(s.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, mapError("GetPerson", "person", id, err)
	}
	return p, nil
}

func (s *Store) GetPersonByEmail(ctx context.Context, email string) (*model.Person, error) {
	ctx, cancel := s.queryCtx(ctx)
	defer cancel()

	query := `SELECT ` + personColumns + ` FROM people WHERE LOWER(email) = LOWER($1)`
	p, err := scanPerson(s.pool.QueryRow(ctx, query, email))
	if err != nil {
		return nil, mapError("GetPersonByEmail", "person", email, err)
	}
	return p, nil
}

func (s *Store) FindPeople(ctx context.Context, filter store.PersonFilter) ([]*model.Person, error) {
	ctx, cancel := s.queryCtx(ctx)
	defer cancel()

	query := `SELECT ` + personColumns + ` FROM people WHERE TRUE`
	args := []any{}
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if len(filter.IDs) > 0 {
		query += ` AND id = ANY(` + arg(filter.IDs) + `)`
	}
	if len(filter.Departments) > 0 {
		query += ` AND department = ANY(` + arg(filter.Departments) + `)`
	}
	if filter.Expertise != "" {
		query += ` AND EXISTS (SELECT 1 FROM unnest(expertise) AS e WHERE e ILIKE '%' || ` + arg(filter.Expertise) + ` || '%')`
	}
	if !filter.LastInteractionSince.IsZero() {
		query += ` AND last_interaction >= ` + arg(filter.LastInteractionSince)
	}
	query += ` ORDER BY id`

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, mapError("FindPeople", "person", "", err)
	}
	defer rows.Close()

	out := make([]*model.Person, 0)
	for rows.Next() {
		p, err := scanPerson(rows)
		if err != nil {
			return nil, mapError("FindPeople", "person", "", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError("FindPeople", "person", "", err)
	}
	return out, nil
}

func (s *Store) FindRelationships(ctx context.Context, scope store.RelationshipScope) ([]*model.Relationship, error) {
	ctx, cancel := s.queryCtx(ctx)
	defer cancel()

	query := `SELECT from_id, to_id, kind, bidirectional, strength, context, frequency, created_at
		FROM relationships`
	args := []any{}
	if len(scope.PersonIDs) > 0 {
		query += ` WHERE from_id = ANY($1) AND to_id = ANY($1)`
		args = append(args, scope.PersonIDs)
	}
	query += ` ORDER BY from_id, to_id, kind`

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, mapError("FindRelationships", "relationship", "", err)
	}
	defer rows.Close()

	out := make([]*model.Relationship, 0)
	for rows.Next() {
		r := &model.Relationship{}
		var kind string
		if err := rows.Scan(&r.FromID, &r.ToID, &kind, &r.Bidirectional,
			&r.Strength, &r.Context, &r.Frequency, &r.CreatedAt); err != nil {
			return nil, mapError("FindRelationships", "relationship", "", err)
		}
		r.Kind = model.RelationshipKind(kind)
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError("FindRelationships", "relationship", "", err)
	}
	return out, nil
}

func (s *Store) findInteractions(ctx context.Context, query string, args ...any) ([]*model.Interaction, error) {
	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, mapError("FindInteractions", "interaction", "", err)
	}
	defer rows.Close()

	out := make([]*model.Interaction, 0)
	for rows.Next() {
		i := &model.Interaction{}
		var kind string
		if err := rows.Scan(&i.ID, &i.PersonID, &kind, &i.Topic, &i.Outcome,
			&i.Notes, &i.Participants, &i.OccurredAt); err != nil {
			return nil, mapError("FindInteractions", "interaction", "", err)
		}
		i.Kind = model.InteractionKind(kind)
		out = append(out, i)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError("FindInteractions", "interaction", "", err)
	}
	return out, nil
}

const interactionColumns = `id, person_id, kind, topic, outcome, notes, participants, occurred_at`

func (s *Store) FindInteractions(ctx context.Context, personID string, window model.Window) ([]*model.Interaction, error) {
	ctx, cancel := s.queryCtx(ctx)
	defer cancel()

	query := `SELECT ` + interactionColumns + ` FROM interactions
		WHERE person_id = $1 AND occurred_at >= $2`
	args := []any{personID, window.Since}
	if !window.Until.IsZero() {
		query += ` AND occurred_at < $3`
		args = append(args, window.Until)
	}
	query += ` ORDER BY occurred_at, id`
	return s.findInteractions(ctx, query, args...)
}

func (s *Store) FindInteractionsSince(ctx context.Context, since time.Time) ([]*model.Interaction, error) {
	ctx, cancel := s.queryCtx(ctx)
	defer cancel()

	query := `SELECT ` + interactionColumns + ` FROM interactions
		WHERE occurred_at >= $1 ORDER BY occurred_at, id`
	return s.findInteractions(ctx, query, since)
}

func (s *Store) CreatePerson(ctx context.Context, p *model.Person) error {
	if err := model.ValidatePerson(p); err != nil {
		return err
	}
	p.NormalizeExpertise()

	var attributes []byte
	if len(p.Attributes) > 0 {
		var err error
		attributes, err = json.Marshal(p.Attributes)
		if err != nil {
			return fmt.Errorf("failed to marshal attributes: %w", err)
		}
	}
	var email *string
	if p.Email != "" {
		email = &p.Email
	}
	var lastInteraction *time.Time
	if !p.LastInteraction.IsZero() {
		lastInteraction = &p.LastInteraction
	}

	query := `
		INSERT INTO people (id, name, email, role, department, location,
			expertise, comm_preference, notes, attributes, created_at, last_interaction)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	_, err := s.pool.Exec(ctx, query,
		p.ID, p.Name, email, p.Role, p.Department, p.Location,
		p.Expertise, string(p.CommPreference), p.Notes, attributes,
		p.CreatedAt, lastInteraction,
	)
	return mapError("CreatePerson", "person", p.ID, err)
}

func (s *Store) CreateRelationship(ctx context.Context, r *model.Relationship) error {
	if err := model.ValidateRelationship(r); err != nil {
		return err
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO relationships (from_id, to_id, kind, bidirectional,
			strength, context, frequency, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := s.pool.Exec(ctx, query,
		r.FromID, r.ToID, string(r.Kind), r.Bidirectional,
		r.Strength, r.Context, r.Frequency, r.CreatedAt,
	)
	return mapError("CreateRelationship", "relationship", r.FromID+"->"+r.ToID, err)
}

func (s *Store) CreateInteraction(ctx context.Context, i *model.Interaction) error {
	if err := model.ValidateInteraction(i); err != nil {
		return err
	}

	// The insert and the last-interaction bump commit together so a
	// reader never sees one without the other.
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return mapError("CreateInteraction", "interaction", i.ID, err)
	}
	defer tx.Rollback(ctx)

	insert := `
		INSERT INTO interactions (id, person_id, kind, topic, outcome, notes, participants, occurred_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	if _, err := tx.Exec(ctx, insert,
		i.ID, i.PersonID, string(i.Kind), i.Topic, i.Outcome,
		i.Notes, i.Participants, i.OccurredAt,
	); err != nil {
		return mapError("CreateInteraction", "interaction", i.ID, err)
	}

	bump := `
		UPDATE people SET last_interaction = GREATEST(COALESCE(last_interaction, 'epoch'::timestamptz), $2)
		WHERE id = $1
	`
	tag, err := tx.Exec(ctx, bump, i.PersonID, i.OccurredAt)
	if err != nil {
		return mapError("CreateInteraction", "person", i.PersonID, err)
	}
	if tag.RowsAffected() == 0 {
		return store.PersonNotFoundError("CreateInteraction", i.PersonID)
	}

	return mapError("CreateInteraction", "interaction", i.ID, tx.Commit(ctx))
}
