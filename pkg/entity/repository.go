// Package entity is a flat in-memory entity repository with primitive
// value-operator queries. It shares the operator vocabulary of
// pkg/match with the graph repository but knows nothing about relations.
package entity

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/relgraph/relgraph/pkg/match"
)

// Common repository errors.
var (
	// ErrNotFound is returned when an entity id has no record.
	ErrNotFound = errors.New("entity not found")
	// ErrAlreadyExists is returned when creating with an explicit id
	// that is already stored.
	ErrAlreadyExists = errors.New("entity already exists")
	// ErrValidation is returned for malformed selectors.
	ErrValidation = errors.New("validation failed")
)

// Entity is a flat record; the "id" field identifies it.
type Entity map[string]any

// Repository stores entities by id with insertion-order iteration.
type Repository struct {
	order []string
	byID  map[string]Entity
}

// New returns an empty repository.
func New() *Repository {
	return &Repository{byID: make(map[string]Entity)}
}

// Create stores an entity. A missing id is generated; an explicit id must
// be unused. Returns a copy of the stored record.
func (r *Repository) Create(input Entity) (Entity, error) {
	id, ok := input["id"].(string)
	if !ok || id == "" {
		id = uuid.NewString()
	}
	if _, exists := r.byID[id]; exists {
		return nil, fmt.Errorf("%w: %s", ErrAlreadyExists, id)
	}
	record := cloneEntity(input)
	record["id"] = id
	r.byID[id] = record
	r.order = append(r.order, id)
	return cloneEntity(record), nil
}

// Find resolves a selector to entities: an id, a list of ids, a query of
// value conditions, or a list of queries (disjunction, concatenated).
func (r *Repository) Find(selector any) ([]Entity, error) {
	records, err := r.resolve(selector)
	if err != nil {
		return nil, err
	}
	out := make([]Entity, len(records))
	for i, record := range records {
		out[i] = cloneEntity(record)
	}
	return out, nil
}

// Update shallow-merges the patch into every matched entity; the id field
// is immutable. Returns copies of the updated records.
func (r *Repository) Update(selector any, patch Entity) ([]Entity, error) {
	records, err := r.resolve(selector)
	if err != nil {
		return nil, err
	}
	out := make([]Entity, len(records))
	for i, record := range records {
		for k, v := range patch {
			if k == "id" {
				continue
			}
			record[k] = v
		}
		out[i] = cloneEntity(record)
	}
	return out, nil
}

// Delete removes every matched entity and returns the removed records.
func (r *Repository) Delete(selector any) ([]Entity, error) {
	records, err := r.resolve(selector)
	if err != nil {
		return nil, err
	}
	out := make([]Entity, len(records))
	for i, record := range records {
		id := record["id"].(string)
		delete(r.byID, id)
		for j, existing := range r.order {
			if existing == id {
				r.order = append(r.order[:j], r.order[j+1:]...)
				break
			}
		}
		out[i] = record
	}
	return out, nil
}

func (r *Repository) resolve(selector any) ([]Entity, error) {
	switch sel := selector.(type) {
	case string:
		record, ok := r.byID[sel]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, sel)
		}
		return []Entity{record}, nil
	case []string:
		out := make([]Entity, 0, len(sel))
		for _, id := range sel {
			record, ok := r.byID[id]
			if !ok {
				return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
			}
			out = append(out, record)
		}
		return out, nil
	case map[string]any:
		return r.query(sel)
	case Entity:
		return r.query(sel)
	case []map[string]any:
		var out []Entity
		for _, q := range sel {
			matched, err := r.query(q)
			if err != nil {
				return nil, err
			}
			out = append(out, matched...)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: selector must be an id, id list, query, or query list, got %T", ErrValidation, selector)
	}
}

// query keeps the entities matching every condition, in insertion order.
func (r *Repository) query(q map[string]any) ([]Entity, error) {
	var out []Entity
	for _, id := range r.order {
		record := r.byID[id]
		matched := true
		for field, cond := range q {
			ok, err := match.Value(record[field], cond)
			if err != nil {
				if errors.Is(err, match.ErrInvalidOperator) {
					return nil, fmt.Errorf("%w: field %q: %v", ErrValidation, field, err)
				}
				return nil, fmt.Errorf("field %q: %w", field, err)
			}
			if !ok {
				matched = false
				break
			}
		}
		if matched {
			out = append(out, record)
		}
	}
	return out, nil
}

func cloneEntity(e Entity) Entity {
	out := make(Entity, len(e))
	for k, v := range e {
		out[k] = v
	}
	return out
}
