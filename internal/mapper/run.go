package mapper

import (
	"github.com/synchrotron/c4c4/internal/model"
)

// MissingShortCode records an entity that needed a synthesized identifier
// because the source carried no short code for it.
type MissingShortCode struct {
	Kind        model.Kind
	Name        string
	SourceID    string
	Synthesized string
}

// DuplicateIdentifier records one collision-resolution event.
type DuplicateIdentifier struct {
	Kind     model.Kind
	Name     string
	Original string
	Final    string
}

// DuplicateRelationship records a suppressed repeat of a relationship triple.
type DuplicateRelationship struct {
	Identifier  string
	Source      string
	Destination string
	Label       string
	FirstLabel  string
}

// SkippedRecord records a source record excluded because it has no usable
// display name.
type SkippedRecord struct {
	Kind     model.Kind
	SourceID string
}

type relationshipKey struct {
	base        string
	source      string
	destination string
}

// Run holds the mutable state of one generation pass: the global identifier
// namespace, the per-source allocation index, the seen-relationship index and
// the diagnostic logs. A Run is owned by exactly one mapping invocation and
// is discarded afterwards; it is never shared or persisted.
type Run struct {
	used     map[string]struct{}
	bySource map[string]string
	seen     map[relationshipKey]string

	MissingShortCodes      []MissingShortCode
	DuplicateIdentifiers   []DuplicateIdentifier
	DuplicateRelationships []DuplicateRelationship
	Skipped                []SkippedRecord
}

func NewRun() *Run {
	return &Run{
		used:     make(map[string]struct{}),
		bySource: make(map[string]string),
		seen:     make(map[relationshipKey]string),
	}
}

// Allocate derives and registers the identifier for one entity. Calls for the
// same (kind, source id) return the stored identifier instead of allocating
// again, so collision resolution runs at most once per source entity.
func (r *Run) Allocate(kind model.Kind, sourceID, displayName, shortCode string) string {
	var key string
	if sourceID != "" {
		key = kind.String() + "\x00" + sourceID
		if id, ok := r.bySource[key]; ok {
			return id
		}
	}
	id := r.Unique(r.Candidate(kind, sourceID, displayName, shortCode), kind, displayName)
	if key != "" {
		r.bySource[key] = id
	}
	return id
}

// Candidate derives the pre-uniqueness identifier candidate: the cleaned,
// lowercased short code when the source supplies one, a fallback synthesized
// from the display name otherwise. Synthesized candidates are logged.
func (r *Run) Candidate(kind model.Kind, sourceID, displayName, shortCode string) string {
	if c := shortCodeCandidate(shortCode); c != "" {
		return c
	}
	c := fallbackCandidate(displayName)
	r.MissingShortCodes = append(r.MissingShortCodes, MissingShortCode{
		Kind:        kind,
		Name:        displayName,
		SourceID:    sourceID,
		Synthesized: c,
	})
	return c
}

// Unique resolves candidate against the run's used-identifier set, appending
// the collision suffix until the result is free, and registers it. Collisions
// are logged with the original and final identifiers.
func (r *Run) Unique(candidate string, kind model.Kind, name string) string {
	if _, taken := r.used[candidate]; !taken {
		r.used[candidate] = struct{}{}
		return candidate
	}
	id := candidate
	for {
		id += collisionSuffix
		if _, taken := r.used[id]; !taken {
			break
		}
	}
	r.DuplicateIdentifiers = append(r.DuplicateIdentifiers, DuplicateIdentifier{
		Kind:     kind,
		Name:     name,
		Original: candidate,
		Final:    id,
	})
	r.used[id] = struct{}{}
	return id
}

// Record registers a relationship triple. It reports false, and logs a
// diagnostic naming both labels, when the same (base identifier, source,
// destination) triple was already seen in this run.
func (r *Run) Record(base, source, destination, label string) bool {
	k := relationshipKey{base: base, source: source, destination: destination}
	if first, ok := r.seen[k]; ok {
		r.DuplicateRelationships = append(r.DuplicateRelationships, DuplicateRelationship{
			Identifier:  base,
			Source:      source,
			Destination: destination,
			Label:       label,
			FirstLabel:  first,
		})
		return false
	}
	r.seen[k] = label
	return true
}

// Skip logs a source record excluded for lack of a usable display name.
func (r *Run) Skip(kind model.Kind, sourceID string) {
	r.Skipped = append(r.Skipped, SkippedRecord{Kind: kind, SourceID: sourceID})
}
