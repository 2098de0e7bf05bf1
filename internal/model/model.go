package model

// Kind classifies the source records that become elements of a generated
// workspace.
type Kind int

const (
	KindTeam Kind = iota
	KindPlatform
	KindApplication
	KindIntegration
)

func (k Kind) String() string {
	switch k {
	case KindTeam:
		return "Team"
	case KindPlatform:
		return "Platform"
	case KindApplication:
		return "Application"
	case KindIntegration:
		return "Integration"
	default:
		return "Unknown"
	}
}

// Entity is a node of the generated model. Its Identifier is assigned exactly
// once by the allocator and is unique across everything produced in the same
// run, relationships included.
type Entity struct {
	Kind Kind

	// SourceID is the opaque id from the metadata source. Empty for entities
	// of an authored static model.
	SourceID string

	DisplayName   string
	CanonicalName string // system name; falls back to DisplayName when empty
	ShortCode     string
	Description   string // sanitized
	Technology    string // container technology / archetype tag

	Identifier string
}

// Label returns the name used in declaration lines: the canonical name when
// present, the display name otherwise.
func (e *Entity) Label() string {
	if e.CanonicalName != "" {
		return e.CanonicalName
	}
	return e.DisplayName
}

// Relationship is a directed edge between two allocated entities. Source and
// Destination hold finalized entity identifiers.
type Relationship struct {
	Identifier string

	// Base is the pre-uniqueness identifier; it is the identifier component
	// of the de-duplication triple.
	Base string

	Source      string
	Destination string
	Label       string
	Technology  string
	Tag         string
}

// Platform is one software system together with its applications, in
// discovery order.
type Platform struct {
	Entity       *Entity
	Applications []*Entity
}

// Model is the allocation-complete input to the DSL assembler. Slice order is
// emission order: identical input produces byte-identical output.
type Model struct {
	Teams             []*Entity
	Platforms         []*Platform
	TeamRelationships []*Relationship
	AppRelationships  []*Relationship
}

// Relationships returns the total number of relationship declarations.
func (m *Model) Relationships() int {
	return len(m.TeamRelationships) + len(m.AppRelationships)
}

// Applications returns the total number of applications across all platforms.
func (m *Model) Applications() int {
	n := 0
	for _, p := range m.Platforms {
		n += len(p.Applications)
	}
	return n
}
