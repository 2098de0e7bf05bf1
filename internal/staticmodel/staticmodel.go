// Package staticmodel holds the hand-authored workspace model: a YAML
// definition of teams, platforms, applications and their relationships that
// renders through the same mapping engine as a fetched platform. Entity codes
// are authoritative short codes, so authored identifiers stay stable.
package staticmodel

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/synchrotron/c4c4/internal/mapper"
	"github.com/synchrotron/c4c4/internal/model"
)

//go:embed default_model.yaml
var defaultModel []byte

// Definition is the YAML shape of an authored model.
type Definition struct {
	Workspace     WorkspaceDefinition      `yaml:"workspace"`
	Teams         []TeamDefinition         `yaml:"teams"`
	Platforms     []PlatformDefinition     `yaml:"platforms"`
	Relationships []RelationshipDefinition `yaml:"relationships"`
}

type WorkspaceDefinition struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

type TeamDefinition struct {
	Code        string `yaml:"code"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Tag         string `yaml:"tag"`
}

type PlatformDefinition struct {
	Code         string                  `yaml:"code"`
	Name         string                  `yaml:"name"`
	Description  string                  `yaml:"description"`
	Applications []ApplicationDefinition `yaml:"applications"`
}

type ApplicationDefinition struct {
	Code        string `yaml:"code"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Technology  string `yaml:"technology"`
}

// RelationshipDefinition references entities by their authored codes.
type RelationshipDefinition struct {
	Source      string `yaml:"source"`
	Destination string `yaml:"destination"`
	Label       string `yaml:"label"`
	Technology  string `yaml:"technology"`
	Tag         string `yaml:"tag"`
}

// Default returns the built-in baseline model.
func Default() (Definition, error) {
	return parse(defaultModel)
}

// Load reads a model definition from disk.
func Load(path string) (Definition, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Definition{}, err
	}
	def, err := parse(b)
	if err != nil {
		return Definition{}, fmt.Errorf("%s: %w", path, err)
	}
	return def, nil
}

func parse(b []byte) (Definition, error) {
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	var def Definition
	if err := dec.Decode(&def); err != nil {
		return Definition{}, fmt.Errorf("invalid model definition: %w", err)
	}
	if err := def.validate(); err != nil {
		return Definition{}, err
	}
	return def, nil
}

// validate fails fast: an authored model with a missing name or an unknown
// relationship endpoint is an authoring error, unlike fetched records which
// the mapper skips and logs.
func (d Definition) validate() error {
	if strings.TrimSpace(d.Workspace.Name) == "" {
		return fmt.Errorf("workspace: missing name")
	}

	codes := make(map[string]struct{})
	claim := func(what, code, name string) error {
		if strings.TrimSpace(code) == "" {
			return fmt.Errorf("%s %q: missing code", what, name)
		}
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("%s %q: missing name", what, code)
		}
		if _, dup := codes[code]; dup {
			return fmt.Errorf("duplicate code %q", code)
		}
		codes[code] = struct{}{}
		return nil
	}

	for _, t := range d.Teams {
		if err := claim("team", t.Code, t.Name); err != nil {
			return err
		}
	}
	for _, p := range d.Platforms {
		if err := claim("platform", p.Code, p.Name); err != nil {
			return err
		}
		for _, a := range p.Applications {
			if err := claim("application", a.Code, a.Name); err != nil {
				return err
			}
		}
	}
	for i, r := range d.Relationships {
		if strings.TrimSpace(r.Source) == "" || strings.TrimSpace(r.Destination) == "" {
			return fmt.Errorf("relationship %d: missing source or destination", i+1)
		}
		if strings.TrimSpace(r.Label) == "" {
			return fmt.Errorf("relationship %d (%s -> %s): missing label", i+1, r.Source, r.Destination)
		}
		if _, ok := codes[r.Source]; !ok {
			return fmt.Errorf("relationship %d: unknown source %q", i+1, r.Source)
		}
		if _, ok := codes[r.Destination]; !ok {
			return fmt.Errorf("relationship %d: unknown destination %q", i+1, r.Destination)
		}
	}
	return nil
}

// Build maps the authored definition through the allocator and de-duplicator
// and returns the assembled model. Relationship identifiers compose from the
// endpoint identifiers and re-enter the run's collision-resolution path like
// everything else.
func Build(run *mapper.Run, def Definition) (*model.Model, error) {
	byCode := make(map[string]*model.Entity)

	teams := make([]*model.Entity, 0, len(def.Teams))
	for _, t := range def.Teams {
		e := &model.Entity{
			Kind:        model.KindTeam,
			DisplayName: t.Name,
			ShortCode:   t.Code,
			Description: mapper.Sanitize(t.Description),
			Technology:  t.Tag,
		}
		e.Identifier = run.Allocate(model.KindTeam, "", t.Name, t.Code)
		teams = append(teams, e)
		byCode[t.Code] = e
	}

	platforms := make([]*model.Platform, 0, len(def.Platforms))
	for _, p := range def.Platforms {
		pe := &model.Entity{
			Kind:        model.KindPlatform,
			DisplayName: p.Name,
			ShortCode:   p.Code,
			Description: mapper.Sanitize(p.Description),
		}
		pe.Identifier = run.Allocate(model.KindPlatform, "", p.Name, p.Code)
		byCode[p.Code] = pe

		apps := make([]*model.Entity, 0, len(p.Applications))
		for _, a := range p.Applications {
			ae := &model.Entity{
				Kind:        model.KindApplication,
				DisplayName: a.Name,
				ShortCode:   a.Code,
				Description: mapper.Sanitize(a.Description),
				Technology:  a.Technology,
			}
			ae.Identifier = run.Allocate(model.KindApplication, "", a.Name, a.Code)
			apps = append(apps, ae)
			byCode[a.Code] = ae
		}
		platforms = append(platforms, &model.Platform{Entity: pe, Applications: apps})
	}

	var teamRels, appRels []*model.Relationship
	for i, r := range def.Relationships {
		src := byCode[r.Source]
		dst := byCode[r.Destination]
		if dst.Kind != model.KindApplication {
			return nil, fmt.Errorf("relationship %d: destination %q is a %s, not an application", i+1, r.Destination, dst.Kind)
		}
		if src.Kind != model.KindTeam && src.Kind != model.KindApplication {
			return nil, fmt.Errorf("relationship %d: source %q is a %s", i+1, r.Source, src.Kind)
		}

		base := mapper.RelationshipBase(src.Identifier, dst.Identifier)
		if !run.Record(base, src.Identifier, dst.Identifier, r.Label) {
			continue
		}
		rel := &model.Relationship{
			Identifier:  run.Unique(base, src.Kind, src.DisplayName+" -> "+dst.DisplayName),
			Base:        base,
			Source:      src.Identifier,
			Destination: dst.Identifier,
			Label:       r.Label,
			Technology:  r.Technology,
			Tag:         r.Tag,
		}
		if src.Kind == model.KindTeam {
			teamRels = append(teamRels, rel)
		} else {
			appRels = append(appRels, rel)
		}
	}

	return &model.Model{
		Teams:             teams,
		Platforms:         platforms,
		TeamRelationships: teamRels,
		AppRelationships:  appRels,
	}, nil
}
