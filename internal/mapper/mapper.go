package mapper

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/synchrotron/c4c4/internal/model"
)

const (
	// defaultContainerTag is the archetype tag for applications mapped from
	// the metadata source; authored models carry their own technology.
	defaultContainerTag = "Application"

	integrationTag        = "Integration"
	integrationTechnology = "TBC"
	teamRelationshipLabel = "Uses"
)

// ErrNoPlatformName means the platform record itself is unusable; with no
// platform there is nothing to generate.
var ErrNoPlatformName = errors.New("platform record has no usable name")

// MapPlatform walks one platform record and the global integration list and
// produces the allocation-complete model: the platform with its applications,
// the teams referenced by those applications (first-seen order), one
// team->application edge per occurrence, and one edge per integration
// provider/consumer pair whose endpoints both belong to the platform.
//
// All identifier allocation goes through run; MapPlatform does no allocation
// of its own and the assembler does none after it. Traversal order is the
// source order, so identical input yields an identical model.
func MapPlatform(run *Run, platform PlatformRecord, integrations []IntegrationRecord) (*model.Model, error) {
	platName := firstNonEmpty(platform.DisplayName, platform.Name)
	if platName == "" {
		return nil, ErrNoPlatformName
	}

	plat := &model.Entity{
		Kind:          model.KindPlatform,
		SourceID:      platform.ID,
		DisplayName:   platName,
		CanonicalName: firstNonEmpty(platform.Name, platform.DisplayName),
		ShortCode:     platform.ShortCode,
		Description:   Sanitize(platform.Description),
	}
	plat.Identifier = run.Allocate(model.KindPlatform, platform.ID, platName, platform.ShortCode)

	// Applications, in child-collection order. Records without a usable name
	// are excluded and logged, never fatal.
	type keptApp struct {
		record ApplicationRecord
		entity *model.Entity
	}
	kept := make([]keptApp, 0, len(platform.Applications))
	apps := make([]*model.Entity, 0, len(platform.Applications))
	appByID := make(map[string]*model.Entity, len(platform.Applications))
	for _, rec := range platform.Applications {
		name := firstNonEmpty(rec.DisplayName, rec.Name)
		if name == "" {
			run.Skip(model.KindApplication, rec.ID)
			continue
		}
		tech := rec.Technology
		if tech == "" {
			tech = defaultContainerTag
		}
		app := &model.Entity{
			Kind:          model.KindApplication,
			SourceID:      rec.ID,
			DisplayName:   name,
			CanonicalName: firstNonEmpty(rec.Name, rec.DisplayName),
			ShortCode:     rec.ShortCode,
			Description:   Sanitize(rec.Description),
			Technology:    tech,
		}
		app.Identifier = run.Allocate(model.KindApplication, rec.ID, name, rec.ShortCode)
		kept = append(kept, keptApp{record: rec, entity: app})
		apps = append(apps, app)
		if rec.ID != "" {
			appByID[rec.ID] = app
		}
	}

	// Teams and team->application edges. Teams are de-duplicated by source id
	// in first-seen order; every edge occurrence is materialized and then
	// pruned only when its (base, source, destination) triple repeats.
	var teams []*model.Entity
	teamByID := make(map[string]*model.Entity)
	var teamEdges []*model.Relationship
	for _, ka := range kept {
		for _, rec := range ka.record.Teams {
			name := firstNonEmpty(rec.DisplayName, rec.Name)
			if name == "" {
				run.Skip(model.KindTeam, rec.ID)
				continue
			}
			team := teamByID[rec.ID]
			if team == nil {
				team = &model.Entity{
					Kind:          model.KindTeam,
					SourceID:      rec.ID,
					DisplayName:   name,
					CanonicalName: firstNonEmpty(rec.Name, rec.DisplayName),
					ShortCode:     rec.ShortCode,
					Description:   Sanitize(rec.Description),
				}
				team.Identifier = run.Allocate(model.KindTeam, rec.ID, name, rec.ShortCode)
				teams = append(teams, team)
				if rec.ID != "" {
					teamByID[rec.ID] = team
				}
			}

			base := RelationshipBase(team.Identifier, ka.entity.Identifier)
			if !run.Record(base, team.Identifier, ka.entity.Identifier, teamRelationshipLabel) {
				continue
			}
			teamEdges = append(teamEdges, &model.Relationship{
				Identifier:  run.Unique(base, model.KindTeam, name+" -> "+ka.entity.DisplayName),
				Base:        base,
				Source:      team.Identifier,
				Destination: ka.entity.Identifier,
				Label:       teamRelationshipLabel,
			})
		}
	}

	// Application->application edges. An integration contributes an edge per
	// provider x consumer pair only when both endpoints are applications of
	// this platform; the first emitted pair takes the integration's base
	// identifier, later pairs get a numeric suffix before the uniqueness
	// pass. Integrations wholly or partially outside the platform never touch
	// the run state.
	var appEdges []*model.Relationship
	for _, rec := range integrations {
		name := firstNonEmpty(rec.DisplayName, rec.Name)
		label := firstNonEmpty(rec.Name, rec.DisplayName)
		base := ""
		skipped := false
		emitted := 0
		for _, pid := range rec.ProviderIDs {
			src, ok := appByID[pid]
			if !ok {
				continue
			}
			for _, cid := range rec.ConsumerIDs {
				dst, ok := appByID[cid]
				if !ok {
					continue
				}
				if name == "" {
					if !skipped {
						run.Skip(model.KindIntegration, rec.ID)
						skipped = true
					}
					continue
				}
				if base == "" {
					base = run.Candidate(model.KindIntegration, rec.ID, name, rec.ShortCode)
				}
				if !run.Record(base, src.Identifier, dst.Identifier, label) {
					continue
				}
				pairBase := base
				if emitted > 0 {
					pairBase = base + strconv.Itoa(emitted+1)
				}
				emitted++
				appEdges = append(appEdges, &model.Relationship{
					Identifier:  run.Unique(pairBase, model.KindIntegration, fmt.Sprintf("%s (relationship %d)", name, emitted)),
					Base:        base,
					Source:      src.Identifier,
					Destination: dst.Identifier,
					Label:       label,
					Technology:  integrationTechnology,
					Tag:         integrationTag,
				})
			}
		}
	}

	return &model.Model{
		Teams:             teams,
		Platforms:         []*model.Platform{{Entity: plat, Applications: apps}},
		TeamRelationships: teamEdges,
		AppRelationships:  appEdges,
	}, nil
}

func firstNonEmpty(a, b string) string {
	if a != "" {
		return a
	}
	return b
}
