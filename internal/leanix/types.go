package leanix

import (
	"encoding/json"
	"fmt"

	"github.com/synchrotron/c4c4/internal/mapper"
)

// Wire shapes of the GraphQL payloads. The repository nests every relation as
// edges -> node -> factSheet; the Decode functions flatten that into the
// source records the mapper consumes. Missing relations decode to empty
// lists, never to an error.

type factSheet struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`
	Description string `json:"description"`
	Acronym     string `json:"acronym"`

	Applications relationList `json:"relTechPlatformToApplication"`
	Teams        relationList `json:"relApplicationToUserGroup"`
	Providers    relationList `json:"relInterfaceToProviderApplication"`
	Consumers    relationList `json:"relInterfaceToConsumerApplication"`
}

type relationList struct {
	Edges []struct {
		Node struct {
			FactSheet factSheet `json:"factSheet"`
		} `json:"node"`
	} `json:"edges"`
}

func (l relationList) sheets() []factSheet {
	out := make([]factSheet, 0, len(l.Edges))
	for _, e := range l.Edges {
		if e.Node.FactSheet.ID == "" {
			continue
		}
		out = append(out, e.Node.FactSheet)
	}
	return out
}

// DecodePlatform flattens a platform payload (the data of a platform-by-id
// query) into a source record.
func DecodePlatform(data []byte) (mapper.PlatformRecord, error) {
	var payload struct {
		FactSheet *factSheet `json:"factSheet"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return mapper.PlatformRecord{}, fmt.Errorf("malformed platform payload: %w", err)
	}
	if payload.FactSheet == nil || payload.FactSheet.ID == "" {
		return mapper.PlatformRecord{}, fmt.Errorf("platform not found")
	}

	f := payload.FactSheet
	rec := mapper.PlatformRecord{
		ID:          f.ID,
		Name:        f.Name,
		DisplayName: f.DisplayName,
		Description: f.Description,
		ShortCode:   f.Acronym,
	}
	for _, app := range f.Applications.sheets() {
		a := mapper.ApplicationRecord{
			ID:          app.ID,
			Name:        app.Name,
			DisplayName: app.DisplayName,
			Description: app.Description,
			ShortCode:   app.Acronym,
		}
		for _, team := range app.Teams.sheets() {
			a.Teams = append(a.Teams, mapper.TeamRecord{
				ID:          team.ID,
				Name:        team.Name,
				DisplayName: team.DisplayName,
				Description: team.Description,
				ShortCode:   team.Acronym,
			})
		}
		rec.Applications = append(rec.Applications, a)
	}
	return rec, nil
}

// DecodeInterfaces flattens an interface-list payload (the data of an
// all-interfaces query) into integration records.
func DecodeInterfaces(data []byte) ([]mapper.IntegrationRecord, error) {
	var payload struct {
		AllFactSheets struct {
			Edges []struct {
				Node factSheet `json:"node"`
			} `json:"edges"`
		} `json:"allFactSheets"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("malformed interfaces payload: %w", err)
	}

	out := make([]mapper.IntegrationRecord, 0, len(payload.AllFactSheets.Edges))
	for _, e := range payload.AllFactSheets.Edges {
		f := e.Node
		if f.ID == "" {
			continue
		}
		rec := mapper.IntegrationRecord{
			ID:          f.ID,
			Name:        f.Name,
			DisplayName: f.DisplayName,
			Description: f.Description,
			ShortCode:   f.Acronym,
		}
		for _, p := range f.Providers.sheets() {
			rec.ProviderIDs = append(rec.ProviderIDs, p.ID)
		}
		for _, c := range f.Consumers.sheets() {
			rec.ConsumerIDs = append(rec.ConsumerIDs, c.ID)
		}
		out = append(out, rec)
	}
	return out, nil
}
