package leanix

import (
	"strings"
	"testing"
)

const platformPayload = `{
  "factSheet": {
    "id": "plat-1",
    "name": "Finance Systems Platform",
    "displayName": "Finance Systems Platform",
    "description": "Finance estate",
    "acronym": "FSP",
    "relTechPlatformToApplication": {
      "edges": [
        {"node": {"factSheet": {
          "id": "app-1",
          "name": "Baseware",
          "displayName": "Baseware",
          "acronym": "BSW",
          "relApplicationToUserGroup": {
            "edges": [
              {"node": {"factSheet": {"id": "team-1", "name": "Shared Services", "displayName": "Shared Services", "acronym": "sharedServicesTeam"}}},
              {"node": {"factSheet": {"id": ""}}}
            ]
          }
        }}},
        {"node": {"factSheet": {
          "id": "app-2",
          "name": "SplashBI",
          "displayName": "SplashBI"
        }}}
      ]
    }
  }
}`

func TestDecodePlatform(t *testing.T) {
	t.Parallel()

	rec, err := DecodePlatform([]byte(platformPayload))
	if err != nil {
		t.Fatalf("DecodePlatform: %v", err)
	}
	if rec.ID != "plat-1" || rec.ShortCode != "FSP" {
		t.Fatalf("unexpected platform record: %+v", rec)
	}
	if len(rec.Applications) != 2 {
		t.Fatalf("applications = %d, want 2", len(rec.Applications))
	}
	bsw := rec.Applications[0]
	if bsw.ID != "app-1" || bsw.ShortCode != "BSW" {
		t.Fatalf("unexpected first application: %+v", bsw)
	}
	// The id-less team edge is dropped during flattening.
	if len(bsw.Teams) != 1 || bsw.Teams[0].ID != "team-1" {
		t.Fatalf("unexpected teams: %+v", bsw.Teams)
	}
	// Missing relations flatten to empty, not to an error.
	if len(rec.Applications[1].Teams) != 0 {
		t.Fatalf("expected no teams on second application: %+v", rec.Applications[1])
	}
}

func TestDecodePlatform_NotFound(t *testing.T) {
	t.Parallel()

	for _, payload := range []string{`{"factSheet": null}`, `{"factSheet": {"id": ""}}`, `{}`} {
		if _, err := DecodePlatform([]byte(payload)); err == nil {
			t.Fatalf("payload %s: expected error", payload)
		} else if !strings.Contains(err.Error(), "not found") {
			t.Fatalf("payload %s: err = %v", payload, err)
		}
	}
}

func TestDecodePlatform_Malformed(t *testing.T) {
	t.Parallel()

	if _, err := DecodePlatform([]byte(`{"factSheet": [`)); err == nil {
		t.Fatalf("expected error for malformed JSON")
	}
}

func TestDecodeInterfaces(t *testing.T) {
	t.Parallel()

	payload := `{
	  "allFactSheets": {
	    "edges": [
	      {"node": {
	        "id": "int-1",
	        "name": "Invoice export",
	        "displayName": "Invoice export",
	        "acronym": "invExp",
	        "relInterfaceToProviderApplication": {"edges": [{"node": {"factSheet": {"id": "app-1"}}}]},
	        "relInterfaceToConsumerApplication": {"edges": [{"node": {"factSheet": {"id": "app-2"}}}, {"node": {"factSheet": {"id": "app-3"}}}]}
	      }},
	      {"node": {"id": "", "name": "orphan"}},
	      {"node": {
	        "id": "int-2",
	        "name": "Standalone feed"
	      }}
	    ]
	  }
	}`

	recs, err := DecodeInterfaces([]byte(payload))
	if err != nil {
		t.Fatalf("DecodeInterfaces: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("records = %d, want 2 (id-less edge dropped)", len(recs))
	}
	first := recs[0]
	if first.ID != "int-1" || first.ShortCode != "invExp" {
		t.Fatalf("unexpected first record: %+v", first)
	}
	if len(first.ProviderIDs) != 1 || first.ProviderIDs[0] != "app-1" {
		t.Fatalf("unexpected providers: %+v", first.ProviderIDs)
	}
	if len(first.ConsumerIDs) != 2 || first.ConsumerIDs[1] != "app-3" {
		t.Fatalf("unexpected consumers: %+v", first.ConsumerIDs)
	}
	if len(recs[1].ProviderIDs) != 0 || len(recs[1].ConsumerIDs) != 0 {
		t.Fatalf("missing relations should flatten to empty: %+v", recs[1])
	}
}

func TestDecodeInterfaces_Empty(t *testing.T) {
	t.Parallel()

	recs, err := DecodeInterfaces([]byte(`{"allFactSheets": {"edges": []}}`))
	if err != nil {
		t.Fatalf("DecodeInterfaces: %v", err)
	}
	if len(recs) != 0 {
		t.Fatalf("records = %d, want 0", len(recs))
	}
}
