package staticmodel

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/synchrotron/c4c4/internal/mapper"
)

func TestDefault_ParsesAndBuilds(t *testing.T) {
	t.Parallel()

	def, err := Default()
	if err != nil {
		t.Fatalf("Default: %v", err)
	}
	if def.Workspace.Name != "Channel 4 Core" {
		t.Fatalf("workspace name = %q", def.Workspace.Name)
	}

	run := mapper.NewRun()
	m, err := Build(run, def)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if len(m.Teams) != 6 {
		t.Fatalf("teams = %d, want 6", len(m.Teams))
	}
	if len(m.Platforms) != 6 {
		t.Fatalf("platforms = %d, want 6", len(m.Platforms))
	}
	if got := m.Applications(); got != 16 {
		t.Fatalf("applications = %d, want 16", got)
	}
	if len(m.TeamRelationships) != 17 {
		t.Fatalf("team relationships = %d, want 17", len(m.TeamRelationships))
	}
	if len(m.AppRelationships) != 15 {
		t.Fatalf("app relationships = %d, want 15", len(m.AppRelationships))
	}
	if run.HasDiagnostics() {
		var b strings.Builder
		run.Report(&b)
		t.Fatalf("built-in model produced diagnostics:\n%s", b.String())
	}

	// Codes lowercase into identifiers; tags ride on the entity.
	if m.Teams[1].Identifier != "allc4" || m.Teams[1].Technology != "Legal Entity" {
		t.Fatalf("unexpected second team: %+v", m.Teams[1])
	}
	if m.Platforms[0].Entity.Identifier != "fsp" {
		t.Fatalf("first platform identifier = %q", m.Platforms[0].Entity.Identifier)
	}
}

func TestLoad_UnknownField(t *testing.T) {
	t.Parallel()

	path := writeModel(t, `
workspace:
  name: "W"
teams:
  - code: t1
    name: "Team One"
    colour: red
`)
	if _, err := Load(path); err == nil {
		t.Fatalf("expected error for unknown field")
	}
}

func TestLoad_ValidationErrors(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		yaml string
		want string
	}{
		{
			name: "missing workspace name",
			yaml: `
workspace:
  description: "no name"
`,
			want: "workspace: missing name",
		},
		{
			name: "duplicate code",
			yaml: `
workspace:
  name: "W"
teams:
  - code: dup
    name: "First"
platforms:
  - code: dup
    name: "Second"
`,
			want: `duplicate code "dup"`,
		},
		{
			name: "unknown endpoint",
			yaml: `
workspace:
  name: "W"
teams:
  - code: t1
    name: "Team One"
platforms:
  - code: p1
    name: "Platform One"
    applications:
      - code: a1
        name: "App One"
relationships:
  - {source: t1, destination: ghost, label: "Uses"}
`,
			want: `unknown destination "ghost"`,
		},
		{
			name: "missing label",
			yaml: `
workspace:
  name: "W"
teams:
  - code: t1
    name: "Team One"
platforms:
  - code: p1
    name: "Platform One"
    applications:
      - code: a1
        name: "App One"
relationships:
  - {source: t1, destination: a1}
`,
			want: "missing label",
		},
	}

	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()
			_, err := Load(writeModel(t, c.yaml))
			if err == nil {
				t.Fatalf("expected error")
			}
			if !strings.Contains(err.Error(), c.want) {
				t.Fatalf("error = %q, want substring %q", err, c.want)
			}
		})
	}
}

func TestBuild_DestinationMustBeApplication(t *testing.T) {
	t.Parallel()

	def, err := Load(writeModel(t, `
workspace:
  name: "W"
teams:
  - code: t1
    name: "Team One"
platforms:
  - code: p1
    name: "Platform One"
    applications:
      - code: a1
        name: "App One"
relationships:
  - {source: a1, destination: t1, label: "backwards"}
`))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if _, err := Build(mapper.NewRun(), def); err == nil {
		t.Fatalf("expected error for non-application destination")
	}
}

func TestBuild_DuplicateRelationshipSuppressed(t *testing.T) {
	t.Parallel()

	def, err := Load(writeModel(t, `
workspace:
  name: "W"
teams:
  - code: t1
    name: "Team One"
platforms:
  - code: p1
    name: "Platform One"
    applications:
      - code: a1
        name: "App One"
relationships:
  - {source: t1, destination: a1, label: "Uses"}
  - {source: t1, destination: a1, label: "Uses again"}
`))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	run := mapper.NewRun()
	m, err := Build(run, def)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(m.TeamRelationships) != 1 {
		t.Fatalf("team relationships = %d, want 1", len(m.TeamRelationships))
	}
	if m.TeamRelationships[0].Identifier != "t1ToA1" {
		t.Fatalf("identifier = %q, want t1ToA1", m.TeamRelationships[0].Identifier)
	}
	if len(run.DuplicateRelationships) != 1 {
		t.Fatalf("duplicate log has %d entries, want 1", len(run.DuplicateRelationships))
	}
}

func writeModel(t *testing.T, yaml string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "model.yaml")
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatalf("write model: %v", err)
	}
	return path
}
