// Package dsl renders an allocation-complete model as a Structurizr DSL
// workspace document and writes it to disk atomically.
package dsl

import (
	"fmt"
	"strings"

	"github.com/synchrotron/c4c4/internal/model"
)

// Options carries the workspace framing: names and branding assets.
type Options struct {
	WorkspaceName        string
	WorkspaceDescription string
	ThemeURL             string
	LogoURL              string
	FontName             string
	FontURL              string
}

// Assemble renders the model. It emits, in order: team declarations, one
// softwareSystem block per platform with its nested containers, the
// team->application relationships, the application->application
// relationships, then the views block. It performs no identifier allocation;
// every referenced identifier was finalized by the mapper. Emission follows
// the model's slice order, so identical models render byte-identical
// documents.
func Assemble(m *model.Model, opts Options) []byte {
	var b strings.Builder

	fmt.Fprintf(&b, "workspace %s %s {\n\n", quote(opts.WorkspaceName), quote(opts.WorkspaceDescription))
	b.WriteString("    !identifiers flat\n\n")
	b.WriteString("    model {\n\n")
	b.WriteString("        archetypes {\n")
	b.WriteString("            application = container\n")
	b.WriteString("        }\n")

	banner(&b, "TEAMS")
	for _, t := range m.Teams {
		fmt.Fprintf(&b, "        %s = person %s %s", t.Identifier, quote(t.Label()), quote(t.Description))
		if t.Technology != "" {
			fmt.Fprintf(&b, " %s", quote(t.Technology))
		}
		b.WriteByte('\n')
	}

	for _, p := range m.Platforms {
		banner(&b, strings.ToUpper(p.Entity.DisplayName))
		fmt.Fprintf(&b, "        %s = softwareSystem %s %s", p.Entity.Identifier, quote(p.Entity.DisplayName), quote(p.Entity.Description))
		if len(p.Applications) == 0 {
			b.WriteByte('\n')
			continue
		}
		b.WriteString(" {\n\n")
		for _, a := range p.Applications {
			fmt.Fprintf(&b, "            %s = container %s %s %s\n", a.Identifier, quote(a.Label()), quote(a.Description), quote(a.Technology))
		}
		b.WriteString("        }\n")
	}

	banner(&b, "TEAM -> APPLICATION RELATIONSHIPS")
	for _, r := range m.TeamRelationships {
		writeRelationship(&b, r)
	}

	banner(&b, "APPLICATION -> APPLICATION RELATIONSHIPS")
	for _, r := range m.AppRelationships {
		writeRelationship(&b, r)
	}

	b.WriteString("    }\n\n")
	writeViews(&b, m, opts)
	b.WriteString("}\n")

	return []byte(b.String())
}

func writeRelationship(b *strings.Builder, r *model.Relationship) {
	fmt.Fprintf(b, "        %s = %s -> %s %s", r.Identifier, r.Source, r.Destination, quote(r.Label))
	if r.Technology != "" || r.Tag != "" {
		fmt.Fprintf(b, " %s", quote(r.Technology))
	}
	if r.Tag != "" {
		fmt.Fprintf(b, " %s", quote(r.Tag))
	}
	b.WriteByte('\n')
}

func writeViews(b *strings.Builder, m *model.Model, opts Options) {
	b.WriteString("    views {\n\n")
	b.WriteString("        terminology {\n")
	b.WriteString("            person \"Team\"\n")
	b.WriteString("            softwareSystem \"Platform\"\n")
	b.WriteString("            container \"Application\"\n")
	b.WriteString("        }\n\n")

	if opts.ThemeURL != "" {
		fmt.Fprintf(b, "        themes %s\n\n", opts.ThemeURL)
	}
	if opts.LogoURL != "" || opts.FontURL != "" {
		b.WriteString("        branding {\n")
		if opts.LogoURL != "" {
			fmt.Fprintf(b, "            logo %s\n", opts.LogoURL)
		}
		if opts.FontURL != "" {
			fmt.Fprintf(b, "            font %s %s\n", quote(opts.FontName), opts.FontURL)
		}
		b.WriteString("        }\n\n")
	}

	b.WriteString("        systemLandscape \"SystemLandscape\" {\n")
	b.WriteString("            include *\n")
	b.WriteString("            autoLayout\n")
	b.WriteString("        }\n")

	// Context and container views only for platforms that have containers;
	// an empty system appears on the landscape alone.
	for _, p := range m.Platforms {
		if len(p.Applications) == 0 {
			continue
		}
		id := p.Entity.Identifier
		fmt.Fprintf(b, "\n        systemContext %s %q {\n", id, id+"Context")
		b.WriteString("            include *\n")
		b.WriteString("            autoLayout\n")
		b.WriteString("        }\n")
		fmt.Fprintf(b, "\n        container %s %q {\n", id, id+"Containers")
		b.WriteString("            include *\n")
		b.WriteString("            autoLayout\n")
		b.WriteString("        }\n")
	}

	b.WriteString("    }\n")
}

func banner(b *strings.Builder, title string) {
	b.WriteString("\n        /* ============================================================\n")
	fmt.Fprintf(b, "           %s\n", title)
	b.WriteString("           ============================================================ */\n\n")
}

// quote renders a double-quoted DSL string, escaping embedded quotes and
// backslashes.
func quote(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return `"` + s + `"`
}
