package mapper

import (
	"fmt"
	"io"
)

// HasDiagnostics reports whether the run accumulated anything worth showing.
func (r *Run) HasDiagnostics() bool {
	return len(r.Skipped) > 0 ||
		len(r.MissingShortCodes) > 0 ||
		len(r.DuplicateIdentifiers) > 0 ||
		len(r.DuplicateRelationships) > 0
}

// Report writes the accumulated diagnostics in a stable order: skipped
// records, synthesized identifiers, identifier collisions, suppressed
// duplicate relationships. Each list is ordered as events occurred, so a
// report for the same input reads identically every time. Diagnostics are
// advisory; they never affect the generated document.
func (r *Run) Report(w io.Writer) {
	if len(r.Skipped) > 0 {
		fmt.Fprintf(w, "WARNING: %d record(s) skipped for missing display name\n", len(r.Skipped))
		for _, s := range r.Skipped {
			fmt.Fprintf(w, "  %s (source id %q)\n", s.Kind, s.SourceID)
		}
	}
	if len(r.MissingShortCodes) > 0 {
		fmt.Fprintf(w, "WARNING: %d element(s) missing a short code; temporary identifiers synthesized\n", len(r.MissingShortCodes))
		for _, m := range r.MissingShortCodes {
			fmt.Fprintf(w, "  %s %q -> %q (source id %q)\n", m.Kind, m.Name, m.Synthesized, m.SourceID)
		}
		fmt.Fprintln(w, "  Add short codes at the source to make these identifiers stable.")
	}
	if len(r.DuplicateIdentifiers) > 0 {
		fmt.Fprintf(w, "WARNING: %d duplicate identifier(s) resolved\n", len(r.DuplicateIdentifiers))
		for _, d := range r.DuplicateIdentifiers {
			fmt.Fprintf(w, "  %s %q: %q -> %q\n", d.Kind, d.Name, d.Original, d.Final)
		}
		fmt.Fprintln(w, "  Ensure short codes are unique at the source.")
	}
	if len(r.DuplicateRelationships) > 0 {
		fmt.Fprintf(w, "WARNING: %d duplicate relationship(s) suppressed\n", len(r.DuplicateRelationships))
		for _, d := range r.DuplicateRelationships {
			fmt.Fprintf(w, "  %q %s -> %s %q (first seen %q)\n", d.Identifier, d.Source, d.Destination, d.Label, d.FirstLabel)
		}
	}
}
