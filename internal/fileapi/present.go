package fileapi

import (
	"fmt"
	"io"
	"strings"
)

// KindGroup is the artifacts of one kind, in discovery order.
type KindGroup struct {
	Kind      TargetKind
	Artifacts []BuildArtifact
}

// GroupByKind groups artifacts by kind. Groups appear in the order their
// kind is first seen.
func GroupByKind(artifacts []BuildArtifact) []KindGroup {
	var groups []KindGroup
	pos := make(map[TargetKind]int)
	for _, a := range artifacts {
		i, ok := pos[a.Kind]
		if !ok {
			i = len(groups)
			pos[a.Kind] = i
			groups = append(groups, KindGroup{Kind: a.Kind})
		}
		groups[i].Artifacts = append(groups[i].Artifacts, a)
	}
	return groups
}

// PrintArtifacts writes the grouped artifact report to w.
func PrintArtifacts(w io.Writer, artifacts []BuildArtifact) error {
	rule := strings.Repeat("─", 80)

	var b strings.Builder
	b.WriteString("\n📦 Build Artifacts:\n")
	b.WriteString(rule + "\n")
	for _, g := range GroupByKind(artifacts) {
		fmt.Fprintf(&b, "\n%s:\n", g.Kind)
		for _, a := range g.Artifacts {
			fmt.Fprintf(&b, "  • %s\n", a.Name)
			fmt.Fprintf(&b, "    %s\n", a.Path)
		}
	}
	b.WriteString("\n" + rule + "\n")

	_, err := io.WriteString(w, b.String())
	return err
}
