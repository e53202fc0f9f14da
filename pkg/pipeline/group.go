package pipeline

import (
	"sort"
	"strings"

	"github.com/siyuan-infoblox/scala-imports-organizer/pkg/imports"
)

// PartitionByPrefix splits declarations into one list per group prefix, in
// the caller-supplied group order, plus a trailing list of declarations that
// matched no prefix. A declaration matches a group when its qualifier equals
// the prefix or starts with prefix + ".". Assignment evaluates prefixes
// longest-first (ties broken by original order) so a short prefix cannot
// swallow a more specific one; the output lists are then rearranged back to
// the caller-supplied order. The trailing unmatched list is omitted if empty.
func PartitionByPrefix(groups []string, decls []imports.Declaration) [][]imports.Declaration {
	unique := dedupeGroups(groups)

	byLength := make([]int, len(unique))
	for i := range byLength {
		byLength[i] = i
	}
	sort.SliceStable(byLength, func(i, j int) bool {
		return len(unique[byLength[i]]) > len(unique[byLength[j]])
	})

	assigned := make([][]imports.Declaration, len(unique))
	var unmatched []imports.Declaration
declarations:
	for _, d := range decls {
		qualifier := d.QualifierText()
		for _, gi := range byLength {
			prefix := unique[gi]
			if qualifier == prefix || strings.HasPrefix(qualifier, prefix+".") {
				assigned[gi] = append(assigned[gi], d)
				continue declarations
			}
		}
		unmatched = append(unmatched, d)
	}

	out := assigned
	if len(unmatched) > 0 {
		out = append(out, unmatched)
	}
	return out
}

func dedupeGroups(groups []string) []string {
	seen := make(map[string]bool, len(groups))
	var out []string
	for _, g := range groups {
		if g == "" || seen[g] {
			continue
		}
		seen[g] = true
		out = append(out, g)
	}
	return out
}

// GroupImports partitions declarations by qualifier prefix and marks the
// first declaration of every non-leading group for a blank-line separator.
// Group-break flags are recomputed from scratch, so reapplying the pass to
// its own output changes nothing.
type GroupImports struct {
	Groups []string
}

func (GroupImports) Name() string { return "GroupImports" }

func (g GroupImports) Transform(decls []imports.Declaration) []imports.Declaration {
	partitions := PartitionByPrefix(g.Groups, decls)

	var out []imports.Declaration
	first := true
	for _, part := range partitions {
		if len(part) == 0 {
			continue
		}
		for i, d := range part {
			d.GroupBreak = i == 0 && !first
			out = append(out, d)
		}
		first = false
	}
	return out
}
