// Package organizer wires the region extractor, the dependency strategies
// and the participant pipeline into one reorganization pass over a source
// snapshot, and provides the file and directory drivers the CLI uses.
package organizer

import (
	"go.uber.org/zap"

	"github.com/siyuan-infoblox/scala-imports-organizer/pkg/errors"
	"github.com/siyuan-infoblox/scala-imports-organizer/pkg/imports"
	"github.com/siyuan-infoblox/scala-imports-organizer/pkg/pipeline"
	"github.com/siyuan-infoblox/scala-imports-organizer/pkg/region"
	"github.com/siyuan-infoblox/scala-imports-organizer/pkg/source"
	"github.com/siyuan-infoblox/scala-imports-organizer/pkg/strategy"
)

// Config selects the strategy and the transformation passes for one run.
type Config struct {
	// Strategy picks how existing declarations are reconciled with usage.
	Strategy strategy.Strategy

	// ImportsToAdd are injected at the top-level region before filtering,
	// making them immune to removal in the same run.
	ImportsToAdd []strategy.Need

	// Participants runs after the strategy passes. Nil means the default
	// pipeline, shaped by the remaining options below.
	Participants []pipeline.Participant

	// Groups are qualifier prefixes used to partition the output with
	// blank-line separators.
	Groups []string

	// ExpandImports splits multi-selector declarations instead of
	// collapsing same-scope ones.
	ExpandImports bool

	// AlwaysUseWildcards lists qualifiers always rewritten to a wildcard.
	AlwaysUseWildcards []string

	// CollapseToWildcardMax, when positive, collapses declarations with
	// more explicit selectors than this to a wildcard where safe.
	CollapseToWildcardMax int

	// CollapseExclude exempts qualifiers from the wildcard collapse.
	CollapseExclude []string

	// OrganizeLocalImports extends the run to imports owned by nested
	// class and function bodies.
	OrganizeLocalImports bool

	// Selection restricts the run to the innermost scope containing the
	// span. Zero or invalid means the whole file.
	Selection imports.Span
}

// Organizer reorganizes the imports of one tree snapshot at a time. It holds
// no per-run state, so one instance can serve many files.
type Organizer struct {
	config   Config
	analyzer strategy.UsageAnalyzer
	symbols  imports.Resolver
	logger   *zap.Logger
}

// New builds an organizer. A nil symbols resolver degrades to qualifier-text
// comparison; a nil logger disables logging.
func New(config Config, analyzer strategy.UsageAnalyzer, symbols imports.Resolver, logger *zap.Logger) *Organizer {
	if symbols == nil {
		symbols = imports.TextResolver{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Organizer{config: config, analyzer: analyzer, symbols: symbols, logger: logger}
}

// Organize computes the text edits that reorganize the snapshot's imports.
// The returned edits are non-overlapping and ordered by position; a run that
// changes nothing returns no edits.
func (o *Organizer) Organize(tree *source.Tree) ([]imports.TextEdit, error) {
	selection := o.config.Selection
	if selection.End == 0 && selection.Start == 0 {
		selection = imports.NoSpan
	}
	regions := region.Extract(tree, selection, o.config.OrganizeLocalImports)
	if len(regions) == 0 {
		return nil, errors.Preparationf("no import-bearing %s in selection of %s",
			constructName(tree, selection), tree.File)
	}

	resolver := &strategy.Resolver{
		Strategy: o.config.Strategy,
		Analyzer: o.analyzer,
		Symbols:  o.symbols,
		ToAdd:    o.config.ImportsToAdd,
	}

	var regionEdits []region.Edit
	for _, rg := range regions {
		passes, err := resolver.Passes(tree, rg.Scope, rg.Parent == -1)
		if err != nil {
			return nil, errors.Refactoringf("usage analysis of %s failed: %v", tree.File, err)
		}
		pipe := pipeline.Pipeline(append(passes, o.participants()...))
		decls := pipe.Transform(rg.Imports)

		if !rg.Span.IsValid() || rg.Span.End > len(tree.Text) {
			continue
		}
		indent := lineIndent(tree.Text, rg.Span.Start)
		newText := imports.RenderAll(decls, indent)

		if importsContiguous(tree.Text, rg.Imports, rg.Span) {
			if newText == tree.Text[rg.Span.Start:rg.Span.End] {
				continue
			}
			o.logger.Debug("region reorganized",
				zap.String("file", tree.File),
				zap.Stringer("scope", rg.Kind),
				zap.Int("imports", len(rg.Imports)),
				zap.Int("depth", rg.Depth),
			)
			regionEdits = append(regionEdits, region.Edit{
				Depth:   rg.Depth,
				Span:    rg.Span,
				NewText: newText,
			})
			continue
		}

		// Other source text sits between the owned declarations, so the
		// span between the first and last of them cannot be replaced
		// wholesale. Anchor the rendered block at the first declaration
		// and delete the remaining ones in place.
		o.logger.Debug("region reorganized around interleaved code",
			zap.String("file", tree.File),
			zap.Stringer("scope", rg.Kind),
			zap.Int("imports", len(rg.Imports)),
			zap.Int("depth", rg.Depth),
		)
		regionEdits = append(regionEdits, interleavedEdits(tree.Text, rg, newText)...)
	}

	return region.Merge(tree.File, regionEdits)
}

// participants returns the configured pass list, or the default pipeline
// shaped by the config, wrapped so that reapplying it is a no-op.
func (o *Organizer) participants() []pipeline.Participant {
	if o.config.Participants != nil {
		return o.config.Participants
	}

	var parts pipeline.Pipeline
	if o.config.ExpandImports {
		parts = append(parts, pipeline.ExpandImports{})
	} else {
		parts = append(parts, pipeline.CollapseImports{Resolver: o.symbols})
	}
	parts = append(parts, pipeline.RemoveDuplicatedByWildcard{}, pipeline.SortImportSelectors{})
	if len(o.config.AlwaysUseWildcards) > 0 {
		parts = append(parts, pipeline.AlwaysUseWildcards{Qualifiers: toSet(o.config.AlwaysUseWildcards)})
	}
	if o.config.CollapseToWildcardMax > 0 {
		parts = append(parts, pipeline.CollapseSelectorsToWildcard{
			MaxIndividualImports: o.config.CollapseToWildcardMax,
			Exclude:              toSet(o.config.CollapseExclude),
			Resolver:             o.symbols,
		})
	}
	parts = append(parts, pipeline.SortImports{})
	if len(o.config.Groups) > 0 {
		parts = append(parts, pipeline.GroupImports{Groups: o.config.Groups})
	}
	return []pipeline.Participant{pipeline.FixedPoint{Inner: parts}}
}

func toSet(values []string) map[string]bool {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	return set
}

// lineIndent returns the whitespace prefix of the line the offset sits on,
// used to indent re-rendered local import blocks.
// importsContiguous reports whether the region's span holds nothing but the
// owned declarations, whitespace and clause commas, so the whole span can be
// replaced with the rendered block without losing any other source text.
func importsContiguous(text string, decls []imports.Declaration, hull imports.Span) bool {
	pos := hull.Start
	for _, d := range decls {
		if !d.Span.IsValid() {
			continue
		}
		for i := pos; i < d.Span.Start && i < len(text); i++ {
			switch text[i] {
			case ' ', '\t', '\n', '\r', ',':
			default:
				return false
			}
		}
		if d.Span.End > pos {
			pos = d.Span.End
		}
	}
	return true
}

// interleavedEdits replaces the first owned declaration with the rendered
// block and deletes every later one at its own span, so the source text
// between declarations survives untouched.
func interleavedEdits(text string, rg region.Region, newText string) []region.Edit {
	var edits []region.Edit
	first := true
	for _, d := range rg.Imports {
		if !d.Span.IsValid() {
			continue
		}
		if first {
			first = false
			span := d.Span
			if newText == "" {
				span = lineSpan(text, span)
			}
			edits = append(edits, region.Edit{Depth: rg.Depth, Span: span, NewText: newText})
			continue
		}
		edits = append(edits, region.Edit{Depth: rg.Depth, Span: lineSpan(text, d.Span), NewText: ""})
	}
	return edits
}

// lineSpan widens a declaration's span to cover its whole line when the line
// holds nothing else, so deleting the declaration leaves no blank line. A
// later expression of a comma clause widens backwards over the comma instead.
func lineSpan(text string, span imports.Span) imports.Span {
	start := span.Start
	for start > 0 && (text[start-1] == ' ' || text[start-1] == '\t') {
		start--
	}
	if start > 0 && text[start-1] == ',' {
		start--
		for start > 0 && (text[start-1] == ' ' || text[start-1] == '\t') {
			start--
		}
		return imports.Span{Start: start, End: span.End}
	}
	if start > 0 && text[start-1] != '\n' {
		start = span.Start
	}
	end := span.End
	for end < len(text) && (text[end] == ' ' || text[end] == '\t' || text[end] == '\r') {
		end++
	}
	if end < len(text) && text[end] == '\n' {
		end++
	} else if end < len(text) {
		end = span.End
	}
	return imports.Span{Start: start, End: end}
}

// constructName classifies the construct the selection lands on for the
// preparation diagnostic, degrading to a placeholder when the scope kind is
// not one the snapshot models.
func constructName(tree *source.Tree, selection imports.Span) string {
	scope := tree.Root
	if selection.IsValid() && tree.Root != nil {
		if inner := tree.Root.Innermost(selection); inner != nil {
			scope = inner
		}
	}
	if scope == nil {
		return errors.PlaceholderUnknownConstruct
	}
	if name := scope.Kind.String(); name != "Unknown" {
		return name
	}
	return errors.PlaceholderUnknownConstruct
}

func lineIndent(text string, offset int) string {
	if offset <= 0 || offset > len(text) {
		return ""
	}
	start := offset
	for start > 0 && text[start-1] != '\n' {
		start--
	}
	end := start
	for end < offset && (text[end] == ' ' || text[end] == '\t') {
		end++
	}
	return text[start:end]
}
