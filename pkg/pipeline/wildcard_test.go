package pipeline

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/siyuan-infoblox/scala-imports-organizer/pkg/imports"
)

func TestAlwaysUseWildcards(t *testing.T) {
	req := require.New(t)
	pass := AlwaysUseWildcards{Qualifiers: map[string]bool{"scala.concurrent.duration": true}}

	tests := []struct {
		name  string
		input []imports.Declaration
		want  []string
	}{
		{
			"matching declaration rewritten",
			[]imports.Declaration{decl("scala.concurrent.duration", named("DurationInt"), named("SECONDS"))},
			[]string{"import scala.concurrent.duration._"},
		},
		{
			"later declarations on same qualifier dropped",
			[]imports.Declaration{
				decl("scala.concurrent.duration", named("DurationInt")),
				decl("a.b", named("C")),
				decl("scala.concurrent.duration", named("SECONDS")),
			},
			[]string{"import scala.concurrent.duration._", "import a.b.C"},
		},
		{
			"renamed declaration left alone",
			[]imports.Declaration{
				decl("scala.concurrent.duration", imports.Selector{Name: "Duration", Rename: "D"}),
			},
			[]string{"import scala.concurrent.duration.{Duration => D}"},
		},
		{
			"non-matching qualifier untouched",
			[]imports.Declaration{decl("a.b", named("C"), named("D"))},
			[]string{"import a.b.{C, D}"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req.Equal(tt.want, rendered(pass.Transform(tt.input)))
		})
	}
}

func TestCollapseSelectorsToWildcard_CollapsesWhenSafe(t *testing.T) {
	req := require.New(t)
	resolver := stubResolver{members: map[string][]string{
		"a.b": {"A", "B", "C", "D"},
	}}
	pass := CollapseSelectorsToWildcard{MaxIndividualImports: 2, Resolver: resolver}

	out := pass.Transform([]imports.Declaration{
		decl("a.b", named("A"), named("B"), named("C")),
	})

	req.Equal([]string{"import a.b._"}, rendered(out))
}

func TestCollapseSelectorsToWildcard_ImplicitMemberBlocksCollapse(t *testing.T) {
	req := require.New(t)
	resolver := stubResolver{
		members:   map[string][]string{"a.b": {"A", "B", "C", "D"}},
		implicits: map[string]bool{"a.b#D": true},
	}
	pass := CollapseSelectorsToWildcard{MaxIndividualImports: 2, Resolver: resolver}

	out := pass.Transform([]imports.Declaration{
		decl("a.b", named("A"), named("B"), named("C")),
	})

	req.Equal([]string{"import a.b.{A, B, C}"}, rendered(out))
}

func TestCollapseSelectorsToWildcard_CollisionWithEarlierWildcardBlocksCollapse(t *testing.T) {
	req := require.New(t)
	resolver := stubResolver{members: map[string][]string{
		"x.y": {"D"},
		"a.b": {"A", "B", "C", "D"},
	}}
	pass := CollapseSelectorsToWildcard{MaxIndividualImports: 2, Resolver: resolver}

	out := pass.Transform([]imports.Declaration{
		decl("x.y", wildcard()),
		decl("a.b", named("A"), named("B"), named("C")),
	})

	req.Equal([]string{"import x.y._", "import a.b.{A, B, C}"}, rendered(out))
}

func TestCollapseSelectorsToWildcard_LaterDecisionsSeeEarlierCollapses(t *testing.T) {
	req := require.New(t)
	resolver := stubResolver{members: map[string][]string{
		"a.b": {"A", "B", "C", "Shared"},
		"x.y": {"X", "Y", "Z", "Shared"},
	}}
	pass := CollapseSelectorsToWildcard{MaxIndividualImports: 2, Resolver: resolver}

	out := pass.Transform([]imports.Declaration{
		decl("a.b", named("A"), named("B"), named("C")),
		decl("x.y", named("X"), named("Y"), named("Z")),
	})

	// The first collapse exposes Shared, so the second would collide.
	req.Equal([]string{"import a.b._", "import x.y.{X, Y, Z}"}, rendered(out))
}

func TestCollapseSelectorsToWildcard_ThresholdAndExclusions(t *testing.T) {
	req := require.New(t)
	resolver := stubResolver{members: map[string][]string{
		"a.b": {"A", "B", "C"},
		"x.y": {"X", "Y", "Z"},
	}}
	pass := CollapseSelectorsToWildcard{
		MaxIndividualImports: 2,
		Exclude:              map[string]bool{"x.y": true},
		Resolver:             resolver,
	}

	out := pass.Transform([]imports.Declaration{
		decl("a.b", named("A"), named("B")),             // at threshold, kept
		decl("x.y", named("X"), named("Y"), named("Z")), // excluded
	})

	req.Equal([]string{"import a.b.{A, B}", "import x.y.{X, Y, Z}"}, rendered(out))
}

func TestCollapseSelectorsToWildcard_UnknownMemberSetBlocksCollapse(t *testing.T) {
	req := require.New(t)
	pass := CollapseSelectorsToWildcard{MaxIndividualImports: 1, Resolver: stubResolver{}}

	out := pass.Transform([]imports.Declaration{
		decl("a.b", named("A"), named("B")),
	})

	req.Equal([]string{"import a.b.{A, B}"}, rendered(out))
}
