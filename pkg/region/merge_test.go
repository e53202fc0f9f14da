package region

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/siyuan-infoblox/scala-imports-organizer/pkg/errors"
	"github.com/siyuan-infoblox/scala-imports-organizer/pkg/imports"
)

func TestMerge_InnerEditWinsInsideOuterSpan(t *testing.T) {
	req := require.New(t)
	edits := []Edit{
		{Depth: 0, Span: imports.Span{Start: 0, End: 10}, NewText: "ABCDEFGHIJ"},
		{Depth: 1, Span: imports.Span{Start: 2, End: 4}, NewText: "xy"},
	}

	merged, err := Merge("Nested.scala", edits)
	req.NoError(err)
	req.Equal([]imports.TextEdit{
		{File: "Nested.scala", Span: imports.Span{Start: 0, End: 2}, NewText: "AB"},
		{File: "Nested.scala", Span: imports.Span{Start: 2, End: 4}, NewText: "xy"},
		{File: "Nested.scala", Span: imports.Span{Start: 4, End: 10}, NewText: "EFGHIJ"},
	}, merged, "outer replacement split around the inner edit")
}

func TestMerge_FinalSegmentAbsorbsLengthDifference(t *testing.T) {
	req := require.New(t)
	edits := []Edit{
		// Outer replacement is shorter than the span it replaces.
		{Depth: 0, Span: imports.Span{Start: 0, End: 10}, NewText: "abc"},
		{Depth: 1, Span: imports.Span{Start: 2, End: 4}, NewText: "XY"},
	}

	merged, err := Merge("Shrink.scala", edits)
	req.NoError(err)
	req.Len(merged, 3)
	req.Equal("ab", merged[0].NewText)
	req.Equal("XY", merged[1].NewText)
	req.Equal("", merged[2].NewText, "trailing segment takes whatever text remains")
}

func TestMerge_IdenticalSpansDeeperWins(t *testing.T) {
	req := require.New(t)
	edits := []Edit{
		{Depth: 0, Span: imports.Span{Start: 5, End: 15}, NewText: "outer"},
		{Depth: 2, Span: imports.Span{Start: 5, End: 15}, NewText: "inner"},
	}

	merged, err := Merge("Same.scala", edits)
	req.NoError(err)
	req.Equal([]imports.TextEdit{
		{File: "Same.scala", Span: imports.Span{Start: 5, End: 15}, NewText: "inner"},
	}, merged)
}

func TestMerge_DisjointEditsPassThroughSortedByPosition(t *testing.T) {
	req := require.New(t)
	edits := []Edit{
		{Depth: 1, Span: imports.Span{Start: 40, End: 50}, NewText: "late"},
		{Depth: 0, Span: imports.Span{Start: 0, End: 10}, NewText: "early"},
	}

	merged, err := Merge("Flat.scala", edits)
	req.NoError(err)
	req.Len(merged, 2)
	req.Equal(0, merged[0].Span.Start)
	req.Equal(40, merged[1].Span.Start)
}

func TestMerge_PartialOverlapIsRefactoringError(t *testing.T) {
	req := require.New(t)
	edits := []Edit{
		{Depth: 0, Span: imports.Span{Start: 0, End: 8}, NewText: "outer"},
		{Depth: 1, Span: imports.Span{Start: 5, End: 12}, NewText: "inner"},
	}

	_, err := Merge("Cross.scala", edits)
	req.Error(err)
	req.True(errors.IsRefactoring(err))
}

func TestMerge_SkipsInvalidSpans(t *testing.T) {
	req := require.New(t)
	edits := []Edit{
		{Depth: 0, Span: imports.NoSpan, NewText: "ghost"},
		{Depth: 0, Span: imports.Span{Start: 3, End: 6}, NewText: "real"},
	}

	merged, err := Merge("Ghost.scala", edits)
	req.NoError(err)
	req.Len(merged, 1)
	req.Equal("real", merged[0].NewText)
}
