package scalasrc

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/siyuan-infoblox/scala-imports-organizer/pkg/imports"
	"github.com/siyuan-infoblox/scala-imports-organizer/pkg/source"
)

const nestedSource = `package com.acme

import scala.collection.mutable
import java.util.{Map => JMap, List, _}
import com.acme.util._

object Main {
  import com.acme.internal.Secret

  def run(): Unit = {
    import scala.math.Pi
    println(Pi)
  }
}
`

func TestParse_TopLevelDeclarations(t *testing.T) {
	req := require.New(t)
	tree, err := Parse("Main.scala", nestedSource)
	req.NoError(err)
	req.Len(tree.Root.Imports, 3)

	first := tree.Root.Imports[0]
	req.Equal([]string{"scala", "collection"}, first.Qualifier)
	req.Equal([]imports.Selector{{Name: "mutable"}}, first.Selectors)

	second := tree.Root.Imports[1]
	req.Equal([]string{"java", "util"}, second.Qualifier)
	req.Equal([]imports.Selector{
		{Name: "Map", Rename: "JMap"},
		{Name: "List"},
		{Wildcard: true},
	}, second.Selectors)

	third := tree.Root.Imports[2]
	req.Equal([]string{"com", "acme", "util"}, third.Qualifier)
	req.True(third.HasWildcard())
}

func TestParse_SpansCoverWholeClause(t *testing.T) {
	req := require.New(t)
	tree, err := Parse("Main.scala", nestedSource)
	req.NoError(err)

	for _, d := range tree.Root.Imports {
		req.True(d.Span.IsValid())
		req.Equal(d.Text, nestedSource[d.Span.Start:d.Span.End])
		req.True(strings.HasPrefix(d.Text, "import "))
	}
}

func TestParse_NestedScopeKinds(t *testing.T) {
	req := require.New(t)
	tree, err := Parse("Main.scala", nestedSource)
	req.NoError(err)

	req.Len(tree.Root.Children, 1)
	class := tree.Root.Children[0]
	req.Equal(source.ClassBody, class.Kind)
	req.Len(class.Imports, 1)
	req.Equal("com.acme.internal", class.Imports[0].QualifierText())

	req.Len(class.Children, 1)
	method := class.Children[0]
	req.Equal(source.FunctionBody, method.Kind)
	req.Len(method.Imports, 1)
	req.Equal("scala.math", method.Imports[0].QualifierText())
	req.Empty(method.Children)
}

func TestParse_PrunesImportFreeScopes(t *testing.T) {
	req := require.New(t)
	src := `import a.b.C

object Empty {
  def noop(): Unit = {
    val x = 1
  }
}
`
	tree, err := Parse("Empty.scala", src)
	req.NoError(err)
	req.Len(tree.Root.Imports, 1)
	req.Empty(tree.Root.Children, "scopes without imports are pruned")
}

func TestParse_CommaSeparatedClause(t *testing.T) {
	req := require.New(t)
	src := "import a.B, c.d.{E, F}\n"
	tree, err := Parse("Comma.scala", src)
	req.NoError(err)

	req.Len(tree.Root.Imports, 2)
	req.Equal("import a.B", tree.Root.Imports[0].Render())
	req.Equal([]string{"c", "d"}, tree.Root.Imports[1].Qualifier)
	req.Len(tree.Root.Imports[1].Selectors, 2)
	req.Equal("import c.d.{E, F}", tree.Root.Imports[1].Render(),
		"a later clause member renders with its own keyword")
}

func TestParse_MultiLineSelectorBlock(t *testing.T) {
	req := require.New(t)
	src := "import a.b.{\n  C,\n  D => E\n}\nval x = 1\n"
	tree, err := Parse("Multi.scala", src)
	req.NoError(err)

	req.Len(tree.Root.Imports, 1)
	d := tree.Root.Imports[0]
	req.Equal([]string{"a", "b"}, d.Qualifier)
	req.Equal([]imports.Selector{{Name: "C"}, {Name: "D", Rename: "E"}}, d.Selectors)
}

func TestParse_IgnoresCommentsAndStrings(t *testing.T) {
	req := require.New(t)
	src := `// import commented.Out
/* import blocked.Out
   still a comment */
val s = "import quoted.Out"
val t = """import tripled.Out"""
import real.Thing
`
	tree, err := Parse("Noise.scala", src)
	req.NoError(err)

	req.Len(tree.Root.Imports, 1)
	req.Equal("real", tree.Root.Imports[0].QualifierText())
}

func TestParse_TrailingLineCommentTerminatesClause(t *testing.T) {
	req := require.New(t)
	src := "import a.b.C // used by the widget\n"
	tree, err := Parse("Comment.scala", src)
	req.NoError(err)

	req.Len(tree.Root.Imports, 1)
	req.Equal("import a.b.C", tree.Root.Imports[0].Text)
}

func TestParse_MalformedImportCarriedVerbatim(t *testing.T) {
	req := require.New(t)
	src := "import dangling\n"
	tree, err := Parse("Odd.scala", src)
	req.NoError(err)

	req.Len(tree.Root.Imports, 1)
	req.Equal("import dangling", tree.Root.Imports[0].Render(), "unparseable clause keeps its source text")
}

func TestParse_ImporterIdentifierIsNotAKeyword(t *testing.T) {
	req := require.New(t)
	src := "val importer = 1\nimport a.b.C\n"
	tree, err := Parse("Ident.scala", src)
	req.NoError(err)

	req.Len(tree.Root.Imports, 1)
	req.Equal("a.b", tree.Root.Imports[0].QualifierText())
}

func TestParse_UnbalancedBracesStillClose(t *testing.T) {
	req := require.New(t)
	src := "object Broken {\n  import a.b.C\n"
	tree, err := Parse("Broken.scala", src)
	req.NoError(err)

	req.Len(tree.Root.Children, 1)
	req.Equal(len(src), tree.Root.Children[0].Span.End)
	req.Len(tree.Root.Children[0].Imports, 1)
}
