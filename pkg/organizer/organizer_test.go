package organizer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/siyuan-infoblox/scala-imports-organizer/pkg/errors"
	"github.com/siyuan-infoblox/scala-imports-organizer/pkg/imports"
	"github.com/siyuan-infoblox/scala-imports-organizer/pkg/scalasrc"
	"github.com/siyuan-infoblox/scala-imports-organizer/pkg/source"
	"github.com/siyuan-infoblox/scala-imports-organizer/pkg/strategy"
)

func organize(t *testing.T, config Config, src string) (string, error) {
	t.Helper()
	tree, err := scalasrc.Parse("Test.scala", src)
	require.NoError(t, err)

	symbols := scalasrc.NewResolver()
	o := New(config, scalasrc.UsageScanner{Resolver: symbols}, symbols, nil)
	edits, err := o.Organize(tree)
	if err != nil {
		return "", err
	}
	return imports.ApplyEdits(src, edits), nil
}

func TestOrganize_SortsCollapsesAndGroups(t *testing.T) {
	req := require.New(t)
	src := `package com.acme

import scala.concurrent.Future
import com.acme.util.Logging
import java.util.UUID
import scala.concurrent.ExecutionContext

object Service extends Logging {
  val id: UUID = UUID.randomUUID()
  def fetch()(implicit ec: ExecutionContext): Future[Int] = Future(1)
}
`
	got, err := organize(t, Config{
		Strategy: strategy.RecomputeAndModify,
		Groups:   []string{"java", "scala", "com.acme"},
	}, src)
	req.NoError(err)

	expected := `package com.acme

import java.util.UUID

import scala.concurrent.{ExecutionContext, Future}

import com.acme.util.Logging

object Service extends Logging {
  val id: UUID = UUID.randomUUID()
  def fetch()(implicit ec: ExecutionContext): Future[Int] = Future(1)
}
`
	req.Equal(expected, got)
}

func TestOrganize_NoChangeMeansNoEdits(t *testing.T) {
	req := require.New(t)
	src := `import java.util.UUID

import scala.concurrent.Future

val u: UUID = make()
val f: Future[Int] = run()
`
	tree, err := scalasrc.Parse("Stable.scala", src)
	req.NoError(err)

	o := New(Config{
		Strategy: strategy.RecomputeAndModify,
		Groups:   []string{"java", "scala"},
	}, scalasrc.UsageScanner{}, nil, nil)

	edits, err := o.Organize(tree)
	req.NoError(err)
	req.Empty(edits, "an already organized file produces no edits")
}

func TestOrganize_NoImportsIsPreparationError(t *testing.T) {
	req := require.New(t)
	_, err := organize(t, Config{}, "object Empty {\n  val x = 1\n}\n")
	req.Error(err)
	req.True(errors.IsPreparation(err))
	req.Contains(err.Error(), "PackageLevel")
}

func TestOrganize_UnknownConstructGetsPlaceholder(t *testing.T) {
	req := require.New(t)
	tree := &source.Tree{
		File: "Odd.scala",
		Text: "val x = 1\n",
		Root: &source.Scope{Kind: source.ScopeKind(42), Span: imports.Span{Start: 0, End: 10}},
	}
	o := New(Config{}, scalasrc.UsageScanner{}, nil, nil)
	_, err := o.Organize(tree)
	req.Error(err)
	req.True(errors.IsPreparation(err))
	req.Contains(err.Error(), errors.PlaceholderUnknownConstruct)
}

func TestOrganize_ZeroConfigKeepsUsedImports(t *testing.T) {
	req := require.New(t)
	src := "import b.B\nimport a.A\nclass C extends A with B\n"
	got, err := organize(t, Config{}, src)
	req.NoError(err)
	req.Equal("import a.A\nimport b.B\nclass C extends A with B\n", got)
}

func TestOrganize_KeepsCodeBetweenImports(t *testing.T) {
	req := require.New(t)
	src := "import b.B\nclass Foo extends B with A\nimport a.A\n"
	got, err := organize(t, Config{Strategy: strategy.RecomputeAndModify}, src)
	req.NoError(err)
	req.Equal("import a.A\nimport b.B\nclass Foo extends B with A\n", got)
}

func TestOrganize_KeepsStatementsBetweenLocalImports(t *testing.T) {
	req := require.New(t)
	src := `object Main {
  def run(): Unit = {
    import z.Beta
    val marker = 1
    import a.Alpha
    val x = Alpha(Beta, marker)
  }
}
`
	got, err := organize(t, Config{
		Strategy:             strategy.RecomputeAndModify,
		OrganizeLocalImports: true,
	}, src)
	req.NoError(err)

	expected := `object Main {
  def run(): Unit = {
    import a.Alpha
    import z.Beta
    val marker = 1
    val x = Alpha(Beta, marker)
  }
}
`
	req.Equal(expected, got)
}

func TestOrganize_LocalImportsKeepIndentation(t *testing.T) {
	req := require.New(t)
	src := `object Main {
  def run(): Unit = {
    import z.Beta
    import a.Alpha
    val x = Alpha(Beta)
  }
}
`
	got, err := organize(t, Config{
		Strategy:             strategy.RecomputeAndModify,
		OrganizeLocalImports: true,
	}, src)
	req.NoError(err)

	expected := `object Main {
  def run(): Unit = {
    import a.Alpha
    import z.Beta
    val x = Alpha(Beta)
  }
}
`
	req.Equal(expected, got)
}

func TestOrganize_SelectionRestrictsToInnermostScope(t *testing.T) {
	req := require.New(t)
	src := `import z.Top
import a.Also

object Main {
  def run(): Unit = {
    import z.Beta
    import a.Alpha
    val x = Alpha(Beta)
  }
}
`
	cursor := strings.Index(src, "val x")
	got, err := organize(t, Config{
		Strategy:  strategy.RecomputeAndModify,
		Selection: imports.Span{Start: cursor, End: cursor + 1},
	}, src)
	req.NoError(err)

	req.Contains(got, "import z.Top\nimport a.Also", "top-level imports outside the selection stay put")
	req.Contains(got, "import a.Alpha\n    import z.Beta")
}

func TestOrganize_RemoveUnneededDeletesUnusedDeclarations(t *testing.T) {
	req := require.New(t)
	src := `import a.Used
import b.Unused

val u = Used
`
	got, err := organize(t, Config{Strategy: strategy.RemoveUnneeded}, src)
	req.NoError(err)

	req.Equal("import a.Used\n\nval u = Used\n", got)
}

func TestOrganize_AddedImportSurvivesRemoval(t *testing.T) {
	req := require.New(t)
	src := `import a.Used

val u = Used
`
	got, err := organize(t, Config{
		Strategy:     strategy.RemoveUnneeded,
		ImportsToAdd: []strategy.Need{{Qualifier: []string{"com", "acme"}, Name: "Fresh"}},
	}, src)
	req.NoError(err)

	req.Contains(got, "import a.Used\nimport com.acme.Fresh")
}

func TestOrganize_ExpandSplitsMultiSelectorDeclarations(t *testing.T) {
	req := require.New(t)
	src := `import a.b.{Delta, Charlie}

val v = Delta(Charlie)
`
	got, err := organize(t, Config{
		Strategy:      strategy.RecomputeAndModify,
		ExpandImports: true,
	}, src)
	req.NoError(err)

	req.Equal("import a.b.Charlie\nimport a.b.Delta\n\nval v = Delta(Charlie)\n", got)
}
