package scalasrc

import (
	"strings"

	"github.com/siyuan-infoblox/scala-imports-organizer/pkg/imports"
	"github.com/siyuan-infoblox/scala-imports-organizer/pkg/std"
)

// scopeNode is one interned scope in the resolver's symbol model. Identity
// comparison of interned nodes is what gives SameScope its structural
// answer: two qualifiers denote the same scope exactly when their owner
// chains intern to the same node.
type scopeNode struct {
	name     string
	parent   *scopeNode
	children map[string]*scopeNode
	members  []string
	implicit map[string]bool
}

func (n *scopeNode) child(name string, create bool) *scopeNode {
	if c, ok := n.children[name]; ok {
		return c
	}
	if !create {
		return nil
	}
	c := &scopeNode{name: name, parent: n, children: make(map[string]*scopeNode)}
	n.children[name] = c
	return c
}

// Resolver is a registrable text-model implementation of imports.Resolver,
// used by the CLI and by tests in place of a compiler symbol table. Scopes
// registered with members form an interned tree; unregistered qualifiers
// fall back to canonical-text comparison.
type Resolver struct {
	root *scopeNode
}

// NewResolver returns an empty resolver.
func NewResolver() *Resolver {
	return &Resolver{root: &scopeNode{children: make(map[string]*scopeNode)}}
}

// RegisterScope records the member set of the scope named by the dotted
// qualifier, creating the owner chain as needed.
func (r *Resolver) RegisterScope(qualifier string, members ...string) {
	node := r.intern(strings.Split(qualifier, "."), true)
	node.members = append(node.members, members...)
}

// RegisterImplicit marks a member of the given scope as implicit, making it
// unsafe to expose through a wildcard collapse.
func (r *Resolver) RegisterImplicit(qualifier, member string) {
	node := r.intern(strings.Split(qualifier, "."), true)
	if node.implicit == nil {
		node.implicit = make(map[string]bool)
	}
	node.implicit[member] = true
	node.members = append(node.members, member)
}

func (r *Resolver) intern(segments []string, create bool) *scopeNode {
	node := r.root
	for _, seg := range segments {
		if seg == "_root_" && node == r.root {
			continue
		}
		node = node.child(seg, create)
		if node == nil {
			return nil
		}
	}
	return node
}

func (r *Resolver) SameScope(a, b imports.Declaration) bool {
	na := r.intern(a.Qualifier, false)
	nb := r.intern(b.Qualifier, false)
	if na != nil && nb != nil {
		return na == nb
	}
	return canonicalText(a.Qualifier) == canonicalText(b.Qualifier)
}

func (r *Resolver) Members(qualifier []string) []string {
	node := r.intern(qualifier, false)
	if node == nil {
		return nil
	}
	return append([]string(nil), node.members...)
}

func (r *Resolver) IsImplicit(qualifier []string, member string) bool {
	node := r.intern(qualifier, false)
	return node != nil && node.implicit[member]
}

// IsFullyLiteral reports whether the qualifier names scopes all the way from
// a root package. Registered scopes and root-namespace paths are literal, as
// is the common multi-segment lower-case package path. A qualifier starting
// at an unknown capitalized name likely hangs off an outer value or import.
func (r *Resolver) IsFullyLiteral(d imports.Declaration) bool {
	if len(d.Qualifier) == 0 {
		return false
	}
	if std.IsRootNamespace(d.QualifierText()) {
		return true
	}
	if r.intern(d.Qualifier, false) != nil {
		return true
	}
	head := d.Qualifier[0]
	if head == "_root_" {
		return true
	}
	if head == "" {
		return false
	}
	return len(d.Qualifier) >= 2 && head[0] >= 'a' && head[0] <= 'z'
}

// ResolvesViaDefaults reports whether the qualifier's non-literal head is a
// name the default imports already make visible, e.g. BigDecimal from the
// scala package.
func (r *Resolver) ResolvesViaDefaults(d imports.Declaration) bool {
	if len(d.Qualifier) == 0 || r.IsFullyLiteral(d) {
		return false
	}
	return std.IsDefaultVisible(d.Qualifier[0])
}

func canonicalText(segments []string) string {
	if len(segments) > 0 && segments[0] == "_root_" {
		segments = segments[1:]
	}
	return strings.Join(segments, ".")
}
