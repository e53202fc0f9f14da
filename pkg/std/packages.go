package std

import "strings"

// DefaultImports are the namespaces every compilation unit sees without an
// explicit import, in the order the language layers them.
var DefaultImports = []string{
	"java.lang",
	"scala",
	"scala.Predef",
}

// rootNamespaces are the always-visible root packages. Declarations whose
// qualifier is anchored here keep their original qualifier text verbatim
// when re-rendered.
var rootNamespaces = map[string]bool{
	"java":   true,
	"javax":  true,
	"scala":  true,
	"_root_": true,
}

// DefaultVisibleNames lists members reachable without any import, via
// java.lang, the scala package object or scala.Predef. The table is not
// exhaustive; it covers the names the organizer consults when deciding
// whether a qualifier resolves through default imports.
var DefaultVisibleNames = map[string]bool{
	// java.lang
	"Boolean": true, "Byte": true, "Character": true, "Class": true,
	"Double": true, "Exception": true, "Float": true, "Integer": true,
	"Long": true, "Math": true, "Object": true, "Runnable": true,
	"RuntimeException": true, "Short": true, "String": true,
	"StringBuilder": true, "System": true, "Thread": true, "Throwable": true,

	// scala package object
	"Any": true, "AnyRef": true, "AnyVal": true, "Array": true,
	"BigDecimal": true, "BigInt": true, "Char": true, "Either": true,
	"Function": true, "Int": true, "Iterable": true, "Iterator": true,
	"Left": true, "List": true, "Nil": true, "None": true, "Nothing": true,
	"Option": true, "Right": true, "Seq": true, "Some": true, "Stream": true,
	"Unit": true, "Vector": true,

	// scala.Predef
	"Map": true, "Set": true, "assert": true, "classOf": true,
	"identity": true, "implicitly": true, "locally": true, "print": true,
	"printf": true, "println": true, "require": true,
}

// IsDefaultImported reports whether the qualifier names one of the
// namespaces imported into every scope by default.
func IsDefaultImported(qualifier string) bool {
	for _, d := range DefaultImports {
		if qualifier == d {
			return true
		}
	}
	return false
}

// IsRootNamespace reports whether the qualifier is anchored at an
// always-visible root package.
func IsRootNamespace(qualifier string) bool {
	if qualifier == "" {
		return false
	}
	head := qualifier
	if i := strings.IndexByte(qualifier, '.'); i >= 0 {
		head = qualifier[:i]
	}
	if head == "_root_" {
		rest := strings.TrimPrefix(qualifier, "_root_.")
		if rest == qualifier {
			return true
		}
		return IsRootNamespace(rest)
	}
	return rootNamespaces[head]
}

// IsDefaultVisible reports whether the name is reachable without an import.
func IsDefaultVisible(name string) bool {
	return DefaultVisibleNames[name]
}
