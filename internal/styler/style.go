// Package styler implements the lexical styler used by the editor to colour
// visible text. It splits a text span into tokens, classifies each token
// against priority-ordered category tables and reports the result as
// (byte length, style) runs that cover the span exactly.
package styler

// StyleID identifies a visual style registered with the host renderer.
type StyleID int

// Style identifiers. The numbering is the one the editor widget registers its
// colours and fonts under, so it must not change.
const (
	Regular  StyleID = iota // plain text, whitespace
	Keyword                 // reserved words
	Function                // builtin names
	Comment                 // line comments
	Operator                // arithmetic, conditional, bitwise
	Bracket                 // ( ) { } [ ]
	Module                  // importable module names
)

// NumStyles is the number of defined style identifiers.
const NumStyles = int(Module) + 1

// String returns the style description reported to the host.
func (s StyleID) String() string {
	switch s {
	case Regular:
		return "regular_style"
	case Keyword:
		return "keyword_style"
	case Function:
		return "function_style"
	case Comment:
		return "comment_style"
	case Operator:
		return "operator_style"
	case Bracket:
		return "brackets_style"
	case Module:
		return "module_style"
	default:
		return ""
	}
}

// Valid reports whether s is one of the defined style identifiers.
func (s StyleID) Valid() bool {
	return s >= Regular && s <= Module
}

// ParseStyleID returns the style whose description is name.
func ParseStyleID(name string) (StyleID, bool) {
	for _, s := range AllStyles() {
		if s.String() == name {
			return s, true
		}
	}
	return Regular, false
}

// AllStyles returns every style identifier in numeric order.
func AllStyles() []StyleID {
	return []StyleID{Regular, Keyword, Function, Comment, Operator, Bracket, Module}
}
