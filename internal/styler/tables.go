package styler

import "slices"

// Category names one of the lookup tables used for classification.
type Category int

const (
	CategoryKeyword Category = iota
	CategoryOperator
	CategoryBracket
	CategoryModule
	CategoryBuiltin
)

func (c Category) String() string {
	switch c {
	case CategoryKeyword:
		return "keyword"
	case CategoryOperator:
		return "operator"
	case CategoryBracket:
		return "bracket"
	case CategoryModule:
		return "module"
	case CategoryBuiltin:
		return "builtin"
	default:
		return "unknown"
	}
}

const numCategories = int(CategoryBuiltin) + 1

// Python reserved words.
var pythonKeywords = []string{
	"False", "None", "True", "and", "as", "assert", "async", "await",
	"break", "class", "continue", "def", "del", "elif", "else", "except",
	"finally", "for", "from", "global", "if", "import", "in", "is",
	"lambda", "nonlocal", "not", "or", "pass", "raise", "return", "try",
	"while", "with", "yield",
}

var (
	arithmeticOperators  = []string{"+", "-", "*", "/", "//", "**", "%", "="}
	conditionalOperators = []string{"==", "!=", "<=", ">="}
	bitwiseOperators     = []string{"&", "|", "^", "~", "<<", ">>"}
)

var brackets = []string{"(", ")", "{", "}", "[", "]"}

// TableSpec lists the strings each category table is built from.
type TableSpec struct {
	Keywords  []string
	Operators []string
	Brackets  []string
	Modules   []string
	Builtins  []string
}

// DefaultSpec returns the built-in keyword, operator and bracket tables
// together with the module and builtin snapshots supplied by the host.
// Either snapshot may be empty.
func DefaultSpec(modules, builtins []string) TableSpec {
	ops := make([]string, 0, len(arithmeticOperators)+len(conditionalOperators)+len(bitwiseOperators))
	ops = append(ops, arithmeticOperators...)
	ops = append(ops, conditionalOperators...)
	ops = append(ops, bitwiseOperators...)

	return TableSpec{
		Keywords:  slices.Clone(pythonKeywords),
		Operators: ops,
		Brackets:  slices.Clone(brackets),
		Modules:   slices.Clone(modules),
		Builtins:  slices.Clone(builtins),
	}
}

func (s TableSpec) section(c Category) []string {
	switch c {
	case CategoryKeyword:
		return s.Keywords
	case CategoryOperator:
		return s.Operators
	case CategoryBracket:
		return s.Brackets
	case CategoryModule:
		return s.Modules
	case CategoryBuiltin:
		return s.Builtins
	}
	return nil
}

// Tables holds the category sets. It is immutable once built and may be
// shared between goroutines without locking.
type Tables struct {
	sets [numCategories]map[string]struct{}
}

// NewTables builds the lookup sets for spec.
func NewTables(spec TableSpec) *Tables {
	t := &Tables{}
	for c := range numCategories {
		words := spec.section(Category(c))
		set := make(map[string]struct{}, len(words))
		for _, w := range words {
			set[w] = struct{}{}
		}
		t.sets[c] = set
	}
	return t
}

// Contains reports whether token is a member of the category table.
func (t *Tables) Contains(c Category, token string) bool {
	if t == nil || int(c) < 0 || int(c) >= numCategories {
		return false
	}
	_, ok := t.sets[c][token]
	return ok
}

// Len returns the number of entries in the category table.
func (t *Tables) Len(c Category) int {
	if t == nil || int(c) < 0 || int(c) >= numCategories {
		return 0
	}
	return len(t.sets[c])
}

// Spec returns the table contents as a sorted TableSpec.
func (t *Tables) Spec() TableSpec {
	words := func(c Category) []string {
		if t == nil {
			return nil
		}
		out := make([]string, 0, len(t.sets[c]))
		for w := range t.sets[c] {
			out = append(out, w)
		}
		slices.Sort(out)
		return out
	}
	return TableSpec{
		Keywords:  words(CategoryKeyword),
		Operators: words(CategoryOperator),
		Brackets:  words(CategoryBracket),
		Modules:   words(CategoryModule),
		Builtins:  words(CategoryBuiltin),
	}
}
