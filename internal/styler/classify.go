package styler

import "regexp"

// commentRegex matches a line comment token: the marker and at least one
// more character.
var commentRegex = regexp.MustCompile(`^#.+`)

// rule assigns style to any token its predicate accepts.
type rule struct {
	name  string
	style StyleID
	match func(t *Tables, token string) bool
}

func member(c Category) func(*Tables, string) bool {
	return func(t *Tables, token string) bool {
		return t.Contains(c, token)
	}
}

// classificationRules are tried in order and the first match wins. Module
// is checked before builtin, so a name in both tables styles as a module.
var classificationRules = []rule{
	{name: "keyword", style: Keyword, match: member(CategoryKeyword)},
	{name: "operator", style: Operator, match: member(CategoryOperator)},
	{name: "bracket", style: Bracket, match: member(CategoryBracket)},
	{name: "module", style: Module, match: member(CategoryModule)},
	{name: "builtin", style: Function, match: member(CategoryBuiltin)},
	{name: "comment", style: Comment, match: func(_ *Tables, token string) bool {
		return commentRegex.MatchString(token)
	}},
}

// classify returns the style of the first rule matching token, or Regular.
func classify(t *Tables, token string) StyleID {
	for _, r := range classificationRules {
		if r.match(t, token) {
			return r.style
		}
	}
	return Regular
}

// RuleInfo describes one classification rule.
type RuleInfo struct {
	Name  string
	Style StyleID
}

// Rules returns the classification rules in evaluation order. Tokens no rule
// accepts are styled Regular.
func Rules() []RuleInfo {
	out := make([]RuleInfo, len(classificationRules))
	for i, r := range classificationRules {
		out[i] = RuleInfo{Name: r.name, Style: r.style}
	}
	return out
}
