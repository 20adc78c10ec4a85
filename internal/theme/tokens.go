package theme

import (
	"slices"
	"strconv"
	"strings"

	"github.com/zjrosen/lexstyle/internal/styler"
)

// ColorToken names a themeable color. These are the keys users can override
// under theme.colors in their config.
type ColorToken string

const (
	TokenRegular  ColorToken = "syntax.regular"
	TokenKeyword  ColorToken = "syntax.keyword"
	TokenFunction ColorToken = "syntax.function"
	TokenComment  ColorToken = "syntax.comment"
	TokenOperator ColorToken = "syntax.operator"
	TokenBracket  ColorToken = "syntax.bracket"
	TokenModule   ColorToken = "syntax.module"

	// TokenPaper is the background shared by every style.
	TokenPaper ColorToken = "paper"
)

// styleTokens is indexed by styler.StyleID.
var styleTokens = [styler.NumStyles]ColorToken{
	styler.Regular:  TokenRegular,
	styler.Keyword:  TokenKeyword,
	styler.Function: TokenFunction,
	styler.Comment:  TokenComment,
	styler.Operator: TokenOperator,
	styler.Bracket:  TokenBracket,
	styler.Module:   TokenModule,
}

// AllTokens returns every color token in style id order, paper last.
func AllTokens() []ColorToken {
	tokens := make([]ColorToken, 0, len(styleTokens)+1)
	tokens = append(tokens, styleTokens[:]...)
	return append(tokens, TokenPaper)
}

// TokenFor returns the foreground token of a style id. Unknown ids map to
// the regular token.
func TokenFor(id styler.StyleID) ColorToken {
	if !id.Valid() {
		return TokenRegular
	}
	return styleTokens[id]
}

func isValidToken(token ColorToken) bool {
	return slices.Contains(AllTokens(), token)
}

func isValidHexColor(s string) bool {
	hex, ok := strings.CutPrefix(s, "#")
	if !ok || (len(hex) != 3 && len(hex) != 6) {
		return false
	}
	_, err := strconv.ParseUint(hex, 16, 32)
	return err == nil
}
