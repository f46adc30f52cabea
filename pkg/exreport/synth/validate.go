package synth

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/xuri/efp"
	"github.com/xuri/nfp"
)

const (
	maxSheetNameLength = 31
	maxTableNameLength = 255
	maxFormatSections  = 4
	rowPlaceholder     = "{row}"
)

var cellRefName = regexp.MustCompile(`^(?i)([a-z]{1,3}\d+|[rc]|r\d*c\d*)$`)

// checkSheetName applies the worksheet naming rules of the xlsx format.
func checkSheetName(name string) error {
	if name == "" {
		return configf("sheet name is empty")
	}
	if utf8.RuneCountInString(name) > maxSheetNameLength {
		return configf("sheet name %q is longer than %d characters", name, maxSheetNameLength)
	}
	if strings.ContainsAny(name, `:\/?*[]`) {
		return configf("sheet name %q contains one of : \\ / ? * [ ]", name)
	}
	if strings.HasPrefix(name, "'") || strings.HasSuffix(name, "'") {
		return configf("sheet name %q starts or ends with an apostrophe", name)
	}
	return nil
}

// checkFormat rejects number formats the format parser does not understand.
func checkFormat(format string) error {
	if format == "" {
		return nil
	}
	p := nfp.NumberFormatParser()
	sections := p.Parse(format)
	if len(sections) == 0 || len(sections) > maxFormatSections {
		return configf("number format %q has %d sections", format, len(sections))
	}
	for _, section := range sections {
		for _, token := range section.Items {
			if token.TType == nfp.TokenTypeUnknown {
				return configf("number format %q: unknown token %q", format, token.TValue)
			}
		}
	}
	return nil
}

// checkFormula parses a formula pattern with its row placeholder filled in
// and rejects empty or unbalanced expressions.
func checkFormula(pattern string) error {
	if pattern == "" {
		return nil
	}
	formula := strings.TrimPrefix(expandFormula(pattern, 1), "=")
	ps := efp.ExcelParser()
	tokens := ps.Parse(formula)
	if len(tokens) == 0 {
		return configf("formula %q is empty", pattern)
	}
	depth := 0
	for _, t := range tokens {
		switch {
		case t.TType == efp.TokenTypeUnknown:
			return configf("formula %q: unknown token %q", pattern, t.TValue)
		case t.TSubType == efp.TokenSubTypeStart:
			depth++
		case t.TSubType == efp.TokenSubTypeStop:
			depth--
		}
		if depth < 0 {
			break
		}
	}
	if depth != 0 {
		return configf("formula %q has unbalanced parentheses", pattern)
	}
	return nil
}

// expandFormula substitutes the 1-based sheet row into a formula pattern.
func expandFormula(pattern string, row int) string {
	return strings.ReplaceAll(pattern, rowPlaceholder, fmt.Sprint(row))
}

// tableNames hands out unique, valid table names across a workbook.
type tableNames struct {
	used map[string]int
	next int
}

func newTableNames() *tableNames {
	return &tableNames{used: make(map[string]int)}
}

// assign returns a valid unused name derived from want, or TableN when want
// is empty.
func (n *tableNames) assign(want string) string {
	n.next++
	base := sanitizeTableName(want)
	if base == "" {
		base = fmt.Sprintf("Table%d", n.next)
	}
	name := base
	for i := 2; ; i++ {
		key := strings.ToLower(name)
		if _, taken := n.used[key]; !taken {
			n.used[key] = 1
			return name
		}
		name = fmt.Sprintf("%s_%d", base, i)
	}
}

func sanitizeTableName(s string) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(s) {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r), r == '_', r == '.':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	name := b.String()
	if name == "" {
		return ""
	}
	first, _ := utf8.DecodeRuneInString(name)
	if !unicode.IsLetter(first) && first != '_' || cellRefName.MatchString(name) {
		name = "_" + name
	}
	if utf8.RuneCountInString(name) > maxTableNameLength {
		name = string([]rune(name)[:maxTableNameLength])
	}
	return name
}

// foldName returns the key sheet names are compared by.
func foldName(name string) string {
	return strings.ToLower(name)
}
