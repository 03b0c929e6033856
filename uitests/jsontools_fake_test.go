package uitests

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/jsontools/npp-ui-tests/automation/automationtest"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// newFakeJsonTools returns a plugin that understands just enough JSON to produce the output
// the scenarios expect from the real JsonTools.
func newFakeJsonTools() *automationtest.Plugin {
	return &automationtest.Plugin{
		Compress: func(text string) (string, error) {
			v, err := parseJSON(text)
			if err != nil {
				return "", err
			}
			return compactJSON(v), nil
		},
		PrettyPrint: func(text string) (string, error) {
			v, err := parseJSON(text)
			if err != nil {
				return "", err
			}
			return prettyJSON(v, 0), nil
		},
		Query:   runFakeQuery,
		ToCSV:   fakeCSV,
		Lint:    fakeLint,
		Linting: true,
	}
}

// parseJSON reads a document the way JsonTools does as far as the scenarios go. A bare
// number is parsed as a double, since ldvalue would read an integer too large for int64 as
// a wrapped-around int.
func parseJSON(text string) (ldvalue.Value, error) {
	if trimmed := strings.TrimSpace(text); isNumberLiteral(trimmed) {
		f, err := strconv.ParseFloat(trimmed, 64)
		if err == nil || errors.Is(err, strconv.ErrRange) {
			return ldvalue.Float64(f), nil
		}
		return ldvalue.Null(), err
	}
	v := ldvalue.Parse([]byte(text))
	if v.IsNull() && strings.TrimSpace(text) != "null" {
		return v, errors.New("not valid JSON")
	}
	return v, nil
}

func isNumberLiteral(s string) bool {
	if s == "" {
		return false
	}
	for i, c := range s {
		switch {
		case c >= '0' && c <= '9':
		case c == '-' && i == 0:
		case c == '.' || c == 'e' || c == 'E' || c == '+' || c == '-':
		default:
			return false
		}
	}
	return s[0] == '-' || (s[0] >= '0' && s[0] <= '9')
}

// formatNumber renders numbers the way a .NET double is rendered by JsonTools.
func formatNumber(f float64) string {
	if math.Abs(f) >= 1e15 {
		return strconv.FormatFloat(f, 'E', 14, 64)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func sortedKeys(v ldvalue.Value) []string {
	keys := v.Keys()
	sort.Strings(keys)
	return keys
}

func compactJSON(v ldvalue.Value) string {
	switch v.Type() {
	case ldvalue.NumberType:
		return formatNumber(v.Float64Value())
	case ldvalue.ArrayType:
		items := make([]string, 0, v.Count())
		for i := 0; i < v.Count(); i++ {
			items = append(items, compactJSON(v.GetByIndex(i)))
		}
		return "[" + strings.Join(items, ",") + "]"
	case ldvalue.ObjectType:
		var items []string
		for _, k := range sortedKeys(v) {
			items = append(items, ldvalue.String(k).JSONString()+":"+compactJSON(v.GetByKey(k)))
		}
		return "{" + strings.Join(items, ",") + "}"
	default:
		return v.JSONString()
	}
}

func prettyJSON(v ldvalue.Value, depth int) string {
	indent := strings.Repeat("    ", depth+1)
	closing := "\r\n" + strings.Repeat("    ", depth)
	switch v.Type() {
	case ldvalue.ArrayType:
		if v.Count() == 0 {
			return "[]"
		}
		var items []string
		for i := 0; i < v.Count(); i++ {
			items = append(items, indent+prettyJSON(v.GetByIndex(i), depth+1))
		}
		return "[\r\n" + strings.Join(items, ",\r\n") + closing + "]"
	case ldvalue.ObjectType:
		if v.Count() == 0 {
			return "{}"
		}
		var items []string
		for _, k := range sortedKeys(v) {
			items = append(items, indent+ldvalue.String(k).JSONString()+": "+prettyJSON(v.GetByKey(k), depth+1))
		}
		return "{\r\n" + strings.Join(items, ",\r\n") + closing + "}"
	default:
		return compactJSON(v)
	}
}

// runFakeQuery only knows the one query in the tree scenario.
func runFakeQuery(text, query string) (string, error) {
	if query != "s_mul(z, int(@[3].b * 3))" {
		return "", fmt.Errorf("unsupported query %q", query)
	}
	v, err := parseJSON(text)
	if err != nil {
		return "", err
	}
	n := int(v.GetByIndex(3).GetByKey("b").Float64Value() * 3)
	return ldvalue.String(strings.Repeat("z", n)).JSONString(), nil
}

func fakeCSV(text string) (string, error) {
	v, err := parseJSON(text)
	if err != nil {
		return "", err
	}
	if v.Type() != ldvalue.ArrayType || v.Count() == 0 {
		return "", errors.New("not an array of objects")
	}
	keys := sortedKeys(v.GetByIndex(0))
	var b strings.Builder
	b.WriteString(strings.Join(keys, ",") + "\n")
	for i := 0; i < v.Count(); i++ {
		var cells []string
		for _, k := range keys {
			cell := v.GetByIndex(i).GetByKey(k)
			if cell.Type() == ldvalue.StringType {
				cells = append(cells, cell.StringValue())
			} else {
				cells = append(cells, compactJSON(cell))
			}
		}
		b.WriteString(strings.Join(cells, ",") + "\n")
	}
	return b.String(), nil
}

func fakeLint(text string) []string {
	if _, err := parseJSON(text); err == nil {
		return nil
	}
	return []string{
		`Syntax error at position 1: Strings must be quoted with " rather than '`,
		"Syntax error at position 7: No comma between array members",
		"Syntax error at position 10: Unterminated array",
		"Syntax error at position 10: Unterminated object",
	}
}
