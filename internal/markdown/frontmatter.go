package markdown

import (
	"fmt"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/KirkDiggler/steel-compendium/internal/errors"
)

var frontMatterPattern = regexp.MustCompile(`(?s)^---[ \t]*\n(.*?)\n---[ \t]*(?:\n(.*))?$`)

// FrontMatter is the decoded YAML mapping at the top of a document
type FrontMatter map[string]any

// SplitFrontMatter separates the front-matter block from the body. A document
// without a block returns a nil FrontMatter and the whole text as body.
func SplitFrontMatter(content string) (FrontMatter, string, error) {
	m := frontMatterPattern.FindStringSubmatch(content)
	if m == nil {
		return nil, content, nil
	}

	fm := FrontMatter{}
	if err := yaml.Unmarshal([]byte(m[1]), &fm); err != nil {
		return nil, content, errors.WrapWithCode(err, errors.CodeMissingFrontMatter, "front matter is not valid YAML")
	}

	return fm, strings.TrimSpace(m[2]), nil
}

// String returns the value under key as text. Scalars are formatted, lists
// and maps are ignored.
func (fm FrontMatter) String(key string) string {
	v, ok := fm[key]
	if !ok || v == nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case int, int64, float64, bool:
		return fmt.Sprint(t)
	default:
		return ""
	}
}

// Int returns the value under key as an integer, or 0
func (fm FrontMatter) Int(key string) int {
	switch t := fm[key].(type) {
	case int:
		return t
	case int64:
		return int(t)
	case float64:
		return int(t)
	case string:
		var n int
		if _, err := fmt.Sscanf(strings.TrimSpace(t), "%d", &n); err == nil {
			return n
		}
	}
	return 0
}

// Strings returns the value under key as a list of strings. A scalar string is
// split on commas.
func (fm FrontMatter) Strings(key string) []string {
	switch t := fm[key].(type) {
	case []any:
		out := make([]string, 0, len(t))
		for _, item := range t {
			if s := strings.TrimSpace(fmt.Sprint(item)); s != "" {
				out = append(out, s)
			}
		}
		return out
	case string:
		return SplitList(t)
	}
	return nil
}

// SplitList splits a comma separated list, dropping empty entries
func SplitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
