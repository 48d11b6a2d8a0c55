// SPDX-License-Identifier: MPL-2.0

// Package parser turns a markdown document into executable steps.
// Headings open steps, fenced code blocks become their commands, and
// HTML comment directives (<!-- compass:if ... -->) attach platform
// conditions to the steps they enclose. An optional YAML frontmatter
// block configures lifecycle hooks.
package parser

import (
	"regexp"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
	"gopkg.in/yaml.v3"

	"github.com/eraflo/compass/internal/document"
	"github.com/eraflo/compass/internal/hook"
)

var (
	directiveIfRe    = regexp.MustCompile(`<!--\s*compass:if\s+(\w+)="([^"]+)"\s*-->`)
	directiveEndifRe = regexp.MustCompile(`<!--\s*compass:endif\s*-->`)

	// Placeholders are restricted to alphanumeric names so HTML tags,
	// PHP open tags and generics like <T> are not mistaken for them.
	placeholderRe = regexp.MustCompile(`\{\{([a-zA-Z0-9_-]+)\}\}|<([a-zA-Z0-9_-]+)>`)
)

// Parse converts markdown source into steps plus any hook
// configuration declared in frontmatter.
func Parse(source []byte) ([]document.Step, *hook.Config) {
	hooks, body := splitFrontmatter(source)

	md := goldmark.New()
	root := md.Parser().Parse(text.NewReader(body))

	var (
		steps   []document.Step
		current *document.Step
		active  *document.Condition
	)

	for node := root.FirstChild(); node != nil; node = node.NextSibling() {
		switch n := node.(type) {
		case *ast.Heading:
			if current != nil {
				steps = append(steps, *current)
			}
			current = &document.Step{
				Title:  inlineText(n, body),
				Status: document.StatusPending,
			}
			if active != nil {
				cond := *active
				current.Condition = &cond
			}

		case *ast.FencedCodeBlock:
			if current == nil {
				continue
			}
			content := rawLines(n, body)
			current.CodeBlocks = append(current.CodeBlocks, document.CodeBlock{
				Language:     string(n.Language(body)),
				Content:      content,
				Placeholders: ExtractPlaceholders(content),
			})

		case *ast.HTMLBlock:
			applyDirective(rawLines(n, body), &active)

		default:
			if current == nil {
				continue
			}
			if txt := inlineText(node, body); txt != "" {
				current.Description += txt + "\n"
			}
		}
	}
	if current != nil {
		steps = append(steps, *current)
	}

	return steps, hooks
}

// ExtractPlaceholders returns the unique placeholder names found in
// content, in first-seen order. Both <NAME> and {{NAME}} forms count.
func ExtractPlaceholders(content string) []string {
	var names []string
	for _, match := range placeholderRe.FindAllStringSubmatch(content, -1) {
		name := match[1]
		if name == "" {
			name = match[2]
		}
		found := false
		for _, existing := range names {
			if existing == name {
				found = true
				break
			}
		}
		if !found {
			names = append(names, name)
		}
	}
	return names
}

// splitFrontmatter strips a leading "---" delimited YAML block and
// decodes it as hook configuration. Malformed frontmatter is reported
// and the document is parsed as-is, frontmatter included.
func splitFrontmatter(source []byte) (*hook.Config, []byte) {
	str := string(source)
	rest, ok := strings.CutPrefix(str, "---")
	if !ok {
		return nil, source
	}
	end := strings.Index(rest, "\n---")
	if end < 0 {
		return nil, source
	}

	var cfg hook.Config
	if err := yaml.Unmarshal([]byte(rest[:end]), &cfg); err != nil {
		log.Warn("failed to parse frontmatter", "err", err)
		return nil, source
	}

	body := rest[end+len("\n---"):]
	if after, ok := strings.CutPrefix(body, "\r\n"); ok {
		body = after
	} else if after, ok := strings.CutPrefix(body, "\n"); ok {
		body = after
	}
	return &cfg, []byte(body)
}

func applyDirective(html string, active **document.Condition) {
	if caps := directiveIfRe.FindStringSubmatch(html); caps != nil {
		switch caps[1] {
		case "os":
			*active = &document.Condition{Kind: document.ConditionOs, Value: caps[2]}
		case "env_var_exists":
			*active = &document.Condition{Kind: document.ConditionEnvVarExists, Value: caps[2]}
		case "file_exists":
			*active = &document.Condition{Kind: document.ConditionFileExists, Value: caps[2]}
		default:
			// Unknown condition key; treat as unconditional.
			*active = nil
		}
		return
	}
	if directiveEndifRe.MatchString(html) {
		*active = nil
	}
}

// rawLines concatenates the source lines covered by a block node.
func rawLines(n ast.Node, source []byte) string {
	var sb strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		segment := lines.At(i)
		sb.Write(segment.Value(source))
	}
	return sb.String()
}

// inlineText flattens a node's inline content into plain text,
// preserving soft and hard line breaks.
func inlineText(node ast.Node, source []byte) string {
	var sb strings.Builder
	_ = ast.Walk(node, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if t, ok := n.(*ast.Text); ok {
			sb.Write(t.Segment.Value(source))
			if t.SoftLineBreak() || t.HardLineBreak() {
				sb.WriteByte('\n')
			}
		}
		return ast.WalkContinue, nil
	})
	return sb.String()
}
