package parser

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/goliatone/go-blog/pkg/interfaces"
)

// Component tags look like JSX elements: an uppercase-initial tag name keeps
// them distinct from plain HTML so prose like <em> passes through untouched.
var (
	startTagPattern = regexp.MustCompile(`<([A-Z][A-Za-z0-9]*)((?:\s+[A-Za-z_][\w-]*(?:\s*=\s*"[^"]*")?)*)\s*(/?)>`)
	endTagPattern   = regexp.MustCompile(`</\s*([A-Z][A-Za-z0-9]*)\s*>`)
	attributePair   = regexp.MustCompile(`([A-Za-z_][\w-]*)(?:\s*=\s*"([^"]*)")?`)
)

// MDXParser parses JSX-style component tags (<Callout type="info">…</Callout>).
type MDXParser struct {
}

// NewMDXParser creates a parser instance.
func NewMDXParser() *MDXParser {
	return &MDXParser{}
}

// Parse returns the list of parsed components in the content.
func (p *MDXParser) Parse(content string) ([]interfaces.ParsedComponent, error) {
	_, parsed, err := p.Extract(content)
	return parsed, err
}

// Extract replaces component tags with placeholders and returns both the
// transformed content and the extracted components. Placeholders are HTML
// comments so they survive Markdown conversion intact. Fenced code blocks and
// inline code spans pass through verbatim so prose can show component tags
// without invoking them.
func (p *MDXParser) Extract(content string) (string, []interfaces.ParsedComponent, error) {
	type stackEntry struct {
		name       string
		startIndex int
		params     map[string]any
	}

	var (
		result []rune
		parsed []interfaces.ParsedComponent
		stack  []stackEntry
	)

	appendString := func(s string) {
		result = append(result, []rune(s)...)
	}

	for _, seg := range splitCodeSegments(content) {
		if seg.code {
			appendString(seg.text)
			continue
		}

		text := seg.text
		position := 0
		for position < len(text) {
			loc := startTagPattern.FindStringIndex(text[position:])
			endLoc := endTagPattern.FindStringIndex(text[position:])

			if loc == nil && endLoc == nil {
				appendString(text[position:])
				break
			}

			startPos := -1
			if loc != nil {
				startPos = position + loc[0]
			}

			endPos := -1
			if endLoc != nil {
				endPos = position + endLoc[0]
			}

			if startPos >= 0 && (endPos == -1 || startPos < endPos) {
				// append text preceding tag
				appendString(text[position:startPos])

				matches := startTagPattern.FindStringSubmatch(text[startPos:])
				if len(matches) < 4 {
					return "", nil, fmt.Errorf("invalid component tag at position %d", startPos)
				}
				name := matches[1]
				params := parseAttributes(matches[2])
				selfClosing := matches[3] == "/"

				if selfClosing {
					placeholder := fmt.Sprintf(interfaces.ComponentPlaceholderFormat, len(parsed))
					appendString(placeholder)
					parsed = append(parsed, interfaces.ParsedComponent{
						Name:   name,
						Params: params,
					})
					position = startPos + len(matches[0])
					continue
				}

				stack = append(stack, stackEntry{
					name:       name,
					startIndex: len(result),
					params:     params,
				})

				position = startPos + len(matches[0])
				continue
			}

			if endPos >= 0 {
				appendString(text[position:endPos])

				matches := endTagPattern.FindStringSubmatch(text[endPos:])
				if len(matches) < 2 {
					return "", nil, fmt.Errorf("invalid component end tag at position %d", endPos)
				}
				name := matches[1]
				if len(stack) == 0 {
					return "", nil, fmt.Errorf("unexpected closing component %s at position %d", name, endPos)
				}

				entry := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				if entry.name != name {
					return "", nil, fmt.Errorf("mismatched component end tag %s, expected %s", name, entry.name)
				}

				inner := string(result[entry.startIndex:])
				result = result[:entry.startIndex]

				placeholder := fmt.Sprintf(interfaces.ComponentPlaceholderFormat, len(parsed))
				appendString(placeholder)

				parsed = append(parsed, interfaces.ParsedComponent{
					Name:   name,
					Params: entry.params,
					Inner:  strings.TrimSpace(inner),
				})

				position = endPos + len(matches[0])
				continue
			}
		}
	}

	if len(stack) > 0 {
		return "", nil, fmt.Errorf("unterminated component %s", stack[len(stack)-1].name)
	}

	return string(result), parsed, nil
}

type segment struct {
	text string
	code bool
}

// splitCodeSegments partitions content into prose and code segments. Fenced
// blocks (``` or ~~~) and inline backtick spans count as code; tag extraction
// never looks inside them. Prose accumulates across lines so tags with
// attributes wrapped onto the next line still scan as one unit.
func splitCodeSegments(content string) []segment {
	var (
		segs   []segment
		prose  strings.Builder
		fenced strings.Builder
		fence  string
	)

	flushProse := func() {
		if prose.Len() > 0 {
			segs = append(segs, segment{text: prose.String()})
			prose.Reset()
		}
	}
	emitCode := func(text string) {
		if text == "" {
			return
		}
		flushProse()
		segs = append(segs, segment{text: text, code: true})
	}

	for _, line := range strings.SplitAfter(content, "\n") {
		if fence != "" {
			fenced.WriteString(line)
			if closesFence(line, fence) {
				emitCode(fenced.String())
				fenced.Reset()
				fence = ""
			}
			continue
		}
		if marker := openingFence(line); marker != "" {
			fence = marker
			fenced.WriteString(line)
			continue
		}
		scanInlineCode(line, &prose, emitCode)
	}
	if fence != "" {
		// unterminated fence runs to end of input
		emitCode(fenced.String())
	}
	flushProse()
	return segs
}

// openingFence reports the fence marker opening a code block, or "" when the
// line does not open one. Markers may be indented up to three spaces; a
// backtick fence cannot carry backticks in its info string.
func openingFence(line string) string {
	trimmed := strings.TrimLeft(line, " ")
	if len(line)-len(trimmed) > 3 {
		return ""
	}

	var marker byte
	switch {
	case strings.HasPrefix(trimmed, "```"):
		marker = '`'
	case strings.HasPrefix(trimmed, "~~~"):
		marker = '~'
	default:
		return ""
	}

	n := 0
	for n < len(trimmed) && trimmed[n] == marker {
		n++
	}
	if marker == '`' && strings.Contains(trimmed[n:], "`") {
		return ""
	}
	return trimmed[:n]
}

// closesFence reports whether the line closes a block opened by fence: the
// same marker, at least as long, and nothing else on the line.
func closesFence(line, fence string) bool {
	trimmed := strings.TrimSpace(line)
	if !strings.HasPrefix(trimmed, fence) {
		return false
	}
	return strings.Trim(trimmed, fence[:1]) == ""
}

// scanInlineCode splits a prose line around inline code spans. An opening
// backtick run pairs with the next run of exactly the same length; an
// unmatched run stays prose.
func scanInlineCode(line string, prose *strings.Builder, emitCode func(string)) {
	for line != "" {
		start := strings.IndexByte(line, '`')
		if start < 0 {
			prose.WriteString(line)
			return
		}

		run := start
		for run < len(line) && line[run] == '`' {
			run++
		}
		ticks := line[start:run]
		rest := line[run:]

		closing := findClosingTicks(rest, ticks)
		if closing < 0 {
			prose.WriteString(line[:run])
			line = rest
			continue
		}

		prose.WriteString(line[:start])
		end := run + closing + len(ticks)
		emitCode(line[start:end])
		line = line[end:]
	}
}

func findClosingTicks(s, ticks string) int {
	offset := 0
	for {
		idx := strings.Index(s[offset:], ticks)
		if idx < 0 {
			return -1
		}
		pos := offset + idx
		end := pos + len(ticks)
		if (pos == 0 || s[pos-1] != '`') && (end >= len(s) || s[end] != '`') {
			return pos
		}
		offset = end
		for offset < len(s) && s[offset] == '`' {
			offset++
		}
	}
}

func parseAttributes(raw string) map[string]any {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return map[string]any{}
	}

	matches := attributePair.FindAllStringSubmatch(raw, -1)
	params := make(map[string]any, len(matches))
	for _, match := range matches {
		if strings.Contains(match[0], "=") {
			params[match[1]] = match[2]
		} else {
			// Bare attributes behave as boolean flags.
			params[match[1]] = true
		}
	}
	return params
}
