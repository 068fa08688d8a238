// Package robots turns robots.txt text into a structured document.
//
// The parser is line oriented and never fails: anything it does not
// recognise is skipped, so malformed input only yields an emptier document.
package robots

import (
	"strings"

	"github.com/WangYihang/site-probe/pkg/domain/entity"
)

const (
	directiveSitemap   = "sitemap"
	directiveUserAgent = "user-agent"
	directiveAllow     = "allow"
	directiveDisallow  = "disallow"
)

// Parser implements service.RobotsParser
type Parser struct{}

// NewParser creates a robots.txt parser
func NewParser() *Parser {
	return &Parser{}
}

// Parse implements service.RobotsParser
func (p *Parser) Parse(raw string) *entity.RobotsDocument {
	return Parse(raw)
}

// Parse converts raw robots.txt text into a document.
//
// Sitemap lines are collected wherever they appear. A User-agent line makes
// that token current, reopening its rules if it was seen before. Allow and
// Disallow lines append to the current token and are dropped while no
// User-agent line has been read yet.
func Parse(raw string) *entity.RobotsDocument {
	doc := &entity.RobotsDocument{
		Sitemaps: []string{},
		Rules:    make(map[string]*entity.AgentRules),
		Agents:   []string{},
	}

	var current *entity.AgentRules

	// Lines have no length limit.
	for _, line := range strings.Split(strings.TrimPrefix(raw, "\ufeff"), "\n") {
		key, value, ok := splitDirective(line)
		if !ok {
			continue
		}

		switch key {
		case directiveSitemap:
			doc.Sitemaps = append(doc.Sitemaps, value)
		case directiveUserAgent:
			rules, seen := doc.Rules[value]
			if !seen {
				rules = &entity.AgentRules{Allow: []string{}, Disallow: []string{}}
				doc.Rules[value] = rules
				doc.Agents = append(doc.Agents, value)
			}
			current = rules
		case directiveAllow:
			if current != nil {
				current.Allow = append(current.Allow, value)
			}
		case directiveDisallow:
			if current != nil {
				current.Disallow = append(current.Disallow, value)
			}
		}
	}

	return doc
}

// splitDirective returns the lower-cased key and the trimmed value of a
// "key: value" line. Blank lines, comments and lines without a colon are
// rejected.
func splitDirective(line string) (string, string, bool) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return "", "", false
	}

	key, value, found := strings.Cut(line, ":")
	if !found {
		return "", "", false
	}

	return strings.ToLower(strings.TrimSpace(key)), strings.TrimSpace(value), true
}
