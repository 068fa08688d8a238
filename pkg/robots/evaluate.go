package robots

import (
	"fmt"
	"strings"

	"github.com/WangYihang/site-probe/pkg/domain/entity"
	"github.com/temoto/robotstxt"
)

// Evaluate reports whether agent may fetch each of paths under the standard
// robots.txt group matching rules. The verdicts are informational only.
func Evaluate(raw []byte, agent string, paths []string) ([]entity.AgentVerdict, error) {
	data, err := robotstxt.FromBytes(raw)
	if err != nil {
		return nil, fmt.Errorf("parse robots.txt: %w", err)
	}

	group := data.FindGroup(agent)

	verdicts := make([]entity.AgentVerdict, 0, len(paths))
	for _, path := range paths {
		if !strings.HasPrefix(path, "/") {
			path = "/" + path
		}
		verdicts = append(verdicts, entity.AgentVerdict{
			Agent:   agent,
			Path:    path,
			Allowed: group.Test(path),
		})
	}
	return verdicts, nil
}
