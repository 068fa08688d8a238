package input

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/WangYihang/site-probe/pkg/domain"
	"github.com/WangYihang/site-probe/pkg/domain/repository"
)

// Loader loads candidate paths
type Loader struct {
	normalizer *domain.Normalizer
	filter     repository.PathFilter
}

// NewLoader creates loader. A non-nil filter drops repeated paths.
func NewLoader(filter repository.PathFilter) *Loader {
	return &Loader{
		normalizer: domain.NewNormalizer(),
		filter:     filter,
	}
}

// Load loads paths from file, "-" reads stdin
func (l *Loader) Load(filePath string) ([]string, error) {
	if filePath == "-" {
		return l.Read(os.Stdin)
	}

	file, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return l.Read(file)
}

// Read loads one path per line, skipping blank lines and # comments
func (l *Loader) Read(r io.Reader) ([]string, error) {
	var paths []string
	scanner := bufio.NewScanner(r)

	for scanner.Scan() {
		line := l.normalizer.Normalize(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if l.filter != nil {
			if l.filter.Contains(line) {
				continue
			}
			l.filter.Add(line)
		}
		paths = append(paths, line)
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return paths, nil
}
