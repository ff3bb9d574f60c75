package parser

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/orgball2608/insta-post-exporter/internal/domain"
	"github.com/orgball2608/insta-post-exporter/pkg/errors"
)

// ReadTargets reads one handle per line. Blank lines and lines starting with
// '#' are skipped, a leading '@' is dropped and "handle,max" sets a per-profile
// cap. Repeated handles keep their first occurrence.
func ReadTargets(r io.Reader, defaultMax int) ([]domain.ProfileTarget, error) {
	targets := []domain.ProfileTarget{}
	seen := make(map[string]struct{})

	scanner := bufio.NewScanner(r)
	for line := 1; scanner.Scan(); line++ {
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		handle, limit, hasLimit := strings.Cut(text, ",")
		handle = strings.TrimPrefix(strings.TrimSpace(handle), "@")
		if handle == "" {
			return nil, errors.Newf(errors.ErrInvalidInput, "line %d: missing username", line)
		}

		target := domain.ProfileTarget{Username: handle, MaxPosts: defaultMax}
		if hasLimit {
			n, err := strconv.Atoi(strings.TrimSpace(limit))
			if err != nil || n < 0 {
				return nil, errors.Newf(errors.ErrInvalidInput, "line %d: invalid max posts %q for '%s'", line, limit, handle)
			}
			target.MaxPosts = n
		}

		key := strings.ToLower(handle)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		targets = append(targets, target)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to read targets")
	}
	return targets, nil
}

// LoadTargets prefers explicit usernames and falls back to the input file.
func LoadTargets(file string, usernames []string, defaultMax int) ([]domain.ProfileTarget, error) {
	if len(usernames) > 0 {
		return ReadTargets(strings.NewReader(strings.Join(usernames, "\n")), defaultMax)
	}
	if file == "" {
		return nil, errors.Newf(errors.ErrInvalidInput, "no usernames given and no input file configured")
	}

	f, err := os.Open(file)
	if err != nil {
		return nil, errors.WrapKind(err, errors.ErrInvalidInput, "failed to open input file "+file)
	}
	defer f.Close()

	return ReadTargets(f, defaultMax)
}
