package config

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"
)

// maxInterpolationPasses caps ${VAR} substitution so mutually referencing
// variables terminate with their literal ${...} text intact instead of
// spinning forever.
const maxInterpolationPasses = 10

var envRefPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// parseEnvFile reads a .env-style file into ordered key/value pairs.
//
// Format: one KEY=VALUE per line, blank lines and #-comment lines are
// skipped, surrounding single or double quotes on the value are stripped.
// ${KEY} references resolve against keys parsed so far; a reference to an
// absent key keeps its literal ${KEY} text.
//
// A missing file is not an error: the caller treats every source file as
// optional. Returns nil pairs in that case.
func parseEnvFile(path string) (map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("config: open %s: %w", path, err)
	}
	defer f.Close()

	pairs := make(map[string]string)
	scanner := bufio.NewScanner(f)
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			return nil, fmt.Errorf("%w: %s line %d", ErrMalformedEnvLine, path, lineNo)
		}

		key = strings.TrimSpace(key)
		if key == "" {
			return nil, fmt.Errorf("%w: %s line %d", ErrMalformedEnvLine, path, lineNo)
		}

		pairs[key] = interpolate(unquote(strings.TrimSpace(value)), pairs)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	return pairs, nil
}

// interpolate substitutes ${KEY} references against resolved, repeating
// until the value is stable or the pass cap is reached. Unknown keys are
// left as literal text.
func interpolate(value string, resolved map[string]string) string {
	for range maxInterpolationPasses {
		next := envRefPattern.ReplaceAllStringFunc(value, func(ref string) string {
			key := ref[2 : len(ref)-1]
			if v, ok := resolved[key]; ok {
				return v
			}
			return ref
		})
		if next == value {
			break
		}
		value = next
	}
	return value
}

func unquote(s string) string {
	if len(s) >= 2 {
		if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') {
			return s[1 : len(s)-1]
		}
	}
	return s
}
