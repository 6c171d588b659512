package steam

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"unicode"
)

// VDFMap is a parsed VDF key-value structure (nested maps and string values).
type VDFMap map[string]interface{}

// Map returns the nested block stored under key, if any
func (m VDFMap) Map(key string) (VDFMap, bool) {
	v, ok := m[key].(VDFMap)
	return v, ok
}

// String returns the string value stored under key, or ""
func (m VDFMap) String(key string) string {
	v, _ := m[key].(string)
	return v
}

// ParseVDF reads Valve Key-Value format from r and returns the root map.
func ParseVDF(r io.Reader) (VDFMap, error) {
	scanner := bufio.NewScanner(r)
	scanner.Split(scanVDFTokens)

	p := &vdfParser{}
	for scanner.Scan() {
		p.tokens = append(p.tokens, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading vdf: %w", err)
	}
	if len(p.tokens) == 0 {
		return VDFMap{}, nil
	}
	return p.object(true)
}

type vdfParser struct {
	tokens []string
	pos    int
}

// object parses key-value pairs until "}" (or the end of input at top level)
func (p *vdfParser) object(top bool) (VDFMap, error) {
	result := make(VDFMap)
	for p.pos < len(p.tokens) {
		key := p.tokens[p.pos]
		p.pos++
		if key == "}" {
			if top {
				return nil, errors.New("vdf: unexpected }")
			}
			return result, nil
		}
		if p.pos >= len(p.tokens) {
			return nil, fmt.Errorf("vdf: unexpected end after key %q", key)
		}

		value := p.tokens[p.pos]
		p.pos++
		if value != "{" {
			result[key] = value
			continue
		}
		inner, err := p.object(false)
		if err != nil {
			return nil, err
		}
		result[key] = inner
	}
	if !top {
		return nil, errors.New("vdf: unterminated block")
	}
	return result, nil
}

// scanVDFTokens splits on quoted strings and single characters { }.
func scanVDFTokens(data []byte, atEOF bool) (advance int, token []byte, err error) {
	start := 0
	for start < len(data) && unicode.IsSpace(rune(data[start])) {
		start++
	}
	if start >= len(data) {
		if atEOF {
			return start, nil, nil
		}
		return 0, nil, nil
	}
	data = data[start:]

	switch data[0] {
	case '"':
		for i := 1; i < len(data); i++ {
			if data[i] == '\\' && i+1 < len(data) {
				i++
				continue
			}
			if data[i] == '"' {
				return start + i + 1, data[1:i], nil
			}
		}
		if atEOF {
			return start + len(data), nil, errors.New("vdf: unclosed quote")
		}
		return 0, nil, nil
	case '{', '}':
		return start + 1, data[:1], nil
	}

	// Bare word up to the next whitespace, quote or brace
	i := 0
	for i < len(data) && !unicode.IsSpace(rune(data[i])) && !strings.ContainsRune(`"{}`, rune(data[i])) {
		i++
	}
	if i == len(data) && !atEOF {
		return 0, nil, nil
	}
	return start + i, data[:i], nil
}

// libraryPaths extracts library paths from a parsed libraryfolders.vdf root.
// Entries are keyed "0", "1", ... and carry a "path" value.
func libraryPaths(root VDFMap) []string {
	lf, ok := root.Map("libraryfolders")
	if !ok {
		return nil
	}

	indexes := make([]int, 0, len(lf))
	for key := range lf {
		if n, err := strconv.Atoi(key); err == nil {
			indexes = append(indexes, n)
		}
	}
	sort.Ints(indexes)

	var paths []string
	for _, n := range indexes {
		entry, ok := lf.Map(strconv.Itoa(n))
		if !ok {
			continue
		}
		if p := entry.String("path"); p != "" {
			paths = append(paths, p)
		}
	}
	return paths
}

// AppManifest holds parsed fields from an appmanifest_*.acf file.
type AppManifest struct {
	AppID      string
	Name       string
	InstallDir string
}

// ParseAppManifest parses appmanifest_*.acf content and returns AppManifest.
func ParseAppManifest(data string) (AppManifest, error) {
	root, err := ParseVDF(strings.NewReader(data))
	if err != nil {
		return AppManifest{}, err
	}
	state, ok := root.Map("AppState")
	if !ok {
		return AppManifest{}, errors.New("vdf: missing AppState")
	}
	return AppManifest{
		AppID:      state.String("appid"),
		Name:       state.String("name"),
		InstallDir: state.String("installdir"),
	}, nil
}
