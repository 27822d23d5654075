package driver

import (
	"bufio"
	"fmt"
	"os"
	"regexp"
	"strings"
)

var canonicalToken = regexp.MustCompile(`^\d{8}\.\d{6}$`)

// ExclusionList is the set of known-bad tokens. Membership test only.
type ExclusionList map[string]struct{}

// NewExclusionList builds a list from canonical tokens. A malformed entry is
// a construction error: a list that can never match anything is a
// configuration fault and must not fail silently.
func NewExclusionList(tokens ...string) (ExclusionList, error) {
	list := make(ExclusionList, len(tokens))
	for i, token := range tokens {
		if !canonicalToken.MatchString(token) {
			return nil, NewErrBadListEntry(i+1, token)
		}
		list[token] = struct{}{}
	}
	return list, nil
}

// LoadExclusionList reads a bad-list file: one token per line, blank lines
// and '#' comments ignored.
func LoadExclusionList(path string) (ExclusionList, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening bad list: %w", err)
	}
	defer f.Close()

	list := make(ExclusionList)
	scanner := bufio.NewScanner(f)
	line := 0
	for scanner.Scan() {
		line++
		entry := strings.TrimSpace(scanner.Text())
		if entry == "" || strings.HasPrefix(entry, "#") {
			continue
		}
		if !canonicalToken.MatchString(entry) {
			return nil, NewErrBadListEntry(line, entry)
		}
		list[entry] = struct{}{}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading bad list: %w", err)
	}
	return list, nil
}

func (l ExclusionList) Has(item WorkItem) bool {
	_, ok := l[item.String()]
	return ok
}

func (l ExclusionList) Len() int {
	return len(l)
}
