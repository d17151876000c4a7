package imdb

import (
	"fmt"
	"regexp"
	"strings"
)

var prefixedID = regexp.MustCompile(`^(tt|nm)(\d{7,8})$`)

// referencePrefixes are the two-letter prefixes stripped from entity
// references found inside responses (titles, names, companies, keywords,
// videos, award events).
var referencePrefixes = []string{"tt", "nm", "co", "kw", "vi", "ev"}

// canonicalID normalizes a user-supplied identifier to its bare numeric
// form: a purely numeric input of up to 7 digits is left-padded to 7
// characters, a tt/nm-prefixed 7-8 digit id has the prefix stripped.
func canonicalID(input string) (string, error) {
	input = strings.TrimSpace(input)

	if m := prefixedID.FindStringSubmatch(input); m != nil {
		return m[2], nil
	}

	if input == "" {
		return "", fmt.Errorf("empty identifier")
	}
	for _, r := range input {
		if r < '0' || r > '9' {
			return "", fmt.Errorf("invalid identifier %q", input)
		}
	}
	if len(input) > 8 {
		return "", fmt.Errorf("invalid identifier %q: too long", input)
	}
	for len(input) < 7 {
		input = "0" + input
	}
	return input, nil
}

// trimRefID strips a known two-letter entity prefix from a response
// reference id, keeping the numeric remainder as a string so leading
// zeros survive. Unknown shapes pass through unchanged.
func trimRefID(id string) string {
	for _, prefix := range referencePrefixes {
		if strings.HasPrefix(id, prefix) && len(id) > len(prefix) {
			return id[len(prefix):]
		}
	}
	return id
}
