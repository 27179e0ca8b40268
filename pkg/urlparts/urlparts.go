// Package urlparts breaks a URL string down into its protocol, host, path,
// search string, query params and fragment.
//
// Decomposition is plain first-occurrence substring splitting: nothing is
// decoded, validated or copied. Every returned string is a slice of the
// (trimmed) input. A component that would be empty is reported as absent.
package urlparts

import (
	"strings"
)

// Param is a single key=value pair taken from the search string.
type Param struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// URLParts holds the components of a URL. A nil field means the component
// was not found or was empty.
type URLParts struct {
	Protocol *string `json:"protocol"`
	Host     *string `json:"host"`
	Path     *string `json:"path"`
	Search   *string `json:"search"`
	Fragment *string `json:"fragment"`
	Params   []Param `json:"params"`
}

// Parse trims surrounding whitespace from url and extracts every component
// from the trimmed string.
func Parse(url string) URLParts {
	url = strings.TrimSpace(url)

	ps := params(url)
	if ps == nil {
		ps = []Param{}
	}

	return URLParts{
		Protocol: ptr(protocol(url)),
		Host:     ptr(host(url)),
		Path:     ptr(path(url)),
		Search:   ptr(search(url)),
		Fragment: ptr(fragment(url)),
		Params:   ps,
	}
}

// Protocol returns the scheme before the first "://" if it is one of
// http, https or ftp.
func Protocol(url string) (string, bool) { return protocol(strings.TrimSpace(url)) }

// Host returns everything between the scheme separator (if any) and the
// first following '/'.
func Host(url string) (string, bool) { return host(strings.TrimSpace(url)) }

// Path returns everything after the host's trailing '/', up to the first
// '?' or '#'. The leading slash is not included; a trailing one is kept.
func Path(url string) (string, bool) { return path(strings.TrimSpace(url)) }

// Search returns the raw query string: the text after the first '?' with
// any fragment stripped.
func Search(url string) (string, bool) { return search(strings.TrimSpace(url)) }

// Fragment returns the raw text after the first '#'.
func Fragment(url string) (string, bool) { return fragment(strings.TrimSpace(url)) }

// Params splits the search string on '&' and each token on its first '='.
// Tokens with no '=' are dropped. Order and duplicate keys are preserved.
func Params(url string) []Param { return params(strings.TrimSpace(url)) }

func protocol(url string) (string, bool) {
	scheme, ok := Truncate(url, "://", Before)
	if !ok {
		return "", false
	}

	switch scheme {
	case "http", "https", "ftp":
		return scheme, true
	}
	return "", false
}

func host(url string) (string, bool) {
	return Truncate(afterScheme(url), "/", Before)
}

func path(url string) (string, bool) {
	p, ok := Truncate(afterScheme(url), "/", After)
	if !ok {
		return "", false
	}

	if p, ok = Truncate(p, "?", Before); !ok {
		return "", false
	}
	return Truncate(p, "#", Before)
}

func search(url string) (string, bool) {
	s, ok := Truncate(url, "?", After)
	if !ok {
		return "", false
	}
	return Truncate(s, "#", Before)
}

func fragment(url string) (string, bool) {
	return Truncate(url, "#", After)
}

func params(url string) []Param {
	s, ok := search(url)
	if !ok {
		return nil
	}

	var out []Param
	for _, token := range strings.Split(s, "&") {
		k, v, found := strings.Cut(token, "=")
		if !found {
			continue
		}
		out = append(out, Param{Key: k, Value: v})
	}
	return out
}

// afterScheme returns the text following the first "://", or url itself
// when there is nothing after one.
func afterScheme(url string) string {
	if rest, ok := Truncate(url, "://", After); ok {
		return rest
	}
	return url
}

// ptr converts an extractor result into an optional field.
func ptr(s string, ok bool) *string {
	if !ok {
		return nil
	}
	return &s
}
