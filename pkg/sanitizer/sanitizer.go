// Package sanitizer normalizes free-text input before validation. Customer
// names, phones and notes arrive from a public booking form; photo fields
// carry URLs.
package sanitizer

import (
	"net/url"
	"regexp"
	"strings"
)

type Strategy func(string) string

type Pipeline []Strategy

func (p Pipeline) Apply(s string) string {
	for _, fn := range p {
		s = fn(s)
	}
	return s
}

var reMultiSpace = regexp.MustCompile(`\s+`)

func trim(s string) string {
	return strings.TrimSpace(s)
}

func collapseSpaces(s string) string {
	return reMultiSpace.ReplaceAllString(s, " ")
}

// SanitizeText trims and collapses internal whitespace. Used for names,
// descriptions and notes; content is otherwise preserved as typed.
func SanitizeText(input string) string {
	p := Pipeline{trim, collapseSpaces}
	return p.Apply(input)
}

// SanitizePhone keeps the phone free-form (the API contract caps it at 20
// characters, it is not E.164) but strips surrounding and inner noise.
func SanitizePhone(input string) string {
	p := Pipeline{trim, collapseSpaces}
	return p.Apply(input)
}

// SanitizeURL normalizes a photo URL: lowercased scheme/host, https assumed
// when the scheme is missing, tracking parameters dropped. Returns "" for
// anything unparseable.
func SanitizeURL(input string) string {
	s := strings.TrimSpace(input)
	if s == "" {
		return ""
	}

	if !strings.HasPrefix(s, "http://") && !strings.HasPrefix(s, "https://") {
		s = "https://" + s
	}

	u, err := url.Parse(s)
	if err != nil || u.Host == "" {
		return ""
	}

	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)
	u.Path = strings.TrimSuffix(strings.TrimSpace(u.Path), "/")

	q := u.Query()
	qClean := url.Values{}
	for k, values := range q {
		key := strings.TrimSpace(strings.ToLower(k))
		if strings.HasPrefix(key, "utm_") {
			continue
		}
		for _, v := range values {
			if v = strings.TrimSpace(v); v != "" {
				qClean.Add(key, v)
			}
		}
	}
	u.RawQuery = qClean.Encode()

	return u.String()
}

// SanitizeSlice applies a strategy to every element, dropping empties while
// keeping order and duplicates (pack features may legitimately repeat).
func SanitizeSlice(values []string, strategy Strategy) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if s := strategy(v); s != "" {
			out = append(out, s)
		}
	}
	return out
}
