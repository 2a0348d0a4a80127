package ioextract

import (
	"strings"
)

// NextLink finds the target of the `rel="next"` link in the value of
// an HTTP Link header (RFC 8288), for example
//
//	<https://api.fda.gov/drug/event.json?search_after=0%3D1&limit=2>; rel="next"
//
// It returns false if the header has no next link.
func NextLink(header string) (string, bool) {
	for _, link := range splitLinks(header) {
		link = strings.TrimSpace(link)
		if !strings.HasPrefix(link, "<") {
			continue
		}
		end := strings.Index(link, ">")
		if end < 0 {
			continue
		}
		target := strings.TrimSpace(link[1:end])
		for _, param := range strings.Split(link[end+1:], ";") {
			key, val, ok := strings.Cut(strings.TrimSpace(param), "=")
			if !ok || !strings.EqualFold(strings.TrimSpace(key), "rel") {
				continue
			}
			val = strings.Trim(strings.TrimSpace(val), `"`)
			for _, rel := range strings.Fields(val) {
				if strings.EqualFold(rel, "next") && target != "" {
					return target, true
				}
			}
		}
	}
	return "", false
}

// splitLinks splits a Link header on commas that are outside of the
// angle brackets, URLs may contain commas themselves.
func splitLinks(header string) []string {
	var res []string
	var inURL bool
	start := 0
	for i, r := range header {
		switch r {
		case '<':
			inURL = true
		case '>':
			inURL = false
		case ',':
			if !inURL {
				res = append(res, header[start:i])
				start = i + 1
			}
		}
	}
	return append(res, header[start:])
}
