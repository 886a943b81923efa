package event

import (
	"net/http"
	"net/textproto"
	"net/url"
	"sort"
	"strings"
)

// mergeHeaders builds an http.Header from the single-value and multi-value
// header maps of a proxy schema. Multi-value entries win; a single-value
// entry is appended only when the multi form has no values under that name.
// Names whose single value is absent from the multi form's values are
// returned (canonicalized, sorted) so the caller can report the discrepancy.
func mergeHeaders(single map[string]string, multi map[string][]string) (http.Header, []string) {
	h := make(http.Header, len(multi)+len(single))

	for name, values := range multi {
		for _, v := range values {
			h.Add(name, v)
		}
	}

	var conflicts []string
	for name, v := range single {
		values := h.Values(name)
		if len(values) == 0 {
			h.Add(name, v)
			continue
		}
		if !containsValue(values, v) {
			conflicts = append(conflicts, textproto.CanonicalMIMEHeaderKey(name))
		}
	}

	sort.Strings(conflicts)
	return h, conflicts
}

// mergeQuery applies the same policy to query parameter maps. Query keys are
// case-sensitive, so no canonicalization happens.
func mergeQuery(single map[string]string, multi map[string][]string) (url.Values, []string) {
	q := make(url.Values, len(multi)+len(single))

	for key, values := range multi {
		if len(values) == 0 {
			continue
		}
		q[key] = append([]string(nil), values...)
	}

	var conflicts []string
	for key, v := range single {
		values := q[key]
		if len(values) == 0 {
			q[key] = []string{v}
			continue
		}
		if !containsValue(values, v) {
			conflicts = append(conflicts, key)
		}
	}

	sort.Strings(conflicts)
	return q, conflicts
}

// joinCookies reassembles the HTTP API cookies list into a single Cookie
// header value.
func joinCookies(cookies []string) string {
	return strings.Join(cookies, "; ")
}

func containsValue(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}
