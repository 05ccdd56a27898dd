package audit

import (
	"regexp"
	"strings"
)

// uuidSegment matches a full UUID path segment in any case.
var uuidSegment = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)

// NormalizeEndpoint collapses per-resource paths into cardinality-bounded
// endpoint keys suitable for aggregation: the query string is dropped,
// UUID-shaped segments become ":id", and the result is lower-cased, so
// /elections/<uuid>?sort=name and /ELECTIONS/<other-uuid> both map to
// /elections/:id.
func NormalizeEndpoint(path string) string {
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}

	segments := strings.Split(path, "/")
	for i, seg := range segments {
		if uuidSegment.MatchString(seg) {
			segments[i] = ":id"
		}
	}
	return strings.ToLower(strings.Join(segments, "/"))
}
