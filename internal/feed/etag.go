package feed

import (
	"hash/fnv"
	"io"
	"strconv"
	"strings"
	"time"
)

// Validator derives the opaque entity tag for a page from its updated
// timestamp. The tag changes iff the timestamp changes.
func Validator(updated time.Time) string {
	h := fnv.New64a()
	_, _ = io.WriteString(h, updated.UTC().Format(time.RFC3339Nano))
	return strconv.FormatUint(h.Sum64(), 16)
}

// MatchesValidator reports whether a client-supplied If-None-Match value
// matches the computed tag. Quotes and weak prefixes are ignored and "*"
// matches any tag. Independent of any HTTP request type so it can be
// evaluated before the feed body exists.
func MatchesValidator(clientValue, tag string) bool {
	if strings.TrimSpace(clientValue) == "" {
		return false
	}
	for _, cand := range strings.Split(clientValue, ",") {
		cand = strings.TrimSpace(cand)
		cand = strings.TrimPrefix(cand, "W/")
		cand = strings.Trim(cand, `"`)
		if cand == "*" || cand == tag {
			return true
		}
	}
	return false
}
