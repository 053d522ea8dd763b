package extension

import (
	"regexp"

	"github.com/yuin/goldmark"
	gext "github.com/yuin/goldmark/extension"
)

// relaxedURLRegexp accepts any scheme and hosts without a top-level domain.
//
//nolint:gochecknoglobals,lll // compiled once
var relaxedURLRegexp = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9+.\-]{1,31}://[-a-zA-Z0-9@:%._\+~#=]{1,256}(?:\.[a-zA-Z]+)?(?::\d+)?(?:[/#?][-a-zA-Z0-9@:%_+.~#$!?&/=\(\);,'">\^{}\[\]` + "`" + `]*)?`)

// schemeStarts lets every scheme reach the URL pattern; linkify only
// matches URLs whose prefix is in its allowed list.
//
//nolint:gochecknoglobals // read-only
var schemeStarts = func() []string {
	var starts []string
	for c := 'a'; c <= 'z'; c++ {
		starts = append(starts, string(c), string(c-'a'+'A'))
	}
	return starts
}()

// NewAutolink returns goldmark's linkify extension. With relaxed set, URLs
// with any scheme and hosts like "localhost" are linked too.
func NewAutolink(relaxed bool) goldmark.Extender {
	if !relaxed {
		return gext.NewLinkify()
	}
	return gext.NewLinkify(
		gext.WithLinkifyAllowedProtocols(schemeStarts),
		gext.WithLinkifyURLRegexp(relaxedURLRegexp),
	)
}
