// Package docurl derives display names for documents from their URLs.
package docurl

import (
	"net/url"
	"path"
	"strings"
)

// Filename extracts the document filename from a URL, or "" when the URL
// carries no usable path component. Query strings and fragments are
// stripped; the fragment is consulted as a last resort since some servers
// put the real filename there.
func Filename(rawURL string) string {
	if rawURL == "" {
		return ""
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}

	if name := filenameFromPath(u.Path); name != "" {
		return name
	}
	// Reference fragment as ultimate fallback.
	return filenameFromPath(u.Fragment)
}

func filenameFromPath(p string) string {
	base := path.Base(p)
	if base == "." || base == "/" || base == "" {
		return ""
	}
	if !strings.Contains(base, ".") {
		return ""
	}
	if decoded, err := url.PathUnescape(base); err == nil {
		return decoded
	}
	return base
}

// DisplayName derives a human-readable title for a document URL: the
// filename when one can be extracted, else the decoded last path segment,
// else the URL itself.
func DisplayName(rawURL string) string {
	if name := Filename(rawURL); name != "" {
		return name
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	base := path.Base(u.Path)
	if base != "." && base != "/" && base != "" {
		if decoded, err := url.PathUnescape(base); err == nil {
			return decoded
		}
		return base
	}
	return rawURL
}

// StripFragment returns the URL without its fragment component.
func StripFragment(rawURL string) string {
	if i := strings.IndexByte(rawURL, '#'); i >= 0 {
		return rawURL[:i]
	}
	return rawURL
}
