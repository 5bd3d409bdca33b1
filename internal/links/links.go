// Package links marks hyperlinks that leave the current site so that they
// open in a new browsing context.
package links

import "strings"

const (
	TargetBlank = "_blank"
	RelExternal = "noopener noreferrer"
)

// Element is a hyperlink element whose attributes can be read and written.
type Element interface {
	Attr(name string) (value string, ok bool)
	SetAttr(name, value string)
}

// IsExternal reports whether href should be tagged for a page served from
// origin. The origin test is a literal prefix match on the raw attribute
// value, not a parsed URL comparison: "https://Example.com/x" is external to
// "https://example.com".
func IsExternal(href, origin string) bool {
	if href == "" {
		return false
	}
	if strings.HasPrefix(href, "#") || strings.HasPrefix(href, "/") {
		return false
	}
	if strings.HasPrefix(href, origin) {
		return false
	}
	return strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://")
}

// Tag visits elems once, in order, and sets target and rel on every element
// whose href is external to origin. Other elements are left untouched. It
// returns the number of elements tagged.
func Tag(origin string, elems []Element) int {
	tagged := 0
	for _, el := range elems {
		href, ok := el.Attr("href")
		if !ok || !IsExternal(href, origin) {
			continue
		}
		el.SetAttr("target", TargetBlank)
		el.SetAttr("rel", RelExternal)
		tagged++
	}
	return tagged
}
