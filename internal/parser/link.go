// internal/parser/link.go
package parser

import (
	"net/url"
	"strings"
)

// AnchorTarget returns the element id an index link such as
// <a href="#table_55"> points at. It returns "" for links that lead off the
// page or carry no fragment.
func AnchorTarget(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	ref, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	if ref.Scheme != "" && ref.Scheme != "http" && ref.Scheme != "https" {
		return ""
	}
	return ref.Fragment
}
