package rpa

import "strings"

// NormalizeName converts a user-provided path to the form CollectDir stores
// entry names in.
//
// It performs the following transformations:
//   - Converts backslashes to slashes: `images\bg.png` → "images/bg.png"
//   - Strips leading slashes: "/images/bg.png" → "images/bg.png"
//   - Collapses consecutive slashes: "images//bg.png" → "images/bg.png"
//   - Preserves a trailing slash, so "images/" still selects a directory prefix
//
// Paths containing "." or ".." elements are preserved; ExtractTo rejects
// such names.
func NormalizeName(p string) string {
	p = strings.ReplaceAll(p, `\`, "/")
	trailing := strings.HasSuffix(p, "/")

	parts := strings.Split(p, "/")
	result := parts[:0] // reuse backing array
	for _, part := range parts {
		if part != "" {
			result = append(result, part)
		}
	}
	if len(result) == 0 {
		return ""
	}
	out := strings.Join(result, "/")
	if trailing {
		out += "/"
	}
	return out
}
