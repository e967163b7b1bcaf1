package zonbook

import "strings"

var xmlReplacer = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

// escapeXML neutralizes markup-significant characters in scalar values.
// Every reference emission goes through this, element content and attribute
// values alike, so a plan field can never break document structure.
func escapeXML(text string) string {
	return xmlReplacer.Replace(text)
}
