package whatsapp

import (
	"fmt"
	"net/url"
	"strings"
)

const DefaultLinkBaseURL = "https://wa.me"

// componentUnescaper undoes url.QueryEscape where encodeURIComponent differs:
// spaces are %20 and !'()* stay literal.
var componentUnescaper = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// EncodeText percent-encodes text exactly like encodeURIComponent.
func EncodeText(text string) string {
	return componentUnescaper.Replace(url.QueryEscape(text))
}

// DeepLink builds <baseURL>/<phone>?text=<encoded text>.
func DeepLink(baseURL, phone, text string) string {
	return fmt.Sprintf("%s/%s?text=%s", strings.TrimRight(baseURL, "/"), phone, EncodeText(text))
}

// NormalizePhone keeps digits only, so "+55 (11) 99999-9999" becomes "5511999999999".
func NormalizePhone(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
