package auth

import (
	"encoding/base64"
	"net/url"
	"strings"
)

// Hash returns the HTTP Basic credential for key and secret.
func Hash(key string, secret string) string {
	return base64.StdEncoding.EncodeToString([]byte(key + ":" + secret))
}

type FormField struct {
	Key   string
	Value string
}

// EncodeForm joins fields as key=value pairs in the order given. Keys and
// values are escaped like encodeURIComponent, so spaces become %20.
func EncodeForm(fields ...FormField) string {
	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, escapeComponent(field.Key)+"="+escapeComponent(field.Value))
	}
	return strings.Join(parts, "&")
}

var componentUnescaper = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

func escapeComponent(value string) string {
	return componentUnescaper.Replace(url.QueryEscape(value))
}
