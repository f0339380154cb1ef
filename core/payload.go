package core

import (
	"fmt"
	"strconv"
)

// LookupString walks raw through keys and returns the leaf as a string.
// Missing keys and nulls yield "".
func LookupString(raw map[string]any, keys ...string) string {
	var current any = raw
	for _, key := range keys {
		node, ok := current.(map[string]any)
		if !ok {
			return ""
		}
		current = node[key]
	}
	switch typed := current.(type) {
	case nil:
		return ""
	case string:
		return typed
	case float64:
		return strconv.FormatFloat(typed, 'f', -1, 64)
	default:
		return fmt.Sprint(typed)
	}
}
