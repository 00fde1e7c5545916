package declare

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	valuePolicyOnce sync.Once
	valuePolicy     *bluemonday.Policy
)

// sanitizeValue strips every tag from a template value. The policy escapes
// text, so entities are decoded again: fields escape on render.
func sanitizeValue(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return raw
	}
	cleaned := valueSanitizer().Sanitize(raw)
	return html.UnescapeString(cleaned)
}

func valueSanitizer() *bluemonday.Policy {
	valuePolicyOnce.Do(func() {
		valuePolicy = bluemonday.StrictPolicy()
	})
	return valuePolicy
}
