package vanilla

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-actionform/pkg/model"
)

var (
	descriptionPolicyOnce sync.Once
	descriptionPolicy     *bluemonday.Policy
)

// sanitizeDescription keeps the inline markup authors use in field
// descriptions (emphasis, links, lists) and strips everything else.
func sanitizeDescription(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	return strings.TrimSpace(descriptionSanitizer().Sanitize(trimmed))
}

func descriptionSanitizer() *bluemonday.Policy {
	descriptionPolicyOnce.Do(func() {
		policy := bluemonday.UGCPolicy()
		policy.RequireNoFollowOnLinks(true)
		policy.AddTargetBlankToFullyQualifiedLinks(true)
		descriptionPolicy = policy
	})
	return descriptionPolicy
}

func controlID(name string) string {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return ""
	}
	return "af-" + strings.Join(strings.Fields(trimmed), "-")
}

// htmlInputType is the type attribute used for widgets rendered as <input>.
func htmlInputType(widget model.WidgetType) string {
	switch widget {
	case model.WidgetDate, model.WidgetDateTimeLocal, model.WidgetTime, model.WidgetNumber:
		return string(widget)
	default:
		return "text"
	}
}

func isTrue(value any) bool {
	switch v := value.(type) {
	case bool:
		return v
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "true", "1", "on":
			return true
		}
	case float64:
		return v == 1
	case int:
		return v == 1
	}
	return false
}

// inputValue formats value for an input's value attribute: nil is blank and
// whole floats drop their fraction.
func inputValue(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	default:
		return fmt.Sprint(v)
	}
}
