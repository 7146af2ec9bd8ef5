package templates

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	sectionOpen  = "{{#"
	sectionClose = "{{/"
	markerEnd    = "}}"
)

// renderFragment expands section markers, then scalar placeholders.
//
// A section {{#key}}...{{/key}} repeats its body once per record when
// data[key] is a sequence of records (each record becomes the scalar scope
// inside the body), or acts as a conditional when data[key] is a boolean.
// Anything else renders as empty. Scalar placeholders {{key}} are replaced
// by the stringified value, or by the empty string when the key is absent
// or the value is falsy. Lookup is case-sensitive and non-recursive.
func renderFragment(fragment string, data map[string]interface{}) string {
	var out strings.Builder

	for {
		start := strings.Index(fragment, sectionOpen)
		if start < 0 {
			break
		}

		nameEnd := strings.Index(fragment[start:], markerEnd)
		if nameEnd < 0 {
			break
		}

		name := fragment[start+len(sectionOpen) : start+nameEnd]
		bodyStart := start + nameEnd + len(markerEnd)
		closing := sectionClose + name + markerEnd

		closeIdx := strings.Index(fragment[bodyStart:], closing)
		if closeIdx < 0 {
			// Unterminated section: emit the marker verbatim and move on.
			out.WriteString(replaceScalars(fragment[:bodyStart], data))
			fragment = fragment[bodyStart:]
			continue
		}

		out.WriteString(replaceScalars(fragment[:start], data))
		inner := fragment[bodyStart : bodyStart+closeIdx]
		out.WriteString(renderSection(data[name], inner, data))
		fragment = fragment[bodyStart+closeIdx+len(closing):]
	}

	out.WriteString(replaceScalars(fragment, data))
	return out.String()
}

func renderSection(value interface{}, inner string, data map[string]interface{}) string {
	switch v := value.(type) {
	case bool:
		if v {
			return renderFragment(inner, data)
		}
		return ""
	case []map[string]interface{}:
		var b strings.Builder
		for _, row := range v {
			b.WriteString(renderFragment(inner, row))
		}
		return b.String()
	case []interface{}:
		var b strings.Builder
		for _, item := range v {
			if row, ok := item.(map[string]interface{}); ok {
				b.WriteString(renderFragment(inner, row))
			}
		}
		return b.String()
	default:
		return ""
	}
}

func replaceScalars(text string, data map[string]interface{}) string {
	var b strings.Builder

	for {
		start := strings.Index(text, "{{")
		if start < 0 {
			break
		}

		end := strings.Index(text[start:], "}}")
		if end < 0 {
			break
		}

		key := text[start+2 : start+end]
		b.WriteString(text[:start])

		if isPlainKey(key) {
			b.WriteString(stringify(data[key]))
		} else {
			b.WriteString(text[start : start+end+2])
		}

		text = text[start+end+2:]
	}

	b.WriteString(text)
	return b.String()
}

func isPlainKey(key string) bool {
	return key != "" && !strings.ContainsAny(key, "#/{}")
}

// stringify renders falsy values (nil, false, empty string, zero) as the
// empty string, matching how missing keys behave.
func stringify(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		if v {
			return "true"
		}
		return ""
	case int:
		if v == 0 {
			return ""
		}
		return strconv.Itoa(v)
	case int64:
		if v == 0 {
			return ""
		}
		return strconv.FormatInt(v, 10)
	case uint:
		if v == 0 {
			return ""
		}
		return strconv.FormatUint(uint64(v), 10)
	case float64:
		if v == 0 {
			return ""
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", v)
	}
}
