package gen

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/leadforge/salespipe/schema"
)

// renderSchema turns a schema into natural-language shape instructions
// appended to the system prompt.
func renderSchema(s *schema.Schema) string {
	var sb strings.Builder
	sb.WriteString("Respond with a single JSON object and nothing else. ")
	sb.WriteString("The object must match exactly this shape:\n\n{\n")
	renderFields(&sb, s.Fields, 1)
	sb.WriteString("}\n\n")
	sb.WriteString("Rules:\n")
	sb.WriteString("1. Include every non-optional key\n")
	sb.WriteString("2. Use only the listed values for enum fields\n")
	sb.WriteString("3. Keep numbers within their stated bounds\n")
	sb.WriteString("4. Do not add keys that are not listed\n")
	sb.WriteString("5. Return ONLY the JSON object, no additional text\n")
	return sb.String()
}

func renderFields(sb *strings.Builder, fields map[string]schema.Field, depth int) {
	indent := strings.Repeat("  ", depth)

	// Deterministic prompt text regardless of map iteration order.
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		field := fields[name]
		fmt.Fprintf(sb, "%s%q: ", indent, name)
		renderField(sb, field, depth)
		sb.WriteString(",\n")
	}
}

func renderField(sb *strings.Builder, field schema.Field, depth int) {
	indent := strings.Repeat("  ", depth)

	switch field.Type {
	case schema.TypeObject:
		sb.WriteString("{\n")
		renderFields(sb, field.Fields, depth+1)
		sb.WriteString(indent + "}")
	case schema.TypeArray:
		sb.WriteString("[")
		if field.Elem != nil {
			renderField(sb, *field.Elem, depth)
		}
		sb.WriteString(", ...]")
	default:
		fmt.Fprintf(sb, "<%s", field.Type)
		if len(field.Enum) > 0 {
			fmt.Fprintf(sb, ", one of: %s", strings.Join(field.Enum, " | "))
		}
		if field.Min != nil && field.Max != nil {
			fmt.Fprintf(sb, ", %v-%v", *field.Min, *field.Max)
		} else if field.Min != nil {
			fmt.Fprintf(sb, ", >= %v", *field.Min)
		} else if field.Max != nil {
			fmt.Fprintf(sb, ", <= %v", *field.Max)
		}
		sb.WriteString(">")
	}

	if field.Desc != "" {
		fmt.Fprintf(sb, " /* %s */", field.Desc)
	}
	if field.Optional {
		sb.WriteString(" /* optional */")
	}
}

var (
	codeBlockRegex = regexp.MustCompile("(?s)```(?:json)?\\s*({.*?})\\s*```")
	jsonObjRegex   = regexp.MustCompile("(?s){.*}")
)

// extractJSON extracts a JSON object from model output that may wrap it in
// markdown code fences or surrounding prose.
func extractJSON(text string) string {
	if matches := codeBlockRegex.FindStringSubmatch(text); len(matches) > 1 {
		return matches[1]
	}
	if matches := jsonObjRegex.FindStringSubmatch(text); len(matches) > 0 {
		return matches[0]
	}
	return text
}
