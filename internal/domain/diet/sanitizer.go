package diet

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

const fence = "```"

var errNoJSONObject = errors.New("no json object in model output")

// ParseDraft extrae un objeto JSON de la salida del modelo.
// Soporta bloques ```json ... ``` y arrays (se toma el primer elemento objeto).
func ParseDraft(raw string) (map[string]any, error) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return nil, errNoJSONObject
	}

	if strings.HasPrefix(text, fence) {
		text = sliceFenced(text)
	}

	var v any
	if err := json.Unmarshal([]byte(text), &v); err != nil {
		return nil, fmt.Errorf("parse model output: %w", err)
	}

	switch t := v.(type) {
	case map[string]any:
		return t, nil
	case []any:
		for _, el := range t {
			if m, ok := el.(map[string]any); ok {
				return m, nil
			}
		}
	}
	return nil, errNoJSONObject
}

// SanitizeDraft nunca falla: cualquier problema => mapa vacío.
func SanitizeDraft(raw string) map[string]any {
	m, err := ParseDraft(raw)
	if err != nil {
		return map[string]any{}
	}
	return m
}

// sliceFenced prefiere el span {..} y si no hay, el span [..].
func sliceFenced(text string) string {
	if s, ok := span(text, "{", "}"); ok {
		return s
	}
	if s, ok := span(text, "[", "]"); ok {
		return s
	}
	// fence sin JSON reconocible: quitar marcadores y que el parser decida
	text = strings.TrimPrefix(text, fence)
	text = strings.TrimPrefix(text, "json")
	text = strings.TrimSuffix(strings.TrimSpace(text), fence)
	return strings.TrimSpace(text)
}

func span(s, open, close string) (string, bool) {
	start := strings.Index(s, open)
	end := strings.LastIndex(s, close)
	if start == -1 || end == -1 || end <= start {
		return "", false
	}
	return s[start : end+1], true
}
