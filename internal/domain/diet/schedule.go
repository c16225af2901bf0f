package diet

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"pet-diet-planner/internal/domain/catalog"
)

const (
	minutesPerDay = 24 * 60
	maxOffset     = 30
	snackMinute   = 15 * 60
)

var (
	catAnchors   = [3]int{7*60 + 30, 12*60 + 45, 19*60 + 15}
	otherAnchors = [3]int{8 * 60, 12*60 + 30, 18*60 + 30}
)

// GenerateSchedule arma horarios determinísticos por animal.
// El offset (0-29 min) sale de la identity key y se aplica a todos los horarios.
func GenerateSchedule(identityKey string, mealsPerDay int, species string) string {
	anchors := otherAnchors
	if catalog.IsCatLike(species) {
		anchors = catAnchors
	}

	var slots []int
	switch {
	case mealsPerDay <= 1:
		slots = []int{anchors[0]}
	case mealsPerDay == 2:
		slots = []int{anchors[0], anchors[2]}
	case mealsPerDay == 3:
		slots = []int{anchors[0], anchors[1], anchors[2]}
	default:
		slots = []int{anchors[0], anchors[1], snackMinute, anchors[2]}
	}

	offset := Seed(identityKey) % maxOffset
	out := make([]string, 0, len(slots))
	for _, m := range slots {
		out = append(out, formatMinute(m+offset))
	}
	return strings.Join(out, ",")
}

func formatMinute(m int) string {
	m = ((m % minutesPerDay) + minutesPerDay) % minutesPerDay
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// claves de objeto que aportan el horario, en orden de preferencia
var scheduleKeys = []string{"time", "hour", "hora", "horario", "value", "valor"}

// NormalizeSchedule canoniza horarios heterogéneos a "HH:MM,HH:MM".
// Acepta lista (strings/números/objetos), un objeto o un escalar.
// false => forma no reconocida o ningún elemento utilizable.
func NormalizeSchedule(v any) (string, bool) {
	var tokens []string

	switch t := v.(type) {
	case nil:
		return "", false
	case []any:
		for _, el := range t {
			tokens = append(tokens, scheduleTokens(el)...)
		}
	case []string:
		for _, el := range t {
			tokens = append(tokens, scheduleTokens(el)...)
		}
	default:
		tokens = scheduleTokens(t)
	}

	if len(tokens) == 0 {
		return "", false
	}
	return strings.Join(tokens, ","), true
}

func scheduleTokens(v any) []string {
	switch t := v.(type) {
	case string:
		out := make([]string, 0)
		for _, part := range strings.FieldsFunc(t, func(r rune) bool { return r == ',' || r == ';' || r == '|' }) {
			if hm, ok := canonicalTime(part); ok {
				out = append(out, hm)
			}
		}
		return out
	case float64:
		return numericHour(t)
	case int:
		return numericHour(float64(t))
	case map[string]any:
		for _, k := range scheduleKeys {
			if val, ok := lookupKey(t, k); ok {
				switch val.(type) {
				case string, float64, int:
					return scheduleTokens(val)
				}
			}
		}
	}
	return nil
}

func lookupKey(m map[string]any, key string) (any, bool) {
	if v, ok := m[key]; ok {
		return v, true
	}
	for k, v := range m {
		if strings.EqualFold(k, key) {
			return v, true
		}
	}
	return nil, false
}

// Un número entero 0-23 se interpreta como hora en punto.
func numericHour(f float64) []string {
	if f != math.Trunc(f) || f < 0 || f > 23 {
		return nil
	}
	return []string{fmt.Sprintf("%02d:00", int(f))}
}

// "8:00", "08:00", "8h", "20.30", "8pm", "8:30 am", "20:30hs"
var timeRe = regexp.MustCompile(`^(\d{1,2})(?:[:.h](\d{2}))?\s*(?:h|hs|hrs)?\s*(am|pm|a\.m\.|p\.m\.)?$`)

func canonicalTime(s string) (string, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	m := timeRe.FindStringSubmatch(s)
	if m == nil {
		return "", false
	}
	h, _ := strconv.Atoi(m[1])
	mm := 0
	if m[2] != "" {
		mm, _ = strconv.Atoi(m[2])
	}
	switch strings.ReplaceAll(m[3], ".", "") {
	case "am":
		if h == 12 {
			h = 0
		}
	case "pm":
		if h < 12 {
			h += 12
		}
	}
	if h > 23 || mm > 59 {
		return "", false
	}
	return fmt.Sprintf("%02d:%02d", h, mm), true
}

var hhmmListRe = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d(,([01]\d|2[0-3]):[0-5]\d)*$`)

// IsScheduleString valida el formato canónico "HH:MM(,HH:MM)*".
func IsScheduleString(s string) bool {
	return hhmmListRe.MatchString(s)
}
