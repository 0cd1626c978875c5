package insights

import (
	"fmt"
	"strconv"
	"strings"

	"careerlens/internal/core"
)

// Normalize coerces an arbitrary decoded value into schema-valid insight
// content. It never fails: every field carries an independent coercion rule
// with a safe default, so a maximally malformed input yields the all-default
// record rather than an error.
//
// One asymmetry is deliberate and load-bearing: scalar and enum fields
// always resolve to some value, but salary-range elements missing a role or
// numeric min/max are dropped outright. A placeholder salary band would be
// actively misleading in a way a defaulted enum is not.
func Normalize(decoded any) core.InsightData {
	data := core.DefaultInsightData()

	obj, ok := decoded.(map[string]any)
	if !ok {
		return data
	}

	data.SalaryRanges = normalizeSalaryRanges(obj["salaryRanges"])
	data.GrowthRate = coerceNumber(obj["growthRate"])
	if v, ok := obj["demandLevel"].(string); ok && core.ValidDemandLevel(v) {
		data.DemandLevel = core.DemandLevel(v)
	}
	data.TopSkills = normalizeStringList(obj["topSkills"], core.MaxTopSkills)
	if v, ok := obj["marketOutlook"].(string); ok && core.ValidMarketOutlook(v) {
		data.MarketOutlook = core.MarketOutlook(v)
	}
	data.KeyTrends = normalizeStringList(obj["keyTrends"], core.MaxKeyTrends)
	data.RecommendedSkills = normalizeRecommendedSkills(obj["recommendedSkills"])

	return data
}

// normalizeSalaryRanges flattens the input and keeps only elements with a
// non-empty role and numeric min and max. Zero is a legitimate boundary;
// presence of the numeric field is what is checked, not its truthiness.
func normalizeSalaryRanges(v any) []core.SalaryRange {
	ranges := []core.SalaryRange{}
	for _, elem := range flatten(v) {
		m, ok := elem.(map[string]any)
		if !ok {
			continue
		}
		role := coerceString(m["role"])
		min, minOK := numberValue(m["min"])
		max, maxOK := numberValue(m["max"])
		if role == "" || !minOK || !maxOK {
			continue
		}
		ranges = append(ranges, core.SalaryRange{
			Role:     role,
			Min:      min,
			Max:      max,
			Median:   coerceNumber(m["median"]),
			Location: coerceString(m["location"]),
		})
	}
	return ranges
}

func normalizeStringList(v any, max int) []string {
	flat := flatten(v)
	if len(flat) > max {
		flat = flat[:max]
	}
	out := make([]string, 0, len(flat))
	for _, elem := range flat {
		out = append(out, coerceString(elem))
	}
	return out
}

func normalizeRecommendedSkills(v any) []core.RecommendedSkill {
	skills := []core.RecommendedSkill{}
	for _, elem := range flatten(v) {
		m, _ := elem.(map[string]any)
		rec := core.RecommendedSkill{
			Skill:   coerceString(m["skill"]),
			Sources: []core.LearningSource{},
		}
		sources := flatten(m["sources"])
		if len(sources) > core.MaxSourcesPerSkill {
			sources = sources[:core.MaxSourcesPerSkill]
		}
		for _, src := range sources {
			sm, _ := src.(map[string]any)
			typ := coerceString(sm["type"])
			if typ == "" {
				typ = core.DefaultSourceType
			}
			rec.Sources = append(rec.Sources, core.LearningSource{
				Name: coerceString(sm["name"]),
				Type: typ,
				URL:  coerceString(sm["url"]),
			})
		}
		skills = append(skills, rec)
	}
	return skills
}

// flatten collapses arbitrarily nested arrays into one flat sequence. The
// model sometimes wraps arrays in extra array layers; non-array input
// yields an empty sequence.
func flatten(v any) []any {
	arr, ok := v.([]any)
	if !ok {
		return nil
	}
	flat := make([]any, 0, len(arr))
	for _, elem := range arr {
		if nested, ok := elem.([]any); ok {
			flat = append(flat, flatten(nested)...)
		} else {
			flat = append(flat, elem)
		}
	}
	return flat
}

// numberValue reports whether v is a native JSON number, returning it as-is
// when it is. Used where a field must be numerically present rather than
// merely coercible.
func numberValue(v any) (float64, bool) {
	n, ok := v.(float64)
	return n, ok
}

// coerceNumber turns anything into a number: native numbers pass through,
// everything else is stringified, stripped of all non-digit/non-dot
// characters ("15%" -> 15, "$120,000" -> 120000), and parsed. Failure
// defaults to 0.
func coerceNumber(v any) float64 {
	if n, ok := numberValue(v); ok {
		return n
	}
	var b strings.Builder
	for _, r := range coerceString(v) {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}
	n, err := strconv.ParseFloat(b.String(), 64)
	if err != nil {
		return 0
	}
	return n
}

// coerceString stringifies non-string values instead of rejecting them;
// absent values become the empty string.
func coerceString(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(s)
	default:
		return fmt.Sprintf("%v", s)
	}
}
