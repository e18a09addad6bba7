// Package utils holds parsing helpers shared by the advisor and report
// layers: lenient JSON decoding for model outputs and markdown cleanup.
package utils

import (
	"encoding/json"
	"fmt"

	jsonrepair "github.com/RealAlexandreAI/json-repair"
	hjson "github.com/hjson/hjson-go/v4"
)

// RepairJSON attempts to fix common JSON errors in model outputs: missing
// quotes around keys, single quotes, unclosed brackets, trailing commas,
// comments, and markdown code fences around the payload.
func RepairJSON(malformed string) (string, error) {
	repaired, err := jsonrepair.RepairJSON(malformed)
	if err != nil {
		return "", fmt.Errorf("json repair failed: %v", err)
	}
	return repaired, nil
}

// ParseHJSON parses Hjson (unquoted keys, optional commas, comments,
// multiline strings) and returns equivalent standard JSON.
func ParseHJSON(input string) (string, error) {
	var result interface{}
	if err := hjson.Unmarshal([]byte(input), &result); err != nil {
		return "", fmt.Errorf("hjson parse error: %v", err)
	}

	jsonBytes, err := json.Marshal(result)
	if err != nil {
		return "", fmt.Errorf("json marshal error: %v", err)
	}
	return string(jsonBytes), nil
}

// SmartParse decodes input into schema trying progressively more lenient
// strategies: strict JSON, then repaired JSON, then Hjson. Returns the
// normalized JSON that decoded successfully.
func SmartParse(input string, schema interface{}) (string, error) {
	if err := json.Unmarshal([]byte(input), schema); err == nil {
		return input, nil
	}

	if repaired, err := RepairJSON(input); err == nil {
		if err := json.Unmarshal([]byte(repaired), schema); err == nil {
			return repaired, nil
		}
	}

	if normalized, err := ParseHJSON(input); err == nil {
		if err := json.Unmarshal([]byte(normalized), schema); err == nil {
			return normalized, nil
		}
	}

	return "", fmt.Errorf("smart parse failed: no strategy produced valid JSON")
}
