package llm

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ParseCandidates parses an LLM discovery response into candidates.
// Tolerates markdown code fences and leading/trailing prose.
func ParseCandidates(raw string) ([]Candidate, error) {
	payload, err := extractJSONArray(raw)
	if err != nil {
		return nil, fmt.Errorf("discovery response: %w", err)
	}

	var candidates []Candidate
	if err := json.Unmarshal([]byte(payload), &candidates); err != nil {
		return nil, fmt.Errorf("decode candidates: %w", err)
	}

	// Drop entries without a name; clamp scores into range
	valid := candidates[:0]
	for _, candidate := range candidates {
		if strings.TrimSpace(candidate.Name) == "" {
			continue
		}
		if candidate.FitScore < 0 {
			candidate.FitScore = 0
		}
		if candidate.FitScore > 100 {
			candidate.FitScore = 100
		}
		valid = append(valid, candidate)
	}
	return valid, nil
}

// ParseRawClaims parses an LLM research response into raw claims
func ParseRawClaims(raw string) ([]RawClaim, error) {
	payload, err := extractJSONArray(raw)
	if err != nil {
		return nil, fmt.Errorf("research response: %w", err)
	}

	var claims []RawClaim
	if err := json.Unmarshal([]byte(payload), &claims); err != nil {
		return nil, fmt.Errorf("decode claims: %w", err)
	}

	valid := claims[:0]
	for _, claim := range claims {
		if strings.TrimSpace(claim.Statement) == "" {
			continue
		}
		valid = append(valid, claim)
	}
	return valid, nil
}

// extractJSONArray pulls the outermost JSON array out of a response that may
// be wrapped in code fences or surrounded by prose
func extractJSONArray(raw string) (string, error) {
	s := strings.TrimSpace(raw)

	if idx := strings.Index(s, "```"); idx >= 0 {
		s = s[idx+3:]
		s = strings.TrimPrefix(s, "json")
		if end := strings.Index(s, "```"); end >= 0 {
			s = s[:end]
		}
		s = strings.TrimSpace(s)
	}

	start := strings.Index(s, "[")
	end := strings.LastIndex(s, "]")
	if start < 0 || end < start {
		return "", fmt.Errorf("no JSON array found in response")
	}
	return s[start : end+1], nil
}
