package brief

import (
	"strings"
	"unicode/utf8"
)

// Allowed values for the three enumerated fields. Membership checks are
// case-sensitive.
var (
	AllowedPlatforms = []string{"Instagram", "TikTok", "UGC"}
	AllowedGoals     = []string{"Awareness", "Conversions", "Content Assets"}
	AllowedTones     = []string{"Professional", "Friendly", "Playful"}
)

// Validator checks a Request against the allowlists and an optional
// blocked-term set. All checks are pure; short-circuits on first failure.
type Validator struct {
	blockedTerms []string
}

func NewValidator(blockedTerms []string) *Validator {
	lowered := make([]string, 0, len(blockedTerms))
	for _, term := range blockedTerms {
		if t := strings.ToLower(strings.TrimSpace(term)); t != "" {
			lowered = append(lowered, t)
		}
	}
	return &Validator{blockedTerms: lowered}
}

func (v *Validator) Validate(req Request) error {
	name := strings.TrimSpace(req.BrandName)
	if name == "" {
		return &ValidationError{Reason: "Brand name is required"}
	}
	// Length bounds count characters, not bytes.
	if utf8.RuneCountInString(name) < 2 {
		return &ValidationError{Reason: "Brand name must be at least 2 characters"}
	}
	if utf8.RuneCountInString(name) > 100 {
		return &ValidationError{Reason: "Brand name must be less than 100 characters"}
	}
	lower := strings.ToLower(name)
	for _, term := range v.blockedTerms {
		if strings.Contains(lower, term) {
			return &ValidationError{Reason: "Brand name contains inappropriate content"}
		}
	}
	if !contains(AllowedPlatforms, req.Platform) {
		return &ValidationError{Reason: "Platform must be one of: " + strings.Join(AllowedPlatforms, ", ")}
	}
	if !contains(AllowedGoals, req.Goal) {
		return &ValidationError{Reason: "Goal must be one of: " + strings.Join(AllowedGoals, ", ")}
	}
	if !contains(AllowedTones, req.Tone) {
		return &ValidationError{Reason: "Tone must be one of: " + strings.Join(AllowedTones, ", ")}
	}
	return nil
}

func contains(set []string, value string) bool {
	for _, item := range set {
		if item == value {
			return true
		}
	}
	return false
}
