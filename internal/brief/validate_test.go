package brief

import (
	"strings"
	"testing"
)

func validRequest() Request {
	return Request{BrandName: "Acme", Platform: "Instagram", Goal: "Awareness", Tone: "Friendly"}
}

func TestValidateAccepts(t *testing.T) {
	v := NewValidator(nil)
	if err := v.Validate(validRequest()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateBrandNameLength(t *testing.T) {
	v := NewValidator(nil)
	cases := []struct {
		name   string
		brand  string
		reason string
	}{
		{"empty", "", "Brand name is required"},
		{"whitespace", "   ", "Brand name is required"},
		{"one char", "A", "Brand name must be at least 2 characters"},
		{"one multibyte char", "é", "Brand name must be at least 2 characters"},
		{"too long", strings.Repeat("a", 101), "Brand name must be less than 100 characters"},
		{"too long multibyte", strings.Repeat("日", 101), "Brand name must be less than 100 characters"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validRequest()
			req.BrandName = tc.brand
			err := v.Validate(req)
			if err == nil {
				t.Fatal("expected validation error")
			}
			if err.Error() != tc.reason {
				t.Fatalf("expected %q, got %q", tc.reason, err.Error())
			}
		})
	}

	for _, length := range []int{2, 100} {
		req := validRequest()
		req.BrandName = strings.Repeat("a", length)
		if err := v.Validate(req); err != nil {
			t.Fatalf("length %d should be accepted: %v", length, err)
		}
		// Bounds count characters, so a 100-character multibyte name fits.
		req.BrandName = strings.Repeat("日", length)
		if err := v.Validate(req); err != nil {
			t.Fatalf("multibyte length %d should be accepted: %v", length, err)
		}
	}
}

func TestValidateBlockedTerms(t *testing.T) {
	v := NewValidator([]string{"badword"})
	req := validRequest()
	req.BrandName = "Totally BADWORD Inc"
	err := v.Validate(req)
	if err == nil || err.Error() != "Brand name contains inappropriate content" {
		t.Fatalf("expected blocked-term rejection, got %v", err)
	}
}

func TestValidateAllowlists(t *testing.T) {
	v := NewValidator(nil)

	req := validRequest()
	req.Platform = "Snapchat"
	err := v.Validate(req)
	if err == nil {
		t.Fatal("expected platform rejection")
	}
	if err.Error() != "Platform must be one of: Instagram, TikTok, UGC" {
		t.Fatalf("unexpected message: %q", err.Error())
	}

	// Membership is case-sensitive.
	req = validRequest()
	req.Platform = "instagram"
	if v.Validate(req) == nil {
		t.Fatal("lowercase platform should be rejected")
	}

	req = validRequest()
	req.Goal = "Growth"
	err = v.Validate(req)
	if err == nil || err.Error() != "Goal must be one of: Awareness, Conversions, Content Assets" {
		t.Fatalf("expected goal rejection, got %v", err)
	}

	req = validRequest()
	req.Tone = "Sarcastic"
	err = v.Validate(req)
	if err == nil || err.Error() != "Tone must be one of: Professional, Friendly, Playful" {
		t.Fatalf("expected tone rejection, got %v", err)
	}
}

func TestValidateErrorType(t *testing.T) {
	v := NewValidator(nil)
	req := validRequest()
	req.Platform = "Snapchat"
	err := v.Validate(req)
	if _, ok := err.(*ValidationError); !ok {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
}
