package service

import (
	"regexp"
	"strings"
	"testing"
)

func TestGenerateGiftCardKeyFormat(t *testing.T) {
	pattern := regexp.MustCompile(`^[A-Z2-9]{4}(-[A-Z2-9]{4}){3}$`)
	for i := 0; i < 10000; i++ {
		key := generateGiftCardKey()
		if !pattern.MatchString(key) {
			t.Fatalf("key %q does not match expected format", key)
		}
	}
}

func TestGenerateGiftCardKeyExcludesAmbiguousChars(t *testing.T) {
	for _, forbidden := range []string{"O", "I", "0", "1"} {
		if strings.Contains(giftCardKeyAlphabet, forbidden) {
			t.Fatalf("alphabet must not contain %q", forbidden)
		}
	}
	for i := 0; i < 10000; i++ {
		key := generateGiftCardKey()
		if strings.ContainsAny(key, "OI01") {
			t.Fatalf("key %q contains ambiguous character", key)
		}
	}
}

func TestGenerateGiftCardKeyLength(t *testing.T) {
	key := generateGiftCardKey()
	if len(key) != 19 {
		t.Fatalf("expected key length 19, got %d (%q)", len(key), key)
	}
	groups := strings.Split(key, "-")
	if len(groups) != 4 {
		t.Fatalf("expected 4 groups, got %d (%q)", len(groups), key)
	}
	for _, group := range groups {
		if len(group) != 4 {
			t.Fatalf("expected group length 4, got %d (%q)", len(group), key)
		}
	}
}
