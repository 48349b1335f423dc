package core

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// MaxSlugLength bounds generated slugs.
const MaxSlugLength = 80

// Slugify converts a title into a URL slug: accents are folded, letters
// lowercased, and every run of other characters becomes a single dash.
func Slugify(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}

	var b strings.Builder
	pendingDash := false
	for _, r := range strings.ToLower(folded) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingDash && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingDash = false
			b.WriteRune(r)
			continue
		}
		pendingDash = true
	}

	slug := b.String()
	if len(slug) > MaxSlugLength {
		slug = strings.TrimRight(slug[:MaxSlugLength], "-")
	}
	return slug
}

// uniqueSlug returns base, or base-2, base-3, ... so that no other row of
// def uses it. excludeID is the row being updated (0 on create).
func (s *Service) uniqueSlug(ctx context.Context, def ResourceDefinition, base string, excludeID int64) (string, error) {
	if base == "" {
		base = Slugify(def.Info.Singular)
	}

	candidate := base
	for n := 2; ; n++ {
		rows, err := s.store.FindBy(ctx, def, "slug", candidate)
		if err != nil {
			return "", fmt.Errorf("check slug: %w", err)
		}

		taken := false
		for _, r := range rows {
			if r.ID() != excludeID {
				taken = true
				break
			}
		}
		if !taken {
			return candidate, nil
		}

		suffix := fmt.Sprintf("-%d", n)
		trimmed := base
		if len(trimmed)+len(suffix) > MaxSlugLength {
			trimmed = strings.TrimRight(trimmed[:MaxSlugLength-len(suffix)], "-")
		}
		candidate = trimmed + suffix
	}
}
