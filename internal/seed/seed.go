// Package seed loads demo content into an empty site.
//
// Seed files are YAML documents mapping resource keys to lists of records.
// Records go through core.Service.Create, so slugs, embed ids and defaults
// are derived exactly as for admin edits. A resource that already has rows
// is left alone.
//
// Date fields accept relative offsets such as "+14d" or "-3d", resolved
// against the time of seeding, so demo events stay upcoming.
package seed

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/JonMunkholm/nonprofit/internal/core"
)

//go:embed default.yaml
var defaultData []byte

// Default returns the embedded demo content.
func Default() []byte {
	return defaultData
}

// Result reports what a seed run did.
type Result struct {
	Created map[string]int // Rows created per resource
	Skipped []string       // Resources that already had rows
}

var relativeDate = regexp.MustCompile(`^([+-]\d+)d$`)

// Load creates the records in data for every resource that is still empty.
func Load(ctx context.Context, svc *core.Service, data []byte, now time.Time) (Result, error) {
	var doc map[string][]map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Result{}, fmt.Errorf("parse seed data: %w", err)
	}

	for key := range doc {
		if _, ok := core.Get(key); !ok {
			return Result{}, fmt.Errorf("seed data: %w: %s", core.ErrUnknownResource, key)
		}
	}

	ctx = core.ContextWithAdmin(ctx, "seed")
	result := Result{Created: make(map[string]int)}

	for _, def := range core.All() {
		records, ok := doc[def.Info.Key]
		if !ok {
			continue
		}

		n, err := svc.Count(ctx, def.Info.Key)
		if err != nil {
			return result, err
		}
		if n > 0 {
			result.Skipped = append(result.Skipped, def.Info.Key)
			continue
		}

		for i, record := range records {
			form := make(map[string]string, len(record))
			for field, v := range record {
				form[field] = formValue(def, field, v, now)
			}
			if _, err := svc.Create(ctx, def.Info.Key, form); err != nil {
				return result, fmt.Errorf("seed %s #%d: %w", def.Info.Key, i+1, err)
			}
			result.Created[def.Info.Key]++
		}

		slog.Info("seeded resource", "resource", def.Info.Key, "rows", len(records))
	}

	return result, nil
}

// formValue renders a decoded YAML value as a form string.
func formValue(def core.ResourceDefinition, field string, v any, now time.Time) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		if spec, ok := def.Field(field); ok && spec.Type == core.FieldDate {
			return resolveDate(val, now)
		}
		return val
	case []any:
		parts := make([]string, 0, len(val))
		for _, item := range val {
			parts = append(parts, formValue(def, "", item, now))
		}
		return strings.Join(parts, ", ")
	case time.Time:
		return val.UTC().Format(time.RFC3339)
	default:
		return fmt.Sprint(val)
	}
}

// resolveDate turns "+Nd" into a date N days after now. Other values pass
// through unchanged.
func resolveDate(raw string, now time.Time) string {
	m := relativeDate.FindStringSubmatch(strings.TrimSpace(raw))
	if m == nil {
		return raw
	}
	days, err := strconv.Atoi(m[1])
	if err != nil {
		return raw
	}
	return now.UTC().AddDate(0, 0, days).Format(time.RFC3339)
}
