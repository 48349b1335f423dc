package core

import (
	"context"
	"fmt"
	"log/slog"
)

// Create validates form and inserts a new row of key.
func (s *Service) Create(ctx context.Context, key string, form map[string]string) (Row, error) {
	def, err := s.editable(key)
	if err != nil {
		return nil, err
	}

	row, err := s.create(ctx, def, form)
	if err != nil {
		return nil, err
	}

	s.LogAudit(ctx, AuditLogParams{
		Action:   ActionCreate,
		Resource: key,
		RecordID: row.ID(),
		Summary:  describeRow(def, row),
	})
	return row, nil
}

// createHook sets derived values or adds checks for one kind of insert.
type createHook func(values Row) ValidationErrors

// create runs validation, defaults and derived fields, then inserts.
// It does not audit; callers decide whether the insert is an admin action.
func (s *Service) create(ctx context.Context, def ResourceDefinition, form map[string]string, hooks ...createHook) (Row, error) {
	values, verrs := ValidateForm(def, form)
	applyDefaults(def, values)
	for _, hook := range hooks {
		verrs = append(verrs, hook(values)...)
	}

	extra, err := s.prepare(ctx, def, values, 0)
	if err != nil {
		return nil, err
	}
	verrs = append(verrs, extra...)
	if len(verrs) > 0 {
		return nil, verrs
	}

	now := s.timestamp()
	values[ColumnCreatedAt] = now
	values[ColumnUpdatedAt] = now

	row, err := s.store.Insert(ctx, def, values)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", def.Info.Key, err)
	}
	return row, nil
}

// Update validates form and saves it over row id of key.
// Fields missing from form keep their current value.
func (s *Service) Update(ctx context.Context, key string, id int64, form map[string]string) (Row, error) {
	def, err := s.editable(key)
	if err != nil {
		return nil, err
	}

	existing, err := s.store.Get(ctx, def, id)
	if err != nil {
		return nil, fmt.Errorf("update %s %d: %w", key, id, err)
	}
	if err := lockedForEdit(def, existing); err != nil {
		return nil, err
	}

	merged := FormValues(def, existing)
	for k, v := range form {
		merged[k] = v
	}

	values, verrs := ValidateForm(def, merged)
	extra, err := s.prepare(ctx, def, values, id)
	if err != nil {
		return nil, err
	}
	verrs = append(verrs, extra...)
	if len(verrs) > 0 {
		return nil, verrs
	}

	values[ColumnUpdatedAt] = s.timestamp()

	row, err := s.store.Update(ctx, def, id, values)
	if err != nil {
		return nil, fmt.Errorf("update %s %d: %w", key, id, err)
	}

	s.LogAudit(ctx, AuditLogParams{
		Action:   ActionUpdate,
		Resource: key,
		RecordID: id,
		Summary:  summarizeChanges(changedFields(def, existing, row)),
	})
	return row, nil
}

// Delete removes row id of key.
func (s *Service) Delete(ctx context.Context, key string, id int64) error {
	def, err := s.editable(key)
	if err != nil {
		return err
	}

	existing, err := s.store.Get(ctx, def, id)
	if err != nil {
		return fmt.Errorf("delete %s %d: %w", key, id, err)
	}

	if err := s.store.Delete(ctx, def, id); err != nil {
		return fmt.Errorf("delete %s %d: %w", key, id, err)
	}

	s.LogAudit(ctx, AuditLogParams{
		Action:   ActionDelete,
		Resource: key,
		RecordID: id,
		Summary:  describeRow(def, existing),
	})
	return nil
}

// editable returns the definition of key if the admin may change it.
func (s *Service) editable(key string) (ResourceDefinition, error) {
	def, err := s.Resource(key)
	if err != nil {
		return def, err
	}
	if def.Info.ReadOnly {
		return def, fmt.Errorf("%w: %s", ErrReadOnly, key)
	}
	return def, nil
}

// prepare fills derived fields and runs checks that need the store:
// slugs, video embed ids and unique values. id is 0 on create.
func (s *Service) prepare(ctx context.Context, def ResourceDefinition, values Row, id int64) (ValidationErrors, error) {
	var errs ValidationErrors

	if def.VideoURLField != "" {
		errs = append(errs, s.prepareVideo(ctx, def, values)...)
	}

	if def.SlugFrom != "" && def.HasField("slug") {
		base := Slugify(values.String("slug"))
		if base == "" {
			base = Slugify(values.String(def.SlugFrom))
		}
		slug, err := s.uniqueSlug(ctx, def, base, id)
		if err != nil {
			return nil, err
		}
		values["slug"] = slug
	}

	if def.Info.PublishedField != "" && def.HasField("published_at") &&
		values.Bool(def.Info.PublishedField) && values["published_at"] == nil {
		values["published_at"] = s.timestamp()
	}

	for _, f := range def.Fields {
		if !f.Unique || values[f.Name] == nil || values.String(f.Name) == "" {
			continue
		}
		rows, err := s.store.FindBy(ctx, def, f.Name, values[f.Name])
		if err != nil {
			return nil, fmt.Errorf("check %s: %w", f.Name, err)
		}
		for _, r := range rows {
			if r.ID() != id {
				errs = append(errs, ValidationError{
					Field:   f.Name,
					Value:   values.String(f.Name),
					Message: "already exists",
				})
				break
			}
		}
	}

	return errs, nil
}

// prepareVideo derives the embed id and thumbnail from the video link and
// fills a blank title from the video lookup.
func (s *Service) prepareVideo(ctx context.Context, def ResourceDefinition, values Row) ValidationErrors {
	var errs ValidationErrors

	raw := values.String(def.VideoURLField)
	if raw != "" {
		videoID := ExtractYouTubeID(raw)
		if videoID == "" {
			return ValidationErrors{{
				Field:   def.VideoURLField,
				Value:   raw,
				Message: "not a recognised youtube link",
			}}
		}

		values["embed_id"] = videoID
		if def.HasField("thumbnail_url") {
			values["thumbnail_url"] = YouTubeThumbnailURL(videoID)
		}

		if values.String("title") == "" && s.videos != nil {
			info, err := s.videos.LookupVideo(ctx, YouTubeWatchURL(videoID))
			if err != nil {
				slog.Warn("video lookup failed", "video_id", videoID, "error", err)
			} else if info.Title != "" {
				values["title"] = info.Title
			}
		}
	}

	if def.HasField("title") && values.String("title") == "" {
		errs = append(errs, ValidationError{Field: "title", Message: "is required"})
	}
	return errs
}
