package core

// forms.go handles submissions from the public site.
//
// Visitors may only set the fields listed for each form; everything else
// (status, read flags, timestamps) comes from field defaults or the
// service. Public submissions are not written to the audit log.

import (
	"context"
	"fmt"
	"strings"
)

var (
	donationFormFields  = []string{"donor_name", "email", "amount", "frequency", "program", "message"}
	volunteerFormFields = []string{"name", "email", "phone", "interests", "availability", "message"}
	contactFormFields   = []string{"name", "email", "subject", "message"}
)

// pick copies the allowed keys of form.
func pick(form map[string]string, allowed []string) map[string]string {
	out := make(map[string]string, len(allowed))
	for _, k := range allowed {
		if v, ok := form[k]; ok {
			out[k] = v
		}
	}
	return out
}

// SubmitDonation records a donation pledge. No payment is taken; the row
// starts in "pending" until an admin marks it received.
func (s *Service) SubmitDonation(ctx context.Context, form map[string]string) (Row, error) {
	def, err := s.Resource(KeyDonations)
	if err != nil {
		return nil, err
	}

	positive := func(values Row) ValidationErrors {
		if values["amount"] != nil && values.Float("amount") <= 0 {
			return ValidationErrors{{
				Field:   "amount",
				Value:   form["amount"],
				Message: "must be greater than zero",
			}}
		}
		return nil
	}

	return s.create(ctx, def, pick(form, donationFormFields), positive)
}

// SubmitVolunteer records a volunteer signup in "pending" state.
func (s *Service) SubmitVolunteer(ctx context.Context, form map[string]string) (Row, error) {
	def, err := s.Resource(KeyVolunteers)
	if err != nil {
		return nil, err
	}
	return s.create(ctx, def, pick(form, volunteerFormFields))
}

// SubmitContact records a message from the contact page as unread.
func (s *Service) SubmitContact(ctx context.Context, form map[string]string) (Row, error) {
	def, err := s.Resource(KeyContactMessages)
	if err != nil {
		return nil, err
	}
	return s.create(ctx, def, pick(form, contactFormFields))
}

// Subscribe adds email to the newsletter list.
//
// Subscribing is idempotent: an active subscriber is returned unchanged and
// an unsubscribed one is reactivated, so an address never has two rows.
func (s *Service) Subscribe(ctx context.Context, email, name string) (Row, error) {
	def, err := s.Resource(KeySubscribers)
	if err != nil {
		return nil, err
	}

	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, ValidationErrors{{Field: "email", Message: "is required"}}
	}
	if !IsEmail(email) {
		return nil, ValidationErrors{{Field: "email", Value: email, Message: "invalid email address"}}
	}

	rows, err := s.store.FindBy(ctx, def, "email", email)
	if err != nil {
		return nil, fmt.Errorf("find subscriber: %w", err)
	}

	now := s.timestamp()

	if len(rows) > 0 {
		existing := rows[0]
		if existing.Bool("active") {
			return existing, nil
		}
		row, err := s.store.Update(ctx, def, existing.ID(), Row{
			"active":          true,
			"subscribed_at":   now,
			"unsubscribed_at": nil,
			ColumnUpdatedAt:   now,
		})
		if err != nil {
			return nil, fmt.Errorf("reactivate subscriber: %w", err)
		}
		return row, nil
	}

	stamp := func(values Row) ValidationErrors {
		values["subscribed_at"] = now
		return nil
	}

	return s.create(ctx, def, map[string]string{
		"email":  email,
		"name":   name,
		"active": "true",
	}, stamp)
}

// Unsubscribe deactivates email. Unsubscribing an inactive address is a
// no-op; an unknown address returns ErrNotFound.
func (s *Service) Unsubscribe(ctx context.Context, email string) error {
	def, err := s.Resource(KeySubscribers)
	if err != nil {
		return err
	}

	email = strings.ToLower(strings.TrimSpace(email))
	rows, err := s.store.FindBy(ctx, def, "email", email)
	if err != nil {
		return fmt.Errorf("find subscriber: %w", err)
	}
	if len(rows) == 0 {
		return fmt.Errorf("unsubscribe %q: %w", email, ErrNotFound)
	}

	existing := rows[0]
	if !existing.Bool("active") {
		return nil
	}

	now := s.timestamp()
	_, err = s.store.Update(ctx, def, existing.ID(), Row{
		"active":          false,
		"unsubscribed_at": now,
		ColumnUpdatedAt:   now,
	})
	if err != nil {
		return fmt.Errorf("unsubscribe %q: %w", email, err)
	}
	return nil
}
