package core

// broadcast.go implements the newsletter flow: compose a draft, preview it
// with the number of recipients, then confirm the send.
//
// Delivery is outside this package. Sending records the recipient count
// and timestamp on the broadcast, which then becomes read-only.

import (
	"context"
	"fmt"
)

// Broadcast statuses.
const (
	BroadcastDraft = "draft"
	BroadcastSent  = "sent"
)

// BroadcastPreview is what an admin confirms before sending.
type BroadcastPreview struct {
	Broadcast  Row
	Recipients int
}

// DraftBroadcast validates and stores a new newsletter draft.
func (s *Service) DraftBroadcast(ctx context.Context, subject, body string) (Row, error) {
	return s.Create(ctx, KeyBroadcasts, map[string]string{
		"subject": subject,
		"body":    body,
	})
}

// PreviewBroadcast returns a draft together with the number of active
// subscribers it would go to.
func (s *Service) PreviewBroadcast(ctx context.Context, id int64) (BroadcastPreview, error) {
	row, err := s.Get(ctx, KeyBroadcasts, id)
	if err != nil {
		return BroadcastPreview{}, err
	}
	if row.String("status") == BroadcastSent {
		return BroadcastPreview{Broadcast: row}, fmt.Errorf("%w: broadcast %d", ErrAlreadySent, id)
	}

	subs, err := s.ActiveSubscribers(ctx)
	if err != nil {
		return BroadcastPreview{}, err
	}

	return BroadcastPreview{Broadcast: row, Recipients: len(subs)}, nil
}

// SendBroadcast marks a draft as sent to the current active subscribers.
// A broadcast can be sent once; later calls return ErrAlreadySent.
func (s *Service) SendBroadcast(ctx context.Context, id int64) (Row, error) {
	def, err := s.Resource(KeyBroadcasts)
	if err != nil {
		return nil, err
	}

	s.sendMu.Lock()
	defer s.sendMu.Unlock()

	row, err := s.store.Get(ctx, def, id)
	if err != nil {
		return nil, fmt.Errorf("send broadcast %d: %w", id, err)
	}
	if err := lockedForEdit(def, row); err != nil {
		return nil, err
	}

	subs, err := s.ActiveSubscribers(ctx)
	if err != nil {
		return nil, err
	}

	now := s.timestamp()
	sent, err := s.store.Update(ctx, def, id, Row{
		"status":          BroadcastSent,
		"sent_at":         now,
		"recipient_count": int64(len(subs)),
		ColumnUpdatedAt:   now,
	})
	if err != nil {
		return nil, fmt.Errorf("send broadcast %d: %w", id, err)
	}

	s.LogAudit(ctx, AuditLogParams{
		Action:   ActionBroadcastSend,
		Resource: KeyBroadcasts,
		RecordID: id,
		Summary:  fmt.Sprintf("%s (%d recipients)", sent.String("subject"), len(subs)),
	})
	return sent, nil
}

// ActiveSubscribers returns every subscriber currently on the list.
func (s *Service) ActiveSubscribers(ctx context.Context) ([]Row, error) {
	def, err := s.Resource(KeySubscribers)
	if err != nil {
		return nil, err
	}
	rows, err := s.store.FindBy(ctx, def, "active", true)
	if err != nil {
		return nil, fmt.Errorf("list active subscribers: %w", err)
	}
	return rows, nil
}

// lockedForEdit rejects changes to rows that are final.
func lockedForEdit(def ResourceDefinition, row Row) error {
	if def.Info.Key == KeyBroadcasts && row.String("status") == BroadcastSent {
		return fmt.Errorf("%w: broadcast %d", ErrAlreadySent, row.ID())
	}
	return nil
}
