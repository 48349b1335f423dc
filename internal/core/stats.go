package core

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// ResourceStat is the row count of one resource.
type ResourceStat struct {
	Info  ResourceInfo
	Count int64
}

// DashboardStats summarizes the site for the admin dashboard.
type DashboardStats struct {
	Resources         []ResourceStat
	ActiveSubscribers int
	PendingDonations  int
	DonationTotal     float64 // Sum of received donations
	PendingVolunteers int
	UnreadMessages    int
	UpcomingEvents    int
}

// Stats gathers dashboard numbers. The counts run concurrently; the first
// failure cancels the rest.
func (s *Service) Stats(ctx context.Context) (DashboardStats, error) {
	var stats DashboardStats

	defs := All()
	stats.Resources = make([]ResourceStat, len(defs))

	g, gctx := errgroup.WithContext(ctx)

	for i, def := range defs {
		g.Go(func() error {
			n, err := s.store.Count(gctx, def)
			if err != nil {
				return fmt.Errorf("count %s: %w", def.Info.Key, err)
			}
			stats.Resources[i] = ResourceStat{Info: def.Info, Count: n}
			return nil
		})
	}

	if def, ok := Get(KeyDonations); ok {
		g.Go(func() error {
			rows, err := s.store.List(gctx, def)
			if err != nil {
				return fmt.Errorf("sum donations: %w", err)
			}
			for _, r := range rows {
				switch r.String("status") {
				case "pending":
					stats.PendingDonations++
				case "received":
					stats.DonationTotal += r.Float("amount")
				}
			}
			return nil
		})
	}

	if def, ok := Get(KeySubscribers); ok {
		g.Go(func() error {
			rows, err := s.store.FindBy(gctx, def, "active", true)
			if err != nil {
				return fmt.Errorf("count subscribers: %w", err)
			}
			stats.ActiveSubscribers = len(rows)
			return nil
		})
	}

	if def, ok := Get(KeyVolunteers); ok {
		g.Go(func() error {
			rows, err := s.store.FindBy(gctx, def, "status", "pending")
			if err != nil {
				return fmt.Errorf("count volunteers: %w", err)
			}
			stats.PendingVolunteers = len(rows)
			return nil
		})
	}

	if def, ok := Get(KeyContactMessages); ok {
		g.Go(func() error {
			rows, err := s.store.FindBy(gctx, def, "read", false)
			if err != nil {
				return fmt.Errorf("count messages: %w", err)
			}
			stats.UnreadMessages = len(rows)
			return nil
		})
	}

	if _, ok := Get(KeyEvents); ok {
		g.Go(func() error {
			rows, err := s.UpcomingEvents(gctx, 0)
			if err != nil {
				return err
			}
			stats.UpcomingEvents = len(rows)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return DashboardStats{}, err
	}
	return stats, nil
}
