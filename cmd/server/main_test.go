package main

import (
	"context"
	"testing"

	"github.com/JonMunkholm/nonprofit/internal/config"
	"github.com/JonMunkholm/nonprofit/internal/core"
	"github.com/JonMunkholm/nonprofit/internal/store/memory"
)

func TestStartMaintenance(t *testing.T) {
	svc := core.NewService(memory.New())

	if _, err := startMaintenance(context.Background(), svc, config.RetentionConfig{
		AuditRetentionDays:  30,
		MaintenanceSchedule: "not a schedule",
	}); err == nil {
		t.Error("invalid schedule should fail")
	}

	c, err := startMaintenance(context.Background(), svc, config.RetentionConfig{
		AuditRetentionDays:  30,
		MaintenanceSchedule: "0 3 * * *",
	})
	if err != nil {
		t.Fatalf("startMaintenance: %v", err)
	}
	if n := len(c.Entries()); n != 1 {
		t.Errorf("entries = %d, want 1", n)
	}
	<-c.Stop().Done()
}

func TestOpenStore_Memory(t *testing.T) {
	store, release, err := openStore(context.Background(), config.DatabaseConfig{Memory: true})
	if err != nil {
		t.Fatalf("openStore: %v", err)
	}
	defer release()
	if _, ok := store.(*memory.Store); !ok {
		t.Errorf("store = %T, want *memory.Store", store)
	}
}
