package registry

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	gormsqlite "github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"modpanel/internal/domain/moderation"
	"modpanel/internal/ports"
)

func openServerDB(t *testing.T, name string) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(gormsqlite.Open(filepath.Join(t.TempDir(), name)), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	return db
}

func TestRegistryAddGetMigrate(t *testing.T) {
	ctx := context.Background()
	reg := New()

	tables := ports.ServerTables{PlayerMutes: "s2_player_mutes"}
	if err := reg.Add(ports.ServerConfig{ServerID: "s2", Name: "Creative", Tables: tables}, openServerDB(t, "s2.db")); err != nil {
		t.Fatalf("Add(s2) error = %v", err)
	}
	if err := reg.Add(ports.ServerConfig{ServerID: "s1", Name: "Survival"}, openServerDB(t, "s1.db")); err != nil {
		t.Fatalf("Add(s1) error = %v", err)
	}
	t.Cleanup(func() { _ = reg.Close() })

	if err := reg.Add(ports.ServerConfig{ServerID: "s1"}, openServerDB(t, "dup.db")); err == nil {
		t.Fatalf("Add() expected error for duplicate server")
	}
	if got := reg.IDs(); len(got) != 2 || got[0] != "s1" || got[1] != "s2" {
		t.Fatalf("IDs() = %v", got)
	}
	if _, ok := reg.Get("missing"); ok {
		t.Fatalf("Get(missing) expected ok=false")
	}

	if err := reg.Migrate(ctx); err != nil {
		t.Fatalf("Migrate() error = %v", err)
	}

	server, ok := reg.Get("s2")
	if !ok {
		t.Fatalf("Get(s2) expected ok=true")
	}

	player := uuid.New()
	var muteID uint64
	err := server.UoW.WithTx(ctx, func(txCtx context.Context) error {
		var err error
		muteID, err = server.Punishments.CreatePunishment(txCtx, ports.PunishmentCreate{
			Kind:     moderation.KindMute,
			PlayerID: player,
			ActorID:  uuid.New(),
			Reason:   "spam",
		})
		return err
	})
	if err != nil {
		t.Fatalf("CreatePunishment() error = %v", err)
	}

	got, err := server.Punishments.GetPunishment(ctx, moderation.KindMute, muteID)
	if err != nil {
		t.Fatalf("GetPunishment() error = %v", err)
	}
	if got.PlayerID != player || got.Reason != "spam" {
		t.Fatalf("GetPunishment() = %+v", got)
	}

	other, _ := reg.Get("s1")
	if _, err := other.Punishments.GetPunishment(ctx, moderation.KindMute, muteID); !errors.Is(err, ports.ErrNotFound) {
		t.Fatalf("GetPunishment() on s1 error = %v, want ErrNotFound", err)
	}
}
