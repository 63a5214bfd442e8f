package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"

	"modpanel/internal/domain/moderation"
	"modpanel/internal/ports"
	"modpanel/internal/usecase/resolution"
)

func writeTestConfig(t *testing.T, reviewer uuid.UUID) string {
	t.Helper()

	dir := t.TempDir()
	body := fmt.Sprintf(`
central:
  driver: sqlite
  dsn: %s
servers:
  - id: s1
    name: Survival
    driver: sqlite
    dsn: %s
    tables:
      player_mutes: s1_player_mutes
cache:
  driver: sql
  ttl: 1m
access:
  grants:
    "%s":
      - "s1:player.appeals:update.state.any"
      - "s1:player.mutes:*"
`, filepath.Join(dir, "central.sqlite"), filepath.Join(dir, "servers", "s1.sqlite"), reviewer)

	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestNewInitSchemaAndClose(t *testing.T) {
	ctx := context.Background()
	app, err := New(ctx, writeTestConfig(t, uuid.New()))
	require.NoError(t, err)

	require.NoError(t, app.InitSchema(ctx))
	require.Equal(t, []string{"s1"}, app.Servers.IDs())
	require.True(t, app.Central.Migrator().HasTable("bm_web_appeals"))

	server, ok := app.Servers.Get("s1")
	require.True(t, ok)
	require.Equal(t, "s1_player_mutes", server.Config.Tables.PlayerMutes)

	require.NoError(t, app.Close(ctx))
}

func TestModuleResolvesAppealEndToEnd(t *testing.T) {
	ctx := context.Background()
	reviewer := uuid.New()
	configFile := writeTestConfig(t, reviewer)

	var (
		app     *App
		svc     *resolution.Service
		central ports.CentralStore
	)
	fxApp := fx.New(
		Module,
		fx.NopLogger,
		fx.Provide(func() context.Context { return ctx }),
		fx.Provide(
			fx.Annotate(
				func() string { return configFile },
				fx.ResultTags(`name:"configFile"`),
			),
		),
		fx.Populate(&app, &svc, &central),
	)
	require.NoError(t, fxApp.Err())

	startCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	require.NoError(t, fxApp.Start(startCtx))
	t.Cleanup(func() { _ = fxApp.Stop(context.Background()) })

	require.NoError(t, app.InitSchema(ctx))

	server, ok := app.Servers.Get("s1")
	require.True(t, ok)

	var muteID uint64
	require.NoError(t, server.UoW.WithTx(ctx, func(txCtx context.Context) error {
		var err error
		muteID, err = server.Punishments.CreatePunishment(txCtx, ports.PunishmentCreate{
			Kind:     moderation.KindMute,
			PlayerID: uuid.New(),
			ActorID:  uuid.New(),
			Reason:   "spam",
		})
		return err
	}))

	appeal, err := central.Appeals.CreateAppeal(ctx, ports.AppealCreate{
		ServerID:       "s1",
		PunishmentType: moderation.KindMute.AppealType(),
		PunishmentID:   muteID,
		ActorID:        uuid.New(),
	})
	require.NoError(t, err)

	_, err = svc.DeleteMuteFromAppeal(ctx, app.Session(uuid.New()), appeal.AppealID)
	require.True(t, moderation.IsPermissionDenied(err))

	res, err := svc.DeleteMuteFromAppeal(ctx, app.Session(reviewer), appeal.AppealID)
	require.NoError(t, err)
	require.Equal(t, appeal.AppealID, res.AppealID)

	_, err = server.Punishments.GetPunishment(ctx, moderation.KindMute, muteID)
	require.ErrorIs(t, err, ports.ErrNotFound)
}
