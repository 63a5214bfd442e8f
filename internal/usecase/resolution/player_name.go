package resolution

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"modpanel/internal/bootstrap/logging"
	"modpanel/internal/errs"
	"modpanel/internal/ports"
)

func cachePlayerNameKey(serverID string, playerID uuid.UUID) string {
	return "player_name:" + serverID + ":" + playerID.String()
}

// playerName reads a player's current display name from the server store.
// Names can change and be reused, so the cache is only consulted when the
// store read fails for a reason other than a missing player.
func (s *Service) playerName(ctx context.Context, server ports.Server, playerID uuid.UUID) (string, error) {
	key := cachePlayerNameKey(server.Config.ServerID, playerID)

	player, err := server.Players.GetPlayer(ctx, playerID)
	if err == nil {
		s.setCacheBestEffort(ctx, key, player.Name)
		return player.Name, nil
	}
	if errors.Is(err, ports.ErrNotFound) || s.cache == nil {
		return "", errs.Wrapf(err, "load player %s", playerID)
	}

	name, found, cacheErr := s.cache.Get(ctx, key)
	if cacheErr != nil {
		logging.Warn(ctx, "player name cache read failed", slog.String("key", key), slog.Any("err", errs.Loggable(cacheErr)))
	}
	if cacheErr != nil || !found || name == "" {
		return "", errs.Wrapf(err, "load player %s", playerID)
	}
	logging.Warn(ctx, "player store read failed, using cached name",
		slog.String("server_id", server.Config.ServerID),
		slog.String("player_id", playerID.String()),
		slog.Any("err", errs.Loggable(err)),
	)
	return name, nil
}

func (s *Service) setCacheBestEffort(ctx context.Context, key string, value string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, key, value, s.playerNameTTL); err != nil {
		logging.Warn(ctx, "player name cache write failed", slog.String("key", key), slog.Any("err", errs.Loggable(err)))
	}
}
