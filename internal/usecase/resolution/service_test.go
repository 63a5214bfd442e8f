package resolution

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	gormsqlite "github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"modpanel/internal/domain/moderation"
	"modpanel/internal/infrastructure/acl"
	"modpanel/internal/infrastructure/persistence/gormsql/model"
	"modpanel/internal/infrastructure/persistence/gormsql/repository"
	"modpanel/internal/infrastructure/persistence/gormsql/uow"
	"modpanel/internal/infrastructure/registry"
	"modpanel/internal/ports"
)

const (
	testServerID  = "s1"
	permissionMsg = "You do not have permission to perform this action, please contact your server administrator"
)

var testNow = time.Unix(1_700_000_000, 0)

type testCache struct {
	data map[string]string
}

func newTestCache() *testCache {
	return &testCache{data: make(map[string]string)}
}

func (c *testCache) Get(_ context.Context, key string) (string, bool, error) {
	v, ok := c.data[key]
	return v, ok, nil
}

func (c *testCache) Set(_ context.Context, key string, value string, _ time.Duration) error {
	c.data[key] = value
	return nil
}

func (c *testCache) Delete(_ context.Context, key string) error {
	delete(c.data, key)
	return nil
}

type fixture struct {
	svc     *Service
	central ports.CentralStore
	server  ports.Server
	cache   *testCache
}

func openDB(t *testing.T, name string) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(gormsqlite.Open(filepath.Join(t.TempDir(), name+".sqlite")), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

func setupFixture(t *testing.T) *fixture {
	t.Helper()

	centralDB := openDB(t, "central")
	require.NoError(t, centralDB.AutoMigrate(model.CentralModels()...))

	servers := registry.New()
	require.NoError(t, servers.Add(ports.ServerConfig{ServerID: testServerID, Name: "Survival"}, openDB(t, "server")))
	require.NoError(t, servers.Migrate(context.Background()))

	central := ports.CentralStore{
		Appeals: repository.NewAppealRepository(centralDB),
		Reports: repository.NewReportRepository(centralDB),
		UoW:     uow.NewUnitOfWork(centralDB, ports.CentralScope),
	}
	server, ok := servers.Get(testServerID)
	require.True(t, ok)

	cache := newTestCache()
	return &fixture{
		svc:     NewService(central, servers, cache, WithClock(func() time.Time { return testNow })),
		central: central,
		server:  server,
		cache:   cache,
	}
}

func session(actor uuid.UUID, grants ...string) Session {
	return Session{
		PlayerID: actor,
		ACL:      acl.Grants{actor.String(): grants}.ForActor(actor),
	}
}

func (f *fixture) createPunishment(t *testing.T, in ports.PunishmentCreate) uint64 {
	t.Helper()

	var id uint64
	err := f.server.UoW.WithTx(context.Background(), func(txCtx context.Context) error {
		var err error
		id, err = f.server.Punishments.CreatePunishment(txCtx, in)
		return err
	})
	require.NoError(t, err)
	return id
}

func (f *fixture) createAppeal(t *testing.T, kind moderation.PunishmentKind, punishmentID uint64, actor uuid.UUID, assignee uuid.UUID) ports.Appeal {
	t.Helper()

	appeal, err := f.central.Appeals.CreateAppeal(context.Background(), ports.AppealCreate{
		ServerID:       testServerID,
		PunishmentType: kind.AppealType(),
		PunishmentID:   punishmentID,
		ActorID:        actor,
		AssigneeID:     assignee,
		State:          moderation.StateOpen,
		Reason:         "please",
	})
	require.NoError(t, err)
	return appeal
}

func (f *fixture) createReport(t *testing.T, player uuid.UUID, actor uuid.UUID, assignee uuid.UUID) ports.Report {
	t.Helper()

	report, err := f.central.Reports.CreateReport(context.Background(), ports.ReportCreate{
		ServerID:   testServerID,
		PlayerID:   player,
		ActorID:    actor,
		AssigneeID: assignee,
		State:      moderation.StateOpen,
		Reason:     "toxic",
	})
	require.NoError(t, err)
	return report
}

func (f *fixture) addPlayer(t *testing.T, name string) uuid.UUID {
	t.Helper()

	id := uuid.New()
	require.NoError(t, f.server.Players.UpsertPlayer(context.Background(), ports.Player{PlayerID: id, Name: name}))
	return id
}

// muteAppeal seeds a mute issued by punisher and an open appeal on it by appellant.
func (f *fixture) muteAppeal(t *testing.T, punisher uuid.UUID, appellant uuid.UUID, assignee uuid.UUID) (ports.Appeal, uint64) {
	t.Helper()

	muteID := f.createPunishment(t, ports.PunishmentCreate{
		Kind:     moderation.KindMute,
		PlayerID: appellant,
		ActorID:  punisher,
		Reason:   "R0",
		Expires:  1_800_000_000,
		Soft:     false,
	})
	return f.createAppeal(t, moderation.KindMute, muteID, appellant, assignee), muteID
}

func (f *fixture) appealComments(t *testing.T, appealID uint64) []ports.AppealComment {
	t.Helper()

	comments, err := f.central.Appeals.ListAppealComments(context.Background(), appealID)
	require.NoError(t, err)
	return comments
}
