package resolution

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"modpanel/internal/domain/moderation"
	"modpanel/internal/ports"
)

const defaultPlayerNameTTL = 10 * time.Minute

var (
	ErrInvalidInput = errors.New("invalid input")

	errCentralRequired  = errors.New("central store is required")
	errRegistryRequired = errors.New("server registry is required")
)

// Service resolves appeals and reports by mutating a server's punishment
// store and then recording the outcome in the central store.
type Service struct {
	central       ports.CentralStore
	servers       ports.ServerRegistry
	cache         ports.Cache
	now           func() time.Time
	playerNameTTL time.Duration
}

type Option func(*Service)

// WithClock overrides the clock used to render temporary punishment durations.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

func WithPlayerNameTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl > 0 {
			s.playerNameTTL = ttl
		}
	}
}

// NewService wires the resolution usecases. cache may be nil.
func NewService(central ports.CentralStore, servers ports.ServerRegistry, cache ports.Cache, opts ...Option) *Service {
	s := &Service{
		central:       central,
		servers:       servers,
		cache:         cache,
		now:           time.Now,
		playerNameTTL: defaultPlayerNameTTL,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) ready() error {
	if s.central.Appeals == nil || s.central.Reports == nil || s.central.UoW == nil {
		return errCentralRequired
	}
	if s.servers == nil {
		return errRegistryRequired
	}
	return nil
}

// Session identifies the caller. A zero PlayerID or nil ACL is unauthenticated.
type Session struct {
	PlayerID uuid.UUID
	ACL      ports.AccessControl
}

func (s Session) authenticated() bool {
	return s.PlayerID != uuid.Nil && s.ACL != nil
}

// AppealResolution identifies the resolved appeal and the audit comment recorded for it.
type AppealResolution struct {
	AppealID  uint64 `json:"appealId"`
	CommentID uint64 `json:"commentId"`
}

type UpdateMuteInput struct {
	Expires int64  `json:"expires"`
	Reason  string `json:"reason"`
	Soft    bool   `json:"soft"`
}

type UpdateWarningInput struct {
	Expires int64  `json:"expires"`
	Reason  string `json:"reason"`
	Points  int    `json:"points"`
}

type UpdateBanInput struct {
	Expires int64  `json:"expires"`
	Reason  string `json:"reason"`
}

type ReportMuteInput struct {
	Player  uuid.UUID `json:"player"`
	Expires int64     `json:"expires"`
	Reason  string    `json:"reason"`
	Soft    bool      `json:"soft"`
}

type ReportWarningInput struct {
	Player  uuid.UUID `json:"player"`
	Expires int64     `json:"expires"`
	Reason  string    `json:"reason"`
	Points  int       `json:"points"`
}

type ReportBanInput struct {
	Player  uuid.UUID `json:"player"`
	Expires int64     `json:"expires"`
	Reason  string    `json:"reason"`
}

// punishmentInput is the variant-free form of the update and report inputs.
type punishmentInput struct {
	kind    moderation.PunishmentKind
	player  uuid.UUID
	expires int64
	reason  string
	soft    bool
	points  int
}

func (in punishmentInput) validate(requirePlayer bool) error {
	if requirePlayer && in.player == uuid.Nil {
		return errors.Join(ErrInvalidInput, errors.New("player is required"))
	}
	if in.expires < 0 {
		return errors.Join(ErrInvalidInput, errors.New("expires must not be negative"))
	}
	if in.kind == moderation.KindWarning && in.points < 0 {
		return errors.Join(ErrInvalidInput, errors.New("points must not be negative"))
	}
	return nil
}

func (in punishmentInput) update() ports.PunishmentUpdate {
	return ports.PunishmentUpdate{
		Reason:  in.reason,
		Expires: in.expires,
		Soft:    in.soft,
		Points:  in.points,
	}
}

// attributes projects the input onto the attributes its variant carries.
func (in punishmentInput) attributes() moderation.Attributes {
	attrs := moderation.Attributes{Reason: in.reason, Expires: in.expires}
	switch in.kind {
	case moderation.KindMute:
		soft := in.soft
		attrs.Soft = &soft
	case moderation.KindWarning:
		points := in.points
		attrs.Points = &points
	}
	return attrs
}
