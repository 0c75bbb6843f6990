// Package service assembles the per-request analytics snapshot and its
// flattened payload.
//
// Assembly never fails. Absent collaborators leave their fragment null, and
// failing ones are recorded as customDL_error_<source> siblings so the rest of
// the snapshot is still produced.
package service

import (
	"context"
	"log/slog"
	"net/url"
	"time"

	"go.opentelemetry.io/otel"

	"datalayer/internal/datalayer/device"
	"datalayer/internal/datalayer/marketing"
	"datalayer/internal/datalayer/metrics"
	"datalayer/internal/datalayer/models"
	"datalayer/internal/datalayer/page"
	"datalayer/internal/datalayer/providers"
	"datalayer/pkg/identity/contact"
	"datalayer/pkg/identity/hasher"
	"datalayer/pkg/identity/normalize"
	"datalayer/pkg/requestcontext"
)

var tracer = otel.Tracer("datalayer/service")

// SnapshotFilter may add or override fields of an assembled snapshot before
// projection. It receives a clone and must not block.
type SnapshotFilter func(models.Snapshot) models.Snapshot

// PayloadFilter transforms the projected payload with the snapshot as
// context. It must not block.
type PayloadFilter func(models.Payload, models.Snapshot) models.Payload

// Config holds the assembly settings.
type Config struct {
	SchemaVersion string
	DateLayout    string
}

// Request carries the per-request inputs that are not collaborator slots.
type Request struct {
	// Query holds the landing page parameters consulted for campaign keys.
	Query  url.Values
	Client Client
}

// Client describes the browser. Empty fields fall back to the values the
// metadata middleware put in the context.
type Client struct {
	IP             string
	UserAgent      string
	AcceptLanguage string
}

// Service builds snapshots and payloads. It holds no per-request state and
// is safe for concurrent use.
type Service struct {
	cfg             Config
	marketing       *marketing.Extractor
	snapshotFilters []SnapshotFilter
	payloadFilters  []PayloadFilter
	logger          *slog.Logger
	metrics         *metrics.Metrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithConfig(cfg Config) Option {
	return func(s *Service) {
		if cfg.SchemaVersion != "" {
			s.cfg.SchemaVersion = cfg.SchemaVersion
		}
		if cfg.DateLayout != "" {
			s.cfg.DateLayout = cfg.DateLayout
		}
	}
}

// WithSnapshotFilter appends a snapshot filter. Filters run in registration
// order.
func WithSnapshotFilter(f SnapshotFilter) Option {
	return func(s *Service) {
		s.snapshotFilters = append(s.snapshotFilters, f)
	}
}

// WithPayloadFilter appends a payload filter. Filters run in registration
// order.
func WithPayloadFilter(f PayloadFilter) Option {
	return func(s *Service) {
		s.payloadFilters = append(s.payloadFilters, f)
	}
}

// New constructs a Service.
func New(opts ...Option) *Service {
	s := &Service{
		cfg: Config{
			SchemaVersion: models.DefaultSchemaVersion,
			DateLayout:    page.DefaultDateLayout,
		},
		marketing: marketing.NewExtractor(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Build assembles the snapshot, runs the snapshot filters and projects the
// result.
func (s *Service) Build(ctx context.Context, set providers.Set, req Request) (models.Snapshot, models.Payload) {
	snap := s.Filter(s.Assemble(ctx, set, req))
	return snap, s.Project(snap)
}

// Assemble merges every fragment into one snapshot.
func (s *Service) Assemble(ctx context.Context, set providers.Set, req Request) models.Snapshot {
	start := time.Now()
	ctx, span := tracer.Start(ctx, "datalayer.assemble")
	defer span.End()

	client := s.resolveClient(ctx, req.Client)

	snap := models.Snapshot{
		Meta: &models.Meta{
			Version:     s.cfg.SchemaVersion,
			GeneratedAt: requestcontext.Now(ctx).Unix(),
		},
		Device:    device.Describe(client.UserAgent, client.AcceptLanguage),
		Marketing: s.marketing.Extract(req.Query),
	}

	if set.Page != nil {
		pc, cerr := providers.Fetch(ctx, providers.SourcePage, set.Page.PageContext)
		if cerr != nil {
			s.recordFailure(ctx, &snap, cerr)
		} else {
			snap.Legacy = page.Legacy(pc, s.cfg.DateLayout)
		}
	}

	if set.Site != nil {
		site, cerr := providers.Fetch(ctx, providers.SourceSite, set.Site.Site)
		s.recordFailure(ctx, &snap, cerr)
		snap.Site = site
	}

	if set.Theme != nil {
		theme, cerr := providers.Fetch(ctx, providers.SourceTheme, set.Theme.Theme)
		s.recordFailure(ctx, &snap, cerr)
		snap.Theme = theme
	}

	snap.User = s.user(ctx, &snap, set, client.IP)

	if c := set.Commerce; c != nil {
		if c.Store != nil {
			wc, cerr := providers.Fetch(ctx, providers.SourceStore, c.Store.Store)
			s.recordFailure(ctx, &snap, cerr)
			snap.Commerce = wc
		}
		if c.Cart != nil {
			cart, cerr := providers.Fetch(ctx, providers.SourceCart, c.Cart.Cart)
			s.recordFailure(ctx, &snap, cerr)
			snap.Cart = cartSnapshot(cart)
		}
	}

	s.metrics.IncrementAssembled()
	s.metrics.ObserveAssembleLatency(time.Since(start))
	return snap
}

// Filter runs the snapshot filters in order. Each filter receives a clone so
// a filter editing maps in place cannot reach the caller's snapshot.
func (s *Service) Filter(snap models.Snapshot) models.Snapshot {
	for _, f := range s.snapshotFilters {
		snap = f(snap.Clone())
	}
	return snap
}

// Project derives the flattened payload from snap. Fragments are always
// present under their prefixed key; legacy scalars only when snap has them.
// Keys set on snap.Extra by a snapshot filter take precedence over the
// assembled legacy values and fragments, so both views stay in agreement.
func (s *Service) Project(snap models.Snapshot) models.Payload {
	legacy := make(map[string]any, len(models.LegacyKeys))
	for _, key := range models.LegacyKeys {
		if v, ok := snap.Extra[key]; ok {
			legacy[key] = v
		} else if v, ok := snap.Legacy[key]; ok {
			legacy[key] = v
		}
	}

	fragments := snap.Fragments()
	for key := range fragments {
		if v, ok := snap.Extra[key]; ok {
			fragments[key] = v
		}
	}

	p := models.Payload{
		Event:     models.EventName,
		Snapshot:  snap,
		Fragments: models.PrefixKeys(fragments),
		Legacy:    legacy,
	}
	for _, f := range s.payloadFilters {
		p = f(p, snap)
	}
	return p
}

// EnrichContact attaches identity hashes to a standalone contact block.
func (s *Service) EnrichContact(ctx context.Context, b contact.Block) contact.Block {
	_, span := tracer.Start(ctx, "datalayer.enrich_contact")
	defer span.End()

	out := contact.Enrich(b)
	s.observeHashes(out)
	return out
}

func (s *Service) resolveClient(ctx context.Context, c Client) Client {
	if c.IP == "" {
		c.IP = requestcontext.ClientIP(ctx)
	}
	if c.UserAgent == "" {
		c.UserAgent = requestcontext.UserAgent(ctx)
	}
	if c.AcceptLanguage == "" {
		c.AcceptLanguage = requestcontext.AcceptLanguage(ctx)
	}
	return c
}

// recordFailure stores a top-level collaborator failure. A nil cerr is a
// no-op.
func (s *Service) recordFailure(ctx context.Context, snap *models.Snapshot, cerr *providers.CollaboratorError) {
	if cerr == nil {
		return
	}
	if snap.Errors == nil {
		snap.Errors = make(map[string]string)
	}
	snap.Errors[cerr.Source] = cerr.Message
	s.logFailure(ctx, cerr)
}

func (s *Service) logFailure(ctx context.Context, cerr *providers.CollaboratorError) {
	s.metrics.IncrementCollaboratorFailure(cerr.Source, string(cerr.Category))
	if s.logger == nil {
		return
	}
	s.logger.WarnContext(ctx, "collaborator failed",
		"source", cerr.Source,
		"category", string(cerr.Category),
		"request_id", requestcontext.RequestID(ctx),
	)
}

func (s *Service) observeHashes(b contact.Block) {
	for _, h := range b.Hashes() {
		s.metrics.IncrementIdentityHash(string(h.Kind), h.Value != nil)
	}
}

func (s *Service) observeEmailHash(h *string) {
	s.metrics.IncrementIdentityHash(string(normalize.KindEmail), h != nil)
}

// emailHash is the hash of the normalized account email.
func emailHash(email string) *string {
	return hasher.Field(email, normalize.KindEmail, "")
}
