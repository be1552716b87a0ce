package observability

import (
	"context"
	"fmt"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.34.0"

	"gamblebot/config"
	"gamblebot/events"
)

// MetricsProvider records economy activity as OpenTelemetry metrics
type MetricsProvider struct {
	config        *config.Config
	meterProvider *sdkmetric.MeterProvider
	meter         metric.Meter
	initialized   bool
	enabled       bool
	mu            sync.RWMutex

	betsCounter          metric.Int64Counter
	wageredCounter       metric.Float64Counter
	payoutCounter        metric.Float64Counter
	balanceChangeCounter metric.Int64Counter
	rakebackCounter      metric.Float64Counter
	rainCounter          metric.Float64Counter
	rainParticipantsHist metric.Int64Histogram
	sessionsGauge        metric.Int64ObservableGauge

	sessionSources map[string]func() int
}

func NewMetricsProvider(cfg *config.Config) *MetricsProvider {
	return &MetricsProvider{
		config:         cfg,
		sessionSources: make(map[string]func() int),
	}
}

// Initialize builds the exporter named by the config and creates the
// instruments. A disabled provider records nothing.
func (mp *MetricsProvider) Initialize(ctx context.Context) error {
	mp.mu.Lock()
	defer mp.mu.Unlock()

	if mp.initialized {
		return nil
	}

	if !mp.config.OTelEnabled {
		log.Info("OpenTelemetry metrics disabled")
		mp.initialized = true
		return nil
	}

	var exporter sdkmetric.Exporter
	var err error
	switch mp.config.OTelExporterType {
	case "console":
		exporter, err = stdoutmetric.New()
		if err != nil {
			return fmt.Errorf("failed to create console exporter: %w", err)
		}
		log.Info("Using console metric exporter")

	case "otlp":
		ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()

		exporter, err = otlpmetricgrpc.New(ctx,
			otlpmetricgrpc.WithEndpoint(mp.config.OTelOTLPEndpoint),
			otlpmetricgrpc.WithInsecure(),
		)
		if err != nil {
			return fmt.Errorf("failed to create OTLP exporter: %w", err)
		}
		log.WithField("endpoint", mp.config.OTelOTLPEndpoint).Info("Using OTLP metric exporter")

	case "none":
		log.Info("Metrics export disabled (exporter_type='none')")
		mp.initialized = true
		return nil

	default:
		return fmt.Errorf("unknown exporter type: %s", mp.config.OTelExporterType)
	}

	reader := sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(mp.config.OTelExportInterval))
	if err := mp.start(reader); err != nil {
		return err
	}
	otel.SetMeterProvider(mp.meterProvider)
	return nil
}

// start wires a meter provider around reader. Caller holds mu.
func (mp *MetricsProvider) start(reader sdkmetric.Reader) error {
	res, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(mp.config.OTelServiceName),
			attribute.String("environment", mp.config.Environment),
		),
	)
	if err != nil {
		return fmt.Errorf("failed to create resource: %w", err)
	}

	mp.meterProvider = sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(reader),
	)
	mp.meter = mp.meterProvider.Meter("gamblebot")

	if err := mp.createInstruments(); err != nil {
		return fmt.Errorf("failed to create instruments: %w", err)
	}

	mp.initialized = true
	mp.enabled = true
	return nil
}

func (mp *MetricsProvider) createInstruments() error {
	var err error

	mp.betsCounter, err = mp.meter.Int64Counter(
		BetsTotal,
		metric.WithDescription("Total number of settled bets"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return fmt.Errorf("failed to create bets counter: %w", err)
	}

	mp.wageredCounter, err = mp.meter.Float64Counter(
		BetsWagered,
		metric.WithDescription("Total amount staked"),
	)
	if err != nil {
		return fmt.Errorf("failed to create wagered counter: %w", err)
	}

	mp.payoutCounter, err = mp.meter.Float64Counter(
		BetsPayout,
		metric.WithDescription("Total net winnings paid on bets"),
	)
	if err != nil {
		return fmt.Errorf("failed to create payout counter: %w", err)
	}

	mp.balanceChangeCounter, err = mp.meter.Int64Counter(
		BalanceChangesTotal,
		metric.WithDescription("Total number of ledger balance changes"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return fmt.Errorf("failed to create balance change counter: %w", err)
	}

	mp.rakebackCounter, err = mp.meter.Float64Counter(
		RakebackClaimed,
		metric.WithDescription("Total rakeback paid out"),
	)
	if err != nil {
		return fmt.Errorf("failed to create rakeback counter: %w", err)
	}

	mp.rainCounter, err = mp.meter.Float64Counter(
		RainDistributed,
		metric.WithDescription("Total amount handed out by rains"),
	)
	if err != nil {
		return fmt.Errorf("failed to create rain counter: %w", err)
	}

	mp.rainParticipantsHist, err = mp.meter.Int64Histogram(
		RainParticipants,
		metric.WithDescription("Number of users sharing each rain"),
		metric.WithUnit("1"),
		metric.WithExplicitBucketBoundaries(1, 2, 5, 10, 25, 50, 100),
	)
	if err != nil {
		return fmt.Errorf("failed to create rain participants histogram: %w", err)
	}

	mp.sessionsGauge, err = mp.meter.Int64ObservableGauge(
		SessionsActive,
		metric.WithDescription("Interactive game sessions currently held in memory"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return fmt.Errorf("failed to create sessions gauge: %w", err)
	}

	_, err = mp.meter.RegisterCallback(mp.observeSessions, mp.sessionsGauge)
	if err != nil {
		return fmt.Errorf("failed to register sessions callback: %w", err)
	}

	return nil
}

// Shutdown flushes and stops the meter provider
func (mp *MetricsProvider) Shutdown(ctx context.Context) error {
	mp.mu.Lock()
	defer mp.mu.Unlock()

	if mp.meterProvider != nil {
		return mp.meterProvider.Shutdown(ctx)
	}
	return nil
}

// Subscribe records bus events. Nothing is subscribed while disabled.
func (mp *MetricsProvider) Subscribe(bus *events.Bus) {
	if !mp.isEnabled() {
		return
	}

	bus.Subscribe(events.EventTypeBetPlaced, func(ctx context.Context, e events.Event) {
		if bet, ok := e.(events.BetPlacedEvent); ok {
			mp.RecordBet(ctx, bet)
		}
	})
	bus.Subscribe(events.EventTypeBalanceChange, func(ctx context.Context, e events.Event) {
		if change, ok := e.(events.BalanceChangeEvent); ok {
			mp.RecordBalanceChange(ctx, change.Reason)
		}
	})
	bus.Subscribe(events.EventTypeRakebackClaimed, func(ctx context.Context, e events.Event) {
		if claim, ok := e.(events.RakebackClaimedEvent); ok {
			mp.RecordRakeback(ctx, claim)
		}
	})
	bus.Subscribe(events.EventTypeRainDistributed, func(ctx context.Context, e events.Event) {
		if rain, ok := e.(events.RainDistributedEvent); ok {
			mp.RecordRain(ctx, rain)
		}
	})
}

// TrackSessions reports count under the game label on every collection
func (mp *MetricsProvider) TrackSessions(game string, count func() int) {
	mp.mu.Lock()
	defer mp.mu.Unlock()
	mp.sessionSources[game] = count
}

func (mp *MetricsProvider) observeSessions(_ context.Context, o metric.Observer) error {
	mp.mu.RLock()
	defer mp.mu.RUnlock()

	for game, count := range mp.sessionSources {
		o.ObserveInt64(mp.sessionsGauge, int64(count()),
			metric.WithAttributes(attribute.String(LabelGame, game)),
		)
	}
	return nil
}

// RecordBet counts one settled bet with its stake and net winnings
func (mp *MetricsProvider) RecordBet(ctx context.Context, bet events.BetPlacedEvent) {
	if !mp.isEnabled() {
		return
	}

	game := metric.WithAttributes(attribute.String(LabelGame, bet.Game))
	mp.betsCounter.Add(ctx, 1, metric.WithAttributes(
		attribute.String(LabelGame, bet.Game),
		attribute.String(LabelOutcome, betOutcome(bet)),
	))
	mp.wageredCounter.Add(ctx, bet.Amount.InexactFloat64(), game)
	mp.payoutCounter.Add(ctx, bet.Payout.InexactFloat64(), game)
}

func (mp *MetricsProvider) RecordBalanceChange(ctx context.Context, reason string) {
	if !mp.isEnabled() {
		return
	}

	mp.balanceChangeCounter.Add(ctx, 1, metric.WithAttributes(
		attribute.String(LabelReason, reason),
	))
}

func (mp *MetricsProvider) RecordRakeback(ctx context.Context, claim events.RakebackClaimedEvent) {
	if !mp.isEnabled() {
		return
	}

	mp.rakebackCounter.Add(ctx, claim.Amount.InexactFloat64())
}

func (mp *MetricsProvider) RecordRain(ctx context.Context, rain events.RainDistributedEvent) {
	if !mp.isEnabled() {
		return
	}

	mp.rainCounter.Add(ctx, rain.Amount.InexactFloat64())
	mp.rainParticipantsHist.Record(ctx, int64(len(rain.Participants)))
}

func (mp *MetricsProvider) isEnabled() bool {
	mp.mu.RLock()
	defer mp.mu.RUnlock()
	return mp.initialized && mp.enabled
}

func betOutcome(bet events.BetPlacedEvent) string {
	if bet.Payout.IsPositive() {
		return OutcomeWin
	}
	return OutcomeLoss
}
