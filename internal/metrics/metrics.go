package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      MetricNameHTTPRequestsTotal,
			Help:      HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      MetricNameHTTPRequestDuration,
			Help:      HelpTextHTTPRequestDuration,
			Buckets:   HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      MetricNameHTTPRequestsInFlight,
			Help:      HelpTextHTTPRequestsInFlight,
		},
	)
)

// Event Metrics
var (
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      MetricNameEventsPublished,
			Help:      HelpTextEventsPublished,
		},
		[]string{LabelType},
	)

	EventHandlerErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      MetricNameEventHandlerErrors,
			Help:      HelpTextEventHandlerErrors,
		},
		[]string{LabelType},
	)
)

// Business Metrics
var (
	Clicks = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      MetricNameClicks,
			Help:      HelpTextClicks,
		},
	)

	CoinsMinted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      MetricNameCoinsMinted,
			Help:      HelpTextCoinsMinted,
		},
		[]string{LabelSource},
	)

	CurrencySpent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      MetricNameCurrencySpent,
			Help:      HelpTextCurrencySpent,
		},
		[]string{LabelCurrency, LabelSink},
	)

	ItemsBought = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      MetricNameItemsBought,
			Help:      HelpTextItemsBought,
		},
		[]string{LabelItem},
	)

	ItemsLiquidated = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      MetricNameItemsLiquidated,
			Help:      HelpTextItemsLiquidated,
		},
	)

	CasinoWagers = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      MetricNameCasinoWagers,
			Help:      HelpTextCasinoWagers,
		},
		[]string{LabelOutcome},
	)

	CasesOpened = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      MetricNameCasesOpened,
			Help:      HelpTextCasesOpened,
		},
		[]string{LabelKind},
	)

	CasePrizes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      MetricNameCasePrizes,
			Help:      HelpTextCasePrizes,
		},
		[]string{LabelItem},
	)

	MarketListings = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      MetricNameMarketListings,
			Help:      HelpTextMarketListings,
		},
		[]string{LabelAction},
	)

	AdminGrants = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      MetricNameAdminGrants,
			Help:      HelpTextAdminGrants,
		},
		[]string{LabelType},
	)

	Registrations = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      MetricNameRegistrations,
			Help:      HelpTextRegistrations,
		},
	)
)

// Snapshot Gauges
var (
	Accounts = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      MetricNameAccounts,
			Help:      HelpTextAccounts,
		},
	)

	OpenListings = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      MetricNameOpenListings,
			Help:      HelpTextOpenListings,
		},
	)

	PendingEffects = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      MetricNamePendingEffects,
			Help:      HelpTextPendingEffects,
		},
	)
)
