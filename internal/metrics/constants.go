package metrics

// ============================================================================
// Metric Names
// ============================================================================

// Namespace prefixes every metric exported by the service
const Namespace = "mineclicker"

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Event metric names
const (
	MetricNameEventsPublished    = "events_published_total"
	MetricNameEventHandlerErrors = "event_handler_errors_total"
)

// Business metric names
const (
	MetricNameClicks          = "clicks_total"
	MetricNameCoinsMinted     = "coins_minted_total"
	MetricNameCurrencySpent   = "currency_spent_total"
	MetricNameItemsBought     = "items_bought_total"
	MetricNameItemsLiquidated = "items_liquidated_total"
	MetricNameCasinoWagers    = "casino_wagers_total"
	MetricNameCasesOpened     = "cases_opened_total"
	MetricNameCasePrizes      = "case_prizes_total"
	MetricNameMarketListings  = "market_listings_total"
	MetricNameAdminGrants     = "admin_grants_total"
	MetricNameRegistrations   = "registrations_total"
)

// Snapshot gauge names
const (
	MetricNameAccounts       = "accounts"
	MetricNameOpenListings   = "open_listings"
	MetricNamePendingEffects = "pending_effects"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Event metric help text
const (
	HelpTextEventsPublished    = "Total number of events published"
	HelpTextEventHandlerErrors = "Total number of event handler errors"
)

// Business metric help text
const (
	HelpTextClicks          = "Total number of accepted clicks"
	HelpTextCoinsMinted     = "Coins created by gameplay, by source"
	HelpTextCurrencySpent   = "Currency removed from balances, by currency and sink"
	HelpTextItemsBought     = "Catalog items bought, by item"
	HelpTextItemsLiquidated = "Inventory units liquidated through sell-all"
	HelpTextCasinoWagers    = "Resolved casino wagers, by outcome"
	HelpTextCasesOpened     = "Cases opened, by kind"
	HelpTextCasePrizes      = "Revealed case prizes, by item"
	HelpTextMarketListings  = "Market listing activity, by action"
	HelpTextAdminGrants     = "Admin grants, by grant type"
	HelpTextRegistrations   = "Accounts registered"
)

// Snapshot gauge help text
const (
	HelpTextAccounts       = "Registered accounts at the last snapshot"
	HelpTextOpenListings   = "Open market listings at the last snapshot"
	HelpTextPendingEffects = "Deferred reveals waiting to fire at the last snapshot"
)

// ============================================================================
// Metric Label Names and Values
// ============================================================================

// Common label names used across metrics
const (
	LabelMethod   = "method"
	LabelPath     = "path"
	LabelStatus   = "status"
	LabelType     = "type"
	LabelItem     = "item"
	LabelSource   = "source"
	LabelSink     = "sink"
	LabelCurrency = "currency"
	LabelOutcome  = "outcome"
	LabelKind     = "kind"
	LabelAction   = "action"
)

// Label values
const (
	SourceClick    = "click"
	SourceCasino   = "casino"
	SourceSellAll  = "sell_all"
	SourceAdmin    = "admin"
	SinkCatalog    = "catalog"
	SinkCasino     = "casino"
	SinkCases      = "cases"
	SinkMarket     = "market"
	OutcomeWon     = "won"
	OutcomeLost    = "lost"
	KindStandard   = "standard"
	KindPremium    = "premium"
	ActionListed   = "listed"
	ActionSold     = "sold"
	UnmatchedRoute = "unmatched"
	CurrencyCoins  = "coins"
	CurrencyDonat  = "donat"
)

// ============================================================================
// Histogram Buckets
// ============================================================================

// HTTPLatencyBuckets spans 1ms to 10s
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// ============================================================================
// Log Messages
// ============================================================================

const (
	LogMsgPayloadDecodeFailed = "Failed to decode event payload for metrics"
	LogMsgMetricsRecorded     = "Metrics recorded for event"
	LogMsgSnapshotFailed      = "Metrics snapshot failed"
)
