package observability

// Metric name prefixes
const (
	MetricPrefix = "lotobot"
)

// Metric names
const (
	// Game metrics
	DrawsTotal       = MetricPrefix + ".game.draws_total"
	GamesEndedTotal  = MetricPrefix + ".game.ended_total"
	WinnersTotal     = MetricPrefix + ".game.winners_total"
	GamePot          = MetricPrefix + ".game.pot"
	GameParticipants = MetricPrefix + ".game.ticket_holders"

	// Command metrics
	CommandsTotal   = MetricPrefix + ".commands.total"
	CommandDuration = MetricPrefix + ".commands.duration"

	// Database metrics
	DatabaseQueriesTotal  = MetricPrefix + ".database.queries_total"
	DatabaseQueryDuration = MetricPrefix + ".database.query_duration"
)

// Label keys
const (
	LabelOperation = "operation"
	LabelOutcome   = "outcome"
	LabelStatement = "statement"
	LabelErrorType = "error_type"
)

// Outcome label for successful commands
const OutcomeOK = "ok"
