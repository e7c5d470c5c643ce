package httptransport

import "expvar"

var (
	metricKeelBadRequestTotal = expvar.NewInt("keel_relay_bad_request_total")
	metricKeelRelayErrors     = expvar.NewMap("keel_relay_errors_by_kind")
)
