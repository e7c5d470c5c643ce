package relay

import "expvar"

var (
	metricReceivedTotal  = expvar.NewInt("keel_relay_received_total")
	metricDeliveredTotal = expvar.NewInt("keel_relay_delivered_total")
	metricFailedTotal    = expvar.NewInt("keel_relay_failed_total")
)
