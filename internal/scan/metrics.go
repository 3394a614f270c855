package scan

import "github.com/prometheus/client_golang/prometheus"

var (
	scansStarted = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "bioscan_scans_started_total",
		Help: "Total number of scans started.",
	})
	scansCompleted = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "bioscan_scans_completed_total",
		Help: "Total number of scans that reached completion.",
	})
	papersScanned = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "bioscan_papers_scanned_total",
		Help: "Total number of abstracts fetched and analyzed.",
	})
	interactionsRecorded = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "bioscan_interactions_recorded_total",
		Help: "Total number of drug-virus findings written to the graph.",
	})
)

func init() {
	prometheus.MustRegister(scansStarted, scansCompleted, papersScanned, interactionsRecorded)
}
