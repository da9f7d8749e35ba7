package metric

import (
	"github.com/prometheus/client_golang/prometheus"

	"arithma_tech/entity"
)

const namespace = "arithma"

// Recorder counts controller outcomes in a prometheus registry.
type Recorder struct {
	registry *prometheus.Registry

	accepted       *prometheus.CounterVec
	rejected       *prometheus.CounterVec
	historyFailure prometheus.Counter
}

func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		accepted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operations_accepted_total",
			Help:      "Accepted compress and decompress requests.",
		}, []string{"operation", "mode"}),
		rejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "validation_rejections_total",
			Help:      "Requests rejected by input validation.",
		}, []string{"operation", "reason"}),
		historyFailure: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "history_write_failures_total",
			Help:      "History rows that could not be written.",
		}),
	}

	r.registry.MustRegister(r.accepted, r.rejected, r.historyFailure)
	return r
}

// Gatherer exposes the registry to the /metrics handler.
func (r *Recorder) Gatherer() prometheus.Gatherer {
	return r.registry
}

func (r *Recorder) OperationAccepted(kind entity.OperationKind, mode entity.InputMode) {
	r.accepted.WithLabelValues(string(kind), mode.String()).Inc()
}

func (r *Recorder) ValidationRejected(kind entity.OperationKind, reason entity.ErrorKind) {
	r.rejected.WithLabelValues(string(kind), reason.String()).Inc()
}

func (r *Recorder) HistoryWriteFailed() {
	r.historyFailure.Inc()
}
