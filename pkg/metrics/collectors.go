package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const namespace = "bfmr_bot"

// Collectors — метрики бота. Nil-значение безопасно: все методы становятся
// no-op, так что сервисы в тестах можно собирать без регистра.
type Collectors struct {
	updates      *prometheus.CounterVec
	apiRequests  *prometheus.HistogramVec
	reservations *prometheus.CounterVec
	dealsFetched prometheus.Counter
	alertsSent   prometheus.Counter
}

func NewCollectors(reg prometheus.Registerer) *Collectors {
	c := &Collectors{
		updates: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "updates_total",
			Help:      "Telegram updates processed, by kind and outcome.",
		}, []string{"kind", "outcome"}),
		apiRequests: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "bfmr_request_duration_seconds",
			Help:      "Duration of BFMR API requests.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "path", "status"}),
		reservations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reservations_total",
			Help:      "Reservation attempts, by result code.",
		}, []string{"result"}),
		dealsFetched: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "deals_fetched_total",
			Help:      "Deals received from the BFMR API.",
		}),
		alertsSent: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "watcher_alerts_total",
			Help:      "Deal alerts pushed by the watcher.",
		}),
	}

	reg.MustRegister(c.updates, c.apiRequests, c.reservations, c.dealsFetched, c.alertsSent)

	return c
}

// NewRegistry возвращает регистр с рантайм-метриками процесса и Go.
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()

	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return reg
}

func (c *Collectors) IncUpdate(kind, outcome string) {
	if c == nil {
		return
	}

	c.updates.WithLabelValues(kind, outcome).Inc()
}

// ObserveRequest реализует httpx.Observer.
func (c *Collectors) ObserveRequest(method, path, status string, duration time.Duration) {
	if c == nil {
		return
	}

	c.apiRequests.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

func (c *Collectors) IncReservation(result string) {
	if c == nil {
		return
	}

	c.reservations.WithLabelValues(result).Inc()
}

func (c *Collectors) AddDealsFetched(n int) {
	if c == nil || n <= 0 {
		return
	}

	c.dealsFetched.Add(float64(n))
}

func (c *Collectors) IncAlertSent() {
	if c == nil {
		return
	}

	c.alertsSent.Inc()
}
