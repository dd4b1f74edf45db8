package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)

	LoginSuccess = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "login_success_total",
		Help: "Total successful login attempts",
	})

	LoginFailure = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "login_failure_total",
		Help: "Total failed login attempts",
	}, []string{"reason"})

	RegisterSuccess = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "register_success_total",
		Help: "Total successful register attempts",
	})

	// Mutations 按实体与操作统计成功的写入，例如 {entity="likes", op="create"}
	Mutations = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "social_mutations_total",
		Help: "Total successful writes per entity and operation",
	}, []string{"entity", "op"})
)

func init() {
	prometheus.MustRegister(RequestDuration)
	prometheus.MustRegister(LoginSuccess)
	prometheus.MustRegister(LoginFailure)
	prometheus.MustRegister(RegisterSuccess)
	prometheus.MustRegister(Mutations)
}

// Mutation 记录一次成功写入
func Mutation(entity, op string) {
	Mutations.WithLabelValues(entity, op).Inc()
}

// Handler 暴露默认 registry，挂到 /metrics
func Handler() http.Handler {
	return promhttp.Handler()
}
