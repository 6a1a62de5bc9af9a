// Package metrics provê a coleta e a exposição de métricas Prometheus.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsCollector é a interface de coleta de métricas usada pelos
// handlers, pelo middleware HTTP e pela varredura de limpeza.
type MetricsCollector interface {
	RecordUsuarioRegistrado()
	RecordPostagemCriada()
	RecordComentarioCriado()
	RecordLike()
	RecordLogin()
	RecordComentariosOrfaosRemovidos(count int)
	RecordHTTPStatus(statusCode int)
	RecordHTTPLatency(duration time.Duration)
}

// Collector é a implementação que coleta métricas Prometheus.
type Collector struct {
	usuariosRegistrados prometheus.Counter
	postagensCriadas    prometheus.Counter
	comentariosCriados  prometheus.Counter
	likes               prometheus.Counter
	logins              prometheus.Counter
	orfaosRemovidos     prometheus.Counter
	httpStatus          *prometheus.CounterVec
	httpLatency         prometheus.Histogram
}

// NewCollector cria um novo Collector e registra as métricas no
// registro indicado.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		usuariosRegistrados: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "microblog_usuarios_registrados_total",
			Help: "Total de usuários cadastrados",
		}),
		postagensCriadas: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "microblog_postagens_criadas_total",
			Help: "Total de postagens publicadas",
		}),
		comentariosCriados: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "microblog_comentarios_criados_total",
			Help: "Total de comentários criados",
		}),
		likes: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "microblog_likes_total",
			Help: "Total de likes registrados",
		}),
		logins: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "microblog_logins_total",
			Help: "Total de logins bem-sucedidos",
		}),
		orfaosRemovidos: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "microblog_comentarios_orfaos_removidos_total",
			Help: "Total de comentários órfãos removidos pela varredura de limpeza",
		}),
		httpStatus: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "microblog_http_status_total",
			Help: "Total de respostas por código de status HTTP",
		}, []string{"status_code"}),
		httpLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "microblog_http_latency_seconds",
			Help:    "Latência das requisições HTTP em segundos",
			Buckets: prometheus.DefBuckets,
		}),
	}

	reg.MustRegister(
		c.usuariosRegistrados,
		c.postagensCriadas,
		c.comentariosCriados,
		c.likes,
		c.logins,
		c.orfaosRemovidos,
		c.httpStatus,
		c.httpLatency,
	)

	return c
}

// RecordUsuarioRegistrado registra um cadastro de usuário.
func (c *Collector) RecordUsuarioRegistrado() {
	c.usuariosRegistrados.Inc()
}

// RecordPostagemCriada registra uma publicação de postagem.
func (c *Collector) RecordPostagemCriada() {
	c.postagensCriadas.Inc()
}

// RecordComentarioCriado registra uma criação de comentário.
func (c *Collector) RecordComentarioCriado() {
	c.comentariosCriados.Inc()
}

// RecordLike registra um like.
func (c *Collector) RecordLike() {
	c.likes.Inc()
}

// RecordLogin registra um login bem-sucedido.
func (c *Collector) RecordLogin() {
	c.logins.Inc()
}

// RecordComentariosOrfaosRemovidos registra a quantidade de
// comentários órfãos removidos em uma varredura.
func (c *Collector) RecordComentariosOrfaosRemovidos(count int) {
	c.orfaosRemovidos.Add(float64(count))
}

// RecordHTTPStatus registra o código de status de uma resposta.
func (c *Collector) RecordHTTPStatus(statusCode int) {
	c.httpStatus.WithLabelValues(strconv.Itoa(statusCode)).Inc()
}

// RecordHTTPLatency registra a latência de uma requisição.
func (c *Collector) RecordHTTPLatency(duration time.Duration) {
	c.httpLatency.Observe(duration.Seconds())
}

// Handler retorna o handler HTTP de scrape do Prometheus.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// SetupMetricsRoute retorna um handler que expõe /metrics para scrape.
func SetupMetricsRoute(gatherer prometheus.Gatherer) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", Handler(gatherer))
	return mux
}
