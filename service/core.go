package service

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/gorilla/mux"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/erraggy/rostertools/checker"
	"github.com/erraggy/rostertools/history"
)

const indexPage = `
<!DOCTYPE html>
<html>
  <title>rostertools daemon</title>
  <body style="padding:10px">
    <h2>rostertools</h2>
    <p>A rostertools daemon is listening on this host/port.</p>
    <p>POST a roster JSON array to /api/check to scan it for duplicate identifiers,
    or use the rostertools command line client.</p>
  </body>
</html>`

// Core wires the HTTP surface of the daemon: two routers (api and aux),
// a prometheus registry, an LRU cache of check results, and the optional
// scan history store.
type Core struct {
	conf      Config
	logger    *zap.Logger
	registry  *prometheus.Registry
	routerAPI *mux.Router
	routerAux *mux.Router
	cache     *lru.Cache[string, *checker.CheckResult]
	store     *history.Store
	metrics   coreMetrics
}

type coreMetrics struct {
	requestsTotal   *prometheus.CounterVec
	duplicatesFound prometheus.Counter
	cacheHits       prometheus.Counter
	cacheMisses     prometheus.Counter
}

func newCoreMetrics(registry *prometheus.Registry) coreMetrics {
	m := coreMetrics{
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "rostertools_requests_total",
			Help: "Count of API requests by handler and status code.",
		}, []string{"handler", "status"}),
		duplicatesFound: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "rostertools_duplicates_found_total",
			Help: "Count of duplicated identifier values found across all checks.",
		}),
		cacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "rostertools_check_cache_hits_total",
			Help: "Count of check requests served from the response cache.",
		}),
		cacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "rostertools_check_cache_misses_total",
			Help: "Count of check requests that missed the response cache.",
		}),
	}
	registry.MustRegister(m.requestsTotal, m.duplicatesFound, m.cacheHits, m.cacheMisses)
	return m
}

// NewCore builds a Core from conf. The caller is responsible for calling
// Close when done.
func NewCore(ctx context.Context, conf Config) (*Core, error) {
	logger := conf.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	if conf.Version == "" {
		conf.Version = "unknown"
	}
	if conf.CacheSize <= 0 {
		conf.CacheSize = DefaultConfig().CacheSize
	}
	if conf.DefaultKeyField == "" {
		conf.DefaultKeyField = checker.DefaultKeyField
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	cache, err := lru.New[string, *checker.CheckResult](conf.CacheSize)
	if err != nil {
		return nil, err
	}

	routerAux := mux.NewRouter()
	routerAux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, indexPage)
	})
	routerAux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	routerAux.HandleFunc("/status", func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "ok")
	})
	routerAux.HandleFunc("/version", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Add("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"version": conf.Version})
	})

	routerAPI := mux.NewRouter()
	routerAPI.Use(requestIDMiddleware())
	routerAPI.Use(accessLogMiddleware(logger))
	routerAPI.Use(panicCatchMiddleware(logger))

	c := &Core{
		conf:      conf,
		logger:    logger.Named("core"),
		registry:  registry,
		routerAPI: routerAPI,
		routerAux: routerAux,
		cache:     cache,
		metrics:   newCoreMetrics(registry),
	}

	if conf.DatabaseURI != "" {
		store, err := history.Open(ctx, conf.DatabaseURI)
		if err != nil {
			return nil, err
		}
		c.store = store
	}

	c.addAPIRoutes()
	c.logger.Info("Started",
		zap.Bool("history_enabled", c.store != nil),
		zap.Bool("kafka_enabled", conf.Kafka.Enabled()),
	)
	return c, nil
}

func (c *Core) addAPIRoutes() {
	c.handle("/api/check", handleCheck).Methods("POST")
	c.handle("/api/profile", handleProfile).Methods("POST")
	c.handle("/api/dedupe", handleDedupe).Methods("POST")
	c.handle("/api/history", handleHistory).Methods("GET")
}

func (c *Core) handle(path string, f func(*Core, http.ResponseWriter, *http.Request)) *mux.Route {
	name := path
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		recorder := newRecordingResponseWriter(w)
		f(c, recorder, r)
		c.metrics.requestsTotal.WithLabelValues(name, statusLabel(recorder.statusCode)).Inc()
	})
	return c.routerAPI.Handle(path, h)
}

// Registry exposes the prometheus registry, mainly for the Kafka ingester.
func (c *Core) Registry() *prometheus.Registry {
	return c.registry
}

func (c *Core) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var rm mux.RouteMatch
	if c.routerAux.Match(r, &rm) {
		rm.Handler.ServeHTTP(w, r)
		return
	}
	c.routerAPI.ServeHTTP(w, r)
}

// Close releases the core's resources.
func (c *Core) Close(ctx context.Context) error {
	var err error
	if c.store != nil {
		err = multierr.Append(err, c.store.Close(ctx))
	}
	c.logger.Info("Shutdown")
	return err
}

func (c *Core) requestLogger(r *http.Request) *zap.Logger {
	return c.logger.With(zap.String("request_id", requestIDFromContext(r.Context())))
}
