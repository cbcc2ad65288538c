package service

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/pprof"
	"strings"
	"sync/atomic"

	"github.com/dabbsLondon/rdata/api"
	"github.com/dabbsLondon/rdata/materialize"
	"github.com/dabbsLondon/rdata/pkg/storage"
	"github.com/dabbsLondon/rdata/pkg/storage/cache"
	"github.com/dabbsLondon/rdata/runtime"
	"github.com/go-redis/redis/v8"
	"github.com/gorilla/mux"
	"github.com/pbnjay/memory"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"go.uber.org/zap"
)

const indexPage = `
<!DOCTYPE html>
<html>
  <title>rdata daemon</title>
  <body style="padding:10px">
    <h2>rdata</h2>
    <p>An rdata daemon is listening on this host/port.</p>
    <p>POST a script to /query to run it.</p>
  </body>
</html>`

type Config struct {
	Logger  *zap.Logger
	Version string
	// DataRoot is the directory (or s3 prefix) scripts load source
	// files from.  Script paths are confined to it.
	DataRoot string
	// ResultsRoot is where over-threshold results are written.  It
	// defaults to <DataRoot>/results.
	ResultsRoot string
	// InlineMax is the inline output ceiling in bytes.
	InlineMax int64
	// LoadMaxBytes bounds the size of a single source file.  Zero
	// selects an eighth of total system memory.
	LoadMaxBytes int64
	// Workers caps concurrently executing queries.
	Workers            int64
	CORSAllowedOrigins []string
	Cache              cache.Config
	Redis              RedisConfig
	// MetricsURI locates the query-history parquet file.  Empty
	// disables recording; "default" selects
	// <ResultsRoot>/metrics/query_metrics.parquet.
	MetricsURI string
}

type RedisConfig struct {
	Addr     string `yaml:"addr,omitempty"`
	Password string `yaml:"password,omitempty"`
	DB       int    `yaml:"db,omitempty"`
}

type Core struct {
	conf      Config
	engine    storage.Engine
	logger    *zap.Logger
	recorder  *Recorder
	registry  *prometheus.Registry
	rclient   *redis.Client
	routerAPI *mux.Router
	routerAux *mux.Router
	runner    queryRunner
	scheduler *Scheduler
	taskCount int64
}

// queryRunner is what handleQuery needs from runtime.Runner.
type queryRunner interface {
	Run(ctx context.Context, script []byte, jobID string) (*api.Output, int, error)
}

func NewCore(ctx context.Context, conf Config) (*Core, error) {
	if conf.Logger == nil {
		conf.Logger = zap.NewNop()
	}
	if conf.Version == "" {
		conf.Version = "unknown"
	}
	if conf.DataRoot == "" {
		conf.DataRoot = "."
	}
	if conf.InlineMax <= 0 {
		conf.InlineMax = materialize.DefaultInlineMax
	}
	if conf.LoadMaxBytes <= 0 {
		conf.LoadMaxBytes = int64(memory.TotalMemory() / 8)
	}

	dataRoot, err := storage.ParseURI(conf.DataRoot)
	if err != nil {
		return nil, err
	}
	resultsRoot := dataRoot.AppendPath("results")
	if conf.ResultsRoot != "" {
		if resultsRoot, err = storage.ParseURI(conf.ResultsRoot); err != nil {
			return nil, err
		}
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(prometheus.NewGoCollector())

	var metricsURI *storage.URI
	if conf.MetricsURI != "" {
		metricsURI = resultsRoot.AppendPath("metrics", "query_metrics.parquet")
		if conf.MetricsURI != "default" {
			if metricsURI, err = storage.ParseURI(conf.MetricsURI); err != nil {
				return nil, err
			}
		}
	}

	var rclient *redis.Client
	if conf.Cache.Kind == cache.KindRedis {
		if rclient, err = newRedisClient(ctx, conf.Redis); err != nil {
			return nil, err
		}
	}
	engine, err := cache.NewCache(conf.Cache, storage.NewLocalEngine(),
		sourceObjects(dataRoot, resultsRoot, metricsURI), rclient, registry)
	if err != nil {
		return nil, err
	}

	loader := runtime.NewLoader(engine, dataRoot, conf.LoadMaxBytes)
	runner := runtime.NewRunner(engine, loader, materialize.Config{
		ResultsRoot: resultsRoot,
		InlineMax:   conf.InlineMax,
	})

	var recorder *Recorder
	if metricsURI != nil {
		recorder = NewRecorder(engine, metricsURI, conf.Logger)
	}

	routerAux := mux.NewRouter()
	routerAux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, indexPage)
	})
	debug := routerAux.PathPrefix("/debug/pprof").Subrouter()
	debug.HandleFunc("/cmdline", pprof.Cmdline)
	debug.HandleFunc("/profile", pprof.Profile)
	debug.HandleFunc("/symbol", pprof.Symbol)
	debug.HandleFunc("/trace", pprof.Trace)
	debug.PathPrefix("/").HandlerFunc(pprof.Index)
	routerAux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	routerAux.HandleFunc("/status", func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "ok")
	})
	routerAux.HandleFunc("/version", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Add("Content-Type", api.MediaTypeJSON)
		json.NewEncoder(w).Encode(&api.VersionResponse{Version: conf.Version})
	})

	routerAPI := mux.NewRouter()
	routerAPI.Use(requestIDMiddleware())
	routerAPI.Use(accessLogMiddleware(conf.Logger))
	routerAPI.Use(panicCatchMiddleware(conf.Logger))
	routerAPI.Use(cors.New(cors.Options{
		AllowedOrigins: conf.CORSAllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		AllowedHeaders: []string{"*"},
	}).Handler)

	c := &Core{
		conf:      conf,
		engine:    engine,
		logger:    conf.Logger.Named("core"),
		recorder:  recorder,
		registry:  registry,
		rclient:   rclient,
		routerAPI: routerAPI,
		routerAux: routerAux,
		runner:    runner,
		scheduler: NewScheduler(conf.Workers, registry),
	}
	c.addAPIServerRoutes()
	c.logger.Info("Started",
		zap.String("data_root", dataRoot.String()),
		zap.String("results_root", resultsRoot.String()),
		zap.Int64("inline_max", conf.InlineMax),
		zap.Int64("workers", conf.Workers),
	)
	return c, nil
}

func (c *Core) addAPIServerRoutes() {
	c.handle("/query", handleQuery).Methods("POST")
	// The path the system this grew out of served.
	c.handle("/run-query", handleQuery).Methods("POST")
}

func (c *Core) handle(path string, f func(*Core, *ResponseWriter, *Request)) *mux.Route {
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		res, req := newRequest(w, r, c.logger)
		f(c, res, req)
	})
	return c.routerAPI.Handle(path, h)
}

func (c *Core) Registry() *prometheus.Registry {
	return c.registry
}

func (c *Core) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var rm mux.RouteMatch
	if c.routerAux.Match(r, &rm) {
		c.routerAux.ServeHTTP(w, r)
		return
	}
	atomic.AddInt64(&c.taskCount, 1)
	c.routerAPI.ServeHTTP(w, r)
}

func (c *Core) Shutdown() {
	if c.rclient != nil {
		c.rclient.Close()
	}
	c.logger.Info("Shutdown")
}

func newRedisClient(ctx context.Context, conf RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     conf.Addr,
		Password: conf.Password,
		DB:       conf.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	return client, nil
}

// sourceObjects makes only objects under dataRoot cacheable, excluding
// the results tree and the metrics file.  Those are rewritten in place
// and must not be served stale; by default they live under dataRoot.
func sourceObjects(dataRoot, resultsRoot, metrics *storage.URI) cache.Cacheable {
	data := uriPrefix(dataRoot)
	results := uriPrefix(resultsRoot)
	return func(u *storage.URI) bool {
		s := u.String()
		if strings.HasPrefix(s, results) {
			return false
		}
		if metrics != nil && s == metrics.String() {
			return false
		}
		return strings.HasPrefix(s, data)
	}
}

func uriPrefix(u *storage.URI) string {
	s := u.String()
	if !strings.HasSuffix(s, "/") {
		s += "/"
	}
	return s
}
