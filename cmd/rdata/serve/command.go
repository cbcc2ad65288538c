package serve

import (
	"flag"
	"io"
	"net"
	"os"
	"strings"

	"github.com/dabbsLondon/rdata/cli"
	"github.com/dabbsLondon/rdata/cli/cacheflags"
	"github.com/dabbsLondon/rdata/cli/logflags"
	"github.com/dabbsLondon/rdata/cli/sizeflag"
	"github.com/dabbsLondon/rdata/cmd/rdata/root"
	"github.com/dabbsLondon/rdata/materialize"
	"github.com/dabbsLondon/rdata/pkg/charm"
	"github.com/dabbsLondon/rdata/pkg/fs"
	"github.com/dabbsLondon/rdata/pkg/httpd"
	"github.com/dabbsLondon/rdata/pkg/rlimit"
	"github.com/dabbsLondon/rdata/service"
	"github.com/dabbsLondon/rdata/service/logger"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

var spec = &charm.Spec{
	Name:  "serve",
	Usage: "serve [options]",
	Short: "listen as a daemon and respond to script requests",
	Long: `
The serve command listens on the provided interface and runs submitted
scripts against the configured data directory.  Results under the
inline threshold return compressed in the response; larger results are
written to the results directory and returned by reference.`,
	New: New,
}

func init() {
	root.Rdata.Add(spec)
}

type Command struct {
	*root.Command
	listenAddr string
	conf       service.Config
	inlineMax  sizeflag.Size
	loadMax    sizeflag.Size
	configFile string
	corsFlags  corsFlags
	logFlags   logflags.Flags
	cacheFlags cacheflags.Flags
	portFile   string
	logger     *zap.Logger
}

func New(parent charm.Command, f *flag.FlagSet) (charm.Command, error) {
	c := &Command{Command: parent.(*root.Command)}
	c.conf.Version = cli.Version()
	f.StringVar(&c.listenAddr, "l", ":9867", "[addr]:port to listen on")
	f.StringVar(&c.conf.DataRoot, "data", ".", "data location scripts load from")
	f.StringVar(&c.conf.ResultsRoot, "results", "", "results location (defaults to <data>/results)")
	c.inlineMax = sizeflag.New(materialize.DefaultInlineMax)
	f.Var(&c.inlineMax, "inline.max", "maximum size of a result returned inline")
	c.loadMax = sizeflag.New(0)
	f.Var(&c.loadMax, "load.maxbytes", "maximum size of a single source file (0 = 1/8 of system memory)")
	f.Int64Var(&c.conf.Workers, "workers", service.DefaultWorkers, "maximum concurrently executing scripts")
	f.Var(&c.corsFlags, "cors.origin", "CORS allowed origin (may be repeated)")
	f.StringVar(&c.conf.MetricsURI, "metrics.uri", "", `query metrics parquet location ("default" for <results>/metrics/query_metrics.parquet)`)
	f.StringVar(&c.conf.Redis.Addr, "redis.addr", "", "redis address for the redis source cache")
	f.StringVar(&c.configFile, "config", "", "path to a yaml config file")
	f.StringVar(&c.portFile, "portfile", "", "write port of http listener to file")
	c.logFlags.SetFlags(f)
	c.cacheFlags.SetFlags(f)
	return c, nil
}

func (c *Command) Run(args []string) error {
	ctx, cancel, err := c.Init()
	if err != nil {
		return err
	}
	defer cancel()
	if err := c.loadConfigFile(); err != nil {
		return err
	}
	if c.logger, err = c.logFlags.Open(); err != nil {
		return err
	}
	defer c.logger.Sync()
	openFilesLimit, err := rlimit.RaiseOpenFilesLimit()
	if err != nil {
		c.logger.Warn("Raising open files limit failed", zap.Error(err))
	}
	c.conf.Logger = c.logger
	c.conf.InlineMax = c.inlineMax.Int64()
	c.conf.LoadMaxBytes = c.loadMax.Int64()
	c.conf.Cache = c.cacheFlags.Config
	c.conf.CORSAllowedOrigins = c.corsFlags
	core, err := service.NewCore(ctx, c.conf)
	if err != nil {
		return err
	}
	defer core.Shutdown()
	c.logger.Info("Starting",
		zap.String("listen", c.listenAddr),
		zap.String("data", c.conf.DataRoot),
		zap.Uint64("open_files_limit", openFilesLimit),
	)
	srv := httpd.New(c.listenAddr, core)
	srv.SetLogger(c.logger.Named("httpd"))
	if err := srv.Start(ctx); err != nil {
		return err
	}
	if c.portFile != "" {
		if err := c.writePortFile(srv.Addr()); err != nil {
			return err
		}
	}
	return srv.Wait()
}

// configFileFormat mirrors the flags a deployment wants pinned in a
// file.  Flags given on the command line win over file values only for
// the logger section; scalar fields are simply overwritten when set.
type configFileFormat struct {
	Logger  logger.Config        `yaml:"logger,omitempty"`
	Data    string               `yaml:"data,omitempty"`
	Results string               `yaml:"results,omitempty"`
	Workers int64                `yaml:"workers,omitempty"`
	Metrics string               `yaml:"metrics_uri,omitempty"`
	Redis   service.RedisConfig  `yaml:"redis,omitempty"`
}

func (c *Command) loadConfigFile() error {
	if c.configFile == "" {
		return nil
	}
	b, err := os.ReadFile(c.configFile)
	if err != nil {
		return err
	}
	var conf configFileFormat
	if err := yaml.Unmarshal(b, &conf); err != nil {
		return err
	}
	if conf.Logger.Path != "" || len(conf.Logger.Children) > 0 {
		c.logFlags.Config = conf.Logger
	}
	if conf.Data != "" {
		c.conf.DataRoot = conf.Data
	}
	if conf.Results != "" {
		c.conf.ResultsRoot = conf.Results
	}
	if conf.Workers != 0 {
		c.conf.Workers = conf.Workers
	}
	if conf.Metrics != "" {
		c.conf.MetricsURI = conf.Metrics
	}
	if conf.Redis.Addr != "" {
		c.conf.Redis = conf.Redis
	}
	return nil
}

func (c *Command) writePortFile(addr string) error {
	_, port, err := net.SplitHostPort(addr)
	if err != nil {
		return err
	}
	return fs.ReplaceFile(c.portFile, 0644, func(w io.Writer) error {
		_, err := w.Write([]byte(port))
		return err
	})
}

type corsFlags []string

func (c *corsFlags) Set(s string) error {
	*c = append(*c, s)
	return nil
}

func (c corsFlags) String() string {
	return strings.Join(c, ",")
}
