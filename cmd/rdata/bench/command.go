package bench

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dabbsLondon/rdata/api/client"
	"github.com/dabbsLondon/rdata/cmd/rdata/root"
	"github.com/dabbsLondon/rdata/pkg/charm"
	"github.com/dabbsLondon/rdata/pkg/display"
	"github.com/dabbsLondon/rdata/pkg/terminal"
	"github.com/paulbellamy/ratecounter"
	"golang.org/x/sync/errgroup"
)

var spec = &charm.Spec{
	Name:  "bench",
	Usage: "bench [options] script",
	Short: "drive load at a running server and report latencies",
	Long: `
The bench command submits a script to a running server repeatedly and
prints request throughput and a latency summary.  The script argument
is a file name, or "-" to read the script from standard input.`,
	New: New,
}

func init() {
	root.Rdata.Add(spec)
}

type Command struct {
	*root.Command
	addr        string
	requests    int
	concurrency int
}

func New(parent charm.Command, f *flag.FlagSet) (charm.Command, error) {
	c := &Command{Command: parent.(*root.Command)}
	f.StringVar(&c.addr, "addr", "http://localhost:9867", "base URL of the server")
	f.IntVar(&c.requests, "n", 100, "total number of requests")
	f.IntVar(&c.concurrency, "c", 4, "number of concurrent clients")
	return c, nil
}

func (c *Command) Run(args []string) error {
	ctx, cancel, err := c.Init()
	if err != nil {
		return err
	}
	defer cancel()
	if len(args) != 1 {
		return errors.New("bench requires a single script argument")
	}
	script, err := readScript(args[0])
	if err != nil {
		return err
	}
	conn := client.NewConnectionTo(c.addr)
	if _, err := conn.Ping(ctx); err != nil {
		return fmt.Errorf("server %s unreachable: %w", c.addr, err)
	}

	progress := newProgress()
	if terminal.IsTerminalFile(os.Stderr) {
		d := display.New(progress, time.Second/4, os.Stderr)
		go d.Run()
		defer d.Close()
	}

	var mu sync.Mutex
	latencies := make([]time.Duration, 0, c.requests)
	var next int64
	start := time.Now()
	group, gctx := errgroup.WithContext(ctx)
	for i := 0; i < c.concurrency; i++ {
		group.Go(func() error {
			conn := client.NewConnectionTo(c.addr)
			for {
				n := atomic.AddInt64(&next, 1)
				if n > int64(c.requests) {
					return nil
				}
				reqStart := time.Now()
				_, err := conn.Query(gctx, string(script))
				elapsed := time.Since(reqStart)
				if err != nil {
					if gctx.Err() != nil {
						return gctx.Err()
					}
					progress.fail()
					var reserr *client.ErrorResponse
					if !errors.As(err, &reserr) {
						return err
					}
					continue
				}
				progress.ok()
				mu.Lock()
				latencies = append(latencies, elapsed)
				mu.Unlock()
			}
		})
	}
	if err := group.Wait(); err != nil {
		return err
	}
	return report(os.Stdout, latencies, progress, time.Since(start))
}

func report(w io.Writer, latencies []time.Duration, p *progress, elapsed time.Duration) error {
	ok := atomic.LoadInt64(&p.done)
	failed := atomic.LoadInt64(&p.failed)
	fmt.Fprintf(w, "requests: %d ok, %d failed in %v (%.1f req/s)\n",
		ok, failed, elapsed.Round(time.Millisecond),
		float64(ok+failed)/elapsed.Seconds())
	if len(latencies) == 0 {
		return nil
	}
	sort.Slice(latencies, func(i, j int) bool { return latencies[i] < latencies[j] })
	var total time.Duration
	for _, l := range latencies {
		total += l
	}
	p95 := latencies[len(latencies)*95/100]
	if len(latencies) < 20 {
		p95 = latencies[len(latencies)-1]
	}
	fmt.Fprintf(w, "latency: min %v  avg %v  p95 %v  max %v\n",
		latencies[0].Round(time.Microsecond),
		(total / time.Duration(len(latencies))).Round(time.Microsecond),
		p95.Round(time.Microsecond),
		latencies[len(latencies)-1].Round(time.Microsecond))
	return nil
}

func readScript(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

type progress struct {
	done   int64
	failed int64
	rate   *ratecounter.RateCounter
}

func newProgress() *progress {
	return &progress{rate: ratecounter.NewRateCounter(time.Second)}
}

func (p *progress) ok() {
	atomic.AddInt64(&p.done, 1)
	p.rate.Incr(1)
}

func (p *progress) fail() {
	atomic.AddInt64(&p.failed, 1)
	p.rate.Incr(1)
}

func (p *progress) Display(w io.Writer) bool {
	fmt.Fprintf(w, "%d requests done, %d failed (%d req/s)\n",
		atomic.LoadInt64(&p.done), atomic.LoadInt64(&p.failed), p.rate.Rate())
	return true
}
