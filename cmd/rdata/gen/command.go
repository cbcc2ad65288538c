package gen

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"math/rand"
	"os"
	"sync/atomic"
	"time"

	"github.com/dabbsLondon/rdata"
	"github.com/dabbsLondon/rdata/cmd/rdata/root"
	"github.com/dabbsLondon/rdata/pkg/charm"
	"github.com/dabbsLondon/rdata/pkg/display"
	"github.com/dabbsLondon/rdata/pkg/fs"
	"github.com/dabbsLondon/rdata/pkg/nano"
	"github.com/dabbsLondon/rdata/pkg/terminal"
	"github.com/dabbsLondon/rdata/rio"
	"github.com/paulbellamy/ratecounter"
)

var spec = &charm.Spec{
	Name:  "gen",
	Usage: "gen [options] -o file",
	Short: "generate a synthetic users table for testing",
	Long: `
The gen command writes a synthetic users table with columns name, age,
city, signup_date, and balance, useful as a fixture for scripts and
load tests.  The output format follows the file extension (.parquet or
.csv).`,
	New: New,
}

func init() {
	root.Rdata.Add(spec)
}

type Command struct {
	*root.Command
	rows    int
	seed    int64
	outPath string
}

func New(parent charm.Command, f *flag.FlagSet) (charm.Command, error) {
	c := &Command{Command: parent.(*root.Command)}
	f.IntVar(&c.rows, "rows", 1_000_000, "number of rows to generate")
	f.Int64Var(&c.seed, "seed", 1, "random seed")
	f.StringVar(&c.outPath, "o", "", "output file (.parquet or .csv)")
	return c, nil
}

var cities = []string{
	"London", "New York", "Tokyo", "Berlin", "Paris",
	"Madrid", "Toronto", "Sydney", "Dublin", "Oslo",
}

func (c *Command) Run(args []string) error {
	_, cancel, err := c.Init()
	if err != nil {
		return err
	}
	defer cancel()
	if c.outPath == "" {
		return errors.New("gen requires -o")
	}
	format, err := rio.FormatFromPath(c.outPath)
	if err != nil {
		return err
	}

	progress := newProgress()
	if terminal.IsTerminalFile(os.Stderr) {
		d := display.New(progress, time.Second/4, os.Stderr)
		go d.Run()
		defer d.Close()
	}

	table, err := c.generate(progress)
	if err != nil {
		return err
	}
	return fs.ReplaceFile(c.outPath, 0644, func(w io.Writer) error {
		return rio.Write(w, format, table)
	})
}

func (c *Command) generate(progress *progress) (*rdata.Table, error) {
	rng := rand.New(rand.NewSource(c.seed))
	// signup dates span the three years up to a fixed epoch so a
	// given seed always yields the same table.
	const signupEnd = int64(1_700_000_000_000_000_000)
	const signupSpan = int64(3 * 365 * 24) * int64(time.Hour)

	names := make([]string, c.rows)
	ages := make([]int64, c.rows)
	cityCol := make([]string, c.rows)
	signups := make([]nano.Ts, c.rows)
	balances := make([]float64, c.rows)
	for i := 0; i < c.rows; i++ {
		names[i] = fmt.Sprintf("user_%07d", i)
		ages[i] = 18 + rng.Int63n(62)
		cityCol[i] = cities[rng.Intn(len(cities))]
		signups[i] = nano.Ts(signupEnd - rng.Int63n(signupSpan))
		balances[i] = float64(rng.Int63n(10_000_000)) / 100
		progress.add(1)
	}
	return rdata.NewTable(
		rdata.NewStrings("name", names, nil),
		rdata.NewInts("age", ages, nil),
		rdata.NewStrings("city", cityCol, nil),
		rdata.NewTimes("signup_date", signups, nil),
		rdata.NewFloats("balance", balances, nil),
	)
}

type progress struct {
	rows int64
	rate *ratecounter.RateCounter
}

func newProgress() *progress {
	return &progress{rate: ratecounter.NewRateCounter(time.Second)}
}

func (p *progress) add(n int64) {
	atomic.AddInt64(&p.rows, n)
	p.rate.Incr(n)
}

func (p *progress) Display(w io.Writer) bool {
	fmt.Fprintf(w, "%d rows generated (%d rows/s)\n",
		atomic.LoadInt64(&p.rows), p.rate.Rate())
	return true
}
