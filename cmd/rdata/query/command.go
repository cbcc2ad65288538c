package query

import (
	"errors"
	"flag"
	"io"
	"os"

	"github.com/dabbsLondon/rdata/cmd/rdata/root"
	"github.com/dabbsLondon/rdata/compiler"
	"github.com/dabbsLondon/rdata/pkg/charm"
	"github.com/dabbsLondon/rdata/pkg/fs"
	"github.com/dabbsLondon/rdata/pkg/storage"
	"github.com/dabbsLondon/rdata/rio"
	"github.com/dabbsLondon/rdata/runtime"
)

var spec = &charm.Spec{
	Name:  "query",
	Usage: "query [options] script",
	Short: "run a script locally and print the result",
	Long: `
The query command compiles and executes a script against the local
data directory without going through a server.  The script argument is
a file name, or "-" to read the script from standard input.`,
	New: New,
}

func init() {
	root.Rdata.Add(spec)
}

type Command struct {
	*root.Command
	dataRoot string
	format   string
	outPath  string
}

func New(parent charm.Command, f *flag.FlagSet) (charm.Command, error) {
	c := &Command{Command: parent.(*root.Command)}
	f.StringVar(&c.dataRoot, "data", ".", "data location scripts load from")
	f.StringVar(&c.format, "f", "table", "output format (table, csv, arrows, parquet)")
	f.StringVar(&c.outPath, "o", "", "write output to file instead of stdout")
	return c, nil
}

func (c *Command) Run(args []string) error {
	ctx, cancel, err := c.Init()
	if err != nil {
		return err
	}
	defer cancel()
	if len(args) != 1 {
		return errors.New("query requires a single script argument")
	}
	script, err := readScript(args[0])
	if err != nil {
		return err
	}
	plan, err := compiler.Compile(string(script))
	if err != nil {
		return err
	}
	dataRoot, err := storage.ParseURI(c.dataRoot)
	if err != nil {
		return err
	}
	engine := storage.NewLocalEngine()
	loader := runtime.NewLoader(engine, dataRoot, 0)
	table, err := runtime.NewEngine(loader).Run(ctx, plan)
	if err != nil {
		return err
	}
	format := c.format
	if c.outPath != "" && c.format == "table" {
		// A file destination implies a machine-readable format.
		if format, err = rio.FormatFromPath(c.outPath); err != nil {
			return err
		}
	}
	if c.outPath == "" {
		return rio.Write(os.Stdout, format, table)
	}
	return fs.ReplaceFile(c.outPath, 0644, func(w io.Writer) error {
		return rio.Write(w, format, table)
	})
}

func readScript(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}
