package root

import (
	"flag"

	"github.com/dabbsLondon/rdata/cli"
	"github.com/dabbsLondon/rdata/pkg/charm"
)

var Rdata = &charm.Spec{
	Name:  "rdata",
	Usage: "rdata <command> [options] [arguments...]",
	Short: "run dataframe scripts and serve them over HTTP",
	Long: `
rdata executes scripts written in a small dataframe language: load a
columnar file, then filter, select, group and aggregate, and sort the
result.  The serve command runs the script engine as an HTTP service;
the query command runs a script locally.`,
	New: New,
}

type Command struct {
	charm.Command
	cli.Flags
}

func New(parent charm.Command, f *flag.FlagSet) (charm.Command, error) {
	c := &Command{}
	c.SetFlags(f)
	return c, nil
}

func (c *Command) Run(args []string) error {
	_, cancel, err := c.Init()
	if err != nil {
		return err
	}
	defer cancel()
	if len(args) == 0 {
		return charm.NeedHelp
	}
	return charm.ErrNoRun
}
