package version

import (
	"flag"
	"fmt"

	"github.com/dabbsLondon/rdata/cli"
	"github.com/dabbsLondon/rdata/cmd/rdata/root"
	"github.com/dabbsLondon/rdata/pkg/charm"
)

var spec = &charm.Spec{
	Name:  "version",
	Usage: "version",
	Short: "print the version of this rdata binary",
	New:   New,
}

func init() {
	root.Rdata.Add(spec)
}

type Command struct {
	*root.Command
}

func New(parent charm.Command, f *flag.FlagSet) (charm.Command, error) {
	return &Command{Command: parent.(*root.Command)}, nil
}

func (c *Command) Run(args []string) error {
	fmt.Println(cli.Version())
	return nil
}
