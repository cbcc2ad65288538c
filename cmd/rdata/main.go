package main

import (
	"fmt"
	"os"

	_ "github.com/dabbsLondon/rdata/cmd/rdata/bench"
	_ "github.com/dabbsLondon/rdata/cmd/rdata/gen"
	_ "github.com/dabbsLondon/rdata/cmd/rdata/query"
	"github.com/dabbsLondon/rdata/cmd/rdata/root"
	_ "github.com/dabbsLondon/rdata/cmd/rdata/serve"
	_ "github.com/dabbsLondon/rdata/cmd/rdata/version"
)

func main() {
	if err := root.Rdata.ExecRoot(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		os.Exit(1)
	}
}
