// Command call is the one-shot hall-call client (spec §4.5): it connects
// to the controller, sends a single CALL, and prints the verdict.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/ManuGH/liftctl/internal/callclient"
	"github.com/ManuGH/liftctl/internal/config"
	"github.com/ManuGH/liftctl/internal/floor"
)

const (
	exitOK = iota
	exitArgError
	exitResourceUnavailable
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) != 2 {
		fmt.Fprintf(os.Stderr, "usage: call <src> <dst>\n")
		return exitArgError
	}

	src, err := floor.ToInt(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "call: invalid source floor %q: %v\n", args[0], err)
		return exitArgError
	}
	dst, err := floor.ToInt(args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "call: invalid destination floor %q: %v\n", args[1], err)
		return exitArgError
	}

	result, err := callclient.Call(config.DefaultControllerAddr, src, dst)
	if err != nil {
		if errors.Is(err, callclient.ErrEqualFloors) {
			fmt.Fprintln(os.Stderr, err)
			return exitArgError
		}
		fmt.Fprintln(os.Stderr, err)
		return exitResourceUnavailable
	}

	fmt.Println(result.String())
	return exitOK
}
