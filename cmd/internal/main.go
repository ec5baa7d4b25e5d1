// Command internal applies one single-shot mutation to a running car's
// shared record (spec §4.4): open, close, stop, service_on, service_off,
// up, or down.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/ManuGH/liftctl/internal/elevator"
	"github.com/ManuGH/liftctl/internal/internalop"
)

const (
	exitOK = iota
	exitArgError
	exitResourceUnavailable
	exitRejected
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) != 2 {
		fmt.Fprintf(os.Stderr, "usage: internal <car_name> <op>\n")
		return exitArgError
	}

	carName := args[0]
	op, err := internalop.ParseOperation(args[1])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitArgError
	}

	rec, err := elevator.Open(carName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "internal: car %q unavailable: %v\n", carName, err)
		return exitResourceUnavailable
	}
	defer rec.Close()

	if err := internalop.Apply(rec, op); err != nil {
		var rejected *internalop.ErrRejected
		if errors.As(err, &rejected) {
			fmt.Fprintln(os.Stderr, rejected.Error())
			return exitRejected
		}
		fmt.Fprintln(os.Stderr, err)
		return exitArgError
	}
	return exitOK
}
