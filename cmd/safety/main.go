// Command safety runs the independent safety-invariant monitor for one
// car (spec §4.3): it evaluates the record after every mutation and
// reports violations to stdout, setting emergency_mode as needed.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"

	"github.com/ManuGH/liftctl/internal/elevator"
	"github.com/ManuGH/liftctl/internal/log"
	"github.com/ManuGH/liftctl/internal/metrics"
	"github.com/ManuGH/liftctl/internal/safetymonitor"
)

const (
	exitOK = iota
	exitArgError
	exitResourceUnavailable
)

func main() {
	os.Exit(run(os.Args[1:]))
}

type flushingWriter struct {
	w *bufio.Writer
}

func (f flushingWriter) Println(s string) error {
	if _, err := fmt.Fprintln(f.w, s); err != nil {
		return err
	}
	return f.w.Flush()
}

func run(args []string) int {
	if len(args) != 1 {
		fmt.Fprintf(os.Stderr, "usage: safety <car_name>\n")
		return exitArgError
	}
	carName := args[0]

	rec, err := elevator.Open(carName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "safety: car %q unavailable: %v\n", carName, err)
		return exitResourceUnavailable
	}
	defer rec.Close()

	log.Configure(log.Config{Service: "safety", CarName: carName})

	out := flushingWriter{w: bufio.NewWriter(os.Stdout)}
	onRule := func(rule safetymonitor.Rule) {
		metrics.RecordSafetyViolation(carName, string(rule))
	}

	_ = safetymonitor.Run(context.Background(), rec, out, onRule)
	return exitOK
}
