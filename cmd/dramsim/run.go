package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"

	"github.com/Helios113/ramulator2/adapter"
)

var (
	runCycles int
	runTrace  string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Replay a request trace through the device and controller adapter.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ms, err := loadMemorySystem(configPath)
		if err != nil {
			return err
		}

		_, ctl, err := buildController(ms, "ch0")
		if err != nil {
			return err
		}

		events, err := loadTraceEvents(runTrace, runCycles)
		if err != nil {
			return err
		}

		atexit.Register(ctl.Finish)

		byCycle := make(map[int][]traceEvent, len(events))

		for _, ev := range events {
			byCycle[ev.cycle] = append(byCycle[ev.cycle], ev)
		}

		for clk := 0; clk < runCycles; clk++ {
			for _, ev := range byCycle[clk] {
				if ctl.Full() {
					fmt.Fprintf(os.Stderr, "dramsim: queue full at cycle %d, dropping request for %#x\n", clk, ev.address)
					continue
				}

				ctl.Push(adapter.NewMemFetch(ev.address, ev.write, 32, nil))
			}

			ctl.Cycle()

			for ctl.ReturnQueueTop() != nil {
				ctl.ReturnQueuePop()
			}
		}

		// atexit.Exit runs the registered ctl.Finish before exiting.
		atexit.Exit(0)

		return nil
	},
}

func init() {
	runCmd.Flags().IntVar(&runCycles, "cycles", 100000, "number of simulated clock cycles to run")
	runCmd.Flags().StringVar(&runTrace, "trace", "", "path to a textual trace file of \"cycle address r|w\" lines")
	rootCmd.AddCommand(runCmd)
}

type traceEvent struct {
	cycle   int
	address uint64
	write   bool
}

// loadTraceEvents parses a trace file, or — if path is empty — generates a
// small built-in synthetic address stream: one request every 4 cycles
// (every fifth one a write, the rest reads), striding across a handful of
// rows, for the requested cycle count.
func loadTraceEvents(path string, cycles int) ([]traceEvent, error) {
	if path == "" {
		return syntheticTrace(cycles), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening trace %s: %w", path, err)
	}
	defer f.Close()

	var events []traceEvent

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) != 3 {
			return nil, fmt.Errorf("malformed trace line %q", line)
		}

		cycle, err := strconv.Atoi(fields[0])
		if err != nil {
			return nil, fmt.Errorf("malformed cycle in %q: %w", line, err)
		}

		address, err := strconv.ParseUint(strings.TrimPrefix(fields[1], "0x"), 16, 64)
		if err != nil {
			return nil, fmt.Errorf("malformed address in %q: %w", line, err)
		}

		write := fields[2] == "w"

		events = append(events, traceEvent{cycle: cycle, address: address, write: write})
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading trace %s: %w", path, err)
	}

	return events, nil
}

func syntheticTrace(cycles int) []traceEvent {
	var events []traceEvent

	for clk := 0; clk < cycles; clk += 4 {
		row := (clk / 4) % 8
		events = append(events, traceEvent{
			cycle:   clk,
			address: uint64(row) << 20,
			write:   (clk/4)%5 == 0,
		})
	}

	return events
}
