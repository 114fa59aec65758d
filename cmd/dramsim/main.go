// Command dramsim wires a dram.Device and an adapter.Controller together
// behind a small CLI, for config validation and trace replay.
package main

func main() {
	Execute()
}
