package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Helios113/ramulator2/dram"
)

var describeCmd = &cobra.Command{
	Use:   "describe",
	Short: "Resolve and print the organization/timing catalog without running a simulation.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ms, err := loadMemorySystem(configPath)
		if err != nil {
			return err
		}

		dev, err := ms.DRAM.BuildDevice()
		if err != nil {
			return err
		}

		printCatalog(dev)

		return nil
	},
}

func init() {
	rootCmd.AddCommand(describeCmd)
}

func printCatalog(dev *dram.Device) {
	org := dev.Organization()
	timing := dev.Timing()

	fmt.Println("organization:")
	fmt.Printf("  density_mb:    %d\n", org.DensityMb)
	fmt.Printf("  dq_bits:       %d\n", org.DQBits)
	fmt.Printf("  channel_width: %d\n", org.ChannelWidth)

	for i, n := range org.Count {
		fmt.Printf("  count[%d]:      %d\n", i, n)
	}

	fmt.Println("timing:")

	for i, v := range timing {
		fmt.Printf("  %-8s %d\n", dram.Timing(i).String(), v)
	}

	fmt.Printf("read_latency:  %d cycles\n", dev.ReadLatency())
	fmt.Printf("write_latency: %d cycles\n", dev.WriteLatency())
}
