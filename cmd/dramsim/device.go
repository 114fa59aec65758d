package main

import (
	"fmt"
	"strings"

	"github.com/Helios113/ramulator2/adapter"
	"github.com/Helios113/ramulator2/config"
	"github.com/Helios113/ramulator2/dram"
)

// fallbackMemorySystem is the built-in LPDDR5X_8Gb_x16 + LPDDR5X_8533
// configuration used when neither --config nor DRAM_CONFIG_PATH names a
// file.
func fallbackMemorySystem() *config.MemorySystem {
	return &config.MemorySystem{
		DRAM: config.DRAM{
			Organization: config.Organization{Preset: "LPDDR5X_8Gb_x16"},
			Timing:       config.Timing{Preset: "LPDDR5X_8533"},
			Adapter:      config.Adapter{Capacity: 64},
		},
	}
}

func loadMemorySystem(path string) (*config.MemorySystem, error) {
	if path == "" {
		return fallbackMemorySystem(), nil
	}

	return config.Load(path)
}

func buildController(ms *config.MemorySystem, name string) (*dram.Device, *adapter.Controller, error) {
	dev, err := ms.DRAM.BuildDevice()
	if err != nil {
		return nil, nil, fmt.Errorf("building device: %w", err)
	}

	opts := []adapter.Option{}
	if ms.DRAM.Adapter.Capacity > 0 {
		opts = append(opts, adapter.WithCapacity(ms.DRAM.Adapter.Capacity))
	}

	if ms.DRAM.Adapter.LogInterval > 0 {
		opts = append(opts, adapter.WithLogInterval(ms.DRAM.Adapter.LogInterval))
	}

	if strings.EqualFold(ms.DRAM.Adapter.LogLevel, "debug") {
		opts = append(opts, adapter.WithLogLevel(adapter.LogLevelDebug))
	}

	ctl := adapter.NewController(name, dev, opts...)

	return dev, ctl, nil
}
