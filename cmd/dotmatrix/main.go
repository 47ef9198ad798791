package main

import (
	"flag"
	"os"

	"github.com/cespare/xxhash"
	"github.com/pixelmoss/dotmatrix/internal/emu"
	"github.com/pixelmoss/dotmatrix/pkg/log"
	"github.com/pixelmoss/dotmatrix/pkg/utils"
)

func main() {
	romFile := flag.String("rom", "", "the rom file to load")
	bootROM := flag.String("boot", "", "the boot rom file to load")
	debug := flag.Bool("debug", false, "enable bus tracing and instruction disassembly")
	frames := flag.Int("frames", 60, "number of frames to run")
	breakpoint := flag.Int("breakpoint", -1, "address to latch a breakpoint at")
	flag.Parse()

	logger := log.New()
	if *debug {
		logger = log.NewDebug()
	}

	rom, err := utils.LoadFile(*romFile)
	if err != nil {
		logger.Errorf("failed to load rom: %v", err)
		os.Exit(1)
	}
	logger.Infof("rom image %s (%d bytes, fingerprint %016x)", *romFile, len(rom), xxhash.Sum64(rom))

	opts := []emu.Opt{emu.WithLogger(logger)}
	if *bootROM != "" {
		boot, err := utils.LoadFile(*bootROM)
		if err != nil {
			logger.Errorf("failed to load boot rom: %v", err)
			os.Exit(1)
		}
		opts = append(opts, emu.WithBootROM(boot))
	}
	if *debug {
		opts = append(opts, emu.WithDebug())
	}
	if *breakpoint >= 0 {
		opts = append(opts, emu.WithBreakpoint(uint16(*breakpoint)))
	}

	m, err := emu.New(rom, opts...)
	if err != nil {
		logger.Errorf("failed to create machine: %v", err)
		os.Exit(1)
	}

	for i := 0; i < *frames; i++ {
		m.Frame()
		if m.CPU.DebugBreakpoint {
			regs := m.Registers()
			logger.Infof("breakpoint hit at %04X (A:%02X F:%02X SP:%04X)", regs.PC, regs.A, regs.F, regs.SP)
			break
		}
	}
}
