// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/ezrec/vmcpu/asm"
	"github.com/ezrec/vmcpu/cpu"
	"github.com/ezrec/vmcpu/emulator"
	"github.com/ezrec/vmcpu/translate"
)

func main() {
	var compile string
	var image string
	var config string
	var output string
	var save bool
	var listing bool
	var dump string
	var resume string
	var verbose bool
	var lang string

	flag.StringVar(&compile, "c", "", ".asm file to assemble")
	flag.StringVar(&image, "i", "", "Raw image to load")
	flag.StringVar(&config, "f", "", "TOML machine configuration")
	flag.StringVar(&output, "o", "", "Write the assembled image to this file")
	flag.BoolVar(&save, "s", false, "Save the image only, do not execute")
	flag.BoolVar(&listing, "l", false, "Print a disassembly listing")
	flag.StringVar(&dump, "d", "", "Write a CBOR snapshot after the run")
	flag.StringVar(&resume, "r", "", "Resume from a CBOR snapshot")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")
	flag.StringVar(&lang, "L", "", "Message locale, such as en-US")

	flag.Parse()

	if flag.NArg() != 0 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	if len(lang) != 0 {
		translate.Use(lang)
	}

	if len(compile) != 0 && len(image) != 0 {
		log.Fatalf("%v: -c and -i are exclusive", os.Args[0])
	}

	conf := emulator.DefaultConfig()
	if len(config) != 0 {
		var err error
		conf, err = emulator.LoadConfig(config)
		if err != nil {
			log.Fatalf("%v: %v", config, err)
		}
	}

	emu, err := emulator.NewEmulator(conf)
	if err != nil {
		log.Fatalf("%v: %v", os.Args[0], err)
	}
	emu.Verbose = verbose

	if emu.Tape != nil {
		emu.Tape.Input = os.Stdin
		emu.Tape.Output = os.Stdout
	}

	var binary []byte

	// Assemble a new instruction stream.
	if len(compile) != 0 {
		inf, err := os.Open(compile)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
		defer inf.Close()

		as := &asm.Assembler{Verbose: verbose}
		emu.Predefine(as)
		prog, err := as.Parse(inf)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}

		err = emu.Load(prog)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
		binary = prog.Binary()
	}

	if len(image) != 0 {
		data, err := os.ReadFile(image)
		if err != nil {
			log.Fatalf("%v: %v", image, err)
		}

		err = emu.LoadImage(bytes.NewReader(data))
		if err != nil {
			log.Fatalf("%v: %v", image, err)
		}
		binary = data
	}

	if len(output) != 0 {
		err = os.WriteFile(output, binary, 0o644)
		if err != nil {
			log.Fatalf("%v: %v", output, err)
		}
	}

	if listing {
		for entry := range cpu.Disassemble(binary) {
			if entry.Err != nil {
				fmt.Printf("%v: % x\t; %v\n", entry.Addr, entry.Bytes, entry.Err)
				continue
			}
			fmt.Printf("%v: % x\t%v\n", entry.Addr, entry.Bytes, entry.Inst)
		}
	}

	if save {
		return
	}

	if len(resume) != 0 {
		data, err := os.ReadFile(resume)
		if err != nil {
			log.Fatalf("%v: %v", resume, err)
		}
		err = emu.Resume(data)
		if err != nil {
			log.Fatalf("%v: %v", resume, err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err = emu.Run(ctx)
	if err != nil {
		log.Print(err)
	}

	if verbose {
		log.Print(emu.Cpu.String())
	}

	if len(dump) != 0 {
		data, err := emu.Dump()
		if err != nil {
			log.Fatalf("%v: %v", dump, err)
		}
		err = os.WriteFile(dump, data, 0o644)
		if err != nil {
			log.Fatalf("%v: %v", dump, err)
		}
	}

	if err != nil {
		os.Exit(1)
	}
}
