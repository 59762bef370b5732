/*
 * m6809 - Simulator command line driver.
 *
 * Copyright 2024, Richard Cornwell
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in
 * all copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 */

package main

import (
	"fmt"
	"log/slog"
	"net"
	"os"

	getopt "github.com/pborman/getopt/v2"

	"github.com/hcornwell/m6809/command/reader"
	config "github.com/hcornwell/m6809/config/configparser"
	"github.com/hcornwell/m6809/emu/cpu"
	"github.com/hcornwell/m6809/emu/device"
	"github.com/hcornwell/m6809/emu/memory"
	"github.com/hcornwell/m6809/emu/sim"
	logger "github.com/hcornwell/m6809/util/logger"
)

func main() {
	optConfig := getopt.StringLong("config", 'c', "m6809.cfg", "Configuration file")
	optLogFile := getopt.StringLong("log", 'l', "", "Log file")
	optHelp := getopt.BoolLong("help", 'h', "Help")
	getopt.Parse()

	if *optHelp {
		getopt.Usage()
		os.Exit(0)
	}

	var logFile *os.File
	if *optLogFile != "" {
		f, err := os.Create(*optLogFile)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(4)
		}
		logFile = f
	}
	programLevel := new(slog.LevelVar)
	programLevel.Set(slog.LevelInfo)
	debug := false
	log := slog.New(logger.NewHandler(logFile, &slog.HandlerOptions{Level: programLevel, AddSource: false}, &debug))
	slog.SetDefault(log)

	cfg, err := config.LoadConfigFile(*optConfig)
	if err != nil {
		log.Error(err.Error())
		os.Exit(4)
	}

	rom, err := os.ReadFile(cfg.ROMPath)
	if err != nil {
		log.Error(err.Error())
		os.Exit(4)
	}

	mem := memory.New()
	mem.IOPage = cfg.IOPage
	mem.LoadROM(0x8000, rom)

	uart, err := openUART(cfg)
	if err != nil {
		log.Error(err.Error())
		os.Exit(4)
	}
	mem.SetPort(uart)

	core := cpu.New(mem, log)

	timer := device.NewTimer(cfg.TimerPeriod, core)

	machine := sim.New(core, mem, uart, timer)

	log.Info("m6809 started", "rom", cfg.ROMPath, "iopage", cfg.IOPage, "pc", core.PC)
	reader.ConsoleReader(machine)

	timer.Shutdown()
	uart.Shutdown()
	machine.Quit()
	log.Info("m6809 stopped")
}

// openUART wires the configured UART backend: stdio for a local
// terminal session, or a single accepted TCP connection.
func openUART(cfg config.Config) (*device.UART, error) {
	switch cfg.UARTBackend {
	case "tcp":
		ln, err := net.Listen("tcp", cfg.UARTAddr)
		if err != nil {
			return nil, err
		}
		slog.Info("waiting for UART connection", "addr", cfg.UARTAddr)
		conn, err := ln.Accept()
		ln.Close()
		if err != nil {
			return nil, err
		}
		return device.NewUART(conn, conn), nil
	default:
		return device.NewUART(os.Stdin, os.Stdout), nil
	}
}
