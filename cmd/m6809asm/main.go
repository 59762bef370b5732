/*
 * m6809 - Assembler command line driver.
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
	"bufio"
	"fmt"
	"os"
	"strings"

	getopt "github.com/pborman/getopt/v2"
	"golang.org/x/term"

	"github.com/hcornwell/m6809/assembler"
)

// Exit codes per the assembler CLI contract.
const (
	exitSuccess = 0
	exitUsage   = 2
	exitAbort   = 3
	exitIOError = 4
)

func main() {
	os.Exit(run())
}

func run() int {
	optOut := getopt.StringLong("output", 'o', "", "Binary image output file")
	optSrec := getopt.StringLong("srec", 's', "", "S-record output file")
	optList := getopt.StringLong("listing", 'l', "", "Listing output file")
	optHelp := getopt.BoolLong("help", 'h', "Help")
	getopt.Parse()

	if *optHelp {
		getopt.Usage()
		return exitSuccess
	}

	args := getopt.Args()
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "usage: m6809asm [-o out] [-s srec-out] [-l listfile] source")
		return exitUsage
	}
	source := args[0]

	a := assembler.NewAssembler()
	if err := a.LoadFile(source, nil); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitIOError
	}

	a.RunPass1()
	pass1Errs := len(a.Errs.Errors)
	if pass1Errs > 0 {
		for _, e := range a.Errs.Errors {
			fmt.Fprintln(os.Stderr, e.Error())
		}
		if !confirmContinue() {
			return exitAbort
		}
	}

	a.RunPass2()
	for _, e := range a.Errs.Errors[pass1Errs:] {
		fmt.Fprintln(os.Stderr, e.Error())
	}
	if a.Errs.HasErrors() {
		return exitAbort
	}

	if *optOut != "" {
		if err := writeBinImage(*optOut, a); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return exitIOError
		}
	}
	if *optSrec != "" {
		if err := writeSRecord(*optSrec, a); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return exitIOError
		}
	}
	if *optList != "" {
		if err := writeListing(*optList, a); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return exitIOError
		}
	}

	return exitSuccess
}

// confirmContinue asks whether to proceed into pass 2 despite pass 1
// errors. Non-terminal stdin (scripts, CI) is treated as "yes" so
// m6809asm never blocks waiting on a prompt nobody will answer.
func confirmContinue() bool {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return true
	}
	fmt.Fprint(os.Stderr, "pass 1 reported errors, continue to pass 2? [y/N] ")
	scanner := bufio.NewScanner(os.Stdin)
	if !scanner.Scan() {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(scanner.Text()))
	return answer == "y" || answer == "yes"
}

func writeBinImage(path string, a *assembler.Assembler) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return assembler.WriteBinImage(f, a.Segments)
}

func writeSRecord(path string, a *assembler.Assembler) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return assembler.WriteSRecord(f, a.Segments, a.EntryPoint)
}

func writeListing(path string, a *assembler.Assembler) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return assembler.WriteListing(f, a.Listing(), a.Errs)
}
