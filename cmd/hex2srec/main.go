// Command hex2srec converts an Intel HEX file or a raw binary image into the
// page-aligned S1 records eepromburn accepts.
//
// Usage:
//
//	hex2srec [--chunk 64] [-o rom.s19] firmware.hex
//	hex2srec --binary --base 0x0000 [-o rom.s19] image.bin
package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/moffa90/go-eeprom/srec"
)

func main() {
	if err := rootCommand(os.Stdout).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type options struct {
	binary bool
	base   string
	chunk  int
	output string
}

func rootCommand(stdout io.Writer) *cobra.Command {
	var o options

	cmd := &cobra.Command{
		Use:           "hex2srec [flags] input",
		Short:         "Convert Intel HEX or binary images to page-aligned S1 records",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return convert(args[0], o, stdout)
		},
	}

	fs := cmd.Flags()
	fs.BoolVar(&o.binary, "binary", false, "Treat the input as a raw binary image")
	fs.StringVar(&o.base, "base", "0", "Load address of a binary image")
	fs.IntVar(&o.chunk, "chunk", srec.MaxRecordSize, "Maximum data bytes per record")
	fs.StringVarP(&o.output, "output", "o", "", "Output file (default stdout)")

	return cmd
}

func convert(input string, o options, stdout io.Writer) error {
	rom, err := load(input, o)
	if err != nil {
		return err
	}

	out := stdout
	if o.output != "" {
		f, err := os.Create(o.output)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer f.Close()
		out = f
	}

	if _, err := rom.WriteTo(out); err != nil {
		return fmt.Errorf("write records: %w", err)
	}
	return nil
}

func load(input string, o options) (*srec.ROM, error) {
	if !o.binary {
		return srec.LoadIntelHexFile(input, o.chunk)
	}

	base, err := strconv.ParseUint(o.base, 0, 32)
	if err != nil {
		return nil, fmt.Errorf("invalid base address %q: %w", o.base, err)
	}

	data, err := os.ReadFile(input)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return srec.FromImage(uint32(base), data, o.chunk)
}
