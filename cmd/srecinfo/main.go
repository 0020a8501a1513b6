// Command srecinfo parses an S1 record file the way eepromburn does and prints
// a summary.
//
// Usage:
//
//	srecinfo [-v] rom.s19
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/moffa90/go-eeprom/srec"
)

func main() {
	if err := rootCommand(os.Stdout).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCommand(stdout io.Writer) *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:           "srecinfo [-v] file",
		Short:         "Summarise an S1 record file",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			rom, err := srec.Parse(args[0])
			if err != nil {
				return err
			}
			report(stdout, args[0], rom, verbose)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "List every record")
	return cmd
}

func report(w io.Writer, path string, rom *srec.ROM, verbose bool) {
	fmt.Fprintf(w, "File:     %s\n", path)
	fmt.Fprintf(w, "Records:  %d\n", rom.PageCount())
	fmt.Fprintf(w, "Bytes:    %d\n", rom.TotalSize())

	if rom.PageCount() == 0 {
		return
	}

	low, high := rom.Record(0).Address(), rom.Record(0).EndAddress()
	pages := make(map[int]bool)
	badChecksums := 0
	for _, rec := range rom.Records() {
		if rec.Address() < low {
			low = rec.Address()
		}
		if rec.EndAddress() > high {
			high = rec.EndAddress()
		}
		pages[rec.Page()] = true
		if srec.VerifyChecksum(rec.Raw()) != nil {
			badChecksums++
		}
	}

	fmt.Fprintf(w, "Range:    0x%04X-0x%04X\n", low, high)
	fmt.Fprintf(w, "Pages:    %d distinct\n", len(pages))
	if badChecksums > 0 {
		fmt.Fprintf(w, "Warning:  %d records have a bad checksum; the device will reject them\n", badChecksums)
	}

	if !verbose {
		return
	}

	fmt.Fprintln(w)
	for i, rec := range rom.Records() {
		mark := ""
		if srec.VerifyChecksum(rec.Raw()) != nil {
			mark = "  bad checksum"
		}
		fmt.Fprintf(w, "%5d  %s  page %d%s\n", i+1, rec, rec.Page(), mark)
	}
}
