package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/jddeal/go-nexrad-level3/level3"
)

var codesCmd = &cobra.Command{
	Use:   "codes FILE...",
	Short: "Show the message code of one or more files",
	Long:  "Reads only the message header of each file. Converted .nc files are skipped.",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		seen := map[int16]int{}
		for _, fn := range args {
			if strings.HasSuffix(fn, ".nc") {
				continue
			}
			code, err := level3.MessageCodeFromFile(fn)
			if err != nil {
				logrus.Errorf("%s: %v", fn, err)
				continue
			}
			fmt.Fprintln(cmd.OutOrStdout(), fn, code)
			seen[code]++
		}

		fmt.Fprintln(cmd.OutOrStdout(), "Unique codes seen:")
		for _, code := range sortedCodes(seen) {
			supported := color.RedString("unsupported")
			if level3.IsSupported(code) {
				supported = level3.ProductFamilyOf(code).String()
			}
			fmt.Fprintf(cmd.OutOrStdout(), "  %3d  %4d files  %-45s %s\n", code, seen[code], level3.ProductName(code), supported)
		}
	},
}

func sortedCodes(counts map[int16]int) []int16 {
	codes := make([]int16, 0, len(counts))
	for code := range counts {
		codes = append(codes, code)
	}
	sort.Slice(codes, func(i, j int) bool { return codes[i] < codes[j] })
	return codes
}
