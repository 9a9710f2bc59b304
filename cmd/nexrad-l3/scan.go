package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"

	"github.com/cheggaaa/pb/v3"
	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/semaphore"

	"github.com/jddeal/go-nexrad-level3/level3"
)

var (
	workers  int64
	noBar    bool
	failFast bool
)

var scanCmd = &cobra.Command{
	Use:   "scan FILE|DIR...",
	Short: "Fully decode every file and tally the results",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		files, err := collectFiles(args)
		if err != nil {
			return err
		}
		if workers <= 0 {
			workers = int64(runtime.NumCPU())
		}

		res := scanFiles(context.Background(), files, workers, !noBar)
		res.print(cmd)

		if failFast && len(res.failures) > 0 {
			return fmt.Errorf("%d of %d files failed to decode", len(res.failures), len(files))
		}
		return nil
	},
}

func init() {
	scanCmd.Flags().Int64VarP(&workers, "workers", "w", 0, "number of files decoded in parallel (default: number of CPUs)")
	scanCmd.Flags().BoolVar(&noBar, "no-progress", false, "do not show a progress bar")
	scanCmd.Flags().BoolVar(&failFast, "strict", false, "exit non-zero if any file fails to decode")
}

// collectFiles expands directories into the regular files beneath them, skipping converted .nc files.
func collectFiles(args []string) ([]string, error) {
	files := []string{}
	for _, arg := range args {
		err := filepath.Walk(arg, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if info.Mode().IsRegular() && !strings.HasSuffix(path, ".nc") {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return files, nil
}

type scanResult struct {
	mtx      sync.Mutex
	families map[level3.Family]int
	codes    map[int16]int
	kinds    map[string]int
	failures map[string]error
}

// errorKinds in the order they are reported
var errorKinds = []error{
	level3.ErrUnsupportedProductCode,
	level3.ErrUnsupportedPacketCode,
	level3.ErrTruncatedInput,
	level3.ErrDecompressionFailure,
	level3.ErrMalformedPacket,
	level3.ErrBadDivider,
	level3.ErrUnsupportedScaling,
	level3.ErrUnknownRangeResolution,
}

func errorKind(err error) string {
	for _, kind := range errorKinds {
		if errors.Is(err, kind) {
			return kind.Error()
		}
	}
	return "other"
}

func (res *scanResult) add(fn string, l3 *level3.Level3File, err error) {
	res.mtx.Lock()
	defer res.mtx.Unlock()

	if err != nil {
		res.failures[fn] = err
		res.kinds[errorKind(err)]++
		return
	}
	res.families[l3.Family()]++
	res.codes[l3.Code()]++

	// the range table is consulted lazily, so a decoded product can still lack one
	if _, err := l3.Range(); err != nil {
		res.kinds[errorKind(err)]++
	}
}

// scanFiles decodes every file with at most workers decodes in flight. Decodes share nothing so
// the only coordination is the result tally.
func scanFiles(ctx context.Context, files []string, workers int64, showBar bool) *scanResult {
	res := &scanResult{
		families: map[level3.Family]int{},
		codes:    map[int16]int{},
		kinds:    map[string]int{},
		failures: map[string]error{},
	}

	var bar *pb.ProgressBar
	if showBar {
		bar = pb.StartNew(len(files))
		defer bar.Finish()
	}

	sema := semaphore.NewWeighted(workers)
	for _, fn := range files {
		if err := sema.Acquire(ctx, 1); err != nil {
			logrus.Error(err)
			break
		}
		go func(fn string) {
			defer sema.Release(1)

			l3, err := level3.NewLevel3FromFile(fn)
			if err != nil {
				logrus.Debugf("%s: %v", fn, err)
			}
			res.add(fn, l3, err)

			if bar != nil {
				bar.Increment()
			}
		}(fn)
	}

	// wait for the stragglers
	if err := sema.Acquire(ctx, workers); err != nil {
		logrus.Error(err)
	}

	return res
}

func (res *scanResult) print(cmd *cobra.Command) {
	out := cmd.OutOrStdout()

	decoded := 0
	for _, n := range res.families {
		decoded += n
	}
	fmt.Fprintf(out, "%s decoded, %s failed\n",
		color.GreenString("%d", decoded),
		color.RedString("%d", len(res.failures)))

	families := make([]level3.Family, 0, len(res.families))
	for f := range res.families {
		families = append(families, f)
	}
	sort.Slice(families, func(i, j int) bool { return families[i] < families[j] })
	for _, f := range families {
		fmt.Fprintf(out, "  %-16s %d\n", f, res.families[f])
	}

	for _, code := range sortedCodes(res.codes) {
		fmt.Fprintf(out, "  code %3d  %-45s %d\n", code, level3.ProductName(code), res.codes[code])
	}

	for _, kind := range errorKinds {
		if n := res.kinds[kind.Error()]; n > 0 {
			fmt.Fprintf(out, "  %-26s %d\n", kind, n)
		}
	}
	if n := res.kinds["other"]; n > 0 {
		fmt.Fprintf(out, "  %-26s %d\n", "other", n)
	}

	failed := make([]string, 0, len(res.failures))
	for fn := range res.failures {
		failed = append(failed, fn)
	}
	sort.Strings(failed)
	for _, fn := range failed {
		logrus.Warnf("%s: %v", fn, res.failures[fn])
	}
}
