package main

import (
	"fmt"
	"os"
	"runtime/pprof"
	"sort"

	"github.com/fatih/color"
	"github.com/jessevdk/go-flags"
	"github.com/sirupsen/logrus"

	"github.com/jddeal/go-nexrad-level3/level3"
)

var cli struct {
	Args struct {
		Filename string
	} `positional-args:"yes" required:"yes"`
	LogLevel    string `short:"l" long:"log-level" description:"logging level" choice:"error" choice:"info" choice:"debug" choice:"trace" default:"info"`
	ShowHeaders bool   `long:"show-headers" description:"dumps out the contents of the message header and product description"`
	ShowRadials bool   `long:"show-radials" description:"dumps out every radial header"`
	CPUProfile  string `long:"cpu-profile" description:"write a CPU profile of the decode to this file"`
	MessageCode bool   `short:"c" long:"message-code" description:"only print the message code"`
}

func main() {

	// parse the input args
	_, err := flags.Parse(&cli)
	if err != nil {
		os.Exit(1)
	}

	// set the logging level
	errorLevels := map[string]logrus.Level{
		"error": logrus.ErrorLevel,
		"info":  logrus.InfoLevel,
		"debug": logrus.DebugLevel,
		"trace": logrus.TraceLevel,
	}
	logrus.SetLevel(errorLevels[cli.LogLevel])

	if cli.MessageCode {
		code, err := level3.MessageCodeFromFile(cli.Args.Filename)
		if err != nil {
			logrus.Fatal(err)
		}
		fmt.Println(cli.Args.Filename, code)
		return
	}

	// run `go tool pprof <file>` and `top10` in the pprof prompt
	if cli.CPUProfile != "" {
		f, err := os.Create(cli.CPUProfile)
		if err != nil {
			logrus.Fatal(err)
		}
		pprof.StartCPUProfile(f)
		defer pprof.StopCPUProfile()
	}

	// decode it
	logrus.Info(color.CyanString("decoding %s", cli.Args.Filename))
	l3, err := level3.NewLevel3FromFile(cli.Args.Filename)
	if err != nil {
		logrus.Error(err)
		return
	}

	printSummary(l3)
}

func printSummary(l3 *level3.Level3File) {
	th := l3.TextHeader
	fmt.Printf("%s %s (code %s, %s)\n",
		color.YellowString("%s", th.AWIPSID),
		level3.ProductName(l3.Code()),
		color.CyanString("%d", l3.Code()),
		l3.Family())

	lat, lon, height := l3.Location()
	fmt.Printf("  location:    %.3f, %.3f at %d ft\n", lat, lon, height)
	fmt.Printf("  volume scan: %v (vcp %d)\n", l3.VolumeStartTime(), l3.ProductDescription.VolumeCoveragePattern)
	fmt.Printf("  generated:   %v\n", l3.ProductTime())
	fmt.Printf("  elevation:   %.1f deg (number %d)\n", l3.Elevation(), l3.ProductDescription.ElevationNumber)
	fmt.Printf("  compressed:  %v\n", l3.IsCompressed())

	raw := l3.RawGrid()
	fmt.Printf("  grid:        %s radials x %s bins\n", color.CyanString("%d", raw.Radials), color.CyanString("%d", raw.Bins))

	if ranges, err := l3.Range(); err != nil {
		logrus.Warn(err)
	} else if len(ranges) > 0 {
		fmt.Printf("  range:       %.0f to %.0f\n", ranges[0], ranges[len(ranges)-1])
	}

	stats := l3.ScaledField().Stats()
	fmt.Printf("  values:      %d valid, %d masked, min %.2f max %.2f\n", stats.Valid, stats.Masked, stats.Min, stats.Max)

	params := l3.ProductParameters()
	names := make([]string, 0, len(params))
	for name := range params {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("  %-22s %d\n", name+":", params[name])
	}

	if cli.ShowHeaders {
		fmt.Printf("%+v\n%+v\n%+v\n%+v\n", l3.MessageHeader, l3.ProductDescription, l3.SymbologyHeader, l3.PacketHeader)
	}

	if cli.ShowRadials {
		for i, rh := range l3.RadialHeaders() {
			fmt.Printf("  radial %03d: start=%5.1f delta=%3.1f length=%d\n", i, float64(rh.AngleStart)*0.1, float64(rh.AngleDelta)*0.1, rh.Length)
		}
	}
}
