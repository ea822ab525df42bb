package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/akamensky/argparse"

	"github.com/michalbiesek/lsmem/bootstrap"
	"github.com/michalbiesek/lsmem/util"
)

const version = "0.1.0"

func main() {
	parser := argparse.NewParser("lsmem", "List the ranges of available memory with their online status")
	all := parser.Flag("a", "all", &argparse.Options{
		Help: "List each individual memory block",
	})
	bytesMode := parser.Flag("b", "bytes", &argparse.Options{
		Help: "Print SIZE in bytes rather than in human readable format",
	})
	jsonFormat := parser.Flag("J", "json", &argparse.Options{
		Help: "Use JSON output format",
	})
	noHeadings := parser.Flag("n", "noheadings", &argparse.Options{
		Help: "Don't print headings",
	})
	output := parser.String("o", "output", &argparse.Options{
		Help: "Comma-separated list of output columns (RANGE, SIZE, STATE, REMOVABLE, BLOCK, NODE)",
	})
	pairsFormat := parser.Flag("P", "pairs", &argparse.Options{
		Help: "Use key=\"value\" output format",
	})
	rawFormat := parser.Flag("r", "raw", &argparse.Options{
		Help: "Use raw output format",
	})
	sysroot := parser.String("s", "sysroot", &argparse.Options{
		Help: "Use the specified directory as system root",
	})
	configFilename := parser.String("c", "config", &argparse.Options{
		Default: util.GetenvDefault("LSMEM_CONFIG", "/etc/lsmem.conf"),
		Help:    "Configuration file path",
	})
	showVersion := parser.Flag("V", "version", &argparse.Options{
		Help: "Print version and exit",
	})

	if err := parser.Parse(os.Args); err != nil {
		fmt.Fprint(os.Stderr, parser.Usage(err))
		os.Exit(1)
	}
	if *showVersion {
		fmt.Printf("lsmem version %s\n", version)
		return
	}

	columns := []string{}
	if *output != "" {
		columns = strings.Split(*output, ",")
	}
	bootstrap.Run(bootstrap.Options{
		ConfigFilename: *configFilename,
		All:            *all,
		Bytes:          *bytesMode,
		NoHeadings:     *noHeadings,
		Columns:        columns,
		JSON:           *jsonFormat,
		Pairs:          *pairsFormat,
		Raw:            *rawFormat,
		Sysroot:        *sysroot,
	})
}
