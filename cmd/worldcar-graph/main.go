package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/yunusemre274/World-Car/internal/errors"
)

// Supported subcommands:
// - download: Download OSM PBF data
// - convert:  Convert PBF to graph CSV files
// - prepare:  Download + convert in one step
// - validate: Validate graph data integrity
// - stats:    Print network statistics

func main() {
	// Subcommand definitions
	downloadCmd := flag.NewFlagSet("download", flag.ExitOnError)
	convertCmd := flag.NewFlagSet("convert", flag.ExitOnError)
	prepareCmd := flag.NewFlagSet("prepare", flag.ExitOnError)
	validateCmd := flag.NewFlagSet("validate", flag.ExitOnError)
	statsCmd := flag.NewFlagSet("stats", flag.ExitOnError)

	// download parameters
	downloadRegion := downloadCmd.String("region", "istanbul", "Region to download")
	downloadOutput := downloadCmd.String("output", "/tmp", "Output directory for PBF file")

	// convert parameters
	convertInput := convertCmd.String("input", "", "Input PBF file path")
	convertOutput := convertCmd.String("output", "./data/graph", "Output directory for CSV files")
	convertRegion := convertCmd.String("region", "unknown", "Region of the input data")
	convertFull := convertCmd.Bool("keep-disconnected", false, "Keep nodes outside the largest connected component")

	// prepare parameters (combines download + convert)
	prepareRegion := prepareCmd.String("region", "istanbul", "Region to download")
	prepareOutput := prepareCmd.String("output", "./data/graph", "Output directory for CSV files")

	// validate parameters
	validateDir := validateCmd.String("dir", "./data/graph", "Directory to validate")

	// stats parameters
	statsDir := statsCmd.String("dir", "./data/graph", "Directory containing graph CSV files")

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	flags := graphFlags{
		Download: downloadFlags{
			cmd:    downloadCmd,
			region: downloadRegion,
			output: downloadOutput,
		},
		Convert: convertFlags{
			cmd:              convertCmd,
			input:            convertInput,
			output:           convertOutput,
			region:           convertRegion,
			keepDisconnected: convertFull,
		},
		Prepare: prepareFlags{
			cmd:    prepareCmd,
			region: prepareRegion,
			output: prepareOutput,
		},
		Validate: validateFlags{
			cmd: validateCmd,
			dir: validateDir,
		},
		Stats: statsFlags{
			cmd: statsCmd,
			dir: statsDir,
		},
	}

	if err := runSubcommand(ctx, &flags); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type graphFlags struct {
	Download downloadFlags
	Convert  convertFlags
	Prepare  prepareFlags
	Validate validateFlags
	Stats    statsFlags
}

type downloadFlags struct {
	cmd    *flag.FlagSet
	region *string
	output *string
}

type convertFlags struct {
	cmd              *flag.FlagSet
	input            *string
	output           *string
	region           *string
	keepDisconnected *bool
}

type prepareFlags struct {
	cmd    *flag.FlagSet
	region *string
	output *string
}

type validateFlags struct {
	cmd *flag.FlagSet
	dir *string
}

type statsFlags struct {
	cmd *flag.FlagSet
	dir *string
}

func runSubcommand(ctx context.Context, flags *graphFlags) error {
	switch os.Args[1] {
	case "download":
		return handleDownload(ctx, flags)
	case "convert":
		return handleConvert(ctx, flags)
	case "prepare":
		return handlePrepare(ctx, flags)
	case "validate":
		return handleValidate(flags)
	case "stats":
		return handleStats(flags)
	default:
		printUsage()

		return errors.New("unknown subcommand")
	}
}

func handleDownload(ctx context.Context, flags *graphFlags) error {
	if err := flags.Download.cmd.Parse(os.Args[2:]); err != nil {
		return errors.Wrap(err, "failed to parse download flags")
	}

	return runDownload(ctx, *flags.Download.region, *flags.Download.output)
}

func handleConvert(ctx context.Context, flags *graphFlags) error {
	if err := flags.Convert.cmd.Parse(os.Args[2:]); err != nil {
		return errors.Wrap(err, "failed to parse convert flags")
	}

	if *flags.Convert.input == "" {
		return errors.New("--input flag is required for convert command")
	}

	return runConvert(ctx, *flags.Convert.input, *flags.Convert.output, *flags.Convert.region, !*flags.Convert.keepDisconnected)
}

func handlePrepare(ctx context.Context, flags *graphFlags) error {
	if err := flags.Prepare.cmd.Parse(os.Args[2:]); err != nil {
		return errors.Wrap(err, "failed to parse prepare flags")
	}

	return runPrepare(ctx, *flags.Prepare.region, *flags.Prepare.output)
}

func handleValidate(flags *graphFlags) error {
	if err := flags.Validate.cmd.Parse(os.Args[2:]); err != nil {
		return errors.Wrap(err, "failed to parse validate flags")
	}

	return runValidate(*flags.Validate.dir)
}

func handleStats(flags *graphFlags) error {
	if err := flags.Stats.cmd.Parse(os.Args[2:]); err != nil {
		return errors.Wrap(err, "failed to parse stats flags")
	}

	return runStats(*flags.Stats.dir)
}

func printUsage() {
	fmt.Println("Usage: worldcar-graph <command> [options]")
	fmt.Println("")
	fmt.Println("Commands:")
	fmt.Println("  download    Download OSM PBF data")
	fmt.Println("  convert     Convert OSM PBF to graph CSV files")
	fmt.Println("  prepare     Download and convert in one step")
	fmt.Println("  validate    Validate graph data integrity")
	fmt.Println("  stats       Print road network statistics")
	fmt.Println("")
	fmt.Println("Use 'worldcar-graph <command> -h' for more information about a command.")
}
