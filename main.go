package main

import (
	"flag"
	"fmt"
	"os"
	"path"
	"time"

	yaml "gopkg.in/yaml.v2"
)

const version = "0.3.0"

var showVersion = flag.Bool("version", false, "Print version and exit.")

// configs mirrors ~/.ynab-utils/config.yaml: per-command flag overrides,
// applied through FlagSet.Set so the file and the command line share one
// vocabulary.
type configs struct {
	Commands map[string]map[string]string `yaml:"commands"`
}

func applyConfig(fs *flag.FlagSet, dir, command string) {
	configPath := path.Join(dir, "config.yaml")
	data, err := os.ReadFile(configPath)
	if err != nil {
		return
	}
	var c configs
	checkf(yaml.Unmarshal(data, &c), "Unable to unmarshal yaml config at %v", configPath)
	if cc, has := c.Commands[command]; has {
		fmt.Printf("Using flags from config: %+v\n", cc)
		for k, v := range cc {
			checkf(fs.Set(k, v), "Unable to apply config value %v=%v", k, v)
		}
	}
}

func runDetectDupes(args []string) {
	fs := flag.NewFlagSet("detect-dupes", flag.ExitOnError)
	var (
		csvFile = fs.String("file", "", "Path to YNAB CSV export file.")
		days    = fs.Int("days", 2, "Number of days window for date proximity matching.")
		minConf = fs.Int("confidence", 5, "Minimum confidence level to report (1=lowest, 5=highest).")
		startDate = fs.String("start-date", "",
			"Only consider transactions from this date onwards (format: YYYY-MM-DD).")
		output    = fs.String("output", "text", "Output format: text or json.")
		configDir = fs.String("conf", path.Join(os.Getenv("HOME"), ".ynab-utils"),
			"Config directory to store ynab-utils configs in.")
	)
	fs.Parse(args)
	applyConfig(fs, *configDir, "detect-dupes")

	if len(*csvFile) == 0 {
		oerr(fs, "Please specify the CSV export with the -file flag")
		os.Exit(1)
	}
	assertf(*output == "text" || *output == "json", "Unknown output format: %v", *output)

	opts := Options{Days: *days, Confidence: *minConf}
	if len(*startDate) > 0 {
		start, err := time.Parse(dateStamp, *startDate)
		checkf(err, "Invalid date format %q. Use YYYY-MM-DD", *startDate)
		opts.StartDate = start
	}
	checkf(opts.validate(), "Invalid configuration")

	f, err := os.Open(*csvFile)
	checkf(err, "Unable to read csv file: %v", *csvFile)
	defer f.Close()

	txns, failures, err := readTransactions(f)
	checkf(err, "Unable to parse %v", *csvFile)
	printWarnings(failures)
	if len(txns) == 0 && len(failures) > 0 {
		checkf(errEmptyDataset, "Every row in %v failed to parse", *csvFile)
	}

	if *output == "text" {
		fmt.Printf("Reading transactions from: %s\n", *csvFile)
		fmt.Printf("Date proximity window: %d days\n", opts.Days)
		fmt.Printf("Minimum confidence level: %d/5\n", opts.Confidence)
		if !opts.StartDate.IsZero() {
			fmt.Printf("Filtering transactions from: %s\n", opts.StartDate.Format(dateStamp))
		}
		fmt.Printf("Loaded %d transactions\n\n", len(txns))
	}

	clusters := findDuplicates(txns, opts)

	if *output == "json" {
		checkf(renderJSON(os.Stdout, clusters), "Unable to render JSON report")
		return
	}
	printReport(os.Stdout, clusters)
}

func usage() {
	fmt.Println("Usage: ynab-utils [flags] <command> [command flags]")
	fmt.Println()
	fmt.Println("Available commands:")
	fmt.Println("  detect-dupes    Detect possible duplicate transactions in a YNAB export")
	fmt.Println()
	fmt.Println("Flags available:")
	flag.PrintDefaults()
}

func main() {
	flag.Usage = usage
	flag.Parse()

	if *showVersion {
		fmt.Printf("ynab-utils %s\n", version)
		return
	}

	args := flag.Args()
	if len(args) == 0 {
		usage()
		return
	}

	switch args[0] {
	case "detect-dupes":
		runDetectDupes(args[1:])
	default:
		oerr(nil, fmt.Sprintf("Unknown command: %v", args[0]))
		os.Exit(1)
	}
}
