package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/cybertron10/fuzzwalk/internal/checkpoint"
	"github.com/cybertron10/fuzzwalk/internal/config"
	"github.com/cybertron10/fuzzwalk/internal/engine"
	"github.com/cybertron10/fuzzwalk/internal/httpx"
	"github.com/cybertron10/fuzzwalk/internal/logging"
	"github.com/cybertron10/fuzzwalk/internal/wordlist"
	"github.com/cybertron10/fuzzwalk/pkg/export"
)

var (
	runOpts       config.Options
	rulesFilePath string
	wordlistPaths []string
	outputPath    string
	headerFlags   map[string]string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a crawl against a target URL",
	RunE:  runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)

	f := runCmd.Flags()
	f.StringVarP(&runOpts.URL, "url", "u", "", "Base URL, with an optional FUZZ_KEY placeholder (required)")
	f.StringSliceVarP(&wordlistPaths, "wordlist", "w", nil, "Wordlist path(s), glob patterns allowed (required)")
	f.IntVarP(&runOpts.Threads, "threads", "t", 0, "Worker threads (default: 10x CPU count)")
	f.IntVarP(&runOpts.Depth, "depth", "d", 0, "Maximum recursion depth (recursive mode only)")
	f.IntVar(&runOpts.Throttle, "throttle", 0, "Requests/sec per worker (0 disables throttling)")
	f.StringVar(&runOpts.FuzzKey, "fuzz-key", "", "Placeholder token substituted in --url")
	f.BoolVar(&runOpts.Permutations, "permutations", false, "Permute the wordlist across every placeholder occurrence")
	f.BoolVarP(&runOpts.Recursive, "recursive", "r", false, "Recursively descend into discovered directories")
	f.BoolVar(&runOpts.HitConnectionErrors, "hit-connection-errors", false, "Record connect failures as synthetic discoveries")
	f.StringVar(&runOpts.SaveFile, "save-file", "", "Checkpoint path")
	f.BoolVar(&runOpts.NoSave, "no-save", false, "Do not write a checkpoint on interrupt")
	f.BoolVar(&runOpts.Resume, "resume", false, "Resume from --save-file if present and matching")
	f.StringVarP(&outputPath, "output", "o", "", "Export discoveries to this file (.json/.csv/.md/.txt)")
	f.StringVar(&rulesFilePath, "rules", "", "YAML file of filter/transform/show rules")

	f.StringVarP(&runOpts.Method, "method", "X", "GET", "HTTP method")
	f.StringVar(&runOpts.Body, "body", "", "Request body")
	f.StringToStringVar(&headerFlags, "header", nil, "Extra request header, repeatable (key=value)")
	f.StringVar(&runOpts.BasicAuthUser, "basic-auth-user", "", "HTTP basic auth username")
	f.StringVar(&runOpts.BasicAuthPass, "basic-auth-pass", "", "HTTP basic auth password")
	f.StringVar(&runOpts.ProxyURL, "proxy", "", "HTTP/SOCKS proxy URL")
	f.BoolVar(&runOpts.FollowRedirects, "follow-redirects", false, "Follow HTTP redirects")
	f.BoolVarP(&runOpts.InsecureSkipVerify, "insecure", "k", false, "Disable TLS certificate verification")
	f.DurationVar(&runOpts.Timeout, "timeout", 0, "Per-request timeout")

	_ = runCmd.MarkFlagRequired("url")
	_ = runCmd.MarkFlagRequired("wordlist")
}

func runRun(cmd *cobra.Command, args []string) error {
	runOpts.Quiet = viper.GetBool("quiet")
	runOpts.NoColor = viper.GetBool("no-color")
	runOpts.Debug = viper.GetBool("debug")
	runOpts.Wordlists = wordlistPaths
	runOpts.Output = outputPath
	runOpts.Headers = headerFlags

	logger, err := logging.New(runOpts.Debug, runOpts.NoColor)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	var wordFilters []wordlist.Filter
	var wordTransforms []wordlist.Transform

	if rulesFilePath != "" {
		rf, err := config.LoadRules(rulesFilePath)
		if err != nil {
			return err
		}
		if runOpts.Filters, err = rf.ToFilters(); err != nil {
			return err
		}
		if runOpts.ShowRules, err = rf.ToShowRules(); err != nil {
			return err
		}
		if wordFilters, err = rf.ToWordFilters(); err != nil {
			return err
		}
		if wordTransforms, err = rf.ToWordTransforms(); err != nil {
			return err
		}
	}

	runOpts.ApplyDefaults(runtime.NumCPU())
	if err := runOpts.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	words, report, err := wordlist.Load(runOpts.Wordlists, wordFilters, wordTransforms)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if len(words) == 0 {
		fmt.Fprintln(os.Stderr, "[!] No words found in wordlists")
		os.Exit(1)
	}
	if report.Loaded != report.Final {
		fmt.Printf("[*] %d words loaded, %d after deduplication and filters\n", report.Loaded, report.Final)
	} else {
		fmt.Printf("[*] %d words loaded\n", report.Loaded)
	}

	checksum := wordlist.Checksum(words)
	state, hadSaved := checkpoint.Rehydrate(&runOpts, logger, checksum)

	fmt.Printf("[*] Starting crawler with %d threads\n", clampThreads(runOpts.Threads, len(words)))
	fmt.Println("[*] Press Ctrl+C to save state and exit")

	client, err := httpx.Build(&runOpts)
	if err != nil {
		return err
	}

	kind := engine.KindClassic
	if runOpts.Recursive {
		kind = engine.KindRecursive
	}
	runner := engine.New(kind, &runOpts, state, client, logger, words)

	coord := &checkpoint.Coordinator{Opts: &runOpts, Logger: logger, Checksum: checksum}
	start := time.Now()
	if err := coord.Run(cmd.Context(), state, runner.Run); err != nil {
		return err
	}
	if coord.Aborted() {
		return nil
	}

	elapsed := time.Since(start)
	total := len(state.Tree.AllNodes())
	reqPerSec := float64(total) / elapsed.Seconds()
	fmt.Printf("[+] Done in %s with an approximate average of %.0f req/s\n", elapsed.Round(time.Millisecond), reqPerSec)

	export.PrintTree(os.Stdout, state.Tree.Root())

	checkpoint.RemoveIfDefault(&runOpts, hadSaved)

	if runOpts.Output != "" {
		return writeOutput(&runOpts, state)
	}
	return nil
}

func clampThreads(configured, n int) int {
	switch {
	case configured < 1:
		return 1
	case configured > n:
		return n
	default:
		return configured
	}
}

func writeOutput(o *config.Options, state *engine.State) error {
	format, err := export.FormatFromExtension(filepath.Ext(o.Output))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	f, err := os.Create(o.Output)
	if err != nil {
		return err
	}
	defer f.Close()

	maxDepth := o.Depth
	if maxDepth <= 0 {
		maxDepth = 1
	}
	if err := export.Write(f, state.Tree, format, maxDepth); err != nil {
		return err
	}
	fmt.Printf("[+] Saved to %s\n", o.Output)
	return nil
}
