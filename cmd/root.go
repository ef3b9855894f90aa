package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/arrowpeak/docfusiondb-bench/internal/client"
	"github.com/arrowpeak/docfusiondb-bench/internal/dummy"
	"github.com/arrowpeak/docfusiondb-bench/internal/logging"
	"github.com/arrowpeak/docfusiondb-bench/internal/report"
	"github.com/arrowpeak/docfusiondb-bench/internal/runner"
	"github.com/arrowpeak/docfusiondb-bench/internal/scenario"
	"github.com/arrowpeak/docfusiondb-bench/internal/storage"
	"github.com/arrowpeak/docfusiondb-bench/internal/tui"
)

var (
	cfgFile string

	// CLI flags
	baseURL     string
	apiKey      string
	requests    int
	concurrency int
	bulkSize    int
	timeout     int
	insecure    bool
	outPrefix   string
	saveRun     bool
	liveView    bool
	verbose     bool
)

var rootCmd = &cobra.Command{
	Use:   "dfbench",
	Short: "dfbench - DocFusionDB Benchmark Tool",
	Long: `
dfbench issues concurrent requests against a DocFusionDB server and reports
throughput and latency percentiles for five scenarios: single create,
document listing, ad-hoc queries, bulk create, and the metrics endpoint.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBench()
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Printf("\n❌ Benchmark failed: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.AddCommand(dummyCmd)
	rootCmd.AddCommand(historyCmd)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.dfbench.yaml)")

	rootCmd.Flags().StringVarP(&baseURL, "url", "u", "http://localhost:8080", "DocFusionDB server URL")
	rootCmd.Flags().StringVar(&apiKey, "api-key", "", "API key for authentication")
	rootCmd.Flags().IntVarP(&requests, "requests", "n", 100, "Number of requests per benchmark")
	rootCmd.Flags().IntVarP(&concurrency, "concurrency", "c", 10, "Concurrent requests")
	rootCmd.Flags().IntVar(&bulkSize, "bulk-size", 50, "Documents per bulk operation (0 disables)")
	rootCmd.Flags().IntVar(&timeout, "timeout", 30, "Request timeout in seconds")
	rootCmd.Flags().BoolVar(&insecure, "insecure", false, "Skip TLS certificate verification")
	rootCmd.Flags().StringVarP(&outPrefix, "out", "o", "", "Output filename prefix for JSON export")
	rootCmd.Flags().BoolVar(&saveRun, "save", false, "Save results to the local run history")
	rootCmd.Flags().BoolVar(&liveView, "live", false, "Show a live TUI while the suite runs")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Log per-call failures")

	viper.BindPFlag("url", rootCmd.Flags().Lookup("url"))
	viper.BindPFlag("api-key", rootCmd.Flags().Lookup("api-key"))
	viper.BindPFlag("requests", rootCmd.Flags().Lookup("requests"))
	viper.BindPFlag("concurrency", rootCmd.Flags().Lookup("concurrency"))
	viper.BindPFlag("bulk-size", rootCmd.Flags().Lookup("bulk-size"))
	viper.BindPFlag("timeout", rootCmd.Flags().Lookup("timeout"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
			viper.SetConfigType("yaml")
			viper.SetConfigName(".dfbench")
		}
	}
	viper.SetEnvPrefix("DFBENCH")
	viper.AutomaticEnv()
	viper.ReadInConfig()
}

func runBench() error {
	url := viper.GetString("url")

	log, err := logging.New(verbose)
	if err != nil {
		return err
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Println("🦀 DocFusionDB Benchmark Tool")
	fmt.Printf("Target: %s\n", url)
	fmt.Printf("Requests: %d, Concurrency: %d\n", viper.GetInt("requests"), viper.GetInt("concurrency"))

	c := client.New(client.Config{
		BaseURL:  url,
		APIKey:   viper.GetString("api-key"),
		Timeout:  time.Duration(viper.GetInt("timeout")) * time.Second,
		Insecure: insecure,
	})

	if !c.Health(ctx) {
		return fmt.Errorf("server is not responding at %s", url)
	}
	fmt.Printf("✅ Server is healthy at %s\n", url)

	suite := scenario.Suite(c, scenario.Config{
		Requests:    viper.GetInt("requests"),
		Concurrency: viper.GetInt("concurrency"),
		BulkSize:    viper.GetInt("bulk-size"),
	})

	updates := make(runner.SnapshotChan, 100)
	r := runner.New(updates, log)

	var results []runner.Result
	if liveView {
		results, err = runLive(ctx, r, suite, updates, url)
	} else {
		results, err = runHeadless(ctx, r, suite, updates)
	}
	if err != nil {
		if errors.Is(err, context.Canceled) {
			fmt.Println("\n❌ Benchmark interrupted by user")
			return nil
		}
		return err
	}
	if len(results) < len(suite) {
		fmt.Println("\n❌ Benchmark interrupted by user")
		return nil
	}

	report.PrintResults(results)

	if outPrefix != "" {
		if err := report.Export(outPrefix, results); err != nil {
			return err
		}
		fmt.Printf("\n💾 Results written to %s_results.json\n", outPrefix)
	}

	if saveRun {
		store, err := storage.Open("")
		if err != nil {
			return err
		}
		defer store.Close()
		id, err := store.SaveRun(url, results)
		if err != nil {
			return err
		}
		fmt.Printf("💾 Run %s saved to history\n", id)
	}

	return nil
}

func runHeadless(ctx context.Context, r *runner.Runner, suite []scenario.Scenario, updates runner.SnapshotChan) ([]runner.Result, error) {
	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			select {
			case s := <-updates:
				report.PrintProgress(s)
			case <-done:
				return
			}
		}
	}()

	var results []runner.Result
	for _, sc := range suite {
		report.PrintScenarioStart(sc.Name, len(sc.Calls), sc.Concurrency)
		res, err := r.Run(ctx, sc.Name, sc.Calls, sc.Concurrency)
		fmt.Println()
		if err != nil {
			return nil, err
		}
		results = append(results, *res)
	}
	return results, nil
}

func runLive(ctx context.Context, r *runner.Runner, suite []scenario.Scenario, updates runner.SnapshotChan, url string) ([]runner.Result, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	m := tui.NewModel(url, len(suite))
	p := tea.NewProgram(m, tea.WithAltScreen())

	go func() {
		for {
			select {
			case s := <-updates:
				p.Send(s)
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		for _, sc := range suite {
			res, err := r.Run(ctx, sc.Name, sc.Calls, sc.Concurrency)
			if err != nil {
				p.Send(tui.DoneMsg{Err: err})
				return
			}
			p.Send(tui.ResultMsg(*res))
		}
		p.Send(tui.DoneMsg{})
	}()

	final, err := p.Run()
	cancel()
	if err != nil {
		return nil, err
	}

	fm := final.(tui.Model)
	if fm.Err() != nil {
		return nil, fm.Err()
	}
	return fm.Results(), nil
}

// --- Subcommands ---

var dummyCmd = &cobra.Command{
	Use:   "dummy",
	Short: "Run a local mock DocFusionDB server",
	Run: func(cmd *cobra.Command, args []string) {
		port, _ := cmd.Flags().GetInt("port")
		errRate, _ := cmd.Flags().GetFloat64("error-rate")
		dummy.Start(dummy.ServerConfig{Port: port, ErrorRate: errRate})
		select {}
	},
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List saved benchmark runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := storage.Open("")
		if err != nil {
			return err
		}
		defer store.Close()

		runs, err := store.ListRuns()
		if err != nil {
			return err
		}
		if len(runs) == 0 {
			fmt.Println("No saved runs. Use --save to archive a benchmark.")
			return nil
		}

		for _, run := range runs {
			fmt.Printf("\n🕒 %s  %s  (%s)\n", run.Timestamp.Format(time.RFC3339), run.ID, run.TargetURL)
			for _, res := range run.Results {
				fmt.Printf("   %-26s %8.1f rps  p95 %7.2fms  p99 %7.2fms  %5.1f%% ok\n",
					res.Operation, res.RPS, res.P95LatencyMs, res.P99LatencyMs, res.SuccessRate*100)
			}
		}
		return nil
	},
}

func init() {
	dummyCmd.Flags().IntP("port", "p", 8080, "Port to run the mock server on")
	dummyCmd.Flags().Float64("error-rate", 0, "Fraction of writes that fail with a 500")
}
