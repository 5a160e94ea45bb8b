package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/PopovMP/client-request/internal/bench"
	"github.com/PopovMP/client-request/internal/output"
)

var benchCmd = &cobra.Command{
	Use:   "bench URL",
	Short: "Benchmark a URL with concurrent GET requests",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		url := args[0]
		requests, _ := cmd.Flags().GetInt("requests")
		concurrency, _ := cmd.Flags().GetInt("concurrency")
		rate, _ := cmd.Flags().GetFloat64("rps")
		headers, _ := cmd.Flags().GetStringArray("header")
		timeout, _ := cmd.Flags().GetDuration("timeout")
		noColor := colorsDisabled(cmd)
		insecure, _ := cmd.Flags().GetBool("insecure")

		if rate > 0 {
			fmt.Printf("Benchmarking %s with %d requests, concurrency %d, rate %g req/s\n\n", url, requests, concurrency, rate)
		} else {
			fmt.Printf("Benchmarking %s with %d requests, concurrency %d\n\n", url, requests, concurrency)
		}

		report, err := bench.Run(context.Background(), url, bench.Options{
			Requests:    requests,
			Concurrency: concurrency,
			Rate:        rate,
			Headers:     parseHeaderFlags(headers),
			Timeout:     timeout,
			Insecure:    insecure,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		fmt.Print(report)

		if report.Failures > 0 {
			fmt.Printf("\n%s %d requests failed\n", output.WarningIcon(noColor), report.Failures)
		}
	},
}

func init() {
	benchCmd.Flags().IntP("requests", "n", 100, "Number of requests to send")
	benchCmd.Flags().IntP("concurrency", "c", 10, "Number of concurrent workers")
	benchCmd.Flags().Float64("rps", 0, "Target request rate per second (0 sends as fast as possible)")
	benchCmd.Flags().StringArrayP("header", "H", []string{}, "HTTP headers to include (can be used multiple times)")
	benchCmd.Flags().DurationP("timeout", "t", 30*time.Second, "Request timeout")
	benchCmd.Flags().Bool("no-color", false, "Disable colored output")
	benchCmd.Flags().BoolP("insecure", "k", false, "Skip TLS certificate verification")
}
