// Package bench sends a fixed number of GET requests to a single URL
// over a pool of concurrent workers and aggregates the observed
// latencies into an HDR histogram.
package bench

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"

	"github.com/PopovMP/client-request/request"
)

// Latencies are recorded in microseconds, up to one minute
const (
	histogramMin     = 1
	histogramMax     = 60000000
	histogramSigFigs = 3
)

// Options configures a benchmark run
type Options struct {
	Requests    int
	Concurrency int
	Rate        float64 // target requests per second, 0 means unpaced
	Headers     map[string]string
	Timeout     time.Duration
	Insecure    bool
}

// Report holds the aggregated results of a benchmark run
type Report struct {
	Requests    int
	Failures    int
	Elapsed     time.Duration
	Min         time.Duration
	Max         time.Duration
	Mean        time.Duration
	P50         time.Duration
	P90         time.Duration
	P99         time.Duration
	StatusCodes map[int]int
}

// Run sends GET requests to a URL over a fixed worker pool and returns
// the aggregated latency report. When opts.Rate is set the pool is
// paced to that many requests per second. Failed requests count toward
// the latency histogram but not toward the status code breakdown.
func Run(ctx context.Context, url string, opts Options) (*Report, error) {
	if opts.Requests < 1 {
		return nil, fmt.Errorf("request count must be at least 1")
	}
	if opts.Concurrency < 1 {
		return nil, fmt.Errorf("concurrency must be at least 1")
	}
	if opts.Rate < 0 {
		return nil, fmt.Errorf("request rate cannot be negative")
	}
	if opts.Concurrency > opts.Requests {
		opts.Concurrency = opts.Requests
	}

	var options []request.ClientOption
	if opts.Timeout > 0 {
		options = append(options, request.WithTimeout(opts.Timeout))
	}
	if opts.Insecure {
		options = append(options, request.WithInsecureSkipVerify())
	}
	client := request.NewClient(options...)

	hist := hdrhistogram.New(histogramMin, histogramMax, histogramSigFigs)

	// RecordValue is not thread-safe, so the histogram and the
	// counters share a mutex.
	var mu sync.Mutex
	statusCodes := make(map[int]int)
	failures := 0

	// A single pacer is shared by all workers so the whole pool tracks
	// the target rate rather than each worker pacing independently.
	var pace *pacer
	if opts.Rate > 0 {
		pace = newPacer(opts.Rate)
	}

	jobs := make(chan struct{})
	var wg sync.WaitGroup

	start := time.Now()

	for i := 0; i < opts.Concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range jobs {
				if pace != nil {
					if err := pace.wait(ctx); err != nil {
						mu.Lock()
						failures++
						mu.Unlock()
						continue
					}
				}

				reqStart := time.Now()
				resp, err := client.Get(ctx, url, opts.Headers)
				elapsed := time.Since(reqStart)

				mu.Lock()
				if err != nil {
					failures++
				} else {
					statusCodes[resp.StatusCode]++
				}
				hist.RecordValue(clampMicros(elapsed))
				mu.Unlock()
			}
		}()
	}

	for i := 0; i < opts.Requests; i++ {
		jobs <- struct{}{}
	}
	close(jobs)
	wg.Wait()

	return &Report{
		Requests:    opts.Requests,
		Failures:    failures,
		Elapsed:     time.Since(start),
		Min:         time.Duration(hist.Min()) * time.Microsecond,
		Max:         time.Duration(hist.Max()) * time.Microsecond,
		Mean:        time.Duration(hist.Mean()) * time.Microsecond,
		P50:         time.Duration(hist.ValueAtQuantile(50)) * time.Microsecond,
		P90:         time.Duration(hist.ValueAtQuantile(90)) * time.Microsecond,
		P99:         time.Duration(hist.ValueAtQuantile(99)) * time.Microsecond,
		StatusCodes: statusCodes,
	}, nil
}

// Throughput returns completed requests per second
func (r *Report) Throughput() float64 {
	if r.Elapsed <= 0 {
		return 0
	}
	return float64(r.Requests) / r.Elapsed.Seconds()
}

// String renders the report as a small aligned table
func (r *Report) String() string {
	var b strings.Builder

	fmt.Fprintf(&b, "Requests:    %d (%d failed)\n", r.Requests, r.Failures)
	fmt.Fprintf(&b, "Elapsed:     %dms (%.1f req/s)\n", r.Elapsed.Milliseconds(), r.Throughput())
	fmt.Fprintf(&b, "Latency:     min %s, mean %s, max %s\n", r.Min, r.Mean, r.Max)
	fmt.Fprintf(&b, "Percentiles: p50 %s, p90 %s, p99 %s\n", r.P50, r.P90, r.P99)

	if len(r.StatusCodes) > 0 {
		codes := make([]int, 0, len(r.StatusCodes))
		for code := range r.StatusCodes {
			codes = append(codes, code)
		}
		sort.Ints(codes)

		b.WriteString("Status:      ")
		for i, code := range codes {
			if i > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "%d x%d", code, r.StatusCodes[code])
		}
		b.WriteString("\n")
	}

	return b.String()
}

// clampMicros converts a duration to microseconds within the
// recordable range of the histogram
func clampMicros(d time.Duration) int64 {
	micros := d.Microseconds()
	if micros < histogramMin {
		return histogramMin
	}
	if micros > histogramMax {
		return histogramMax
	}
	return micros
}
