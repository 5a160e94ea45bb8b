package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/PopovMP/client-request/internal/output"
	"github.com/PopovMP/client-request/pkg/jsonpath"
	"github.com/PopovMP/client-request/pkg/jsonschema"
	"github.com/PopovMP/client-request/request"
)

var getCmd = &cobra.Command{
	Use:   "get URL",
	Short: "Make a GET request to the specified URL",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		req := request.NewRequest("GET", args[0])
		applyRequestFlags(cmd, req)

		resp := sendRequest(cmd, req)
		finishRequest(cmd, resp)
	},
}

// applyRequestFlags applies the flags shared by the request commands
// to a request.
func applyRequestFlags(cmd *cobra.Command, req *request.Request) {
	headers, _ := cmd.Flags().GetStringArray("header")
	requestTimeout, _ := cmd.Flags().GetInt("request-timeout")

	for key, value := range parseHeaderFlags(headers) {
		req.WithHeader(key, value)
	}

	if requestTimeout > 0 {
		req.WithRequestTimeout(requestTimeout)
	}
}

// sendRequest executes a request and prints it together with its
// response, unless --extract asked for a single value only. It exits
// the process on a request error.
func sendRequest(cmd *cobra.Command, req *request.Request) *request.Response {
	verbose, _ := cmd.Flags().GetBool("verbose")
	timeout, _ := cmd.Flags().GetDuration("timeout")
	noColor := colorsDisabled(cmd)
	insecure, _ := cmd.Flags().GetBool("insecure")
	format, _ := cmd.Flags().GetString("output")
	extract, _ := cmd.Flags().GetString("extract")

	var options []request.ClientOption
	if timeout > 0 {
		options = append(options, request.WithTimeout(timeout))
	}
	if insecure {
		options = append(options, request.WithInsecureSkipVerify())
	}
	client := request.NewClient(options...)

	provider := output.GetFormatter(output.OutputFormat(format), verbose, noColor)
	quiet := extract != ""

	// Print request
	if !quiet {
		fmt.Print(provider.FormatRequest(req))
	}

	// Execute request
	resp, err := client.Do(context.Background(), req)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Print response
	if !quiet {
		fmt.Print(provider.FormatResponse(resp))
	}

	return resp
}

// finishRequest handles the post-processing flags of the request
// commands: --extract prints a single value pulled out of the response
// and --schema validates the response body against a JSON Schema file.
func finishRequest(cmd *cobra.Command, resp *request.Response) {
	noColor := colorsDisabled(cmd)
	extract, _ := cmd.Flags().GetString("extract")
	schemaFile, _ := cmd.Flags().GetString("schema")

	if extract != "" {
		value, err := jsonpath.Extract(resp.Text(), extract)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(value)
	}

	if schemaFile != "" {
		schemaData, err := os.ReadFile(schemaFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading schema file: %v\n", err)
			os.Exit(1)
		}

		result, err := jsonschema.Validate(resp.Text(), string(schemaData))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		if !result.Valid {
			fmt.Fprintf(os.Stderr, "%s Schema validation failed:\n", output.ErrorIcon(noColor))
			for _, issue := range result.Issues {
				fmt.Fprintf(os.Stderr, "  - %s\n", issue)
			}
			os.Exit(1)
		}

		fmt.Printf("%s Schema validation passed\n", output.SuccessIcon(noColor))
	}
}

// colorsDisabled reports whether colored output should be suppressed,
// either by the --no-color flag or because stdout is not a terminal.
func colorsDisabled(cmd *cobra.Command) bool {
	noColor, _ := cmd.Flags().GetBool("no-color")
	return !output.ColorsEnabled(noColor)
}

// parseHeaderFlags turns repeated "Key: value" flags into a header map.
// Flags without a colon are ignored.
func parseHeaderFlags(headers []string) map[string]string {
	result := make(map[string]string)

	for _, header := range headers {
		parts := strings.SplitN(header, ":", 2)
		if len(parts) == 2 {
			result[strings.TrimSpace(parts[0])] = strings.TrimSpace(parts[1])
		}
	}

	return result
}

// addRequestFlags registers the flags shared by the request commands
func addRequestFlags(cmd *cobra.Command) {
	cmd.Flags().StringArrayP("header", "H", []string{}, "HTTP headers to include (can be used multiple times)")
	cmd.Flags().BoolP("verbose", "v", false, "Enable verbose output")
	cmd.Flags().DurationP("timeout", "t", 30*time.Second, "Request timeout")
	cmd.Flags().Int("request-timeout", 0, "Request-Timeout header value in seconds")
	cmd.Flags().Bool("no-color", false, "Disable colored output")
	cmd.Flags().BoolP("insecure", "k", false, "Skip TLS certificate verification")
	cmd.Flags().StringP("output", "o", "text", "Output format: text, json, or yaml")
	cmd.Flags().String("extract", "", "Print only the value at the given JSONPath")
	cmd.Flags().String("schema", "", "Validate the response body against a JSON Schema file")
}

func init() {
	addRequestFlags(getCmd)
}
