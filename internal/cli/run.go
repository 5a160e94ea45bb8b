package cli

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/PopovMP/client-request/internal/config"
	"github.com/PopovMP/client-request/internal/output"
	"github.com/PopovMP/client-request/pkg/jsonpath"
	"github.com/PopovMP/client-request/pkg/jsonschema"
	"github.com/PopovMP/client-request/request"
)

var runCmd = &cobra.Command{
	Use:   "run [request...]",
	Short: "Run named requests from a request definition file",
	Long: `Run executes requests defined in a YAML or JSON file. Requests are
run in the order they are named on the command line, or all of them in
name order when none are named. Variables extracted from one response
can be referenced as {{name}} placeholders in later requests, and each
request's expect block is checked against its response.`,
	Run: func(cmd *cobra.Command, args []string) {
		configFile, _ := cmd.Flags().GetString("config")
		varFlags, _ := cmd.Flags().GetStringArray("var")
		verbose, _ := cmd.Flags().GetBool("verbose")
		timeout, _ := cmd.Flags().GetDuration("timeout")
		noColor := colorsDisabled(cmd)
		insecure, _ := cmd.Flags().GetBool("insecure")
		format, _ := cmd.Flags().GetString("output")

		if configFile == "" {
			fmt.Println("Error: config file is required")
			cmd.Help()
			return
		}

		// Load configuration
		cfg, err := config.LoadConfig(configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}

		// Validate configuration
		errors := config.ValidateConfig(cfg)
		if len(errors) > 0 {
			fmt.Fprintln(os.Stderr, "Configuration validation errors:")
			for _, err := range errors {
				fmt.Fprintf(os.Stderr, "  - %s\n", err.Error())
			}
			os.Exit(1)
		}

		// Merge file variables with command line overrides
		vars := config.MergeVars(cfg.Vars, parseFieldFlags(varFlags))

		// Pick the requests to run
		names := args
		if len(names) == 0 {
			for name := range cfg.Requests {
				names = append(names, name)
			}
			sort.Strings(names)
		}
		for _, name := range names {
			if err := config.ValidateRequest(cfg, name); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
		}

		// Create HTTP client
		var options []request.ClientOption
		if timeout > 0 {
			options = append(options, request.WithTimeout(timeout))
		}
		if insecure {
			options = append(options, request.WithInsecureSkipVerify())
		}
		client := request.NewClient(options...)

		provider := output.GetFormatter(output.OutputFormat(format), verbose, noColor)

		failed := 0
		for _, name := range names {
			if len(names) > 1 {
				fmt.Printf("\n=== Executing request: %s ===\n\n", name)
			}

			failures, err := executeConfigRequest(context.Background(), cfg, configFile, name, vars, client, provider, verbose, true)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}

			for _, failure := range failures {
				fmt.Printf("%s CHECK FAILED: %s\n", output.ErrorIcon(noColor), failure)
			}
			if len(failures) > 0 {
				failed++
			} else if cfg.Requests[name].Expect != nil {
				fmt.Printf("%s CHECKS PASSED\n", output.SuccessIcon(noColor))
			}
		}

		if failed > 0 {
			fmt.Printf("\n%s %d of %d requests failed their checks\n", output.ErrorIcon(noColor), failed, len(names))
			os.Exit(1)
		}
	},
}

// executeConfigRequest runs one named request from a definition file. It
// returns a message for every failed response check; extracted variables
// are written back into vars so later requests can reference them.
func executeConfigRequest(ctx context.Context, cfg *config.Config, configPath, name string, vars map[string]string, client *request.Client, provider output.FormatProvider, verbose, printOutput bool) ([]string, error) {
	if err := config.ValidateRequest(cfg, name); err != nil {
		return nil, err
	}
	spec := cfg.Requests[name]

	// Build the request with variables expanded
	req := request.NewRequest(spec.Method, config.ExpandVars(spec.URL, vars))

	for key, value := range config.ExpandVarsInMap(cfg.Headers, vars) {
		req.WithHeader(key, value)
	}
	for key, value := range config.ExpandVarsInMap(spec.Headers, vars) {
		req.WithHeader(key, value)
	}

	if len(spec.Form) > 0 {
		req.WithBody(request.FormBody(config.ExpandVarsInMap(spec.Form, vars)))
	} else if spec.Body != nil {
		req.WithData(config.ExpandVarsInValue(spec.Body, vars))
	}

	if spec.Timeout > 0 {
		req.WithRequestTimeout(spec.Timeout)
	}

	// Print request
	if printOutput {
		fmt.Print(provider.FormatRequest(req))
	}

	// Execute request
	resp, err := client.Do(ctx, req)
	if err != nil {
		return nil, err
	}

	// Print response
	if printOutput {
		fmt.Print(provider.FormatResponse(resp))
	}

	// Extract variables for later requests
	if len(spec.Extract) > 0 {
		extracted, err := jsonpath.ExtractAll(resp.Text(), spec.Extract)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: variable extraction incomplete: %v\n", err)
		}
		for key, value := range extracted {
			vars[key] = value
			if verbose && printOutput {
				fmt.Printf("Extracted variable %s = %s\n", key, value)
			}
		}
	}

	return checkExpectations(spec.Expect, resp, configPath), nil
}

// checkExpectations evaluates the expect block of a request definition
// against a response and returns a message for every failed check
func checkExpectations(expect *config.Expect, resp *request.Response, configPath string) []string {
	if expect == nil {
		return nil
	}

	var failures []string

	if expect.Status != 0 && resp.StatusCode != expect.Status {
		failures = append(failures, fmt.Sprintf("status is %d, expected %d", resp.StatusCode, expect.Status))
	}

	if expect.ContentType != "" {
		contentType := resp.GetHeader("Content-Type")
		if !strings.HasPrefix(strings.ToLower(contentType), strings.ToLower(expect.ContentType)) {
			failures = append(failures, fmt.Sprintf("content type is %q, expected %q", contentType, expect.ContentType))
		}
	}

	for _, path := range expect.Exists {
		if !jsonpath.Exists(resp.Text(), path) {
			failures = append(failures, fmt.Sprintf("no value at %s", path))
		}
	}

	if expect.Schema != "" {
		failures = append(failures, checkSchema(config.ResolveSchemaPath(configPath, expect.Schema), resp)...)
	}

	return failures
}

// checkSchema validates a response body against a JSON Schema file
func checkSchema(schemaPath string, resp *request.Response) []string {
	schemaData, err := os.ReadFile(schemaPath)
	if err != nil {
		return []string{fmt.Sprintf("schema: %v", err)}
	}

	result, err := jsonschema.Validate(resp.Text(), string(schemaData))
	if err != nil {
		return []string{fmt.Sprintf("schema: %v", err)}
	}

	var failures []string
	for _, issue := range result.Issues {
		failures = append(failures, fmt.Sprintf("schema: %s", issue))
	}
	return failures
}

func init() {
	runCmd.Flags().StringP("config", "c", "", "Request definition file (required)")
	runCmd.Flags().StringArray("var", []string{}, "Variable override as key=value (can be used multiple times)")
	runCmd.Flags().BoolP("verbose", "v", false, "Enable verbose output")
	runCmd.Flags().DurationP("timeout", "t", 30*time.Second, "Request timeout")
	runCmd.Flags().Bool("no-color", false, "Disable colored output")
	runCmd.Flags().BoolP("insecure", "k", false, "Skip TLS certificate verification")
	runCmd.Flags().StringP("output", "o", "text", "Output format: text, json, or yaml")
}
