package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/PopovMP/client-request/request"
)

var formCmd = &cobra.Command{
	Use:   "form URL",
	Short: "Make a POST request with a form-encoded body",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		fields, _ := cmd.Flags().GetStringArray("field")

		if len(fields) == 0 {
			fmt.Fprintln(os.Stderr, "Error: at least one form field is required, pass it with --field key=value")
			os.Exit(1)
		}

		req := request.NewRequest("POST", args[0])
		applyRequestFlags(cmd, req)
		req.WithBody(request.FormBody(parseFieldFlags(fields)))

		resp := sendRequest(cmd, req)
		finishRequest(cmd, resp)
	},
}

// parseFieldFlags turns repeated "key=value" flags into a form map.
// Flags without an equals sign are ignored.
func parseFieldFlags(fields []string) map[string]string {
	result := make(map[string]string)

	for _, field := range fields {
		parts := strings.SplitN(field, "=", 2)
		if len(parts) == 2 {
			result[parts[0]] = parts[1]
		}
	}

	return result
}

func init() {
	addRequestFlags(formCmd)
	formCmd.Flags().StringArrayP("field", "f", []string{}, "Form field as key=value (can be used multiple times)")
}
