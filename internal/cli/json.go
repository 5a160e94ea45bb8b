package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/PopovMP/client-request/request"
)

var jsonCmd = &cobra.Command{
	Use:   "json URL",
	Short: "Make a POST request with a JSON body",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		data, _ := cmd.Flags().GetString("data")

		if data == "" {
			fmt.Fprintln(os.Stderr, "Error: a JSON body is required, pass it with --data")
			os.Exit(1)
		}
		if !json.Valid([]byte(data)) {
			fmt.Fprintf(os.Stderr, "Error: invalid JSON body: %s\n", data)
			os.Exit(1)
		}

		req := request.NewRequest("POST", args[0])
		applyRequestFlags(cmd, req)
		req.WithBody(request.JSONBody(json.RawMessage(data)))

		resp := sendRequest(cmd, req)
		finishRequest(cmd, resp)
	},
}

func init() {
	addRequestFlags(jsonCmd)
	jsonCmd.Flags().StringP("data", "d", "", "JSON document to send as the body")
}
