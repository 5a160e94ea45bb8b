package cli

import (
	"github.com/spf13/cobra"

	"github.com/PopovMP/client-request/request"
)

var headCmd = &cobra.Command{
	Use:   "head URL",
	Short: "Make a HEAD request to the specified URL",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		req := request.NewRequest("HEAD", args[0])
		applyRequestFlags(cmd, req)

		resp := sendRequest(cmd, req)
		finishRequest(cmd, resp)
	},
}

func init() {
	addRequestFlags(headCmd)
}
