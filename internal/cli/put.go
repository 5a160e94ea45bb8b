package cli

import (
	"github.com/spf13/cobra"

	"github.com/PopovMP/client-request/request"
)

var putCmd = &cobra.Command{
	Use:   "put URL",
	Short: "Make a PUT request to the specified URL",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		req := request.NewRequest("PUT", args[0])
		applyRequestFlags(cmd, req)
		applyBodyFlags(cmd, req)

		resp := sendRequest(cmd, req)
		finishRequest(cmd, resp)
	},
}

func init() {
	addRequestFlags(putCmd)
	addBodyFlags(putCmd)
}
