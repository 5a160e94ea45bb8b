package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/PopovMP/client-request/request"
)

var postCmd = &cobra.Command{
	Use:   "post URL",
	Short: "Make a POST request to the specified URL",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		req := request.NewRequest("POST", args[0])
		applyRequestFlags(cmd, req)
		applyBodyFlags(cmd, req)

		resp := sendRequest(cmd, req)
		finishRequest(cmd, resp)
	},
}

// applyBodyFlags resolves the body flags of the post and put commands
func applyBodyFlags(cmd *cobra.Command, req *request.Request) {
	data, _ := cmd.Flags().GetString("data")
	jsonData, _ := cmd.Flags().GetString("json")
	fields, _ := cmd.Flags().GetStringArray("field")

	body, err := payloadFromFlags(data, jsonData, fields)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	req.WithBody(body)
}

// payloadFromFlags builds a request body from the body flags. JSON data
// wins over raw data, which wins over form fields.
func payloadFromFlags(data, jsonData string, fields []string) (request.Body, error) {
	if jsonData != "" {
		if !json.Valid([]byte(jsonData)) {
			return request.NoBody(), fmt.Errorf("invalid JSON body: %s", jsonData)
		}
		return request.JSONBody(json.RawMessage(jsonData)), nil
	}

	if data != "" {
		return request.TextBody(data), nil
	}

	if len(fields) > 0 {
		return request.FormBody(parseFieldFlags(fields)), nil
	}

	return request.NoBody(), nil
}

// addBodyFlags registers the body flags of the post and put commands
func addBodyFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("data", "d", "", "Data to send as a text body")
	cmd.Flags().StringP("json", "j", "", "JSON document to send as the body")
	cmd.Flags().StringArrayP("field", "f", []string{}, "Form field as key=value (can be used multiple times)")
}

func init() {
	addRequestFlags(postCmd)
	addBodyFlags(postCmd)
}
