package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var invokePayload string

func init() {
	invokeCmd.Flags().StringVarP(&invokePayload, "payload", "p", "", "JSON object passed to the tool as its payload")
	rootCmd.AddCommand(invokeCmd)
}

var invokeCmd = &cobra.Command{
	Use:   "invoke [agent-id] [tool-id]",
	Short: "Invoke a tool on behalf of an agent",
	Long: `Invoke resolves the tool in the catalog, checks the agent's access,
dispatches over the tool's transport and prints the JSON result.`,
	Run: executeInvokeCmd,
}

func executeInvokeCmd(cobraCmd *cobra.Command, args []string) {
	if err := cobra.ExactArgs(2)(cobraCmd, args); err != nil {
		fmt.Printf("%s\n", err)
		os.Exit(1)
	}

	agentID, toolID := args[0], args[1]

	var payload map[string]any
	if invokePayload != "" {
		if err := json.Unmarshal([]byte(invokePayload), &payload); err != nil {
			fmt.Printf("invalid payload: %s\n", err)
			os.Exit(1)
		}
	}

	c, err := buildCore(settingsPath)
	if err != nil {
		fmt.Printf("%s\n", err)
		os.Exit(1)
	}
	defer c.close()

	result, err := c.executor.Execute(context.Background(), c.profileFor(agentID), toolID, payload)
	if err != nil {
		fmt.Printf("%s\n", err)
		os.Exit(1)
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		fmt.Printf("failed to encode result: %s\n", err)
		os.Exit(1)
	}

	fmt.Printf("%s\n", out)
}
