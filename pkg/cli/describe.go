package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(describeCmd)
}

var describeCmd = &cobra.Command{
	Use:   "describe [tool-id]",
	Short: "Show a tool's definition, documentation and input schema",
	Run:   executeDescribeCmd,
}

func executeDescribeCmd(cobraCmd *cobra.Command, args []string) {
	if err := cobra.ExactArgs(1)(cobraCmd, args); err != nil {
		fmt.Printf("%s\n", err)
		os.Exit(1)
	}

	c, err := buildCore(settingsPath)
	if err != nil {
		fmt.Printf("%s\n", err)
		os.Exit(1)
	}
	defer c.close()

	def, err := c.catalog.Resolve(args[0])
	if err != nil {
		fmt.Printf("%s\n", err)
		os.Exit(1)
	}

	fmt.Printf("id:          %s\n", def.ID)
	if def.Name != "" {
		fmt.Printf("name:        %s\n", def.Name)
	}
	fmt.Printf("type:        %s\n", def.Type)
	fmt.Printf("entrypoint:  %s\n", def.Entrypoint)
	if def.MCPServer != "" {
		fmt.Printf("mcp server:  %s\n", def.MCPServer)
	}
	if def.Version != "" {
		fmt.Printf("version:     %s\n", def.Version)
	}
	if def.Description != "" {
		fmt.Printf("description: %s\n", def.Description)
	}
	if def.Auth.AuthRequired() {
		fmt.Printf("auth:        required (%s)\n", def.Auth.Method)
	}

	if doc := def.Documentation; doc != nil {
		if doc.Description != "" {
			fmt.Printf("\n%s\n", doc.Description)
		}
		if doc.Usage != "" {
			fmt.Printf("\nusage:\n  %s\n", doc.Usage)
		}
		if doc.Example != "" {
			fmt.Printf("\nexample:\n  %s\n", doc.Example)
		}
	}

	if def.InputSchema != nil {
		schema, err := json.MarshalIndent(def.InputSchema, "", "  ")
		if err == nil {
			fmt.Printf("\ninput schema:\n%s\n", schema)
		}
	}
}
