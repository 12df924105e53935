package cli

import (
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(listCmd)
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List every tool the catalog can resolve",
	Run:   executeListCmd,
}

func executeListCmd(cobraCmd *cobra.Command, args []string) {
	if err := cobra.NoArgs(cobraCmd, args); err != nil {
		fmt.Printf("%s\n", err)
		os.Exit(1)
	}

	c, err := buildCore(settingsPath)
	if err != nil {
		fmt.Printf("%s\n", err)
		os.Exit(1)
	}
	defer c.close()

	defs, err := c.catalog.List()
	if err != nil {
		fmt.Printf("%s\n", err)
		os.Exit(1)
	}

	sort.Slice(defs, func(i, j int) bool { return defs[i].ID < defs[j].ID })

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTYPE\tDESCRIPTION")
	for _, def := range defs {
		description := def.Description
		if description == "" && def.Documentation != nil {
			description = def.Documentation.Description
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", def.ID, def.Type, description)
	}
	w.Flush()
}
