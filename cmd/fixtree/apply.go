package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fixturelab/fixtree"
	"github.com/fixturelab/fixtree/api"
)

var verbose bool

func init() {
	applyCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "print each materialized path")
	rootCmd.AddCommand(applyCmd)
}

var applyCmd = &cobra.Command{
	Use:   "apply <manifest> <target-dir>",
	Short: "Materialize a manifest into a target directory",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		manifestPath, target := args[0], args[1]

		m, err := api.Load(manifestPath)
		if err != nil {
			return err
		}
		if err := os.MkdirAll(target, 0o755); err != nil {
			return fmt.Errorf("mkdir %s: %w", target, err)
		}

		applier := &api.Applier{}
		count := 0
		applier.Observe = func(path string) {
			count++
			if verbose {
				fmt.Println(path)
			}
		}
		if err := applier.Apply(m, fixtree.At(target)); err != nil {
			return err
		}

		fmt.Printf("materialized %d entries under %s\n", count, target)
		return nil
	},
}
