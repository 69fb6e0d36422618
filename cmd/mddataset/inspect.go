package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	inspectBucket string
	inspectKey    string
)

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Load one parquet table and print its shape and columns",
	RunE:  runInspect,
}

func init() {
	inspectCmd.Flags().StringVar(&inspectBucket, "bucket", "", "Source bucket (default: default_bucket)")
	inspectCmd.Flags().StringVar(&inspectKey, "key", "", "Object key of the table")
	_ = inspectCmd.MarkFlagRequired("key")
}

func runInspect(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	manager, err := newManager(ctx)
	if err != nil {
		return err
	}

	f, err := manager.LoadTable(ctx, inspectBucket, inspectKey)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	rows, cols := f.Shape()
	fmt.Fprintf(out, "rows: %d\ncolumns: %d\n", rows, cols)
	for _, c := range f.Columns() {
		fmt.Fprintf(out, "  %s\t%s\n", c.Name(), c.Kind())
	}
	return nil
}
