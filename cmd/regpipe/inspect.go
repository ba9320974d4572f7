package main

import (
	"github.com/spf13/cobra"

	"github.com/YuminosukeSato/regpipe/dataset"
)

var inspectData string

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Print the columns of a dataset with their kind and missing count",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := cfg.DataPath
		if cmd.Flags().Changed("data") {
			path = inspectData
		}
		ds, err := dataset.Ingest(path, dataset.WithDelimiter(cfg.DelimiterRune()))
		if err != nil {
			return err
		}
		return ds.WriteSummary(cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
	inspectCmd.Flags().StringVar(&inspectData, "data", "", "path to the CSV dataset (default from config)")
}
