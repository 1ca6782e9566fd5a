package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/corvidlang/unboxlower/internal/sampleprograms"
)

var listSamplesCmd = &cobra.Command{
	Use:   "list-samples",
	Short: "List the sample programs unboxlower ships with",
	Run: func(cmd *cobra.Command, args []string) {
		for _, name := range sampleprograms.Names() {
			fmt.Println(name)
		}
	},
}

func init() {
	rootCmd.AddCommand(listSamplesCmd)
}
