package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/spigell/ats-scorer/internal/scoring"
)

var rolesCmd = &cobra.Command{
	Use:   "roles",
	Short: "Print the role catalog used when no job description is given",
	RunE: func(cmd *cobra.Command, _ []string) error {
		output, _ := cmd.Flags().GetString("output")
		if err := writeOutput(os.Stdout, output, scoring.DefaultRoles()); err != nil {
			return fmt.Errorf("printing roles: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(rolesCmd)

	rolesCmd.Flags().StringP("output", "o", outputYAML, "output format: json or yaml")
}
