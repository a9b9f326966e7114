package cmd

import (
	"log"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/ats-scorer/internal/extract"
	"github.com/spigell/ats-scorer/internal/logger"
	"github.com/spigell/ats-scorer/internal/scoring"
)

var keywordsCmd = &cobra.Command{
	Use:   "keywords",
	Short: "Run the keyword analysis only. No embedding provider is called",
	Run: func(cmd *cobra.Command, _ []string) {
		logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
		if err != nil {
			log.Fatalf("creating a logger: %s", err)
		}

		resumePath, _ := cmd.Flags().GetString("resume")
		output, _ := cmd.Flags().GetString("output")

		resume, err := extract.FromFile(resumePath)
		if err != nil {
			logger.Fatal("reading resume", zap.Error(err))
		}

		if err := writeOutput(os.Stdout, output, scoring.AnalyzeKeywords(resume)); err != nil {
			logger.Fatal("printing result", zap.Error(err))
		}
	},
}

func init() {
	rootCmd.AddCommand(keywordsCmd)

	keywordsCmd.Flags().StringP("resume", "r", "", "resume text file, - reads stdin")
	keywordsCmd.Flags().StringP("output", "o", outputJSON, "output format: json or yaml")

	keywordsCmd.MarkFlagRequired("resume")
}
