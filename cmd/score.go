package cmd

import (
	"context"
	"log"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/ats-scorer/internal/extract"
	"github.com/spigell/ats-scorer/internal/logger"
	"github.com/spigell/ats-scorer/internal/scoring"
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score a resume against a job description or the built-in role catalog",
	Run: func(cmd *cobra.Command, _ []string) {
		score(cmd)
	},
}

func init() {
	rootCmd.AddCommand(scoreCmd)

	scoreCmd.Flags().StringP("resume", "r", "", "resume text file, - reads stdin")
	scoreCmd.Flags().StringP("job", "J", "", "job description text file. Default is matching against the role catalog")
	scoreCmd.Flags().StringP("output", "o", outputJSON, "output format: json or yaml")
	scoreCmd.Flags().BoolP("interactive", "i", false, "choose the matching mode interactively")

	scoreCmd.MarkFlagRequired("resume")
}

func score(cmd *cobra.Command) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	resumePath, _ := cmd.Flags().GetString("resume")
	jobPath, _ := cmd.Flags().GetString("job")
	output, _ := cmd.Flags().GetString("output")
	interactive, _ := cmd.Flags().GetBool("interactive")

	if err := validateInteractive(resumePath, interactive); err != nil {
		logger.Fatal("invalid flags", zap.Error(err))
	}

	resume, err := extract.FromFile(resumePath)
	if err != nil {
		logger.Fatal("reading resume", zap.Error(err))
	}

	if interactive {
		jobPath, err = chooseJobDescription(jobPath)
		if err != nil {
			logger.Fatal("interactive mode", zap.Error(err))
		}
	}

	var job string
	if jobPath != "" {
		job, err = extract.FromFile(jobPath)
		if err != nil {
			logger.Fatal("reading job description", zap.Error(err))
		}
	}

	engine, cleanup, err := buildEngine(ctx, config, logger)
	if err != nil {
		logger.Fatal("building the scoring engine", zap.Error(err))
	}
	defer cleanup()

	result := engine.Score(ctx, scoring.Request{ResumeText: resume, JobDescription: job})

	if err := writeOutput(os.Stdout, output, result); err != nil {
		logger.Fatal("printing result", zap.Error(err))
	}
}
