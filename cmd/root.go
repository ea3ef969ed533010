package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tableloyal/tableloyal/internal/models"
	"github.com/tableloyal/tableloyal/internal/runner"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "tableloyal",
	Short: "Customer tagging and segmentation engine for restaurants",
	Long: `tableloyal recalculates spend, activity and behavior tags for a
restaurant's customer roster, emits automation triggers for campaign-relevant
tag transitions, and renders personalized outbound copy for each trigger.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := models.LoadConfig(cfgFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}

		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

		if err := runner.New(cfg).Run(context.Background()); err != nil {
			log.Error().Err(err).Msg("tagging run failed")
			os.Exit(1)
		}
	},
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is examples/config.json)")

	rootCmd.Flags().String("restaurant-id", "", "Restaurant identifier for the summary")
	rootCmd.Flags().Float64("restaurant-avg-visit-gap", 14, "Restaurant-wide average visit gap in days")
	rootCmd.Flags().String("input-source", "demo", "Roster source: postgres, json or demo")
	rootCmd.Flags().String("input-file", "", "Roster JSON file (input-source=json)")
	rootCmd.Flags().String("database-url", "", "Postgres connection string (input-source=postgres)")
	rootCmd.Flags().Int("demo-customers", 100, "Demo roster size (input-source=demo)")
	rootCmd.Flags().Int64("seed", 42, "Random seed for the demo roster")
	rootCmd.Flags().String("output-destination", "console", "Output destination: console, json or parquet")
	rootCmd.Flags().String("output-path", "output", "Base path for file exports")
	rootCmd.Flags().String("output-folder", "tagging", "Folder under the base path for exports")
	rootCmd.Flags().Bool("kafka-enabled", false, "Also publish output to Kafka")
	rootCmd.Flags().String("kafka-broker-list", "localhost:9092", "Kafka broker list")

	viper.BindPFlags(rootCmd.Flags())
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	}

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
