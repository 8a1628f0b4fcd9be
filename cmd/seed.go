package cmd

import (
	"EmojiFM/config"
	"EmojiFM/db"
	"EmojiFM/logger"
	"EmojiFM/repository"

	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Initialize the schema and seed the emoji mood table",
	Long:  `Create the database schema if needed and load the initial emoji to genre mapping. Only seeds when the table is empty, so it is safe to run repeatedly.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()
		logger.InitLogger(logger.Config{Level: logger.LogLevel(cfg.LogLevel)})

		if err := db.ConnectDB(cfg); err != nil {
			return err
		}
		defer db.DB.Close()

		if err := db.InitDB(); err != nil {
			return err
		}

		moodRepo := repository.NewMySQLEmojiMoodRepository(db.DB)
		return repository.SeedEmojiMoods(moodRepo)
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}
