package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chaosforge/damage-api/internal/config"
	"github.com/chaosforge/damage-api/internal/errors"
	redisclient "github.com/chaosforge/damage-api/internal/redis"
)

var (
	checkConfigPath string
	checkRedisAddr  string
	checkRedisKey   string
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate a configuration document set",
	Long:  `Load a damage configuration document set from a file or redis, run full validation, and print the resulting snapshot version and content hash.`,
	RunE:  runCheck,
}

func init() {
	checkCmd.Flags().StringVar(&checkConfigPath, "config", "", "path to a yaml configuration file")
	checkCmd.Flags().StringVar(&checkRedisAddr, "redis-addr", "", "redis endpoint holding the documents")
	checkCmd.Flags().StringVar(&checkRedisKey, "redis-key", "", "redis key holding the documents")
}

func documentSource() (config.Source, error) {
	switch {
	case checkConfigPath != "" && checkRedisAddr != "":
		return nil, errors.InvalidArgument("--config and --redis-addr are mutually exclusive")
	case checkConfigPath != "":
		return config.NewFileSource(checkConfigPath)
	case checkRedisAddr != "":
		client, err := redisclient.NewClient(checkRedisAddr, nil)
		if err != nil {
			return nil, err
		}
		return config.NewRedisSource(client, checkRedisKey)
	default:
		return nil, errors.InvalidArgument("either --config or --redis-addr is required")
	}
}

func runCheck(cmd *cobra.Command, args []string) error {
	source, err := documentSource()
	if err != nil {
		return err
	}

	docs, err := source.Load(context.Background())
	if err != nil {
		return err
	}

	snap, err := config.BuildSnapshot(docs)
	if err != nil {
		return err
	}

	fmt.Printf("configuration ok\n")
	fmt.Printf("  version: %s\n", snap.Version)
	fmt.Printf("  hash:    %s\n", snap.Hash)
	return nil
}
