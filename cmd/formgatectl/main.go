package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/formgate/formgate/internal/api/dto/v1/contact"
	"github.com/formgate/formgate/internal/api/validation"
	"github.com/formgate/formgate/internal/config"
	"github.com/formgate/formgate/internal/models"
	"github.com/formgate/formgate/internal/ratelimit"
	"github.com/formgate/formgate/internal/repository"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
)

var (
	cfg *config.Config
	rdb *redis.Client
)

var rootCmd = &cobra.Command{
	Use:   "formgatectl",
	Short: "Operational tooling for stored contact-form submissions",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return err
		}
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		return rdb.Ping(cmd.Context()).Err()
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if rdb != nil {
			rdb.Close()
		}
	},
}

var getCmd = &cobra.Command{
	Use:   "get <form-id>",
	Short: "Print a stored submission as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		submission, err := loadSubmission(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		out, err := json.MarshalIndent(submission, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	},
}

var statusCmd = &cobra.Command{
	Use:   "status <form-id> <new|processed|replied|spam>",
	Short: "Update the status of a stored submission",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		formID, status := args[0], args[1]
		if !models.ValidStatus(status) {
			return fmt.Errorf("invalid status %q", status)
		}

		repo := repository.NewSubmissionRepository(repository.NewRedisKV(rdb), cfg.SubmissionPrefix, cfg.SubmissionRetention)
		if err := repo.UpdateStatus(cmd.Context(), formID, status); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return fmt.Errorf("no submission with id %s", formID)
			}
			return err
		}

		fmt.Printf("%s -> %s\n", formID, status)
		return nil
	},
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <form-id>",
	Short: "Score a stored submission against the spam heuristics",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		submission, err := loadSubmission(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		isSpam, reasons := validation.CheckSpamIndicators(&contact.SubmissionRequest{
			Name:    submission.Name,
			Email:   submission.Email,
			Subject: submission.Subject,
			Message: submission.Message,
		})

		if !isSpam {
			fmt.Println("no spam indicators")
			return nil
		}
		for _, reason := range reasons {
			fmt.Println(reason)
		}
		return nil
	},
}

var ratelimitCmd = &cobra.Command{
	Use:   "ratelimit <ip>",
	Short: "Show the current hour/day counters for an IP",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ip := args[0]
		store := ratelimit.NewRedisStore(rdb, cfg.RateLimitPrefix)
		now := time.Now()

		hourly, err := store.GetCount(cmd.Context(), fmt.Sprintf("%s#%s", ip, now.Format("2006010215")))
		if err != nil {
			return err
		}
		daily, err := store.GetCount(cmd.Context(), fmt.Sprintf("%s#%s", ip, now.Format("20060102")))
		if err != nil {
			return err
		}

		fmt.Printf("hour: %d/%d\nday:  %d/%d\n", hourly, cfg.MaxHourly, daily, cfg.MaxDaily)
		return nil
	},
}

func loadSubmission(ctx context.Context, formID string) (*models.Submission, error) {
	repo := repository.NewSubmissionRepository(repository.NewRedisKV(rdb), cfg.SubmissionPrefix, cfg.SubmissionRetention)
	submission, err := repo.GetByID(ctx, formID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("no submission with id %s", formID)
	}
	return submission, err
}

func main() {
	rootCmd.AddCommand(getCmd, statusCmd, inspectCmd, ratelimitCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
