package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/abhishek622/mockmate/internal/auth"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Mint a development bearer token",
	Long:  "Signs an HS256 access token with SUPABASE_JWT_SECRET (or --secret) for local testing of the API.",
	RunE:  runToken,
}

var (
	tokenUserID string
	tokenEmail  string
	tokenTTL    time.Duration
	tokenSecret string
)

func init() {
	tokenCmd.Flags().StringVar(&tokenUserID, "user-id", "", "User id (default: a random UUID)")
	tokenCmd.Flags().StringVar(&tokenEmail, "email", "dev@mockmate.local", "Email claim")
	tokenCmd.Flags().DurationVar(&tokenTTL, "ttl", time.Hour, "Token lifetime")
	tokenCmd.Flags().StringVar(&tokenSecret, "secret", "", "Signing secret (default: $SUPABASE_JWT_SECRET)")
	rootCmd.AddCommand(tokenCmd)
}

func runToken(cmd *cobra.Command, _ []string) error {
	secret := tokenSecret
	if secret == "" {
		secret = os.Getenv("SUPABASE_JWT_SECRET")
	}
	if secret == "" {
		return errors.New("no signing secret: set SUPABASE_JWT_SECRET or pass --secret")
	}
	if tokenTTL <= 0 {
		return fmt.Errorf("ttl must be positive, got %s", tokenTTL)
	}

	userID := uuid.New()
	if tokenUserID != "" {
		var err error
		if userID, err = uuid.Parse(tokenUserID); err != nil {
			return fmt.Errorf("invalid --user-id: %w", err)
		}
	}

	token, err := auth.GenerateToken(secret, userID, tokenEmail, tokenTTL)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), token)
	return nil
}
