package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// bucketCmd groups the bucket commands
var bucketCmd = &cobra.Command{
	Use:   "bucket",
	Short: "Manage buckets",
}

var bucketListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all buckets",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(cmd.Context())
		if err != nil {
			return err
		}
		defer e.logger.Sync()

		buckets, err := e.store.ListBuckets(cmd.Context())
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), buckets)
	},
}

var bucketExistsCmd = &cobra.Command{
	Use:   "exists <bucket>",
	Short: "Check whether a bucket exists",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(cmd.Context())
		if err != nil {
			return err
		}
		defer e.logger.Sync()

		exists, err := e.store.BucketExists(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), exists)
		return nil
	},
}

var bucketCreateCmd = &cobra.Command{
	Use:   "create <bucket>",
	Short: "Create a bucket",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(cmd.Context())
		if err != nil {
			return err
		}
		defer e.logger.Sync()
		return e.store.CreateBucket(cmd.Context(), args[0])
	},
}

var bucketDeleteCmd = &cobra.Command{
	Use:   "delete <bucket>",
	Short: "Delete a bucket",
	Long: `Deletes a bucket. The store refuses to delete a bucket that still holds objects
unless --force is given, in which case every object is removed first. A forced
deletion stops at the first failure and leaves the bucket partially emptied.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")

		e, err := setup(cmd.Context())
		if err != nil {
			return err
		}
		defer e.logger.Sync()

		if force {
			e.logger.Warn("Deleting bucket and all its objects", zap.String("bucket", args[0]))
		}
		return e.store.DeleteBucket(cmd.Context(), args[0], force)
	},
}

func init() {
	bucketDeleteCmd.Flags().Bool("force", false, "Delete every object in the bucket first")

	bucketCmd.AddCommand(bucketListCmd, bucketExistsCmd, bucketCreateCmd, bucketDeleteCmd)
	RootCmd.AddCommand(bucketCmd)
}
