package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"bucketeer/core/objectstore"
	"bucketeer/core/utils"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// objectCmd groups the object commands
var objectCmd = &cobra.Command{
	Use:   "object",
	Short: "Manage objects",
	Long:  `Object commands act on the bucket given with --bucket, or STORAGE_BUCKET when the flag is omitted.`,
}

// bucketFor returns the --bucket flag, falling back to the configured default.
func bucketFor(cmd *cobra.Command, e *env) (string, error) {
	bucket, _ := cmd.Flags().GetString("bucket")
	if bucket == "" {
		bucket = e.cfg.Storage.Bucket
	}
	if bucket == "" {
		return "", errors.New("no bucket given: use --bucket or set STORAGE_BUCKET")
	}
	return bucket, nil
}

// objectSetup combines setup and bucketFor.
func objectSetup(cmd *cobra.Command) (*env, string, error) {
	e, err := setup(cmd.Context())
	if err != nil {
		return nil, "", err
	}
	bucket, err := bucketFor(cmd, e)
	if err != nil {
		return nil, "", err
	}
	return e, bucket, nil
}

var objectUploadCmd = &cobra.Command{
	Use:   "upload <key> <file>",
	Short: "Upload a file, or stdin when file is -",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		contentType, _ := cmd.Flags().GetString("content-type")
		metaPairs, _ := cmd.Flags().GetStringArray("meta")
		partSize, _ := cmd.Flags().GetInt64("part-size")

		metadata, err := utils.ParseKeyValues(metaPairs)
		if err != nil {
			return err
		}

		e, bucket, err := objectSetup(cmd)
		if err != nil {
			return err
		}
		defer e.logger.Sync()

		opts := objectstore.UploadOptions{ContentType: contentType, Metadata: metadata, PartSize: partSize}

		var src io.Reader = cmd.InOrStdin()
		if args[1] != "-" {
			f, err := os.Open(args[1])
			if err != nil {
				return fmt.Errorf("failed to open %s: %w", args[1], err)
			}
			defer f.Close()

			if st, err := f.Stat(); err == nil {
				opts.Size = st.Size()
			}
			src = f
		}

		start := time.Now()
		info, err := e.store.UploadObject(cmd.Context(), bucket, args[0], src, opts)
		if err != nil {
			return err
		}

		e.logger.Info("Upload finished",
			zap.String("bucket", bucket),
			zap.String("key", info.Key),
			zap.Int64("size", info.Size),
			zap.Duration("took", time.Since(start)))
		return printJSON(cmd.OutOrStdout(), info)
	},
}

var objectDownloadCmd = &cobra.Command{
	Use:   "download <key> [file]",
	Short: "Download an object to a file, or stdout",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, bucket, err := objectSetup(cmd)
		if err != nil {
			return err
		}
		defer e.logger.Sync()

		rc, err := e.store.GetObject(cmd.Context(), bucket, args[0])
		if err != nil {
			return err
		}
		defer rc.Close()

		dst := cmd.OutOrStdout()
		if len(args) == 2 && args[1] != "-" {
			f, err := os.Create(args[1])
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", args[1], err)
			}
			defer f.Close()
			dst = f
		}

		n, err := io.Copy(dst, rc)
		if err != nil {
			return fmt.Errorf("failed to download %s/%s: %w", bucket, args[0], err)
		}
		e.logger.Debug("Download finished", zap.String("key", args[0]), zap.Int64("size", n))
		return nil
	},
}

var objectDeleteCmd = &cobra.Command{
	Use:   "delete <key>",
	Short: "Delete an object",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, bucket, err := objectSetup(cmd)
		if err != nil {
			return err
		}
		defer e.logger.Sync()
		return e.store.DeleteObject(cmd.Context(), bucket, args[0])
	},
}

var objectStatCmd = &cobra.Command{
	Use:   "stat <key>",
	Short: "Show object metadata",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, bucket, err := objectSetup(cmd)
		if err != nil {
			return err
		}
		defer e.logger.Sync()

		info, err := e.store.StatObject(cmd.Context(), bucket, args[0])
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), info)
	},
}

var objectCopyCmd = &cobra.Command{
	Use:   "copy <src-key> <dst-key>",
	Short: "Copy an object inside the bucket",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, bucket, err := objectSetup(cmd)
		if err != nil {
			return err
		}
		defer e.logger.Sync()
		return e.store.CopyObject(cmd.Context(), bucket, args[0], args[1])
	},
}

var objectListCmd = &cobra.Command{
	Use:   "list",
	Short: "List every object in the bucket, one key per line",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		pageSize, _ := cmd.Flags().GetInt("page-size")
		long, _ := cmd.Flags().GetBool("long")

		e, bucket, err := objectSetup(cmd)
		if err != nil {
			return err
		}
		defer e.logger.Sync()

		out := cmd.OutOrStdout()
		pager := e.store.ListObjects(bucket, pageSize)
		for pager.HasMorePages() {
			page, err := pager.NextPage(cmd.Context())
			if err != nil {
				return err
			}
			for _, obj := range page {
				if long {
					fmt.Fprintf(out, "%12d  %s  %s\n", obj.Size, obj.LastModified.Format(time.RFC3339), obj.Key)
					continue
				}
				fmt.Fprintln(out, obj.Key)
			}
		}
		return nil
	},
}

var objectPresignCmd = &cobra.Command{
	Use:   "presign <key>",
	Short: "Print a presigned URL for an object",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		method, _ := cmd.Flags().GetString("method")
		expiry, _ := cmd.Flags().GetDuration("expiry")

		e, bucket, err := objectSetup(cmd)
		if err != nil {
			return err
		}
		defer e.logger.Sync()

		var req *objectstore.PresignedRequest
		switch method {
		case "get":
			req, err = e.store.GetObjectPresigned(cmd.Context(), bucket, args[0], expiry)
		case "put":
			req, err = e.store.PutObjectPresigned(cmd.Context(), bucket, args[0], expiry)
		case "delete":
			req, err = e.store.DeleteObjectPresigned(cmd.Context(), bucket, args[0], expiry)
		default:
			return fmt.Errorf("unsupported method %q (want get, put or delete)", method)
		}
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), req.URL)
		return nil
	},
}

func init() {
	objectCmd.PersistentFlags().StringP("bucket", "b", "", "Bucket to act on (defaults to STORAGE_BUCKET)")

	objectUploadCmd.Flags().String("content-type", "", "Content type (sniffed when empty)")
	objectUploadCmd.Flags().StringArray("meta", nil, "User metadata as key=value, repeatable")
	objectUploadCmd.Flags().Int64("part-size", 0, "Multipart part size in bytes (defaults to STORAGE_PART_SIZE)")

	objectListCmd.Flags().Int("page-size", objectstore.DefaultPageSize, "Objects fetched per request")
	objectListCmd.Flags().BoolP("long", "l", false, "Show size and modification time")

	objectPresignCmd.Flags().String("method", "get", "Request to sign: get, put or delete")
	objectPresignCmd.Flags().Duration("expiry", time.Hour, "Validity of the URL (at most 168h)")

	objectCmd.AddCommand(
		objectUploadCmd,
		objectDownloadCmd,
		objectDeleteCmd,
		objectStatCmd,
		objectCopyCmd,
		objectListCmd,
		objectPresignCmd,
	)
	RootCmd.AddCommand(objectCmd)
}
