package caloriecam

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/saadjs/caloriecam/internal/app"
	"github.com/saadjs/caloriecam/internal/provider/s3backup"
	"github.com/saadjs/caloriecam/internal/service"
	"github.com/spf13/cobra"
)

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Manage database backups",
}

var (
	backupOut    string
	backupDir    string
	backupS3     bool
	restoreFile  string
	restoreS3Key string
	restoreForce bool
)

// s3Factory builds the remote backup store. Tests replace it.
var s3Factory = func(ctx context.Context, bucket, prefix, region string) (*s3backup.Uploader, error) {
	return s3backup.New(ctx, bucket, prefix, region)
}

func newS3Uploader(ctx context.Context) (*s3backup.Uploader, error) {
	var bucket, prefix string
	err := withDB(func(sqldb *sql.DB) error {
		var err error
		if bucket, err = service.ResolveSetting(sqldb, service.ConfigS3Bucket, "", os.Getenv(app.EnvS3Bucket), ""); err != nil {
			return err
		}
		prefix, err = service.ResolveSetting(sqldb, service.ConfigS3Prefix, "", "", "caloriecam")
		return err
	})
	if err != nil {
		return nil, err
	}
	if bucket == "" {
		return nil, fmt.Errorf("no S3 bucket configured; set %s or run `caloriecam config set --s3-bucket`", app.EnvS3Bucket)
	}
	return s3Factory(ctx, bucket, prefix, os.Getenv(app.EnvAWSRegion))
}

func defaultBackupDir(dbFile string) string {
	if backupDir != "" {
		return backupDir
	}
	return filepath.Join(filepath.Dir(dbFile), "backups")
}

var backupCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create database backup",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := resolveDBPath()
		if err != nil {
			return err
		}
		out := backupOut
		if out == "" {
			out = filepath.Join(defaultBackupDir(db), service.BackupFileName(time.Now()))
		}
		var uploader *s3backup.Uploader
		if backupS3 {
			if uploader, err = newS3Uploader(cmd.Context()); err != nil {
				return err
			}
		}
		info, err := service.CreateBackup(db, out)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Created backup: %s\n", info.Path)
		fmt.Fprintf(cmd.OutOrStdout(), "Checksum: %s\n", info.Checksum)
		if uploader != nil {
			key, err := uploader.Upload(cmd.Context(), info.Path, info.Checksum)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Uploaded: s3://%s/%s\n", uploader.Bucket, key)
		}
		return nil
	},
}

var backupListCmd = &cobra.Command{
	Use:   "list",
	Short: "List backups",
	RunE: func(cmd *cobra.Command, args []string) error {
		if backupS3 {
			uploader, err := newS3Uploader(cmd.Context())
			if err != nil {
				return err
			}
			items, err := uploader.List(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "KEY\tSIZE\tMODIFIED")
			for _, it := range items {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d\t%s\n", it.Key, it.SizeBytes, it.LastModified.Format(time.RFC3339))
			}
			return nil
		}
		db, err := resolveDBPath()
		if err != nil {
			return err
		}
		items, err := service.ListBackups(defaultBackupDir(db))
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "FILE\tSIZE\tCREATED\tCHECKSUM")
		for _, it := range items {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d\t%s\t%s\n", it.Path, it.SizeBytes, it.CreatedAt.Format(time.RFC3339), it.Checksum)
		}
		return nil
	},
}

var backupRestoreCmd = &cobra.Command{
	Use:   "restore",
	Short: "Restore database from a local or S3 backup",
	RunE: func(cmd *cobra.Command, args []string) error {
		if (restoreFile == "") == (restoreS3Key == "") {
			return fmt.Errorf("exactly one of --file or --s3-key is required")
		}
		db, err := resolveDBPath()
		if err != nil {
			return err
		}
		src := restoreFile
		if restoreS3Key != "" {
			uploader, err := newS3Uploader(cmd.Context())
			if err != nil {
				return err
			}
			src = filepath.Join(defaultBackupDir(db), filepath.Base(restoreS3Key))
			if err := uploader.Download(cmd.Context(), restoreS3Key, src); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Downloaded s3://%s/%s to %s\n", uploader.Bucket, restoreS3Key, src)
		}
		if err := service.RestoreBackup(src, db, restoreForce); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Restored backup from %s\n", src)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(backupCmd)
	backupCmd.AddCommand(backupCreateCmd, backupListCmd, backupRestoreCmd)

	backupCreateCmd.Flags().StringVar(&backupOut, "out", "", "Backup output file path")
	backupCreateCmd.Flags().StringVar(&backupDir, "dir", "", "Backup directory (used when --out is empty)")
	backupCreateCmd.Flags().BoolVar(&backupS3, "s3", false, "Also upload the backup to S3")
	backupListCmd.Flags().StringVar(&backupDir, "dir", "", "Backup directory (default: alongside DB under backups/)")
	backupListCmd.Flags().BoolVar(&backupS3, "s3", false, "List backups stored in S3")
	backupRestoreCmd.Flags().StringVar(&backupDir, "dir", "", "Download directory for --s3-key (default: alongside DB under backups/)")
	backupRestoreCmd.Flags().StringVar(&restoreFile, "file", "", "Backup .db file path")
	backupRestoreCmd.Flags().StringVar(&restoreS3Key, "s3-key", "", "S3 object key of the backup to restore")
	backupRestoreCmd.Flags().BoolVar(&restoreForce, "force", false, "Overwrite existing DB if present")
}
