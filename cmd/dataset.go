package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/CSU-ITMO-2025-2/team7/internal/timeutils"
)

var datasetCmd = &cobra.Command{
	Use:   "dataset",
	Short: "Manage uploaded datasets",
}

var datasetUploadCmd = &cobra.Command{
	Use:   "upload",
	Short: "Upload a csv dataset",
	RunE:  datasetUpload,
}

var datasetListCmd = &cobra.Command{
	Use:   "list",
	Short: "List your datasets",
	RunE:  datasetList,
}

func init() {
	rootCmd.AddCommand(datasetCmd)
	datasetCmd.AddCommand(datasetUploadCmd)
	datasetCmd.AddCommand(datasetListCmd)

	datasetUploadCmd.Flags().String("name", "", "Dataset name (required)")
	datasetUploadCmd.Flags().String("file", "", "Path to a .csv file (required)")
	datasetUploadCmd.MarkFlagRequired("name")
	datasetUploadCmd.MarkFlagRequired("file")
}

func datasetUpload(cmd *cobra.Command, args []string) error {
	client, store, err := newClient()
	if err != nil {
		return err
	}
	if err := requireAuth(store); err != nil {
		return err
	}

	name, _ := cmd.Flags().GetString("name")
	path, _ := cmd.Flags().GetString("file")

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	ctx := context.Background()
	user, err := client.CurrentUser(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch current user: %w", err)
	}

	dataset, err := client.UploadDataset(ctx, name, user.ID, path, f)
	if err != nil {
		return fmt.Errorf("failed to upload dataset: %w", err)
	}

	fmt.Printf("Uploaded dataset %s (id %d)\n", dataset.Name, dataset.ID)
	return nil
}

func datasetList(cmd *cobra.Command, args []string) error {
	client, store, err := newClient()
	if err != nil {
		return err
	}
	if err := requireAuth(store); err != nil {
		return err
	}

	// dataset listing is scoped by the owning user's id
	ctx := context.Background()
	user, err := client.CurrentUser(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch current user: %w", err)
	}

	datasets, err := client.ListDatasets(ctx, user.ID)
	if err != nil {
		return fmt.Errorf("failed to list datasets: %w", err)
	}

	if len(datasets) == 0 {
		fmt.Println("No datasets uploaded yet")
		return nil
	}

	now := time.Now()
	for _, d := range datasets {
		fmt.Printf("%d\t%s\t%s\t%s\n", d.ID, d.Name, timeutils.Age(d.CreatedAt, now), d.S3Path)
	}
	return nil
}
