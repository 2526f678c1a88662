package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/CSU-ITMO-2025-2/team7/internal/models"
	"github.com/CSU-ITMO-2025-2/team7/internal/orchestrator"
)

var artifactCmd = &cobra.Command{
	Use:   "artifact",
	Short: "Download run artifacts",
}

var artifactDownloadCmd = &cobra.Command{
	Use:   "download",
	Short: "Download the trained model or results of a completed run",
	RunE:  artifactDownload,
}

func init() {
	rootCmd.AddCommand(artifactCmd)
	artifactCmd.AddCommand(artifactDownloadCmd)

	artifactDownloadCmd.Flags().Int("run-id", 0, "Run ID (required)")
	artifactDownloadCmd.Flags().String("kind", "model", "Artifact kind (model/results)")
	artifactDownloadCmd.Flags().StringP("output", "o", "", "Output path (default: server-suggested filename)")
	artifactDownloadCmd.MarkFlagRequired("run-id")
}

func artifactDownload(cmd *cobra.Command, args []string) error {
	client, store, err := newClient()
	if err != nil {
		return err
	}
	if err := requireAuth(store); err != nil {
		return err
	}

	runID, _ := cmd.Flags().GetInt("run-id")
	kind, _ := cmd.Flags().GetString("kind")
	output, _ := cmd.Flags().GetString("output")

	orch := orchestrator.New(client)
	stream, err := orch.OpenArtifact(context.Background(), runID, models.ArtifactKind(kind))
	if err != nil {
		return err
	}
	defer stream.Body.Close()

	if output == "" {
		output = stream.Filename
	}
	f, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", output, err)
	}
	defer f.Close()

	bar := progressbar.DefaultBytes(stream.Size, "downloading")
	if _, err := io.Copy(io.MultiWriter(f, bar), stream.Body); err != nil {
		return fmt.Errorf("failed to download artifact: %w", err)
	}

	fmt.Printf("Saved %s\n", output)
	return nil
}
