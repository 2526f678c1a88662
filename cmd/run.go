package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/CSU-ITMO-2025-2/team7/internal/orchestrator"
	"github.com/CSU-ITMO-2025-2/team7/internal/parser"
	"github.com/CSU-ITMO-2025-2/team7/internal/timeutils"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Manage training runs",
	Long:  "Submit and monitor training runs",
}

var runSubmitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Submit a training run",
	Long:  "Submit a run for a dataset and model; hyperparameters default from the catalog",
	RunE:  runSubmit,
}

var runListCmd = &cobra.Command{
	Use:   "list",
	Short: "List your runs",
	RunE:  runList,
}

var runGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Show one run",
	RunE:  runGet,
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.AddCommand(runSubmitCmd)
	runCmd.AddCommand(runListCmd)
	runCmd.AddCommand(runGetCmd)

	// Submit command flags
	runSubmitCmd.Flags().Int("dataset", 0, "Dataset ID to train on (required)")
	runSubmitCmd.Flags().String("model", "", "Model name (default: first in the catalog)")
	runSubmitCmd.Flags().StringArray("param", []string{}, "Hyperparameter in name=value format")
	runSubmitCmd.Flags().String("params-file", "", "JSON or YAML file with hyperparameter overrides")
	runSubmitCmd.MarkFlagRequired("dataset")

	runGetCmd.Flags().Int("run-id", 0, "Run ID (required)")
	runGetCmd.MarkFlagRequired("run-id")
}

func runSubmit(cmd *cobra.Command, args []string) error {
	client, store, err := newClient()
	if err != nil {
		return err
	}
	if err := requireAuth(store); err != nil {
		return err
	}

	datasetID, _ := cmd.Flags().GetInt("dataset")
	modelName, _ := cmd.Flags().GetString("model")
	paramFlags, _ := cmd.Flags().GetStringArray("param")
	paramsFile, _ := cmd.Flags().GetString("params-file")

	ctx := context.Background()
	orch := orchestrator.New(client)
	orch.Refresh(ctx)
	if err := orch.ModelsErr(); err != nil {
		return fmt.Errorf("failed to load model catalog: %w", err)
	}

	if modelName != "" {
		if err := orch.SelectModel(modelName); err != nil {
			return err
		}
	}
	orch.SelectDataset(datasetID)

	overrides, err := collectParams(paramsFile, paramFlags)
	if err != nil {
		return err
	}
	for name, value := range overrides {
		if err := orch.SetParam(name, value); err != nil {
			return err
		}
	}

	run, err := orch.Submit(ctx)
	if err != nil {
		return fmt.Errorf("failed to submit run: %w", err)
	}

	fmt.Printf("Run submitted\n")
	fmt.Printf("Run ID: %d\n", run.ID)
	fmt.Printf("Status: %s\n", run.Status)
	return nil
}

// collectParams merges file-based overrides with --param flags; flags win.
func collectParams(paramsFile string, paramFlags []string) (map[string]string, error) {
	merged := map[string]string{}
	if paramsFile != "" {
		fromFile, err := parser.ParseParamsFile(paramsFile)
		if err != nil {
			return nil, err
		}
		for name, value := range fromFile {
			merged[name] = value
		}
	}
	for _, p := range paramFlags {
		parts := strings.SplitN(p, "=", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid param format: %s (expected name=value)", p)
		}
		merged[parts[0]] = parts[1]
	}
	return merged, nil
}

func runList(cmd *cobra.Command, args []string) error {
	client, store, err := newClient()
	if err != nil {
		return err
	}
	if err := requireAuth(store); err != nil {
		return err
	}

	runs, err := client.ListRuns(context.Background())
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}

	if len(runs) == 0 {
		fmt.Println("No runs submitted yet")
		return nil
	}

	now := time.Now()
	for _, r := range runs {
		fmt.Printf("%d\t%s\t%s\tdataset=%d\tmodel=%s\n",
			r.ID, r.Status, timeutils.Age(r.CreatedAt, now), r.DatasetID, r.Configuration.Model)
	}
	return nil
}

func runGet(cmd *cobra.Command, args []string) error {
	client, store, err := newClient()
	if err != nil {
		return err
	}
	if err := requireAuth(store); err != nil {
		return err
	}

	runID, _ := cmd.Flags().GetInt("run-id")
	run, err := client.GetRun(context.Background(), runID)
	if err != nil {
		return fmt.Errorf("failed to fetch run: %w", err)
	}

	fmt.Printf("Run ID: %d\n", run.ID)
	fmt.Printf("Status: %s\n", run.Status)
	fmt.Printf("Dataset: %d\n", run.DatasetID)
	fmt.Printf("Model: %s\n", run.Configuration.Model)
	fmt.Printf("Created: %s\n", timeutils.FormatStamp(run.CreatedAt))
	for name, value := range run.Configuration.Hyperparameters {
		fmt.Printf("  %s=%s\n", name, value)
	}
	return nil
}
