package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/CSU-ITMO-2025-2/team7/internal/models"
)

var modelCmd = &cobra.Command{
	Use:   "model",
	Short: "Inspect the trainable-model catalog",
}

var modelListCmd = &cobra.Command{
	Use:   "list",
	Short: "List trainable models and their parameters",
	RunE:  modelList,
}

func init() {
	rootCmd.AddCommand(modelCmd)
	modelCmd.AddCommand(modelListCmd)
}

func modelList(cmd *cobra.Command, args []string) error {
	client, _, err := newClient()
	if err != nil {
		return err
	}

	specs, err := client.ListModels(context.Background())
	if err != nil {
		return fmt.Errorf("failed to list models: %w", err)
	}

	for _, spec := range specs {
		fmt.Println(spec.Name)
		for _, p := range spec.Parameters {
			fmt.Printf("  %s\t%s\tdefault=%s%s\n",
				p.Name, p.Type, defaultOrDash(p), optionsSuffix(p))
		}
	}
	return nil
}

func defaultOrDash(p models.ParamSpec) string {
	if s := models.RawValueString(p.Default); s != "" {
		return s
	}
	return "-"
}

func optionsSuffix(p models.ParamSpec) string {
	if len(p.Options) == 0 {
		return ""
	}
	opts := make([]string, 0, len(p.Options))
	for _, o := range p.Options {
		opts = append(opts, models.RawValueString(o))
	}
	return "\toptions=" + strings.Join(opts, ",")
}
