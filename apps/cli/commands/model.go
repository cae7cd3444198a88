package commands

import (
	"encoding/json"
	"fmt"

	"github.com/churnlens/churn-api/libs/go/model"
	"github.com/churnlens/churn-api/libs/go/services"
	"github.com/spf13/cobra"
)

func modelCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "model",
		Short: "Inspect and validate model artifacts",
	}
	c.AddCommand(modelInspectCmd())
	c.AddCommand(modelValidateCmd())
	return c
}

func modelInspectCmd() *cobra.Command {
	var modelPath string

	c := &cobra.Command{
		Use:   "inspect",
		Short: "Print the artifact summary as JSON",
		RunE: func(cmd *cobra.Command, _ []string) error {
			m, err := model.Load(modelPath)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(m.Info())
		},
	}

	c.Flags().StringVarP(&modelPath, "model", "m", "", "Path to the model artifact (required)")
	_ = c.MarkFlagRequired("model")
	return c
}

func modelValidateCmd() *cobra.Command {
	var modelPath string

	c := &cobra.Command{
		Use:   "validate",
		Short: "Check an artifact loads and matches the request layout",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if _, err := loadScorer(modelPath); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "OK")
			return nil
		},
	}

	c.Flags().StringVarP(&modelPath, "model", "m", "", "Path to the model artifact (required)")
	_ = c.MarkFlagRequired("model")
	return c
}

// scorer pairs a loaded model with the encoder built from its categories.
type scorer struct {
	model   *model.LogisticRegression
	encoder *services.EncodingService
}

func loadScorer(path string) (*scorer, error) {
	m, err := model.Load(path)
	if err != nil {
		return nil, err
	}

	encoder := services.NewEncodingService(m.Categories(services.PaymentMethodFeature))
	if err := encoder.CheckModelCompatibility(m.FeatureNames()); err != nil {
		return nil, err
	}
	return &scorer{model: m, encoder: encoder}, nil
}
