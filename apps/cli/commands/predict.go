package commands

import (
	"encoding/json"
	"fmt"

	"github.com/churnlens/churn-api/libs/go/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type predictionOutput struct {
	Prediction  int     `json:"prediction"`
	Probability float64 `json:"probability"`
	Threshold   float64 `json:"threshold"`
}

func predictCmd() *cobra.Command {
	var modelPath string
	var input string
	var asJSON bool

	c := &cobra.Command{
		Use:   "predict",
		Short: "Score one customer record offline",
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := loadScorer(modelPath)
			if err != nil {
				return err
			}

			req, err := readRecord(input, cmd.InOrStdin())
			if err != nil {
				return err
			}

			features, err := s.encoder.FeatureVector(req.ToRecord())
			if err != nil {
				return err
			}

			probabilities, err := s.model.PredictProba(cmd.Context(), [][]float64{features})
			if err != nil {
				return err
			}
			labels, err := s.model.Predict(cmd.Context(), [][]float64{features})
			if err != nil {
				return err
			}

			out := predictionOutput{
				Prediction:  labels[0],
				Probability: probabilities[0],
				Threshold:   s.model.Info().Threshold,
			}
			logger.Debug("Scored record",
				zap.String("input", input),
				zap.Int("prediction", out.Prediction),
				zap.Float64("probability", out.Probability),
			)

			if asJSON {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(out)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "prediction=%d probability=%.4f threshold=%.2f\n", out.Prediction, out.Probability, out.Threshold)
			return nil
		},
	}

	c.Flags().StringVarP(&modelPath, "model", "m", "", "Path to the model artifact (required)")
	c.Flags().StringVarP(&input, "input", "i", "", "Record file (.yaml or .json), or - for stdin (required)")
	c.Flags().BoolVar(&asJSON, "json", false, "Print the result as JSON")

	_ = c.MarkFlagRequired("model")
	_ = c.MarkFlagRequired("input")
	return c
}
