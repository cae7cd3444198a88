package commands

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/churnlens/churn-api/libs/go/types/api/requests"
	"github.com/churnlens/churn-api/libs/go/types/business"
	"gopkg.in/yaml.v3"
)

// readRecord loads one customer record from path, or from stdin when path
// is "-". YAML and JSON are both accepted since JSON parses as YAML.
func readRecord(path string, stdin io.Reader) (requests.PredictionRequest, error) {
	var raw []byte
	var err error
	if path == "-" {
		raw, err = io.ReadAll(stdin)
	} else {
		raw, err = os.ReadFile(path)
	}
	if err != nil {
		return requests.PredictionRequest{}, fmt.Errorf("read record: %w", err)
	}

	var fields map[string]interface{}
	if err := yaml.Unmarshal(raw, &fields); err != nil {
		return requests.PredictionRequest{}, fmt.Errorf("parse record: %w", err)
	}

	var missing []string
	for _, name := range business.FeatureOrder {
		if _, ok := fields[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return requests.PredictionRequest{}, fmt.Errorf("record is missing fields: %s", strings.Join(missing, ", "))
	}

	var req requests.PredictionRequest
	if err := yaml.Unmarshal(raw, &req); err != nil {
		return requests.PredictionRequest{}, fmt.Errorf("decode record: %w", err)
	}
	return req, nil
}
