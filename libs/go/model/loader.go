package model

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/churnlens/churn-api/libs/go/constants"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Load reads a model artifact from disk. The format follows the file
// extension: .json, .yaml or .yml.
func Load(path string) (*LogisticRegression, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read model artifact %s", path)
	}

	artifact, err := Decode(raw, format)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to decode model artifact %s", path)
	}

	m, err := NewLogisticRegression(artifact)
	if err != nil {
		return nil, errors.Wrapf(err, "model artifact %s rejected", path)
	}
	m.source = path
	return m, nil
}

// Decode parses raw artifact bytes in the given format.
func Decode(raw []byte, format string) (Artifact, error) {
	var artifact Artifact

	switch format {
	case constants.JSONFormat:
		dec := json.NewDecoder(bytes.NewReader(raw))
		if err := dec.Decode(&artifact); err != nil {
			return Artifact{}, errors.Wrap(ErrInvalidArtifact, err.Error())
		}
	case constants.YAMLFormat:
		if err := yaml.Unmarshal(raw, &artifact); err != nil {
			return Artifact{}, errors.Wrap(ErrInvalidArtifact, err.Error())
		}
	default:
		return Artifact{}, errors.Wrapf(ErrUnsupportedFormat, "format %q", format)
	}

	return artifact, nil
}

// FormatFromPath maps a file extension to an artifact format.
func FormatFromPath(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return constants.JSONFormat, nil
	case ".yaml", ".yml":
		return constants.YAMLFormat, nil
	default:
		return "", errors.Wrapf(ErrUnsupportedFormat, "extension of %s", path)
	}
}
