package pipeline

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/Vinayaksharma17/Blockchain-Supplychain-Management/pkg/classifier"
	"github.com/Vinayaksharma17/Blockchain-Supplychain-Management/pkg/features"
	"github.com/Vinayaksharma17/Blockchain-Supplychain-Management/pkg/jsonstore"
)

// ModelVersion identifies the artifact layout.
const ModelVersion = 1

// ModelArtifact persists everything inference needs without retraining.
type ModelArtifact struct {
	Version  int               `json:"version"`
	Features []string          `json:"features"`
	Colors   []string          `json:"colors"`
	Seed     uint64            `json:"seed"`
	Model    *classifier.Model `json:"model"`

	vocab *features.Vocabulary
}

func newModelArtifact(vocab *features.Vocabulary, model *classifier.Model, seed uint64) *ModelArtifact {
	return &ModelArtifact{
		Version:  ModelVersion,
		Features: []string{"color_enc", "price", "year"},
		Colors:   vocab.Values(),
		Seed:     seed,
		Model:    model,
		vocab:    vocab,
	}
}

// Predict encodes the raw attributes and scores them. Unknown colors and
// unusable vectors yield a fallback.
func (a *ModelArtifact) Predict(color string, price float64, year int) classifier.Prediction {
	if a == nil {
		return classifier.NewFallback("model not loaded")
	}
	if a.vocab == nil {
		a.vocab = features.FromValues(a.Colors)
	}

	triple, err := a.vocab.EncodeTriple(color, price, year)
	if err != nil {
		return classifier.NewFallback(err.Error())
	}
	return a.Model.Predict(triple.Vector())
}

// Save atomically writes the artifact to path.
func (a *ModelArtifact) Save(path string) error {
	return jsonstore.WriteJSON(path, a)
}

// LoadModel reads an artifact written by Save.
func LoadModel(path string) (*ModelArtifact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model %s: %w", path, err)
	}

	var a ModelArtifact
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("decode model %s: %w", path, err)
	}
	if a.Version != ModelVersion {
		return nil, fmt.Errorf("model %s: unsupported version %d", path, a.Version)
	}
	if a.Model == nil || a.Model.Scaler == nil || a.Model.Forest == nil {
		return nil, fmt.Errorf("model %s: incomplete artifact", path)
	}

	a.vocab = features.FromValues(a.Colors)
	return &a, nil
}
