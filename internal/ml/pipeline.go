package ml

import (
	"bytes"
	"encoding/base64"
	"encoding/gob"
	"fmt"
	"math"
	"sort"

	"career-predictor-service/internal/domain"
)

// Scaler holds standardization stats for one numeric feature.
type Scaler struct {
	Mean float64
	Std  float64
}

// Pipeline bundles the fitted preprocessing state with the trained forest.
// It is the unit of (de)serialization: the stored model artifact is exactly
// one encoded Pipeline.
//
// Numeric features are mean-imputed and standardized; categorical features
// are mode-imputed and one-hot encoded with unknown values mapped to all
// zeros. Column layout follows domain.FeatureOrder.
type Pipeline struct {
	FeatureNames []string
	Scalers      map[string]Scaler
	Vocab        map[string][]string
	Fallback     map[string]string
	ColumnNames  []string
	Forest       *Forest
}

// Fit computes preprocessing stats over the training rows, encodes them and
// trains the forest. Training is deterministic for a fixed cfg.Seed.
func Fit(rows []domain.StudentFeatures, labels []int, cfg ForestConfig) (*Pipeline, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("no training rows")
	}
	if len(rows) != len(labels) {
		return nil, fmt.Errorf("rows and labels size mismatch")
	}

	p := &Pipeline{
		FeatureNames: append([]string(nil), domain.FeatureOrder...),
		Scalers:      make(map[string]Scaler),
		Vocab:        make(map[string][]string),
		Fallback:     make(map[string]string),
	}

	for _, name := range p.FeatureNames {
		if isCategorical(name) {
			vocab, mode := fitCategory(rows, name)
			p.Vocab[name] = vocab
			p.Fallback[name] = mode
		} else {
			p.Scalers[name] = fitScaler(rows, name)
		}
	}

	for _, name := range p.FeatureNames {
		if vocab, ok := p.Vocab[name]; ok {
			for _, value := range vocab {
				p.ColumnNames = append(p.ColumnNames, name+"_"+value)
			}
		} else {
			p.ColumnNames = append(p.ColumnNames, name)
		}
	}

	matrix := make([][]float64, len(rows))
	for i := range rows {
		matrix[i] = p.Vectorize(rows[i])
	}

	forest, err := TrainForest(matrix, labels, cfg)
	if err != nil {
		return nil, err
	}
	p.Forest = forest
	return p, nil
}

// Vectorize maps one input onto the encoded column layout fixed at fit time.
func (p *Pipeline) Vectorize(f domain.StudentFeatures) []float64 {
	out := make([]float64, 0, len(p.ColumnNames))
	for _, name := range p.FeatureNames {
		if vocab, ok := p.Vocab[name]; ok {
			value := rawCategory(f, name)
			if value == "" {
				value = p.Fallback[name]
			}
			for _, cat := range vocab {
				if cat == value {
					out = append(out, 1)
				} else {
					out = append(out, 0)
				}
			}
			continue
		}
		scaler := p.Scalers[name]
		v := rawNumeric(f, name)
		if math.IsNaN(v) {
			v = scaler.Mean
		}
		if scaler.Std == 0 {
			out = append(out, 0)
		} else {
			out = append(out, (v-scaler.Mean)/scaler.Std)
		}
	}
	return out
}

func (p *Pipeline) Predict(f domain.StudentFeatures) (int, error) {
	if p.Forest == nil {
		return 0, fmt.Errorf("pipeline has no trained forest")
	}
	return p.Forest.Predict(p.Vectorize(f))
}

func (p *Pipeline) PredictProba(f domain.StudentFeatures) (float64, error) {
	if p.Forest == nil {
		return 0, fmt.Errorf("pipeline has no trained forest")
	}
	return p.Forest.PredictProba(p.Vectorize(f))
}

// FeatureImportances returns encoded-column importances ranked descending.
func (p *Pipeline) FeatureImportances() []domain.FeatureImportance {
	if p.Forest == nil || len(p.Forest.Importances) != len(p.ColumnNames) {
		return nil
	}
	out := make([]domain.FeatureImportance, len(p.ColumnNames))
	for i, name := range p.ColumnNames {
		out[i] = domain.FeatureImportance{Feature: name, Importance: p.Forest.Importances[i]}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Importance > out[j].Importance })
	return out
}

// Encode serializes the pipeline into the base64 blob stored as the model
// artifact payload.
func (p *Pipeline) Encode() (string, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(p); err != nil {
		return "", fmt.Errorf("encode pipeline: %w", err)
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// DecodePipeline reconstitutes a pipeline from a stored artifact payload.
func DecodePipeline(payload string) (*Pipeline, error) {
	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("decode payload base64: %w", err)
	}
	var p Pipeline
	if err := gob.NewDecoder(bytes.NewReader(raw)).Decode(&p); err != nil {
		return nil, fmt.Errorf("decode pipeline gob: %w", err)
	}
	if p.Forest == nil || len(p.Forest.Trees) == 0 {
		return nil, fmt.Errorf("decoded pipeline has no trained forest")
	}
	return &p, nil
}

func isCategorical(name string) bool {
	return name == "Field_of_Study" || name == "Gender"
}

func rawNumeric(f domain.StudentFeatures, name string) float64 {
	switch name {
	case "University_GPA":
		return f.UniversityGPA
	case "Internships_Completed":
		return float64(f.InternshipsCompleted)
	case "Soft_Skills_Score":
		return f.SoftSkillsScore
	case "Networking_Score":
		return f.NetworkingScore
	}
	return math.NaN()
}

func rawCategory(f domain.StudentFeatures, name string) string {
	switch name {
	case "Field_of_Study":
		return f.FieldOfStudy
	case "Gender":
		return f.Gender
	}
	return ""
}

func fitScaler(rows []domain.StudentFeatures, name string) Scaler {
	sum := 0.0
	n := 0
	for _, row := range rows {
		v := rawNumeric(row, name)
		if math.IsNaN(v) {
			continue
		}
		sum += v
		n++
	}
	if n == 0 {
		return Scaler{}
	}
	mean := sum / float64(n)

	variance := 0.0
	for _, row := range rows {
		v := rawNumeric(row, name)
		if math.IsNaN(v) {
			continue
		}
		variance += (v - mean) * (v - mean)
	}
	return Scaler{Mean: mean, Std: math.Sqrt(variance / float64(n))}
}

func fitCategory(rows []domain.StudentFeatures, name string) ([]string, string) {
	counts := make(map[string]int)
	for _, row := range rows {
		value := rawCategory(row, name)
		if value == "" {
			continue
		}
		counts[value]++
	}

	vocab := make([]string, 0, len(counts))
	for value := range counts {
		vocab = append(vocab, value)
	}
	sort.Strings(vocab)

	mode := ""
	best := -1
	for _, value := range vocab {
		if counts[value] > best {
			best = counts[value]
			mode = value
		}
	}
	return vocab, mode
}
