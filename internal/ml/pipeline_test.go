package ml

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"career-predictor-service/internal/domain"
)

func sampleTrainingData() ([]domain.StudentFeatures, []int) {
	rows := make([]domain.StudentFeatures, 0, 40)
	labels := make([]int, 0, 40)
	fields := []string{"Computer Science", "Arts"}
	genders := []string{"Male", "Female"}

	for i := 0; i < 40; i++ {
		gpa := 3.0 + float64(i)*0.15
		row := domain.StudentFeatures{
			UniversityGPA:        gpa,
			FieldOfStudy:         fields[i%2],
			Gender:               genders[i%2],
			InternshipsCompleted: i % 4,
			SoftSkillsScore:      4.0 + float64(i%6),
			NetworkingScore:      3.0 + float64(i%7),
		}
		label := 0
		if gpa >= 6.0 {
			label = 1
		}
		rows = append(rows, row)
		labels = append(labels, label)
	}
	return rows, labels
}

func fitTestPipeline(t *testing.T) *Pipeline {
	t.Helper()
	rows, labels := sampleTrainingData()
	p, err := Fit(rows, labels, ForestConfig{NumTrees: 15, MaxDepth: 4, MinSamplesSplit: 2, Seed: 7})
	require.NoError(t, err)
	return p
}

func TestFitBuildsEncodedColumns(t *testing.T) {
	p := fitTestPipeline(t)

	// 4 numeric columns + 2 fields + 2 genders
	assert.Len(t, p.ColumnNames, 8)
	assert.Equal(t, domain.FeatureOrder, p.FeatureNames)
	assert.Contains(t, p.ColumnNames, "University_GPA")
	assert.Contains(t, p.ColumnNames, "Field_of_Study_Computer Science")
	assert.Contains(t, p.ColumnNames, "Gender_Female")
}

func TestVectorizeKnownAndUnknownCategories(t *testing.T) {
	p := fitTestPipeline(t)

	known := domain.StudentFeatures{
		UniversityGPA: 8.0, FieldOfStudy: "Arts", Gender: "Male",
		InternshipsCompleted: 2, SoftSkillsScore: 7, NetworkingScore: 6,
	}
	vec := p.Vectorize(known)
	require.Len(t, vec, len(p.ColumnNames))

	artsIdx := columnIndex(t, p, "Field_of_Study_Arts")
	csIdx := columnIndex(t, p, "Field_of_Study_Computer Science")
	assert.Equal(t, 1.0, vec[artsIdx])
	assert.Equal(t, 0.0, vec[csIdx])

	// Unknown category encodes as all zeros in its block.
	unknown := known
	unknown.FieldOfStudy = "Astrology"
	vec = p.Vectorize(unknown)
	assert.Equal(t, 0.0, vec[artsIdx])
	assert.Equal(t, 0.0, vec[csIdx])
}

func TestPredictReturnsBinaryLabelAndValidProbability(t *testing.T) {
	p := fitTestPipeline(t)

	inputs := []domain.StudentFeatures{
		{UniversityGPA: 8.8, FieldOfStudy: "Computer Science", Gender: "Male", InternshipsCompleted: 3, SoftSkillsScore: 8, NetworkingScore: 8},
		{UniversityGPA: 3.1, FieldOfStudy: "Arts", Gender: "Female", InternshipsCompleted: 0, SoftSkillsScore: 4, NetworkingScore: 3},
	}
	for _, input := range inputs {
		label, err := p.Predict(input)
		require.NoError(t, err)
		assert.Contains(t, []int{0, 1}, label)

		proba, err := p.PredictProba(input)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, proba, 0.0)
		assert.LessOrEqual(t, proba, 1.0)
	}
}

func TestPredictSeparatesClearCases(t *testing.T) {
	p := fitTestPipeline(t)

	strong := domain.StudentFeatures{UniversityGPA: 8.8, FieldOfStudy: "Computer Science", Gender: "Male", InternshipsCompleted: 3, SoftSkillsScore: 8, NetworkingScore: 8}
	weak := domain.StudentFeatures{UniversityGPA: 3.1, FieldOfStudy: "Arts", Gender: "Female", InternshipsCompleted: 0, SoftSkillsScore: 4, NetworkingScore: 3}

	strongProba, err := p.PredictProba(strong)
	require.NoError(t, err)
	weakProba, err := p.PredictProba(weak)
	require.NoError(t, err)

	assert.Greater(t, strongProba, weakProba)
}

func TestTrainingIsDeterministicForFixedSeed(t *testing.T) {
	rows, labels := sampleTrainingData()
	cfg := ForestConfig{NumTrees: 15, MaxDepth: 4, MinSamplesSplit: 2, Seed: 42}

	first, err := Fit(rows, labels, cfg)
	require.NoError(t, err)
	second, err := Fit(rows, labels, cfg)
	require.NoError(t, err)

	// Fixed seed, fixed data: regression fixture input yields identical output.
	fixture := domain.StudentFeatures{
		UniversityGPA: 8.2, FieldOfStudy: "Computer Science", Gender: "Male",
		InternshipsCompleted: 2, SoftSkillsScore: 7.5, NetworkingScore: 8.0,
	}
	p1, err := first.PredictProba(fixture)
	require.NoError(t, err)
	p2, err := second.PredictProba(fixture)
	require.NoError(t, err)
	assert.Equal(t, p1, p2)

	l1, err := first.Predict(fixture)
	require.NoError(t, err)
	l2, err := second.Predict(fixture)
	require.NoError(t, err)
	assert.Equal(t, l1, l2)
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	p := fitTestPipeline(t)

	payload, err := p.Encode()
	require.NoError(t, err)
	require.NotEmpty(t, payload)

	decoded, err := DecodePipeline(payload)
	require.NoError(t, err)

	input := domain.StudentFeatures{
		UniversityGPA: 7.3, FieldOfStudy: "Arts", Gender: "Female",
		InternshipsCompleted: 1, SoftSkillsScore: 6, NetworkingScore: 5,
	}
	want, err := p.PredictProba(input)
	require.NoError(t, err)
	got, err := decoded.PredictProba(input)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestDecodePipelineRejectsGarbage(t *testing.T) {
	_, err := DecodePipeline("not base64 at all!!!")
	assert.Error(t, err)

	// Valid base64, invalid gob.
	_, err = DecodePipeline("aGVsbG8gd29ybGQ=")
	assert.Error(t, err)
}

func TestFeatureImportancesRankedAndNormalized(t *testing.T) {
	p := fitTestPipeline(t)

	importances := p.FeatureImportances()
	require.Len(t, importances, len(p.ColumnNames))

	total := 0.0
	for i, imp := range importances {
		total += imp.Importance
		if i > 0 {
			assert.GreaterOrEqual(t, importances[i-1].Importance, imp.Importance)
		}
	}
	assert.InDelta(t, 1.0, total, 1e-9)

	// GPA drives the synthetic labels, so it should dominate.
	assert.Equal(t, "University_GPA", importances[0].Feature)
}

func columnIndex(t *testing.T, p *Pipeline, name string) int {
	t.Helper()
	for i, col := range p.ColumnNames {
		if col == name {
			return i
		}
	}
	t.Fatalf("column %q not found", name)
	return -1
}
