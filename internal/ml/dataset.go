package ml

import (
	"encoding/csv"
	"fmt"
	"math"
	"math/rand"
	"os"
	"strconv"
	"strings"

	"career-predictor-service/internal/domain"
)

// Career success threshold over the raw dataset: a graduate counts as
// successful when starting salary and self-reported satisfaction are both
// above these cut-offs.
const (
	successSalary       = 50000.0
	successSatisfaction = 7.0
)

// Dataset is the loaded training data with derived binary labels.
type Dataset struct {
	Rows   []domain.StudentFeatures
	Labels []int
}

// LoadCSV reads the student career CSV and derives the Career_Success target.
// Rows missing the salary or satisfaction columns are skipped; missing feature
// values are kept as NaN / empty and imputed by the pipeline at fit time.
// Internships_Completed lives in an int field and cannot carry the NaN
// sentinel, so its missing cells are filled with the column mean here.
func LoadCSV(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read dataset header: %w", err)
	}

	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.TrimSpace(name)] = i
	}
	required := append([]string{"Starting_Salary", "Career_Satisfaction"}, domain.FeatureOrder...)
	for _, name := range required {
		if _, ok := col[name]; !ok {
			return nil, fmt.Errorf("dataset missing column %q", name)
		}
	}

	ds := &Dataset{}
	var missingInternships []int
	internshipSum, internshipCount := 0.0, 0
	for {
		record, err := reader.Read()
		if err != nil {
			break
		}
		salary, err1 := strconv.ParseFloat(strings.TrimSpace(record[col["Starting_Salary"]]), 64)
		satisfaction, err2 := strconv.ParseFloat(strings.TrimSpace(record[col["Career_Satisfaction"]]), 64)
		if err1 != nil || err2 != nil {
			continue
		}

		row := domain.StudentFeatures{
			UniversityGPA:   parseFloatOrNaN(record[col["University_GPA"]]),
			FieldOfStudy:    strings.TrimSpace(record[col["Field_of_Study"]]),
			Gender:          strings.TrimSpace(record[col["Gender"]]),
			SoftSkillsScore: parseFloatOrNaN(record[col["Soft_Skills_Score"]]),
			NetworkingScore: parseFloatOrNaN(record[col["Networking_Score"]]),
		}
		if v, err := strconv.ParseFloat(strings.TrimSpace(record[col["Internships_Completed"]]), 64); err == nil {
			row.InternshipsCompleted = int(v)
			internshipSum += v
			internshipCount++
		} else {
			missingInternships = append(missingInternships, len(ds.Rows))
		}

		label := 0
		if salary >= successSalary && satisfaction >= successSatisfaction {
			label = 1
		}
		ds.Rows = append(ds.Rows, row)
		ds.Labels = append(ds.Labels, label)
	}

	if len(ds.Rows) == 0 {
		return nil, fmt.Errorf("dataset %s has no usable rows", path)
	}

	if internshipCount > 0 {
		fill := int(math.Round(internshipSum / float64(internshipCount)))
		for _, idx := range missingInternships {
			ds.Rows[idx].InternshipsCompleted = fill
		}
	}
	return ds, nil
}

// Split partitions the dataset into train and test sets, stratified by label,
// deterministically for a fixed seed.
func (ds *Dataset) Split(testRatio float64, seed int64) (train, test *Dataset) {
	if testRatio <= 0 || testRatio >= 1 {
		testRatio = 0.2
	}
	rng := rand.New(rand.NewSource(seed))

	byLabel := map[int][]int{}
	for i, label := range ds.Labels {
		byLabel[label] = append(byLabel[label], i)
	}

	train = &Dataset{}
	test = &Dataset{}
	for _, label := range []int{0, 1} {
		indices := byLabel[label]
		rng.Shuffle(len(indices), func(i, j int) {
			indices[i], indices[j] = indices[j], indices[i]
		})
		cut := int(float64(len(indices)) * testRatio)
		for i, idx := range indices {
			dst := train
			if i < cut {
				dst = test
			}
			dst.Rows = append(dst.Rows, ds.Rows[idx])
			dst.Labels = append(dst.Labels, ds.Labels[idx])
		}
	}
	return train, test
}

// Describe returns a human-readable summary of the dataset for the trainer's
// describe mode.
func (ds *Dataset) Describe() string {
	pos := 0
	for _, label := range ds.Labels {
		pos += label
	}

	var b strings.Builder
	fmt.Fprintf(&b, "records: %d\n", len(ds.Rows))
	fmt.Fprintf(&b, "target distribution: success=%d not_success=%d\n", pos, len(ds.Rows)-pos)
	for _, name := range domain.FeatureOrder {
		if isCategorical(name) {
			vocab, _ := fitCategory(ds.Rows, name)
			fmt.Fprintf(&b, "%s: %d categories %v\n", name, len(vocab), vocab)
		} else {
			s := fitScaler(ds.Rows, name)
			fmt.Fprintf(&b, "%s: mean=%.4f std=%.4f\n", name, s.Mean, s.Std)
		}
	}
	return b.String()
}

func parseFloatOrNaN(raw string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return math.NaN()
	}
	return v
}
