package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"

	"career-predictor-service/internal/config"
	"career-predictor-service/internal/ml"
	"career-predictor-service/internal/repository"
	"career-predictor-service/internal/usecase"
)

func main() {
	csvPath := flag.String("data", "data/student_career_data.csv", "path to the student career CSV")
	numTrees := flag.Int("trees", 200, "number of trees in the forest")
	maxDepth := flag.Int("max_depth", 10, "max tree depth")
	minSplit := flag.Int("min_samples_split", 5, "min samples to split a node")
	seed := flag.Int64("seed", 42, "training seed")
	testRatio := flag.Float64("test_ratio", 0.2, "hold-out fraction for evaluation")
	describe := flag.Bool("describe", false, "print dataset summary and exit")
	flag.Parse()

	dataset, err := ml.LoadCSV(*csvPath)
	if err != nil {
		log.Fatalf("load dataset: %v", err)
	}

	if *describe {
		fmt.Print(dataset.Describe())
		return
	}

	train, test := dataset.Split(*testRatio, *seed)
	log.Infof("training set: %d samples, test set: %d samples", len(train.Rows), len(test.Rows))

	forestCfg := ml.ForestConfig{
		NumTrees:        *numTrees,
		MaxDepth:        *maxDepth,
		MinSamplesSplit: *minSplit,
		Seed:            *seed,
	}

	pipeline, err := ml.Fit(train.Rows, train.Labels, forestCfg)
	if err != nil {
		log.Fatalf("train pipeline: %v", err)
	}

	eval, err := evaluateHoldout(pipeline, test)
	if err != nil {
		log.Fatalf("evaluate pipeline: %v", err)
	}
	log.Infof("accuracy=%.4f precision=%.4f recall=%.4f f1=%.4f roc_auc=%.4f",
		eval.Accuracy, eval.Precision, eval.Recall, eval.F1Score, eval.ROCAUC)

	if err := saveArtifacts(pipeline, eval); err != nil {
		log.Fatalf("save artifacts: %v", err)
	}

	fmt.Println("training complete, model and metrics saved")
}

func evaluateHoldout(pipeline *ml.Pipeline, test *ml.Dataset) (*ml.Evaluation, error) {
	predicted := make([]int, len(test.Rows))
	probabilities := make([]float64, len(test.Rows))
	for i, row := range test.Rows {
		label, err := pipeline.Predict(row)
		if err != nil {
			return nil, err
		}
		proba, err := pipeline.PredictProba(row)
		if err != nil {
			return nil, err
		}
		predicted[i] = label
		probabilities[i] = proba
	}
	return ml.Evaluate(test.Labels, predicted, probabilities)
}

func saveArtifacts(pipeline *ml.Pipeline, eval *ml.Evaluation) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	pool, err := pgxpool.New(context.Background(), cfg.Database.DSN())
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := repository.Migrate(context.Background(), pool); err != nil {
		return err
	}

	trainer := usecase.NewTrainingUseCase(
		repository.NewModelRepository(pool),
		repository.NewMetricsRepository(pool),
	)

	modelID, err := trainer.SaveModel(context.Background(), pipeline)
	if err != nil {
		return err
	}
	log.Infof("model artifact saved with id %d", modelID)

	metricsID, err := trainer.SaveMetrics(context.Background(), eval, pipeline.FeatureImportances())
	if err != nil {
		return err
	}
	log.Infof("metrics snapshot saved with id %d", metricsID)
	return nil
}

func init() {
	log.SetOutput(os.Stdout)
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
}
