package config

// Stages groups the settings of the pipeline stages that follow ingestion.
type Stages struct {
	DataValidation     *DataValidationConfig     `yaml:"dataValidation,omitempty"`
	DataTransformation *DataTransformationConfig `yaml:"dataTransformation,omitempty"`
	ModelTrainer       *ModelTrainerConfig       `yaml:"modelTrainer,omitempty"`
	ModelEvaluation    *ModelEvaluationConfig    `yaml:"modelEvaluation,omitempty"`
}

type DataValidationConfig struct {
	RootDir    string `yaml:"rootDir"`
	MergedData string `yaml:"mergedData"`
	SchemaFile string `yaml:"schemaFile"`
	StatusFile string `yaml:"statusFile"`
	ReportFile string `yaml:"reportFile"`
}

type DataTransformationConfig struct {
	RootDir          string  `yaml:"rootDir"`
	DataPath         string  `yaml:"dataPath"`
	TrainData        string  `yaml:"trainData"`
	TestData         string  `yaml:"testData"`
	TransformersPath string  `yaml:"transformersPath"`
	TestSize         float64 `yaml:"testSize"`
	RandomState      int     `yaml:"randomState"`
	StratifyColumn   string  `yaml:"stratifyColumn"`
}

type ModelTrainerConfig struct {
	RootDir          string         `yaml:"rootDir"`
	TrainData        string         `yaml:"trainData"`
	TestData         string         `yaml:"testData"`
	TransformersPath string         `yaml:"transformersPath"`
	ModelPath        string         `yaml:"modelPath"`
	ModelName        string         `yaml:"modelName"`
	RandomState      int            `yaml:"randomState"`
	Params           map[string]any `yaml:"params,omitempty"`
}

type ModelEvaluationConfig struct {
	RootDir          string `yaml:"rootDir"`
	TestData         string `yaml:"testData"`
	ModelPath        string `yaml:"modelPath"`
	TransformersPath string `yaml:"transformersPath"`
	MetricsFile      string `yaml:"metricsFile"`
	MLflowURI        string `yaml:"mlflowURI"`
}
