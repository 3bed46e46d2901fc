package schema

// Models for the evaluation target. The evaluation-tables snapshot is
// a tree: task -> subtasks, task -> benchmark datasets -> leaderboard
// rows -> metrics and links. Junction-free, but each level keeps a
// composite natural key so re-ingestion is idempotent.

// EvalTask is a benchmark task. Natural key: name.
type EvalTask struct {
	ID          int64  `gorm:"column:id;primaryKey;autoIncrement"`
	Name        string `gorm:"column:name;uniqueIndex;size:255"`
	Description string `gorm:"column:description;type:text"`

	// Categories is the JSON-encoded category list from the snapshot.
	Categories string `gorm:"column:categories;type:text"`

	SourceLink string `gorm:"column:source_link;size:512"`
}

// Subtask is a child task. Natural key: (task, name).
type Subtask struct {
	ID          int64  `gorm:"column:id;primaryKey;autoIncrement"`
	TaskID      int64  `gorm:"column:task_id;uniqueIndex:idx_subtasks_task_name"`
	Name        string `gorm:"column:name;uniqueIndex:idx_subtasks_task_name;size:255"`
	Description string `gorm:"column:description;type:text"`
}

// BenchmarkDataset is a dataset benchmarked under a task. Natural
// key: (task, name).
type BenchmarkDataset struct {
	ID          int64  `gorm:"column:id;primaryKey;autoIncrement"`
	TaskID      int64  `gorm:"column:task_id;uniqueIndex:idx_benchmark_datasets_task_name"`
	Name        string `gorm:"column:name;uniqueIndex:idx_benchmark_datasets_task_name;size:255"`
	Description string `gorm:"column:description;type:text"`

	// JSON-encoded lists from the snapshot.
	DatasetLinks     string `gorm:"column:dataset_links;type:text"`
	Subdatasets      string `gorm:"column:subdatasets;type:text"`
	DatasetCitations string `gorm:"column:dataset_citations;type:text"`
}

// ResultRow is one leaderboard row; it belongs to exactly one
// (task, dataset) pair. Natural key: (task, dataset, model name).
type ResultRow struct {
	ID        int64 `gorm:"column:id;primaryKey;autoIncrement"`
	TaskID    int64 `gorm:"column:task_id;uniqueIndex:idx_result_rows_key"`
	DatasetID int64 `gorm:"column:dataset_id;uniqueIndex:idx_result_rows_key"`

	ModelName string `gorm:"column:model_name;uniqueIndex:idx_result_rows_key;size:255"`

	PaperURL   string `gorm:"column:paper_url;size:512"`
	PaperTitle string `gorm:"column:paper_title"`
	PaperDate  string `gorm:"column:paper_date;size:32"`

	UsesAdditionalData bool `gorm:"column:uses_additional_data"`
}

// Metric is one metric-name/value pair of a leaderboard row. Values
// stay free-form text; the snapshot mixes numbers, percentages and
// annotations. Natural key: (row, name).
type Metric struct {
	ID    int64  `gorm:"column:id;primaryKey;autoIncrement"`
	RowID int64  `gorm:"column:row_id;uniqueIndex:idx_metrics_row_name"`
	Name  string `gorm:"column:name;uniqueIndex:idx_metrics_row_name;size:255"`
	Value string `gorm:"column:value;size:255"`
}

// ResultCodeLink is a code repository attached to a leaderboard row.
// Natural key: (row, url).
type ResultCodeLink struct {
	ID    int64  `gorm:"column:id;primaryKey;autoIncrement"`
	RowID int64  `gorm:"column:row_id;uniqueIndex:idx_result_code_links_row_url"`
	URL   string `gorm:"column:url;uniqueIndex:idx_result_code_links_row_url;size:512"`
	Title string `gorm:"column:title"`
}

// ModelLink is a model artifact attached to a leaderboard row.
// Natural key: (row, url).
type ModelLink struct {
	ID    int64  `gorm:"column:id;primaryKey;autoIncrement"`
	RowID int64  `gorm:"column:row_id;uniqueIndex:idx_model_links_row_url"`
	URL   string `gorm:"column:url;uniqueIndex:idx_model_links_row_url;size:512"`
	Title string `gorm:"column:title"`
}
