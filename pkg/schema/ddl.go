package schema

// Table names follow the original snapshot-derived schema rather than
// GORM pluralization, so analytical queries written against the
// Python-era databases keep working.

func (Paper) TableName() string             { return "papers" }
func (Author) TableName() string            { return "authors" }
func (PaperAuthor) TableName() string       { return "paper_authors" }
func (Task) TableName() string              { return "tasks" }
func (PaperTask) TableName() string         { return "paper_tasks" }
func (MethodArea) TableName() string        { return "method_areas" }
func (MethodCategory) TableName() string    { return "method_categories" }
func (Method) TableName() string            { return "methods" }
func (MethodCategoryRel) TableName() string { return "method_categories_rel" }
func (PaperMethod) TableName() string       { return "paper_methods" }
func (Dataset) TableName() string           { return "datasets" }
func (Evaluation) TableName() string        { return "evaluations" }
func (CodeLink) TableName() string          { return "code_links" }

func (EvalTask) TableName() string         { return "tasks" }
func (Subtask) TableName() string          { return "subtasks" }
func (BenchmarkDataset) TableName() string { return "datasets" }
func (ResultRow) TableName() string        { return "result_rows" }
func (Metric) TableName() string           { return "metrics" }
func (ResultCodeLink) TableName() string   { return "code_links" }
func (ModelLink) TableName() string        { return "model_links" }

// IndexDDL returns the secondary-index statements for one target.
// Natural-key unique indexes are created by AutoMigrate; these cover
// the analytical access paths and junction reverse lookups. All
// statements are idempotent.
func IndexDDL(target string) []string {
	if target == "eval" {
		return []string{
			"CREATE INDEX IF NOT EXISTS idx_result_rows_paper_title ON result_rows(paper_title);",
			"CREATE INDEX IF NOT EXISTS idx_result_rows_paper_date ON result_rows(paper_date);",
			"CREATE INDEX IF NOT EXISTS idx_metrics_name ON metrics(name);",
		}
	}
	return []string{
		"CREATE INDEX IF NOT EXISTS idx_papers_title ON papers(title);",
		"CREATE INDEX IF NOT EXISTS idx_papers_date ON papers(date);",
		"CREATE INDEX IF NOT EXISTS idx_papers_arxiv ON papers(arxiv_id);",
		"CREATE INDEX IF NOT EXISTS idx_methods_name ON methods(name);",
		"CREATE INDEX IF NOT EXISTS idx_methods_year ON methods(introduced_year);",
		"CREATE INDEX IF NOT EXISTS idx_methods_num_papers ON methods(num_papers);",
		"CREATE INDEX IF NOT EXISTS idx_datasets_name ON datasets(name);",
		"CREATE INDEX IF NOT EXISTS idx_paper_authors_author ON paper_authors(author_id);",
		"CREATE INDEX IF NOT EXISTS idx_paper_tasks_task ON paper_tasks(task_id);",
		"CREATE INDEX IF NOT EXISTS idx_paper_methods_method ON paper_methods(method_id);",
		"CREATE INDEX IF NOT EXISTS idx_method_categories_rel_category ON method_categories_rel(category_id);",
		"CREATE INDEX IF NOT EXISTS idx_code_links_paper_url ON code_links(paper_url);",
	}
}
