package ioingest

// Record types mirroring the JSON snapshot files. Field names follow
// the published snapshots; absent fields decode to zero values.

// PaperRecord is one entry of papers-with-abstracts.json.
type PaperRecord struct {
	PaperURL         string         `json:"paper_url"`
	ArxivID          string         `json:"arxiv_id"`
	NipsID           string         `json:"nips_id"`
	OpenreviewID     string         `json:"openreview_id"`
	Title            string         `json:"title"`
	Abstract         string         `json:"abstract"`
	ShortAbstract    string         `json:"short_abstract"`
	URLAbs           string         `json:"url_abs"`
	URLPDF           string         `json:"url_pdf"`
	Proceeding       string         `json:"proceeding"`
	Date             string         `json:"date"`
	ConferenceURLAbs string         `json:"conference_url_abs"`
	ConferenceURLPDF string         `json:"conference_url_pdf"`
	Conference       string         `json:"conference"`
	ReproducesPaper  string         `json:"reproduces_paper"`
	Authors          []string       `json:"authors"`
	Tasks            []string       `json:"tasks"`
	Methods          []MethodRecord `json:"methods"`
}

// MethodRecord is one entry of methods.json, and also the shape of
// the inline method mentions inside paper records.
type MethodRecord struct {
	URL            string             `json:"url"`
	Name           string             `json:"name"`
	FullName       string             `json:"full_name"`
	Description    string             `json:"description"`
	Paper          *MethodPaperRef    `json:"paper"`
	IntroducedYear *int               `json:"introduced_year"`
	SourceURL      string             `json:"source_url"`
	SourceTitle    string             `json:"source_title"`
	CodeSnippetURL string             `json:"code_snippet_url"`
	NumPapers      *int               `json:"num_papers"`
	Collections    []CollectionRecord `json:"collections"`
}

// MethodPaperRef is the provenance paper of a method.
type MethodPaperRef struct {
	Title   string `json:"title"`
	ArxivID string `json:"arxiv_id"`
	URLAbs  string `json:"url_abs"`
	URLPDF  string `json:"url_pdf"`
	URL     string `json:"url"`
}

// CollectionRecord places a method in the area/category taxonomy.
type CollectionRecord struct {
	AreaID     string `json:"area_id"`
	Area       string `json:"area"`
	Collection string `json:"collection"`
}

// DatasetRecord is one entry of datasets.json.
type DatasetRecord struct {
	URL              string `json:"url"`
	Name             string `json:"name"`
	FullName         string `json:"full_name"`
	Homepage         string `json:"homepage"`
	Description      string `json:"description"`
	ShortDescription string `json:"short_description"`
	ParentDataset    string `json:"parent_dataset"`
	Image            string `json:"image"`
}

// CodeLinkRecord is one entry of links-between-papers-and-code.json.
type CodeLinkRecord struct {
	PaperURL         string `json:"paper_url"`
	PaperTitle       string `json:"paper_title"`
	PaperArxivID     string `json:"paper_arxiv_id"`
	PaperURLAbs      string `json:"paper_url_abs"`
	PaperURLPDF      string `json:"paper_url_pdf"`
	RepoURL          string `json:"repo_url"`
	IsOfficial       bool   `json:"is_official"`
	MentionedInPaper bool   `json:"mentioned_in_paper"`
}

// EvaluationRecord is one entry of evaluation-tables.json. The main
// target uses only task, description and categories; the eval target
// walks the full tree.
type EvaluationRecord struct {
	Task        string            `json:"task"`
	Description string            `json:"description"`
	Categories  []string          `json:"categories"`
	SourceLink  string            `json:"source_link"`
	Subtasks    []SubtaskRecord   `json:"subtasks"`
	Datasets    []BenchmarkRecord `json:"datasets"`
}

// SubtaskRecord is a nested subtask of an evaluation entry.
type SubtaskRecord struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// BenchmarkRecord is one benchmark dataset with its leaderboard.
type BenchmarkRecord struct {
	Dataset          string   `json:"dataset"`
	Description      string   `json:"description"`
	DatasetLinks     []any    `json:"dataset_links"`
	Subdatasets      []any    `json:"subdatasets"`
	DatasetCitations []any    `json:"dataset_citations"`
	Sota             SotaData `json:"sota"`
}

// SotaData holds the leaderboard rows of a benchmark.
type SotaData struct {
	Metrics []string  `json:"metrics"`
	Rows    []SotaRow `json:"rows"`
}

// SotaRow is one leaderboard result.
type SotaRow struct {
	PaperURL           string         `json:"paper_url"`
	PaperTitle         string         `json:"paper_title"`
	PaperDate          string         `json:"paper_date"`
	ModelName          string         `json:"model_name"`
	UsesAdditionalData bool           `json:"uses_additional_data"`
	Metrics            map[string]any `json:"metrics"`
	CodeLinks          []LinkRecord   `json:"code_links"`
	ModelLinks         []LinkRecord   `json:"model_links"`
}

// LinkRecord is a titled URL inside a leaderboard row.
type LinkRecord struct {
	URL   string `json:"url"`
	Title string `json:"title"`
}
