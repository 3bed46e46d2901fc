// Package schema provides database schema models for pwcdb.
// Models mirror the Papers-with-Code snapshot fields; every entity
// table carries exactly one natural-key uniqueness constraint so that
// re-ingesting a snapshot never duplicates entities.
package schema

// Paper is a catalog paper. Natural key: PaperURL.
type Paper struct {
	ID int64 `gorm:"column:id;primaryKey;autoIncrement"`

	// PaperURL is the canonical catalog URL and the natural key.
	PaperURL string `gorm:"column:paper_url;uniqueIndex;size:512"`

	// ArxivID is set for papers mirrored from arXiv.
	ArxivID string `gorm:"column:arxiv_id;size:64"`

	// NipsID is set for NeurIPS proceedings papers.
	NipsID string `gorm:"column:nips_id;size:64"`

	// OpenReviewID is set for papers reviewed on OpenReview.
	OpenReviewID string `gorm:"column:openreview_id;size:64"`

	Title string `gorm:"column:title"`

	Abstract string `gorm:"column:abstract;type:text"`

	// ShortAbstract is the truncated listing abstract.
	ShortAbstract string `gorm:"column:short_abstract;type:text"`

	// URLAbs and URLPDF point to the abstract page and the PDF.
	URLAbs string `gorm:"column:url_abs;size:512"`
	URLPDF string `gorm:"column:url_pdf;size:512"`

	// Proceeding is the publication venue identifier.
	Proceeding string `gorm:"column:proceeding;size:255"`

	// Date is the publication date as found in the snapshot
	// (YYYY-MM-DD, not validated).
	Date string `gorm:"column:date;size:32"`

	Conference       string `gorm:"column:conference;size:255"`
	ConferenceURLAbs string `gorm:"column:conference_url_abs;size:512"`
	ConferenceURLPDF string `gorm:"column:conference_url_pdf;size:512"`

	// ReproducesPaper references a reproduced paper by URL; a soft
	// reference, not enforced as a foreign key.
	ReproducesPaper string `gorm:"column:reproduces_paper;size:512"`
}

// Author is a paper author. Natural key: display name. Two authors
// with identical names collapse - an accepted source-data limitation.
type Author struct {
	ID   int64  `gorm:"column:id;primaryKey;autoIncrement"`
	Name string `gorm:"column:name;uniqueIndex;size:255"`
}

// PaperAuthor joins papers and authors; AuthorOrder preserves the
// byline position.
type PaperAuthor struct {
	PaperID     int64 `gorm:"column:paper_id;primaryKey"`
	AuthorID    int64 `gorm:"column:author_id;primaryKey"`
	AuthorOrder int   `gorm:"column:author_order"`
}

// Task is a research problem category. Natural key: name.
type Task struct {
	ID   int64  `gorm:"column:id;primaryKey;autoIncrement"`
	Name string `gorm:"column:name;uniqueIndex;size:255"`
}

// PaperTask joins papers and tasks.
type PaperTask struct {
	PaperID int64 `gorm:"column:paper_id;primaryKey"`
	TaskID  int64 `gorm:"column:task_id;primaryKey"`
}

// MethodArea is the top level of the method taxonomy
// (e.g. "Computer Vision"). Natural key: AreaName.
type MethodArea struct {
	ID int64 `gorm:"column:id;primaryKey;autoIncrement"`

	// AreaID is the source identifier of the area ("computer-vision").
	AreaID string `gorm:"column:area_id;size:128"`

	AreaName string `gorm:"column:area_name;uniqueIndex;size:255"`
}

// MethodCategory is the second taxonomy level; a category belongs to
// exactly one area. Natural key: (area, name).
type MethodCategory struct {
	ID     int64  `gorm:"column:id;primaryKey;autoIncrement"`
	AreaID int64  `gorm:"column:area_id;uniqueIndex:idx_method_categories_area_name"`
	Name   string `gorm:"column:name;uniqueIndex:idx_method_categories_area_name;size:255"`
}

// Method is a catalog method. Natural key: canonical URL. Name and
// FullName are secondary resolvable keys used by the relink stage;
// they are not unique.
type Method struct {
	ID int64 `gorm:"column:id;primaryKey;autoIncrement"`

	URL string `gorm:"column:url;uniqueIndex;size:512"`

	Name     string `gorm:"column:name;size:255"`
	FullName string `gorm:"column:full_name;size:512"`

	Description string `gorm:"column:description;type:text"`

	// IntroducedYear is filled by the enrichment pass.
	IntroducedYear int `gorm:"column:introduced_year"`

	// NumPapers is derived from paper_methods, never trusted from the
	// snapshot.
	NumPapers int `gorm:"column:num_papers"`

	// Provenance of the introducing paper.
	PaperTitle   string `gorm:"column:paper_title"`
	PaperArxivID string `gorm:"column:paper_arxiv_id;size:64"`
	PaperURLAbs  string `gorm:"column:paper_url_abs;size:512"`
	PaperURLPDF  string `gorm:"column:paper_url_pdf;size:512"`
	PaperURL     string `gorm:"column:paper_url;size:512"`

	// SourceURL, SourceTitle and CodeSnippetURL are filled by the
	// enrichment pass.
	SourceURL      string `gorm:"column:source_url;size:512"`
	SourceTitle    string `gorm:"column:source_title"`
	CodeSnippetURL string `gorm:"column:code_snippet_url;size:512"`
}

// MethodCategoryRel joins methods and categories; a method may belong
// to multiple categories across areas.
type MethodCategoryRel struct {
	MethodID   int64 `gorm:"column:method_id;primaryKey"`
	CategoryID int64 `gorm:"column:category_id;primaryKey"`
}

// PaperMethod joins papers and methods. The relink stage owns this
// table: it is rebuilt clear-and-reinsert from the papers snapshot.
type PaperMethod struct {
	PaperID  int64 `gorm:"column:paper_id;primaryKey"`
	MethodID int64 `gorm:"column:method_id;primaryKey"`
}

// Dataset is a catalog dataset. Natural key: URL.
type Dataset struct {
	ID int64 `gorm:"column:id;primaryKey;autoIncrement"`

	URL string `gorm:"column:url;uniqueIndex;size:512"`

	Name     string `gorm:"column:name;size:255"`
	FullName string `gorm:"column:full_name;size:512"`

	// Homepage is empty for many spam entries; the structural spam
	// rule keys on it.
	Homepage string `gorm:"column:homepage;size:512"`

	Description      string `gorm:"column:description;type:text"`
	ShortDescription string `gorm:"column:short_description;type:text"`

	// ParentDataset references a parent by name; a soft reference,
	// not enforced as a foreign key.
	ParentDataset string `gorm:"column:parent_dataset;size:255"`

	Image string `gorm:"column:image;size:512"`
}

// Evaluation is the flat per-task summary kept in the main target.
// Natural key: task name.
type Evaluation struct {
	ID          int64  `gorm:"column:id;primaryKey;autoIncrement"`
	Task        string `gorm:"column:task;uniqueIndex;size:255"`
	Description string `gorm:"column:description;type:text"`
}

// CodeLink associates a paper URL with a repository URL. It is not
// required to reference an existing Paper row (may be orphaned).
// Natural key: (paper_url, repo_url).
type CodeLink struct {
	ID int64 `gorm:"column:id;primaryKey;autoIncrement"`

	PaperURL string `gorm:"column:paper_url;uniqueIndex:idx_code_links_paper_repo;size:512"`
	RepoURL  string `gorm:"column:repo_url;uniqueIndex:idx_code_links_paper_repo;size:512"`

	PaperTitle   string `gorm:"column:paper_title"`
	PaperArxivID string `gorm:"column:paper_arxiv_id;size:64"`
	PaperURLAbs  string `gorm:"column:paper_url_abs;size:512"`
	PaperURLPDF  string `gorm:"column:paper_url_pdf;size:512"`

	IsOfficial       bool `gorm:"column:is_official"`
	MentionedInPaper bool `gorm:"column:mentioned_in_paper"`
}
