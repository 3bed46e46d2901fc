package pwcdb

import "time"

// Stage names the orchestrated build stages for one target.
type Stage string

const (
	StageSchema Stage = "schema"
	StageIngest Stage = "ingest"
	StageRelink Stage = "relink"
	StageClean  Stage = "clean"
	StageIndex  Stage = "index"
	StageStats  Stage = "stats"
)

// TargetState tracks where a target is in its build lifecycle.
type TargetState string

const (
	StateNotStarted    TargetState = "not_started"
	StateSchemaReady   TargetState = "schema_ready"
	StateIngesting     TargetState = "ingesting"
	StateRelinked      TargetState = "relinked"
	StateCleaned       TargetState = "cleaned"
	StateIndexed       TargetState = "indexed"
	StateStatsReported TargetState = "stats_reported"
	StateDone          TargetState = "done"
	StateFailed        TargetState = "failed"
)

// StageResult records the outcome of one stage of one target.
type StageResult struct {
	Stage Stage
	// File is set for per-file ingest sub-stages.
	File     string
	Err      error
	Duration time.Duration
}

// Failed reports whether the stage ended in error.
func (r StageResult) Failed() bool { return r.Err != nil }

// TargetReport accumulates stage results for one database target.
type TargetReport struct {
	Target string
	State  TargetState
	// FailedStage is set when State is StateFailed.
	FailedStage Stage
	Stages      []StageResult
}

// Succeeded reports whether every stage of the target completed.
func (r *TargetReport) Succeeded() bool {
	return r.State == StateDone
}

// BuildReport is the final accounting of a build run.
type BuildReport struct {
	RunID    string
	Started  time.Time
	Duration time.Duration
	Targets  []TargetReport
}

// Succeeded reports whether all requested targets completed.
func (r *BuildReport) Succeeded() bool {
	for i := range r.Targets {
		if !r.Targets[i].Succeeded() {
			return false
		}
	}
	return len(r.Targets) > 0
}

// IngestReport counts the outcome of ingesting one snapshot file.
type IngestReport struct {
	File    string
	Records int
	// Skipped counts records dropped for a missing natural key or a
	// malformed entry.
	Skipped  int
	Entities int
	Links    int
	Duration time.Duration
}

// RelinkReport counts the outcome of a paper-method rebuild.
type RelinkReport struct {
	PapersScanned int
	MentionsSeen  int
	// Unresolved mentions are dropped, never used to fabricate
	// methods; the count keeps the information loss visible.
	Unresolved      int
	UniquePairs     int
	MethodsRelinked int
	Duration        time.Duration
}

// CleanReport carries classification results, grouped for audit.
type CleanReport struct {
	DryRun  bool
	Checked int
	// ByCategory maps rule category to the number of entities it
	// classified.
	ByCategory map[string]int
	// Flagged lists classified entities with the matched rule for
	// audit logging.
	Flagged []FlaggedEntity
	// Removed is zero in dry-run mode.
	Removed      int
	JunctionRows int
	Duration     time.Duration
}

// FlaggedEntity is one audit line of the classification filter.
type FlaggedEntity struct {
	Table    string
	ID       int64
	Name     string
	Category string
	Pattern  string
}

// EnhanceReport counts the outcome of the method enrichment pass.
type EnhanceReport struct {
	MethodsUpdated int
	Areas          int
	Categories     int
	CategoryLinks  int
	Duration       time.Duration
}

// TableCount is one row of the stats report.
type TableCount struct {
	Table string
	Rows  int64
}

// RankedMethod is one leaderboard row of the stats report.
type RankedMethod struct {
	Name           string
	FullName       string
	NumPapers      int
	IntroducedYear int
}

// StatsReport carries derived statistics; nothing here is persisted.
type StatsReport struct {
	Counts     []TableCount
	TopMethods []RankedMethod
}
