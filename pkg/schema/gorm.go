package schema

import (
	"gorm.io/gorm"
)

// MainModels returns the models of the main catalog target for GORM
// AutoMigrate.
func MainModels() []interface{} {
	return []interface{}{
		&Paper{},
		&Author{},
		&PaperAuthor{},
		&Task{},
		&PaperTask{},
		&MethodArea{},
		&MethodCategory{},
		&Method{},
		&MethodCategoryRel{},
		&PaperMethod{},
		&Dataset{},
		&Evaluation{},
		&CodeLink{},
	}
}

// EvalModels returns the models of the evaluation target for GORM
// AutoMigrate.
func EvalModels() []interface{} {
	return []interface{}{
		&EvalTask{},
		&Subtask{},
		&BenchmarkDataset{},
		&ResultRow{},
		&Metric{},
		&ResultCodeLink{},
		&ModelLink{},
	}
}

// ModelsFor returns the model set for a target name. Unknown targets
// get the main set.
func ModelsFor(target string) []interface{} {
	if target == "eval" {
		return EvalModels()
	}
	return MainModels()
}

// Migrate runs GORM AutoMigrate to create or update the schema of one
// target.
func Migrate(db *gorm.DB, target string) error {
	return db.AutoMigrate(ModelsFor(target)...)
}
