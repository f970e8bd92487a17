package importer

// Result reports one import run. "Nothing imported", "some rows rejected" and
// "some rows were duplicates" are three distinct conditions; Success is false
// only when zero rows could be parsed at all.
type Result struct {
	Success        bool       `json:"success"`
	ImportedCount  int        `json:"importedCount"`
	DuplicateCount int        `json:"duplicateCount"`
	TotalProcessed int        `json:"totalProcessed"`
	Errors         []RowError `json:"errors"`
	Warnings       []string   `json:"warnings"`
}
