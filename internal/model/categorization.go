package model

// Candidate is a ranked category suggestion for a description.
// Confidence is min(score/10, 1): a fixed linear heuristic, not a probability.
type Candidate struct {
	CategoryName    string       `json:"category_name"`
	CategoryType    CategoryType `json:"category_type"`
	MatchedKeywords []string     `json:"matched_keywords"`
	CategoryID      int64        `json:"category_id"`
	Score           int          `json:"score"`
	Confidence      float64      `json:"confidence"`
}

// BatchStatus is the outcome of categorizing one transaction in a batch.
type BatchStatus string

// Batch status constants.
const (
	StatusCategorized   BatchStatus = "categorized"
	StatusUncategorized BatchStatus = "uncategorized"
)

// BatchDetail reports what happened to one transaction of a batch.
type BatchDetail struct {
	Description       string      `json:"description" csv:"description"`
	SuggestedCategory string      `json:"suggested_category,omitempty" csv:"suggested_category"`
	Status            BatchStatus `json:"status" csv:"status"`
	TransactionID     int64       `json:"transaction_id" csv:"transaction_id"`
	CategoryID        int64       `json:"-" csv:"category_id"`
}

// BatchResult summarizes a batch categorization run.
type BatchResult struct {
	Details        []BatchDetail `json:"details"`
	TotalProcessed int           `json:"total_processed"`
	Categorized    int           `json:"categorized"`
	Uncategorized  int           `json:"uncategorized"`
}

// NewBatchResult returns an empty result with a non-nil details list.
func NewBatchResult() *BatchResult {
	return &BatchResult{Details: []BatchDetail{}}
}

// Record appends a detail and updates the counters.
func (r *BatchResult) Record(detail BatchDetail) {
	r.TotalProcessed++
	switch detail.Status {
	case StatusCategorized:
		r.Categorized++
	default:
		r.Uncategorized++
	}
	r.Details = append(r.Details, detail)
}
