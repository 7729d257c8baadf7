package model

import "time"

// JobStatus is the lifecycle state of a transcript-processing job.
type JobStatus string

const (
	JobQueued     JobStatus = "queued"
	JobExtracting JobStatus = "extracting"
	JobMatching   JobStatus = "matching"
	JobDone       JobStatus = "done"
	JobFailed     JobStatus = "failed"
)

// TokenUsage reports the document-understanding call's token consumption
// and estimated cost in USD.
type TokenUsage struct {
	InputTokens         int     `json:"input_tokens"`
	OutputTokens        int     `json:"output_tokens"`
	CacheWriteTokens    int     `json:"cache_write_tokens"`
	CacheReadTokens     int     `json:"cache_read_tokens"`
	EstimatedCostDollar float64 `json:"estimated_cost_usd"`
}

// JobState is the Redis-backed state document for one job.
type JobState struct {
	ID        string      `json:"id"`
	Status    JobStatus   `json:"status"`
	FileName  string      `json:"file_name"`
	FilePath  string      `json:"file_path,omitempty"`
	Error     string      `json:"error,omitempty"`
	Usage     *TokenUsage `json:"usage,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// EnrichRequest is the synchronous enrichment payload: transcript data
// already extracted elsewhere, to be matched without a document call.
type EnrichRequest struct {
	Terms []TranscriptTerm `json:"terms" binding:"required,min=1"`
}

// FeedbackRequest is a reviewer's comment on a processed transcript.
type FeedbackRequest struct {
	Comment string `json:"comment" binding:"required,min=1,max=4000"`
}
