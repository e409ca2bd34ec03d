// File path: internal/api/types.go
package api

// queryRequest is the JSON body accepted by POST /v1/query.
type queryRequest struct {
	Query          string   `json:"query"`
	TopN           int      `json:"top_n"`
	IncludeSummary *bool    `json:"include_summary"`
	SourceFilter   []string `json:"source_filter"`
}

// translationRequest is the JSON body accepted by POST /v1/translate.
type translationRequest struct {
	Text           string `json:"text"`
	TargetLanguage string `json:"target_language"`
}
