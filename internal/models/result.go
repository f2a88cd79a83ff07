package models

type MatchRequest struct {
	CVText  string     `json:"cvText" validate:"notblank"`
	JobText string     `json:"jobText" validate:"notblank"`
	CV      *ParsedCV  `json:"cv,omitempty"`
	Job     *ParsedJob `json:"job,omitempty"`
}

// ReportResponse is the JSON form of POST /api/report.
type ReportResponse struct {
	Report string       `json:"report"`
	Result *MatchResult `json:"result"`
}

type ErrorResponse struct {
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
}

type HealthResponse struct {
	Status    string `json:"status"`
	Time      string `json:"time"`
	Embedding bool   `json:"embedding"`
}
