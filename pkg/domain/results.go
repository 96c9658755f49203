package domain

// Result object keys are fixed: the PySpark pipeline writes exactly two
// outputs per run.
const (
	ResultKeyProblem1 = "problem_1"
	ResultKeyProblem2 = "problem_2"

	ResultObjectProblem1 = "problem_1.json"
	ResultObjectProblem2 = "problem_2.json"
)

// ResultError marks a result key whose object is missing or unparsable.
// Keys resolve independently; one bad object never fails the other.
type ResultError struct {
	Error string `json:"error"`
	Path  string `json:"path"`
}

// ResultsBundle maps the fixed result keys to either parsed JSON content
// (any) or a ResultError marker.
type ResultsBundle struct {
	Status  string         `json:"status"`
	Bucket  string         `json:"bucket"`
	Results map[string]any `json:"results"`
}
