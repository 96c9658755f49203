package domain

// JobState mirrors the Dataproc job lifecycle as reported by the provider.
// The gateway only observes these states, it never drives transitions beyond
// the initial submission.
type JobState string

const (
	StatePending   JobState = "PENDING"
	StateRunning   JobState = "RUNNING"
	StateDone      JobState = "DONE"
	StateError     JobState = "ERROR"
	StateCancelled JobState = "CANCELLED"
)

// Terminal reports whether the state is one the provider will never leave.
func (s JobState) Terminal() bool {
	switch s {
	case StateDone, StateError, StateCancelled:
		return true
	}
	return false
}

// SubmitJobRequest is the body of POST /create/job.
type SubmitJobRequest struct {
	MainPythonFile string   `json:"main_python_file"`
	Args           []string `json:"args,omitempty"`
	ClusterName    string   `json:"cluster_name,omitempty"`
}

// SubmitJobResponse echoes the provider-assigned job id and the placement
// actually used for the submission.
type SubmitJobResponse struct {
	Status   string `json:"status"`
	Message  string `json:"message"`
	JobID    string `json:"job_id"`
	Cluster  string `json:"cluster"`
	MainFile string `json:"main_file"`
}

// JobStatusView is a read-only projection of the provider's job resource.
// The gateway holds no copy of it across requests; every status query
// re-fetches from Dataproc.
type JobStatusView struct {
	JobID           string   `json:"job_id"`
	Status          JobState `json:"status"`
	Cluster         string   `json:"cluster"`
	Details         string   `json:"details,omitempty"`
	StateStartTime  string   `json:"state_start_time,omitempty"`
	MainPythonFile  string   `json:"main_python_file,omitempty"`
	Args            []string `json:"args,omitempty"`
	DriverOutputURI string   `json:"driver_output_uri,omitempty"`
	Completed       bool     `json:"completed"`
	Failed          bool     `json:"failed,omitempty"`
}
