package services

import (
	"context"
	"log/slog"
	"time"

	"cloud.google.com/go/dataproc/v2/apiv1/dataprocpb"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/osvaldoandrade/sparkgw/internal/metrics"
	"github.com/osvaldoandrade/sparkgw/internal/providers"
	"github.com/osvaldoandrade/sparkgw/pkg/domain"
)

type JobService interface {
	Submit(ctx context.Context, req domain.SubmitJobRequest) (*domain.SubmitJobResponse, error)
	Status(ctx context.Context, jobID string) (*domain.JobStatusView, error)
}

type jobService struct {
	jobs           providers.JobController
	projectID      string
	region         string
	defaultCluster string
	logger         *slog.Logger
}

func NewJobService(jobs providers.JobController, projectID, region, defaultCluster string, logger *slog.Logger) JobService {
	return &jobService{jobs: jobs, projectID: projectID, region: region, defaultCluster: defaultCluster, logger: logger}
}

// Submit sends one PySpark job to Dataproc. No retry, no local record; the
// provider-assigned job id is the only handle returned to the caller.
func (s *jobService) Submit(ctx context.Context, req domain.SubmitJobRequest) (*domain.SubmitJobResponse, error) {
	cluster := req.ClusterName
	if cluster == "" {
		cluster = s.defaultCluster
	}

	ctx, span := otel.Tracer("sparkgw/jobs").Start(ctx, "sparkgw.job.submit",
		trace.WithAttributes(
			attribute.String("sparkgw.cluster", cluster),
			attribute.String("sparkgw.main_file", req.MainPythonFile),
		),
	)
	defer span.End()

	start := time.Now()
	job, err := s.jobs.SubmitJob(ctx, &dataprocpb.SubmitJobRequest{
		ProjectId: s.projectID,
		Region:    s.region,
		Job: &dataprocpb.Job{
			Placement: &dataprocpb.JobPlacement{ClusterName: cluster},
			TypeJob: &dataprocpb.Job_PysparkJob{
				PysparkJob: &dataprocpb.PySparkJob{
					MainPythonFileUri: req.MainPythonFile,
					Args:              req.Args,
				},
			},
		},
	})
	metrics.ProviderCallLatencySeconds.WithLabelValues("submit_job").Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.ProviderErrorsTotal.WithLabelValues("submit_job").Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.logger.Error("job submission failed", "cluster", cluster, "main_file", req.MainPythonFile, "err", err)
		return nil, err
	}

	jobID := job.GetReference().GetJobId()
	span.SetAttributes(attribute.String("sparkgw.job_id", jobID))
	metrics.JobsSubmittedTotal.WithLabelValues(cluster).Inc()
	s.logger.Info("job submitted", "job_id", jobID, "cluster", cluster, "main_file", req.MainPythonFile)

	return &domain.SubmitJobResponse{
		Status:   "success",
		Message:  "Job submitted successfully",
		JobID:    jobID,
		Cluster:  cluster,
		MainFile: req.MainPythonFile,
	}, nil
}

// Status re-fetches the job from Dataproc on every call; the gateway keeps
// no copy between requests.
func (s *jobService) Status(ctx context.Context, jobID string) (*domain.JobStatusView, error) {
	ctx, span := otel.Tracer("sparkgw/jobs").Start(ctx, "sparkgw.job.status",
		trace.WithAttributes(attribute.String("sparkgw.job_id", jobID)),
	)
	defer span.End()

	start := time.Now()
	job, err := s.jobs.GetJob(ctx, &dataprocpb.GetJobRequest{
		ProjectId: s.projectID,
		Region:    s.region,
		JobId:     jobID,
	})
	metrics.ProviderCallLatencySeconds.WithLabelValues("get_job").Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.ProviderErrorsTotal.WithLabelValues("get_job").Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	state := domain.JobState(job.GetStatus().GetState().String())
	view := &domain.JobStatusView{
		JobID:     job.GetReference().GetJobId(),
		Status:    state,
		Cluster:   job.GetPlacement().GetClusterName(),
		Details:   job.GetStatus().GetDetails(),
		Completed: state.Terminal(),
		Failed:    state == domain.StateError,
	}
	if ts := job.GetStatus().GetStateStartTime(); ts != nil {
		view.StateStartTime = ts.AsTime().UTC().Format(time.RFC3339)
	}
	if py := job.GetPysparkJob(); py != nil {
		view.MainPythonFile = py.GetMainPythonFileUri()
		view.Args = py.GetArgs()
	}
	view.DriverOutputURI = job.GetDriverOutputResourceUri()

	span.SetAttributes(attribute.String("sparkgw.state", string(state)))
	metrics.StatusQueriesTotal.WithLabelValues(string(state)).Inc()
	return view, nil
}
