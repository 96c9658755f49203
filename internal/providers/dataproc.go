package providers

import (
	"context"
	"fmt"

	dataproc "cloud.google.com/go/dataproc/v2/apiv1"
	"cloud.google.com/go/dataproc/v2/apiv1/dataprocpb"
	"github.com/googleapis/gax-go/v2"
	"google.golang.org/api/option"
)

// JobController is the slice of the Dataproc job API the gateway uses.
// *dataproc.JobControllerClient satisfies it directly; tests inject fakes.
type JobController interface {
	SubmitJob(ctx context.Context, req *dataprocpb.SubmitJobRequest, opts ...gax.CallOption) (*dataprocpb.Job, error)
	GetJob(ctx context.Context, req *dataprocpb.GetJobRequest, opts ...gax.CallOption) (*dataprocpb.Job, error)
	Close() error
}

// NewJobController dials the regional Dataproc endpoint. Credentials come
// from the ambient ADC chain; the gateway carries none of its own.
func NewJobController(ctx context.Context, region string) (JobController, error) {
	endpoint := fmt.Sprintf("%s-dataproc.googleapis.com:443", region)
	client, err := dataproc.NewJobControllerClient(ctx, option.WithEndpoint(endpoint))
	if err != nil {
		return nil, fmt.Errorf("dataproc client for %s: %w", region, err)
	}
	return client, nil
}
