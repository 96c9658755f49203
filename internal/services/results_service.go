package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/osvaldoandrade/sparkgw/internal/metrics"
	"github.com/osvaldoandrade/sparkgw/internal/providers"
	"github.com/osvaldoandrade/sparkgw/pkg/domain"
)

type ResultsService interface {
	Fetch(ctx context.Context, bucket, pathPrefix string) (*domain.ResultsBundle, error)
}

type resultsService struct {
	reader        providers.ObjectReader
	defaultBucket string
	logger        *slog.Logger
}

func NewResultsService(reader providers.ObjectReader, defaultBucket string, logger *slog.Logger) ResultsService {
	return &resultsService{reader: reader, defaultBucket: defaultBucket, logger: logger}
}

// Fetch reads the two fixed result objects under the prefix. Each key
// resolves independently: a missing or unparsable object becomes a per-key
// error marker, never a wholesale failure. Only provider errors other than
// not-found abort the fetch.
func (s *resultsService) Fetch(ctx context.Context, bucket, pathPrefix string) (*domain.ResultsBundle, error) {
	if bucket == "" {
		bucket = s.defaultBucket
	}
	prefix := pathPrefix
	if prefix != "" && !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}

	ctx, span := otel.Tracer("sparkgw/results").Start(ctx, "sparkgw.results.fetch",
		trace.WithAttributes(
			attribute.String("sparkgw.bucket", bucket),
			attribute.String("sparkgw.prefix", prefix),
		),
	)
	defer span.End()

	keys := []struct {
		key    string
		object string
	}{
		{domain.ResultKeyProblem1, prefix + domain.ResultObjectProblem1},
		{domain.ResultKeyProblem2, prefix + domain.ResultObjectProblem2},
	}

	results := make(map[string]any, len(keys))
	partial := false
	for _, k := range keys {
		value, ok, err := s.readJSON(ctx, bucket, k.key, k.object)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return nil, err
		}
		if !ok {
			partial = true
		}
		results[k.key] = value
	}

	status := "success"
	if partial {
		status = "partial"
	}
	return &domain.ResultsBundle{Status: status, Bucket: bucket, Results: results}, nil
}

// readJSON returns the parsed object, or a ResultError marker with ok=false
// when the object is missing or not valid JSON. Any other provider error is
// returned as-is and treated as unrecoverable by the caller.
func (s *resultsService) readJSON(ctx context.Context, bucket, key, object string) (any, bool, error) {
	gsPath := fmt.Sprintf("gs://%s/%s", bucket, object)

	start := time.Now()
	data, err := s.reader.ReadObject(ctx, bucket, object)
	metrics.ProviderCallLatencySeconds.WithLabelValues("read_object").Observe(time.Since(start).Seconds())
	if err != nil {
		if errors.Is(err, providers.ErrObjectNotFound) {
			metrics.ResultObjectsTotal.WithLabelValues(key, "missing").Inc()
			s.logger.Warn("result object missing", "path", gsPath)
			return domain.ResultError{Error: "File not found", Path: gsPath}, false, nil
		}
		metrics.ProviderErrorsTotal.WithLabelValues("read_object").Inc()
		return nil, false, err
	}

	var value any
	if err := json.Unmarshal(data, &value); err != nil {
		metrics.ResultObjectsTotal.WithLabelValues(key, "invalid").Inc()
		s.logger.Warn("result object is not valid JSON", "path", gsPath, "err", err)
		return domain.ResultError{Error: fmt.Sprintf("invalid JSON: %v", err), Path: gsPath}, false, nil
	}

	metrics.ResultObjectsTotal.WithLabelValues(key, "ok").Inc()
	return value, true, nil
}
