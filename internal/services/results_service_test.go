package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/osvaldoandrade/sparkgw/internal/providers"
	"github.com/osvaldoandrade/sparkgw/pkg/domain"
)

type fakeObjectReader struct {
	objects map[string][]byte
	failErr error
	reads   []string
}

func (f *fakeObjectReader) ReadObject(ctx context.Context, bucket, object string) ([]byte, error) {
	f.reads = append(f.reads, bucket+"/"+object)
	if f.failErr != nil {
		return nil, f.failErr
	}
	data, ok := f.objects[object]
	if !ok {
		return nil, fmt.Errorf("gs://%s/%s: %w", bucket, object, providers.ErrObjectNotFound)
	}
	return data, nil
}

func (f *fakeObjectReader) Close() error { return nil }

func TestFetchBothObjects(t *testing.T) {
	reader := &fakeObjectReader{objects: map[string][]byte{
		"problem_1.json": []byte(`{"top": [1, 2, 3]}`),
		"problem_2.json": []byte(`[{"airline": "AA"}]`),
	}}
	svc := NewResultsService(reader, "results-bucket", testLogger())

	bundle, err := svc.Fetch(context.Background(), "", "")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if bundle.Status != "success" {
		t.Errorf("Status = %q, want success", bundle.Status)
	}
	if bundle.Bucket != "results-bucket" {
		t.Errorf("Bucket = %q, want default bucket", bundle.Bucket)
	}
	p1, ok := bundle.Results[domain.ResultKeyProblem1].(map[string]any)
	if !ok {
		t.Fatalf("problem_1 = %T, want parsed object", bundle.Results[domain.ResultKeyProblem1])
	}
	if _, ok := p1["top"]; !ok {
		t.Error("problem_1 content not parsed")
	}
	if _, ok := bundle.Results[domain.ResultKeyProblem2].([]any); !ok {
		t.Errorf("problem_2 = %T, want parsed array", bundle.Results[domain.ResultKeyProblem2])
	}
}

func TestFetchMissingObjectIsPerKey(t *testing.T) {
	reader := &fakeObjectReader{objects: map[string][]byte{
		"problem_1.json": []byte(`{"ok": true}`),
	}}
	svc := NewResultsService(reader, "b", testLogger())

	bundle, err := svc.Fetch(context.Background(), "", "")
	if err != nil {
		t.Fatalf("one missing object must not fail the fetch: %v", err)
	}
	if bundle.Status != "partial" {
		t.Errorf("Status = %q, want partial", bundle.Status)
	}
	if _, ok := bundle.Results[domain.ResultKeyProblem1].(map[string]any); !ok {
		t.Error("problem_1 should still be parsed")
	}
	marker, ok := bundle.Results[domain.ResultKeyProblem2].(domain.ResultError)
	if !ok {
		t.Fatalf("problem_2 = %T, want ResultError marker", bundle.Results[domain.ResultKeyProblem2])
	}
	if marker.Path != "gs://b/problem_2.json" {
		t.Errorf("marker path = %q", marker.Path)
	}
	if marker.Error == "" {
		t.Error("marker must carry an error string")
	}
}

func TestFetchInvalidJSONIsPerKey(t *testing.T) {
	reader := &fakeObjectReader{objects: map[string][]byte{
		"problem_1.json": []byte(`not json at all`),
		"problem_2.json": []byte(`{"fine": 1}`),
	}}
	svc := NewResultsService(reader, "b", testLogger())

	bundle, err := svc.Fetch(context.Background(), "", "")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if bundle.Status != "partial" {
		t.Errorf("Status = %q, want partial", bundle.Status)
	}
	if _, ok := bundle.Results[domain.ResultKeyProblem1].(domain.ResultError); !ok {
		t.Errorf("problem_1 = %T, want ResultError marker", bundle.Results[domain.ResultKeyProblem1])
	}
}

func TestFetchUnrecoverableProviderError(t *testing.T) {
	reader := &fakeObjectReader{failErr: errors.New("bucket inaccessible")}
	svc := NewResultsService(reader, "b", testLogger())

	if _, err := svc.Fetch(context.Background(), "", ""); err == nil {
		t.Fatal("expected unrecoverable error to propagate")
	}
}

func TestFetchPrefixNormalization(t *testing.T) {
	reader := &fakeObjectReader{objects: map[string][]byte{
		"runs/42/problem_1.json": []byte(`{}`),
		"runs/42/problem_2.json": []byte(`{}`),
	}}
	svc := NewResultsService(reader, "default-bucket", testLogger())

	bundle, err := svc.Fetch(context.Background(), "other-bucket", "runs/42")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if bundle.Bucket != "other-bucket" {
		t.Errorf("Bucket = %q, explicit bucket should win", bundle.Bucket)
	}
	want := []string{"other-bucket/runs/42/problem_1.json", "other-bucket/runs/42/problem_2.json"}
	if len(reader.reads) != len(want) {
		t.Fatalf("reads = %v", reader.reads)
	}
	for i, r := range want {
		if reader.reads[i] != r {
			t.Errorf("read[%d] = %q, want %q", i, reader.reads[i], r)
		}
	}
}
