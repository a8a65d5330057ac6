package runtime

import (
	"context"
	"encoding/csv"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/jbec2912-cell/pervious-service-filter/internal/modules/filter"
	"github.com/jbec2912-cell/pervious-service-filter/internal/modules/input"
	"github.com/jbec2912-cell/pervious-service-filter/internal/modules/output"
	"github.com/jbec2912-cell/pervious-service-filter/pkg/listing"
)

func testJob() *listing.Job {
	return &listing.Job{
		Name:      "previous-service",
		MaxYear:   2024,
		MinEquity: -6000.0,
	}
}

func admissionFilter(t *testing.T) filter.Module {
	t.Helper()
	module, err := filter.NewAdmissionFromConfig(filter.AdmissionConfig{
		MaxYear:   2024,
		MinEquity: -6000.0,
	})
	if err != nil {
		t.Fatalf("NewAdmissionFromConfig: %v", err)
	}
	return module
}

func sourceRecords() []map[string]string {
	return []map[string]string{
		{
			"CustomerFirstName":  "john",
			"CustomerVoicePhone": "(555) 123-4567",
			"TradeYear":          "2023",
			"TradeModel":         "Sedan",
			"TradePurchaseDate":  "01/02/2023",
		},
		{
			"CustomerFirstName":  "jane",
			"CustomerVoicePhone": "555-987-6543",
			"TradeYear":          "2025",
			"TradeModel":         "Coupe",
		},
	}
}

func TestExecuteWritesAdmittedRows(t *testing.T) {
	inputStub := input.NewStub("csv", sourceRecords())
	outputStub := output.NewStub("csv")

	executor := NewExecutorWithModules(inputStub, []filter.Module{admissionFilter(t)}, outputStub, false)

	result, err := executor.Execute(testJob())
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if result.Status != StatusSuccess {
		t.Errorf("Status = %q, want %q", result.Status, StatusSuccess)
	}
	if result.RowsRead != 2 {
		t.Errorf("RowsRead = %d, want 2", result.RowsRead)
	}
	if result.RowsWritten != 1 {
		t.Errorf("RowsWritten = %d, want 1", result.RowsWritten)
	}
	if result.RowsExcluded != 1 {
		t.Errorf("RowsExcluded = %d, want 1", result.RowsExcluded)
	}
	if len(outputStub.Sent) != 1 || outputStub.Sent[0]["CustomerFirstName"] != "john" {
		t.Errorf("wrong records sent: %v", outputStub.Sent)
	}
}

func TestExecuteDryRunSkipsOutput(t *testing.T) {
	inputStub := input.NewStub("csv", sourceRecords())
	outputStub := output.NewStub("csv")

	executor := NewExecutorWithModules(inputStub, []filter.Module{admissionFilter(t)}, outputStub, true)

	result, err := executor.Execute(testJob())
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if result.RowsWritten != 1 {
		t.Errorf("RowsWritten = %d, want 1", result.RowsWritten)
	}
	if len(outputStub.Sent) != 0 {
		t.Errorf("dry run must not send records, sent %v", outputStub.Sent)
	}
}

func TestExecuteNilJob(t *testing.T) {
	executor := NewExecutorWithModules(input.NewStub("csv", nil), nil, output.NewStub("csv"), false)

	result, err := executor.Execute(nil)
	if !errors.Is(err, ErrNilJob) {
		t.Fatalf("got %v, want ErrNilJob", err)
	}
	if result.Error == nil || result.Error.Code != ErrCodeInvalidInput {
		t.Errorf("result error = %v, want %s", result.Error, ErrCodeInvalidInput)
	}
}

func TestExecuteNilInputModule(t *testing.T) {
	executor := NewExecutorWithModules(nil, nil, output.NewStub("csv"), false)

	if _, err := executor.Execute(testJob()); !errors.Is(err, ErrNilInputModule) {
		t.Fatalf("got %v, want ErrNilInputModule", err)
	}
}

func TestExecuteNilOutputModule(t *testing.T) {
	executor := NewExecutorWithModules(input.NewStub("csv", nil), nil, nil, false)

	if _, err := executor.Execute(testJob()); !errors.Is(err, ErrNilOutputModule) {
		t.Fatalf("got %v, want ErrNilOutputModule", err)
	}
}

func TestExecuteDryRunAllowsNilOutput(t *testing.T) {
	executor := NewExecutorWithModules(input.NewStub("csv", sourceRecords()), []filter.Module{admissionFilter(t)}, nil, true)

	result, err := executor.Execute(testJob())
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if result.RowsWritten != 1 {
		t.Errorf("RowsWritten = %d, want 1", result.RowsWritten)
	}
}

func TestExecuteInputFailure(t *testing.T) {
	inputStub := input.NewStub("csv", nil)
	inputStub.Err = errors.New("file vanished")

	executor := NewExecutorWithModules(inputStub, nil, output.NewStub("csv"), false)

	result, err := executor.Execute(testJob())
	if err == nil {
		t.Fatal("expected error")
	}
	if result.Error == nil || result.Error.Code != ErrCodeInputFailed {
		t.Errorf("result error = %v, want %s", result.Error, ErrCodeInputFailed)
	}
	if result.Status != StatusError {
		t.Errorf("Status = %q, want %q", result.Status, StatusError)
	}
}

func TestExecuteFilterFailure(t *testing.T) {
	failing := filter.NewStub("broken", 1)
	failing.Err = errors.New("boom")

	executor := NewExecutorWithModules(
		input.NewStub("csv", sourceRecords()),
		[]filter.Module{admissionFilter(t), failing},
		output.NewStub("csv"),
		false,
	)

	result, err := executor.Execute(testJob())
	if err == nil {
		t.Fatal("expected error")
	}
	if result.Error == nil || result.Error.Code != ErrCodeFilterFailed {
		t.Errorf("result error = %v, want %s", result.Error, ErrCodeFilterFailed)
	}
	if idx, ok := result.Error.Details["filterIndex"].(int); !ok || idx != 1 {
		t.Errorf("filterIndex = %v, want 1", result.Error.Details["filterIndex"])
	}
}

func TestExecuteOutputFailure(t *testing.T) {
	outputStub := output.NewStub("csv")
	outputStub.Err = errors.New("disk full")

	executor := NewExecutorWithModules(
		input.NewStub("csv", sourceRecords()),
		[]filter.Module{admissionFilter(t)},
		outputStub,
		false,
	)

	result, err := executor.Execute(testJob())
	if err == nil {
		t.Fatal("expected error")
	}
	if result.Error == nil || result.Error.Code != ErrCodeOutputFailed {
		t.Errorf("result error = %v, want %s", result.Error, ErrCodeOutputFailed)
	}
}

func TestExecuteWithContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	inputModule, err := input.NewCSVFromConfig(input.CSVConfig{Path: "whatever.csv"})
	if err != nil {
		t.Fatalf("NewCSVFromConfig: %v", err)
	}

	executor := NewExecutorWithModules(inputModule, nil, output.NewStub("csv"), false)

	if _, err := executor.ExecuteWithContext(ctx, testJob()); err == nil {
		t.Fatal("expected error from canceled context")
	}
}

func TestNewExecutorForJobEndToEnd(t *testing.T) {
	dir := t.TempDir()
	inputPath := filepath.Join(dir, "export.csv")
	outputPath := filepath.Join(dir, "out.csv")

	content := "CustomerFirstName,CustomerVoicePhone,TradeYear,TradeModel,TradePurchaseDate\n" +
		"john,(555) 123-4567,2023,Sedan,01/02/2023\n" +
		"jane,555-987-6543,2025,Coupe,03/04/2024\n" +
		",,2020,Hatch,\n"
	if err := os.WriteFile(inputPath, []byte(content), 0o644); err != nil {
		t.Fatalf("writing export: %v", err)
	}

	job := &listing.Job{
		Name:      "previous-service",
		Input:     &listing.ModuleConfig{Type: "csv", Config: map[string]interface{}{"path": inputPath}},
		Output:    &listing.ModuleConfig{Type: "csv", Config: map[string]interface{}{"path": outputPath}},
		MaxYear:   2024,
		MinEquity: -6000.0,
	}

	executor, err := NewExecutorForJob(job, false)
	if err != nil {
		t.Fatalf("NewExecutorForJob: %v", err)
	}

	result, err := executor.Execute(job)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if result.RowsRead != 3 || result.RowsWritten != 1 || result.RowsExcluded != 2 {
		t.Errorf("counts = read %d written %d excluded %d, want 3/1/2",
			result.RowsRead, result.RowsWritten, result.RowsExcluded)
	}

	file, err := os.Open(outputPath)
	if err != nil {
		t.Fatalf("opening output: %v", err)
	}
	defer file.Close()

	rows, err := csv.NewReader(file).ReadAll()
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want header + 1", len(rows))
	}
	wantRow := []string{"15551234567", "John", "", "1/2/23", "23", "Sedan", "", "", "", ""}
	if !reflect.DeepEqual(rows[1], wantRow) {
		t.Errorf("row = %v, want %v", rows[1], wantRow)
	}
}

func TestNewExecutorForJobInvalidConfig(t *testing.T) {
	job := &listing.Job{
		Name:   "bad",
		Input:  &listing.ModuleConfig{Type: "csv", Config: map[string]interface{}{}},
		Output: &listing.ModuleConfig{Type: "csv", Config: map[string]interface{}{}},
	}

	if _, err := NewExecutorForJob(job, false); err == nil {
		t.Fatal("expected error for missing input path")
	}
}

func TestNewExecutorForJobNil(t *testing.T) {
	if _, err := NewExecutorForJob(nil, false); !errors.Is(err, ErrNilJob) {
		t.Fatalf("got %v, want ErrNilJob", err)
	}
}
