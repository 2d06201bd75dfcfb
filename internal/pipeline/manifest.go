package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// ManifestFileName is written to the output directory at the end of a run
const ManifestFileName = "manifest.json"

// Stage status values
const (
	StatusCompleted = "completed"
	StatusFailed    = "failed"
	StatusRunning   = "running"
)

// StageExecution tracks the execution of a single stage
type StageExecution struct {
	Stage     string    `json:"stage"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Duration  string    `json:"duration"`
	Status    string    `json:"status"`
	Error     string    `json:"error,omitempty"`
}

// Manifest records what a run read, what it produced and how each stage went
type Manifest struct {
	mu sync.Mutex

	RunID        string           `json:"run_id"`
	DataPath     string           `json:"data_path"`
	Target       string           `json:"target,omitempty"`
	StartTime    time.Time        `json:"start_time"`
	EndTime      time.Time        `json:"end_time,omitempty"`
	Status       string           `json:"status"`
	Error        string           `json:"error,omitempty"`
	Rows         map[string]int   `json:"rows"`
	FeatureNames []string         `json:"feature_names,omitempty"`
	Files        []string         `json:"files"`
	Stages       []StageExecution `json:"stages"`
}

func newManifest(runID string, req Request) *Manifest {
	return &Manifest{
		RunID:     runID,
		DataPath:  req.DataPath,
		Target:    req.Target,
		StartTime: time.Now(),
		Status:    StatusRunning,
		Rows:      make(map[string]int),
		Files:     []string{},
		Stages:    []StageExecution{},
	}
}

func (m *Manifest) recordStage(stage string, start time.Time, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	end := time.Now()
	exec := StageExecution{
		Stage:     stage,
		StartTime: start,
		EndTime:   end,
		Duration:  end.Sub(start).String(),
		Status:    StatusCompleted,
	}
	if err != nil {
		exec.Status = StatusFailed
		exec.Error = err.Error()
	}
	m.Stages = append(m.Stages, exec)
}

func (m *Manifest) addFile(path string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Files = append(m.Files, path)
}

func (m *Manifest) setRows(split string, rows int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Rows[split] = rows
}

func (m *Manifest) finish(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.EndTime = time.Now()
	m.Status = StatusCompleted
	if err != nil {
		m.Status = StatusFailed
		m.Error = err.Error()
	}
}

// Save writes the manifest as indented JSON
func (m *Manifest) Save(path string) error {
	m.mu.Lock()
	data, err := json.MarshalIndent(m, "", "  ")
	m.mu.Unlock()
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create manifest directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	return nil
}

// LoadManifest reads a manifest written by Save
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}
	return &m, nil
}
