package compositor

import (
	"errors"
	"fmt"
)

var (
	// ErrExportInProgress is returned when Export is called while another
	// export on the same Compositor has not finished.
	ErrExportInProgress = errors.New("export already in progress")
	// ErrNotRendered means the element has no measurable width.
	ErrNotRendered = errors.New("element is not rendered")
)

// Stage names the export step that failed.
type Stage string

const (
	StageSnapshot  Stage = "snapshot"
	StageMeasure   Stage = "measure"
	StageStretch   Stage = "stretch"
	StageFlush     Stage = "flush"
	StageSettle    Stage = "settle"
	StageRasterize Stage = "rasterize"
	StageRestore   Stage = "restore"
)

// ExportError wraps a failure with the stage it happened in.
type ExportError struct {
	Stage Stage
	Err   error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *ExportError) Unwrap() error {
	return e.Err
}
