package tasks

import "fmt"

// ProgressUpdate represents a progress event during a long-running operation.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
}

// Phase identifies the stage of a bulk operation.
type Phase int

const (
	LoadBoards Phase = iota
	ExportBoards
	WriteManifest
)

func (p Phase) String() string {
	switch p {
	case LoadBoards:
		return "load_boards"
	case ExportBoards:
		return "export_boards"
	case WriteManifest:
		return "write_manifest"
	default:
		return ""
	}
}

// sendProgress sends update without blocking. A nil or full channel drops it.
func sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

func loadingBoardUpdate(step, total int, name string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   LoadBoards,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Loading %s...", step, total, name),
	}
}

func exportCompletedUpdate(step, total int, name, path string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ExportBoards,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✓ %s -> %s", step, total, name, path),
	}
}

func exportFailedUpdate(step, total int, name string, err error) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ExportBoards,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✗ %s: %v", step, total, name, err),
	}
}

func manifestUpdate(path string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   WriteManifest,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Writing manifest %s...", path),
	}
}
