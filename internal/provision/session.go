package provision

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/jbweber/kiln/internal/pve"
	"github.com/jbweber/kiln/internal/storage"
)

// Stage marks how far a provisioning session has progressed. Stages only
// move forward; rollback decides what to undo from live host state, not
// from the recorded stage.
type Stage int

const (
	StageInit Stage = iota
	StageStorageAllocated
	StageFilesystemReady
	StageContainerCreated
	StageMounted
	StageTimezoneSynced
	StageStarted
	StageSetupPushed
	StageSetupExecuted
	StageComplete
)

var stageNames = map[Stage]string{
	StageInit:             "Init",
	StageStorageAllocated: "StorageAllocated",
	StageFilesystemReady:  "FilesystemReady",
	StageContainerCreated: "ContainerCreated",
	StageMounted:          "Mounted",
	StageTimezoneSynced:   "TimezoneSynced",
	StageStarted:          "Started",
	StageSetupPushed:      "SetupPushed",
	StageSetupExecuted:    "SetupExecuted",
	StageComplete:         "Complete",
}

func (s Stage) String() string {
	if name, ok := stageNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Stage(%d)", int(s))
}

// Session tracks the state of one provisioning run.
type Session struct {
	RunID      string
	Pool       pve.Pool
	CTID       int
	Disk       storage.Disk
	Mountpoint string
	Mounted    bool
	Stage      Stage
}

func newSession(pool pve.Pool) *Session {
	return &Session{
		RunID: uuid.New().String(),
		Pool:  pool,
		Stage: StageInit,
	}
}

// advance records forward progress. Backward moves are ignored.
func (s *Session) advance(next Stage) {
	if next > s.Stage {
		s.Stage = next
	}
}
