package datarecording

import (
	"os"
	"strings"
	"time"
)

const timeLayout = "2006-01-02 15:04:05.000000000"

// execInfo is one property of a program run.
type execInfo struct {
	Property string
	Value    string
}

// ExecRecorder records how and when the program ran.
type ExecRecorder struct {
	tableName string
	recorder  DataRecorder
	entries   []execInfo
}

// NewExecRecorder creates the exec_info table in the recorder.
func NewExecRecorder(recorder DataRecorder) *ExecRecorder {
	e := &ExecRecorder{
		tableName: "exec_info",
		recorder:  recorder,
	}

	recorder.CreateTable(e.tableName, execInfo{})

	return e
}

// Start remembers the start time, the command line and the working
// directory.
func (e *ExecRecorder) Start() {
	e.Note("Start Time", time.Now().Format(timeLayout))
	e.Note("Command", strings.Join(os.Args, " "))

	cwd, err := os.Getwd()
	if err != nil {
		panic(err)
	}

	e.Note("Working Directory", cwd)
}

// Note adds a property to the run.
func (e *ExecRecorder) Note(property, value string) {
	e.entries = append(e.entries, execInfo{property, value})
}

// End writes everything noted along with the end time.
func (e *ExecRecorder) End() {
	e.Note("End Time", time.Now().Format(timeLayout))

	for _, entry := range e.entries {
		e.recorder.InsertData(e.tableName, entry)
	}

	e.entries = nil

	e.recorder.Flush()
}
