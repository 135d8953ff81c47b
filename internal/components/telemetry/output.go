package telemetry

import (
	"log/slog"
	"os"
	"path/filepath"
)

// MessageOutput receives the full dump of every http exchange made by an
// instrumented client, keyed by request id.
type MessageOutput interface {
	Write(id string, contents string)
}

var restyOutput MessageOutput

// SetRestyOutput makes every client instrumented with InstrumentResty also
// write its http dumps to out, nil turns this off.
func SetRestyOutput(out MessageOutput) {
	restyOutput = out
}

type FilesystemOutput struct {
	directory string
}

// NewFilesystemOutput empties (or creates) dir so it only holds dumps of the current run.
func NewFilesystemOutput(dir string) (FilesystemOutput, error) {
	err := os.RemoveAll(dir)
	if err != nil {
		return FilesystemOutput{}, err
	}
	err = os.MkdirAll(dir, 0777)
	if err != nil {
		return FilesystemOutput{}, err
	}
	return FilesystemOutput{directory: dir}, nil
}

func (o FilesystemOutput) Write(id string, contents string) {
	err := os.WriteFile(filepath.Join(o.directory, id), []byte(contents), 0600)
	if err != nil {
		slog.Warn("failed to write message info file", "id", id, "err", err)
	}
}
