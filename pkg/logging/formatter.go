// Package logging renders logrus entries as an indented bullet list on the
// terminal while keeping stdout free for command output.
package logging

import (
	"bytes"
	"fmt"
	"io"
	"sort"

	"github.com/sirupsen/logrus"
)

// ActionField marks an entry as the start of a pipeline stage.
const ActionField = "action"

// BulletFormatter prints stages as top-level bullets and everything logged
// inside a stage as nested bullets:
//
//	  * signing in
//	    * Login successful
//	    ! Most recent build train 1.5.0 is not the highest version (2.0.0)
//	  x fetching latest build number: no build train for version "9.9.9"
//
// Remaining fields are appended as sorted key=value pairs.
type BulletFormatter struct{}

var levelBullets = map[logrus.Level]string{
	logrus.PanicLevel: "  x ",
	logrus.FatalLevel: "  x ",
	logrus.ErrorLevel: "  x ",
	logrus.WarnLevel:  "    ! ",
	logrus.InfoLevel:  "    * ",
	logrus.DebugLevel: "      ",
	logrus.TraceLevel: "      ",
}

func (f *BulletFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	var buf bytes.Buffer

	if action, ok := entry.Data[ActionField]; ok {
		fmt.Fprintf(&buf, "  * %v", action)
		if entry.Message != "" {
			fmt.Fprintf(&buf, ": %s", entry.Message)
		}
	} else {
		buf.WriteString(levelBullets[entry.Level])
		buf.WriteString(entry.Message)
	}

	writeFields(&buf, entry.Data)
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

func writeFields(buf *bytes.Buffer, fields logrus.Fields) {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		if k != ActionField {
			keys = append(keys, k)
		}
	}
	if len(keys) == 0 {
		return
	}
	sort.Strings(keys)

	buf.WriteString(" ")
	for _, k := range keys {
		fmt.Fprintf(buf, " %s=%v", k, fields[k])
	}
}

// New returns a logger writing to out. Debug mode switches to timestamped
// text output so request-level detail stays readable.
func New(out io.Writer, debug bool) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(out)

	if debug {
		logger.SetLevel(logrus.DebugLevel)
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
			ForceColors:   true,
		})
		return logger
	}

	logger.SetLevel(logrus.InfoLevel)
	logger.SetFormatter(&BulletFormatter{})
	return logger
}
