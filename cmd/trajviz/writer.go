package main

import (
	"io"

	"trajviz/internal/config"
	"trajviz/internal/export"
)

// newRowWriter sets up the export sinks selected by flags. It returns the writer
// and a cleanup function that closes any files and reports the close error.
func newRowWriter(c *config.Config, jsonlPath string, toStdout, toGreptime bool, stdout io.Writer) (export.RowWriter, func() error, error) {
	cleanup := func() error { return nil }
	var writers []export.RowWriter

	if toStdout {
		writers = append(writers, export.NewStdoutWriter(stdout))
	}
	if toGreptime {
		gc := c.Export.Greptime
		epoch, err := gc.EpochTime()
		if err != nil {
			return nil, nil, err
		}
		gw, err := export.NewGreptimeWriter(gc.Endpoint, gc.Database, gc.Table, epoch, log)
		if err != nil {
			return nil, nil, err
		}
		writers = append(writers, gw)
	}
	if jsonlPath != "" {
		fw, err := export.NewFileWriter(jsonlPath)
		if err != nil {
			return nil, nil, err
		}
		writers = append(writers, fw)
		cleanup = fw.Close
	}

	if len(writers) == 1 {
		return writers[0], cleanup, nil
	}
	return export.NewMultiWriter(writers...), cleanup, nil
}
