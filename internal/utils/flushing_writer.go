package utils

import "io"

type flushableWriter interface {
	Flush() error
}

type flushingWriter struct {
	target io.Writer
}

// NewFlushingWriter wraps target so that every write is followed by a flush when target supports it.
func NewFlushingWriter(target io.Writer) io.Writer {
	return flushingWriter{target: target}
}

// Write forwards data to the wrapped writer and flushes it.
func (writer flushingWriter) Write(data []byte) (int, error) {
	bytesWritten, writeError := writer.target.Write(data)
	if writeError != nil {
		return bytesWritten, writeError
	}

	flusher, flushable := writer.target.(flushableWriter)
	if !flushable {
		return bytesWritten, nil
	}

	return bytesWritten, flusher.Flush()
}
