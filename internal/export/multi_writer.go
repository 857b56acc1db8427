package export

// MultiWriter fans point rows out to several writers.
type MultiWriter struct {
	writers []RowWriter
}

// NewMultiWriter creates a new MultiWriter. Nil writers are skipped.
func NewMultiWriter(ws ...RowWriter) *MultiWriter {
	mw := &MultiWriter{}
	for _, w := range ws {
		if w != nil {
			mw.writers = append(mw.writers, w)
		}
	}
	return mw
}

// Len returns the number of wrapped writers.
func (mw *MultiWriter) Len() int { return len(mw.writers) }

// WriteRows sends rows to every writer, stopping at the first error.
func (mw *MultiWriter) WriteRows(rows []PointRow) error {
	for _, w := range mw.writers {
		if err := w.WriteRows(rows); err != nil {
			return err
		}
	}
	return nil
}
