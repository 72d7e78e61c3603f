package rowrender

import (
	"io"
	"iter"
)

// WriteIter collects rows from an iterator and renders them to w. An
// iterator that yields nothing renders as an empty dataset, not an absent one.
func (r *Renderer) WriteIter(w io.Writer, seq iter.Seq[Row]) error {
	rows := Dataset{}
	seq(func(row Row) bool {
		rows = append(rows, row)
		return true
	})
	return r.Write(w, rows)
}

// WriteChan renders rows received from a channel until it is closed.
// It is a thin wrapper around [Renderer.WriteIter].
func (r *Renderer) WriteChan(w io.Writer, ch <-chan Row) error {
	return r.WriteIter(w, chanToIter(ch))
}

func chanToIter[T any](ch <-chan T) iter.Seq[T] {
	return func(yield func(T) bool) {
		for item := range ch {
			if !yield(item) {
				return
			}
		}
	}
}
