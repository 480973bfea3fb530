package codebook

// Cloner allows types to provide deep copy logic.
// Implementing this interface is required for use with Processor.
//
// Seal encodes fields on the clone, so the caller's value is never modified.
// Clone must return a deep copy: for types containing pointers, slices or maps,
// copy those as well.
//
//	func (n Note) Clone() Note { return n }
//
//	func (d Dispatch) Clone() Dispatch {
//	    lines := make([]string, len(d.Lines))
//	    copy(lines, d.Lines)
//	    return Dispatch{ID: d.ID, Lines: lines}
//	}
type Cloner[T any] interface {
	Clone() T
}
