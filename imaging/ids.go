// Package imaging implements the backend-agnostic imaging intermediate
// representation: a small state machine of StateOp/DrawOp emitted against
// an ImagingBackend, resource handles owned by a ResourceBackend, and
// recording/replay of op sequences as reusable Pictures, classified by how
// a transform may have changed since the recording was captured.
package imaging

// PathId, ImageId, PaintId, and PictureId are separate opaque handle
// domains. They wrap the same underlying representation but are
// type-distinct so a handle from one domain can never be silently used in
// another's slot table.
type (
	PathId    uint32
	ImageId   uint32
	PaintId   uint32
	PictureId uint32
)
