package sitengine

// Image holds metadata for an uploaded tenant image (logo or listing photo).
type Image struct {
	Filename     string
	OriginalName string
	Tenant       string
	Width        int
	Height       int
	Size         int
	UploadedAt   string
}
