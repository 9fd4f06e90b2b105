package domain

// ArtifactSummary describes one artifact file for diagnostics.
type ArtifactSummary struct {
	Artifact  ArtifactKind
	Path      string
	Kind      string
	Features  int
	Classes   []int
	SizeBytes int64
}
