package artifact

import (
	"os"

	"github.com/doeshing/fakenews-go/internal/domain"
)

// Summary describes one artifact file for diagnostics.
type Summary = domain.ArtifactSummary

// Inspector adapts Inspect to ports.ArtifactInspector.
type Inspector struct{}

// Describe implements ports.ArtifactInspector.
func (Inspector) Describe(artifact domain.ArtifactKind, path string) (domain.ArtifactSummary, error) {
	return Inspect(artifact, path)
}

// Inspect loads the artifact at path and reports what it contains.
func Inspect(artifact domain.ArtifactKind, path string) (Summary, error) {
	summary := Summary{Artifact: artifact, Path: path}

	info, err := os.Stat(path)
	if err != nil {
		return summary, loadError(artifact, path, err)
	}
	summary.SizeBytes = info.Size()

	_, kind, err := readDocument(path)
	if err != nil {
		return summary, loadError(artifact, path, err)
	}
	summary.Kind = kind

	switch artifact {
	case domain.ArtifactVectorizer:
		vec, err := LoadVectorizer(path)
		if err != nil {
			return summary, err
		}
		summary.Features = vec.Features()
	default:
		clf, err := LoadClassifier(path)
		if err != nil {
			return summary, err
		}
		summary.Features = clf.Features()
		summary.Classes = clf.Classes()
	}
	return summary, nil
}
