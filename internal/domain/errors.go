package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyInput is returned when a prediction is requested for blank text.
	ErrEmptyInput = errors.New("input text is empty")
	// ErrUnknownClass is returned when the classifier emits an index outside {0,1}.
	ErrUnknownClass = errors.New("unknown class index")
	// ErrFeatureMismatch is returned when feature dimensions disagree between artifacts.
	ErrFeatureMismatch = errors.New("feature dimension mismatch")
	// ErrSessionNotFound is returned by stores asked to delete an unknown session.
	ErrSessionNotFound = errors.New("session not found")
	// ErrNonPublicAddress is returned when an article url resolves to a loopback,
	// private or link-local address and such hosts are not allowed.
	ErrNonPublicAddress = errors.New("address is not publicly routable")
)

// ArtifactKind names which of the two startup artifacts failed.
type ArtifactKind string

const (
	ArtifactVectorizer ArtifactKind = "vectorizer"
	ArtifactClassifier ArtifactKind = "classifier"
)

// ArtifactLoadError reports a missing, unreadable or malformed artifact file.
type ArtifactLoadError struct {
	Artifact ArtifactKind
	Path     string
	Err      error
}

func (e *ArtifactLoadError) Error() string {
	return fmt.Sprintf("load %s artifact %s: %v", e.Artifact, e.Path, e.Err)
}

func (e *ArtifactLoadError) Unwrap() error {
	return e.Err
}
