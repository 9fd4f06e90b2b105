// Package artifact reads the fitted vectorizer and classifier from disk.
//
// Artifacts are JSON documents carrying a "kind" discriminator. Files may be
// gzip-compressed; compression is detected from the content, not the name.
package artifact

import (
	"bytes"
	"compress/gzip"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/doeshing/fakenews-go/internal/domain"
	"github.com/doeshing/fakenews-go/internal/ports"
)

type vectorizerDecoder func(raw []byte) (ports.Vectorizer, error)
type classifierDecoder func(raw []byte) (ports.Classifier, error)

var vectorizerDecoders = map[string]vectorizerDecoder{
	KindTfidf: func(raw []byte) (ports.Vectorizer, error) {
		var spec TfidfSpec
		if err := json.Unmarshal(raw, &spec); err != nil {
			return nil, err
		}
		return NewTfidf(spec)
	},
}

var classifierDecoders = map[string]classifierDecoder{
	KindLogisticRegression: func(raw []byte) (ports.Classifier, error) {
		var spec LogisticSpec
		if err := json.Unmarshal(raw, &spec); err != nil {
			return nil, err
		}
		return NewLogisticRegression(spec)
	},
	KindMultinomialNB: func(raw []byte) (ports.Classifier, error) {
		var spec NaiveBayesSpec
		if err := json.Unmarshal(raw, &spec); err != nil {
			return nil, err
		}
		return NewMultinomialNB(spec)
	},
}

// LoadVectorizer reads a vectorizer artifact.
func LoadVectorizer(path string) (ports.Vectorizer, error) {
	raw, kind, err := readDocument(path)
	if err != nil {
		return nil, loadError(domain.ArtifactVectorizer, path, err)
	}
	decode, ok := vectorizerDecoders[kind]
	if !ok {
		return nil, loadError(domain.ArtifactVectorizer, path, fmt.Errorf("unknown vectorizer kind %q", kind))
	}
	v, err := decode(raw)
	if err != nil {
		return nil, loadError(domain.ArtifactVectorizer, path, err)
	}
	return v, nil
}

// LoadClassifier reads a classifier artifact.
func LoadClassifier(path string) (ports.Classifier, error) {
	raw, kind, err := readDocument(path)
	if err != nil {
		return nil, loadError(domain.ArtifactClassifier, path, err)
	}
	decode, ok := classifierDecoders[kind]
	if !ok {
		return nil, loadError(domain.ArtifactClassifier, path, fmt.Errorf("unknown classifier kind %q", kind))
	}
	c, err := decode(raw)
	if err != nil {
		return nil, loadError(domain.ArtifactClassifier, path, err)
	}
	return c, nil
}

// Load reads both artifacts and checks that their feature widths agree.
func Load(vectorizerPath, modelPath string) (ports.Vectorizer, ports.Classifier, error) {
	vec, err := LoadVectorizer(vectorizerPath)
	if err != nil {
		return nil, nil, err
	}
	clf, err := LoadClassifier(modelPath)
	if err != nil {
		return nil, nil, err
	}
	if vec.Features() != clf.Features() {
		return nil, nil, loadError(domain.ArtifactClassifier, modelPath,
			fmt.Errorf("%w: vectorizer emits %d features, classifier expects %d",
				domain.ErrFeatureMismatch, vec.Features(), clf.Features()))
	}
	return vec, clf, nil
}

func readDocument(path string) ([]byte, string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, "", err
	}
	if bytes.HasPrefix(raw, []byte{0x1f, 0x8b}) {
		zr, err := gzip.NewReader(bytes.NewReader(raw))
		if err != nil {
			return nil, "", fmt.Errorf("gzip: %w", err)
		}
		defer zr.Close()
		if raw, err = io.ReadAll(zr); err != nil {
			return nil, "", fmt.Errorf("gzip: %w", err)
		}
	}

	var header struct {
		Kind string `json:"kind"`
	}
	if err := json.Unmarshal(raw, &header); err != nil {
		return nil, "", fmt.Errorf("decode: %w", err)
	}
	if header.Kind == "" {
		return nil, "", errors.New("missing kind")
	}
	return raw, header.Kind, nil
}

func loadError(kind domain.ArtifactKind, path string, err error) error {
	return &domain.ArtifactLoadError{Artifact: kind, Path: path, Err: err}
}
