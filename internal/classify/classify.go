// Package classify resolves exercise names to muscle-group categories
// through an external text-classification service, with a persistent
// cache keyed by normalized exercise name so each distinct name is
// classified at most once.
package classify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Classifier maps an exercise name to a muscle-group category.
type Classifier interface {
	ClassifyExercise(ctx context.Context, name string) (string, error)
}

// Cache is the persistence needed by the cached classifier; *storage.DB
// satisfies it.
type Cache interface {
	GetClassification(ctx context.Context, normalizedName string) (string, bool, error)
	PutClassification(ctx context.Context, normalizedName, category string) error
}

// Normalize canonicalizes an exercise name for cache lookups: lowercase
// with runs of whitespace collapsed, so "Bench  Press" and "bench press"
// share one cache entry.
func Normalize(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), " ")
}

// HTTPClassifier calls the external classification service.
type HTTPClassifier struct {
	url        string
	httpClient *http.Client
}

// NewHTTPClassifier creates a classifier targeting the given endpoint.
func NewHTTPClassifier(url string) *HTTPClassifier {
	return &HTTPClassifier{
		url:        url,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// ClassifyExercise posts the exercise name and returns the category the
// service assigns.
func (c *HTTPClassifier) ClassifyExercise(ctx context.Context, name string) (string, error) {
	payload, err := json.Marshal(map[string]string{"name": name})
	if err != nil {
		return "", fmt.Errorf("encoding classify request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("creating classify request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling classifier: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("classifier returned status %d: %s", resp.StatusCode, body)
	}

	var result struct {
		Category string `json:"category"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decoding classify response: %w", err)
	}
	return result.Category, nil
}

// Cached wraps a Classifier with a persistent name-keyed cache.
type Cached struct {
	classifier Classifier
	cache      Cache
}

// NewCached creates a cache-backed classifier.
func NewCached(classifier Classifier, cache Cache) *Cached {
	return &Cached{classifier: classifier, cache: cache}
}

// ClassifyExercise returns the cached category when one exists, and
// otherwise consults the underlying classifier and caches its answer.
func (c *Cached) ClassifyExercise(ctx context.Context, name string) (string, error) {
	key := Normalize(name)
	if key == "" {
		return "", fmt.Errorf("empty exercise name")
	}

	if category, ok, err := c.cache.GetClassification(ctx, key); err != nil {
		return "", err
	} else if ok {
		return category, nil
	}

	category, err := c.classifier.ClassifyExercise(ctx, name)
	if err != nil {
		return "", err
	}
	if err := c.cache.PutClassification(ctx, key, category); err != nil {
		return "", err
	}
	return category, nil
}
