package classifier

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/artified/mosaic/internal/core/model"
	"github.com/artified/mosaic/internal/data/parser"
	"github.com/artified/mosaic/internal/util"
)

// HTTPClassifier labels frames by posting capture images to an external
// labeling service. Requests fan out across frames for throughput, but
// results are reassembled into strict frame order before they are
// returned; segmentation depends on ordered predecessors.
//
// Transient transport failures are retried with exponential backoff here,
// at the collaborator boundary. The engine itself never retries.
type HTTPClassifier struct {
	endpoint    string
	client      *http.Client
	concurrency int
	maxRetries  uint64
}

// NewHTTPClassifier creates a new HTTPClassifier instance.
func NewHTTPClassifier(endpoint string, concurrency int) *HTTPClassifier {
	if concurrency < 1 {
		concurrency = 1
	}
	return &HTTPClassifier{
		endpoint:    endpoint,
		client:      &http.Client{Timeout: 60 * time.Second},
		concurrency: concurrency,
		maxRetries:  3,
	}
}

// Classify labels every frame or fails the whole batch. The first error
// aborts the run; no partial label set is ever returned.
func (c *HTTPClassifier) Classify(ctx context.Context, refs []model.FrameRef) ([]model.LabelRecord, error) {
	start := time.Now()
	labels := make([]model.LabelRecord, len(refs))

	util.LogDebugf("Start classifying %d frames, concurrency: %d", len(refs), c.concurrency)

	semaphore := make(chan struct{}, c.concurrency)
	var wg sync.WaitGroup
	var mu sync.Mutex
	var firstErr error

	for i, ref := range refs {
		wg.Add(1)
		go func(i int, ref model.FrameRef) {
			defer wg.Done()

			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			mu.Lock()
			aborted := firstErr != nil
			mu.Unlock()
			if aborted {
				return
			}

			label, err := c.classifyFrame(ctx, ref)
			if err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				mu.Unlock()
				return
			}
			labels[i] = label
		}(i, ref)
	}

	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}

	util.LogDebugf("Classified %d frames in %v", len(refs), time.Since(start))
	return labels, nil
}

// classifyFrame posts one capture and decodes the strict-JSON label.
func (c *HTTPClassifier) classifyFrame(ctx context.Context, ref model.FrameRef) (model.LabelRecord, error) {
	img, err := os.ReadFile(ref.ImagePath)
	if err != nil {
		return model.LabelRecord{}, fmt.Errorf("failed to read capture %s: %w", ref.ImagePath, err)
	}

	var body []byte
	operation := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(img))
		if err != nil {
			return backoff.Permanent(err)
		}
		req.Header.Set("Content-Type", mimeTypeFor(ref.ImagePath))
		req.Header.Set("X-Capture-Time", ref.Timestamp.Format(time.RFC3339))

		resp, err := c.client.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return err
		}

		switch {
		case resp.StatusCode >= 200 && resp.StatusCode < 300:
			body = data
			return nil
		case resp.StatusCode >= 400 && resp.StatusCode < 500:
			return backoff.Permanent(fmt.Errorf("classifier rejected frame %d: status %d", ref.Index, resp.StatusCode))
		default:
			return fmt.Errorf("classifier returned status %d for frame %d", resp.StatusCode, ref.Index)
		}
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), c.maxRetries), ctx)
	if err := backoff.Retry(operation, policy); err != nil {
		return model.LabelRecord{}, fmt.Errorf("classifier request failed for frame %d: %w", ref.Index, err)
	}

	return parser.DecodeLabel(body, ref.Index)
}

func mimeTypeFor(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	}
	return "application/octet-stream"
}
