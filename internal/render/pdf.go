package render

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Fixed presentation parameters for PDF export. These are configuration
// constants of the export surface, not tunable per receipt.
const (
	PageFormat   = "a4"
	Orientation  = "portrait"
	MarginInches = 0.5
	ImageType    = "jpeg"
	ImageQuality = 0.98
)

// Exporter rasterizes a rendered receipt surface into a downloadable
// PDF. The core only supplies the HTML and the output filename.
type Exporter interface {
	Export(ctx context.Context, html []byte, filename string) ([]byte, error)
}

// Filename derives the download name for an exported receipt.
func Filename(receiptType string) string {
	return receiptType + "-receipt-preview.pdf"
}

// RasterizerClient invokes an external HTML-to-PDF rasterizer service.
type RasterizerClient struct {
	baseURL string
	client  *http.Client
}

func NewRasterizerClient(baseURL string) *RasterizerClient {
	return &RasterizerClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *RasterizerClient) Export(ctx context.Context, html []byte, filename string) ([]byte, error) {
	params := url.Values{}
	params.Set("filename", filename)
	params.Set("format", PageFormat)
	params.Set("orientation", Orientation)
	params.Set("margin", fmt.Sprintf("%.1fin", MarginInches))
	params.Set("imageType", ImageType)
	params.Set("imageQuality", fmt.Sprintf("%.2f", ImageQuality))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/render?"+params.Encode(), bytes.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to build rasterizer request: %w", err)
	}
	req.Header.Set("Content-Type", "text/html; charset=utf-8")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach rasterizer: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("rasterizer returned status %d", resp.StatusCode)
	}

	pdf, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read rasterizer response: %w", err)
	}
	return pdf, nil
}
