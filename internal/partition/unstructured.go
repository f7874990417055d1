package partition

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"

	"docqa-rag/internal/models"
)

// UnstructuredClient partitions documents through an Unstructured partition
// server. The request enables the hi_res layout strategy, table structure
// inference, and inline image payload extraction.
type UnstructuredClient struct {
	baseURL string
	client  *http.Client
}

func NewUnstructuredClient(baseURL string) *UnstructuredClient {
	return &UnstructuredClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Minute},
	}
}

type unstructuredElement struct {
	Type     string `json:"type"`
	Text     string `json:"text"`
	Metadata struct {
		TextAsHTML  string `json:"text_as_html"`
		ImageBase64 string `json:"image_base64"`
		PageNumber  int    `json:"page_number"`
	} `json:"metadata"`
}

func (c *UnstructuredClient) Partition(ctx context.Context, filePath string) ([]models.Element, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("files", filepath.Base(filePath))
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, f); err != nil {
		return nil, err
	}
	fields := map[string]string{
		"strategy":                       "hi_res",
		"pdf_infer_table_structure":      "true",
		"extract_image_block_types":      `["Image"]`,
		"extract_image_block_to_payload": "true",
	}
	for k, v := range fields {
		if err := writer.WriteField(k, v); err != nil {
			return nil, err
		}
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/general/v0/general", &body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("partition request failed: %d, %s", resp.StatusCode, string(data))
	}

	var raw []unstructuredElement
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decoding partition response: %w", err)
	}

	elements := make([]models.Element, 0, len(raw))
	for _, el := range raw {
		elements = append(elements, models.Element{
			Kind:        kindFromTypeName(el.Type, el.Text),
			Text:        el.Text,
			TableHTML:   el.Metadata.TextAsHTML,
			ImageBase64: el.Metadata.ImageBase64,
			Page:        el.Metadata.PageNumber,
		})
	}
	log.Debug().Int("elements", len(elements)).Str("file", filePath).Msg("Partitioned document")
	return elements, nil
}
