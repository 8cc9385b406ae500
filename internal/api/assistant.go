package api

import (
	"bytes"
	"context"
	"encoding/hex"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"

	"github.com/zeebo/blake3"

	"github.com/swasthaai/swastha-cli/internal/errors"
)

// AssistantAnswer is the AI microservice's reply to a query.
type AssistantAnswer struct {
	Answer    string   `json:"answer"`
	Citations []string `json:"citations"`
}

// UploadReceipt describes a file sent alongside a query.
type UploadReceipt struct {
	Name     string
	Size     int64
	Checksum string // blake3, hex
}

// Query sends a question to the assistant. Bearer authenticated.
func (c *Client) Query(ctx context.Context, query string) (*AssistantAnswer, error) {
	resp, err := c.doRequest(ctx, "POST", "/chatbot/query", map[string]string{"query": query})
	if err != nil {
		return nil, err
	}

	var answer AssistantAnswer
	if err := parseResponse(resp, &answer); err != nil {
		return nil, errors.Wrap(errors.ErrCodeChatQuery, "assistant query failed", err)
	}
	return &answer, nil
}

// QueryWithFile sends a question plus a document for the assistant to ground
// its answer on. The file travels as a multipart part named "file"; a blake3
// checksum is computed so the upload can be audited.
func (c *Client) QueryWithFile(ctx context.Context, query, filePath string) (*AssistantAnswer, *UploadReceipt, error) {
	file, err := os.Open(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, errors.NewFileNotFoundError(filePath)
		}
		return nil, nil, errors.Wrap(errors.ErrCodeFileReadFailed, fmt.Sprintf("failed to open %s", filePath), err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, nil, errors.Wrap(errors.ErrCodeFileReadFailed, fmt.Sprintf("failed to stat %s", filePath), err)
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	if err := writer.WriteField("query", query); err != nil {
		return nil, nil, errors.Wrap(errors.ErrCodeChatFileUpload, "failed to write query field", err)
	}

	part, err := writer.CreateFormFile("file", filepath.Base(filePath))
	if err != nil {
		return nil, nil, errors.Wrap(errors.ErrCodeChatFileUpload, "failed to create file part", err)
	}

	hasher := blake3.New()
	if _, err := io.Copy(io.MultiWriter(part, hasher), file); err != nil {
		return nil, nil, errors.Wrap(errors.ErrCodeChatFileUpload, "failed to read upload", err)
	}

	if err := writer.Close(); err != nil {
		return nil, nil, errors.Wrap(errors.ErrCodeChatFileUpload, "failed to finalize upload", err)
	}

	receipt := &UploadReceipt{
		Name:     filepath.Base(filePath),
		Size:     info.Size(),
		Checksum: hex.EncodeToString(hasher.Sum(nil)),
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/chatbot/query-with-file", &body)
	if err != nil {
		return nil, nil, errors.Wrap(errors.ErrCodeAPIRequest, "failed to create request", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	c.authorize(req)

	c.logger.Debug("dispatching upload", "path", "/chatbot/query-with-file",
		"file", receipt.Name, "size", receipt.Size, "blake3", receipt.Checksum)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, nil, errors.Wrap(errors.ErrCodeAPIRequest, "upload request failed", err)
	}

	var answer AssistantAnswer
	if err := parseResponse(resp, &answer); err != nil {
		return nil, nil, errors.Wrap(errors.ErrCodeChatQuery, "assistant query failed", err)
	}
	return &answer, receipt, nil
}
