package ipfs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"
)

const (
	defaultGateway  = "https://gateway.pinata.cloud/ipfs/"
	pinFileEndpoint = "https://api.pinata.cloud/pinning/pinFileToIPFS"
	pinJSONEndpoint = "https://api.pinata.cloud/pinning/pinJSONToIPFS"
)

// Pinata is the content store adapter pinning mint media and metadata
// documents via the Pinata API.
type Pinata struct {
	apiKey     string
	secretKey  string
	gateway    string
	httpClient *http.Client
	logger     *slog.Logger
}

func NewPinata(apiKey, secretKey string, logger *slog.Logger) *Pinata {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pinata{
		apiKey:     apiKey,
		secretKey:  secretKey,
		gateway:    defaultGateway,
		httpClient: &http.Client{Timeout: 60 * time.Second},
		logger:     logger,
	}
}

func (p *Pinata) UploadFile(ctx context.Context, filename, contentType string, data []byte) (string, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, filename))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	if err != nil {
		return "", err
	}
	if _, err := part.Write(data); err != nil {
		return "", err
	}

	metadata, _ := json.Marshal(map[string]any{
		"name": filename,
		"keyvalues": map[string]string{
			"platform": "MintMyMoment",
			"type":     "nft-media",
		},
	})
	if err := writer.WriteField("pinataMetadata", string(metadata)); err != nil {
		return "", err
	}
	if err := writer.WriteField("pinataOptions", `{"cidVersion":0}`); err != nil {
		return "", err
	}
	if err := writer.Close(); err != nil {
		return "", err
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, pinFileEndpoint, &body)
	if err != nil {
		return "", err
	}
	request.Header.Set("Content-Type", writer.FormDataContentType())
	return p.pin(request)
}

func (p *Pinata) UploadJSON(ctx context.Context, name string, doc any) (string, error) {
	payload, err := json.Marshal(map[string]any{
		"pinataContent": doc,
		"pinataMetadata": map[string]any{
			"name": name,
			"keyvalues": map[string]string{
				"platform": "MintMyMoment",
				"type":     "nft-metadata",
			},
		},
	})
	if err != nil {
		return "", err
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, pinJSONEndpoint, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	request.Header.Set("Content-Type", "application/json")
	return p.pin(request)
}

func (p *Pinata) pin(request *http.Request) (string, error) {
	request.Header.Set("pinata_api_key", p.apiKey)
	request.Header.Set("pinata_secret_api_key", p.secretKey)

	response, err := p.httpClient.Do(request)
	if err != nil {
		return "", err
	}
	defer response.Body.Close()

	if response.StatusCode < 200 || response.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(response.Body, 256))
		return "", fmt.Errorf("pinata responded %d: %s", response.StatusCode, strings.TrimSpace(string(snippet)))
	}

	var result struct {
		IpfsHash string `json:"IpfsHash"`
	}
	if err := json.NewDecoder(response.Body).Decode(&result); err != nil {
		return "", err
	}
	if result.IpfsHash == "" {
		return "", fmt.Errorf("pinata returned no content hash")
	}
	return p.gateway + result.IpfsHash, nil
}
