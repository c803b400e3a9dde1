package upload

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/pkg/errors"
)

const defaultBaseURL = "https://api.imgbb.com/1/upload"

var ErrMissingAPIKey = errors.New("upload: api key is not configured")

// Uploader pushes a file to external object storage and returns its public URL.
type Uploader interface {
	Upload(fileName string, file io.Reader) (string, error)
}

// Client talks to an imgbb-style media hosting API.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type uploadResponse struct {
	Data struct {
		URL string `json:"url"`
	} `json:"data"`
	Success bool `json:"success"`
}

// Upload posts the file as multipart form data and returns the hosted URL.
func (c *Client) Upload(fileName string, file io.Reader) (string, error) {
	if c.apiKey == "" {
		return "", ErrMissingAPIKey
	}

	body := new(bytes.Buffer)
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile("image", fileName)
	if err != nil {
		return "", errors.Wrap(err, "create form file failed")
	}
	if _, err = io.Copy(part, file); err != nil {
		return "", errors.Wrap(err, "copy file content failed")
	}
	if err = writer.WriteField("key", c.apiKey); err != nil {
		return "", errors.Wrap(err, "write api key field failed")
	}
	if err = writer.Close(); err != nil {
		return "", errors.Wrap(err, "close multipart writer failed")
	}

	req, err := http.NewRequest(http.MethodPost, c.baseURL, body)
	if err != nil {
		return "", errors.Wrap(err, "create upload request failed")
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", errors.Wrap(err, "upload request failed")
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", errors.Wrap(err, "read upload response failed")
	}

	if resp.StatusCode != http.StatusOK {
		return "", errors.Errorf("upload failed with status %d: %s", resp.StatusCode, respBody)
	}

	var parsed uploadResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", errors.Wrap(err, "decode upload response failed")
	}

	if !parsed.Success || parsed.Data.URL == "" {
		return "", errors.New("upload response contains no url")
	}

	return parsed.Data.URL, nil
}
