package photo

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"time"

	"github.com/go-resty/resty/v2"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
)

// randomPhotoInfo is the JSON payload of the random-photo endpoint.
// Both field spellings are accepted; older deployments of the endpoint
// use fullUrl/place.
type randomPhotoInfo struct {
	ImageURL     string `json:"image_url"`
	FullURL      string `json:"fullUrl"`
	LocationName string `json:"location_name"`
	Place        string `json:"place"`
}

func (p *randomPhotoInfo) imageURL() string {
	if p.ImageURL != "" {
		return p.ImageURL
	}
	return p.FullURL
}

func (p *randomPhotoInfo) location() string {
	if p.LocationName != "" {
		return p.LocationName
	}
	return p.Place
}

// APISource fetches random photos from an HTTP endpoint returning
// {image_url, location_name}.  Each Next makes one request for the info
// payload and one for the image bytes.
type APISource struct {
	client   *resty.Client
	endpoint string
}

func NewAPISource(endpoint string, timeout time.Duration) *APISource {
	client := resty.New()
	if timeout > 0 {
		client.SetTimeout(timeout)
	}
	return &APISource{client: client, endpoint: endpoint}
}

func (s *APISource) Next(ctx context.Context) (*Record, error) {
	resp, err := s.client.R().SetContext(ctx).Get(s.endpoint)
	if err != nil {
		return nil, &NetworkError{URL: s.endpoint, Err: err}
	}
	if resp.IsError() {
		return nil, &ProtocolError{URL: s.endpoint, Status: resp.StatusCode()}
	}

	var info randomPhotoInfo
	if err := json.Unmarshal(resp.Body(), &info); err != nil {
		return nil, &ProtocolError{URL: s.endpoint, Reason: "malformed JSON payload"}
	}
	imageURL := info.imageURL()
	if imageURL == "" {
		return nil, &ProtocolError{URL: s.endpoint, Reason: "payload has no image URL"}
	}

	imgResp, err := s.client.R().SetContext(ctx).Get(imageURL)
	if err != nil {
		return nil, &NetworkError{URL: imageURL, Err: err}
	}
	if imgResp.IsError() {
		return nil, &ProtocolError{URL: imageURL, Status: imgResp.StatusCode()}
	}

	bitmap, _, err := image.Decode(bytes.NewReader(imgResp.Body()))
	if err != nil {
		return nil, &DecodeError{URL: imageURL, Err: err}
	}

	return &Record{Bitmap: bitmap, Location: FormatLocation(info.location())}, nil
}
