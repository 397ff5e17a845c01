package photo

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"

	"github.com/disintegration/gift"
	"github.com/drummonds/photoprism-go-api/api"
)

// PhotoPrismSource cycles through the photos of one PhotoPrism album.
// The album is listed once at construction; Next then downloads and
// decodes each photo in turn, wrapping round at the end.  The photo's
// original name stands in for a location label.
type PhotoPrismSource struct {
	client *api.ClientWithResponses
	photos []string
	names  []string
	index  int
}

// NewPhotoPrismSource connects to a PhotoPrism server and lists up to
// count photos of the given album.
func NewPhotoPrismSource(ctx context.Context, domain, token, albumUID string, count int) (*PhotoPrismSource, error) {
	provider := api.NewXAuthProvider(token)
	client, err := api.NewClientWithResponses(domain, api.WithRequestEditorFn(provider.Intercept))
	if err != nil {
		return nil, err
	}

	params := api.SearchPhotosParams{Count: count, S: &albumUID}
	photos, err := client.SearchPhotosWithResponse(ctx, &params)
	if err != nil {
		return nil, &NetworkError{URL: domain, Err: err}
	}
	if photos.HTTPResponse.StatusCode != 200 {
		return nil, &ProtocolError{URL: domain, Status: photos.HTTPResponse.StatusCode}
	}
	if photos.JSON200 == nil || len(*photos.JSON200) < 1 {
		return nil, &ProtocolError{URL: domain, Reason: "album has no photos"}
	}

	s := &PhotoPrismSource{client: client}
	for _, p := range *photos.JSON200 {
		if p.UID == nil {
			continue
		}
		s.photos = append(s.photos, *p.UID)
		name := ""
		if p.OriginalName != nil {
			name = *p.OriginalName
		}
		s.names = append(s.names, name)
	}
	if len(s.photos) == 0 {
		return nil, &ProtocolError{URL: domain, Reason: "album photos have no UIDs"}
	}
	return s, nil
}

func (s *PhotoPrismSource) Next(ctx context.Context) (*Record, error) {
	uid := s.photos[s.index]
	name := s.names[s.index]
	s.index = (s.index + 1) % len(s.photos)

	photo, err := s.client.GetPhotoWithResponse(ctx, uid)
	if err != nil {
		return nil, &NetworkError{URL: uid, Err: err}
	}
	if photo.JSON200 == nil || photo.JSON200.Files == nil {
		return nil, &ProtocolError{URL: uid, Reason: "photo has no files"}
	}
	file, ok := firstJpeg(*photo.JSON200.Files)
	if !ok {
		return nil, &ProtocolError{URL: uid, Reason: "photo has no JPEG file"}
	}

	download, err := s.client.GetDownloadWithResponse(ctx, *file.Hash)
	if err != nil {
		return nil, &NetworkError{URL: uid, Err: err}
	}
	if download.HTTPResponse.StatusCode != 200 {
		return nil, &ProtocolError{URL: uid, Status: download.HTTPResponse.StatusCode}
	}

	rawImg, err := jpeg.Decode(bytes.NewReader(download.Body))
	if err != nil {
		return nil, &DecodeError{URL: uid, Err: err}
	}

	orientation := 1
	if file.Orientation != nil {
		orientation = *file.Orientation
	}
	return &Record{
		Bitmap:   orient(rawImg, orientation),
		Location: FormatLocation(name),
	}, nil
}

func firstJpeg(files []api.EntityFile) (api.EntityFile, bool) {
	for _, file := range files {
		if file.Mime != nil && *file.Mime == "image/jpeg" && file.Hash != nil {
			return file, true
		}
	}
	return api.EntityFile{}, false
}

// orient applies the EXIF orientation the camera recorded, so portrait
// shots come out upright.
func orient(img image.Image, orientation int) image.Image {
	if orientation <= 1 || orientation > 8 {
		return img
	}
	g := gift.New()
	switch orientation {
	case 2:
		g.Add(gift.FlipHorizontal())
	case 3:
		g.Add(gift.Rotate180())
	case 4:
		g.Add(gift.FlipVertical())
	case 5:
		g.Add(gift.Rotate270())
		g.Add(gift.FlipHorizontal())
	case 6:
		g.Add(gift.Rotate270())
	case 7:
		g.Add(gift.Rotate90())
		g.Add(gift.FlipHorizontal())
	case 8:
		g.Add(gift.Rotate90())
	}
	oriented := image.NewRGBA(g.Bounds(img.Bounds()))
	g.Draw(oriented, img)
	return oriented
}

// String identifies the source in startup logging.
func (s *PhotoPrismSource) String() string {
	return fmt.Sprintf("photoprism album (%d photos)", len(s.photos))
}
