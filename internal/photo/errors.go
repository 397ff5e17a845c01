package photo

import "fmt"

// NetworkError reports that the remote endpoint could not be reached at
// all (connection failure or timeout).
type NetworkError struct {
	URL string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error fetching %s: %v", e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// ProtocolError reports that the endpoint answered but not usefully: a
// non-2xx status or a payload that does not describe a photo.
type ProtocolError struct {
	URL    string
	Status int
	Reason string
}

func (e *ProtocolError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("protocol error fetching %s: status %d", e.URL, e.Status)
	}
	return fmt.Sprintf("protocol error fetching %s: %s", e.URL, e.Reason)
}

// DecodeError reports that the downloaded bytes were not a decodable
// image.
type DecodeError struct {
	URL string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("can't decode image from %s: %v", e.URL, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }
