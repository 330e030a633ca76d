package api

import (
	"fmt"

	"github.com/quillhq/quill/internal/document"
)

// CreateEndpoint creates an endpoint under a confirmed document and returns
// its stored record. The parent document's real id must be known; callers
// park the call on the identity registry until it is.
func (c *Client) CreateEndpoint(parentRealID document.RealID, title string, method document.Method, location int) (*Endpoint, error) {
	data, err := c.post(prefix+"/endpoints/create", map[string]any{
		"api_id":   int64(parentRealID),
		"title":    title,
		"method":   string(method),
		"location": location,
	})
	if err != nil {
		return nil, err
	}
	return decode[Endpoint](data)
}

// CreateField creates a field under a confirmed endpoint.
func (c *Client) CreateField(parentRealID document.RealID, value string, location int) (*Field, error) {
	data, err := c.post(prefix+"/fields/create", map[string]any{
		"endpoint_id": int64(parentRealID),
		"value":       value,
		"location":    location,
	})
	if err != nil {
		return nil, err
	}
	return decode[Field](data)
}

// DeleteEndpoint removes a stored endpoint and its fields.
func (c *Client) DeleteEndpoint(realID document.RealID) error {
	_, err := c.del(buildQuery(prefix+"/endpoints/delete/", map[string]string{
		"endpoint_id": fmt.Sprintf("%d", realID),
	}))
	return err
}

// DeleteField removes a stored field.
func (c *Client) DeleteField(realID document.RealID) error {
	_, err := c.del(buildQuery(prefix+"/fields/delete/", map[string]string{
		"field_id": fmt.Sprintf("%d", realID),
	}))
	return err
}
