package api

import (
	"fmt"

	"github.com/quillhq/quill/internal/document"
)

// DocumentUpdate carries the optional pieces of an update call. Nil fields
// are left untouched on the store.
type DocumentUpdate struct {
	Title               *string `json:"title,omitempty"`
	SerializedEndpoints *string `json:"serialized_endpoints,omitempty"`
}

// CreateDocument creates a document for a user and returns the stored record.
func (c *Client) CreateDocument(userID int64, title, serializedEndpoints string) (*Document, error) {
	data, err := c.post(prefix+"/apis/create", map[string]any{
		"user_id":              userID,
		"title":                title,
		"serialized_endpoints": serializedEndpoints,
	})
	if err != nil {
		return nil, err
	}
	return decode[Document](data)
}

// ReadDocument fetches one document by its store id.
func (c *Client) ReadDocument(realID document.RealID) (*Document, error) {
	data, err := c.get(buildQuery(prefix+"/apis/get-by-id/", map[string]string{
		"api_id": fmt.Sprintf("%d", realID),
	}))
	if err != nil {
		return nil, err
	}
	return decode[Document](data)
}

// ListDocumentIDsForUser returns the ids of every document the user owns.
func (c *Client) ListDocumentIDsForUser(userID int64) ([]int64, error) {
	data, err := c.get(buildQuery(prefix+"/apis/get-all-for-user", map[string]string{
		"user_id": fmt.Sprintf("%d", userID),
	}))
	if err != nil {
		return nil, err
	}
	docs, err := decodeList[Document](data)
	if err != nil {
		return nil, err
	}
	ids := make([]int64, len(docs))
	for i, d := range docs {
		ids[i] = d.ID
	}
	return ids, nil
}

// UpdateDocument applies a partial update to a stored document.
func (c *Client) UpdateDocument(realID document.RealID, update DocumentUpdate) error {
	path := buildQuery(prefix+"/apis/update/", map[string]string{
		"api_id": fmt.Sprintf("%d", realID),
	})
	_, err := c.patch(path, update)
	return err
}

// DeleteDocument removes a stored document and everything under it.
func (c *Client) DeleteDocument(realID document.RealID) error {
	_, err := c.del(buildQuery(prefix+"/apis/delete/", map[string]string{
		"api_id": fmt.Sprintf("%d", realID),
	}))
	return err
}
