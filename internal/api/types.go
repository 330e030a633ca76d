package api

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/quillhq/quill/internal/document"
)

// --- Wire types ---

// Token is the store's login response.
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ID          int64  `json:"id"`
}

// UserPublic is the store's public view of a user.
type UserPublic struct {
	ID      int64     `json:"id"`
	IsAdmin bool      `json:"is_admin"`
	Joined  time.Time `json:"joined"`
}

// Document is a stored API spec. Endpoints travel as one JSON-serialized
// ordered list so a whole document updates in a single call.
type Document struct {
	ID                  int64     `json:"id"`
	Title               string    `json:"title"`
	UserID              int64     `json:"user_id"`
	SerializedEndpoints string    `json:"serialized_endpoints"`
	Created             time.Time `json:"created"`
	Updated             time.Time `json:"updated"`
}

// Endpoint is a stored endpoint record.
type Endpoint struct {
	ID       int64     `json:"id"`
	Title    string    `json:"title"`
	Method   string    `json:"method"`
	Location int       `json:"location"`
	Created  time.Time `json:"created"`
	Updated  time.Time `json:"updated"`
}

// Field is a stored field record.
type Field struct {
	ID       int64     `json:"id"`
	Value    string    `json:"value"`
	Indent   int       `json:"indent"`
	Location int       `json:"location"`
	Created  time.Time `json:"created"`
	Updated  time.Time `json:"updated"`
}

// --- Endpoint list serialization ---

type wireField struct {
	ID       int64  `json:"id,omitempty"`
	Value    string `json:"value"`
	Indent   int    `json:"indent"`
	Location int    `json:"location"`
}

type wireEndpoint struct {
	ID       int64       `json:"id,omitempty"`
	Title    string      `json:"title"`
	Method   string      `json:"method"`
	Location int         `json:"location"`
	Fields   []wireField `json:"fields"`
}

// MarshalEndpoints serializes an ordered endpoint list for an update call.
func MarshalEndpoints(endpoints []document.Endpoint) (string, error) {
	wire := make([]wireEndpoint, len(endpoints))
	for i, ep := range endpoints {
		fields := make([]wireField, len(ep.Fields))
		for j, f := range ep.Fields {
			fields[j] = wireField{
				ID:       int64(f.RealID),
				Value:    f.Value,
				Indent:   f.Indent,
				Location: f.Location,
			}
		}
		wire[i] = wireEndpoint{
			ID:       int64(ep.RealID),
			Title:    ep.Title,
			Method:   string(ep.Method),
			Location: ep.Location,
			Fields:   fields,
		}
	}
	data, err := json.Marshal(wire)
	if err != nil {
		return "", fmt.Errorf("marshal endpoints: %w", err)
	}
	return string(data), nil
}

// UnmarshalEndpoints parses a serialized endpoint list back into domain
// records, minting fresh local ids and restoring dense location order.
func UnmarshalEndpoints(serialized string) ([]document.Endpoint, error) {
	if serialized == "" {
		return nil, nil
	}
	var wire []wireEndpoint
	if err := json.Unmarshal([]byte(serialized), &wire); err != nil {
		return nil, fmt.Errorf("parse endpoints: %w", err)
	}
	sort.SliceStable(wire, func(i, j int) bool { return wire[i].Location < wire[j].Location })

	now := time.Now()
	endpoints := make([]document.Endpoint, len(wire))
	for i, we := range wire {
		sort.SliceStable(we.Fields, func(a, b int) bool { return we.Fields[a].Location < we.Fields[b].Location })
		fields := make([]document.Field, len(we.Fields))
		for j, wf := range we.Fields {
			fields[j] = document.Field{
				LocalID: document.NewLocalID(),
				RealID:  document.RealID(wf.ID),
				Value:   wf.Value,
				Indent:  wf.Indent,
				Created: now,
				Updated: now,
			}
		}
		endpoints[i] = document.Endpoint{
			LocalID: document.NewLocalID(),
			RealID:  document.RealID(we.ID),
			Title:   we.Title,
			Method:  document.Method(we.Method),
			Fields:  document.Renumber(fields),
			Created: now,
			Updated: now,
		}
	}
	return document.Renumber(endpoints), nil
}
