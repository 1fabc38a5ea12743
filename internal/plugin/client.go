package plugin

import (
	"fmt"
	"io"
	"sync"
)

// Client is the host side of the protocol. Calls are serialized.
type Client struct {
	mu     sync.Mutex
	w      io.Writer
	fr     *FrameReader
	nextID uint64
}

func NewClient(r io.Reader, w io.Writer) *Client {
	return &Client{w: w, fr: NewFrameReader(r, 0)}
}

// Call sends req with a fresh ID and waits for its response.
func (c *Client) Call(req Request) (*Response, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.nextID++
	req.ID = c.nextID
	if err := WriteFrame(c.w, &req); err != nil {
		return nil, err
	}
	var resp Response
	if err := c.fr.Read(&resp); err != nil {
		return nil, err
	}
	if resp.ID != req.ID {
		return nil, fmt.Errorf("plugin: response id %d, want %d", resp.ID, req.ID)
	}
	return &resp, nil
}
