package entity

// Response is one fragment of the turn output, filled in during post processing.
type Response struct {
	ID   string `json:"id" yaml:"id"`
	Text string `json:"text" yaml:"text"`
}

// ResponseSlot declares a fragment the post-process phase starts from.
type ResponseSlot struct {
	ID      string `json:"id" yaml:"id"`
	Caption string `json:"caption,omitempty" yaml:"caption,omitempty"`
}

// ResponseConfig lists the response fragments of a turn.
type ResponseConfig struct {
	Slots []ResponseSlot `json:"slots,omitempty" yaml:"slots,omitempty"`
}

// NewResponses creates one empty fragment per configured slot.
func (c *ResponseConfig) NewResponses() []*Response {
	if c == nil {
		return nil
	}
	result := make([]*Response, 0, len(c.Slots))
	for _, s := range c.Slots {
		result = append(result, &Response{ID: s.ID})
	}
	return result
}
