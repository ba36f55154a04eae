package core

import "time"

// RemoteInfo is one entry of `lxc remote list`, keyed by remote name in
// the listing.
type RemoteInfo struct {
	Addr     string `json:"Addr"`
	AuthType string `json:"AuthType"`
	Project  string `json:"Project"`
	Protocol string `json:"Protocol"`
	Public   bool   `json:"Public"`
	Global   bool   `json:"Global"`
	Static   bool   `json:"Static"`
}

// ContainerInfo is the subset of a `lxc list` instance record the
// transport keeps after connecting.
type ContainerInfo struct {
	Name         string            `json:"name"`
	Status       string            `json:"status"`
	StatusCode   int               `json:"status_code"`
	Type         string            `json:"type"`
	Architecture string            `json:"architecture"`
	Ephemeral    bool              `json:"ephemeral"`
	Location     string            `json:"location"`
	Profiles     []string          `json:"profiles"`
	Config       map[string]string `json:"config"`
	CreatedAt    time.Time         `json:"created_at"`
}

// Running reports whether the instance record was captured in the
// running state.
func (c *ContainerInfo) Running() bool {
	return c.Status == "Running"
}
