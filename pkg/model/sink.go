package model

// Sink is the host model that parsed reports are written into. Every call returns the
// id of the created (or already existing) record.
type Sink interface {
	CreateHost(ip string) (string, error)
	CreateInterface(hostID, ip, hostname string) (string, error)
	CreateService(hostID, interfaceID, name, protocol string, ports []string, status string) (string, error)
	CreateNote(hostID, serviceID, title, body string) (string, error)
	CreateChildNote(hostID, serviceID, parentNoteID, title, body string) (string, error)
	CreateWebVuln(hostID, serviceID string, v WebVuln) (string, error)
}

// WebVuln is a finding on a web service.
type WebVuln struct {
	Name    string   `json:"name"`
	Refs    []string `json:"refs"`
	Website string   `json:"website"`
	Method  string   `json:"method"`
	Path    string   `json:"path"`
	Query   string   `json:"query"`
}
