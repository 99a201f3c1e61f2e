package model

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("record not found")

var _ Sink = (*Store)(nil)

// Host is a scanned address with its interfaces and services.
type Host struct {
	ID         string       `json:"id"`
	IP         string       `json:"ip"`
	Interfaces []*Interface `json:"interfaces"`
	Services   []*Service   `json:"services"`
}

type Interface struct {
	ID       string `json:"id"`
	IP       string `json:"ip"`
	Hostname string `json:"hostname"`
}

type Service struct {
	ID          string   `json:"id"`
	InterfaceID string   `json:"interface_id"`
	Name        string   `json:"name"`
	Protocol    string   `json:"protocol"`
	Ports       []string `json:"ports"`
	Status      string   `json:"status"`
	Notes       []*Note  `json:"notes"`
	Vulns       []*Vuln  `json:"vulns"`
}

// Note is attached to a service; ParentID is set for notes attached to another note.
type Note struct {
	ID       string `json:"id"`
	ParentID string `json:"parent_id,omitempty"`
	Title    string `json:"title"`
	Body     string `json:"body"`
}

// Vuln is a stored web vulnerability.
type Vuln struct {
	ID string `json:"id"`
	WebVuln
}

// Store is an in-memory Sink. Creating a record that already exists returns the
// existing id, so ingesting the same report twice leaves the store unchanged.
type Store struct {
	Hosts []*Host

	mu       sync.RWMutex
	hosts    map[string]*Host    // by id
	byIP     map[string]*Host    // by ip
	services map[string]*Service // by id
	notes    map[string]*Note    // by id
}

// NewStore returns an empty store.
func NewStore() *Store {
	s := &Store{Hosts: make([]*Host, 0)}
	s.reindex()
	return s
}

func (s *Store) reindex() {
	s.hosts = make(map[string]*Host)
	s.byIP = make(map[string]*Host)
	s.services = make(map[string]*Service)
	s.notes = make(map[string]*Note)
	for _, h := range s.Hosts {
		s.hosts[h.ID] = h
		s.byIP[h.IP] = h
		for _, svc := range h.Services {
			s.services[svc.ID] = svc
			for _, n := range svc.Notes {
				s.notes[n.ID] = n
			}
		}
	}
}

// CreateHost returns the id of the host with ip, adding it if needed.
func (s *Store) CreateHost(ip string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if h, ok := s.byIP[ip]; ok {
		return h.ID, nil
	}
	h := &Host{ID: uuid.NewString(), IP: ip}
	s.Hosts = append(s.Hosts, h)
	s.hosts[h.ID] = h
	s.byIP[ip] = h
	return h.ID, nil
}

// CreateInterface adds an interface to hostID unless one with the same ip exists.
func (s *Store) CreateInterface(hostID, ip, hostname string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	h, ok := s.hosts[hostID]
	if !ok {
		return "", fmt.Errorf("host %s: %w", hostID, ErrNotFound)
	}
	for _, iface := range h.Interfaces {
		if iface.IP == ip {
			if iface.Hostname == "" {
				iface.Hostname = hostname
			}
			return iface.ID, nil
		}
	}
	iface := &Interface{ID: uuid.NewString(), IP: ip, Hostname: hostname}
	h.Interfaces = append(h.Interfaces, iface)
	return iface.ID, nil
}

// CreateService adds a service to hostID unless one with the same name, protocol
// and ports exists.
func (s *Store) CreateService(hostID, interfaceID, name, protocol string, ports []string, status string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	h, ok := s.hosts[hostID]
	if !ok {
		return "", fmt.Errorf("host %s: %w", hostID, ErrNotFound)
	}
	key := strings.Join(ports, ",")
	for _, svc := range h.Services {
		if svc.Name == name && svc.Protocol == protocol && strings.Join(svc.Ports, ",") == key {
			svc.Status = status
			return svc.ID, nil
		}
	}
	svc := &Service{
		ID:          uuid.NewString(),
		InterfaceID: interfaceID,
		Name:        name,
		Protocol:    protocol,
		Ports:       append([]string(nil), ports...),
		Status:      status,
	}
	h.Services = append(h.Services, svc)
	s.services[svc.ID] = svc
	return svc.ID, nil
}

// CreateNote attaches a titled note to a service, reusing one with the same title.
func (s *Store) CreateNote(hostID, serviceID, title, body string) (string, error) {
	return s.addNote(hostID, serviceID, "", title, body)
}

// CreateChildNote attaches a note to parentNoteID on the same service.
func (s *Store) CreateChildNote(hostID, serviceID, parentNoteID, title, body string) (string, error) {
	return s.addNote(hostID, serviceID, parentNoteID, title, body)
}

func (s *Store) addNote(hostID, serviceID, parentID, title, body string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	svc, err := s.service(hostID, serviceID)
	if err != nil {
		return "", err
	}
	if _, ok := s.notes[parentID]; parentID != "" && !ok {
		return "", fmt.Errorf("note %s: %w", parentID, ErrNotFound)
	}
	for _, n := range svc.Notes {
		if n.ParentID == parentID && n.Title == title {
			return n.ID, nil
		}
	}
	n := &Note{ID: uuid.NewString(), ParentID: parentID, Title: title, Body: body}
	svc.Notes = append(svc.Notes, n)
	s.notes[n.ID] = n
	return n.ID, nil
}

// CreateWebVuln records v on a service. An identical finding keeps its id.
func (s *Store) CreateWebVuln(hostID, serviceID string, v WebVuln) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	svc, err := s.service(hostID, serviceID)
	if err != nil {
		return "", err
	}
	for _, existing := range svc.Vulns {
		if sameVuln(existing.WebVuln, v) {
			existing.Refs = v.Refs
			return existing.ID, nil
		}
	}
	vuln := &Vuln{ID: uuid.NewString(), WebVuln: v}
	svc.Vulns = append(svc.Vulns, vuln)
	return vuln.ID, nil
}

// service must be called with s.mu held.
func (s *Store) service(hostID, serviceID string) (*Service, error) {
	if _, ok := s.hosts[hostID]; !ok {
		return nil, fmt.Errorf("host %s: %w", hostID, ErrNotFound)
	}
	svc, ok := s.services[serviceID]
	if !ok {
		return nil, fmt.Errorf("service %s: %w", serviceID, ErrNotFound)
	}
	return svc, nil
}

func sameVuln(a, b WebVuln) bool {
	return a.Name == b.Name && a.Method == b.Method && a.Path == b.Path && a.Query == b.Query
}

// Summary counts the records held by the store.
type Summary struct {
	Hosts    int
	Services int
	Notes    int
	Vulns    int
}

func (s *Store) Summary() Summary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sum := Summary{Hosts: len(s.Hosts)}
	for _, h := range s.Hosts {
		sum.Services += len(h.Services)
		for _, svc := range h.Services {
			sum.Notes += len(svc.Notes)
			sum.Vulns += len(svc.Vulns)
		}
	}
	return sum
}

// Report returns a text summary of the store.
func (s *Store) Report() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Host model (%d hosts):\n", len(s.Hosts)))
	sb.WriteString("--------------------------------------------------\n")

	for _, h := range s.Hosts {
		sb.WriteString(fmt.Sprintf("%s\n", h.IP))
		for _, iface := range h.Interfaces {
			if iface.Hostname != "" {
				sb.WriteString(fmt.Sprintf("  hostname: %s\n", iface.Hostname))
			}
		}
		for _, svc := range h.Services {
			sb.WriteString(fmt.Sprintf("  %s/%s %s (%s)\n", strings.Join(svc.Ports, ","), svc.Protocol, svc.Name, svc.Status))
			for _, n := range svc.Notes {
				indent := "    "
				if n.ParentID != "" {
					indent = "      "
				}
				sb.WriteString(fmt.Sprintf("%snote: %s\n", indent, n.Title))
			}
			for _, v := range svc.Vulns {
				sb.WriteString(fmt.Sprintf("    [%s] %s %s\n", v.Method, v.Path, v.Name))
				if len(v.Refs) > 0 {
					sb.WriteString(fmt.Sprintf("      refs: %s\n", strings.Join(v.Refs, ", ")))
				}
			}
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
