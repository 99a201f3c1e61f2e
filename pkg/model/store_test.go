package model

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seed creates host -> interface -> http service and returns the ids.
func seed(t *testing.T, s *Store, ip, hostname, port string) (hostID, serviceID string) {
	t.Helper()
	hostID, err := s.CreateHost(ip)
	require.NoError(t, err)
	ifaceID, err := s.CreateInterface(hostID, ip, hostname)
	require.NoError(t, err)
	serviceID, err = s.CreateService(hostID, ifaceID, "http", "tcp", []string{port}, "open")
	require.NoError(t, err)
	return hostID, serviceID
}

func TestStoreCreateResolvesExistingRecords(t *testing.T) {
	s := NewStore()

	h1, svc1 := seed(t, s, "10.0.0.1", "web.local", "80")
	h2, svc2 := seed(t, s, "10.0.0.1", "web.local", "80")
	assert.Equal(t, h1, h2)
	assert.Equal(t, svc1, svc2)

	n1, err := s.CreateNote(h1, svc1, "website", "")
	require.NoError(t, err)
	n2, err := s.CreateNote(h1, svc1, "website", "")
	require.NoError(t, err)
	assert.Equal(t, n1, n2)

	v := WebVuln{Name: "Server leaks inodes", Refs: []string{"BID-3092"}, Method: "GET", Path: "http://web.local/", Query: "/"}
	v1, err := s.CreateWebVuln(h1, svc1, v)
	require.NoError(t, err)
	v2, err := s.CreateWebVuln(h1, svc1, v)
	require.NoError(t, err)
	assert.Equal(t, v1, v2)

	assert.Equal(t, Summary{Hosts: 1, Services: 1, Notes: 1, Vulns: 1}, s.Summary())
}

func TestStoreSeparatesPorts(t *testing.T) {
	s := NewStore()
	h, svc80 := seed(t, s, "10.0.0.1", "", "80")
	_, svc443 := seed(t, s, "10.0.0.1", "", "443")

	assert.NotEqual(t, svc80, svc443)
	assert.Len(t, s.Hosts, 1)
	assert.Len(t, s.hosts[h].Services, 2)
}

func TestStoreChildNote(t *testing.T) {
	s := NewStore()
	h, svc := seed(t, s, "10.0.0.1", "web.local", "80")

	parent, err := s.CreateNote(h, svc, "website", "")
	require.NoError(t, err)
	child, err := s.CreateChildNote(h, svc, parent, "web.local", "")
	require.NoError(t, err)
	assert.NotEqual(t, parent, child)

	notes := s.services[svc].Notes
	require.Len(t, notes, 2)
	assert.Equal(t, "", notes[0].ParentID)
	assert.Equal(t, parent, notes[1].ParentID)
	assert.Equal(t, "web.local", notes[1].Title)
}

func TestStoreUnknownIDs(t *testing.T) {
	s := NewStore()
	h, svc := seed(t, s, "10.0.0.1", "", "80")

	_, err := s.CreateInterface("missing", "10.0.0.2", "")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.CreateService("missing", "", "http", "tcp", []string{"80"}, "open")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.CreateNote(h, "missing", "website", "")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.CreateChildNote(h, svc, "missing", "child", "")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.CreateWebVuln("missing", svc, WebVuln{Name: "x"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStoreConcurrentCreateHost(t *testing.T) {
	s := NewStore()

	var wg sync.WaitGroup
	ids := make([]string, 20)
	for i := range ids {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id, err := s.CreateHost("192.168.1.10")
			assert.NoError(t, err)
			ids[i] = id
		}(i)
	}
	wg.Wait()

	for _, id := range ids {
		assert.Equal(t, ids[0], id)
	}
	assert.Len(t, s.Hosts, 1)
}

func TestStoreReport(t *testing.T) {
	s := NewStore()
	h, svc := seed(t, s, "192.168.1.10", "intranet", "8080")
	parent, err := s.CreateNote(h, svc, "website", "")
	require.NoError(t, err)
	_, err = s.CreateChildNote(h, svc, parent, "intranet", "")
	require.NoError(t, err)
	_, err = s.CreateWebVuln(h, svc, WebVuln{Name: "Directory indexing found.", Refs: []string{"BID-3268"}, Method: "GET", Path: "http://intranet:8080/icons/"})
	require.NoError(t, err)

	report := s.Report()
	assert.Contains(t, report, "Host model (1 hosts)")
	assert.Contains(t, report, "192.168.1.10")
	assert.Contains(t, report, "hostname: intranet")
	assert.Contains(t, report, "8080/tcp http (open)")
	assert.Contains(t, report, "note: website")
	assert.Contains(t, report, "[GET] http://intranet:8080/icons/ Directory indexing found.")
	assert.Contains(t, report, "refs: BID-3268")
}
