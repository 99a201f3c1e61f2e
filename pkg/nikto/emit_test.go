package nikto

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/nikto-adapter/pkg/model"
)

// recordingSink logs every call as a line and hands out sequential ids.
type recordingSink struct {
	calls  []string
	vulns  []model.WebVuln
	n      int
	failOn string
}

func (r *recordingSink) next(call string) (string, error) {
	r.calls = append(r.calls, call)
	if r.failOn != "" && strings.HasPrefix(call, r.failOn) {
		return "", errors.New("sink unavailable")
	}
	r.n++
	return fmt.Sprintf("id%d", r.n), nil
}

func (r *recordingSink) CreateHost(ip string) (string, error) {
	return r.next("host " + ip)
}

func (r *recordingSink) CreateInterface(hostID, ip, hostname string) (string, error) {
	return r.next(fmt.Sprintf("interface %s %s %s", hostID, ip, hostname))
}

func (r *recordingSink) CreateService(hostID, interfaceID, name, protocol string, ports []string, status string) (string, error) {
	return r.next(fmt.Sprintf("service %s %s %s/%s %v %s", hostID, interfaceID, name, protocol, ports, status))
}

func (r *recordingSink) CreateNote(hostID, serviceID, title, body string) (string, error) {
	return r.next(fmt.Sprintf("note %s %s %s", hostID, serviceID, title))
}

func (r *recordingSink) CreateChildNote(hostID, serviceID, parentNoteID, title, body string) (string, error) {
	return r.next(fmt.Sprintf("childnote %s %s %s %s", hostID, serviceID, parentNoteID, title))
}

func (r *recordingSink) CreateWebVuln(hostID, serviceID string, v model.WebVuln) (string, error) {
	r.vulns = append(r.vulns, v)
	return r.next(fmt.Sprintf("vuln %s %s %s", hostID, serviceID, v.Name))
}

func (r *recordingSink) count(prefix string) int {
	n := 0
	for _, c := range r.calls {
		if strings.HasPrefix(c, prefix+" ") {
			n++
		}
	}
	return n
}

func TestEmitReport(t *testing.T) {
	hosts, err := ParseFile(filepath.Join("testdata", "report.xml"))
	require.NoError(t, err)

	sink := &recordingSink{}
	require.NoError(t, Emit(context.Background(), hosts, sink))

	want := []string{
		"host 192.168.10.5",
		"interface id1 192.168.10.5 intranet.example.com",
		"service id1 id2 http/tcp [80] open",
		"note id1 id3 website",
		"childnote id1 id3 id4 intranet.example.com",
		"vuln id1 id3 The anti-clickjacking X-Frame-Options header is not present.",
		"vuln id1 id3 /icons/README: Apache default file found.",
		"vuln id1 id3 Allowed HTTP Methods: GET, HEAD, POST, OPTIONS",
		"host 192.168.10.6",
		"interface id9 192.168.10.6 192.168.10.6",
		"service id9 id10 http/tcp [8080] open",
		"note id9 id11 website",
		"childnote id9 id11 id12 192.168.10.6",
	}
	assert.Equal(t, want, sink.calls)

	require.Len(t, sink.vulns, 3)
	assert.Equal(t, model.WebVuln{
		Name:    "/icons/README: Apache default file found.",
		Refs:    []string{"BID-3092"},
		Website: "intranet.example.com",
		Method:  "GET",
		Path:    "http://intranet.example.com:80/icons/README",
		Query:   "/icons/README",
	}, sink.vulns[1])
	assert.Empty(t, sink.vulns[0].Refs)
}

func TestEmitHostWithoutItems(t *testing.T) {
	hosts, err := Parse([]byte(`<niktoscan><niktoscan><scandetails targetip="10.0.0.1" targethostname="a.local" targetport="80"/></niktoscan></niktoscan>`))
	require.NoError(t, err)

	sink := &recordingSink{}
	require.NoError(t, Emit(context.Background(), hosts, sink))

	assert.Equal(t, 1, sink.count("note"))
	assert.Equal(t, 1, sink.count("childnote"))
	assert.Equal(t, 0, sink.count("vuln"))
}

func TestEmitStopsOnSinkError(t *testing.T) {
	hosts, err := ParseFile(filepath.Join("testdata", "report.xml"))
	require.NoError(t, err)

	sink := &recordingSink{failOn: "service"}
	err = Emit(context.Background(), hosts, sink)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "create service")
	assert.Contains(t, err.Error(), "192.168.10.5")
	assert.Equal(t, 0, sink.count("vuln"))
	assert.Equal(t, 1, sink.count("host"))
}

func TestEmitHonoursCancellation(t *testing.T) {
	hosts, err := ParseFile(filepath.Join("testdata", "report.xml"))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sink := &recordingSink{}
	assert.ErrorIs(t, Emit(ctx, hosts, sink), context.Canceled)
	assert.Empty(t, sink.calls)
}

func TestEmitIntoStoreIsIdempotent(t *testing.T) {
	hosts, err := ParseFile(filepath.Join("testdata", "report.xml"))
	require.NoError(t, err)

	store := model.NewStore()
	require.NoError(t, Emit(context.Background(), hosts, store))
	first := store.Summary()
	require.NoError(t, Emit(context.Background(), hosts, store))

	assert.Equal(t, first, store.Summary())
	assert.Equal(t, model.Summary{Hosts: 2, Services: 2, Notes: 4, Vulns: 3}, first)
}
