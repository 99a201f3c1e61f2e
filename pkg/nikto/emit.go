package nikto

import (
	"context"
	"fmt"

	"github.com/user/nikto-adapter/pkg/model"
)

const (
	serviceName     = "http"
	serviceProtocol = "tcp"
	serviceStatus   = "open"
	websiteNote     = "website"
)

// Emit writes hosts into sink in order. Each host becomes a host, an interface and an
// open http/tcp service carrying a "website" note with a child note named after the
// target hostname; each item becomes a web vulnerability on that service. The first
// sink error stops emission.
func Emit(ctx context.Context, hosts []Host, sink model.Sink) error {
	for i := range hosts {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := emitHost(&hosts[i], sink); err != nil {
			return fmt.Errorf("host %q: %w", hosts[i].IP(), err)
		}
	}
	return nil
}

func emitHost(h *Host, sink model.Sink) error {
	ip, hostname := h.IP(), h.Hostname()

	hostID, err := sink.CreateHost(ip)
	if err != nil {
		return fmt.Errorf("create host: %w", err)
	}
	ifaceID, err := sink.CreateInterface(hostID, ip, hostname)
	if err != nil {
		return fmt.Errorf("create interface: %w", err)
	}
	serviceID, err := sink.CreateService(hostID, ifaceID, serviceName, serviceProtocol, []string{h.Port()}, serviceStatus)
	if err != nil {
		return fmt.Errorf("create service: %w", err)
	}
	noteID, err := sink.CreateNote(hostID, serviceID, websiteNote, "")
	if err != nil {
		return fmt.Errorf("create note: %w", err)
	}
	if _, err := sink.CreateChildNote(hostID, serviceID, noteID, hostname, ""); err != nil {
		return fmt.Errorf("create child note: %w", err)
	}

	for i := range h.Items {
		item := &h.Items[i]
		_, err := sink.CreateWebVuln(hostID, serviceID, model.WebVuln{
			Name:    item.Desc(),
			Refs:    item.Refs,
			Website: hostname,
			Method:  value(item.Method),
			Path:    value(item.NameLink),
			Query:   value(item.URI),
		})
		if err != nil {
			return fmt.Errorf("create web vuln %q: %w", value(item.ID), err)
		}
	}
	return nil
}
