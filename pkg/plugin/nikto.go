package plugin

import (
	"context"
	"errors"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/user/nikto-adapter/pkg/command"
	"github.com/user/nikto-adapter/pkg/config"
	"github.com/user/nikto-adapter/pkg/logging"
	"github.com/user/nikto-adapter/pkg/model"
	"github.com/user/nikto-adapter/pkg/nikto"
)

const (
	niktoID            = "Nikto"
	niktoName          = "Nikto XML Output Plugin"
	niktoVersion       = "2.1.5"
	niktoPluginVersion = "0.0.2"
)

// Nikto turns nikto command lines into XML-producing ones and loads the resulting
// reports into a host model.
type Nikto struct {
	Workspace string

	paths *command.PathTemplate
	log   logrus.FieldLogger
}

// NewNikto builds the plugin from cfg. A nil logger discards output.
func NewNikto(cfg *config.Config, log logrus.FieldLogger) (*Nikto, error) {
	paths, err := command.NewPathTemplate(cfg.DataDir, cfg.OutputTemplate)
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = logging.Discard()
	}
	return &Nikto{
		Workspace: cfg.Workspace,
		paths:     paths,
		log:       log.WithField("plugin", niktoID),
	}, nil
}

func (n *Nikto) ID() string            { return niktoID }
func (n *Nikto) Name() string          { return niktoName }
func (n *Nikto) Version() string       { return niktoVersion }
func (n *Nikto) PluginVersion() string { return niktoPluginVersion }

func (n *Nikto) Description() string {
	return "Rewrites nikto commands to emit an XML report and imports that report as hosts, services and web vulnerabilities."
}

// Completion lists the nikto options for help output.
func (n *Nikto) Completion() []command.Flag {
	return command.Flags()
}

// ProcessCommand rewrites commandLine so that nikto writes its XML report to a fresh
// path, which is returned alongside the new command.
func (n *Nikto) ProcessCommand(commandLine string) (string, string, error) {
	outputPath, err := n.paths.Next(n.Workspace, niktoID)
	if err != nil {
		return "", "", err
	}
	if !command.IsNikto(commandLine) {
		n.log.WithField("command", commandLine).Debug("Command does not look like nikto, rewriting anyway")
	}
	rewritten := command.Rewrite(commandLine, outputPath)
	n.log.WithField("output", outputPath).Debugf("Rewrote command: %s", rewritten)
	return rewritten, outputPath, nil
}

// ParseOutput loads an XML report into sink. Unreadable or unexpected reports are
// logged and skipped; only sink failures are returned.
func (n *Nikto) ParseOutput(ctx context.Context, output []byte, sink model.Sink) error {
	err := n.load(ctx, output, sink)
	switch {
	case errors.Is(err, nikto.ErrMalformedReport):
		n.log.WithError(err).Error("Discarding malformed nikto report")
		return nil
	case errors.Is(err, nikto.ErrStructuralMismatch):
		n.log.WithError(err).Warn("Nikto report has no scan details")
		return nil
	}
	return err
}

// ParseOutputFile reads the report at path and hands it to ParseOutput.
func (n *Nikto) ParseOutputFile(ctx context.Context, path string, sink model.Sink) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return n.ParseOutput(ctx, data, sink)
}

// ImportFile is ParseOutputFile without the leniency: parse failures are returned
// (wrapping nikto.ErrMalformedReport or nikto.ErrStructuralMismatch) and nothing
// reaches sink. A report nikto is still writing is not well-formed yet, so callers
// can retry on ErrMalformedReport.
func (n *Nikto) ImportFile(ctx context.Context, path string, sink model.Sink) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return n.load(ctx, data, sink)
}

func (n *Nikto) load(ctx context.Context, data []byte, sink model.Sink) error {
	hosts, err := nikto.Parse(data)
	if err != nil {
		return err
	}

	items := 0
	for i := range hosts {
		items += len(hosts[i].Items)
	}
	n.log.WithFields(logrus.Fields{"hosts": len(hosts), "items": items}).Info("Parsed nikto report")

	return nikto.Emit(ctx, hosts, sink)
}
