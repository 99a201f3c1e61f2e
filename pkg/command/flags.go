package command

import "sort"

// Flag describes one nikto command line option for help and completion.
type Flag struct {
	Name       string
	TakesValue bool
	Help       string
}

var niktoFlags = []Flag{
	{"-ask", true, "Whether to ask about submitting updates"},
	{"-Cgidirs", true, `Scan these CGI dirs: "none", "all", or values like "/cgi/ /cgi-a/"`},
	{"-config", true, "Use this config file"},
	{"-Display", true, "Turn on/off display outputs"},
	{"-dbcheck", false, "Check database and other key files for syntax errors"},
	{"-evasion", true, "Encoding technique"},
	{"-Format", true, "Save file (-o) format"},
	{"-Help", false, "Extended help information"},
	{"-host", true, "Target host"},
	{"-IgnoreCode", false, "Ignore Codes--treat as negative responses"},
	{"-id", true, "Host authentication to use, format is id:pass or id:pass:realm"},
	{"-key", true, "Client certificate key file"},
	{"-list-plugins", false, "List all available plugins, perform no testing"},
	{"-maxtime", true, "Maximum testing time per host"},
	{"-mutate", true, "Guess additional file names"},
	{"-mutate-options", false, "Provide information for mutates"},
	{"-nointeractive", false, "Disables interactive features"},
	{"-nolookup", false, "Disables DNS lookups"},
	{"-nossl", false, "Disables the use of SSL"},
	{"-no404", false, "Disables nikto attempting to guess a 404 page"},
	{"-output", true, "Write output to this file ('.' for auto-name)"},
	{"-Pause", true, "Pause between tests (seconds, integer or float)"},
	{"-Plugins", true, "List of plugins to run (default: ALL)"},
	{"-port", true, "Port to use (default 80)"},
	{"-RSAcert", true, "Client certificate file"},
	{"-root", true, "Prepend root value to all requests, format is /directory"},
	{"-Save", false, "Save positive responses to this directory ('.' for auto-name)"},
	{"-ssl", false, "Force ssl mode on port"},
	{"-Tuning", true, "Scan tuning"},
	{"-timeout", true, "Timeout for requests (default 10 seconds)"},
	{"-Userdbs", false, "Load only user databases, not the standard databases"},
	{"-until", false, "Run until the specified time or duration"},
	{"-update", false, "Update databases and plugins from CIRT.net"},
	{"-useproxy", false, "Use the proxy defined in nikto.conf"},
	{"-Version", false, "Print plugin and database versions"},
	{"-vhost", true, "Virtual host (for Host header)"},
}

// Flags returns the known nikto options sorted by name. The slice is a copy.
func Flags() []Flag {
	out := make([]Flag, len(niktoFlags))
	copy(out, niktoFlags)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// LookupFlag finds an option by its exact name.
func LookupFlag(name string) (Flag, bool) {
	for _, f := range niktoFlags {
		if f.Name == name {
			return f, true
		}
	}
	return Flag{}, false
}
