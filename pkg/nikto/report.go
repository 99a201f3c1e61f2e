package nikto

import (
	"encoding/xml"
	"strings"
)

// refPrefix is prepended to the osvdb id of an item to form its reference.
const refPrefix = "BID-"

// document is the root of a report. nikto nests one niktoscan container per run inside
// the root element; older writers put scandetails straight under the root.
type document struct {
	XMLName xml.Name
	Scans   []container `xml:"niktoscan"`
	Details []Host      `xml:"scandetails"`
}

type container struct {
	Hosts []Host `xml:"scandetails"`
}

// Host is one scandetails element. Nil fields were absent from the report.
type Host struct {
	TargetIP       *string `xml:"targetip,attr"`
	TargetHostname *string `xml:"targethostname,attr"`
	TargetPort     *string `xml:"targetport,attr"`
	TargetBanner   *string `xml:"targetbanner,attr"`
	StartTime      *string `xml:"starttime,attr"`
	SiteName       *string `xml:"sitename,attr"`
	SiteIP         *string `xml:"hostheader,attr"`

	Items []Item `xml:"item"`
}

// Item is one finding reported for a host.
type Item struct {
	ID        *string `xml:"id,attr"`
	OSVDBID   *string `xml:"osvdbid,attr"`
	OSVDBLink *string `xml:"osvdbidlink,attr"`
	Method    *string `xml:"method,attr"`

	Description *string `xml:"-"`
	URI         *string `xml:"-"`
	NameLink    *string `xml:"-"`
	IPLink      *string `xml:"-"`

	// Refs holds zero or one reference derived from OSVDBID. It is never nil once
	// the item has been parsed.
	Refs []string `xml:"-"`
}

// UnmarshalXML decodes an item element. When a child element repeats, the first
// occurrence wins.
func (i *Item) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	var raw struct {
		ID          *string  `xml:"id,attr"`
		OSVDBID     *string  `xml:"osvdbid,attr"`
		OSVDBLink   *string  `xml:"osvdbidlink,attr"`
		Method      *string  `xml:"method,attr"`
		Description []string `xml:"description"`
		URI         []string `xml:"uri"`
		NameLink    []string `xml:"namelink"`
		IPLink      []string `xml:"iplink"`
	}
	if err := d.DecodeElement(&raw, &start); err != nil {
		return err
	}
	*i = Item{
		ID:          raw.ID,
		OSVDBID:     raw.OSVDBID,
		OSVDBLink:   raw.OSVDBLink,
		Method:      raw.Method,
		Description: first(raw.Description),
		URI:         first(raw.URI),
		NameLink:    first(raw.NameLink),
		IPLink:      first(raw.IPLink),
	}
	return nil
}

// IP returns the target IP, or "" when the attribute is absent.
func (h *Host) IP() string { return value(h.TargetIP) }

// Hostname returns the target hostname, or "".
func (h *Host) Hostname() string { return value(h.TargetHostname) }

// Port returns the target port, or "".
func (h *Host) Port() string { return value(h.TargetPort) }

// Desc returns the item description, or "".
func (i *Item) Desc() string { return value(i.Description) }

func (h *Host) normalize() {
	if h.Items == nil {
		h.Items = make([]Item, 0)
	}
	for idx := range h.Items {
		h.Items[idx].Refs = refs(h.Items[idx].OSVDBID)
	}
}

// refs maps the osvdb attribute to a reference list. "0" means the finding has no
// database entry.
func refs(id *string) []string {
	v := strings.TrimSpace(value(id))
	if v == "" || v == "0" {
		return []string{}
	}
	return []string{refPrefix + v}
}

func first(values []string) *string {
	if len(values) == 0 {
		return nil
	}
	return &values[0]
}

func value(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
