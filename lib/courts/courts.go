// Package courts registers every known court profile under the name
// callers (and the CLI) use to select it.
package courts

import (
	"fmt"
	"sort"

	"juscraper/lib/courts/tjdft"
	"juscraper/lib/courts/tjpr"
	"juscraper/lib/courts/tjrs"
	"juscraper/lib/courts/tjsp"
	"juscraper/lib/scrape"
)

type Entry struct {
	Profile func() *scrape.Profile
	BaseUrl string
}

var registry = map[string]Entry{
	"tjsp-cjsg":  {Profile: tjsp.Cjsg, BaseUrl: tjsp.BaseUrl},
	"tjsp-cjpg":  {Profile: tjsp.Cjpg, BaseUrl: tjsp.BaseUrl},
	"tjsp-cpopg": {Profile: tjsp.Cpopg, BaseUrl: tjsp.BaseUrl},
	"tjrs":       {Profile: tjrs.Cjsg, BaseUrl: tjrs.BaseUrl},
	"tjdft":      {Profile: tjdft.Cjsg, BaseUrl: tjdft.BaseUrl},
	"tjpr":       {Profile: tjpr.Cjsg, BaseUrl: tjpr.BaseUrl},
}

func Lookup(name string) (Entry, error) {
	entry, ok := registry[name]
	if !ok {
		return Entry{}, fmt.Errorf("unknown court %q, expected one of %v", name, Names())
	}
	return entry, nil
}

func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
