// Package mediasrv speaks to the media server's HTTP control API and
// turns its stats into bus events.
package mediasrv

import (
	"fmt"

	"github.com/tidwall/gjson"
)

// PathStat describes one media path reported by the server API.
type PathStat struct {
	Name    string
	Ready   bool
	Source  string
	Readers int
}

// Snapshot is one polled view of the server's paths and load.
type Snapshot struct {
	Paths      []PathStat
	Publishers int
	Readers    int
}

// ParsePaths extracts a Snapshot from the server's paths/list response.
// The payload shape follows the MediaMTX v3 API: an items array where
// each entry has name, ready, source.type and a readers array.
func ParsePaths(data []byte) (Snapshot, error) {
	if !gjson.ValidBytes(data) {
		return Snapshot{}, fmt.Errorf("invalid stats payload")
	}
	var snap Snapshot
	items := gjson.GetBytes(data, "items")
	items.ForEach(func(_, item gjson.Result) bool {
		p := PathStat{
			Name:    item.Get("name").String(),
			Ready:   item.Get("ready").Bool(),
			Source:  item.Get("source.type").String(),
			Readers: int(item.Get("readers.#").Int()),
		}
		if p.Ready {
			snap.Publishers++
		}
		snap.Readers += p.Readers
		snap.Paths = append(snap.Paths, p)
		return true
	})
	return snap, nil
}
