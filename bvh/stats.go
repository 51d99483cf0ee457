package bvh

import (
	"bytes"
	"fmt"
	"time"

	"github.com/olekukonko/tablewriter"
)

// Stats summarizes a build.
type Stats struct {
	Items   int
	Workers int

	// Interior nodes and leafs produced.
	Nodes int
	Leafs int

	MaxDepth     int
	MaxLeafItems int

	// Leaf counts indexed by the reason that produced them.
	LeafReasons [numReasons]int

	// The SAH cost of the hierarchy, with node costs weighted by the ratio
	// of their bbox area to the root bbox area.
	SAHCost float64

	BuildTime time.Duration
}

// Combine the counters of another worker into s.
func (s *Stats) merge(other Stats) {
	s.Nodes += other.Nodes
	s.Leafs += other.Leafs
	s.MaxDepth = max(s.MaxDepth, other.MaxDepth)
	s.MaxLeafItems = max(s.MaxLeafItems, other.MaxLeafItems)
	for reason, count := range other.LeafReasons {
		s.LeafReasons[reason] += count
	}
	s.SAHCost += other.SAHCost
}

// Get the average number of items per leaf.
func (s Stats) AvgLeafItems() float64 {
	if s.Leafs == 0 {
		return 0
	}
	return float64(s.Items) / float64(s.Leafs)
}

// Render stats as a table.
func (s Stats) String() string {
	var buf bytes.Buffer

	table := tablewriter.NewWriter(&buf)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"Stat", "Value"})
	table.Append([]string{"Items", fmt.Sprint(s.Items)})
	table.Append([]string{"Interior nodes", fmt.Sprint(s.Nodes)})
	table.Append([]string{"Leafs", fmt.Sprint(s.Leafs)})
	for reason := LeafBySize; reason < numReasons; reason++ {
		table.Append([]string{"  " + reason.String(), fmt.Sprint(s.LeafReasons[reason])})
	}
	table.Append([]string{"Max depth", fmt.Sprint(s.MaxDepth)})
	table.Append([]string{"Max leaf items", fmt.Sprint(s.MaxLeafItems)})
	table.Append([]string{"Avg leaf items", fmt.Sprintf("%.2f", s.AvgLeafItems())})
	table.Append([]string{"SAH cost", fmt.Sprintf("%.4f", s.SAHCost)})
	table.Append([]string{"Workers", fmt.Sprint(s.Workers)})
	table.SetFooter([]string{"Build time", s.BuildTime.String()})

	table.Render()
	return buf.String()
}
