package model

// NavigationItem is one list entry pointing at a graph node
type NavigationItem struct {
	Label       string `json:"label"`
	Icon        string `json:"icon"`                  // Icon key for the rendering surface
	NodeID      string `json:"node_id"`
	Credibility *int   `json:"credibility,omitempty"` // Set only for items that carry one
}

// NavigationSection groups graph nodes for list-style browsing.
// Subsections nest exactly one level deep.
type NavigationSection struct {
	ID          string              `json:"id"`
	Title       string              `json:"title"`
	Color       string              `json:"color"` // Color tag for the rendering surface
	Items       []NavigationItem    `json:"items,omitempty"`
	Subsections []NavigationSection `json:"subsections,omitempty"`

	// Aggregate stats, computed at build time
	TotalItems     int  `json:"total_items"`
	AvgCredibility int  `json:"avg_credibility"`
	HasAlerts      bool `json:"has_alerts"`
}

// NodeIDs returns the ordered node ids across the section's items, then
// its subsections' items
func (s NavigationSection) NodeIDs() []string {
	ids := make([]string, 0, len(s.Items))
	for _, it := range s.Items {
		ids = append(ids, it.NodeID)
	}
	for _, sub := range s.Subsections {
		for _, it := range sub.Items {
			ids = append(ids, it.NodeID)
		}
	}
	return ids
}
