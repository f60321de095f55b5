package models

// RegionChoice maps a display label shown in the dashboard to the region
// value stored in the source data. The source export carries region names in
// Chinese; the UI presents English labels.
type RegionChoice struct {
	Label    string `json:"label"`
	Value    string `json:"value"`
	Currency string `json:"currency"`
	Default  bool   `json:"default"`
}

// DefaultRegionValue is assigned to every row when the source export has no
// region column at all.
const DefaultRegionValue = "阿联酋"

// DefaultRegionLabel is preselected when present among the offered choices.
const DefaultRegionLabel = "UAE"

// RegionChoices is the fixed label table, in presentation order. Adding a
// market is a data change here, not a code change.
var RegionChoices = []RegionChoice{
	{Label: "UAE", Value: "阿联酋", Currency: "AED"},
	{Label: "KSA", Value: "沙特", Currency: "SAR"},
}

// RegionByLabel returns the choice for a display label.
func RegionByLabel(label string) (RegionChoice, bool) {
	for _, rc := range RegionChoices {
		if rc.Label == label {
			return rc, true
		}
	}
	return RegionChoice{}, false
}

// AvailableRegions returns the choices whose data value actually occurs in
// the loaded rows, preserving presentation order. The default flag is set on
// the UAE choice when offered, otherwise on the first offered choice.
func AvailableRegions(rows []ProductRow) []RegionChoice {
	present := make(map[string]bool, len(RegionChoices))
	for _, row := range rows {
		present[row.Region] = true
	}

	offered := make([]RegionChoice, 0, len(RegionChoices))
	defaultIdx := -1
	for _, rc := range RegionChoices {
		if !present[rc.Value] {
			continue
		}
		if rc.Label == DefaultRegionLabel {
			defaultIdx = len(offered)
		}
		offered = append(offered, rc)
	}
	if defaultIdx < 0 && len(offered) > 0 {
		defaultIdx = 0
	}
	if defaultIdx >= 0 {
		offered[defaultIdx].Default = true
	}
	return offered
}

// FilterByRegion returns only the rows belonging to the given region value,
// preserving input order.
func FilterByRegion(rows []ProductRow, regionValue string) []ProductRow {
	filtered := make([]ProductRow, 0, len(rows))
	for _, row := range rows {
		if row.Region == regionValue {
			filtered = append(filtered, row)
		}
	}
	return filtered
}
