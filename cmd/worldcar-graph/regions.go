package main

// RegionConfig defines supported OSM regions
type RegionConfig struct {
	Name        string
	URL         string
	Filename    string
	Description string
}

// SupportedRegions maps region names to their configurations
var SupportedRegions = map[string]RegionConfig{
	"istanbul": {
		Name:        "Istanbul",
		URL:         "https://download.geofabrik.de/europe/turkey-latest.osm.pbf",
		Filename:    "turkey-latest.osm.pbf",
		Description: "Turkey including the Istanbul metropolitan area (~700 MB)",
	},
	"turkey": {
		Name:        "Turkey",
		URL:         "https://download.geofabrik.de/europe/turkey-latest.osm.pbf",
		Filename:    "turkey-latest.osm.pbf",
		Description: "Turkey (~700 MB)",
	},
	"monaco": {
		Name:        "Monaco",
		URL:         "https://download.geofabrik.de/europe/monaco-latest.osm.pbf",
		Filename:    "monaco-latest.osm.pbf",
		Description: "Monaco, small extract useful for testing (~1 MB)",
	},
	"berlin": {
		Name:        "Berlin",
		URL:         "https://download.geofabrik.de/europe/germany/berlin-latest.osm.pbf",
		Filename:    "berlin-latest.osm.pbf",
		Description: "Berlin metropolitan area (~70 MB)",
	},
}

// GetRegionConfig returns the configuration for a given region
func GetRegionConfig(region string) (RegionConfig, bool) {
	config, exists := SupportedRegions[region]
	return config, exists
}

// ListRegions returns a list of all supported region names
func ListRegions() []string {
	regions := make([]string, 0, len(SupportedRegions))
	for region := range SupportedRegions {
		regions = append(regions, region)
	}
	return regions
}
