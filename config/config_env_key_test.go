package config

import "testing"

func TestCanonicalizeEnvKey_UsesExistingCamelCaseKeys(t *testing.T) {
	existing := map[string]any{
		"env": map[string]any{
			"serviceName": "worldcar",
		},
		"routing": map[string]any{
			"heuristicWeight":       1.5,
			"maxSnapDistanceMeters": 500,
		},
		"graph": map[string]any{
			"dataDir": "./data/graph",
		},
	}

	tests := []struct {
		envKey string
		want   string
	}{
		{envKey: "ENV_SERVICENAME", want: "env.serviceName"},
		{envKey: "ROUTING_HEURISTICWEIGHT", want: "routing.heuristicWeight"},
		{envKey: "ROUTING_MAXSNAPDISTANCEMETERS", want: "routing.maxSnapDistanceMeters"},
		{envKey: "GRAPH_DATADIR", want: "graph.dataDir"},
		{envKey: "NEW_FEATURE_FLAG", want: "new.feature.flag"},
	}

	for _, tt := range tests {
		t.Run(tt.envKey, func(t *testing.T) {
			if got := canonicalizeEnvKey(tt.envKey, existing); got != tt.want {
				t.Fatalf("canonicalizeEnvKey(%q) = %q, want %q", tt.envKey, got, tt.want)
			}
		})
	}
}
