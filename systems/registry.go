package systems

// SystemInfo describes a simulation system for logs and perf output.
type SystemInfo struct {
	ID          string // Internal identifier (used for perf tracking)
	Name        string // Display name
	Description string // What this system does
	Category    string // "fixed" or "frame"
}

// SystemRegistry holds metadata about all systems.
// This centralizes system naming so logs and the perf tracker stay in sync.
type SystemRegistry struct {
	systems []SystemInfo
	byID    map[string]SystemInfo
}

// NewSystemRegistry creates a registry with all known systems.
func NewSystemRegistry() *SystemRegistry {
	reg := &SystemRegistry{
		byID: make(map[string]SystemInfo),
	}
	reg.registerDefaults()
	return reg
}

// registerDefaults adds all known systems to the registry.
// IDs match the perf phase names recorded by the game loop.
func (r *SystemRegistry) registerDefaults() {
	// Fixed timestep
	r.Register(SystemInfo{ID: "food_index", Name: "Food Index", Description: "Rebuilds the food lookup grid", Category: "fixed"})
	r.Register(SystemInfo{ID: "prey", Name: "Prey", Description: "Foraging, speed choice and hunger", Category: "fixed"})
	r.Register(SystemInfo{ID: "enemy", Name: "Enemy", Description: "Patrol, lookout and chase", Category: "fixed"})
	r.Register(SystemInfo{ID: "contacts", Name: "Contacts", Description: "Detects collider overlaps", Category: "fixed"})
	r.Register(SystemInfo{ID: "cleanup", Name: "Cleanup", Description: "Removes destroyed entities", Category: "fixed"})

	// Frame timestep
	r.Register(SystemInfo{ID: "scan", Name: "Scan", Description: "Advances look-around turns", Category: "frame"})
	r.Register(SystemInfo{ID: "spawner", Name: "Spawner", Description: "Drops food on a timer", Category: "frame"})
	r.Register(SystemInfo{ID: "coordinator", Name: "Coordinator", Description: "Checks for starvation", Category: "frame"})
	r.Register(SystemInfo{ID: "telemetry", Name: "Telemetry", Description: "Flushes stats windows", Category: "frame"})
}

// Register adds a system to the registry.
func (r *SystemRegistry) Register(info SystemInfo) {
	r.systems = append(r.systems, info)
	r.byID[info.ID] = info
}

// Get returns system info by ID.
func (r *SystemRegistry) Get(id string) (SystemInfo, bool) {
	info, ok := r.byID[id]
	return info, ok
}

// GetName returns the display name for a system ID.
// Falls back to the ID itself if not found.
func (r *SystemRegistry) GetName(id string) string {
	if info, ok := r.byID[id]; ok {
		return info.Name
	}
	return id
}

// All returns all registered systems.
func (r *SystemRegistry) All() []SystemInfo {
	return r.systems
}

// ByCategory returns systems filtered by category.
func (r *SystemRegistry) ByCategory(category string) []SystemInfo {
	var result []SystemInfo
	for _, info := range r.systems {
		if info.Category == category {
			result = append(result, info)
		}
	}
	return result
}

// Categories returns all unique categories.
func (r *SystemRegistry) Categories() []string {
	seen := make(map[string]bool)
	var cats []string
	for _, info := range r.systems {
		if !seen[info.Category] {
			seen[info.Category] = true
			cats = append(cats, info.Category)
		}
	}
	return cats
}

// IDs returns all system IDs in registration order.
func (r *SystemRegistry) IDs() []string {
	ids := make([]string, len(r.systems))
	for i, info := range r.systems {
		ids[i] = info.ID
	}
	return ids
}
