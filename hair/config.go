package hair

import "fmt"

// Config holds everything the build-mode token stream and replication
// factor configure. It is constructed once (by ParseMode, or by hand for
// tests) and passed into Build explicitly — the original source read
// this from two process-wide globals (g_hair_accel_mode and
// g_hair_builder_replication_factor); this redesign makes both an
// explicit value instead.
type Config struct {
	PresubdivideDepth           int
	EnableAlignedObjectSplits   bool
	EnableUnalignedObjectSplits bool
	EnableStrandSplits          bool
	EnableAlignedSpatialSplits  bool
	ReplicationFactor           float64
}

// DefaultReplicationFactor bounds spatial-split duplication when the
// caller doesn't override it.
const DefaultReplicationFactor = 0.2

// DefaultConfig returns a Config with every split kind disabled (the
// caller must opt in) and the default replication factor.
func DefaultConfig() Config {
	return Config{ReplicationFactor: DefaultReplicationFactor}
}

// ParseMode parses a left-to-right token stream describing the build
// mode: P0..P4 set the presubdivision depth, aO/uO/auO/uST/aSP enable
// split kinds. An unrecognized token is a fatal configuration error,
// reported before any build work starts.
func ParseMode(tokens []string, replicationFactor float64) (Config, error) {
	cfg := Config{ReplicationFactor: replicationFactor}
	for _, tok := range tokens {
		switch tok {
		case "P0":
			cfg.PresubdivideDepth = 0
		case "P1":
			cfg.PresubdivideDepth = 1
		case "P2":
			cfg.PresubdivideDepth = 2
		case "P3":
			cfg.PresubdivideDepth = 3
		case "P4":
			cfg.PresubdivideDepth = 4
		case "aO":
			cfg.EnableAlignedObjectSplits = true
		case "uO":
			cfg.EnableUnalignedObjectSplits = true
		case "auO":
			cfg.EnableAlignedObjectSplits = true
			cfg.EnableUnalignedObjectSplits = true
		case "uST":
			cfg.EnableStrandSplits = true
		case "aSP":
			cfg.EnableAlignedSpatialSplits = true
		default:
			return Config{}, fmt.Errorf("%w: %q", ErrUnknownModeToken, tok)
		}
	}
	return cfg, nil
}
