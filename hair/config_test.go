package hair

import (
	"errors"
	"testing"
)

func TestParseModeSetsPresubdivisionDepthAndSplitFlags(t *testing.T) {
	cfg, err := ParseMode([]string{"P2", "aO", "uST"}, 0.3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.PresubdivideDepth != 2 {
		t.Fatalf("PresubdivideDepth = %d, want 2", cfg.PresubdivideDepth)
	}
	if !cfg.EnableAlignedObjectSplits {
		t.Fatal("expected aligned object splits enabled")
	}
	if !cfg.EnableStrandSplits {
		t.Fatal("expected strand splits enabled")
	}
	if cfg.EnableUnalignedObjectSplits || cfg.EnableAlignedSpatialSplits {
		t.Fatal("tokens not present in the stream must leave their flags false")
	}
	if cfg.ReplicationFactor != 0.3 {
		t.Fatalf("ReplicationFactor = %v, want 0.3", cfg.ReplicationFactor)
	}
}

func TestParseModeAuOEnablesBothObjectSplitKinds(t *testing.T) {
	cfg, err := ParseMode([]string{"auO"}, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cfg.EnableAlignedObjectSplits || !cfg.EnableUnalignedObjectSplits {
		t.Fatal("auO must enable both aligned and unaligned object splits")
	}
}

func TestParseModeUnknownTokenIsAnError(t *testing.T) {
	_, err := ParseMode([]string{"aO", "bogus"}, 0)
	if err == nil {
		t.Fatal("expected an error for an unrecognized mode token")
	}
	if !errors.Is(err, ErrUnknownModeToken) {
		t.Fatalf("expected error to wrap ErrUnknownModeToken, got %v", err)
	}
}

func TestDefaultConfigHasEverySplitKindDisabled(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.EnableAlignedObjectSplits || cfg.EnableUnalignedObjectSplits || cfg.EnableStrandSplits || cfg.EnableAlignedSpatialSplits {
		t.Fatal("DefaultConfig must start with every split kind disabled")
	}
	if cfg.ReplicationFactor != DefaultReplicationFactor {
		t.Fatalf("ReplicationFactor = %v, want %v", cfg.ReplicationFactor, DefaultReplicationFactor)
	}
}
