package service_test

import (
	"testing"
	"time"

	"github.com/shivani123B/fitlog/internal/energy"
	"github.com/shivani123B/fitlog/internal/service"
)

func TestConfigDefaultsAndValidation(t *testing.T) {
	t.Parallel()
	sqldb := newTestDB(t)

	level, err := service.ConfiguredActivityLevel(sqldb)
	if err != nil || level != energy.ActivityModerate {
		t.Fatalf("expected moderate default, got %q (%v)", level, err)
	}
	ttl, err := service.ConfiguredSearchCacheTTL(sqldb)
	if err != nil || ttl != 7*24*time.Hour {
		t.Fatalf("expected 7 day ttl, got %v (%v)", ttl, err)
	}
	autoFill, err := service.ConfiguredAutoFill(sqldb)
	if err != nil || !autoFill {
		t.Fatalf("expected auto-fill on by default, got %v (%v)", autoFill, err)
	}

	for key, value := range map[string]string{
		service.ConfigActivityLevel:       "couch",
		service.ConfigPlanSeed:            "abc",
		service.ConfigSearchCacheTTLHours: "-1",
		service.ConfigAutoFillDefault:     "maybe",
	} {
		if err := service.SetConfig(sqldb, key, value); err == nil {
			t.Fatalf("expected %s=%s to be rejected", key, value)
		}
	}

	if err := service.SetConfig(sqldb, " Search_Cache_TTL_Hours ", "12"); err != nil {
		t.Fatalf("set ttl: %v", err)
	}
	ttl, err = service.ConfiguredSearchCacheTTL(sqldb)
	if err != nil || ttl != 12*time.Hour {
		t.Fatalf("expected 12h ttl, got %v (%v)", ttl, err)
	}
	if err := service.SetConfig(sqldb, service.ConfigAutoFillDefault, "false"); err != nil {
		t.Fatalf("set autofill: %v", err)
	}
	all, err := service.ListConfig(sqldb)
	if err != nil {
		t.Fatalf("list config: %v", err)
	}
	if all["search_cache_ttl_hours"] != "12" || all["autofill_default"] != "false" {
		t.Fatalf("unexpected config: %+v", all)
	}
}
