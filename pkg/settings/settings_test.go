package settings

import (
	"testing"
	"time"
)

func TestResolveKnownZone(t *testing.T) {
	loc := Resolve("Europe/Madrid")
	if loc.String() != "Europe/Madrid" {
		t.Errorf("Resolve() = %v, want Europe/Madrid", loc)
	}
}

func TestResolveFallsBackToUTC(t *testing.T) {
	for _, zone := range []string{"", "Mars/Olympus", "not a zone"} {
		if loc := Resolve(zone); loc != time.UTC {
			t.Errorf("Resolve(%q) = %v, want UTC", zone, loc)
		}
	}
}

func TestLocationUsesStoredZone(t *testing.T) {
	s := &ChatSettings{Timezone: "America/Lima"}
	if s.Location().String() != "America/Lima" {
		t.Errorf("Location() = %v, want America/Lima", s.Location())
	}

	unset := &ChatSettings{}
	if unset.Location() != time.UTC {
		t.Errorf("Location() without a zone = %v, want UTC", unset.Location())
	}
}
