package constants

import "testing"

func TestParseRole(t *testing.T) {
	cases := map[string]Role{
		"admin":    RoleAdmin,
		" Coach ":  RoleCoach,
		"OBSERVER": RoleObserver,
		"player":   RolePlayer,
	}
	for in, want := range cases {
		got, err := ParseRole(in)
		if err != nil {
			t.Fatalf("ParseRole(%q) error: %v", in, err)
		}
		if got != want {
			t.Fatalf("ParseRole(%q) = %q, want %q", in, got, want)
		}
	}

	if _, err := ParseRole("owner"); err == nil {
		t.Fatalf("ParseRole(owner) expected error")
	}
}

func TestRoleScanRejectsUnknown(t *testing.T) {
	var r Role
	if err := r.Scan("superuser"); err == nil {
		t.Fatalf("Scan(superuser) expected error")
	}
	if err := r.Scan([]byte("coach")); err != nil || r != RoleCoach {
		t.Fatalf("Scan(coach) = %q, %v", r, err)
	}
}

func TestRoleValueRejectsEmpty(t *testing.T) {
	if _, err := Role("").Value(); err == nil {
		t.Fatalf("Value() on empty role expected error")
	}
}

func TestProgressStatusScan(t *testing.T) {
	var s ProgressStatus
	if err := s.Scan("completed"); err != nil || s != ProgressCompleted {
		t.Fatalf("Scan(completed) = %q, %v", s, err)
	}
	if err := s.Scan("approved"); err == nil {
		t.Fatalf("Scan(approved) expected error")
	}
}

func TestHasRole(t *testing.T) {
	if !HasRole(RoleCoach, CoachAndAbove) {
		t.Fatalf("coach should be in CoachAndAbove")
	}
	if HasRole(RoleObserver, CoachAndAbove) {
		t.Fatalf("observer should not be in CoachAndAbove")
	}
}
