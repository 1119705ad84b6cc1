package constants

import (
	"database/sql/driver"
	"fmt"
	"strings"
)

// Role pengguna. Nilai di luar daftar ini tidak boleh masuk ke DB.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleCoach    Role = "coach"
	RoleObserver Role = "observer"
	RolePlayer   Role = "player"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleCoach, RoleObserver, RolePlayer:
		return true
	}
	return false
}

func (r Role) String() string { return string(r) }

// ParseRole menerima input bebas (case-insensitive, spasi di-trim).
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	if !r.Valid() {
		return "", fmt.Errorf("role tidak dikenal: %q", s)
	}
	return r, nil
}

func (r Role) Value() (driver.Value, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("role tidak dikenal: %q", string(r))
	}
	return string(r), nil
}

func (r *Role) Scan(value interface{}) error {
	var s string
	switch v := value.(type) {
	case string:
		s = v
	case []byte:
		s = string(v)
	default:
		return fmt.Errorf("role: tipe %T tidak didukung", value)
	}
	parsed, err := ParseRole(s)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// Template pesan error role
const (
	ErrOnlyStaffCanAccess   = "❌ Hanya admin, coach, atau observer yang boleh mengakses fitur %s."
	ErrOnlyCoachesCanAccess = "❌ Hanya coach atau admin yang boleh mengakses fitur %s."
	ErrOnlyAdminsCanAccess  = "❌ Hanya admin yang boleh mengakses fitur %s."
)

func RoleErrorStaff(feature string) string {
	return fmt.Sprintf(ErrOnlyStaffCanAccess, feature)
}

func RoleErrorCoach(feature string) string {
	return fmt.Sprintf(ErrOnlyCoachesCanAccess, feature)
}

func RoleErrorAdmin(feature string) string {
	return fmt.Sprintf(ErrOnlyAdminsCanAccess, feature)
}

// ==========================
// ✅ Grouped Role Slices
// ==========================
var (
	AllRoles = []Role{
		RoleAdmin,
		RoleCoach,
		RoleObserver,
		RolePlayer,
	}

	StaffRoles = []Role{
		RoleAdmin,
		RoleCoach,
		RoleObserver,
	}

	CoachAndAbove = []Role{
		RoleCoach,
		RoleAdmin,
	}
)

// HasRole true kalau role ada di daftar allowed.
func HasRole(role Role, allowed []Role) bool {
	for _, a := range allowed {
		if role == a {
			return true
		}
	}
	return false
}
