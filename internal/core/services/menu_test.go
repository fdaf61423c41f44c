package services

import (
	"reflect"
	"testing"

	"github.com/hosanna-kids/sunday-school/teacher-portal/internal/core/domain"
)

func TestMenuForRole_Teacher(t *testing.T) {
	menu := MenuForRole(domain.RoleTeacher)

	if len(menu) != len(commonMenuItems) {
		t.Fatalf("expected %d entries, got %d", len(commonMenuItems), len(menu))
	}
	for i, item := range menu {
		if item != commonMenuItems[i] {
			t.Errorf("entry %d: expected %+v, got %+v", i, commonMenuItems[i], item)
		}
	}
}

func TestMenuForRole_EmptyRole(t *testing.T) {
	menu := MenuForRole(domain.Role(""))

	if !reflect.DeepEqual(menu, MenuForRole(domain.RoleTeacher)) {
		t.Error("unauthenticated callers should see the teacher menu")
	}
}

func TestMenuForRole_Admin(t *testing.T) {
	menu := MenuForRole(domain.RoleAdmin)

	if len(menu) != len(commonMenuItems)+1 {
		t.Fatalf("expected %d entries, got %d", len(commonMenuItems)+1, len(menu))
	}
	last := menu[len(menu)-1]
	if last != adminOnlyMenuItem {
		t.Errorf("expected admin entry appended last, got %+v", last)
	}
	for i := range commonMenuItems {
		if menu[i] != commonMenuItems[i] {
			t.Errorf("entry %d: common list order not preserved", i)
		}
	}
}

func TestMenuForRole_Idempotent(t *testing.T) {
	first := MenuForRole(domain.RoleAdmin)
	second := MenuForRole(domain.RoleAdmin)

	if !reflect.DeepEqual(first, second) {
		t.Error("repeated calls should return the same list")
	}
}

func TestMenuForRole_ReturnsCopy(t *testing.T) {
	menu := MenuForRole(domain.RoleTeacher)
	menu[0].Label = "mutated"

	if MenuForRole(domain.RoleTeacher)[0].Label == "mutated" {
		t.Error("callers must not be able to mutate the canonical list")
	}
}
