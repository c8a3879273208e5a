package user

import "testing"

func TestRoleLookups(t *testing.T) {
	if len(Roles()) != 5 {
		t.Fatalf("expected 5 roles, got %d", len(Roles()))
	}
	for _, r := range Roles() {
		if !r.Valid() {
			t.Errorf("role %q should be valid", r)
		}
		if RoleDisplayName(r) == "" || RoleDescription(r) == "" {
			t.Errorf("role %q is missing display data", r)
		}
	}

	if got := RoleDisplayName(RoleRecordLabelScout); got != "Record Label Scout" {
		t.Fatalf("unexpected display name %q", got)
	}
	if Role("drummer").Valid() {
		t.Fatalf("unknown role reported valid")
	}
	if RoleDisplayName(Role("drummer")) != "" {
		t.Fatalf("unknown role should have no display name")
	}
}

func TestProfileUpdate_Apply(t *testing.T) {
	p := Profile{ID: "1", FullName: "Old", Bio: "bio", Skills: []string{"Piano"}}

	name := "New"
	skills := []string{"Vocals"}
	out := ProfileUpdate{FullName: &name, Skills: &skills}.Apply(p)

	if out.FullName != "New" || out.Bio != "bio" {
		t.Fatalf("unexpected merge %+v", out)
	}
	if len(out.Skills) != 1 || out.Skills[0] != "Vocals" {
		t.Fatalf("unexpected skills %v", out.Skills)
	}
	skills[0] = "Drums"
	if out.Skills[0] != "Vocals" {
		t.Fatalf("apply must copy tag slices")
	}
	if p.FullName != "Old" {
		t.Fatalf("apply must not mutate input")
	}
	if !(ProfileUpdate{}).IsEmpty() {
		t.Fatalf("zero update should be empty")
	}
}
