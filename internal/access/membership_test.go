package access

import (
	"testing"

	"prodtrack/internal/apperr"
	"prodtrack/internal/models"
	"prodtrack/internal/testutil"
)

func TestResolveAdminAlwaysAllowed(t *testing.T) {
	db := testutil.DB(t)
	org := testutil.SeedOrganization(t, db, "Org1")
	admin := testutil.SeedAccount(t, db, org.ID, "root", models.AccountAdmin)
	p := testutil.SeedProject(t, db, org.ID, "P1")

	got, err := Resolve(db, FromAccount(admin), p.ID)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got != Allowed {
		t.Fatalf("admin: want=allowed got=%s", got)
	}
}

func TestResolveMembership(t *testing.T) {
	db := testutil.DB(t)
	org := testutil.SeedOrganization(t, db, "Org1")
	alice := testutil.SeedAccount(t, db, org.ID, "alice", models.AccountArtist)
	bob := testutil.SeedAccount(t, db, org.ID, "bob", models.AccountManager)
	p1 := testutil.SeedProject(t, db, org.ID, "P1")
	p2 := testutil.SeedProject(t, db, org.ID, "P2")
	testutil.SeedMember(t, db, p1.ID, alice, "Animator")
	testutil.SeedMember(t, db, p2.ID, nil, "Compositor")

	cases := []struct {
		name    string
		account *models.Account
		project uint
		want    Decision
	}{
		{"member", alice, p1.ID, Allowed},
		{"non-member", alice, p2.ID, Denied},
		{"manager without slot", bob, p1.ID, Denied},
	}
	for _, tc := range cases {
		got, err := Resolve(db, FromAccount(tc.account), tc.project)
		if err != nil {
			t.Fatalf("%s: Resolve: %v", tc.name, err)
		}
		if got != tc.want {
			t.Fatalf("%s: want=%s got=%s", tc.name, tc.want, got)
		}
	}
}

func TestResolveMissingProject(t *testing.T) {
	db := testutil.DB(t)
	org := testutil.SeedOrganization(t, db, "Org1")
	admin := testutil.SeedAccount(t, db, org.ID, "root", models.AccountAdmin)

	_, err := Resolve(db, FromAccount(admin), 999)
	if !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("want NotFound, got %v", err)
	}
}

func TestMemberProjectIDs(t *testing.T) {
	db := testutil.DB(t)
	org := testutil.SeedOrganization(t, db, "Org1")
	alice := testutil.SeedAccount(t, db, org.ID, "alice", models.AccountArtist)
	p1 := testutil.SeedProject(t, db, org.ID, "P1")
	p2 := testutil.SeedProject(t, db, org.ID, "P2")
	testutil.SeedProject(t, db, org.ID, "P3")
	testutil.SeedMember(t, db, p1.ID, alice, "Animator")
	testutil.SeedMember(t, db, p1.ID, alice, "Lighter")
	testutil.SeedMember(t, db, p2.ID, alice, "Animator")

	ids, err := MemberProjectIDs(db, FromAccount(alice))
	if err != nil {
		t.Fatalf("MemberProjectIDs: %v", err)
	}
	if len(ids) != 2 {
		t.Fatalf("want 2 distinct projects, got %v", ids)
	}
}
