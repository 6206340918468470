package dbhelper

import (
	"testing"

	"github.com/DanielAfitsinski/wad-portfolio/models"
)

func TestInactiveFlagPersistsOnCreate(t *testing.T) {
	db := openTestDB(t)
	user := createTestUser(t, db, "off@x.com", "pw", models.RoleUser, false)

	var fresh models.User
	if err := db.First(&fresh, user.ID).Error; err != nil {
		t.Fatal(err)
	}
	if fresh.IsActive {
		t.Fatal("row created inactive came back active")
	}
}

func TestRegisteredUsersStartActive(t *testing.T) {
	db := openTestDB(t)
	directory := NewUserDirectory(db)

	user, err := directory.Create("new@x.com", "New Person", "hash-irrelevant")
	if err != nil {
		t.Fatal(err)
	}
	var fresh models.User
	if err := db.First(&fresh, user.ID).Error; err != nil {
		t.Fatal(err)
	}
	if !fresh.IsActive || fresh.Role != models.RoleUser {
		t.Fatalf("bad registered row: %+v", fresh)
	}
}
