package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"EmojiFM/model"
)

func TestCreateAndGetUser(t *testing.T) {
	env := newTestEnv(nil)

	rec := env.do(t, "POST", "/api/users",
		`{"username":"dora","email":"dora@example.com"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var created model.User
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if created.ID == 0 || created.Username != "dora" {
		t.Errorf("unexpected created user: %+v", created)
	}

	rec = env.do(t, "GET", fmt.Sprintf("/api/users/%d", created.ID), "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestCreateUserConflict(t *testing.T) {
	env := newTestEnv(nil)

	body := `{"username":"dora","email":"dora@example.com"}`
	env.do(t, "POST", "/api/users", body)
	rec := env.do(t, "POST", "/api/users", body)
	if rec.Code != http.StatusConflict {
		t.Errorf("expected 409 for duplicate user, got %d", rec.Code)
	}
}

func TestGetUserNotFound(t *testing.T) {
	env := newTestEnv(nil)

	rec := env.do(t, "GET", "/api/users/999", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}

func TestUpdateUser(t *testing.T) {
	env := newTestEnv(nil)
	id, _ := env.userRepo.CreateUser(&model.User{Username: "eve", Email: "eve@example.com"})

	rec := env.do(t, "PUT", fmt.Sprintf("/api/users/%d", id),
		`{"username":"eve2","email":"eve2@example.com"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var updated model.User
	if err := json.Unmarshal(rec.Body.Bytes(), &updated); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if updated.Username != "eve2" || updated.Email != "eve2@example.com" {
		t.Errorf("unexpected updated user: %+v", updated)
	}
}

func TestUpdateUserNotFound(t *testing.T) {
	env := newTestEnv(nil)

	rec := env.do(t, "PUT", "/api/users/999",
		`{"username":"x","email":"x@example.com"}`)
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}

func TestDeleteUserIdempotent(t *testing.T) {
	env := newTestEnv(nil)
	id, _ := env.userRepo.CreateUser(&model.User{Username: "frank", Email: "frank@example.com"})

	for i := 0; i < 2; i++ {
		rec := env.do(t, "DELETE", fmt.Sprintf("/api/users/%d", id), "")
		if rec.Code != http.StatusNoContent {
			t.Errorf("delete attempt %d: expected 204, got %d", i+1, rec.Code)
		}
	}
}
