package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/mlegall/facturio-api/internal/domain/enum"
	"github.com/mlegall/facturio-api/internal/infrastructure/repository"
	"github.com/mlegall/facturio-api/pkg/pagination"
)

func TestCreateContactDefaults(t *testing.T) {
	db := setupTestDB(t)
	svc := NewContactService(repository.NewContactRepository(db))

	contact, err := svc.CreateContact(context.Background(), &CreateContactInput{
		DisplayName: "Martin Petit",
	})
	if err != nil {
		t.Fatalf("CreateContact: %v", err)
	}

	if contact.Type != enum.ContactClient {
		t.Errorf("type = %s, want CLIENT by default", contact.Type)
	}
	if contact.Country != "FR" {
		t.Errorf("country = %q, want FR by default", contact.Country)
	}
}

func TestCreateContactRequiresName(t *testing.T) {
	db := setupTestDB(t)
	svc := NewContactService(repository.NewContactRepository(db))

	if _, err := svc.CreateContact(context.Background(), &CreateContactInput{}); err == nil {
		t.Error("expected an error without a display name")
	}
}

func TestListContactsSearch(t *testing.T) {
	db := setupTestDB(t)
	svc := NewContactService(repository.NewContactRepository(db))
	ctx := context.Background()

	for _, name := range []string{"Boulangerie Martin", "Atelier Dubois", "Martine Leroy"} {
		if _, err := svc.CreateContact(ctx, &CreateContactInput{DisplayName: name}); err != nil {
			t.Fatalf("CreateContact %s: %v", name, err)
		}
	}

	result, err := svc.ListContacts(ctx, &ListContactsInput{
		Pagination: pagination.DefaultPagination(),
		Search:     "martin",
	})
	if err != nil {
		t.Fatalf("ListContacts: %v", err)
	}

	if result.Pagination.Total != 2 {
		t.Fatalf("total = %d, want 2 case-insensitive matches", result.Pagination.Total)
	}
	// Ordered by display name
	if result.Items[0].DisplayName != "Boulangerie Martin" || result.Items[1].DisplayName != "Martine Leroy" {
		t.Errorf("order = %q, %q", result.Items[0].DisplayName, result.Items[1].DisplayName)
	}
}

func TestUpdateContact(t *testing.T) {
	db := setupTestDB(t)
	svc := NewContactService(repository.NewContactRepository(db))
	ctx := context.Background()

	contact, err := svc.CreateContact(ctx, &CreateContactInput{DisplayName: "Martin Petit"})
	if err != nil {
		t.Fatalf("CreateContact: %v", err)
	}

	supplier := enum.ContactSupplier
	updated, err := svc.UpdateContact(ctx, &UpdateContactInput{
		ID:    contact.ID,
		Type:  &supplier,
		Email: strPtr("martin@exemple.fr"),
	})
	if err != nil {
		t.Fatalf("UpdateContact: %v", err)
	}

	if updated.Type != enum.ContactSupplier {
		t.Errorf("type = %s, want SUPPLIER", updated.Type)
	}
	if updated.Email == nil || *updated.Email != "martin@exemple.fr" {
		t.Errorf("email = %v", updated.Email)
	}
	if updated.DisplayName != "Martin Petit" {
		t.Errorf("display name = %q, untouched fields must survive", updated.DisplayName)
	}
}

func TestDeleteContactNotFound(t *testing.T) {
	db := setupTestDB(t)
	svc := NewContactService(repository.NewContactRepository(db))

	if err := svc.DeleteContact(context.Background(), uuid.New()); err == nil {
		t.Error("expected an error for an unknown contact")
	}
}
