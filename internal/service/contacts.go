package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/mycare/backend/internal/storage"
	"github.com/mycare/backend/internal/types"
)

// ContactService owns the per-user emergency contact collections, stored
// the same way as health logs: one JSON array per user, replaced whole on
// every write, serialized per user.
type ContactService struct {
	store storage.Store
	locks *keyedMutex
}

func NewContactService(store storage.Store) *ContactService {
	return &ContactService{
		store: store,
		locks: newKeyedMutex(),
	}
}

func contactsKey(userID uuid.UUID) string {
	return "contacts_" + userID.String()
}

// Add validates and stores a new contact, returning it with its assigned
// id.
func (s *ContactService) Add(ctx context.Context, userID uuid.UUID, req *types.AddContactRequest) (*types.EmergencyContact, error) {
	name := strings.TrimSpace(req.Name)
	phone := strings.TrimSpace(req.Phone)
	relation := strings.TrimSpace(req.Relation)
	switch {
	case name == "":
		return nil, invalidField("name", "must not be empty")
	case phone == "":
		return nil, invalidField("phone", "must not be empty")
	case relation == "":
		return nil, invalidField("relation", "must not be empty")
	}

	key := contactsKey(userID)
	unlock := s.locks.Lock(key)
	defer unlock()

	contacts, err := s.loadContacts(ctx, key)
	if err != nil {
		return nil, err
	}

	contact := types.EmergencyContact{
		ID:       uuid.NewString(),
		Name:     name,
		Phone:    phone,
		Relation: relation,
	}
	contacts = append(contacts, contact)

	if err := s.saveContacts(ctx, key, contacts); err != nil {
		return nil, err
	}
	return &contact, nil
}

// List returns the user's contacts. A user with none gets an empty slice.
func (s *ContactService) List(ctx context.Context, userID uuid.UUID) ([]types.EmergencyContact, error) {
	return s.loadContacts(ctx, contactsKey(userID))
}

// Remove deletes the contact with the given id. Removing an id that is
// not present is a no-op, not an error: double deletes and racing tabs
// must never signal failure.
func (s *ContactService) Remove(ctx context.Context, userID uuid.UUID, contactID string) error {
	key := contactsKey(userID)
	unlock := s.locks.Lock(key)
	defer unlock()

	contacts, err := s.loadContacts(ctx, key)
	if err != nil {
		return err
	}

	kept := make([]types.EmergencyContact, 0, len(contacts))
	found := false
	for _, c := range contacts {
		if c.ID == contactID {
			found = true
			continue
		}
		kept = append(kept, c)
	}
	if !found {
		return nil
	}

	return s.saveContacts(ctx, key, kept)
}

func (s *ContactService) loadContacts(ctx context.Context, key string) ([]types.EmergencyContact, error) {
	data, err := s.store.Get(ctx, key)
	if errors.Is(err, storage.ErrKeyNotFound) {
		return []types.EmergencyContact{}, nil
	}
	if err != nil {
		return nil, &PersistenceError{Op: "load", Key: key, Err: err}
	}

	var contacts []types.EmergencyContact
	if err := json.Unmarshal(data, &contacts); err != nil {
		return nil, &PersistenceError{Op: "decode", Key: key, Err: err}
	}
	return contacts, nil
}

func (s *ContactService) saveContacts(ctx context.Context, key string, contacts []types.EmergencyContact) error {
	data, err := json.Marshal(contacts)
	if err != nil {
		return &PersistenceError{Op: "encode", Key: key, Err: err}
	}
	if err := s.store.Set(ctx, key, data); err != nil {
		return &PersistenceError{Op: "save", Key: key, Err: err}
	}
	return nil
}
