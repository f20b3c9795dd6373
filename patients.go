package main

import (
	"encoding/json"
	"fmt"
	"os"
)

// DemoPatient is a preset patient context for the demo flow. The CDS hook
// endpoint resolves context.patientId against these presets, mirroring the
// patient picker in the reference UI.
type DemoPatient struct {
	Id    string `json:"id"`
	Label string `json:"label"`
	PatientContext
}

type patientStore struct {
	patients []*DemoPatient
	byId     map[string]*DemoPatient
}

func readPatients(fileName string) (*patientStore, error) {
	data, err := os.ReadFile(fileName)
	if err != nil {
		return nil, fmt.Errorf("error reading patients file:%s", err)
	}

	var presets []*DemoPatient
	if err := json.Unmarshal(data, &presets); err != nil {
		return nil, fmt.Errorf("error parsing JSON:%s", err)
	}

	// Index by id for hook lookups; slice order is preserved for listings
	store := patientStore{
		patients: presets,
		byId:     map[string]*DemoPatient{},
	}
	for _, p := range presets {
		store.byId[p.Id] = p
	}

	return &store, nil
}

func (s *patientStore) get(id string) (*DemoPatient, bool) {
	p, ok := s.byId[id]
	return p, ok
}

func (s *patientStore) list() []*DemoPatient {
	return s.patients
}
